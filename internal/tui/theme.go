package tui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Palette of the default nmsearch theme.
var (
	nmGreenPrimary   = lipgloss.AdaptiveColor{Light: "#15803d", Dark: "#4ade80"}
	nmGreenAccent    = lipgloss.AdaptiveColor{Light: "#166534", Dark: "#86efac"}
	nmTextStrong     = lipgloss.AdaptiveColor{Light: "#111827", Dark: "#f9fafb"}
	nmTextNormal     = lipgloss.AdaptiveColor{Light: "#374151", Dark: "#d1d5db"}
	nmTextMuted      = lipgloss.AdaptiveColor{Light: "#6b7280", Dark: "#9ca3af"}
	nmBorderFocused  = lipgloss.AdaptiveColor{Light: "#15803d", Dark: "#22c55e"}
	nmBorderBlurred  = lipgloss.AdaptiveColor{Light: "#d1d5db", Dark: "#4b5563"}
	nmButtonBg       = lipgloss.AdaptiveColor{Light: "#15803d", Dark: "#22c55e"}
	nmButtonText     = lipgloss.AdaptiveColor{Light: "#ffffff", Dark: "#052e16"}
	nmButtonBgFaint  = lipgloss.AdaptiveColor{Light: "#e5e7eb", Dark: "#374151"}
	nmButtonTxtFaint = lipgloss.AdaptiveColor{Light: "#374151", Dark: "#d1d5db"}
)

// nmsearchTheme builds the default picker theme on top of huh's base theme.
func nmsearchTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Base = t.Focused.Base.
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(nmBorderFocused)
	t.Focused.Title = t.Focused.Title.Foreground(nmGreenPrimary).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(nmTextMuted)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(nmGreenAccent)
	t.Focused.Option = t.Focused.Option.Foreground(nmTextNormal)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(nmGreenPrimary)
	t.Focused.FocusedButton = t.Focused.FocusedButton.
		Foreground(nmButtonText).
		Background(nmButtonBg).
		Bold(true).
		Padding(0, 1)
	t.Focused.BlurredButton = t.Focused.BlurredButton.
		Foreground(nmButtonTxtFaint).
		Background(nmButtonBgFaint).
		Padding(0, 1)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Focused.Base.BorderForeground(nmBorderBlurred)
	t.Blurred.Title = t.Focused.Title.Foreground(nmTextMuted).Bold(false)

	t.Help.ShortKey = t.Help.ShortKey.Foreground(nmTextStrong)
	t.Help.ShortDesc = t.Help.ShortDesc.Foreground(nmTextMuted)
	t.Help.ShortSeparator = t.Help.ShortSeparator.Foreground(nmBorderBlurred)
	t.Help.FullKey = t.Help.FullKey.Foreground(nmTextStrong)
	t.Help.FullDesc = t.Help.FullDesc.Foreground(nmTextMuted)
	t.Help.FullSeparator = t.Help.FullSeparator.Foreground(nmBorderBlurred)

	return t
}
