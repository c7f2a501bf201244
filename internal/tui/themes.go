package tui

import (
	"slices"

	"github.com/charmbracelet/huh"
)

// DefaultTheme is the theme used when none is configured.
const DefaultTheme = "nmsearch"

// themeBuilders maps accepted theme names to their constructors.
var themeBuilders = map[string]func() *huh.Theme{
	DefaultTheme: nmsearchTheme,
	"base":       huh.ThemeBase,
	"base16":     huh.ThemeBase16,
	"catppuccin": huh.ThemeCatppuccin,
	"charm":      huh.ThemeCharm,
	"dracula":    huh.ThemeDracula,
}

// ValidThemes lists the accepted theme names, the default first and the rest
// in alphabetical order.
var ValidThemes = themeNames()

func themeNames() []string {
	names := make([]string, 0, len(themeBuilders))
	for name := range themeBuilders {
		if name != DefaultTheme {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return append([]string{DefaultTheme}, names...)
}

// IsValidTheme reports whether name is an accepted theme name.
func IsValidTheme(name string) bool {
	_, ok := themeBuilders[name]
	return ok
}

// activeTheme is the name of the theme used by pickers and prompts.
var activeTheme = DefaultTheme

// SetTheme selects the theme used by pickers and prompts. Empty or unknown
// names select the default theme.
func SetTheme(name string) {
	if !IsValidTheme(name) {
		name = DefaultTheme
	}
	activeTheme = name
}

// pickerTheme builds the selected theme.
func pickerTheme() *huh.Theme {
	return themeBuilders[activeTheme]()
}
