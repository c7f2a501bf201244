// Package printer renders user-facing terminal output with consistent
// lipgloss styles.
package printer

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	faintStyle   = lipgloss.NewStyle().Faint(true)
	boldStyle    = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

// SetNoColor disables ANSI styling for everything rendered through lipgloss.
func SetNoColor(disabled bool) {
	if disabled {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(termenv.ColorProfile())
}

// Faint returns text with faint styling.
func Faint(text string) string {
	return faintStyle.Render(text)
}

// Bold returns text with bold styling.
func Bold(text string) string {
	return boldStyle.Render(text)
}

// Success returns text with success (green) styling.
func Success(text string) string {
	return successStyle.Render(text)
}

// Error returns text with error (red) styling.
func Error(text string) string {
	return errorStyle.Render(text)
}

// Warning returns text with warning (yellow) styling.
func Warning(text string) string {
	return warningStyle.Render(text)
}

// Info returns text with info (cyan) styling.
func Info(text string) string {
	return infoStyle.Render(text)
}

// PrintError prints a styled error line to stderr.
func PrintError(text string) {
	fmt.Fprintln(os.Stderr, Error("✗ "+text))
}

// PrintWarning prints a styled warning line to stderr.
func PrintWarning(text string) {
	fmt.Fprintln(os.Stderr, Warning("! "+text))
}

// Notifier shows error notifications raised during a browse session.
type Notifier struct {
	w io.Writer
}

// NewNotifier creates a Notifier writing to stderr.
func NewNotifier() *Notifier {
	return &Notifier{w: os.Stderr}
}

// NewNotifierWithWriter creates a Notifier writing to w.
func NewNotifierWithWriter(w io.Writer) *Notifier {
	return &Notifier{w: w}
}

// Error writes message as a styled error line.
func (n *Notifier) Error(message string) {
	fmt.Fprintln(n.w, Error("✗ "+message))
}
