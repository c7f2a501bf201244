package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/indaco/nmsearch/internal/core"
)

// maxVisibleOptions caps the height of a select list.
const maxVisibleOptions = 15

// separatorLabel is drawn for separator choices.
var separatorLabel = strings.Repeat("─", 24)

// Picker implements core.Picker with a huh select drawn on stderr.
type Picker struct {
	input  io.Reader
	output io.Writer
}

// NewPicker creates a Picker reading stdin and drawing on stderr.
func NewPicker() *Picker {
	return &Picker{input: os.Stdin, output: os.Stderr}
}

// Pick shows choices under title. Esc and ctrl+c dismiss the picker, which is
// reported as ok == false with a nil error.
func (p *Picker) Pick(ctx context.Context, title string, choices []core.Choice) (string, bool, error) {
	if len(choices) == 0 {
		return "", false, nil
	}

	var value string
	sel := huh.NewSelect[string]().
		Title(title).
		Options(buildOptions(choices)...).
		Value(&value)
	if len(choices) > maxVisibleOptions {
		sel = sel.Height(maxVisibleOptions)
	}

	form := huh.NewForm(huh.NewGroup(sel)).
		WithTheme(pickerTheme()).
		WithKeyMap(keyMap()).
		WithInput(p.input).
		WithOutput(p.output)

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("picker failed: %w", err)
	}
	return value, true, nil
}

// buildOptions converts choices into huh options keyed by display label.
func buildOptions(choices []core.Choice) []huh.Option[string] {
	options := make([]huh.Option[string], len(choices))
	for i, c := range choices {
		label := c.Label
		if c.Separator {
			label = separatorLabel
		}
		options[i] = huh.NewOption(label, c.Value)
	}
	return options
}

// keyMap extends huh's default keys so esc dismisses the form.
func keyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(
		key.WithKeys("ctrl+c", "esc"),
		key.WithHelp("esc", "cancel"),
	)
	return km
}

// Confirm shows a yes/no confirmation prompt. Dismissing it answers no.
func Confirm(title, description string) (bool, error) {
	var ok bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Description(description).
			Value(&ok),
	)).
		WithTheme(pickerTheme()).
		WithKeyMap(keyMap()).
		WithOutput(os.Stderr)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, fmt.Errorf("confirm prompt failed: %w", err)
	}
	return ok, nil
}

// RunWithSpinner runs fn while a spinner titled title is shown. Outside an
// interactive terminal fn runs without a spinner.
func RunWithSpinner(ctx context.Context, title string, fn func(context.Context) error) error {
	if !IsInteractive() {
		return fn(ctx)
	}

	var runErr error
	err := spinner.New().
		Type(spinner.Dots).
		Title(" " + title).
		Context(ctx).
		Action(func() { runErr = fn(ctx) }).
		Run()
	if err != nil {
		return err
	}
	return runErr
}
