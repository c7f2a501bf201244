package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/huh"
	"github.com/indaco/nmsearch/internal/core"
)

var _ core.Picker = (*Picker)(nil)

func TestBuildOptions(t *testing.T) {
	choices := []core.Choice{
		{Label: "lodash", Value: "0"},
		{Separator: true, Value: "1"},
		{Label: "app/node_modules", Value: "2"},
		{Label: "..", Value: "3"},
	}

	options := buildOptions(choices)
	if len(options) != len(choices) {
		t.Fatalf("got %d options, want %d", len(options), len(choices))
	}

	want := []huh.Option[string]{
		huh.NewOption("lodash", "0"),
		huh.NewOption(separatorLabel, "1"),
		huh.NewOption("app/node_modules", "2"),
		huh.NewOption("..", "3"),
	}
	for i := range want {
		if options[i].Key != want[i].Key || options[i].Value != want[i].Value {
			t.Errorf("option %d = {%q %q}, want {%q %q}", i, options[i].Key, options[i].Value, want[i].Key, want[i].Value)
		}
	}
}

func TestBuildOptions_DuplicateLabels(t *testing.T) {
	options := buildOptions([]core.Choice{
		{Label: "same", Value: "a"},
		{Label: "same", Value: "b"},
	})
	if options[0].Value == options[1].Value {
		t.Error("options with equal labels must keep distinct values")
	}
}

func TestKeyMap_EscCancels(t *testing.T) {
	km := keyMap()
	keys := km.Quit.Keys()

	for _, want := range []string{"esc", "ctrl+c"} {
		found := false
		for _, k := range keys {
			if k == want {
				found = true
			}
		}
		if !found {
			t.Errorf("Quit binding %v does not include %q", keys, want)
		}
	}
	if km.Quit.Help() != (key.Help{Key: "esc", Desc: "cancel"}) {
		t.Errorf("unexpected help %+v", km.Quit.Help())
	}
}

func TestPicker_NoChoices(t *testing.T) {
	value, ok, err := NewPicker().Pick(context.Background(), "empty", nil)
	if value != "" || ok || err != nil {
		t.Errorf("Pick(nil) = %q, %v, %v; want dismissed", value, ok, err)
	}
}

func TestRunWithSpinner_NonInteractive(t *testing.T) {
	// CI disables the spinner, so fn runs directly.
	t.Setenv("CI", "true")

	want := errors.New("scan failed")
	called := false
	err := RunWithSpinner(context.Background(), "Scanning", func(context.Context) error {
		called = true
		return want
	})
	if !called {
		t.Error("fn was not called")
	}
	if !errors.Is(err, want) {
		t.Errorf("err = %v, want %v", err, want)
	}
}

func TestIsInteractive_CI(t *testing.T) {
	t.Setenv("CI", "true")
	if IsInteractive() {
		t.Error("IsInteractive should be false in CI")
	}
}
