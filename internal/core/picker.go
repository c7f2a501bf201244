package core

import "context"

// Choice is one selectable item of an interactive picker.
type Choice struct {
	// Label is what the user sees.
	Label string

	// Value identifies the choice; it is returned by Picker.Pick.
	Value string

	// Separator marks a visual divider. It stays selectable.
	Separator bool
}

// Picker presents choices under a title and returns the chosen value.
// ok is false when the user dismissed the picker without choosing.
type Picker interface {
	Pick(ctx context.Context, title string, choices []Choice) (value string, ok bool, err error)
}
