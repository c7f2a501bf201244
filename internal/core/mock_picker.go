package core

import (
	"context"
	"errors"
	"sync"
)

// PickCall records one invocation of MockPicker.Pick.
type PickCall struct {
	Title   string
	Choices []Choice
}

// MockPicker is a scripted Picker for tests. Each call to Pick consumes the
// next PickFunc; once they run out, Pick reports a cancelled picker.
type MockPicker struct {
	mu    sync.Mutex
	funcs []func(title string, choices []Choice) (string, bool, error)
	Calls []PickCall
}

// NewMockPicker creates a MockPicker with the given scripted responses.
func NewMockPicker(funcs ...func(title string, choices []Choice) (string, bool, error)) *MockPicker {
	return &MockPicker{funcs: funcs}
}

func (m *MockPicker) Pick(ctx context.Context, title string, choices []Choice) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, PickCall{Title: title, Choices: append([]Choice(nil), choices...)})
	if len(m.funcs) == 0 {
		return "", false, nil
	}
	fn := m.funcs[0]
	m.funcs = m.funcs[1:]
	return fn(title, choices)
}

// PickLabel returns a response choosing the first choice with the given label.
func PickLabel(label string) func(string, []Choice) (string, bool, error) {
	return func(_ string, choices []Choice) (string, bool, error) {
		for _, c := range choices {
			if c.Label == label && !c.Separator {
				return c.Value, true, nil
			}
		}
		return "", false, errors.New("mock picker: no choice labelled " + label)
	}
}

// PickCancel returns a response dismissing the picker.
func PickCancel() func(string, []Choice) (string, bool, error) {
	return func(string, []Choice) (string, bool, error) {
		return "", false, nil
	}
}
