package prompt

import "context"

// NonInteractive answers every question with its default.
type NonInteractive struct{}

// NewNonInteractive creates a prompter for --no-interaction runs
func NewNonInteractive() *NonInteractive {
	return &NonInteractive{}
}

func (p *NonInteractive) Ask(_ context.Context, _ string, defaultValue string) (string, error) {
	return defaultValue, nil
}

// AskValidated validates the default once; an invalid default is an error.
func (p *NonInteractive) AskValidated(_ context.Context, _ string, validate Validator, defaultValue string) (string, error) {
	if validate == nil {
		return defaultValue, nil
	}
	return validate(defaultValue)
}

func (p *NonInteractive) AskConfirmation(_ context.Context, _ string, defaultValue bool) (bool, error) {
	return defaultValue, nil
}

func (p *NonInteractive) IsInteractive() bool {
	return false
}
