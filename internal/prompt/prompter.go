package prompt

import (
	"context"
	"fmt"
	"strings"
)

// Validator checks an answer and returns its normalized form.
// Returning an error wrapping models.ErrInvalidInput asks again.
type Validator func(answer string) (string, error)

// Prompter asks the operator questions.
// An empty answer selects the default.
type Prompter interface {
	Ask(ctx context.Context, question, defaultValue string) (string, error)
	AskValidated(ctx context.Context, question string, validate Validator, defaultValue string) (string, error)
	AskConfirmation(ctx context.Context, question string, defaultValue bool) (bool, error)
	IsInteractive() bool
}

// Question renders a question with its default in Composer's style, e.g.
// "Package name (<vendor>/<name>) [jane/site]: ".
func Question(question, defaultValue string) string {
	question = strings.TrimSpace(question)
	if defaultValue == "" {
		return question + ": "
	}
	return fmt.Sprintf("%s [%s]: ", question, defaultValue)
}

// ConfirmationQuestion renders a yes/no question with its default.
func ConfirmationQuestion(question string, defaultValue bool) string {
	if defaultValue {
		return Question(question, "yes")
	}
	return Question(question, "no")
}

// ParseConfirmation interprets a yes/no answer; anything else is the default.
func ParseConfirmation(answer string, defaultValue bool) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	}
	return defaultValue
}
