package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	huh "github.com/charmbracelet/huh"
	"github.com/jakoblorz/drupal-init/internal/models"
)

// HuhPrompter asks questions with huh forms.
type HuhPrompter struct {
	theme      *huh.Theme
	in         io.Reader
	out        io.Writer
	accessible bool
}

// HuhOption configures a HuhPrompter
type HuhOption func(*HuhPrompter)

// WithTheme sets the form theme
func WithTheme(theme *huh.Theme) HuhOption {
	return func(p *HuhPrompter) {
		p.theme = theme
	}
}

// WithAccessible renders plain line based prompts, for screen readers and
// dumb terminals.
func WithAccessible(accessible bool) HuhOption {
	return func(p *HuhPrompter) {
		p.accessible = accessible
	}
}

// NewHuhPrompter creates a prompter reading from in and drawing to out.
func NewHuhPrompter(in io.Reader, out io.Writer, options ...HuhOption) *HuhPrompter {
	p := &HuhPrompter{
		theme: huh.ThemeCharm(),
		in:    in,
		out:   out,
	}
	for _, option := range options {
		option(p)
	}
	return p
}

func (p *HuhPrompter) Ask(ctx context.Context, question, defaultValue string) (string, error) {
	return p.AskValidated(ctx, question, nil, defaultValue)
}

// AskValidated keeps the form open while validate rejects the answer with
// models.ErrInvalidInput. Any other validation error closes the form and is
// returned.
func (p *HuhPrompter) AskValidated(ctx context.Context, question string, validate Validator, defaultValue string) (string, error) {
	answer := ""

	input := huh.NewInput().
		Title(strings.TrimSuffix(Question(question, defaultValue), " ")).
		Placeholder(defaultValue).
		Value(&answer)

	var check Validator
	if validate != nil {
		check = memoize(validate)
		input = input.Validate(func(v string) error {
			_, err := check(withDefault(v, defaultValue))
			if errors.Is(err, models.ErrInvalidInput) {
				return err
			}
			return nil
		})
	}

	if err := p.run(ctx, input); err != nil {
		return "", err
	}

	answer = withDefault(answer, defaultValue)
	if check == nil {
		return answer, nil
	}
	return check(answer)
}

// memoize remembers the result for the last validated value. huh validates
// on every keystroke and again on submit.
func memoize(validate Validator) Validator {
	var (
		seen   bool
		last   string
		result string
		err    error
	)
	return func(answer string) (string, error) {
		if seen && answer == last {
			return result, err
		}
		result, err = validate(answer)
		seen, last = true, answer
		return result, err
	}
}

func (p *HuhPrompter) AskConfirmation(ctx context.Context, question string, defaultValue bool) (bool, error) {
	confirmed := defaultValue

	confirm := huh.NewConfirm().
		Title(strings.TrimSpace(question)).
		Affirmative("Yes").
		Negative("No").
		Value(&confirmed)

	if err := p.run(ctx, confirm); err != nil {
		return false, err
	}

	return confirmed, nil
}

func (p *HuhPrompter) IsInteractive() bool {
	return true
}

func (p *HuhPrompter) run(ctx context.Context, field huh.Field) error {
	form := huh.NewForm(huh.NewGroup(field)).
		WithTheme(p.theme).
		WithShowHelp(false).
		WithAccessible(p.accessible).
		WithInput(p.in).
		WithOutput(p.out)

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return models.ErrAborted
		}
		return fmt.Errorf("failed to read answer: %w", err)
	}

	return nil
}

func withDefault(answer, defaultValue string) string {
	if strings.TrimSpace(answer) == "" {
		return defaultValue
	}
	return strings.TrimSpace(answer)
}
