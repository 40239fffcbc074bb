package prompt

import (
	"context"
	"errors"
	"fmt"

	"github.com/jakoblorz/drupal-init/internal/models"
)

// ErrNoAnswer is returned when a Scripted prompter runs out of answers
var ErrNoAnswer = fmt.Errorf("no scripted answer left")

// Scripted replays a fixed list of answers, for tests.
// An empty answer selects the default, like pressing enter.
type Scripted struct {
	answers   []string
	questions []string
	rejected  []string
}

// NewScripted creates a prompter answering with answers in order
func NewScripted(answers ...string) *Scripted {
	return &Scripted{answers: answers}
}

func (s *Scripted) Ask(_ context.Context, question, defaultValue string) (string, error) {
	s.questions = append(s.questions, Question(question, defaultValue))
	answer, err := s.next()
	if err != nil {
		return "", err
	}
	return withDefault(answer, defaultValue), nil
}

// AskValidated consumes answers until one passes validate
func (s *Scripted) AskValidated(ctx context.Context, question string, validate Validator, defaultValue string) (string, error) {
	for {
		answer, err := s.Ask(ctx, question, defaultValue)
		if err != nil {
			return "", err
		}
		if validate == nil {
			return answer, nil
		}

		normalized, err := validate(answer)
		if err == nil {
			return normalized, nil
		}
		if !errors.Is(err, models.ErrInvalidInput) {
			return "", err
		}
		s.rejected = append(s.rejected, answer)
	}
}

func (s *Scripted) AskConfirmation(_ context.Context, question string, defaultValue bool) (bool, error) {
	s.questions = append(s.questions, ConfirmationQuestion(question, defaultValue))
	answer, err := s.next()
	if err != nil {
		return false, err
	}
	return ParseConfirmation(answer, defaultValue), nil
}

func (s *Scripted) IsInteractive() bool {
	return true
}

// Questions returns every question asked so far
func (s *Scripted) Questions() []string {
	return s.questions
}

// Rejected returns answers a validator refused
func (s *Scripted) Rejected() []string {
	return s.rejected
}

// Remaining returns the number of unused answers
func (s *Scripted) Remaining() int {
	return len(s.answers)
}

func (s *Scripted) next() (string, error) {
	if len(s.answers) == 0 {
		return "", fmt.Errorf("%w after %d questions", ErrNoAnswer, len(s.questions))
	}
	answer := s.answers[0]
	s.answers = s.answers[1:]
	return answer, nil
}
