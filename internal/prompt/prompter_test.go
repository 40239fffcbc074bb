package prompt

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/jakoblorz/drupal-init/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func upperName(answer string) (string, error) {
	if !strings.Contains(answer, "/") {
		return "", fmt.Errorf("%w: %q has no vendor", models.ErrInvalidInput, answer)
	}
	return strings.ToUpper(answer), nil
}

func TestQuestion(t *testing.T) {
	assert.Equal(t, "Description: ", Question("Description", ""))
	assert.Equal(t, "Minimum Stability [dev]: ", Question(" Minimum Stability ", "dev"))
	assert.Equal(t, "Continue? [yes]: ", ConfirmationQuestion("Continue?", true))
	assert.Equal(t, "Continue? [no]: ", ConfirmationQuestion("Continue?", false))
}

func TestParseConfirmation(t *testing.T) {
	assert.True(t, ParseConfirmation("y", false))
	assert.True(t, ParseConfirmation("YES", false))
	assert.False(t, ParseConfirmation("n", true))
	assert.True(t, ParseConfirmation("", true))
	assert.False(t, ParseConfirmation("maybe", false))
}

func TestNonInteractive(t *testing.T) {
	ctx := context.Background()
	p := NewNonInteractive()

	answer, err := p.Ask(ctx, "Description", "A site")
	require.NoError(t, err)
	assert.Equal(t, "A site", answer)

	answer, err = p.AskValidated(ctx, "Package name", upperName, "acme/site")
	require.NoError(t, err)
	assert.Equal(t, "ACME/SITE", answer)

	_, err = p.AskValidated(ctx, "Package name", upperName, "site")
	require.ErrorIs(t, err, models.ErrInvalidInput)

	confirmed, err := p.AskConfirmation(ctx, "Continue?", true)
	require.NoError(t, err)
	assert.True(t, confirmed)
	assert.False(t, p.IsInteractive())
}

func TestScripted_RepromptsUntilValid(t *testing.T) {
	ctx := context.Background()
	p := NewScripted("site", "also-bad", "acme/site")

	answer, err := p.AskValidated(ctx, "Package name", upperName, "")
	require.NoError(t, err)
	assert.Equal(t, "ACME/SITE", answer)
	assert.Equal(t, []string{"site", "also-bad"}, p.Rejected())
	assert.Len(t, p.Questions(), 3)
	assert.Zero(t, p.Remaining())
}

func TestScripted_EmptyAnswerSelectsDefault(t *testing.T) {
	ctx := context.Background()
	p := NewScripted("", "n")

	answer, err := p.Ask(ctx, "Minimum Stability", "dev")
	require.NoError(t, err)
	assert.Equal(t, "dev", answer)

	confirmed, err := p.AskConfirmation(ctx, "Continue?", true)
	require.NoError(t, err)
	assert.False(t, confirmed)

	assert.Equal(t, []string{"Minimum Stability [dev]: ", "Continue? [yes]: "}, p.Questions())
}

func TestScripted_RunsOutOfAnswers(t *testing.T) {
	_, err := NewScripted().Ask(context.Background(), "Description", "")
	require.ErrorIs(t, err, ErrNoAnswer)
}

func TestScripted_NonValidationErrorStops(t *testing.T) {
	boom := fmt.Errorf("lookup failed")
	p := NewScripted("drupal/core", "drupal/core")

	_, err := p.AskValidated(context.Background(), "Core", func(string) (string, error) {
		return "", boom
	}, "")
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, p.Remaining())
}
