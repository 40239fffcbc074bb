package prompt

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jakoblorz/drupal-init/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAccessiblePrompter(input string) (*HuhPrompter, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return NewHuhPrompter(strings.NewReader(input), out, WithAccessible(true)), out
}

func TestHuhPrompter_EmptyAnswerSelectsDefault(t *testing.T) {
	p, out := newAccessiblePrompter("\n")

	answer, err := p.Ask(context.Background(), "Minimum Stability", "dev")
	require.NoError(t, err)
	assert.Equal(t, "dev", answer)
	assert.Contains(t, out.String(), "Minimum Stability [dev]:")
	assert.True(t, p.IsInteractive())
}

func TestHuhPrompter_RepromptsOnInvalidInput(t *testing.T) {
	p, out := newAccessiblePrompter("site\nacme/site\n")

	calls := 0
	answer, err := p.AskValidated(context.Background(), "Package name", func(answer string) (string, error) {
		calls++
		return upperName(answer)
	}, "")
	require.NoError(t, err)
	assert.Equal(t, "ACME/SITE", answer)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, strings.Count(out.String(), `"site" has no vendor`))
	assert.Equal(t, 2, strings.Count(out.String(), "Package name:"))
}

func TestHuhPrompter_OtherValidationErrorsAreFatal(t *testing.T) {
	refused := errors.New("dial tcp 127.0.0.1:443: connect: connection refused")
	p, out := newAccessiblePrompter("drupal/core\ndrupal/core\ndrupal/core\n")

	calls := 0
	_, err := p.AskValidated(context.Background(), "Drupal core or distribution", func(string) (string, error) {
		calls++
		return "", refused
	}, "drupal/core")
	require.ErrorIs(t, err, refused)
	assert.NotErrorIs(t, err, models.ErrInvalidInput)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, strings.Count(out.String(), "Drupal core or distribution [drupal/core]:"))
	assert.NotContains(t, out.String(), "connection refused")
}

func TestHuhPrompter_Confirmation(t *testing.T) {
	p, _ := newAccessiblePrompter("n\n")

	confirmed, err := p.AskConfirmation(context.Background(), "Do you confirm generation", true)
	require.NoError(t, err)
	assert.False(t, confirmed)

	p, _ = newAccessiblePrompter("\n")
	confirmed, err = p.AskConfirmation(context.Background(), "Do you confirm generation", true)
	require.NoError(t, err)
	assert.True(t, confirmed)
}
