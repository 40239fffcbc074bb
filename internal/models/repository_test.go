package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRepositorySpec_URL(t *testing.T) {
	spec, err := ParseRepositorySpec(" https://satis.example.org ")
	require.NoError(t, err)
	require.Equal(t, NewComposerRepository("https://satis.example.org"), spec)
}

func TestParseRepositorySpec_Inline(t *testing.T) {
	spec, err := ParseRepositorySpec(`{"type": "package", "package": {"name": "acme/lib", "version": "1.0.0"}}`)
	require.NoError(t, err)
	require.Equal(t, "package", spec.Type)
	require.Empty(t, spec.URL)
	require.JSONEq(t, `{"name": "acme/lib", "version": "1.0.0"}`, string(spec.Extra["package"]))
}

func TestParseRepositorySpec_Invalid(t *testing.T) {
	for _, input := range []string{
		"",
		`{"url": "https://example.org"}`,
		`{"type": 5}`,
		`{"type": "vcs",`,
	} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseRepositorySpec(input)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestRepositorySpec_JSON(t *testing.T) {
	spec, err := ParseRepositorySpec(`{"type": "vcs", "url": "https://github.com/acme/lib?a=1&b=2", "no-api": true}`)
	require.NoError(t, err)

	data, err := json.Marshal(spec)
	require.NoError(t, err)
	require.JSONEq(t, `{"type": "vcs", "url": "https://github.com/acme/lib?a=1&b=2", "no-api": true}`, string(data))

	var decoded RepositorySpec
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, spec, decoded)
}
