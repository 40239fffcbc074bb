package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStability(t *testing.T) {
	for _, s := range Stabilities() {
		t.Run(string(s), func(t *testing.T) {
			parsed, err := ParseStability(string(s))
			require.NoError(t, err)
			require.Equal(t, s, parsed)
		})
	}

	for _, input := range []string{"Stable", "rc", "DEV", "nightly", ""} {
		t.Run("invalid "+input, func(t *testing.T) {
			_, err := ParseStability(input)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestStability_Allows(t *testing.T) {
	assert.True(t, StabilityDev.Allows(StabilityStable))
	assert.True(t, StabilityDev.Allows(StabilityDev))
	assert.True(t, StabilityBeta.Allows(StabilityRC))
	assert.False(t, StabilityBeta.Allows(StabilityAlpha))
	assert.False(t, StabilityStable.Allows(StabilityRC))
	assert.True(t, StabilityStable.Allows(StabilityStable))
}

func TestVersionStability(t *testing.T) {
	tests := []struct {
		version  string
		expected Stability
	}{
		{"8.4.2", StabilityStable},
		{"v1.0.0", StabilityStable},
		{"1.0.0-p1", StabilityStable},
		{"8.5.0-beta2", StabilityBeta},
		{"8.5.0-b1", StabilityBeta},
		{"8.5.0-RC1", StabilityRC},
		{"2.0.0-alpha3", StabilityAlpha},
		{"8.x-dev", StabilityDev},
		{"dev-master", StabilityDev},
		{"1.0.x-dev", StabilityDev},
		{"dev-feature#abc123", StabilityDev},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			assert.Equal(t, tt.expected, VersionStability(tt.version))
		})
	}
}
