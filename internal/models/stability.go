package models

import (
	"fmt"
	"regexp"
	"strings"
)

// Stability represents the release maturity of a package version
type Stability string

const (
	StabilityStable Stability = "stable"
	StabilityRC     Stability = "RC"
	StabilityBeta   Stability = "beta"
	StabilityAlpha  Stability = "alpha"
	StabilityDev    Stability = "dev"
)

// DefaultStability is used when no minimum stability is given
const DefaultStability = StabilityDev

// stabilityPriority mirrors Composer's ordering; lower is more stable.
var stabilityPriority = map[Stability]int{
	StabilityStable: 0,
	StabilityRC:     5,
	StabilityBeta:   10,
	StabilityAlpha:  15,
	StabilityDev:    20,
}

// Stabilities lists the known stability levels from most to least stable
func Stabilities() []Stability {
	return []Stability{StabilityStable, StabilityRC, StabilityBeta, StabilityAlpha, StabilityDev}
}

// ParseStability parses a minimum-stability value. Matching is exact, as in
// Composer's minimum-stability setting.
func ParseStability(s string) (Stability, error) {
	st := Stability(s)
	if _, ok := stabilityPriority[st]; !ok {
		names := make([]string, 0, len(stabilityPriority))
		for _, known := range Stabilities() {
			names = append(names, string(known))
		}
		return "", fmt.Errorf("%w: invalid minimum stability %q, must be empty or one of: %s",
			ErrInvalidInput, s, strings.Join(names, ", "))
	}
	return st, nil
}

// Priority returns the numeric priority of the stability (0 = stable)
func (s Stability) Priority() int {
	if p, ok := stabilityPriority[s]; ok {
		return p
	}
	return stabilityPriority[StabilityDev]
}

// Allows reports whether a version of stability other passes the floor s
func (s Stability) Allows(other Stability) bool {
	return other.Priority() <= s.Priority()
}

var versionStabilityRegex = regexp.MustCompile(`(?i)[._-]?(?:(stable|beta|b|rc|alpha|a|patch|pl|p)((?:[.-]?\d+)*)?)?([.-]?dev)?$`)

// VersionStability returns the stability of a concrete version string
// Examples:
//   - "8.4.2" -> stable
//   - "8.5.0-beta2" -> beta
//   - "8.x-dev", "dev-master" -> dev
func VersionStability(version string) Stability {
	version = strings.TrimSpace(version)
	if i := strings.Index(version, "#"); i != -1 {
		version = version[:i]
	}

	lower := strings.ToLower(version)
	if strings.HasPrefix(lower, "dev-") || strings.HasSuffix(lower, "-dev") {
		return StabilityDev
	}

	m := versionStabilityRegex.FindStringSubmatch(lower)
	if m == nil {
		return StabilityStable
	}
	if m[3] != "" {
		return StabilityDev
	}

	switch m[1] {
	case "beta", "b":
		return StabilityBeta
	case "alpha", "a":
		return StabilityAlpha
	case "rc":
		return StabilityRC
	}

	return StabilityStable
}
