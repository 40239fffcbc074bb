package models

import (
	"fmt"
	"regexp"
	"strings"
)

// PackageRequirement is a package name paired with a version constraint
type PackageRequirement struct {
	Name       string
	Constraint string
}

var requirementSplitRegex = regexp.MustCompile(`^([^\s:=]+)[\s:=]+(.+)$`)

// ParseRequirement parses a requirement string.
// Accepted forms: "foo/bar:1.0", "foo/bar=1.0", "foo/bar 1.0" and "foo/bar"
// (no constraint, left for the resolver to recommend).
func ParseRequirement(s string) (PackageRequirement, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return PackageRequirement{}, fmt.Errorf("%w: empty requirement", ErrInvalidInput)
	}

	if m := requirementSplitRegex.FindStringSubmatch(s); m != nil {
		return PackageRequirement{
			Name:       strings.ToLower(m[1]),
			Constraint: strings.TrimSpace(m[2]),
		}, nil
	}

	return PackageRequirement{Name: strings.ToLower(s)}, nil
}

// ParseRequirements parses each entry in order; duplicates are kept
func ParseRequirements(entries []string) ([]PackageRequirement, error) {
	reqs := make([]PackageRequirement, 0, len(entries))
	for _, entry := range entries {
		req, err := ParseRequirement(entry)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

// HasConstraint reports whether a version constraint is set
func (r PackageRequirement) HasConstraint() bool {
	return strings.TrimSpace(r.Constraint) != ""
}

// String returns the requirement in "name constraint" form
func (r PackageRequirement) String() string {
	if !r.HasConstraint() {
		return r.Name
	}
	return r.Name + " " + r.Constraint
}
