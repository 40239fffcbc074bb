package models

import (
	"fmt"
	"regexp"
	"strings"
)

// Mode selects the Drupal major version the manifest is generated for
type Mode string

const (
	ModeModern Mode = "modern" // Drupal 8 and later
	ModeLegacy Mode = "legacy" // Drupal 7
)

const (
	// ProjectType is the only package type this tool generates
	ProjectType = "project"

	// DefaultWebDir is the default public web directory
	DefaultWebDir = "web"
)

// DefaultCorePackage returns the core package for the mode
func (m Mode) DefaultCorePackage() string {
	if m == ModeLegacy {
		return "drupal/drupal"
	}
	return "drupal/core"
}

// RepositoryURL returns the packages.drupal.org index for the mode
func (m Mode) RepositoryURL() string {
	if m == ModeLegacy {
		return "https://packages.drupal.org/7"
	}
	return "https://packages.drupal.org/8"
}

// ProjectOptions holds everything collected from flags and prompts
type ProjectOptions struct {
	Name         string
	Description  string
	Author       *Author
	License      string
	Homepage     string
	Type         string
	WebDir       string
	Stability    Stability
	Mode         Mode
	Core         PackageRequirement
	Repositories []RepositorySpec
	Require      []PackageRequirement
	RequireDev   []PackageRequirement

	// DrupalRepository is the packages.drupal.org index for Mode
	DrupalRepository string
}

// NewProjectOptions returns options with defaults applied
func NewProjectOptions(mode Mode) *ProjectOptions {
	return &ProjectOptions{
		Type:      ProjectType,
		WebDir:    DefaultWebDir,
		Stability: DefaultStability,
		Mode:      mode,
		Core:      PackageRequirement{Name: mode.DefaultCorePackage()},

		DrupalRepository: mode.RepositoryURL(),
	}
}

var packageNameRegex = regexp.MustCompile(`^[a-z0-9_.-]+/[a-z0-9_.-]+$`)

// ValidatePackageName checks the vendor/package format
func ValidatePackageName(name string) error {
	if !packageNameRegex.MatchString(name) {
		return fmt.Errorf("%w: the package name %s is invalid, it should be lowercase and have a vendor name, "+
			"a forward slash, and a package name, matching: [a-z0-9_.-]+/[a-z0-9_.-]+", ErrInvalidInput, name)
	}
	return nil
}

// NormalizeWebDir trims surrounding whitespace and trailing slashes.
// "web/" and "web" therefore produce the same installer paths.
func NormalizeWebDir(dir string) string {
	dir = strings.TrimSpace(dir)
	trimmed := strings.TrimRight(dir, "/")
	if trimmed == "" && dir != "" {
		return "/"
	}
	return trimmed
}
