package registry

import (
	"context"
	"errors"

	"github.com/jakoblorz/drupal-init/internal/models"
)

// ErrNotFound is returned by fetchers when a document does not exist
var ErrNotFound = errors.New("not found")

// Repository provides the published versions of packages.
//
// FindPackage returns an empty slice and no error when the repository does
// not know the package, so composite lookups can fall through to the next
// repository.
type Repository interface {
	Name() string
	FindPackage(ctx context.Context, name string) ([]PackageVersion, error)
}

// PackageVersion is a single published version of a package
type PackageVersion struct {
	Name              string `json:"name"`
	Version           string `json:"version"`
	VersionNormalized string `json:"version_normalized,omitempty"`
}

// Stability returns the release stability of the version
func (v PackageVersion) Stability() models.Stability {
	return models.VersionStability(v.Version)
}

// IsDev reports whether the version is a development branch
func (v PackageVersion) IsDev() bool {
	return v.Stability() == models.StabilityDev
}
