package registry

import (
	"github.com/jakoblorz/drupal-init/internal/models"
	"github.com/rs/zerolog"
)

// DefaultPackagistURL is the public package index queried last
const DefaultPackagistURL = "https://repo.packagist.org"

// SetOptions describes the repositories consulted during resolution
type SetOptions struct {
	// Repositories are operator supplied, in the order given
	Repositories []models.RepositorySpec

	// DrupalURL is the packages.drupal.org index for the selected mode
	DrupalURL    string
	PackagistURL string

	Fetcher  *Fetcher
	Platform PlatformDetector
	Logger   zerolog.Logger
}

// NewRepositorySet builds the resolution repository chain: the platform
// repository, operator repositories, the Drupal index, then Packagist.
// Repository types that cannot be queried without a VCS checkout are skipped.
func NewRepositorySet(opts SetOptions) (*CompositeRepository, error) {
	fetcher := opts.Fetcher
	if fetcher == nil {
		fetcher = NewFetcher(WithLogger(opts.Logger))
	}

	packagistURL := opts.PackagistURL
	if packagistURL == "" {
		packagistURL = DefaultPackagistURL
	}

	repos := []Repository{NewPlatformRepository(opts.Platform)}

	for _, spec := range opts.Repositories {
		switch spec.Type {
		case models.RepositoryTypeComposer:
			repos = append(repos, NewComposerRepository(spec.URL, fetcher))
		case "package":
			inline, err := NewInlineRepository(spec)
			if err != nil {
				return nil, err
			}
			repos = append(repos, inline)
		default:
			opts.Logger.Warn().
				Str("type", spec.Type).
				Str("url", spec.URL).
				Msg("repository type is not used for version resolution")
		}
	}

	if opts.DrupalURL != "" {
		repos = append(repos, NewComposerRepository(opts.DrupalURL, fetcher))
	}
	repos = append(repos, NewComposerRepository(packagistURL, fetcher))

	return NewCompositeRepository(opts.Logger, repos...), nil
}
