package registry

import (
	"context"

	"github.com/rs/zerolog"
)

// CompositeRepository queries repositories in order; the first repository
// that knows a package provides all of its versions
type CompositeRepository struct {
	repositories []Repository
	logger       zerolog.Logger
}

// NewCompositeRepository creates a composite over repositories, in priority order
func NewCompositeRepository(logger zerolog.Logger, repositories ...Repository) *CompositeRepository {
	return &CompositeRepository{
		repositories: repositories,
		logger:       logger,
	}
}

func (c *CompositeRepository) Name() string {
	return "composite"
}

// Repositories returns the wrapped repositories in priority order
func (c *CompositeRepository) Repositories() []Repository {
	return c.repositories
}

func (c *CompositeRepository) FindPackage(ctx context.Context, name string) ([]PackageVersion, error) {
	for _, repo := range c.repositories {
		versions, err := repo.FindPackage(ctx, name)
		if err != nil {
			return nil, err
		}
		if len(versions) > 0 {
			c.logger.Debug().
				Str("package", name).
				Str("repository", repo.Name()).
				Int("versions", len(versions)).
				Msg("package found")
			return versions, nil
		}
	}

	c.logger.Debug().Str("package", name).Msg("package not found in any repository")
	return []PackageVersion{}, nil
}
