package resolver

import (
	"context"
	"fmt"

	"github.com/jakoblorz/drupal-init/internal/models"
	"github.com/jakoblorz/drupal-init/internal/registry"
	"github.com/rs/zerolog"
)

// Resolver recommends version constraints for packages from a repository set
type Resolver struct {
	repo   registry.Repository
	logger zerolog.Logger
}

// New creates a Resolver over the given repository set
func New(repo registry.Repository, logger zerolog.Logger) *Resolver {
	return &Resolver{
		repo:   repo,
		logger: logger,
	}
}

// CheckPackage returns ErrPackageNotFound unless some repository lists name
func (r *Resolver) CheckPackage(ctx context.Context, name string) error {
	versions, err := r.repo.FindPackage(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to look up %s: %w", name, err)
	}
	if len(versions) == 0 {
		return fmt.Errorf("%w: %s", models.ErrPackageNotFound, name)
	}
	return nil
}

// Recommend selects the best candidate of name under stability and returns
// the recommended requirement for it
func (r *Resolver) Recommend(ctx context.Context, name string, stability models.Stability) (models.PackageRequirement, error) {
	selector := registry.NewVersionSelector(r.repo, stability)

	best, err := selector.FindBestCandidate(ctx, name)
	if err != nil {
		return models.PackageRequirement{}, err
	}

	constraint := registry.RecommendedConstraint(*best)
	r.logger.Debug().
		Str("package", name).
		Str("candidate", best.Version).
		Str("constraint", constraint).
		Msg("resolved best candidate")

	return models.PackageRequirement{Name: name, Constraint: constraint}, nil
}

// ResolveRequirements keeps explicit constraints and recommends one for every
// requirement without, preserving order and duplicates
func (r *Resolver) ResolveRequirements(ctx context.Context, reqs []models.PackageRequirement, stability models.Stability) ([]models.PackageRequirement, error) {
	resolved := make([]models.PackageRequirement, 0, len(reqs))
	for _, req := range reqs {
		if req.HasConstraint() {
			resolved = append(resolved, req)
			continue
		}

		recommended, err := r.Recommend(ctx, req.Name, stability)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve a version for %s: %w", req.Name, err)
		}
		resolved = append(resolved, recommended)
	}
	return resolved, nil
}
