package resolver

import (
	"context"
	"testing"

	"github.com/jakoblorz/drupal-init/internal/models"
	"github.com/jakoblorz/drupal-init/internal/registry"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestResolver() *Resolver {
	repo := registry.NewMockRepository("mock").
		AddVersions("drupal/core", "8.4.0", "8.4.2", "8.5.0-rc1").
		AddVersions("drupal/drupal", "7.58", "7.59").
		AddVersions("drupal/devel", "1.2.0", "2.0.0-beta1")

	return New(repo, zerolog.Nop())
}

func TestResolver_RecommendCore(t *testing.T) {
	r := newTestResolver()

	core, err := r.Recommend(context.Background(), "drupal/core", models.StabilityDev)
	require.NoError(t, err)
	require.Equal(t, models.PackageRequirement{Name: "drupal/core", Constraint: "^8.4"}, core)

	legacy, err := r.Recommend(context.Background(), "drupal/drupal", models.StabilityStable)
	require.NoError(t, err)
	require.Equal(t, "^7.59", legacy.Constraint)
}

func TestResolver_RecommendErrors(t *testing.T) {
	r := newTestResolver()

	_, err := r.Recommend(context.Background(), "acme/unknown", models.StabilityDev)
	require.ErrorIs(t, err, models.ErrPackageNotFound)

	repo := registry.NewMockRepository("mock").AddVersions("acme/next", "3.0.0-alpha1")
	_, err = New(repo, zerolog.Nop()).Recommend(context.Background(), "acme/next", models.StabilityBeta)
	require.ErrorIs(t, err, models.ErrNoCandidateVersion)
}

func TestResolver_CheckPackage(t *testing.T) {
	r := newTestResolver()

	require.NoError(t, r.CheckPackage(context.Background(), "drupal/core"))
	require.ErrorIs(t, r.CheckPackage(context.Background(), "drupal/nope"), models.ErrPackageNotFound)
}

func TestResolver_ResolveRequirementsKeepsOrderAndDuplicates(t *testing.T) {
	r := newTestResolver()

	reqs := []models.PackageRequirement{
		{Name: "drupal/devel"},
		{Name: "drupal/core", Constraint: "~8.3"},
		{Name: "drupal/devel", Constraint: "^2.0@beta"},
	}

	resolved, err := r.ResolveRequirements(context.Background(), reqs, models.StabilityDev)
	require.NoError(t, err)
	require.Equal(t, []models.PackageRequirement{
		{Name: "drupal/devel", Constraint: "^1.2"},
		{Name: "drupal/core", Constraint: "~8.3"},
		{Name: "drupal/devel", Constraint: "^2.0@beta"},
	}, resolved)
}
