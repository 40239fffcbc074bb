package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jakoblorz/drupal-init/internal/models"
)

// InlineRepository serves packages declared inline in a "package" type
// repository definition
type InlineRepository struct {
	packages map[string][]PackageVersion
}

// NewInlineRepository parses the "package" entry of spec, which may be a
// single package object or a list of them
func NewInlineRepository(spec models.RepositorySpec) (*InlineRepository, error) {
	raw, ok := spec.Extra["package"]
	if !ok {
		return nil, fmt.Errorf("%w: package repository has no \"package\" entry", models.ErrInvalidInput)
	}

	var list []PackageVersion
	if err := json.Unmarshal(raw, &list); err != nil {
		var single PackageVersion
		if err := json.Unmarshal(raw, &single); err != nil {
			return nil, fmt.Errorf("%w: invalid inline package definition: %v", models.ErrInvalidInput, err)
		}
		list = []PackageVersion{single}
	}

	repo := &InlineRepository{packages: make(map[string][]PackageVersion)}
	for _, pkg := range list {
		if pkg.Name == "" || pkg.Version == "" {
			return nil, fmt.Errorf("%w: inline packages need a name and a version", models.ErrInvalidInput)
		}
		name := strings.ToLower(pkg.Name)
		pkg.Name = name
		repo.packages[name] = append(repo.packages[name], pkg)
	}

	return repo, nil
}

func (r *InlineRepository) Name() string {
	return "package"
}

func (r *InlineRepository) FindPackage(_ context.Context, name string) ([]PackageVersion, error) {
	versions := r.packages[strings.ToLower(name)]
	out := make([]PackageVersion, len(versions))
	copy(out, versions)
	return out, nil
}
