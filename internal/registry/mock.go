package registry

import (
	"context"
	"strings"
	"sync"
)

// MockRepository implements Repository for testing
type MockRepository struct {
	mu       sync.RWMutex
	name     string
	packages map[string][]PackageVersion
	lookups  []string

	// Hooks for testing error scenarios
	FindPackageError error
}

// NewMockRepository creates an empty MockRepository
func NewMockRepository(name string) *MockRepository {
	return &MockRepository{
		name:     name,
		packages: make(map[string][]PackageVersion),
	}
}

// AddVersions registers versions for a package
func (m *MockRepository) AddVersions(name string, versions ...string) *MockRepository {
	m.mu.Lock()
	defer m.mu.Unlock()

	name = strings.ToLower(name)
	for _, v := range versions {
		m.packages[name] = append(m.packages[name], PackageVersion{Name: name, Version: v})
	}
	return m
}

// Lookups returns the package names queried so far
func (m *MockRepository) Lookups() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]string, len(m.lookups))
	copy(out, m.lookups)
	return out
}

func (m *MockRepository) Name() string {
	return m.name
}

func (m *MockRepository) FindPackage(_ context.Context, name string) ([]PackageVersion, error) {
	m.mu.Lock()
	m.lookups = append(m.lookups, name)
	m.mu.Unlock()

	if m.FindPackageError != nil {
		return nil, m.FindPackageError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	versions := m.packages[strings.ToLower(name)]
	out := make([]PackageVersion, len(versions))
	copy(out, versions)
	return out, nil
}
