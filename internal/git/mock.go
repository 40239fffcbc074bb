package git

import (
	"context"
	"sync"
)

// MockGitClient implements GitClient for testing
type MockGitClient struct {
	mu     sync.RWMutex
	config map[string]string
	isRepo bool
	ctx    context.Context
	dir    string

	// Hooks for testing error scenarios
	ListConfigError error
}

// NewMockGitClient creates a new MockGitClient with empty configuration
func NewMockGitClient() *MockGitClient {
	return &MockGitClient{
		config: make(map[string]string),
		isRepo: true,
		ctx:    context.Background(),
	}
}

// SetConfig sets a configuration value
func (m *MockGitClient) SetConfig(key, value string) *MockGitClient {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.config[key] = value
	return m
}

// SetIsRepo controls the IsGitRepo result
func (m *MockGitClient) SetIsRepo(isRepo bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.isRepo = isRepo
}

func (m *MockGitClient) ListConfig() (map[string]string, error) {
	if m.ListConfigError != nil {
		return nil, m.ListConfigError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	config := make(map[string]string, len(m.config))
	for k, v := range m.config {
		config[k] = v
	}
	return config, nil
}

func (m *MockGitClient) IsGitRepo() (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.isRepo, nil
}

func (m *MockGitClient) WithContext(ctx context.Context) GitClient {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ctx = ctx
	return m
}

func (m *MockGitClient) WithDir(dir string) GitClient {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.dir = dir
	return m
}

// Dir returns the directory set by the last WithDir call
func (m *MockGitClient) Dir() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.dir
}
