package github

import (
	"context"
	"fmt"
	"sync"
)

// MockClient implements GitHubClient for testing
type MockClient struct {
	mu    sync.RWMutex
	user  *User
	calls int

	// Hooks for testing error scenarios
	AuthenticatedUserError error
}

// NewMockClient creates a new MockClient with no authenticated user
func NewMockClient() *MockClient {
	return &MockClient{}
}

// SetUser sets the user returned by AuthenticatedUser
func (m *MockClient) SetUser(login, name, email string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.user = &User{Login: login, Name: name, Email: email}
}

// Calls returns how many times AuthenticatedUser was called
func (m *MockClient) Calls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.calls
}

func (m *MockClient) AuthenticatedUser(ctx context.Context) (*User, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.AuthenticatedUserError != nil {
		return nil, m.AuthenticatedUserError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.user == nil {
		return nil, fmt.Errorf("no authenticated user")
	}
	u := *m.user
	return &u, nil
}
