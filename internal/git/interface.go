package git

import (
	"context"
)

// Config keys read when deriving prompt defaults
const (
	KeyUserName   = "user.name"
	KeyUserEmail  = "user.email"
	KeyGitHubUser = "github.user"
)

// GitClient provides an abstraction over git operations for testability
//
// Only configuration lookups are needed: the author default comes from
// user.name/user.email and the vendor default from github.user.
type GitClient interface {
	// Config operations
	ListConfig() (map[string]string, error)

	// Repository operations
	IsGitRepo() (bool, error)

	// Context support for cancellation
	WithContext(ctx context.Context) GitClient

	// WithDir returns a client running in dir
	WithDir(dir string) GitClient
}
