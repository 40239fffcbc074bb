package github

import (
	"context"
)

// GitHubClient provides an abstraction over the GitHub API operations used
// when deriving a vendor name for the package
type GitHubClient interface {
	// AuthenticatedUser returns the login of the user owning the token
	AuthenticatedUser(ctx context.Context) (*User, error)
}

// User represents a GitHub user
type User struct {
	Login string
	Name  string
	Email string
}
