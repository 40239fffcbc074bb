package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// OSGitClient implements GitClient using real git commands
type OSGitClient struct {
	ctx context.Context
	dir string
}

// NewOSGitClient creates a new OSGitClient running git in dir ("" = process cwd)
func NewOSGitClient(dir string) *OSGitClient {
	return &OSGitClient{
		ctx: context.Background(),
		dir: dir,
	}
}

// WithContext returns a new client with the given context
func (g *OSGitClient) WithContext(ctx context.Context) GitClient {
	return &OSGitClient{
		ctx: ctx,
		dir: g.dir,
	}
}

// WithDir returns a new client running git in dir
func (g *OSGitClient) WithDir(dir string) GitClient {
	return &OSGitClient{
		ctx: g.ctx,
		dir: dir,
	}
}

// ListConfig returns the effective git configuration as key/value pairs.
// A missing git binary yields an empty map, not an error.
func (g *OSGitClient) ListConfig() (map[string]string, error) {
	if _, err := exec.LookPath("git"); err != nil {
		return map[string]string{}, nil
	}

	cmd := exec.CommandContext(g.ctx, "git", "config", "-l")
	cmd.Dir = g.dir

	var out bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("failed to read git config: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	return parseConfigList(out.String()), nil
}

// parseConfigList parses `git config -l` output; later entries win
func parseConfigList(output string) map[string]string {
	config := make(map[string]string)
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		config[strings.ToLower(key)] = value
	}
	return config
}

// IsGitRepo checks if the working directory is inside a git repository
func (g *OSGitClient) IsGitRepo() (bool, error) {
	cmd := exec.CommandContext(g.ctx, "git", "rev-parse", "--git-dir")
	cmd.Dir = g.dir

	if err := cmd.Run(); err != nil {
		// Not a git repo
		return false, nil
	}

	return true, nil
}
