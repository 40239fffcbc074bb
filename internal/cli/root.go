package cli

import (
	"fmt"

	"github.com/jakoblorz/drupal-init/internal/filesystem"
	"github.com/jakoblorz/drupal-init/internal/git"
	"github.com/jakoblorz/drupal-init/internal/github"
	"github.com/spf13/cobra"
)

// Version is set at build time
var Version = "dev"

// NewRootCommand creates the root command
func NewRootCommand(fs filesystem.FileSystem, gitClient git.GitClient, ghClient github.GitHubClient, options ...Option) *cobra.Command {
	// Without a subcommand the root behaves like `drupal-init init`.
	rootCmd := newInitCobraCommand(fs, gitClient, ghClient, options...)
	rootCmd.Use = "drupal-init"
	rootCmd.Short = "Create a Drupal composer.json file"
	rootCmd.Version = Version
	rootCmd.SilenceUsage = true

	rootCmd.AddCommand(NewInitCommand(fs, gitClient, ghClient, options...))

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	fs := filesystem.NewOSFileSystem()
	gitClient := git.NewOSGitClient("")

	var ghClient github.GitHubClient
	if client, err := github.NewClientFromEnv(); err == nil {
		ghClient = client
	}

	rootCmd := NewRootCommand(fs, gitClient, ghClient)

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command failed: %w", err)
	}

	return nil
}
