package manifest

import "github.com/jakoblorz/drupal-init/internal/models"

// Document is the composer.json written for a Drupal project. Field order
// is the order keys appear in the written file.
type Document struct {
	Name             string                  `json:"name"`
	Description      string                  `json:"description,omitempty"`
	Type             string                  `json:"type"`
	Homepage         string                  `json:"homepage,omitempty"`
	License          string                  `json:"license,omitempty"`
	Authors          []models.Author         `json:"authors,omitempty"`
	MinimumStability string                  `json:"minimum-stability"`
	PreferStable     bool                    `json:"prefer-stable"`
	Repositories     []models.RepositorySpec `json:"repositories"`
	Require          map[string]string       `json:"require"`
	RequireDev       map[string]string       `json:"require-dev"`
	Conflict         map[string]string       `json:"conflict"`
	Extra            Extra                   `json:"extra"`
	Config           Config                  `json:"config"`
}

// Extra holds the Drupal specific "extra" block
type Extra struct {
	DrupalComposerHelper HelperConfig        `json:"drupal-composer-helper"`
	EnablePatching       bool                `json:"enable-patching"`
	InstallerPaths       map[string][]string `json:"installer-paths"`
	PreservePaths        []string            `json:"preserve-paths,omitempty"`
}

// HelperConfig configures hussainweb/drupal-composer-helper
type HelperConfig struct {
	WebPrefix  string `json:"web-prefix"`
	SetD7Paths bool   `json:"set-d7-paths,omitempty"`
}

// Config is the Composer "config" block
type Config struct {
	SortPackages       bool `json:"sort-packages"`
	OptimizeAutoloader bool `json:"optimize-autoloader"`
	APCuAutoloader     bool `json:"apcu-autoloader"`
	SecureHTTP         bool `json:"secure-http"`
	DiscardChanges     bool `json:"discard-changes"`
}
