package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/jakoblorz/drupal-init/internal/registry"
)

// Default values
const (
	DefaultTimeout  = 30 * time.Second
	DefaultCacheTTL = 10 * time.Minute

	DefaultPackagistURL = registry.DefaultPackagistURL

	DefaultLogLevel  = "warn"
	DefaultLogFormat = "pretty"

	// EnvPrefix prefixes every environment variable, e.g. DRUPAL_INIT_HTTP_TIMEOUT
	EnvPrefix = "DRUPAL_INIT"
)

// ConfigDir returns the config directory path
func ConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".drupal-init"
	}
	return filepath.Join(dir, "drupal-init")
}

// ConfigFilePath returns the config file path
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
