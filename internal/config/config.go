package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/jakoblorz/drupal-init/internal/models"
)

// Config represents the application configuration
type Config struct {
	Defaults     DefaultsConfig     `mapstructure:"defaults" yaml:"defaults"`
	Repositories RepositoriesConfig `mapstructure:"repositories" yaml:"repositories"`
	HTTP         HTTPConfig         `mapstructure:"http" yaml:"http"`
	Logging      LoggingConfig      `mapstructure:"logging" yaml:"logging"`
}

// DefaultsConfig holds the answers offered when no flag is given
type DefaultsConfig struct {
	WebDir    string `mapstructure:"web_dir" yaml:"web_dir"`
	Stability string `mapstructure:"stability" yaml:"stability"`
	Core      string `mapstructure:"core" yaml:"core"`
	License   string `mapstructure:"license" yaml:"license"`
	Author    string `mapstructure:"author" yaml:"author"`
}

// RepositoriesConfig holds the package index URLs
type RepositoriesConfig struct {
	Packagist    string   `mapstructure:"packagist" yaml:"packagist"`
	DrupalModern string   `mapstructure:"drupal_modern" yaml:"drupal_modern"`
	DrupalLegacy string   `mapstructure:"drupal_legacy" yaml:"drupal_legacy"`
	Extra        []string `mapstructure:"extra" yaml:"extra"`
}

// HTTPConfig contains repository client settings
type HTTPConfig struct {
	Timeout  time.Duration `mapstructure:"timeout" yaml:"timeout"`
	CacheTTL time.Duration `mapstructure:"cache_ttl" yaml:"cache_ttl"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Validate checks the configuration and resets out of range values
func (c *Config) Validate() error {
	if c.Defaults.Stability != "" {
		if _, err := models.ParseStability(c.Defaults.Stability); err != nil {
			return fmt.Errorf("invalid defaults.stability: %w", err)
		}
	}

	if c.HTTP.Timeout <= 0 {
		c.HTTP.Timeout = DefaultTimeout
	}
	if c.HTTP.CacheTTL <= 0 {
		c.HTTP.CacheTTL = DefaultCacheTTL
	}

	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		c.Logging.Level = DefaultLogLevel
	}

	if c.Logging.Format != "json" {
		c.Logging.Format = DefaultLogFormat
	}

	for _, url := range []*string{&c.Repositories.Packagist, &c.Repositories.DrupalModern, &c.Repositories.DrupalLegacy} {
		*url = strings.TrimRight(strings.TrimSpace(*url), "/")
	}
	if c.Repositories.Packagist == "" {
		c.Repositories.Packagist = DefaultPackagistURL
	}
	if c.Repositories.DrupalModern == "" {
		c.Repositories.DrupalModern = models.ModeModern.RepositoryURL()
	}
	if c.Repositories.DrupalLegacy == "" {
		c.Repositories.DrupalLegacy = models.ModeLegacy.RepositoryURL()
	}

	return nil
}

// DrupalRepository returns the packages.drupal.org index for mode
func (c *Config) DrupalRepository(mode models.Mode) string {
	if mode == models.ModeLegacy {
		return c.Repositories.DrupalLegacy
	}
	return c.Repositories.DrupalModern
}
