package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration into v and returns it. Precedence, highest
// first: flags bound to v, DRUPAL_INIT_* environment variables, the config
// file, defaults. configFile overrides the default location; a missing
// default config file is not an error.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(ConfigDir())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults sets default values in viper
func setDefaults(v *viper.Viper) {
	v.SetDefault("defaults.web_dir", "")
	v.SetDefault("defaults.stability", "")
	v.SetDefault("defaults.core", "")
	v.SetDefault("defaults.license", "")
	v.SetDefault("defaults.author", "")

	v.SetDefault("repositories.packagist", DefaultPackagistURL)
	v.SetDefault("repositories.drupal_modern", "https://packages.drupal.org/8")
	v.SetDefault("repositories.drupal_legacy", "https://packages.drupal.org/7")
	v.SetDefault("repositories.extra", []string{})

	v.SetDefault("http.timeout", DefaultTimeout)
	v.SetDefault("http.cache_ttl", DefaultCacheTTL)

	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)
}
