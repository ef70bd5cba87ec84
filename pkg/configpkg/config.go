// Package configpkg provides parsing functionality for environment variables.
package configpkg

import (
	"errors"

	"github.com/spf13/viper"
)

// ErrMissingDBSource indicates that no storage location was configured.
var ErrMissingDBSource = errors.New("DB_SOURCE is not set")

// Config stores all configuration of the application.
//
// The values are read by viper from a config file or environment variables.
// Environment variables take precedence over the file.
type Config struct {
	DBDriver     string `mapstructure:"DB_DRIVER"`
	DBSource     string `mapstructure:"DB_SOURCE"`
	MigrationURL string `mapstructure:"MIGRATION_URL"`
	Environment  string `mapstructure:"GO_ENV"`
}

// Load reads configuration from path/app.env or environment variables.
//
// A missing config file is not an error as long as DB_SOURCE is provided
// through the environment.
func Load(path string) (Config, error) {
	var c Config

	v := viper.New()

	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("GO_ENV", "production")
	// Registered so that AutomaticEnv picks them up during Unmarshal.
	v.SetDefault("DB_SOURCE", "")
	v.SetDefault("MIGRATION_URL", "")

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return c, err
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}

	if c.DBSource == "" {
		return c, ErrMissingDBSource
	}

	return c, nil
}
