// Package config holds the settings shared by the hwsnap CLI and API server.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	KeyLogLevel = "log_level"
	KeyFormat   = "format"
	KeyPath     = "path"
	KeyListen   = "listen"

	DefaultLogLevel = "info"
	DefaultFormat   = "text"
	DefaultListen   = ":8080"

	envPrefix = "HWSNAP"
)

// Config is the resolved configuration of a binary.
type Config struct {
	LogLevel string `mapstructure:"log_level"`
	Format   string `mapstructure:"format"`
	// Path selects the volume for the storage probe; empty means the
	// working directory.
	Path   string `mapstructure:"path"`
	Listen string `mapstructure:"listen"`
}

// SetDefaults registers defaults and environment bindings on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyFormat, DefaultFormat)
	v.SetDefault(KeyPath, "")
	v.SetDefault(KeyListen, DefaultListen)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// Load reads configFile (if not empty) into v and decodes the result.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	return &cfg, nil
}
