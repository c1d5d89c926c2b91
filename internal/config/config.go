// Package config loads astdiff CLI configuration from file, environment,
// and defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// configName is the config file name without extension.
const configName = ".astdiff"

// configType is the config file format.
const configType = "yaml"

// envPrefix is the environment variable prefix for astdiff settings.
const envPrefix = "ASTDIFF"

// envKeySeparator is the nested key separator in environment variable names.
const envKeySeparator = "_"

// Output format names accepted by the renderer.
const (
	FormatJSON    = "json"
	FormatSummary = "summary"
	FormatTable   = "table"
)

// DefaultFormat is the output format used when none is configured.
const DefaultFormat = FormatJSON

// ErrUnknownFormat is returned for a format outside the accepted set.
var ErrUnknownFormat = errors.New("unknown output format")

// Config holds the CLI settings. Core analysis semantics are not
// configurable; only the wrapper surface is.
type Config struct {
	// Format selects the output rendering: json, summary, or table.
	Format string `mapstructure:"format"`
	// Scorer enables the per-line severity scorer.
	Scorer bool `mapstructure:"scorer"`
	// Color enables ANSI colors in the summary format.
	Color bool `mapstructure:"color"`
}

// Validate checks the loaded settings.
func (c *Config) Validate() error {
	switch c.Format {
	case FormatJSON, FormatSummary, FormatTable:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, c.Format)
	}
}

// Load loads configuration from file, env vars, and defaults. If configPath
// is non-empty, it is used as the explicit config file path; otherwise the
// config file is searched in CWD and $HOME. A missing config file is not an
// error; defaults apply.
func Load(configPath string) (*Config, error) {
	viperCfg := viper.New()

	applyDefaults(viperCfg)

	viperCfg.SetConfigType(configType)
	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", envKeySeparator))
	viperCfg.AutomaticEnv()

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viperCfg.AddConfigPath(home)
		}
	}

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(readErr, &notFound) {
			return nil, fmt.Errorf("read config: %w", readErr)
		}
	}

	var cfg Config

	unmarshalErr := viperCfg.Unmarshal(&cfg)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal config: %w", unmarshalErr)
	}

	validateErr := cfg.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("validate config: %w", validateErr)
	}

	return &cfg, nil
}

func applyDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("format", DefaultFormat)
	viperCfg.SetDefault("scorer", false)
	viperCfg.SetDefault("color", true)
}
