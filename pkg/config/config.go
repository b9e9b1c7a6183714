// Package config loads, validates, and persists configuration for the
// Anor Storage Engine and for front-ends embedding it.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the configuration consumed by the storage engine and, via the
// pass-through Services section, by any front-end embedding it.
//
// Configuration sources, in order of precedence:
//  1. Environment variables (ANOR_*), for keys present in the file
//  2. Configuration file (YAML)
//  3. Default values (lowest priority)
//
// When no configuration file is found, Load returns the defaults and
// does not read environment variables.
type Config struct {
	// Storage configures the engine's data directory and instance-lock
	// behavior. This is the only section the core engine itself reads.
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`

	// Logging controls log output behavior.
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`

	// Metrics controls the optional Prometheus metrics capability.
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`

	// Services is an opaque pass-through section for external front-ends
	// (listen addresses, cluster peers, ...). The core engine never reads
	// it; it exists purely so a single config file can serve both the
	// engine and whatever wraps it.
	Services map[string]any `mapstructure:"services" yaml:"services,omitempty"`
}

// StorageConfig configures the engine's data directory and instance lock.
type StorageConfig struct {
	// DataPath is the absolute filesystem path of the engine's data
	// directory. Required.
	DataPath string `mapstructure:"data_path" yaml:"data_path" validate:"required"`

	// LockTimeout is the total time budget for acquiring the instance
	// lock before Open fails. Default: 5s.
	LockTimeout time.Duration `mapstructure:"lock_timeout" yaml:"lock_timeout" validate:"gt=0"`
}

// LoggingConfig holds logging settings in the same shape as
// internal/logger.Config. It is loaded and validated with the rest of
// Config; neither anor.OpenWithConfig nor the anor CLI applies it to the
// logger.
type LoggingConfig struct {
	// Level is the minimum log level to output.
	// Valid values: DEBUG, INFO, WARN, ERROR (case-insensitive).
	Level string `mapstructure:"level" yaml:"level" validate:"required,oneof=DEBUG INFO WARN ERROR debug info warn error"`

	// Format is the log output encoding: "text" or "json".
	Format string `mapstructure:"format" yaml:"format" validate:"required,oneof=text json"`

	// Output is "stdout", "stderr", or a file path.
	Output string `mapstructure:"output" yaml:"output"`
}

// MetricsConfig controls the optional Prometheus metrics capability.
type MetricsConfig struct {
	// Enabled is loaded with the rest of Config. Default: false.
	// anor.OpenWithConfig does not read it and wires no recorder from it;
	// a metrics.Recorder is attached only through anor.WithMetrics.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Namespace is the Prometheus metric namespace prefix.
	Namespace string `mapstructure:"namespace" yaml:"namespace"`
}

// Load loads configuration from file, environment, and defaults, then
// validates the result.
//
// Parameters:
//   - configPath: path to a YAML config file (empty uses the default
//     location, $XDG_CONFIG_HOME/anor/config.yaml).
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setupViper(v, configPath)

	found, err := readConfigFile(v)
	if err != nil {
		return nil, err
	}

	if !found {
		cfg := DefaultConfig()
		ApplyDefaults(cfg)
		if err := Validate(cfg); err != nil {
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
		return cfg, nil
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(configDecodeHooks())); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// MustLoad loads configuration, returning a user-friendly error pointing
// at `anor init` when no config file exists at the resolved path.
func MustLoad(configPath string) (*Config, error) {
	if configPath == "" {
		if !DefaultConfigExists() {
			return nil, fmt.Errorf("no configuration file found at default location: %s\n\n"+
				"Please initialize a configuration file first:\n"+
				"  anor init\n\n"+
				"Or specify a custom config file:\n"+
				"  anor <command> --config /path/to/config.yaml",
				DefaultConfigPath())
		}
		configPath = DefaultConfigPath()
	} else if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s\n\n"+
			"Please create the configuration file:\n"+
			"  anor init --config %s", configPath, configPath)
	}

	cfg, err := Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes cfg to path in YAML, creating parent directories as
// needed.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultConfig returns a Config populated with default values, pointed
// at a data directory under the user's config/state location.
func DefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills in zero-valued fields of cfg with defaults.
func ApplyDefaults(cfg *Config) {
	if cfg.Storage.DataPath == "" {
		cfg.Storage.DataPath = filepath.Join(configDir(), "data")
	}
	if cfg.Storage.LockTimeout <= 0 {
		cfg.Storage.LockTimeout = 5 * time.Second
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "INFO"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = "anor"
	}
}

// setupViper configures environment variable and config file resolution.
func setupViper(v *viper.Viper, configPath string) {
	v.SetEnvPrefix("ANOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(configDir())
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
}

// readConfigFile reads the config file if present. Returns (found, err).
func readConfigFile(v *viper.Viper) (bool, error) {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return false, nil
		}
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read config file: %w", err)
	}
	return true, nil
}

// configDecodeHooks composes the mapstructure decode hooks this config
// needs: only a time.Duration string parser, since StorageConfig is the
// lone duration-bearing section.
func configDecodeHooks() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(durationDecodeHook())
}

// durationDecodeHook converts string values (e.g. "5s") into
// time.Duration fields during mapstructure decoding.
func durationDecodeHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if to != reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}
		if from.Kind() != reflect.String {
			return data, nil
		}
		return time.ParseDuration(data.(string))
	}
}

// configDir returns the directory used for the default config file and
// (by default) the data directory: $XDG_CONFIG_HOME/anor, falling back
// to $HOME/.config/anor.
func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "anor")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".anor")
	}
	return filepath.Join(home, ".config", "anor")
}

// DefaultConfigPath returns the default config file location.
func DefaultConfigPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

// DefaultConfigExists reports whether a config file exists at the
// default location.
func DefaultConfigExists() bool {
	_, err := os.Stat(DefaultConfigPath())
	return err == nil
}
