// Package config loads command-line configuration for libstore.
//
// Values come from, highest precedence first: command-line flags,
// LIBSTORE_* environment variables, a YAML config file, and defaults.
// Nested keys map to environment names with underscores, so store.path
// is LIBSTORE_STORE_PATH.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jpl-au/libstore"
)

// Config is the complete CLI configuration.
type Config struct {
	Store   StoreConfig   `mapstructure:"store" yaml:"store"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`

	// Output is the default output format for command results.
	Output string `mapstructure:"output" validate:"oneof=table json yaml yml" yaml:"output"`
}

// StoreConfig selects and configures the store the commands operate on.
type StoreConfig struct {
	Kind       string      `mapstructure:"kind" validate:"required" yaml:"kind"`
	ID         string      `mapstructure:"id" yaml:"id"`
	Label      string      `mapstructure:"label" yaml:"label"`
	Path       string      `mapstructure:"path" validate:"required" yaml:"path"`
	ReadBuffer int         `mapstructure:"read_buffer" validate:"omitempty,min=16" yaml:"read_buffer,omitempty"`
	Hash       string      `mapstructure:"hash" validate:"oneof=xxh3 fnv1a blake2b" yaml:"hash"`
	SyncWrites bool        `mapstructure:"sync_writes" yaml:"sync_writes"`
	FileMode   fs.FileMode `mapstructure:"file_mode" validate:"lte=511" yaml:"file_mode"`
	DirMode    fs.FileMode `mapstructure:"dir_mode" validate:"lte=511" yaml:"dir_mode"`
}

// LoggingConfig controls diagnostic output on stderr.
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=DEBUG INFO WARN ERROR debug info warn error" yaml:"level"`
	Format string `mapstructure:"format" validate:"required,oneof=text json" yaml:"format"`
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"root":      "store.path",
	"log-level": "logging.level",
	"output":    "output",
}

// hashAlgorithms maps configuration names to store hash algorithms.
var hashAlgorithms = map[string]int{
	"xxh3":    libstore.AlgXXHash3,
	"fnv1a":   libstore.AlgFNV1a,
	"blake2b": libstore.AlgBlake2b,
}

// Load reads configuration from configPath, the environment and flags.
// An empty configPath looks for config.yaml in the default directory and
// carries on without one; an explicit path must exist. flags may be nil.
func Load(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setupViper(v, configPath)

	if err := readConfigFile(v, configPath != ""); err != nil {
		return nil, err
	}
	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(libstore.FileModeHook())); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// setupViper registers defaults, environment lookup and the file location.
// Every key gets a default so that AutomaticEnv can see it on Unmarshal.
func setupViper(v *viper.Viper, configPath string) {
	v.SetDefault("store.kind", libstore.Kind)
	v.SetDefault("store.id", "local")
	v.SetDefault("store.label", "Local library")
	v.SetDefault("store.path", "")
	v.SetDefault("store.read_buffer", 0)
	v.SetDefault("store.hash", "xxh3")
	v.SetDefault("store.sync_writes", false)
	v.SetDefault("store.file_mode", "0644")
	v.SetDefault("store.dir_mode", "0755")
	v.SetDefault("logging.level", "INFO")
	v.SetDefault("logging.format", "text")
	v.SetDefault("output", "table")

	v.SetEnvPrefix("LIBSTORE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		return
	}
	v.AddConfigPath(Dir())
	v.SetConfigName("config")
	v.SetConfigType("yaml")
}

func readConfigFile(v *viper.Viper, explicit bool) error {
	err := v.ReadInConfig()
	if err == nil {
		return nil
	}
	var notFound viper.ConfigFileNotFoundError
	if !explicit && (errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)) {
		return nil
	}
	return fmt.Errorf("failed to read config file: %w", err)
}

// ApplyDefaults fills values that the file or environment left empty and
// normalises the log level to upper case.
func ApplyDefaults(cfg *Config) {
	if cfg.Store.Kind == "" {
		cfg.Store.Kind = libstore.Kind
	}
	if cfg.Store.Hash == "" {
		cfg.Store.Hash = "xxh3"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "INFO"
	}
	cfg.Logging.Level = strings.ToUpper(cfg.Logging.Level)
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Output == "" {
		cfg.Output = "table"
	}
}

// StoreOptions converts the store section into registry options.
func (c *StoreConfig) StoreOptions() libstore.Options {
	return libstore.Options{
		"id":             c.ID,
		"label":          c.Label,
		"path":           c.Path,
		"read_buffer":    c.ReadBuffer,
		"hash_algorithm": hashAlgorithms[c.Hash],
		"sync_writes":    c.SyncWrites,
		"file_mode":      c.FileMode,
		"dir_mode":       c.DirMode,
	}
}

// Dir returns the default configuration directory: $XDG_CONFIG_HOME/libstore,
// ~/.config/libstore, or the working directory as a last resort.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "libstore")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "libstore")
}
