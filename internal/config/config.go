package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"
	"github.com/raaihank/clip-sentinel/internal/logger"
	"github.com/raaihank/clip-sentinel/internal/rules"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// DefaultPath returns the per-user config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "clip-sentinel", "config.toml"), nil
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	// Set defaults
	config := GetDefaults()

	// Configure viper
	viper.SetConfigName("config")
	viper.SetConfigType("toml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/clip-sentinel/")
	viper.AddConfigPath("/etc/clip-sentinel/")

	// Environment variable overrides
	viper.SetEnvPrefix("CLIPSENTINEL")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Use specific config file if provided
	if configPath != "" {
		viper.SetConfigFile(configPath)
	}

	// Read configuration
	if err := viper.ReadInConfig(); err != nil {
		// Config file not found is not an error - we'll use defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Unmarshal into config struct
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// validateConfig validates the loaded configuration
func validateConfig(config *Config) error {
	if config.Monitor.PollInterval <= 0 {
		return fmt.Errorf("invalid poll interval: %s", config.Monitor.PollInterval)
	}

	if config.Monitor.NotifyBurst < 0 {
		return fmt.Errorf("invalid notify burst: %d", config.Monitor.NotifyBurst)
	}

	if config.Logging.Level != "debug" && config.Logging.Level != "info" && config.Logging.Level != "warn" && config.Logging.Level != "error" {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", config.Logging.Level)
	}

	if config.Logging.Format != "json" && config.Logging.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", config.Logging.Format)
	}

	seen := make(map[string]bool)
	for _, rule := range config.Rules {
		if seen[rule.Name] {
			return fmt.Errorf("duplicate rule name: %s", rule.Name)
		}
		seen[rule.Name] = true

		if err := rules.Validate(rule); err != nil {
			// A non-compiling pattern is tolerated here: the engine skips
			// it with a diagnostic so the rest of the set still applies.
			// Everything else Validate rejects (empty name or pattern,
			// empty-match patterns) is rejected before reaching the engine.
			var patternErr *rules.InvalidPatternError
			if errors.As(err, &patternErr) {
				continue
			}
			return fmt.Errorf("invalid rule: %w", err)
		}
	}

	return nil
}

// Watch starts watching the configuration file for changes. A change that
// fails to unmarshal or validate is logged and ignored; the previous
// configuration stays in effect.
func Watch(log *logger.Logger, callback func(*Config)) error {
	viper.WatchConfig()
	viper.OnConfigChange(func(e fsnotify.Event) {
		newConfig := GetDefaults()
		if err := viper.Unmarshal(newConfig); err != nil {
			log.Warn("Ignoring config change: failed to unmarshal",
				zap.String("file", e.Name),
				zap.Error(err),
			)
			return
		}

		if err := validateConfig(newConfig); err != nil {
			log.Warn("Ignoring config change: invalid configuration",
				zap.String("file", e.Name),
				zap.Error(err),
			)
			return
		}

		log.Info("Configuration reloaded", zap.String("file", e.Name))
		callback(newConfig)
	})

	return nil
}

// Save writes the configuration to path, creating the directory if needed.
// Used to re-persist the rule list after settings edits.
func Save(config *Config, path string) error {
	if err := validateConfig(config); err != nil {
		return fmt.Errorf("refusing to save invalid configuration: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Reset overwrites the configuration at path with the defaults.
func Reset(path string) error {
	return Save(GetDefaults(), path)
}
