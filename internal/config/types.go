package config

import (
	"time"

	"github.com/raaihank/clip-sentinel/internal/rules"
)

// Config represents the main configuration structure
type Config struct {
	Enabled bool          `toml:"enabled" mapstructure:"enabled"`
	Rules   []rules.Rule  `toml:"rules" mapstructure:"rules"`
	Monitor MonitorConfig `toml:"monitor" mapstructure:"monitor"`
	Logging LoggingConfig `toml:"logging" mapstructure:"logging"`
}

// MonitorConfig contains clipboard monitoring configuration
type MonitorConfig struct {
	PollInterval   time.Duration `toml:"poll_interval" mapstructure:"poll_interval"`
	NotifyInterval time.Duration `toml:"notify_interval" mapstructure:"notify_interval"`
	NotifyBurst    int           `toml:"notify_burst" mapstructure:"notify_burst"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string            `toml:"level" mapstructure:"level"`
	Format string            `toml:"format" mapstructure:"format"` // json or console
	File   LoggingFileConfig `toml:"file" mapstructure:"file"`
}

// LoggingFileConfig contains file logging configuration
type LoggingFileConfig struct {
	Enabled bool   `toml:"enabled" mapstructure:"enabled"`
	Path    string `toml:"path" mapstructure:"path"`
}

// GetDefaults returns a configuration with sensible defaults
func GetDefaults() *Config {
	return &Config{
		Enabled: true,
		Rules:   rules.Defaults(),
		Monitor: MonitorConfig{
			PollInterval:   100 * time.Millisecond,
			NotifyInterval: 5 * time.Second,
			NotifyBurst:    1,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			File: LoggingFileConfig{
				Enabled: false,
				Path:    "logs/clip-sentinel.log",
			},
		},
	}
}
