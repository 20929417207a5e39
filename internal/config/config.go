package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all server settings. Values come from an optional config
// file, overridden by DRAWDASH_-prefixed environment variables.
type Config struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	LogLevel string `mapstructure:"log_level"`

	// StorageType selects the stats backend ("memory" or "redis")
	StorageType string `mapstructure:"storage_type"`
	RedisURL    string `mapstructure:"redis_url"`

	// WordsFile optionally replaces the built-in word list
	WordsFile string `mapstructure:"words_file"`

	// RoundDuration is the guessing window per round, in seconds
	RoundDuration int `mapstructure:"round_duration"`
}

// Load reads configuration from the given file path (empty means defaults
// plus environment only) and applies environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("host", "")
	v.SetDefault("port", 8080)
	v.SetDefault("log_level", "info")
	v.SetDefault("storage_type", "memory")
	v.SetDefault("redis_url", "redis://localhost:6379")
	v.SetDefault("words_file", "")
	v.SetDefault("round_duration", 80)

	v.SetEnvPrefix("DRAWDASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.StorageType {
	case "memory", "redis":
	default:
		return fmt.Errorf("invalid storage_type %q (want memory or redis)", c.StorageType)
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}

	if c.RoundDuration < 1 {
		return fmt.Errorf("invalid round_duration %d", c.RoundDuration)
	}

	return nil
}
