package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/papapumpkin/somersault/internal/skill"
)

// Config holds all runtime configuration for a somersault session.
// Values are populated from .somersault.yaml, SOMERSAULT_* env vars, and CLI flags.
type Config struct {
	Takeoff       string        `mapstructure:"takeoff"`
	NamesFile     string        `mapstructure:"names_file"`
	TelemetryPath string        `mapstructure:"telemetry_path"`
	StorePath     string        `mapstructure:"store_path"`
	Debounce      time.Duration `mapstructure:"debounce"`
	Verbose       bool          `mapstructure:"verbose"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("takeoff", "feet")
	viper.SetDefault("names_file", "")
	viper.SetDefault("telemetry_path", "")
	viper.SetDefault("store_path", "")
	viper.SetDefault("debounce", 200*time.Millisecond)
	viper.SetDefault("verbose", false)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if _, err := skill.ParseBodyPart(cfg.Takeoff); err != nil {
		return Config{}, fmt.Errorf("config takeoff: %w", err)
	}
	if cfg.Debounce <= 0 {
		return Config{}, fmt.Errorf("config debounce must be positive, got %s", cfg.Debounce)
	}
	return cfg, nil
}

// TakeoffPart is the body part the first decoded skill takes off from.
func (c Config) TakeoffPart() skill.BodyPart {
	b, _ := skill.ParseBodyPart(c.Takeoff)
	return b
}

// Names builds the named-skill table: the built-in names overridden by the
// optional names file.
func (c Config) Names() (*skill.Table, error) {
	if c.NamesFile == "" {
		return skill.DefaultTable(), nil
	}
	extra, err := skill.LoadTable(c.NamesFile)
	if err != nil {
		return nil, err
	}
	return skill.DefaultTable().Merge(extra), nil
}
