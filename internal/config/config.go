// Package config loads MineAlert configuration from a YAML file with
// sensible defaults for local demo use.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML values like "250ms" parse.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config holds all MineAlert settings.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Simulator SimulatorConfig `yaml:"simulator"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	ListenAddr string `yaml:"listen_addr"`
	// TokenHash is a bcrypt hash of the API bearer token. Empty disables
	// authentication.
	TokenHash string `yaml:"token_hash"`
}

// DatabaseConfig configures persistence.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// SimulatorConfig configures the mission engine.
type SimulatorConfig struct {
	OriginLat float64  `yaml:"origin_lat"`
	OriginLon float64  `yaml:"origin_lon"`
	TickEvery Duration `yaml:"tick_every"`
	Seed      int64    `yaml:"seed"`
}

// LoggingConfig configures zap.
type LoggingConfig struct {
	Debug bool `yaml:"debug"`
}

// Default returns the built-in configuration. The origin sits on the demo
// survey area.
func Default() Config {
	return Config{
		Server: ServerConfig{
			ListenAddr: ":8080",
		},
		Database: DatabaseConfig{
			Path: "landmine_detection.db",
		},
		Simulator: SimulatorConfig{
			OriginLat: 34.0522,
			OriginLon: -118.2437,
			TickEvery: Duration(time.Second),
		},
		Logging: LoggingConfig{},
	}
}

// Load reads the config file at path over the defaults. A missing file is
// not an error; an empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.ListenAddr == "" {
		return fmt.Errorf("server.listen_addr must not be empty")
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path must not be empty")
	}
	if c.Simulator.TickEvery <= 0 {
		return fmt.Errorf("simulator.tick_every must be positive")
	}
	return nil
}
