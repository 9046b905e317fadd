// Package config loads application configuration from defaults, an
// optional YAML file, and SHIPTIME_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/litescript/ls-shiptime/internal/route"
	"github.com/litescript/ls-shiptime/internal/tz"
)

// Config holds all application configuration.
type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Timezone TimezoneConfig `mapstructure:"timezone"`
	Route    RouteConfig    `mapstructure:"route"`
	Clock    ClockConfig    `mapstructure:"clock"`
	Alert    AlertConfig    `mapstructure:"alert"`
	Ship     ShipConfig     `mapstructure:"ship"`
	Session  SessionConfig  `mapstructure:"session"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type TimezoneConfig struct {
	Mode string `mapstructure:"mode"`
}

type RouteConfig struct {
	Speed         string        `mapstructure:"speed"`
	FrameInterval time.Duration `mapstructure:"frame_interval"`
}

type ClockConfig struct {
	TickInterval time.Duration `mapstructure:"tick_interval"`
}

type AlertConfig struct {
	Duration time.Duration `mapstructure:"duration"`
}

type ShipConfig struct {
	Latitude  float64 `mapstructure:"latitude"`
	Longitude float64 `mapstructure:"longitude"`
}

type SessionConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Dir returns the per-user configuration directory.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "ls-shiptime")
}

func setDefaults(v *viper.Viper) {
	dir := Dir()
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", filepath.Join(dir, "shiptime.log"))
	v.SetDefault("timezone.mode", "simple")
	v.SetDefault("route.speed", "medium")
	v.SetDefault("route.frame_interval", route.DefaultFrameInterval)
	v.SetDefault("clock.tick_interval", time.Second)
	v.SetDefault("alert.duration", 3*time.Second)
	v.SetDefault("ship.latitude", 0.0)
	v.SetDefault("ship.longitude", 0.0)
	v.SetDefault("session.enabled", true)
	v.SetDefault("session.path", filepath.Join(dir, "session.msgpack.zst"))
}

// Load reads configuration. An explicit path must exist; otherwise
// shiptime.yaml is searched in the working directory and the user config
// directory and is optional.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("shiptime")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(Dir())
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	// Environment variables: SHIPTIME_ROUTE_SPEED → route.speed
	v.SetEnvPrefix("SHIPTIME")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns the configuration produced by defaults alone.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// Validate checks that configuration values are sane.
func (c *Config) Validate() error {
	var errs []string

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Sprintf("log.level must be debug|info|warn|error, got %q", c.Log.Level))
	}
	switch strings.ToLower(c.Timezone.Mode) {
	case tz.ModeSimple.String(), tz.ModePolitical.String(), "zone", "iana":
	default:
		errs = append(errs, fmt.Sprintf("timezone.mode must be simple|political, got %q", c.Timezone.Mode))
	}
	if _, err := route.ParseSpeed(c.Route.Speed); err != nil {
		errs = append(errs, fmt.Sprintf("route.speed: %v", err))
	}
	if c.Route.FrameInterval <= 0 {
		errs = append(errs, "route.frame_interval must be positive")
	}
	if c.Clock.TickInterval <= 0 {
		errs = append(errs, "clock.tick_interval must be positive")
	}
	if c.Alert.Duration <= 0 {
		errs = append(errs, "alert.duration must be positive")
	}
	if c.Ship.Latitude < -90 || c.Ship.Latitude > 90 {
		errs = append(errs, fmt.Sprintf("ship.latitude must be -90..90, got %v", c.Ship.Latitude))
	}
	if c.Session.Enabled && c.Session.Path == "" {
		errs = append(errs, "session.path is required when session.enabled")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
