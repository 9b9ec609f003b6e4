package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of every environment variable read into the config.
const EnvPrefix = "GAMEREPORT_"

// ConfigPathEnvVar overrides the config file path when --config is not given.
const ConfigPathEnvVar = EnvPrefix + "CONFIG"

type CatalogConfig struct {
	Path string `koanf:"path" validate:"required"`
}

type ReportConfig struct {
	Dir           string `koanf:"dir" validate:"required"`
	Top           int    `koanf:"top" validate:"min=1,max=50"`
	TagDelimiters string `koanf:"tag_delimiters" validate:"required"`
	HTML          bool   `koanf:"html"`
}

type ChartConfig struct {
	Width  int `koanf:"width" validate:"min=320,max=4096"`
	Height int `koanf:"height" validate:"min=240,max=4096"`
}

type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=debug info warn error"`
	Format string `koanf:"format" validate:"oneof=text json"`
}

// Config holds every setting of a report run.
type Config struct {
	Catalog CatalogConfig `koanf:"catalog"`
	Report  ReportConfig  `koanf:"report"`
	Chart   ChartConfig   `koanf:"chart"`
	Log     LogConfig     `koanf:"log"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Catalog: CatalogConfig{
			Path: "flashpoint.sqlite",
		},
		Report: ReportConfig{
			Dir:           "report",
			Top:           10,
			TagDelimiters: ";,",
			HTML:          true,
		},
		Chart: ChartConfig{
			Width:  1024,
			Height: 768,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load layers defaults, an optional YAML file and GAMEREPORT_* environment
// variables, in that order. An empty path falls back to GAMEREPORT_CONFIG.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		path = os.Getenv(ConfigPathEnvVar)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// envTransformFunc maps GAMEREPORT_REPORT_TAG_DELIMITERS to
// report.tag_delimiters: the first underscore after the prefix separates the
// section from the key.
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	section, rest, ok := strings.Cut(key, "_")
	if !ok {
		return key
	}
	return section + "." + rest
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// SlogLevel converts the configured level name.
func (c *Config) SlogLevel() slog.Level {
	switch c.Log.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger builds the process logger writing to stderr.
func (c *Config) NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.SlogLevel()}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
