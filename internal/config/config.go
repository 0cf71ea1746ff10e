// Package config loads the application configuration from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/dukerupert/supper/internal/fuzzy"
	"github.com/dukerupert/supper/internal/model"
)

// Config represents the application configuration.
type Config struct {
	App     AppConfig     `yaml:"app"`
	SQLite  SQLiteConfig  `yaml:"sqlite"`
	Planner PlannerConfig `yaml:"planner"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return fmt.Errorf("app: %w", err)
	}
	if err := c.SQLite.Validate(); err != nil {
		return fmt.Errorf("sqlite: %w", err)
	}
	if err := c.Planner.Validate(); err != nil {
		return fmt.Errorf("planner: %w", err)
	}
	return nil
}

type AppConfig struct {
	LogLevel  string     `yaml:"log_level"`
	LogFormat string     `yaml:"log_format"`
	HTTP      HTTPConfig `yaml:"http"`
}

func (c *AppConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.LogFormat, validation.In("text", "json")),
	); err != nil {
		return err
	}
	return c.HTTP.Validate()
}

type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns the HTTP listen address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

type SQLiteConfig struct {
	Path string `yaml:"path"`
}

func (c *SQLiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// PlannerConfig holds the preferences used when a request leaves them out,
// and the fuzzy match threshold used for pantry lookups.
type PlannerConfig struct {
	FuzzyThreshold float64           `yaml:"fuzzy_threshold"`
	Defaults       model.Preferences `yaml:"defaults"`
}

func (c *PlannerConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.FuzzyThreshold, validation.Min(0.0), validation.Max(1.0)),
	); err != nil {
		return err
	}
	return c.Defaults.Validate()
}

// Default returns a Config with working values for every field.
func Default() *Config {
	return &Config{
		App: AppConfig{
			LogLevel:  "info",
			LogFormat: "text",
			HTTP:      HTTPConfig{Port: 8080},
		},
		SQLite: SQLiteConfig{
			Path: "supper.db",
		},
		Planner: PlannerConfig{
			FuzzyThreshold: fuzzy.DefaultThreshold,
			Defaults: model.Preferences{
				DurationUnit:  model.DurationWeek,
				DurationCount: 1,
				EatingOutDays: 1,
				LeftoverDays:  1,
			},
		},
	}
}

// Load reads the YAML file at path over the defaults, expanding ${VAR}
// references from the environment first. A missing file yields the
// defaults. The result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	default:
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}
