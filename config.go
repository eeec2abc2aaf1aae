package vicalc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the optional YAML configuration file.
//
//	name: Budget
//	default_col_width: 12
//	autowidth_max: 30
//	log_level: debug
type Config struct {
	Name            string `yaml:"name"`
	DefaultColWidth int    `yaml:"default_col_width"`
	AutoWidthMax    int    `yaml:"autowidth_max"`
	LogLevel        string `yaml:"log_level"`
}

// ParseConfig decodes YAML configuration. Unknown keys are rejected.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.DefaultColWidth < 0 || cfg.AutoWidthMax < 0 {
		return nil, fmt.Errorf("parse config: column widths must not be negative")
	}
	if _, err := cfg.Level(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfig reads and parses a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}
	return ParseConfig(data)
}

// Level returns the configured log level, Info when unset.
func (c *Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return lvl, fmt.Errorf("parse config: log_level: %w", err)
	}
	return lvl, nil
}

// Options converts the configuration to session options. Unset fields
// leave the defaults alone.
func (c *Config) Options() []Option {
	var opts []Option
	if c.Name != "" {
		opts = append(opts, WithName(c.Name))
	}
	if c.DefaultColWidth > 0 {
		opts = append(opts, WithDefaultColWidth(c.DefaultColWidth))
	}
	if c.AutoWidthMax > 0 {
		opts = append(opts, WithAutoWidthLimit(c.AutoWidthMax))
	}
	return opts
}
