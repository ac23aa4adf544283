// Package config loads the application settings of the subproblem binary.
// The merged subproblem document itself is read by core/state.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"

	"github.com/f-sartori-v/mobauto2-decomp/core/factory"
	"github.com/f-sartori-v/mobauto2-decomp/core/metrics"
	"github.com/f-sartori-v/mobauto2-decomp/core/runlog"
	"github.com/f-sartori-v/mobauto2-decomp/infra/mqtt"
)

// EnvPrefix prefixes environment overrides. SP_RUNLOG__PATH sets runlog.path.
const EnvPrefix = "SP_"

type Config struct {
	LogLevel string               `json:"log_level"`
	Solver   factory.ModuleConfig `json:"solver"`
	Metrics  metrics.Config       `json:"metrics"`
	RunLog   runlog.Config        `json:"runlog"`
	MQTT     mqtt.Config          `json:"mqtt"`
}

// SetDefaults fills every section.
func (c *Config) SetDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Solver.Type == "" {
		c.Solver.Type = "simplex"
	}
	c.RunLog.SetDefaults()
	if c.MQTT.Enabled() {
		c.MQTT.SetDefaults()
	}
}

// Validate checks every section.
func (c Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if err := c.RunLog.Validate(); err != nil {
		return err
	}
	return c.MQTT.Validate()
}

func parserFor(path string) (koanf.Parser, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
}

// Load reads path, then a .env file in the working directory, then SP_
// environment variables. A missing config file leaves the defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			parser, err := parserFor(path)
			if err != nil {
				return nil, err
			}
			if err := k.Load(file.Provider(path), parser); err != nil {
				return nil, err
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	// Optional environment overrides
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
