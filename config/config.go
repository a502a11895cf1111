// Package config loads the service configuration from a YAML or JSON file
// with environment overrides.
//
// Environment variables prefixed with K_ override file values. A double
// underscore separates nested keys, so K_SERVER__ADDR sets server.addr.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/steel-maritime/demurrage/core/metrics"
	"github.com/steel-maritime/demurrage/infra/monitoring"
)

// EnvPrefix marks environment variables that override the file.
const EnvPrefix = "K_"

type Config struct {
	Server    ServerConfig      `json:"server"`
	Log       LogConfig         `json:"log"`
	Metrics   metrics.Config    `json:"metrics"`
	Audit     AuditConfig       `json:"audit"`
	Alerts    AlertsConfig      `json:"alerts"`
	Fleet     FleetConfig       `json:"fleet"`
	Optimizer OptimizerConfig   `json:"optimizer"`
	Sentry    monitoring.Config `json:"sentry"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	var cfg Config
	cfg.SetDefaults()
	return &cfg
}

// SetDefaults fills every unset field.
func (c *Config) SetDefaults() {
	c.Server.SetDefaults()
	c.Log.SetDefaults()
	c.Audit.SetDefaults()
	c.Alerts.SetDefaults()
}

// Validate checks every section.
func (c Config) Validate() error {
	validators := []struct {
		section string
		fn      func() error
	}{
		{"server", c.Server.Validate},
		{"log", c.Log.Validate},
		{"audit", c.Audit.Validate},
		{"alerts", c.Alerts.Validate},
		{"optimizer", c.Optimizer.Validate},
	}
	for _, v := range validators {
		if err := v.fn(); err != nil {
			return fmt.Errorf("%s: %w", v.section, err)
		}
	}
	return nil
}

// Load reads path, applies K_ environment overrides, fills defaults and
// validates the result. An empty path loads defaults and environment only.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		var parser koanf.Parser
		switch ext := strings.ToLower(filepath.Ext(path)); ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
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

// envKey maps K_AUDIT__MAX_SIZE_MB to audit.max_size_mb.
func envKey(s string) string {
	s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}
