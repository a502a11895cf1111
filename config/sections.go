package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/steel-maritime/demurrage/core/prediction"
	"github.com/steel-maritime/demurrage/infra/mqtt"
)

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `json:"addr"`
	// Mode is the gin mode: debug, release or test.
	Mode string `json:"mode"`
}

func (c *ServerConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.Mode == "" {
		c.Mode = "release"
	}
}

func (c ServerConfig) Validate() error {
	switch c.Mode {
	case "debug", "release", "test":
		return nil
	}
	return fmt.Errorf("unknown mode %q", c.Mode)
}

// LogConfig sets the minimum log level.
type LogConfig struct {
	Level string `json:"level"`
}

func (c *LogConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
}

func (c LogConfig) Validate() error {
	if _, err := zerolog.ParseLevel(strings.ToLower(c.Level)); err != nil {
		return fmt.Errorf("level %q: %w", c.Level, err)
	}
	return nil
}

// AuditConfig defines the prediction audit trail and its rotation.
type AuditConfig struct {
	// Enabled writes records to Path. When false the trail is kept in memory.
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"`
	// MaxSizeMB triggers rotation when the file exceeds this size in megabytes.
	MaxSizeMB int `json:"max_size_mb"`
	// MaxBackups limits the number of rotated files to keep.
	MaxBackups int `json:"max_backups"`
	// MaxAgeDays removes rotated files older than this number of days.
	MaxAgeDays int `json:"max_age_days"`
	// MemoryLimit caps the in-memory trail.
	MemoryLimit int `json:"memory_limit"`
}

func (c *AuditConfig) SetDefaults() {
	if c.Path == "" {
		c.Path = "data/audit.jsonl"
	}
	if c.MaxSizeMB == 0 {
		c.MaxSizeMB = 50
	}
	if c.MaxBackups == 0 {
		c.MaxBackups = 5
	}
	if c.MaxAgeDays == 0 {
		c.MaxAgeDays = 30
	}
	if c.MemoryLimit == 0 {
		c.MemoryLimit = 1000
	}
}

func (c AuditConfig) Validate() error {
	if c.Enabled && c.Path == "" {
		return errors.New("path is required")
	}
	if c.MaxSizeMB < 0 || c.MaxBackups < 0 || c.MaxAgeDays < 0 || c.MemoryLimit < 0 {
		return errors.New("rotation limits must not be negative")
	}
	return nil
}

// AlertsConfig enables MQTT alerts for risky predictions.
type AlertsConfig struct {
	Enabled bool `json:"enabled"`
	// MinRiskLevel is the lowest risk level that raises an alert.
	MinRiskLevel string      `json:"min_risk_level"`
	MQTT         mqtt.Config `json:"mqtt"`
}

func (c *AlertsConfig) SetDefaults() {
	if c.MinRiskLevel == "" {
		c.MinRiskLevel = string(prediction.RiskHigh)
	}
	if c.MQTT.AlertTopic == "" {
		c.MQTT.AlertTopic = mqtt.DefaultAlertTopic
	}
	if c.MQTT.StatusTopic == "" {
		c.MQTT.StatusTopic = mqtt.DefaultStatusTopic
	}
}

// MinRisk returns MinRiskLevel as a risk level.
func (c AlertsConfig) MinRisk() prediction.RiskLevel {
	l, _ := prediction.ParseRiskLevel(strings.ToLower(c.MinRiskLevel))
	return l
}

func (c AlertsConfig) Validate() error {
	l, ok := prediction.ParseRiskLevel(strings.ToLower(c.MinRiskLevel))
	if !ok || l == prediction.RiskUnknown {
		return fmt.Errorf("unknown min_risk_level %q", c.MinRiskLevel)
	}
	if c.MQTT.QoS > 2 {
		return fmt.Errorf("qos %d out of range", c.MQTT.QoS)
	}
	if c.Enabled && c.MQTT.Broker == "" {
		return errors.New("mqtt.broker is required when alerts are enabled")
	}
	return nil
}

// FleetConfig points at an optional reference-data file. The embedded seed
// data is used when Path is empty.
type FleetConfig struct {
	Path string `json:"path"`
}

// OptimizerConfig tunes the arrival search.
type OptimizerConfig struct {
	// Workers bounds concurrent predictions; 0 uses GOMAXPROCS.
	Workers int `json:"workers"`
}

func (c OptimizerConfig) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	return nil
}
