// Package monitoring reports errors to Sentry.
package monitoring

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"

	coremon "github.com/steel-maritime/demurrage/core/monitoring"
)

// Config holds the Sentry client settings.
type Config struct {
	DSN              string  `json:"dsn" yaml:"dsn"`
	Environment      string  `json:"environment" yaml:"environment"`
	Release          string  `json:"release" yaml:"release"`
	TracesSampleRate float64 `json:"traces_sample_rate" yaml:"traces_sample_rate"`
}

// NewSentryMonitor initializes Sentry. An empty DSN yields a no-op monitor.
func NewSentryMonitor(cfg Config) (coremon.Monitor, error) {
	if cfg.DSN == "" {
		return coremon.NopMonitor{}, nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      cfg.Environment,
		Release:          cfg.Release,
		TracesSampleRate: cfg.TracesSampleRate,
	})
	if err != nil {
		return nil, fmt.Errorf("sentry init: %w", err)
	}
	return sentryMonitor{}, nil
}

type sentryMonitor struct{}

func withTags(tags map[string]string, fn func()) {
	if len(tags) == 0 {
		fn()
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTags(tags)
		fn()
	})
}

func (sentryMonitor) CaptureException(err error, tags map[string]string) {
	withTags(tags, func() { sentry.CaptureException(err) })
}

func (sentryMonitor) CapturePanic(v any, tags map[string]string) {
	withTags(tags, func() { sentry.CurrentHub().Recover(v) })
}

func (sentryMonitor) Flush(timeout time.Duration) { sentry.Flush(timeout) }
