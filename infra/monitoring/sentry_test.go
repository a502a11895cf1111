package monitoring

import (
	"testing"

	coremon "github.com/steel-maritime/demurrage/core/monitoring"
)

func TestEmptyDSNIsNop(t *testing.T) {
	m, err := NewSentryMonitor(Config{})
	if err != nil {
		t.Fatalf("new monitor: %v", err)
	}
	if _, ok := m.(coremon.NopMonitor); !ok {
		t.Fatalf("expected NopMonitor, got %T", m)
	}
}

func TestInvalidDSN(t *testing.T) {
	if _, err := NewSentryMonitor(Config{DSN: "::not a dsn"}); err == nil {
		t.Fatalf("expected error for invalid dsn")
	}
}
