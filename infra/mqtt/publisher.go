package mqtt

import (
	"context"
	"fmt"
	"sync"

	"github.com/steel-maritime/demurrage/core/alert"
)

// MockPublisher records alerts in memory.
type MockPublisher struct {
	mu       sync.Mutex
	Alerts   []alert.Alert
	FailPort map[string]bool
}

// NewMockPublisher creates a new MockPublisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{FailPort: make(map[string]bool)}
}

// Publish records the alert or fails if its port is marked to fail.
func (m *MockPublisher) Publish(_ context.Context, a alert.Alert) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailPort[a.PortID] {
		return fmt.Errorf("publish failed for port %s", a.PortID)
	}
	m.Alerts = append(m.Alerts, a)
	return nil
}

// Published returns a copy of the recorded alerts.
func (m *MockPublisher) Published() []alert.Alert {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]alert.Alert(nil), m.Alerts...)
}
