// Package audit keeps an append-only trail of predictions and arrival
// searches. Records are written as JSON lines to a size-rotated file.
package audit

import (
	"context"
	"encoding/json"
	"time"
)

// Record kinds.
const (
	KindPrediction   = "prediction"
	KindOptimization = "optimization"
)

// Record is one audited engine output.
type Record struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	Timestamp   time.Time `json:"timestamp"`
	VesselID    string    `json:"vessel_id,omitempty"`
	PortID      string    `json:"port_id,omitempty"`
	CargoTypeID string    `json:"cargo_type_id,omitempty"`
	CargoVolume float64   `json:"cargo_volume,omitempty"`
	// ETA is the requested arrival, empty for searches.
	ETA           string  `json:"eta,omitempty"`
	RiskLevel     string  `json:"risk_level,omitempty"`
	PredictedCost float64 `json:"predicted_cost"`
	Savings       float64 `json:"savings"`
	// Payload is the full serialized result or report.
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Query filters records. Zero fields match everything; Limit <= 0 means no
// limit.
type Query struct {
	Kind     string
	VesselID string
	PortID   string
	Start    time.Time
	End      time.Time
	Limit    int
}

// Match reports whether r passes the filters of q.
func (q Query) Match(r Record) bool {
	switch {
	case q.Kind != "" && r.Kind != q.Kind:
		return false
	case q.VesselID != "" && r.VesselID != q.VesselID:
		return false
	case q.PortID != "" && r.PortID != q.PortID:
		return false
	case !q.Start.IsZero() && r.Timestamp.Before(q.Start):
		return false
	case !q.End.IsZero() && r.Timestamp.After(q.End):
		return false
	}
	return true
}

// Store persists audit records and supports querying. Query returns the
// newest records first.
type Store interface {
	Append(ctx context.Context, rec Record) error
	Query(ctx context.Context, q Query) ([]Record, error)
	Close() error
}
