// Package alert defines the high-risk arrival notifications published when
// a prediction crosses the configured risk threshold.
package alert

import (
	"context"
	"errors"
	"time"

	"github.com/steel-maritime/demurrage/core/prediction"
)

// ErrNotConnected is returned by publishers whose transport is down.
var ErrNotConnected = errors.New("alert publisher not connected")

// Alert is the payload sent for a risky arrival.
type Alert struct {
	ID              string               `json:"alert_id"`
	PredictionID    string               `json:"prediction_id"`
	VesselID        string               `json:"vessel_id"`
	VesselName      string               `json:"vessel_name,omitempty"`
	PortID          string               `json:"port_id"`
	ETA             string               `json:"eta,omitempty"`
	RiskLevel       prediction.RiskLevel `json:"risk_level"`
	DelayHours      float64              `json:"predicted_delay_hours"`
	PredictedCost   float64              `json:"predicted_cost"`
	Recommendations []string             `json:"recommendations,omitempty"`
	Timestamp       int64                `json:"timestamp"`
}

// Publisher delivers alerts to an external channel.
type Publisher interface {
	Publish(ctx context.Context, a Alert) error
}

// NopPublisher drops every alert.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Alert) error { return nil }

// Threshold decides which predictions raise an alert.
type Threshold struct {
	Min prediction.RiskLevel
}

// Triggers reports whether level is at or above the threshold. Unknown
// levels never trigger.
func (t Threshold) Triggers(level prediction.RiskLevel) bool {
	if level == prediction.RiskUnknown || level.Rank() == 0 {
		return false
	}
	return level.Rank() >= t.Min.Rank()
}

// FromResult builds an alert for a prediction. ETA is rendered in the
// arrival window layout when set.
func FromResult(predictionID, vesselID, vesselName, portID string, eta time.Time, res prediction.Result, now time.Time) Alert {
	a := Alert{
		PredictionID:  predictionID,
		VesselID:      vesselID,
		VesselName:    vesselName,
		PortID:        portID,
		RiskLevel:     res.RiskLevel,
		DelayHours:    res.PredictedDelayHours,
		PredictedCost: res.PredictedCost,
		Timestamp:     now.UnixMilli(),
	}
	if !eta.IsZero() {
		a.ETA = eta.Format(prediction.WindowTimeLayout)
	}
	for _, r := range res.Recommendations {
		a.Recommendations = append(a.Recommendations, r.Action)
	}
	return a
}
