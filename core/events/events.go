package events

import (
	"time"

	"github.com/steel-maritime/demurrage/core/model"
	"github.com/steel-maritime/demurrage/core/optimizer"
	"github.com/steel-maritime/demurrage/core/prediction"
)

// PredictionEvent is published after every prediction.
type PredictionEvent struct {
	ID      string
	Request model.PredictionRequest
	Result  prediction.Result
	// Combined is the unrounded combined delay factor.
	Combined float64
	Time     time.Time
}

// VesselID returns the id of the predicted vessel or "".
func (e PredictionEvent) VesselID() string {
	if e.Request.Vessel == nil {
		return ""
	}
	return e.Request.Vessel.ID
}

// PortID returns the id of the destination port or "".
func (e PredictionEvent) PortID() string {
	if e.Request.Destination == nil {
		return ""
	}
	return e.Request.Destination.ID
}

// OptimizationEvent is published when an arrival search completes.
type OptimizationEvent struct {
	ID       string
	Request  model.OptimizationRequest
	Report   optimizer.Report
	Duration time.Duration
	Time     time.Time
}

// VesselID returns the id of the vessel or "".
func (e OptimizationEvent) VesselID() string {
	if e.Request.Vessel == nil {
		return ""
	}
	return e.Request.Vessel.ID
}

// AlertEvent reports the outcome of a risk alert.
type AlertEvent struct {
	PredictionID string
	VesselID     string
	RiskLevel    prediction.RiskLevel
	Err          error
	Time         time.Time
}
