package metrics

import "time"

// PredictionRecord summarizes one prediction.
type PredictionRecord struct {
	ID         string
	VesselID   string
	PortID     string
	RiskLevel  string
	DelayHours float64
	Cost       float64
	Combined   float64
	Time       time.Time
}

// Sink records prediction outcomes.
type Sink interface {
	RecordPrediction(rec PredictionRecord) error
}

// OptimizationRecord summarizes one arrival search.
type OptimizationRecord struct {
	ID         string
	VesselID   string
	PortID     string
	Candidates int
	BestCost   float64
	WorstCost  float64
	Savings    float64
	Duration   time.Duration
	Time       time.Time
}

// OptimizationRecorder is implemented by sinks able to record searches.
type OptimizationRecorder interface {
	RecordOptimization(rec OptimizationRecord) error
}

// AlertRecord captures a risk alert publication attempt.
type AlertRecord struct {
	PredictionID string
	VesselID     string
	RiskLevel    string
	Delivered    bool
	Time         time.Time
}

// AlertRecorder is implemented by sinks able to record alerts.
type AlertRecorder interface {
	RecordAlert(rec AlertRecord) error
}

// NopSink implements every recorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordPrediction(PredictionRecord) error     { return nil }
func (NopSink) RecordOptimization(OptimizationRecord) error { return nil }
func (NopSink) RecordAlert(AlertRecord) error               { return nil }
