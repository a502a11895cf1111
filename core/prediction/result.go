package prediction

import (
	"encoding/json"
	"time"
)

// RiskLevel is the categorical tier derived from the combined delay factor.
type RiskLevel string

const (
	RiskUnknown  RiskLevel = "unknown"
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// Rank orders risk levels from unknown (0) to critical (4).
func (l RiskLevel) Rank() int {
	switch l {
	case RiskLow:
		return 1
	case RiskModerate:
		return 2
	case RiskHigh:
		return 3
	case RiskCritical:
		return 4
	default:
		return 0
	}
}

// ParseRiskLevel converts a string such as "high" to a RiskLevel.
func ParseRiskLevel(s string) (RiskLevel, bool) {
	switch l := RiskLevel(s); l {
	case RiskUnknown, RiskLow, RiskModerate, RiskHigh, RiskCritical:
		return l, true
	}
	return "", false
}

// Range is a closed [min,max] interval.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// RiskBreakdown reports each risk component as a percentage contribution.
// Port efficiency and vessel compatibility are inverted so that higher
// always means riskier.
type RiskBreakdown struct {
	PortCongestion      float64 `json:"port_congestion"`
	CargoHandling       float64 `json:"cargo_handling"`
	Weather             float64 `json:"weather"`
	PortEfficiency      float64 `json:"port_efficiency"`
	VesselCompatibility float64 `json:"vessel_compatibility"`
}

// WindowTimeLayout is the rendering used for arrival times.
const WindowTimeLayout = "2006-01-02 15:04"

// ArrivalWindow is a suggested berth arrival slot.
type ArrivalWindow struct {
	Start  time.Time
	End    time.Time
	Reason string
}

type arrivalWindowJSON struct {
	Start  string `json:"start"`
	End    string `json:"end"`
	Reason string `json:"reason"`
}

// MarshalJSON renders start and end as naive "YYYY-MM-DD HH:MM" timestamps.
func (w ArrivalWindow) MarshalJSON() ([]byte, error) {
	return json.Marshal(arrivalWindowJSON{
		Start:  w.Start.Format(WindowTimeLayout),
		End:    w.End.Format(WindowTimeLayout),
		Reason: w.Reason,
	})
}

// UnmarshalJSON parses the format written by MarshalJSON.
func (w *ArrivalWindow) UnmarshalJSON(b []byte) error {
	var raw arrivalWindowJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	start, err := time.Parse(WindowTimeLayout, raw.Start)
	if err != nil {
		return err
	}
	end, err := time.Parse(WindowTimeLayout, raw.End)
	if err != nil {
		return err
	}
	*w = ArrivalWindow{Start: start, End: end, Reason: raw.Reason}
	return nil
}

// Result is the outcome of a prediction. It is built fresh for every request
// and is safe to serialize as an API response body.
type Result struct {
	PredictedDelayHours       float64          `json:"predicted_delay_hours"`
	DelayRange                Range            `json:"delay_range"`
	PredictedCost             float64          `json:"predicted_cost"`
	CostRange                 Range            `json:"cost_range"`
	RiskLevel                 RiskLevel        `json:"risk_level"`
	RiskFactors               RiskBreakdown    `json:"risk_factors"`
	EstimatedLoadingTimeHours float64          `json:"estimated_loading_time_hours"`
	Recommendations           []Recommendation `json:"recommendations"`
	OptimalArrivalWindow      *ArrivalWindow   `json:"optimal_arrival_window"`
	PotentialSavings          float64          `json:"potential_savings"`
}

// Empty returns the result produced for requests without a vessel or a
// destination port.
func Empty() Result {
	return Result{
		RiskLevel:       RiskUnknown,
		Recommendations: []Recommendation{},
	}
}

// IsEmpty reports whether r is the empty result.
func (r Result) IsEmpty() bool {
	return r.RiskLevel == RiskUnknown
}
