// Package exposure aggregates predicted demurrage by destination port,
// vessel and day, and rolls the daily buckets up into per-port, per-vessel,
// monthly and fleet-wide summaries.
package exposure

import "time"

// MonthLayout formats the month of a Month summary.
const MonthLayout = "2006-01"

// Record is the predicted exposure of one port on one day. Add accepts a
// single prediction as a Record with Predictions set to 1.
type Record struct {
	PortID      string    `json:"port_id"`
	VesselID    string    `json:"vessel_id,omitempty"`
	Date        time.Time `json:"date"`
	Predictions int       `json:"predictions"`
	DelayHours  float64   `json:"total_delay_hours"`
	Cost        float64   `json:"total_cost"`
}

// AvgDelay returns the mean predicted delay, or 0 without predictions.
func (r Record) AvgDelay() float64 {
	if r.Predictions == 0 {
		return 0
	}
	return r.DelayHours / float64(r.Predictions)
}

// AvgCost returns the mean predicted cost, or 0 without predictions.
func (r Record) AvgCost() float64 {
	if r.Predictions == 0 {
		return 0
	}
	return r.Cost / float64(r.Predictions)
}

// Summary totals the predictions of one port or vessel, or of the whole
// fleet when ID is empty. Costs are rounded to cents, delays to 0.1 h.
type Summary struct {
	ID          string  `json:"id,omitempty"`
	Predictions int     `json:"predictions"`
	TotalCost   float64 `json:"total_predicted_cost"`
	AvgCost     float64 `json:"avg_predicted_cost"`
	AvgDelay    float64 `json:"avg_delay_hours"`
}

// Month is the predicted cost of one calendar month (UTC).
type Month struct {
	Month       string  `json:"month"`
	Predictions int     `json:"predictions"`
	TotalCost   float64 `json:"total_predicted_cost"`
}

// Store keeps exposure records. Zero start or end times leave that side of
// the range open; both bounds are whole UTC days, inclusive.
type Store interface {
	Add(Record) error
	// Query returns the daily records of a port, oldest first.
	Query(portID string, start, end time.Time) ([]Record, error)
	// ByPort returns one summary per port, highest total cost first.
	ByPort(start, end time.Time) ([]Summary, error)
	// ByVessel returns one summary per vessel, highest total cost first.
	ByVessel(start, end time.Time) ([]Summary, error)
	// Monthly returns the cost trend, oldest month first.
	Monthly(start, end time.Time) ([]Month, error)
	// Totals summarizes every prediction in the range.
	Totals(start, end time.Time) (Summary, error)
}

// Day truncates t to the start of its UTC day.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
