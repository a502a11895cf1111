package prediction

import "sort"

// Priority orders recommendations. High priorities are listed first.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// Recommendation is a suggested mitigation and its expected saving.
type Recommendation struct {
	Priority        Priority `json:"priority"`
	Category        string   `json:"category"`
	Action          string   `json:"action"`
	PotentialSaving string   `json:"potential_saving"`
}

// Thresholds at which mitigation rules fire.
const (
	CongestionThreshold    = 0.6
	CargoHandlingThreshold = 0.5
	WeatherThreshold       = 0.5
	InefficiencyThreshold  = 0.4
	CompatibilityThreshold = 0.7
)

type rule struct {
	applies func(Scores) bool
	recs    []Recommendation
}

// rules are evaluated in order; the order breaks ties between equal
// priorities in the output.
var rules = []rule{
	{
		applies: func(s Scores) bool { return s.Congestion > CongestionThreshold },
		recs: []Recommendation{
			{PriorityHigh, "scheduling", "Consider arriving 24-48 hours earlier to secure berth slot", "15-25%"},
			{PriorityMedium, "communication", "Contact port agent to pre-book berth window", "10-15%"},
		},
	},
	{
		applies: func(s Scores) bool { return s.CargoHandling > CargoHandlingThreshold },
		recs: []Recommendation{
			{PriorityHigh, "operations", "Pre-arrange specialized equipment and stevedores", "10-20%"},
		},
	},
	{
		applies: func(s Scores) bool { return s.Weather > WeatherThreshold },
		recs: []Recommendation{
			{PriorityMedium, "planning", "Build weather buffer into schedule", "5-15%"},
		},
	},
	{
		applies: func(s Scores) bool { return 1-s.PortEfficiency > InefficiencyThreshold },
		recs: []Recommendation{
			{PriorityMedium, "alternatives", "Evaluate nearby alternative ports with better efficiency", "10-30%"},
		},
	},
	{
		applies: func(s Scores) bool { return s.Compatibility < CompatibilityThreshold },
		recs: []Recommendation{
			{PriorityLow, "fleet", "Consider using more suitable vessel type for this cargo", "5-10%"},
		},
	},
	{
		applies: func(Scores) bool { return true },
		recs: []Recommendation{
			{PriorityMedium, "documentation", "Submit all documentation 48 hours before arrival", "5-10%"},
		},
	},
}

// Recommend returns the mitigations triggered by the given scores, sorted by
// priority.
func Recommend(s Scores) []Recommendation {
	out := make([]Recommendation, 0, 4)
	for _, r := range rules {
		if r.applies(s) {
			out = append(out, r.recs...)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority.rank() < out[j].Priority.rank()
	})
	return out
}
