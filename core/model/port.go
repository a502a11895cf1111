package model

// Port is a destination or origin port. Zero values of the optional numeric
// fields are treated as unset by the risk calculators.
type Port struct {
	ID        string  `json:"id" yaml:"id"`
	Name      string  `json:"name" yaml:"name"`
	Code      string  `json:"code,omitempty" yaml:"code"`
	Country   string  `json:"country,omitempty" yaml:"country"`
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`

	// AvgCongestionLevel is in [0,1].
	AvgCongestionLevel float64 `json:"avg_congestion_level,omitempty" yaml:"avg_congestion_level"`
	AvgBerthWaitHours  float64 `json:"avg_berth_wait_hours,omitempty" yaml:"avg_berth_wait_hours"`
	NumBerths          int     `json:"num_berths,omitempty" yaml:"num_berths"`
	MaxDraft           float64 `json:"max_draft,omitempty" yaml:"max_draft"`
	// CargoHandlingRate is in units per hour.
	CargoHandlingRate float64 `json:"cargo_handling_rate,omitempty" yaml:"cargo_handling_rate"`
	// WeatherDelayFactor is 1.0 for a neutral port.
	WeatherDelayFactor float64 `json:"weather_delay_factor,omitempty" yaml:"weather_delay_factor"`
}
