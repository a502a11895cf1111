package catalog

// Level is a coarse qualitative tag such as a weather sensitivity or a
// predictability rating.
type Level string

const (
	LevelLow      Level = "low"
	LevelModerate Level = "moderate"
	LevelHigh     Level = "high"
	LevelVeryHigh Level = "very_high"
)

// LoadingProfile describes how a vessel class behaves alongside the berth.
type LoadingProfile struct {
	RateFactor          float64 `json:"typical_rate_factor"`
	WeatherSensitivity  Level   `json:"weather_sensitivity"`
	InfrastructureNeeds Level   `json:"port_infrastructure_needs"`
}

// VesselClass is a vessel-type entry of the catalog.
type VesselClass struct {
	Key             string         `json:"key"`
	Name            string         `json:"name"`
	Category        string         `json:"category"`
	Subtypes        []string       `json:"subtypes"`
	CompatibleCargo []string       `json:"compatible_cargo"`
	Loading         LoadingProfile `json:"loading_characteristics"`
}

// CargoClass is a cargo-type entry of the catalog.
type CargoClass struct {
	Key                 string   `json:"key"`
	Name                string   `json:"name"`
	Category            string   `json:"category"`
	HandlingComplexity  float64  `json:"handling_complexity"`
	TypicalLoadingRate  float64  `json:"typical_loading_rate"`
	Hazardous           bool     `json:"hazardous"`
	WeatherSensitive    bool     `json:"weather_sensitive"`
	SpecialRequirements []string `json:"special_requirements"`
}

// TerminalClass describes a port terminal capability class.
type TerminalClass struct {
	Key       string   `json:"key"`
	Name      string   `json:"name"`
	Handles   []string `json:"handles"`
	Equipment []string `json:"equipment"`
	// EfficiencyFactors maps a quality tier (e.g. "modern") to a multiplier.
	EfficiencyFactors map[string]float64 `json:"efficiency_factors"`
}

// DelayRange is a typical delay span in hours.
type DelayRange struct {
	MinHours float64 `json:"min_hours"`
	MaxHours float64 `json:"max_hours"`
}

// DelayCause is an entry of the delay-cause taxonomy.
type DelayCause struct {
	Key            string     `json:"key"`
	Name           string     `json:"name"`
	TypicalDelay   DelayRange `json:"typical_delay_range"`
	Mitigations    []string   `json:"mitigation"`
	Predictability Level      `json:"predictability"`
}

// Relationship links a vessel class to a cargo class it can carry.
type Relationship struct {
	VesselType    string `json:"vessel_type"`
	CargoType     string `json:"cargo_type"`
	Compatibility Level  `json:"compatibility"`
}

// RiskFactors is the result of combining the categorical multiplier tables.
type RiskFactors struct {
	VesselFactor   float64 `json:"vessel_factor"`
	CargoFactor    float64 `json:"cargo_factor"`
	PortFactor     float64 `json:"port_factor"`
	SeasonalFactor float64 `json:"seasonal_factor"`
	CombinedRisk   float64 `json:"combined_risk"`
}

// Multiplier table names.
const (
	TableVesselSize      = "vessel_size"
	TableCargoComplexity = "cargo_complexity"
	TablePortEfficiency  = "port_efficiency"
	TableSeasonal        = "seasonal"
)

// vesselFamily maps a vessel type name fragment to the cargo category
// fragments it is built for.
type vesselFamily struct {
	name       string
	categories []string
}
