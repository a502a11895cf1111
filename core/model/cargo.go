package model

// CargoType describes a commodity and how hard it is to handle.
type CargoType struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Category string `json:"category" yaml:"category"`

	// HandlingComplexity is a multiplier where 1.0 is the neutral baseline.
	HandlingComplexity       float64 `json:"handling_complexity,omitempty" yaml:"handling_complexity"`
	RequiresSpecialEquipment bool    `json:"requires_special_equipment" yaml:"requires_special_equipment"`
	IsHazardous              bool    `json:"is_hazardous" yaml:"is_hazardous"`
	TypicalLoadingRate       float64 `json:"typical_loading_rate,omitempty" yaml:"typical_loading_rate"` // units/hour
}
