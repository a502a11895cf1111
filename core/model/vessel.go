package model

import "strings"

// DefaultDemurrageRate is the per-day demurrage charge applied when a vessel
// carries no rate of its own.
const DefaultDemurrageRate = 25000.0

// VesselType is a vessel category such as "Bulk Carrier" or "Tanker".
type VesselType struct {
	ID                string  `json:"id" yaml:"id"`
	Name              string  `json:"name" yaml:"name"`
	Category          string  `json:"category" yaml:"category"`
	TypicalDWTMin     float64 `json:"typical_dwt_min,omitempty" yaml:"typical_dwt_min"`
	TypicalDWTMax     float64 `json:"typical_dwt_max,omitempty" yaml:"typical_dwt_max"`
	LoadingRateFactor float64 `json:"loading_rate_factor,omitempty" yaml:"loading_rate_factor"`
}

// Vessel represents a ship whose arrival is being evaluated.
type Vessel struct {
	ID     string      `json:"id" yaml:"id"`
	Name   string      `json:"name" yaml:"name"`
	IMO    string      `json:"imo_number,omitempty" yaml:"imo_number"`
	TypeID string      `json:"vessel_type_id,omitempty" yaml:"vessel_type_id"`
	Type   *VesselType `json:"vessel_type,omitempty" yaml:"-"`

	DWT   float64 `json:"dwt,omitempty" yaml:"dwt"`   // deadweight tonnage
	LOA   float64 `json:"loa,omitempty" yaml:"loa"`   // length overall in metres
	Beam  float64 `json:"beam,omitempty" yaml:"beam"` // metres
	Draft float64 `json:"draft,omitempty" yaml:"draft"`

	// DemurrageRate is the charge per day of delay. Zero means unset.
	DemurrageRate float64 `json:"demurrage_rate,omitempty" yaml:"demurrage_rate"`
}

// DailyRate returns the demurrage rate, falling back to DefaultDemurrageRate
// when the vessel has none.
func (v Vessel) DailyRate() float64 {
	if v.DemurrageRate == 0 {
		return DefaultDemurrageRate
	}
	return v.DemurrageRate
}

// TypeName returns the lower-cased vessel type name or "" if unknown.
func (v Vessel) TypeName() string {
	if v.Type == nil {
		return ""
	}
	return strings.ToLower(v.Type.Name)
}
