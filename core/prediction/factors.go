package prediction

import (
	"math"
	"time"

	"github.com/steel-maritime/demurrage/core/catalog"
	"github.com/steel-maritime/demurrage/core/model"
)

// Congestion calculator constants.
const (
	DefaultCongestion        = 0.5
	WeekdayCongestionFactor  = 1.1
	BusinessHoursFactor      = 1.15
	OffHoursFactor           = 0.9
	BusinessHoursStart       = 8
	BusinessHoursEnd         = 18 // inclusive
	PeakSeasonCongestionMult = 1.2
)

// Cargo handling calculator constants.
const (
	DefaultHandlingComplexity = 1.0
	DefaultCargoHandlingScore = 0.5
	LargeVolumeThreshold      = 50000.0
	LargeVolumeFactor         = 1.3
	MediumVolumeThreshold     = 20000.0
	MediumVolumeFactor        = 1.1
	SpecialEquipmentFactor    = 1.2
	HazardousFactor           = 1.3
	cargoHandlingOffset       = 0.5
	cargoHandlingScale        = 2.0
)

// Weather calculator constants.
const (
	DefaultWeatherFactor = 1.0
	WinterWeatherFactor  = 1.4
	SummerWeatherFactor  = 0.8
	HighLatitude         = 45.0
	HighLatitudeFactor   = 1.2
	weatherOffset        = 0.5
	weatherScale         = 1.5
)

// Port efficiency calculator constants.
const (
	DefaultPortEfficiency    = 0.7
	HighThroughputRate       = 8000.0
	HighThroughputEfficiency = 0.9
	MidThroughputRate        = 5000.0
	MidThroughputEfficiency  = 0.75
	LowThroughputEfficiency  = 0.6
	ManyBerths               = 10
	ManyBerthsFactor         = 1.1
	FewBerths                = 3
	FewBerthsFactor          = 0.85
)

// Vessel compatibility calculator constants.
const (
	CompatibleScore    = 1.0
	MismatchScore      = 0.5
	DefaultCompatScore = 0.7
)

// CongestionScore estimates berth congestion at arrival. It starts from the
// port's average congestion and raises it for weekday, business-hour and
// shoulder-season arrivals. A zero ETA keeps the port average.
func CongestionScore(port *model.Port, eta time.Time) float64 {
	score := DefaultCongestion
	if port != nil && port.AvgCongestionLevel != 0 {
		score = port.AvgCongestionLevel
	}
	if !eta.IsZero() {
		if isWeekday(eta) {
			score *= WeekdayCongestionFactor
		}
		if h := eta.Hour(); h >= BusinessHoursStart && h <= BusinessHoursEnd {
			score *= BusinessHoursFactor
		} else {
			score *= OffHoursFactor
		}
		if isPeakSeason(eta.Month()) {
			score *= PeakSeasonCongestionMult
		}
	}
	return clamp01(score)
}

// CargoHandlingScore rates how hard the cargo is to work, scaled by volume.
func CargoHandlingScore(cargo *model.CargoType, volume float64) float64 {
	if cargo == nil {
		return DefaultCargoHandlingScore
	}
	complexity := DefaultHandlingComplexity
	if cargo.HandlingComplexity != 0 {
		complexity = cargo.HandlingComplexity
	}
	volumeFactor := 1.0
	switch {
	case volume > LargeVolumeThreshold:
		volumeFactor = LargeVolumeFactor
	case volume > MediumVolumeThreshold:
		volumeFactor = MediumVolumeFactor
	}
	if cargo.RequiresSpecialEquipment {
		complexity *= SpecialEquipmentFactor
	}
	if cargo.IsHazardous {
		complexity *= HazardousFactor
	}
	return clamp01((complexity*volumeFactor - cargoHandlingOffset) / cargoHandlingScale)
}

// WeatherScore rates weather exposure from the port's weather multiplier,
// the season of arrival and the port latitude.
func WeatherScore(port *model.Port, eta time.Time) float64 {
	value := DefaultWeatherFactor
	lat := 0.0
	if port != nil {
		if port.WeatherDelayFactor != 0 {
			value = port.WeatherDelayFactor
		}
		lat = port.Latitude
	}
	if !eta.IsZero() {
		switch {
		case isWinter(eta.Month()):
			value *= WinterWeatherFactor
		case isSummer(eta.Month()):
			value *= SummerWeatherFactor
		}
	}
	if math.Abs(lat) > HighLatitude {
		value *= HighLatitudeFactor
	}
	return clamp01((value - weatherOffset) / weatherScale)
}

// PortEfficiencyScore rates the port's throughput; higher is better. The
// engine consumes it inverted.
func PortEfficiencyScore(port *model.Port) float64 {
	if port == nil {
		return DefaultPortEfficiency
	}
	eff := DefaultPortEfficiency
	if port.CargoHandlingRate != 0 {
		switch {
		case port.CargoHandlingRate > HighThroughputRate:
			eff = HighThroughputEfficiency
		case port.CargoHandlingRate > MidThroughputRate:
			eff = MidThroughputEfficiency
		default:
			eff = LowThroughputEfficiency
		}
	}
	if port.NumBerths != 0 {
		switch {
		case port.NumBerths > ManyBerths:
			eff *= ManyBerthsFactor
		case port.NumBerths < FewBerths:
			eff *= FewBerthsFactor
		}
	}
	return math.Min(1, eff)
}

// CompatibilityScore rates how well the vessel type suits the cargo
// category; higher is better. Unrecognized vessel types get the fallback
// score.
func CompatibilityScore(cat *catalog.Catalog, vessel *model.Vessel, cargo *model.CargoType) float64 {
	if vessel == nil || cargo == nil || vessel.Type == nil {
		return DefaultCompatScore
	}
	if cat == nil {
		cat = catalog.Default()
	}
	recognized, ok := cat.MatchVesselFamily(vessel.Type.Name, cargo.Category)
	switch {
	case ok:
		return CompatibleScore
	case recognized:
		return MismatchScore
	default:
		return DefaultCompatScore
	}
}

func isWeekday(t time.Time) bool {
	d := t.Weekday()
	return d != time.Saturday && d != time.Sunday
}

func isPeakSeason(m time.Month) bool {
	return m == time.March || m == time.April || m == time.September || m == time.October
}

func isWinter(m time.Month) bool {
	return m == time.December || m == time.January || m == time.February
}

func isSummer(m time.Month) bool {
	return m == time.June || m == time.July || m == time.August
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
