package prediction

import (
	"math"
	"time"

	"github.com/steel-maritime/demurrage/core/catalog"
	"github.com/steel-maritime/demurrage/core/model"
	"gonum.org/v1/gonum/stat/distuv"
)

// Weights of the risk components in the combined delay factor. They sum to 1.
const (
	CongestionWeight     = 0.30
	CargoHandlingWeight  = 0.20
	WeatherWeight        = 0.15
	PortEfficiencyWeight = 0.20
	CompatibilityWeight  = 0.15
)

// Delay, cost and loading constants.
const (
	BaseDelayHours     = 8.0
	DelayAmplification = 3.0
	DelayStdDevRatio   = 0.3
	ConfidenceLevel    = 0.95
	HoursPerDay        = 24.0
	DefaultLoadingRate = 5000.0
	SavingsRatio       = 0.3
)

// Risk tier lower bounds on the combined delay factor.
const (
	ModerateRiskFactor = 0.3
	HighRiskFactor     = 0.5
	CriticalRiskFactor = 0.7
)

// Arrival window constants.
const (
	BestArrivalHour     = 6
	ArrivalWindowLength = 4 * time.Hour
	ArrivalWindowReason = "Lower congestion during early morning weekday arrivals"
)

// Predictor produces a prediction for a resolved request.
type Predictor interface {
	Predict(req model.PredictionRequest) Result
}

// PredictFunc adapts a plain function to the Predictor interface.
type PredictFunc func(req model.PredictionRequest) Result

// Predict calls f(req).
func (f PredictFunc) Predict(req model.PredictionRequest) Result { return f(req) }

// Scores holds the five normalized risk components of a request.
// PortEfficiency and Compatibility are "higher is better" scores.
type Scores struct {
	Congestion     float64
	CargoHandling  float64
	Weather        float64
	PortEfficiency float64
	Compatibility  float64
}

// CombinedFactor is the weighted sum of the scores, with port efficiency and
// compatibility inverted so that every term grows with risk.
func (s Scores) CombinedFactor() float64 {
	return CongestionWeight*s.Congestion +
		CargoHandlingWeight*s.CargoHandling +
		WeatherWeight*s.Weather +
		PortEfficiencyWeight*(1-s.PortEfficiency) +
		CompatibilityWeight*(1-s.Compatibility)
}

// Breakdown converts the scores to the percentage form reported in results.
func (s Scores) Breakdown() RiskBreakdown {
	return RiskBreakdown{
		PortCongestion:      roundPct(s.Congestion),
		CargoHandling:       roundPct(s.CargoHandling),
		Weather:             roundPct(s.Weather),
		PortEfficiency:      roundPct(1 - s.PortEfficiency),
		VesselCompatibility: roundPct(1 - s.Compatibility),
	}
}

// Assessment carries the unrounded figures behind a Result.
type Assessment struct {
	Scores       Scores
	Combined     float64
	DelayHours   float64
	DelayRange   Range
	Cost         float64
	CostRange    Range
	Risk         RiskLevel
	LoadingHours float64
	DailyRate    float64
}

// Engine combines the risk calculators into a demurrage prediction.
type Engine struct {
	catalog *catalog.Catalog
}

// NewEngine returns an engine backed by cat, or by the default catalog when
// cat is nil.
func NewEngine(cat *catalog.Catalog) *Engine {
	if cat == nil {
		cat = catalog.Default()
	}
	return &Engine{catalog: cat}
}

// Catalog returns the reference catalog the engine reads.
func (e *Engine) Catalog() *catalog.Catalog { return e.catalog }

// Scores runs the five calculators against the destination port.
func (e *Engine) Scores(req model.PredictionRequest) Scores {
	return Scores{
		Congestion:     CongestionScore(req.Destination, req.ETA),
		CargoHandling:  CargoHandlingScore(req.Cargo, req.CargoVolume),
		Weather:        WeatherScore(req.Destination, req.ETA),
		PortEfficiency: PortEfficiencyScore(req.Destination),
		Compatibility:  CompatibilityScore(e.catalog, req.Vessel, req.Cargo),
	}
}

// Assess computes the unrounded prediction figures. It reports false when
// the request has no vessel or no destination port.
func (e *Engine) Assess(req model.PredictionRequest) (Assessment, bool) {
	if req.Vessel == nil || req.Destination == nil {
		return Assessment{}, false
	}
	s := e.Scores(req)
	combined := s.CombinedFactor()
	delay := PredictedDelay(combined)
	ci := ConfidenceInterval(delay)
	ci.Min = math.Max(0, ci.Min)
	rate := req.Vessel.DailyRate()

	return Assessment{
		Scores:     s,
		Combined:   combined,
		DelayHours: delay,
		DelayRange: ci,
		Cost:       CostFor(delay, rate),
		CostRange: Range{
			Min: CostFor(ci.Min, rate),
			Max: CostFor(ci.Max, rate),
		},
		Risk:         RiskLevelFor(combined),
		LoadingHours: EstimateLoadingTime(req.CargoVolume, req.Cargo, req.Destination),
		DailyRate:    rate,
	}, true
}

// Predict returns the rounded prediction for req. Requests without a vessel
// or destination port yield Empty().
func (e *Engine) Predict(req model.PredictionRequest) Result {
	a, ok := e.Assess(req)
	if !ok {
		return Empty()
	}
	return Result{
		PredictedDelayHours:       roundHours(a.DelayHours),
		DelayRange:                Range{Min: roundHours(a.DelayRange.Min), Max: roundHours(a.DelayRange.Max)},
		PredictedCost:             roundMoney(a.Cost),
		CostRange:                 Range{Min: roundMoney(a.CostRange.Min), Max: roundMoney(a.CostRange.Max)},
		RiskLevel:                 a.Risk,
		RiskFactors:               a.Scores.Breakdown(),
		EstimatedLoadingTimeHours: roundHours(a.LoadingHours),
		Recommendations:           Recommend(a.Scores),
		OptimalArrivalWindow:      OptimalArrival(req.ETA),
		PotentialSavings:          roundMoney(a.Cost * SavingsRatio),
	}
}

// PredictedDelay amplifies the base delay by the combined factor. A factor
// of 0 gives the base delay and a factor of 1 gives four times the base.
func PredictedDelay(combined float64) float64 {
	return BaseDelayHours * (1 + combined*DelayAmplification)
}

// ConfidenceInterval returns the two-sided ConfidenceLevel interval of a
// normal distribution centred on mean with a standard deviation of
// DelayStdDevRatio*mean. The lower bound is not floored.
func ConfidenceInterval(mean float64) Range {
	sigma := mean * DelayStdDevRatio
	if sigma <= 0 {
		return Range{Min: mean, Max: mean}
	}
	n := distuv.Normal{Mu: mean, Sigma: sigma}
	tail := (1 - ConfidenceLevel) / 2
	return Range{Min: n.Quantile(tail), Max: n.Quantile(1 - tail)}
}

// CostFor converts delay hours into cost at the given daily rate.
func CostFor(hours, dailyRate float64) float64 {
	return hours / HoursPerDay * dailyRate
}

// RiskLevelFor maps a combined delay factor to a risk tier. Lower bounds are
// inclusive.
func RiskLevelFor(combined float64) RiskLevel {
	switch {
	case combined < ModerateRiskFactor:
		return RiskLow
	case combined < HighRiskFactor:
		return RiskModerate
	case combined < CriticalRiskFactor:
		return RiskHigh
	default:
		return RiskCritical
	}
}

// EstimateLoadingTime returns the hours needed to work volume units of cargo.
// The port's handling rate is preferred over the cargo's typical rate.
func EstimateLoadingTime(volume float64, cargo *model.CargoType, port *model.Port) float64 {
	if volume <= 0 {
		return 0
	}
	rate := DefaultLoadingRate
	switch {
	case port != nil && port.CargoHandlingRate > 0:
		rate = port.CargoHandlingRate
	case cargo != nil && cargo.TypicalLoadingRate > 0:
		rate = cargo.TypicalLoadingRate
	}
	hours := volume / rate
	if cargo != nil && cargo.HandlingComplexity != 0 {
		hours *= cargo.HandlingComplexity
	}
	return hours
}

// OptimalArrival moves eta to BestArrivalHour on the same day, keeping the
// minutes, and pushes weekend results to the following Monday. It returns
// nil for a zero eta.
func OptimalArrival(eta time.Time) *ArrivalWindow {
	if eta.IsZero() {
		return nil
	}
	start := eta.Add(time.Duration(BestArrivalHour-eta.Hour()) * time.Hour)
	switch start.Weekday() {
	case time.Saturday:
		start = start.AddDate(0, 0, 2)
	case time.Sunday:
		start = start.AddDate(0, 0, 1)
	}
	return &ArrivalWindow{
		Start:  start,
		End:    start.Add(ArrivalWindowLength),
		Reason: ArrivalWindowReason,
	}
}
