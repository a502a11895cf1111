package optimizer

import (
	"context"
	"encoding/json"
	"errors"
	"runtime"
	"sort"
	"time"

	"github.com/steel-maritime/demurrage/core/clock"
	"github.com/steel-maritime/demurrage/core/model"
	"github.com/steel-maritime/demurrage/core/prediction"
	"golang.org/x/sync/errgroup"
)

// Search grid parameters.
const (
	SearchDays     = 14
	BaselineOffset = 7 * 24 * time.Hour
	BestCount      = 5
	WorstCount     = 3
)

// CandidateHours are the arrival hours, offset from the search start, tried
// on every day of the grid.
var CandidateHours = [...]int{6, 12, 18}

// GridSize is the number of candidates evaluated per search.
const GridSize = SearchDays * len(CandidateHours)

// ErrNoEngine is returned by Optimize when no predictor is configured.
var ErrNoEngine = errors.New("optimizer: no prediction engine")

// TimeSlot is one evaluated arrival time.
type TimeSlot struct {
	ETA           time.Time
	PredictedCost float64
	RiskLevel     prediction.RiskLevel
}

type timeSlotJSON struct {
	ETA           string               `json:"eta"`
	PredictedCost float64              `json:"predicted_cost"`
	RiskLevel     prediction.RiskLevel `json:"risk_level"`
}

// MarshalJSON renders the ETA as "YYYY-MM-DD HH:MM".
func (s TimeSlot) MarshalJSON() ([]byte, error) {
	return json.Marshal(timeSlotJSON{
		ETA:           s.ETA.Format(prediction.WindowTimeLayout),
		PredictedCost: s.PredictedCost,
		RiskLevel:     s.RiskLevel,
	})
}

// UnmarshalJSON parses the format written by MarshalJSON.
func (s *TimeSlot) UnmarshalJSON(b []byte) error {
	var raw timeSlotJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	eta, err := time.Parse(prediction.WindowTimeLayout, raw.ETA)
	if err != nil {
		return err
	}
	*s = TimeSlot{ETA: eta, PredictedCost: raw.PredictedCost, RiskLevel: raw.RiskLevel}
	return nil
}

// Report is the outcome of an arrival search.
type Report struct {
	CurrentPrediction       prediction.Result `json:"current_prediction"`
	BestArrivalTimes        []TimeSlot        `json:"best_arrival_times"`
	WorstArrivalTimes       []TimeSlot        `json:"worst_arrival_times"`
	PotentialMaximumSavings float64           `json:"potential_maximum_savings"`
	// Candidates is the full grid sorted by cost.
	Candidates []TimeSlot `json:"-"`
}

// Optimizer runs the grid search.
type Optimizer struct {
	predictor prediction.Predictor
	clock     clock.Clock
	workers   int
}

// New returns an optimizer evaluating candidates with p. A nil clock uses
// the real UTC clock and workers <= 0 uses GOMAXPROCS.
func New(p prediction.Predictor, c clock.Clock, workers int) *Optimizer {
	if c == nil {
		c = clock.Real{}
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Optimizer{predictor: p, clock: c, workers: workers}
}

// Grid returns the candidate arrival times measured from now, in evaluation
// order.
func Grid(now time.Time) []time.Time {
	out := make([]time.Time, 0, GridSize)
	for d := 0; d < SearchDays; d++ {
		for _, h := range CandidateHours {
			out = append(out, now.Add(time.Duration(d)*24*time.Hour+time.Duration(h)*time.Hour))
		}
	}
	return out
}

// Optimize predicts the baseline arrival one week out, evaluates every grid
// candidate and ranks them by predicted cost. Equal costs keep grid order.
func (o *Optimizer) Optimize(ctx context.Context, req model.OptimizationRequest) (Report, error) {
	if o == nil || o.predictor == nil {
		return Report{}, ErrNoEngine
	}
	now := o.clock.Now()
	baseline := o.predictor.Predict(req.At(now.Add(BaselineOffset)))

	grid := Grid(now)
	slots := make([]TimeSlot, len(grid))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for i, eta := range grid {
		i, eta := i, eta
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res := o.predictor.Predict(req.At(eta))
			slots[i] = TimeSlot{ETA: eta, PredictedCost: res.PredictedCost, RiskLevel: res.RiskLevel}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].PredictedCost < slots[j].PredictedCost
	})
	return Report{
		CurrentPrediction:       baseline,
		BestArrivalTimes:        head(slots, BestCount),
		WorstArrivalTimes:       tail(slots, WorstCount),
		PotentialMaximumSavings: prediction.Round(slots[len(slots)-1].PredictedCost-slots[0].PredictedCost, 2),
		Candidates:              slots,
	}, nil
}

func head(s []TimeSlot, n int) []TimeSlot {
	if n > len(s) {
		n = len(s)
	}
	return append([]TimeSlot(nil), s[:n]...)
}

func tail(s []TimeSlot, n int) []TimeSlot {
	if n > len(s) {
		n = len(s)
	}
	return append([]TimeSlot(nil), s[len(s)-n:]...)
}
