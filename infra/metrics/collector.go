package metrics

import (
	"context"

	"github.com/steel-maritime/demurrage/core/events"
	coremetrics "github.com/steel-maritime/demurrage/core/metrics"
	"github.com/steel-maritime/demurrage/infra/logger"
	"github.com/steel-maritime/demurrage/internal/eventbus"
)

// StartEventCollector subscribes to the bus and records every prediction,
// optimization and alert event in sink. It stops when ctx is canceled or the
// bus is closed; done is closed once the collector has exited.
func StartEventCollector(ctx context.Context, bus eventbus.EventBus, sink coremetrics.Sink, log logger.Logger) (done <-chan struct{}) {
	finished := make(chan struct{})
	if bus == nil || sink == nil {
		close(finished)
		return finished
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	sub := bus.Subscribe()
	go func() {
		defer close(finished)
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				if err := record(sink, ev); err != nil {
					log.Warnf("record %T: %v", ev, err)
				}
			}
		}
	}()
	return finished
}

func record(sink coremetrics.Sink, ev eventbus.Event) error {
	switch e := ev.(type) {
	case events.PredictionEvent:
		return sink.RecordPrediction(PredictionRecord(e))
	case events.OptimizationEvent:
		if r, ok := sink.(coremetrics.OptimizationRecorder); ok {
			return r.RecordOptimization(OptimizationRecord(e))
		}
	case events.AlertEvent:
		if r, ok := sink.(coremetrics.AlertRecorder); ok {
			return r.RecordAlert(coremetrics.AlertRecord{
				PredictionID: e.PredictionID,
				VesselID:     e.VesselID,
				RiskLevel:    string(e.RiskLevel),
				Delivered:    e.Err == nil,
				Time:         e.Time,
			})
		}
	}
	return nil
}

// PredictionRecord summarizes a prediction event.
func PredictionRecord(e events.PredictionEvent) coremetrics.PredictionRecord {
	return coremetrics.PredictionRecord{
		ID:         e.ID,
		VesselID:   e.VesselID(),
		PortID:     e.PortID(),
		RiskLevel:  string(e.Result.RiskLevel),
		DelayHours: e.Result.PredictedDelayHours,
		Cost:       e.Result.PredictedCost,
		Combined:   e.Combined,
		Time:       e.Time,
	}
}

// OptimizationRecord summarizes an optimization event.
func OptimizationRecord(e events.OptimizationEvent) coremetrics.OptimizationRecord {
	rec := coremetrics.OptimizationRecord{
		ID:         e.ID,
		VesselID:   e.VesselID(),
		Candidates: len(e.Report.Candidates),
		Savings:    e.Report.PotentialMaximumSavings,
		Duration:   e.Duration,
		Time:       e.Time,
	}
	if e.Request.Destination != nil {
		rec.PortID = e.Request.Destination.ID
	}
	if n := len(e.Report.Candidates); n > 0 {
		rec.BestCost = e.Report.Candidates[0].PredictedCost
		rec.WorstCost = e.Report.Candidates[n-1].PredictedCost
	}
	return rec
}
