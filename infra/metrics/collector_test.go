package metrics

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/steel-maritime/demurrage/core/events"
	coremetrics "github.com/steel-maritime/demurrage/core/metrics"
	"github.com/steel-maritime/demurrage/core/model"
	"github.com/steel-maritime/demurrage/core/optimizer"
	"github.com/steel-maritime/demurrage/core/prediction"
	"github.com/steel-maritime/demurrage/infra/logger"
	"github.com/steel-maritime/demurrage/internal/eventbus"
)

type captureSink struct {
	mu   sync.Mutex
	pred []coremetrics.PredictionRecord
	opt  []coremetrics.OptimizationRecord
	alr  []coremetrics.AlertRecord
}

func (c *captureSink) RecordPrediction(r coremetrics.PredictionRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pred = append(c.pred, r)
	return nil
}

func (c *captureSink) RecordOptimization(r coremetrics.OptimizationRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.opt = append(c.opt, r)
	return nil
}

func (c *captureSink) RecordAlert(r coremetrics.AlertRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.alr = append(c.alr, r)
	return nil
}

func TestStartEventCollector(t *testing.T) {
	bus := eventbus.New()
	sink := &captureSink{}
	ctx, cancel := context.WithCancel(context.Background())
	done := StartEventCollector(ctx, bus, sink, logger.NopLogger{})

	now := time.Now()
	req := model.PredictionRequest{Vessel: &model.Vessel{ID: "v1"}, Destination: &model.Port{ID: "NLRTM"}}
	bus.Publish(events.PredictionEvent{
		ID:       "p1",
		Request:  req,
		Result:   prediction.Result{PredictedDelayHours: 12, PredictedCost: 5000, RiskLevel: prediction.RiskHigh},
		Combined: 0.55,
		Time:     now,
	})
	bus.Publish(events.OptimizationEvent{
		ID:      "o1",
		Request: model.OptimizationRequest{Vessel: req.Vessel, Destination: req.Destination},
		Report: optimizer.Report{
			PotentialMaximumSavings: 300,
			Candidates:              []optimizer.TimeSlot{{PredictedCost: 100}, {PredictedCost: 400}},
		},
		Duration: time.Millisecond,
		Time:     now,
	})
	bus.Publish(events.AlertEvent{PredictionID: "p1", VesselID: "v1", RiskLevel: prediction.RiskHigh, Err: errors.New("offline"), Time: now})
	bus.Publish("unrelated")

	deadline := time.After(2 * time.Second)
	for {
		sink.mu.Lock()
		n := len(sink.pred) + len(sink.opt) + len(sink.alr)
		sink.mu.Unlock()
		if n == 3 {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for records, got %d", n)
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()
	<-done

	p := sink.pred[0]
	if p.ID != "p1" || p.VesselID != "v1" || p.PortID != "NLRTM" || p.RiskLevel != "high" || p.Cost != 5000 || p.Combined != 0.55 {
		t.Fatalf("unexpected prediction record %+v", p)
	}
	o := sink.opt[0]
	if o.PortID != "NLRTM" || o.Candidates != 2 || o.BestCost != 100 || o.WorstCost != 400 || o.Savings != 300 {
		t.Fatalf("unexpected optimization record %+v", o)
	}
	if sink.alr[0].Delivered {
		t.Fatalf("failed alert recorded as delivered")
	}
}

func TestStartEventCollector_StopsOnBusClose(t *testing.T) {
	bus := eventbus.New()
	done := StartEventCollector(context.Background(), bus, coremetrics.NopSink{}, nil)
	bus.Close()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("collector did not stop")
	}
	<-StartEventCollector(context.Background(), nil, coremetrics.NopSink{}, nil)
}
