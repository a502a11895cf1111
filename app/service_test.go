package app

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steel-maritime/demurrage/config"
	"github.com/steel-maritime/demurrage/core/alert"
	"github.com/steel-maritime/demurrage/core/clock"
	"github.com/steel-maritime/demurrage/core/fleet"
	coremetrics "github.com/steel-maritime/demurrage/core/metrics"
	"github.com/steel-maritime/demurrage/core/prediction"
	"github.com/steel-maritime/demurrage/infra/audit"
	"github.com/steel-maritime/demurrage/infra/mqtt"
)

// 2025-01-15 is a Wednesday.
var now = time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

type recordSink struct {
	mu     sync.Mutex
	preds  []coremetrics.PredictionRecord
	opts   []coremetrics.OptimizationRecord
	alerts []coremetrics.AlertRecord
}

func (r *recordSink) RecordPrediction(rec coremetrics.PredictionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.preds = append(r.preds, rec)
	return nil
}

func (r *recordSink) RecordOptimization(rec coremetrics.OptimizationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.opts = append(r.opts, rec)
	return nil
}

func (r *recordSink) RecordAlert(rec coremetrics.AlertRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = append(r.alerts, rec)
	return nil
}

func newService(t *testing.T, min prediction.RiskLevel) (*Service, *recordSink, *mqtt.MockPublisher) {
	t.Helper()
	sink := &recordSink{}
	pub := mqtt.NewMockPublisher()
	svc, err := NewWithDeps(Deps{
		Sink:       sink,
		Audit:      audit.NewMemoryStore(0),
		Alerts:     pub,
		Threshold:  alert.Threshold{Min: min},
		Clock:      clock.Fixed{T: now},
		Registerer: prometheus.NewRegistry(),
		Workers:    2,
	})
	require.NoError(t, err)
	return svc, sink, pub
}

var rotterdam = fleet.RequestIDs{
	VesselID:    "IMO9123456",
	DestPortID:  "NLRTM",
	CargoTypeID: "iron_ore",
	CargoVolume: 60000,
	ETA:         now.Add(24 * time.Hour),
}

func TestPredictPublishesAndAudits(t *testing.T) {
	svc, sink, pub := newService(t, prediction.RiskCritical)

	p := svc.Predict(context.Background(), rotterdam)
	require.NotEmpty(t, p.ID)
	assert.False(t, p.Result.IsEmpty())
	assert.Equal(t, svc.Engine().Predict(p.Request), p.Result)

	recs, err := svc.History(context.Background(), audit.Query{})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, p.ID, recs[0].ID)
	assert.Equal(t, audit.KindPrediction, recs[0].Kind)
	assert.Equal(t, "NLRTM", recs[0].PortID)
	assert.Equal(t, "iron_ore", recs[0].CargoTypeID)
	assert.Equal(t, "2025-01-16 10:00", recs[0].ETA)
	assert.Equal(t, p.Result.PredictedCost, recs[0].PredictedCost)
	assert.NotEmpty(t, recs[0].Payload)

	require.NoError(t, svc.Close())
	require.Len(t, sink.preds, 1)
	assert.Equal(t, p.ID, sink.preds[0].ID)
	assert.Equal(t, "IMO9123456", sink.preds[0].VesselID)
	assert.Empty(t, pub.Published(), "below alert threshold")
	assert.Empty(t, sink.alerts)
}

func TestPredictDefaultsETAToNow(t *testing.T) {
	svc, _, _ := newService(t, prediction.RiskCritical)
	defer func() { _ = svc.Close() }()

	ids := rotterdam
	ids.ETA = time.Time{}
	p := svc.Predict(context.Background(), ids)
	assert.Equal(t, now, p.Request.ETA)
	require.NotNil(t, p.Result.OptimalArrivalWindow)
}

func TestPredictRaisesAlert(t *testing.T) {
	svc, sink, pub := newService(t, prediction.RiskLow)

	p := svc.Predict(context.Background(), rotterdam)
	alerts := pub.Published()
	require.Len(t, alerts, 1)
	assert.Equal(t, p.ID, alerts[0].PredictionID)
	assert.Equal(t, "MV Pacific Trader", alerts[0].VesselName)
	assert.Equal(t, "NLRTM", alerts[0].PortID)
	assert.NotEmpty(t, alerts[0].ID)

	require.NoError(t, svc.Close())
	require.Len(t, sink.alerts, 1)
	assert.True(t, sink.alerts[0].Delivered)
}

func TestAlertFailureDoesNotFailPrediction(t *testing.T) {
	svc, sink, pub := newService(t, prediction.RiskLow)
	pub.FailPort["NLRTM"] = true

	p := svc.Predict(context.Background(), rotterdam)
	assert.False(t, p.Result.IsEmpty())

	require.NoError(t, svc.Close())
	require.Len(t, sink.alerts, 1)
	assert.False(t, sink.alerts[0].Delivered)
}

func TestPredictUnknownVessel(t *testing.T) {
	svc, sink, pub := newService(t, prediction.RiskLow)

	ids := rotterdam
	ids.VesselID = "nope"
	p := svc.Predict(context.Background(), ids)
	assert.True(t, p.Result.IsEmpty())
	assert.Empty(t, pub.Published())

	recs, err := svc.History(context.Background(), audit.Query{})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, string(prediction.RiskUnknown), recs[0].RiskLevel)
	assert.Empty(t, recs[0].VesselID)

	require.NoError(t, svc.Close())
	assert.Len(t, sink.preds, 1)
}

func TestPredictFeedsAnalytics(t *testing.T) {
	svc, _, _ := newService(t, prediction.RiskCritical)
	defer func() { _ = svc.Close() }()

	p := svc.Predict(context.Background(), rotterdam)
	unknown := rotterdam
	unknown.DestPortID = "nope"
	svc.Predict(context.Background(), unknown)

	// no collector drain needed
	a, err := svc.Analytics(time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, 1, a.Totals.Predictions)
	assert.Equal(t, p.Result.PredictedCost, a.Totals.TotalCost)
	assert.Equal(t, p.Result.PredictedDelayHours, a.Totals.AvgDelay)
	require.Len(t, a.ByPort, 1)
	assert.Equal(t, "NLRTM", a.ByPort[0].ID)
	require.Len(t, a.ByVessel, 1)
	assert.Equal(t, "IMO9123456", a.ByVessel[0].ID)
	require.Len(t, a.Monthly, 1)
	assert.Equal(t, "2025-01", a.Monthly[0].Month)

	days, err := svc.PortExposure("NLRTM", now, now)
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, 1, days[0].Predictions)
}

func TestOptimize(t *testing.T) {
	svc, sink, _ := newService(t, prediction.RiskCritical)

	o, err := svc.Optimize(context.Background(), rotterdam)
	require.NoError(t, err)
	require.NotEmpty(t, o.ID)
	assert.Len(t, o.Report.Candidates, 42)
	assert.Len(t, o.Report.BestArrivalTimes, 5)
	assert.Len(t, o.Report.WorstArrivalTimes, 3)

	recs, err := svc.History(context.Background(), audit.Query{Kind: audit.KindOptimization})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, o.Report.PotentialMaximumSavings, recs[0].Savings)
	assert.Empty(t, recs[0].ETA)

	require.NoError(t, svc.Close())
	require.Len(t, sink.opts, 1)
	assert.Equal(t, 42, sink.opts[0].Candidates)
	assert.Equal(t, "NLRTM", sink.opts[0].PortID)
}

func TestOptimizeCancelled(t *testing.T) {
	svc, _, _ := newService(t, prediction.RiskCritical)
	defer func() { _ = svc.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.Optimize(ctx, rotterdam)
	assert.ErrorIs(t, err, context.Canceled)

	recs, err := svc.History(context.Background(), audit.Query{})
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestNewFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Audit.Enabled = true
	cfg.Audit.Path = t.TempDir() + "/audit.jsonl"
	cfg.Metrics.Sinks = nil

	svc, err := New(cfg)
	require.NoError(t, err)
	p := svc.Predict(context.Background(), rotterdam)

	recs, err := svc.History(context.Background(), audit.Query{VesselID: "IMO9123456"})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, p.ID, recs[0].ID)
	assert.Len(t, svc.Fleet().Vessels(), 8)
	require.NoError(t, svc.Close())
}

func TestNewBadFleetPath(t *testing.T) {
	cfg := config.Default()
	cfg.Fleet.Path = t.TempDir() + "/missing.yaml"
	_, err := New(cfg)
	assert.Error(t, err)
}

func TestRunStopsOnCancel(t *testing.T) {
	svc, _, _ := newService(t, prediction.RiskCritical)
	defer func() { _ = svc.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatalf("Run did not return")
	}
}
