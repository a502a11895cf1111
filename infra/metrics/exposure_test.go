package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	coremetrics "github.com/steel-maritime/demurrage/core/metrics"
	"github.com/steel-maritime/demurrage/core/metrics/exposure"
)

func TestExposureSink(t *testing.T) {
	store := exposure.NewMemoryStore()
	sink, err := NewExposureSink(store, prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	now := time.Date(2025, 4, 2, 11, 0, 0, 0, time.UTC)
	for _, rec := range []coremetrics.PredictionRecord{
		{PortID: "CNSHA", VesselID: "IMO1", DelayHours: 10, Cost: 1000, Time: now},
		{PortID: "CNSHA", VesselID: "IMO2", DelayHours: 20, Cost: 2000, Time: now.Add(time.Hour)},
		{DelayHours: 99, Cost: 99, Time: now},
		{PortID: "SGSIN", RiskLevel: "unknown", Time: now},
	} {
		if err := sink.RecordPrediction(rec); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	if got := testutil.ToFloat64(sink.cost.WithLabelValues("CNSHA")); got != 3000 {
		t.Fatalf("expected cost 3000 got %v", got)
	}
	if got := testutil.ToFloat64(sink.avgDelay.WithLabelValues("CNSHA")); got != 15 {
		t.Fatalf("expected avg delay 15 got %v", got)
	}
	if ports := store.Ports(); len(ports) != 1 {
		t.Fatalf("expected one port, got %v", ports)
	}
	if vessels, _ := store.ByVessel(time.Time{}, time.Time{}); len(vessels) != 2 {
		t.Fatalf("expected two vessels, got %+v", vessels)
	}
}

func TestExposureSink_GaugesFollowLatestDay(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewExposureSink(exposure.NewMemoryStore(), reg)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	day := time.Date(2025, 4, 2, 11, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		rec := coremetrics.PredictionRecord{PortID: "CNSHA", DelayHours: 8, Cost: float64(100 * (i + 1)), Time: day.AddDate(0, 0, i)}
		if err := sink.RecordPrediction(rec); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	if n := testutil.CollectAndCount(sink.cost); n != 1 {
		t.Fatalf("expected one series per port, got %d", n)
	}
	if got := testutil.ToFloat64(sink.cost.WithLabelValues("CNSHA")); got != 500 {
		t.Fatalf("expected latest day cost 500 got %v", got)
	}
}
