package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/steel-maritime/demurrage/core/metrics"
)

func captureServer(t *testing.T) (*httptest.Server, func() []string) {
	t.Helper()
	var mu sync.Mutex
	var bodies []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		mu.Lock()
		bodies = append(bodies, strings.TrimSpace(string(data)))
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)
	return srv, func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), bodies...)
	}
}

func TestInfluxSink_RecordPrediction(t *testing.T) {
	srv, bodies := captureServer(t)
	sink := NewInfluxSink(InfluxConfig{URL: srv.URL, Token: "token", Org: "org", Bucket: "bucket"})
	defer sink.Close()

	now := time.Now()
	rec := coremetrics.PredictionRecord{
		ID:         "p1",
		VesselID:   "IMO9123456",
		PortID:     "NLRTM",
		RiskLevel:  "moderate",
		DelayHours: 19.2,
		Cost:       31959.33,
		Combined:   0.46565,
		Time:       now,
	}
	if err := sink.RecordPrediction(rec); err != nil {
		t.Fatalf("record error: %v", err)
	}
	p := write.NewPointWithMeasurement("demurrage_prediction").
		AddTag("vessel_id", "IMO9123456").
		AddTag("port_id", "NLRTM").
		AddTag("risk_level", "moderate").
		AddTag("prediction_id", "p1").
		AddField("delay_hours", 19.2).
		AddField("cost", 31959.33).
		AddField("combined_factor", 0.466).
		SetTime(now)
	expected := strings.TrimSpace(write.PointToLineProtocol(p, time.Nanosecond))
	got := bodies()
	if len(got) != 1 || got[0] != expected {
		t.Errorf("unexpected body: %v", got)
	}
}

func TestInfluxSink_RecordOptimization(t *testing.T) {
	srv, bodies := captureServer(t)
	sink := NewInfluxSink(InfluxConfig{URL: srv.URL + "/api/v2/write", Org: "org", Bucket: "bucket"})
	defer sink.Close()

	err := sink.RecordOptimization(coremetrics.OptimizationRecord{
		ID: "o1", VesselID: "v1", PortID: "SGSIN", Candidates: 42,
		BestCost: 1000, WorstCost: 1500, Savings: 500, Duration: 2 * time.Millisecond, Time: time.Now(),
	})
	if err != nil {
		t.Fatalf("record error: %v", err)
	}
	got := bodies()
	if len(got) != 1 || !strings.HasPrefix(got[0], "arrival_optimization,") || !strings.Contains(got[0], "candidates=42i") {
		t.Errorf("unexpected body: %v", got)
	}
}

func TestNewInfluxSinkWithFallback(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			called = true
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}))
	defer srv.Close()

	sink := NewInfluxSinkWithFallback(InfluxConfig{URL: srv.URL + "/api/v2/write", Token: "tok", Org: "org", Bucket: "bucket"})
	if _, ok := sink.(*InfluxSink); ok {
		t.Fatalf("expected NopSink on failing health check")
	}
	if !called {
		t.Fatalf("health endpoint not called")
	}
}
