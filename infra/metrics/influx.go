package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/steel-maritime/demurrage/core/metrics"
	"github.com/steel-maritime/demurrage/infra/logger"
)

// InfluxConfig locates an InfluxDB v2 bucket.
type InfluxConfig struct {
	URL    string `json:"url"`
	Token  string `json:"token"`
	Org    string `json:"org"`
	Bucket string `json:"bucket"`
}

// InfluxSink writes prediction outcomes to InfluxDB using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a sink for the given endpoint. A URL ending in
// /api/v2/write is accepted.
func NewInfluxSink(cfg InfluxConfig) *InfluxSink {
	base := strings.TrimSuffix(cfg.URL, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, cfg.Token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback pings the InfluxDB instance and returns a NopSink
// if the health check fails.
func NewInfluxSinkWithFallback(cfg InfluxConfig) coremetrics.Sink {
	sink := NewInfluxSink(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// Close releases the client.
func (s *InfluxSink) Close() { s.client.Close() }

// RecordPrediction writes a demurrage_prediction point.
func (s *InfluxSink) RecordPrediction(rec coremetrics.PredictionRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("demurrage_prediction").
		AddTag("vessel_id", rec.VesselID).
		AddTag("port_id", rec.PortID).
		AddTag("risk_level", rec.RiskLevel).
		AddTag("prediction_id", rec.ID).
		AddField("delay_hours", round3(rec.DelayHours)).
		AddField("cost", round3(rec.Cost)).
		AddField("combined_factor", round3(rec.Combined)).
		SetTime(rec.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordOptimization writes an arrival_optimization point.
func (s *InfluxSink) RecordOptimization(rec coremetrics.OptimizationRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("arrival_optimization").
		AddTag("vessel_id", rec.VesselID).
		AddTag("port_id", rec.PortID).
		AddTag("optimization_id", rec.ID).
		AddField("candidates", rec.Candidates).
		AddField("best_cost", round3(rec.BestCost)).
		AddField("worst_cost", round3(rec.WorstCost)).
		AddField("savings", round3(rec.Savings)).
		AddField("duration_ms", round3(rec.Duration.Seconds()*1000)).
		SetTime(rec.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordAlert writes a risk_alert point.
func (s *InfluxSink) RecordAlert(rec coremetrics.AlertRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("risk_alert").
		AddTag("vessel_id", rec.VesselID).
		AddTag("risk_level", rec.RiskLevel).
		AddTag("delivered", strconv.FormatBool(rec.Delivered)).
		AddField("prediction_id", rec.PredictionID).
		SetTime(rec.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
