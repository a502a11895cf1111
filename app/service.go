// Package app wires the prediction engine, the arrival optimizer and the
// fleet registry to the event bus, metrics sinks, audit trail and alerts.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/steel-maritime/demurrage/config"
	"github.com/steel-maritime/demurrage/core/alert"
	"github.com/steel-maritime/demurrage/core/catalog"
	"github.com/steel-maritime/demurrage/core/clock"
	"github.com/steel-maritime/demurrage/core/events"
	"github.com/steel-maritime/demurrage/core/fleet"
	coremetrics "github.com/steel-maritime/demurrage/core/metrics"
	"github.com/steel-maritime/demurrage/core/metrics/exposure"
	"github.com/steel-maritime/demurrage/core/model"
	coremon "github.com/steel-maritime/demurrage/core/monitoring"
	"github.com/steel-maritime/demurrage/core/optimizer"
	"github.com/steel-maritime/demurrage/core/prediction"
	"github.com/steel-maritime/demurrage/infra/audit"
	"github.com/steel-maritime/demurrage/infra/logger"
	"github.com/steel-maritime/demurrage/infra/metrics"
	"github.com/steel-maritime/demurrage/infra/monitoring"
	"github.com/steel-maritime/demurrage/infra/mqtt"
	"github.com/steel-maritime/demurrage/internal/eventbus"
)

// alertTimeout bounds a single alert delivery.
const alertTimeout = 5 * time.Second

// Deps are the collaborators of a Service. Nil fields get defaults: the
// embedded fleet, the default catalog, a NopSink, in-memory audit and
// exposure stores, no alerts, the default Prometheus registerer and the
// real clock. Every prediction is added to Exposure before Predict returns,
// whatever sinks are configured.
type Deps struct {
	Fleet      *fleet.Registry
	Catalog    *catalog.Catalog
	Sink       coremetrics.Sink
	Audit      audit.Store
	Exposure   exposure.Store
	Alerts     alert.Publisher
	Threshold  alert.Threshold
	Clock      clock.Clock
	Registerer prometheus.Registerer
	Workers    int
	Log        logger.Logger
	// PromAddr serves /metrics from Run when set.
	PromAddr string
}

// Service orchestrates predictions and arrival searches.
type Service struct {
	engine    *prediction.Engine
	optimizer *optimizer.Optimizer
	fleet     *fleet.Registry
	bus       *eventbus.Bus
	sink      coremetrics.Sink
	audit     audit.Store
	exposure  *metrics.ExposureSink
	alerts    alert.Publisher
	threshold alert.Threshold
	clock     clock.Clock
	log       logger.Logger
	promAddr  string

	stopCollector context.CancelFunc
	collectorDone <-chan struct{}
}

// Prediction is a prediction together with the id it was audited under.
type Prediction struct {
	ID      string
	Request model.PredictionRequest
	Result  prediction.Result
}

// Analytics is the fleet-wide exposure summary.
type Analytics struct {
	Totals   exposure.Summary   `json:"totals"`
	ByPort   []exposure.Summary `json:"by_port"`
	ByVessel []exposure.Summary `json:"by_vessel"`
	Monthly  []exposure.Month   `json:"monthly_trend"`
}

// Optimization is an arrival search report with its audit id.
type Optimization struct {
	ID      string
	Request model.OptimizationRequest
	Report  optimizer.Report
}

// New builds a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	if err := logger.SetLevel(cfg.Log.Level); err != nil {
		return nil, err
	}
	mon, err := monitoring.NewSentryMonitor(cfg.Sentry)
	if err != nil {
		return nil, err
	}
	coremon.Init(mon)

	reg, err := loadFleet(cfg.Fleet.Path)
	if err != nil {
		return nil, fmt.Errorf("fleet: %w", err)
	}
	sink, err := coremetrics.NewSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}

	var store audit.Store
	if cfg.Audit.Enabled {
		store, err = audit.NewRotatingJSONLStore(cfg.Audit.Path, cfg.Audit.MaxSizeMB, cfg.Audit.MaxBackups, cfg.Audit.MaxAgeDays)
		if err != nil {
			return nil, fmt.Errorf("audit: %w", err)
		}
	} else {
		store = audit.NewMemoryStore(cfg.Audit.MemoryLimit)
	}

	var pub alert.Publisher = alert.NopPublisher{}
	if cfg.Alerts.Enabled {
		p, err := mqtt.NewPahoPublisher(cfg.Alerts.MQTT)
		if err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("mqtt: %w", err)
		}
		pub = p
	}

	return NewWithDeps(Deps{
		Fleet:     reg,
		Sink:      sink,
		Audit:     store,
		Alerts:    pub,
		Threshold: alert.Threshold{Min: cfg.Alerts.MinRisk()},
		Workers:   cfg.Optimizer.Workers,
		Log:       logger.New("service"),
		PromAddr:  cfg.Metrics.PrometheusAddr,
	})
}

func loadFleet(path string) (*fleet.Registry, error) {
	if path == "" {
		return fleet.Default()
	}
	return fleet.Load(path)
}

// NewWithDeps builds a Service from explicit collaborators and starts the
// metrics collector.
func NewWithDeps(d Deps) (*Service, error) {
	if d.Fleet == nil {
		reg, err := fleet.Default()
		if err != nil {
			return nil, err
		}
		d.Fleet = reg
	}
	if d.Sink == nil {
		d.Sink = coremetrics.NopSink{}
	}
	if d.Audit == nil {
		d.Audit = audit.NewMemoryStore(0)
	}
	if d.Exposure == nil {
		d.Exposure = exposure.NewMemoryStore()
	}
	if d.Alerts == nil {
		d.Alerts = alert.NopPublisher{}
	}
	if d.Clock == nil {
		d.Clock = clock.Real{}
	}
	if d.Log == nil {
		d.Log = logger.NopLogger{}
	}

	exp, err := metrics.NewExposureSink(d.Exposure, d.Registerer)
	if err != nil {
		return nil, fmt.Errorf("exposure: %w", err)
	}

	engine := prediction.NewEngine(d.Catalog)
	s := &Service{
		engine:    engine,
		optimizer: optimizer.New(engine, d.Clock, d.Workers),
		fleet:     d.Fleet,
		bus:       eventbus.New(),
		sink:      d.Sink,
		audit:     d.Audit,
		exposure:  exp,
		alerts:    d.Alerts,
		threshold: d.Threshold,
		clock:     d.Clock,
		log:       d.Log,
		promAddr:  d.PromAddr,
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.stopCollector = cancel
	s.collectorDone = metrics.StartEventCollector(ctx, s.bus, s.sink, s.log)
	return s, nil
}

// Engine returns the prediction engine.
func (s *Service) Engine() *prediction.Engine { return s.engine }

// Catalog returns the reference catalog used by the engine.
func (s *Service) Catalog() *catalog.Catalog { return s.engine.Catalog() }

// Fleet returns the vessel, port and cargo registry.
func (s *Service) Fleet() *fleet.Registry { return s.fleet }

// Now returns the service clock reading.
func (s *Service) Now() time.Time { return s.clock.Now() }

// Bus returns the event bus predictions and searches are published on.
func (s *Service) Bus() eventbus.EventBus { return s.bus }

// Predict resolves ids and runs the engine. An empty ETA defaults to the
// current time. Audit and alert failures are logged and never fail the call.
func (s *Service) Predict(ctx context.Context, ids fleet.RequestIDs) Prediction {
	now := s.clock.Now()
	req := s.fleet.Resolve(ids).WithDefaultETA(now)
	a, _ := s.engine.Assess(req)
	p := Prediction{
		ID:      uuid.NewString(),
		Request: req,
		Result:  s.engine.Predict(req),
	}

	ev := events.PredictionEvent{
		ID:       p.ID,
		Request:  req,
		Result:   p.Result,
		Combined: a.Combined,
		Time:     now,
	}
	s.bus.Publish(ev)
	if err := s.exposure.RecordPrediction(metrics.PredictionRecord(ev)); err != nil {
		s.log.Errorf("exposure %s: %v", p.ID, err)
	}
	s.appendAudit(ctx, predictionRecord(p, now))
	if !p.Result.IsEmpty() && s.threshold.Triggers(p.Result.RiskLevel) {
		s.raiseAlert(ctx, p, now)
	}
	return p
}

// Optimize resolves ids and searches the arrival grid.
func (s *Service) Optimize(ctx context.Context, ids fleet.RequestIDs) (Optimization, error) {
	req := s.fleet.ResolveOptimization(ids)
	start := time.Now()
	report, err := s.optimizer.Optimize(ctx, req)
	if err != nil {
		return Optimization{}, err
	}
	o := Optimization{ID: uuid.NewString(), Request: req, Report: report}
	now := s.clock.Now()

	s.bus.Publish(events.OptimizationEvent{
		ID:       o.ID,
		Request:  req,
		Report:   report,
		Duration: time.Since(start),
		Time:     now,
	})
	s.appendAudit(ctx, optimizationRecord(o, now))
	return o, nil
}

// History returns audited predictions and searches, newest first.
func (s *Service) History(ctx context.Context, q audit.Query) ([]audit.Record, error) {
	return s.audit.Query(ctx, q)
}

// PortExposure returns the daily predicted demurrage exposure of a port.
func (s *Service) PortExposure(portID string, start, end time.Time) ([]exposure.Record, error) {
	return s.exposure.Store().Query(portID, start, end)
}

// Analytics summarizes predicted demurrage between start and end, either
// bound may be zero.
func (s *Service) Analytics(start, end time.Time) (Analytics, error) {
	st := s.exposure.Store()
	var (
		out Analytics
		err error
	)
	if out.Totals, err = st.Totals(start, end); err != nil {
		return Analytics{}, err
	}
	if out.ByPort, err = st.ByPort(start, end); err != nil {
		return Analytics{}, err
	}
	if out.ByVessel, err = st.ByVessel(start, end); err != nil {
		return Analytics{}, err
	}
	if out.Monthly, err = st.Monthly(start, end); err != nil {
		return Analytics{}, err
	}
	return out, nil
}

func (s *Service) appendAudit(ctx context.Context, rec audit.Record) {
	if err := s.audit.Append(ctx, rec); err != nil {
		s.log.Errorf("audit %s %s: %v", rec.Kind, rec.ID, err)
		coremon.CaptureException(err, map[string]string{"module": "audit", "kind": rec.Kind})
	}
}

func (s *Service) raiseAlert(ctx context.Context, p Prediction, now time.Time) {
	var name, vesselID, portID string
	if v := p.Request.Vessel; v != nil {
		name, vesselID = v.Name, v.ID
	}
	if d := p.Request.Destination; d != nil {
		portID = d.ID
	}
	a := alert.FromResult(p.ID, vesselID, name, portID, p.Request.ETA, p.Result, now)
	a.ID = uuid.NewString()

	ctx, cancel := context.WithTimeout(ctx, alertTimeout)
	defer cancel()
	err := s.alerts.Publish(ctx, a)
	if err != nil {
		s.log.Warnf("alert for prediction %s: %v", p.ID, err)
	}
	s.bus.Publish(events.AlertEvent{
		PredictionID: p.ID,
		VesselID:     vesselID,
		RiskLevel:    p.Result.RiskLevel,
		Err:          err,
		Time:         now,
	})
}

// Run serves /metrics when configured and blocks until ctx is done.
func (s *Service) Run(ctx context.Context) error {
	if s.promAddr == "" {
		<-ctx.Done()
		return nil
	}
	err := metrics.StartPromServer(ctx, s.promAddr, s.log)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("prom server: %w", err)
	}
	return nil
}

type closer interface{ Close() }

// Close drains the event collector and releases the audit trail and the
// alert publisher.
func (s *Service) Close() error {
	s.bus.Close()
	<-s.collectorDone
	s.stopCollector()
	if c, ok := s.alerts.(closer); ok {
		c.Close()
	}
	if c, ok := s.sink.(closer); ok {
		c.Close()
	}
	coremon.Flush(2 * time.Second)
	return s.audit.Close()
}

func predictionRecord(p Prediction, now time.Time) audit.Record {
	rec := audit.Record{
		ID:            p.ID,
		Kind:          audit.KindPrediction,
		Timestamp:     now,
		CargoVolume:   p.Request.CargoVolume,
		RiskLevel:     string(p.Result.RiskLevel),
		PredictedCost: p.Result.PredictedCost,
		Savings:       p.Result.PotentialSavings,
	}
	if v := p.Request.Vessel; v != nil {
		rec.VesselID = v.ID
	}
	if d := p.Request.Destination; d != nil {
		rec.PortID = d.ID
	}
	if c := p.Request.Cargo; c != nil {
		rec.CargoTypeID = c.ID
	}
	if !p.Request.ETA.IsZero() {
		rec.ETA = p.Request.ETA.Format(prediction.WindowTimeLayout)
	}
	rec.Payload, _ = json.Marshal(p.Result)
	return rec
}

func optimizationRecord(o Optimization, now time.Time) audit.Record {
	rec := audit.Record{
		ID:            o.ID,
		Kind:          audit.KindOptimization,
		Timestamp:     now,
		CargoVolume:   o.Request.CargoVolume,
		RiskLevel:     string(o.Report.CurrentPrediction.RiskLevel),
		PredictedCost: o.Report.CurrentPrediction.PredictedCost,
		Savings:       o.Report.PotentialMaximumSavings,
	}
	if v := o.Request.Vessel; v != nil {
		rec.VesselID = v.ID
	}
	if d := o.Request.Destination; d != nil {
		rec.PortID = d.ID
	}
	if c := o.Request.Cargo; c != nil {
		rec.CargoTypeID = c.ID
	}
	rec.Payload, _ = json.Marshal(o.Report)
	return rec
}
