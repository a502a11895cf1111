package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	coremetrics "github.com/steel-maritime/demurrage/core/metrics"
)

// PromSink records predictions, searches and alerts in Prometheus metrics.
type PromSink struct {
	predictions   *prometheus.CounterVec
	delay         *prometheus.HistogramVec
	cost          *prometheus.HistogramVec
	optimizations *prometheus.CounterVec
	searchTime    prometheus.Histogram
	savings       prometheus.Histogram
	alerts        *prometheus.CounterVec
}

// NewPromSink registers the metrics on the default Prometheus registerer.
// The /metrics endpoint is served separately by StartPromServer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers the metrics on reg. A nil registerer
// defaults to the global Prometheus registerer. Collectors already
// registered by an earlier sink are reused.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PromSink{
		predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "demurrage_predictions_total",
			Help: "Number of demurrage predictions by risk level",
		}, []string{"risk_level"}),
		delay: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "demurrage_predicted_delay_hours",
			Help:    "Predicted berth delay in hours",
			Buckets: []float64{8, 12, 16, 20, 24, 28, 32},
		}, []string{"port_id"}),
		cost: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "demurrage_predicted_cost",
			Help:    "Predicted demurrage cost",
			Buckets: prometheus.ExponentialBuckets(5000, 2, 8),
		}, []string{"port_id"}),
		optimizations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "demurrage_optimizations_total",
			Help: "Number of arrival searches",
		}, []string{"port_id"}),
		searchTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "demurrage_optimization_duration_seconds",
			Help:    "Wall time of an arrival search",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
		savings: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "demurrage_optimization_savings",
			Help:    "Cost difference between the worst and best candidate arrival",
			Buckets: prometheus.ExponentialBuckets(100, 2, 10),
		}),
		alerts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "demurrage_alerts_total",
			Help: "Risk alerts by level and delivery outcome",
		}, []string{"risk_level", "delivered"}),
	}
	var err error
	if s.predictions, err = register(reg, s.predictions); err != nil {
		return nil, err
	}
	if s.delay, err = register(reg, s.delay); err != nil {
		return nil, err
	}
	if s.cost, err = register(reg, s.cost); err != nil {
		return nil, err
	}
	if s.optimizations, err = register(reg, s.optimizations); err != nil {
		return nil, err
	}
	if s.searchTime, err = register(reg, s.searchTime); err != nil {
		return nil, err
	}
	if s.savings, err = register(reg, s.savings); err != nil {
		return nil, err
	}
	if s.alerts, err = register(reg, s.alerts); err != nil {
		return nil, err
	}
	return s, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordPrediction counts the prediction and observes its delay and cost.
func (s *PromSink) RecordPrediction(rec coremetrics.PredictionRecord) error {
	s.predictions.WithLabelValues(rec.RiskLevel).Inc()
	s.delay.WithLabelValues(rec.PortID).Observe(rec.DelayHours)
	s.cost.WithLabelValues(rec.PortID).Observe(rec.Cost)
	return nil
}

// RecordOptimization counts the search and observes its duration and savings.
func (s *PromSink) RecordOptimization(rec coremetrics.OptimizationRecord) error {
	s.optimizations.WithLabelValues(rec.PortID).Inc()
	s.searchTime.Observe(rec.Duration.Seconds())
	s.savings.Observe(rec.Savings)
	return nil
}

// RecordAlert counts the alert.
func (s *PromSink) RecordAlert(rec coremetrics.AlertRecord) error {
	delivered := "false"
	if rec.Delivered {
		delivered = "true"
	}
	s.alerts.WithLabelValues(rec.RiskLevel, delivered).Inc()
	return nil
}
