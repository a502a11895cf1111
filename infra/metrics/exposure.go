package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	coremetrics "github.com/steel-maritime/demurrage/core/metrics"
	"github.com/steel-maritime/demurrage/core/metrics/exposure"
	"github.com/steel-maritime/demurrage/core/prediction"
)

// ExposureSink aggregates predictions into an exposure store and mirrors
// the running day of each port in Prometheus gauges. Older days live only in
// the store.
type ExposureSink struct {
	store    exposure.Store
	cost     *prometheus.GaugeVec
	avgDelay *prometheus.GaugeVec
}

// NewExposureSink creates a sink with gauges registered on reg.
func NewExposureSink(store exposure.Store, reg prometheus.Registerer) (*ExposureSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	cost := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "port_predicted_demurrage_cost",
		Help: "Predicted demurrage cost per destination port for the day of the latest prediction",
	}, []string{"port_id"})
	avg := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "port_predicted_delay_avg_hours",
		Help: "Mean predicted delay per destination port for the day of the latest prediction",
	}, []string{"port_id"})
	var err error
	if cost, err = register(reg, cost); err != nil {
		return nil, err
	}
	if avg, err = register(reg, avg); err != nil {
		return nil, err
	}
	return &ExposureSink{store: store, cost: cost, avgDelay: avg}, nil
}

// Store returns the store the sink feeds.
func (s *ExposureSink) Store() exposure.Store { return s.store }

// RecordPrediction adds the prediction to its port's daily record and
// refreshes the gauges. Empty predictions are skipped.
func (s *ExposureSink) RecordPrediction(rec coremetrics.PredictionRecord) error {
	if rec.PortID == "" || rec.RiskLevel == string(prediction.RiskUnknown) {
		return nil
	}
	if err := s.store.Add(exposure.Record{
		PortID:      rec.PortID,
		VesselID:    rec.VesselID,
		Date:        rec.Time,
		Predictions: 1,
		DelayHours:  rec.DelayHours,
		Cost:        rec.Cost,
	}); err != nil {
		return err
	}
	records, err := s.store.Query(rec.PortID, rec.Time, rec.Time)
	if err != nil || len(records) == 0 {
		return err
	}
	s.cost.WithLabelValues(rec.PortID).Set(records[0].Cost)
	s.avgDelay.WithLabelValues(rec.PortID).Set(records[0].AvgDelay())
	return nil
}
