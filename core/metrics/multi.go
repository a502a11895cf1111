package metrics

import "errors"

// MultiSink fans records out to several sinks.
type MultiSink struct {
	Sinks []Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordPrediction forwards the record to every sink. All sinks are tried;
// their errors are joined.
func (m *MultiSink) RecordPrediction(rec PredictionRecord) error {
	var errs []error
	for _, s := range m.Sinks {
		errs = append(errs, s.RecordPrediction(rec))
	}
	return errors.Join(errs...)
}

// RecordOptimization forwards the record to sinks that support it.
func (m *MultiSink) RecordOptimization(rec OptimizationRecord) error {
	var errs []error
	for _, s := range m.Sinks {
		if r, ok := s.(OptimizationRecorder); ok {
			errs = append(errs, r.RecordOptimization(rec))
		}
	}
	return errors.Join(errs...)
}

// RecordAlert forwards the record to sinks that support it.
func (m *MultiSink) RecordAlert(rec AlertRecord) error {
	var errs []error
	for _, s := range m.Sinks {
		if r, ok := s.(AlertRecorder); ok {
			errs = append(errs, r.RecordAlert(rec))
		}
	}
	return errors.Join(errs...)
}
