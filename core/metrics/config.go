package metrics

import "github.com/steel-maritime/demurrage/core/factory"

// Config defines the metrics sinks and the Prometheus listener.
type Config struct {
	Sinks []factory.ModuleConfig `json:"sinks" yaml:"sinks"`
	// PrometheusAddr enables the /metrics endpoint when set, e.g. ":9090".
	PrometheusAddr string `json:"prometheus_addr" yaml:"prometheus_addr"`
}
