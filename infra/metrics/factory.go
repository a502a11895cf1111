package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/steel-maritime/demurrage/core/factory"
	coremetrics "github.com/steel-maritime/demurrage/core/metrics"
)

// init registers the built-in sinks. "nop" is registered by core/metrics.
// Exposure analytics are always fed by the service and need no entry here.
func init() {
	_ = coremetrics.RegisterSink("prometheus", func(map[string]any) (coremetrics.Sink, error) {
		return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
	})

	_ = coremetrics.RegisterSink("influx", func(conf map[string]any) (coremetrics.Sink, error) {
		var c InfluxConfig
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewInfluxSinkWithFallback(c), nil
	})
}
