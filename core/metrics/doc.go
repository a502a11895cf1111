// Package metrics defines the sinks that record prediction and optimization
// outcomes. Sinks such as the Prometheus and InfluxDB implementations in
// infra/metrics are registered by name and built from configuration; several
// configured sinks are combined into a MultiSink.
package metrics
