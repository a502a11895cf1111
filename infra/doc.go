// Package infra holds the adapters behind the core interfaces: the zerolog
// logger, Prometheus, InfluxDB and exposure sinks, the rotating audit trail,
// the MQTT alert publisher and the Sentry monitor.
package infra
