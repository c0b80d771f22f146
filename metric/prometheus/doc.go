// Package prometheus exports clustering run metrics through a Prometheus
// registry.
//
// Collector implements kclust.MetricsCollector. Register it with any
// prometheus.Registerer and pass it to kclust.WithMetricsCollector.
package prometheus
