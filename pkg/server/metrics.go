package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics aggregates the editor host's Prometheus collectors.
type Metrics struct {
	Imports        prometheus.Counter
	ParseFailures  prometheus.Counter
	SyncWrites     prometheus.Counter
	DroppedWrites  prometheus.Counter
	SourceApplies  prometheus.Counter
	ActiveEditors  prometheus.Gauge
	StreamClients  prometheus.Gauge
	ExportDuration prometheus.Histogram
}

// NewMetrics registers the collectors under the given namespace. A nil
// registerer falls back to the default registry.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if namespace == "" {
		namespace = "inkwell"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		Imports: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "imports_total",
			Help:      "HTML imports performed.",
		}),
		ParseFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parse_failures_total",
			Help:      "Imports rejected with a parse error.",
		}),
		SyncWrites: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sync_writes_total",
			Help:      "Field writes performed by the sync mirror.",
		}),
		DroppedWrites: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dropped_writes_total",
			Help:      "Field writes that found no target field.",
		}),
		SourceApplies: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "source_applies_total",
			Help:      "Successful source-view apply transitions.",
		}),
		ActiveEditors: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_editors",
			Help:      "Currently mounted editor instances.",
		}),
		StreamClients: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stream_clients",
			Help:      "Connected field-update stream clients.",
		}),
		ExportDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "export_duration_seconds",
			Help:      "Tree-to-HTML export latency.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}
