// Package observability exposes Prometheus collectors for the editing
// engine: command throughput and document persistence outcomes.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the engine collectors. A nil *Metrics is valid and
// records nothing, so instrumentation stays optional.
type Metrics struct {
	Commands      *prometheus.CounterVec
	Saves         *prometheus.CounterVec
	Loads         *prometheus.CounterVec
	SaveDuration  prometheus.Histogram
	GraphNodeSize prometheus.Gauge
}

// NewMetrics creates and registers the collectors on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "zapflow",
			Name:      "commands_total",
			Help:      "Editing commands dispatched, by command type and result.",
		}, []string{"command", "result"}),
		Saves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "zapflow",
			Name:      "document_saves_total",
			Help:      "Document save attempts, by result.",
		}, []string{"result"}),
		Loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "zapflow",
			Name:      "document_loads_total",
			Help:      "Document load attempts, by result.",
		}, []string{"result"}),
		SaveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "zapflow",
			Name:      "document_save_seconds",
			Help:      "Latency of document saves.",
			Buckets:   prometheus.DefBuckets,
		}),
		GraphNodeSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "zapflow",
			Name:      "graph_nodes",
			Help:      "Node count of the most recently touched graph.",
		}),
	}
	reg.MustRegister(m.Commands, m.Saves, m.Loads, m.SaveDuration, m.GraphNodeSize)
	return m
}

// ObserveCommand records one dispatched command.
func (m *Metrics) ObserveCommand(command string, err error) {
	if m == nil {
		return
	}
	m.Commands.WithLabelValues(command, resultLabel(err)).Inc()
}

// ObserveSave records one save attempt.
func (m *Metrics) ObserveSave(seconds float64, err error) {
	if m == nil {
		return
	}
	m.Saves.WithLabelValues(resultLabel(err)).Inc()
	if err == nil {
		m.SaveDuration.Observe(seconds)
	}
}

// ObserveLoad records one load attempt and the resulting graph size.
func (m *Metrics) ObserveLoad(nodes int, err error) {
	if m == nil {
		return
	}
	m.Loads.WithLabelValues(resultLabel(err)).Inc()
	if err == nil {
		m.GraphNodeSize.Set(float64(nodes))
	}
}

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
