// Package metrics exposes optimizer progress and archive activity as
// prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/moeakit/moea/pkg/archive"
)

const namespace = "moea"

// Metrics groups the collectors of one optimization run. Each instance owns
// its registry so that runs and tests do not share state.
type Metrics struct {
	registry *prometheus.Registry

	ArchiveEvents *prometheus.CounterVec
	ArchiveSize   *prometheus.GaugeVec
	Generations   *prometheus.CounterVec
	Evaluations   *prometheus.CounterVec
	FrontSize     *prometheus.GaugeVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ArchiveEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "archive_events_total",
			Help:      "Total number of archive events by archive policy and event type",
		}, []string{"archive", "event"}),
		ArchiveSize: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "archive_size",
			Help:      "Current number of solutions held by an archive",
		}, []string{"archive"}),
		Generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generations_total",
			Help:      "Total number of generations completed by an algorithm",
		}, []string{"algorithm"}),
		Evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evaluations_total",
			Help:      "Total number of objective function evaluations by an algorithm",
		}, []string{"algorithm"}),
		FrontSize: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "first_front_size",
			Help:      "Number of non-dominated solutions in the current population",
		}, []string{"algorithm"}),
	}
	m.registry.MustRegister(m.ArchiveEvents, m.ArchiveSize, m.Generations, m.Evaluations, m.FrontSize)
	return m
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ArchiveObserver returns an archive.Observer that records events under the
// given archive name.
func (m *Metrics) ArchiveObserver(name string) archive.Observer {
	size := m.ArchiveSize.WithLabelValues(name)
	return func(e archive.Event) {
		m.ArchiveEvents.WithLabelValues(name, string(e.Type)).Inc()
		size.Set(float64(e.Size))
	}
}

// ObserveGeneration records one finished generation.
func (m *Metrics) ObserveGeneration(algorithm string, evaluations, frontSize int) {
	m.Generations.WithLabelValues(algorithm).Inc()
	m.Evaluations.WithLabelValues(algorithm).Add(float64(evaluations))
	m.FrontSize.WithLabelValues(algorithm).Set(float64(frontSize))
}

// WriteTextfile writes the current values in the text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
