// Package observability exposes the prometheus registries shared across
// the node. Engines never record metrics themselves; the node does so per
// operation outcome.
package observability

import (
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

type engineMetrics struct {
	operations *prometheus.CounterVec
	events     *prometheus.CounterVec
}

var (
	engineMetricsOnce sync.Once
	engineRegistry    *engineMetrics
)

// Engines returns the lazily-initialised metrics registry tracking engine
// activity.
func Engines() *engineMetrics {
	engineMetricsOnce.Do(func() {
		engineRegistry = &engineMetrics{
			operations: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "eduledger",
				Subsystem: "engine",
				Name:      "operations_total",
				Help:      "Engine operations segmented by module, operation and outcome.",
			}, []string{"module", "op", "outcome"}),
			events: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "eduledger",
				Subsystem: "engine",
				Name:      "events_total",
				Help:      "Audit events emitted by the engines segmented by type.",
			}, []string{"type"}),
		}
		prometheus.MustRegister(engineRegistry.operations, engineRegistry.events)
	})
	return engineRegistry
}

// RecordOperation increments the operation counter for the supplied
// module/op pair with an "applied" or "rejected" outcome.
func (m *engineMetrics) RecordOperation(module, op string, err error) {
	if m == nil {
		return
	}
	outcome := "applied"
	if err != nil {
		outcome = "rejected"
	}
	m.operations.WithLabelValues(normalizeLabel(module), normalizeLabel(op), outcome).Inc()
}

// RecordEvent increments the emitted-event counter for the supplied type.
func (m *engineMetrics) RecordEvent(eventType string) {
	if m == nil {
		return
	}
	m.events.WithLabelValues(normalizeLabel(eventType)).Inc()
}

func normalizeLabel(v string) string {
	trimmed := strings.TrimSpace(v)
	if trimmed == "" {
		return "unknown"
	}
	return trimmed
}
