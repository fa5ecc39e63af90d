// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package pfxtable

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the prometheus collectors a [Table] updates.
// A nil *Metrics records nothing.
type Metrics struct {
	operations *prometheus.CounterVec
	keyErrors  *prometheus.CounterVec
	prefixes   *prometheus.GaugeVec
}

// NewMetrics creates the collectors and registers them with reg.
// It panics if they are already registered, see [promauto.With].
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		operations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "pfxtable_operations_total",
			Help: "Table operations by operation and state of the returned slot.",
		}, []string{"op", "result"}),

		keyErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "pfxtable_key_errors_total",
			Help: "Keys rejected by a table, by reason.",
		}, []string{"op", "reason"}),

		prefixes: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "pfxtable_prefixes",
			Help: "Number of prefixes stored, by address family.",
		}, []string{"family"}),
	}
}

func (m *Metrics) observe(op string, s State) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(op, s.String()).Inc()
}

func (m *Metrics) keyError(op string, err error) {
	if m == nil {
		return
	}
	m.keyErrors.WithLabelValues(op, errReason(err)).Inc()
}

func (m *Metrics) setSize(size4, size6 int) {
	if m == nil {
		return
	}
	m.prefixes.WithLabelValues(IPv4.String()).Set(float64(size4))
	m.prefixes.WithLabelValues(IPv6.String()).Set(float64(size6))
}
