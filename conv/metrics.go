package conv

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts convolutions per algorithm.
type Metrics struct {
	convolutions *prometheus.CounterVec
	sizes        *prometheus.HistogramVec
}

// NewMetrics creates a new Metrics registered on reg.
// If reg is nil, the collectors are created but not registered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		convolutions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "modpoly",
			Name:      "convolutions_total",
			Help:      "Number of convolutions by algorithm.",
		}, []string{"algorithm"}),
		sizes: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "modpoly",
			Name:      "convolution_size",
			Help:      "Operand length of convolutions by algorithm.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 16),
		}, []string{"algorithm"}),
	}
}

// Convolutions returns the counter of convolutions run with algorithm a.
func (m *Metrics) Convolutions(a Algorithm) prometheus.Counter {
	return m.convolutions.WithLabelValues(a.String())
}

func (m *Metrics) observe(a Algorithm, n int) {
	m.convolutions.WithLabelValues(a.String()).Inc()
	m.sizes.WithLabelValues(a.String()).Observe(float64(n))
}
