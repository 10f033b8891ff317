package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for request limiting.
type Metrics struct {
	Rejected *prometheus.CounterVec
}

// New registers and returns rate limit collectors.
func New() *Metrics {
	return &Metrics{
		Rejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "govos_rate_limited_total",
			Help: "Requests rejected by the per-client limiter, labeled by endpoint class",
		}, []string{"class"}),
	}
}

func (m *Metrics) IncrementRejected(class string) {
	m.Rejected.WithLabelValues(class).Inc()
}
