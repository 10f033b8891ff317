package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for scenario generation.
type Metrics struct {
	ModelCalls   *prometheus.CounterVec
	ModelLatency *prometheus.HistogramVec
	Fallbacks    *prometheus.CounterVec
	Missions     *prometheus.CounterVec
	CircuitOpen  *prometheus.GaugeVec
}

// New registers and returns scenario collectors.
func New() *Metrics {
	return &Metrics{
		ModelCalls: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "govos_scenario_model_calls_total",
			Help: "Model attempts labeled by provider, request kind and outcome",
		}, []string{"provider", "kind", "outcome"}),
		ModelLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "govos_scenario_model_latency_seconds",
			Help:    "Latency of model attempts in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"provider", "kind"}),
		Fallbacks: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "govos_scenario_fallbacks_total",
			Help: "Fallback scenarios or neutral replies served, labeled by request kind and error category",
		}, []string{"kind", "category"}),
		Missions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "govos_scenario_missions_total",
			Help: "Generated scenarios labeled by mission type",
		}, []string{"mission"}),
		CircuitOpen: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "govos_scenario_circuit_open",
			Help: "1 while the model circuit breaker is open",
		}, []string{"provider"}),
	}
}

func (m *Metrics) ObserveModelCall(provider, kind, outcome string, d time.Duration) {
	m.ModelCalls.WithLabelValues(provider, kind, outcome).Inc()
	m.ModelLatency.WithLabelValues(provider, kind).Observe(d.Seconds())
}

func (m *Metrics) IncrementFallback(kind, category string) {
	m.Fallbacks.WithLabelValues(kind, category).Inc()
}

func (m *Metrics) IncrementMission(mission string) {
	m.Missions.WithLabelValues(mission).Inc()
}

func (m *Metrics) SetCircuitOpen(provider string, open bool) {
	v := 0.0
	if open {
		v = 1
	}
	m.CircuitOpen.WithLabelValues(provider).Set(v)
}
