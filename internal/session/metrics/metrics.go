package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for game sessions.
type Metrics struct {
	SessionsStarted   *prometheus.CounterVec
	ActiveSessions    prometheus.Gauge
	Outcomes          *prometheus.CounterVec
	Skips             prometheus.Counter
	StaleResults      *prometheus.CounterVec
	DaysCompleted     prometheus.Histogram
	SessionsReclaimed prometheus.Counter
}

// New registers and returns session collectors.
func New() *Metrics {
	return &Metrics{
		SessionsStarted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "govos_sessions_started_total",
			Help: "Sessions started, labeled by whether the tutorial was skipped",
		}, []string{"tutorial"}),
		ActiveSessions: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "govos_sessions_active",
			Help: "Sessions currently held in memory",
		}),
		Outcomes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "govos_session_outcomes_total",
			Help: "Resolved work labeled by mission type and result",
		}, []string{"mission", "result"}),
		Skips: promauto.NewCounter(prometheus.CounterOpts{
			Name: "govos_session_skips_total",
			Help: "Requests skipped by players",
		}),
		StaleResults: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "govos_session_stale_results_total",
			Help: "Model results dropped because the session had moved on, labeled by work kind",
		}, []string{"kind"}),
		DaysCompleted: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "govos_session_day_reached",
			Help:    "Day reached when a request is resolved",
			Buckets: []float64{1, 2, 3, 5, 10, 20, 50},
		}),
		SessionsReclaimed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "govos_sessions_reclaimed_total",
			Help: "Idle sessions removed by the cleanup worker",
		}),
	}
}

func (m *Metrics) IncrementStarted(skipTutorial bool) {
	label := "played"
	if skipTutorial {
		label = "skipped"
	}
	m.SessionsStarted.WithLabelValues(label).Inc()
}

func (m *Metrics) SetActive(n int) {
	m.ActiveSessions.Set(float64(n))
}

func (m *Metrics) IncrementOutcome(mission, result string, day int) {
	m.Outcomes.WithLabelValues(mission, result).Inc()
	m.DaysCompleted.Observe(float64(day))
}

func (m *Metrics) IncrementSkip() {
	m.Skips.Inc()
}

func (m *Metrics) IncrementStale(kind string) {
	m.StaleResults.WithLabelValues(kind).Inc()
}

func (m *Metrics) AddReclaimed(n int) {
	m.SessionsReclaimed.Add(float64(n))
}
