package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for document issuance.
type Metrics struct {
	DocumentsIssued *prometheus.CounterVec
	Verdicts        *prometheus.CounterVec
	ReviewLatency   prometheus.Histogram
}

// New registers and returns issuance collectors.
func New() *Metrics {
	return &Metrics{
		DocumentsIssued: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "govos_documents_issued_total",
			Help: "Documents printed from the portal, labeled by document type",
		}, []string{"doc_type"}),
		Verdicts: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "govos_issuance_verdicts_total",
			Help: "Issuance reviews labeled by document type and verdict category",
		}, []string{"doc_type", "category"}),
		ReviewLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "govos_issuance_review_latency_seconds",
			Help:    "Latency of issuance reviews in seconds",
			Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1},
		}),
	}
}

func (m *Metrics) IncrementIssued(docType string) {
	m.DocumentsIssued.WithLabelValues(docType).Inc()
}

func (m *Metrics) IncrementVerdict(docType, category string) {
	m.Verdicts.WithLabelValues(docType, category).Inc()
}

func (m *Metrics) ObserveReviewLatency(d time.Duration) {
	m.ReviewLatency.Observe(d.Seconds())
}
