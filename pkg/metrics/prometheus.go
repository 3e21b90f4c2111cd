package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	QueriesProcessed  prometheus.Counter
	CallsProcessed    prometheus.Counter
	BookingsExtracted prometheus.Counter
	GateRejections    *prometheus.CounterVec
	DateFallbacks     prometheus.Counter
	SummariesEmailed  prometheus.Counter
	ProcessingTime    prometheus.Histogram
	ErrorsCount       *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		QueriesProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queries_processed_total",
			Help:      "The total number of processed flight queries",
		}),
		CallsProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calls_processed_total",
			Help:      "The total number of processed call-end reports",
		}),
		BookingsExtracted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_extracted_total",
			Help:      "The total number of bookings mined from transcripts",
		}),
		GateRejections: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_gate_rejections_total",
			Help:      "Transcripts rejected by the booking confirmation gate",
		}, []string{"reason"}),
		DateFallbacks: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "date_fallbacks_total",
			Help:      "Dates that could not be normalized and fell back to the default",
		}),
		SummariesEmailed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "summaries_emailed_total",
			Help:      "The total number of call summary emails sent",
		}),
		ProcessingTime: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "call_processing_time_seconds",
			Help:      "Time taken to process a call-end report",
			Buckets:   prometheus.DefBuckets,
		}),
		ErrorsCount: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}
