package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce         sync.Once
	httpRequestsTotal    *prometheus.CounterVec
	httpLatencySeconds   *prometheus.HistogramVec
	examSubmissionsTotal *prometheus.CounterVec
	examScoreDistrib     prometheus.Histogram
)

// RegisterMetrics initialises the Prometheus collectors for the trivia service.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "trivia_requests_total",
			Help: "Total number of HTTP requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "trivia_request_latency_seconds",
			Help:    "Latency distribution for HTTP requests.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		}, []string{"method", "route"})

		examSubmissionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "trivia_exam_submissions_total",
			Help: "Exam submissions by outcome (graded or rejected).",
		}, []string{"outcome"})

		examScoreDistrib = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "trivia_exam_score",
			Help:    "Distribution of graded exam scores.",
			Buckets: []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		})

		prometheus.MustRegister(httpRequestsTotal, httpLatencySeconds, examSubmissionsTotal, examScoreDistrib)
	})
}

// HTTPRequests exposes the request counter.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the request latency histogram.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// ExamSubmissions exposes the submission outcome counter.
func ExamSubmissions() *prometheus.CounterVec {
	RegisterMetrics()
	return examSubmissionsTotal
}

// ExamScores exposes the score distribution histogram.
func ExamScores() prometheus.Histogram {
	RegisterMetrics()
	return examScoreDistrib
}
