package metrics

import "github.com/prometheus/client_golang/prometheus"

// RAG pipeline Prometheus metrics.
var (
	RetrievalRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ragchat",
			Name:      "retrieval_requests_total",
			Help:      "Total number of knowledge base retrieval requests",
		},
		[]string{"search_type", "status"},
	)

	RetrievalRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ragchat",
			Name:      "retrieval_request_duration_seconds",
			Help:      "Knowledge base retrieval duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"search_type"},
	)

	RetrievalPassagesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ragchat",
			Name:      "retrieval_passages_total",
			Help:      "Total passages returned by the knowledge base",
		},
		[]string{"search_type"},
	)

	GenerationRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ragchat",
			Name:      "generation_requests_total",
			Help:      "Total number of foundation model invocations",
		},
		[]string{"model_family", "status"},
	)

	GenerationRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ragchat",
			Name:      "generation_request_duration_seconds",
			Help:      "Foundation model invocation duration in seconds",
			Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"model_family"},
	)

	GenerationPromptChars = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ragchat",
			Name:      "generation_prompt_chars",
			Help:      "Prompt length in characters",
			Buckets:   prometheus.ExponentialBuckets(128, 2, 10),
		},
		[]string{"model_family"},
	)
)

// RegisterPipelineMetrics registers the pipeline metrics explicitly (no init()).
func RegisterPipelineMetrics() {
	prometheus.MustRegister(
		RetrievalRequestsTotal,
		RetrievalRequestDuration,
		RetrievalPassagesTotal,
		GenerationRequestsTotal,
		GenerationRequestDuration,
		GenerationPromptChars,
	)
}
