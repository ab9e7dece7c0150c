package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds all Prometheus metrics for the feed analytics service
type Metrics struct {
	FeedAnalyses      *prometheus.CounterVec
	AnalysisDuration  *prometheus.HistogramVec
	MessagesProcessed *prometheus.CounterVec
	AnomalyFlags      *prometheus.CounterVec
	ArchiveWrites     *prometheus.CounterVec
}
