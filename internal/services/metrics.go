package services

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	UploadsNormalized = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uploads_normalized_total",
			Help: "Uploads normalized to PDF, by source format",
		},
		[]string{"format"},
	)
	LLMRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_requests_total",
			Help: "LLM requests by provider, operation and outcome",
		},
		[]string{"provider", "operation", "outcome"},
	)
	RankingCandidatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ranking_candidates_total",
			Help: "Candidates processed by ranking runs, by outcome",
		},
		[]string{"outcome"},
	)
)

// RegisterMetrics registers the service collectors with reg.
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(UploadsNormalized, LLMRequestsTotal, RankingCandidatesTotal)
}
