package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GenerationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ambientprompt_generations_total",
		Help: "Prompt generation requests by outcome.",
	}, []string{"status"})

	GenerationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ambientprompt_generation_duration_seconds",
		Help:    "Time spent inside the configured generator.",
		Buckets: []float64{0.0005, 0.001, 0.01, 0.1, 0.5, 1, 2.5, 5, 10},
	})

	RateLimitedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ambientprompt_rate_limited_total",
		Help: "API requests rejected by the rate limiter.",
	})
)
