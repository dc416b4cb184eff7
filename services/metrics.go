package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	predictionsServed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "atlas_predictions_total",
		Help: "Total number of delay predictions served, by verdict.",
	}, []string{"verdict"})
	predictionsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "atlas_prediction_failures_total",
		Help: "Total number of prediction failures, by stage.",
	}, []string{"stage"})
	inferenceDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "atlas_inference_duration_seconds",
		Help:    "Duration of pipeline, selector and classifier evaluation.",
		Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
	})
	artifactFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "atlas_artifact_fetches_total",
		Help: "Artifact reads, by artifact and source (local, cache, remote).",
	}, []string{"artifact", "source"})
	eventsPublished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "atlas_prediction_events_published_total",
		Help: "Total number of prediction events published to Redis.",
	})
)
