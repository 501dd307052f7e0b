// Package metrics defines the custom Prometheus metrics for the soyleaf API.
// It is the single source of truth for metric names, labels, and help
// strings; request-level metrics come from the echoprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "soyleaf"

// PredictionsTotal counts completed classifications.
// Label:
//   - class: the predicted label (including "Unknown")
var PredictionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "predictions_total",
		Help:      "Total number of completed classifications, by predicted class.",
	},
	[]string{"class"},
)

// PredictionErrorsTotal counts classification attempts that failed.
// Label:
//   - reason: "empty_upload", "too_large", "decode", "inference",
//     "engine_unavailable", "internal"
var PredictionErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "prediction_errors_total",
		Help:      "Total number of failed classification attempts, by reason.",
	},
	[]string{"reason"},
)

// PredictionDuration measures the upload-to-result latency of one
// classification, inference included.
var PredictionDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "prediction_duration_seconds",
		Help:      "Duration of the classify pipeline from upload to decoded result.",
		Buckets:   prometheus.DefBuckets,
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts successfully created accounts.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts created.",
	},
)
