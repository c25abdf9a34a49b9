package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "spamsms"

var (
	// PredictionsTotal counts successful predictions by label
	PredictionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "predictions_total",
		Help:      "Number of messages classified, by label",
	}, []string{"label"})

	// PredictionErrorsTotal counts failed prediction calls by error kind
	PredictionErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "prediction_errors_total",
		Help:      "Number of failed prediction calls, by error kind",
	}, []string{"kind"})

	InferenceDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "inference_duration_seconds",
		Help:      "Time spent in the model contract for one message",
		Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
	})

	BatchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "batch_size",
		Help:      "Number of messages per batch call",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
	})

	// LabelConfidenceDivergence counts predictions whose indicator disagrees
	// with the argmax of the probability vector.
	LabelConfidenceDivergence = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "label_confidence_divergence_total",
		Help:      "Predictions where the label indicator is not the most probable class",
	})

	CacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_requests_total",
		Help:      "Prediction cache lookups, by result",
	}, []string{"result"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	// ModelState mirrors the lifecycle state (0 unloaded, 1 loading, 2 ready, 3 failed)
	ModelState = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "model_state",
		Help:      "Lifecycle state of the model handle",
	})
)

// Timer observes elapsed time into a histogram
type Timer struct {
	timer *prometheus.Timer
}

func (t Timer) Stop() {
	t.timer.ObserveDuration()
}

// StartInference starts timing one call into the model contract
func StartInference() Timer {
	return Timer{
		timer: prometheus.NewTimer(InferenceDuration),
	}
}
