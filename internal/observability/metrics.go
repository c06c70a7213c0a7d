package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the predictor.
type Metrics struct {
	Predictions       *prometheus.CounterVec // labels: severity={low,medium,high}
	PredictionErrors  *prometheus.CounterVec // labels: kind={missing_field,parse,inference,internal}
	InferenceDuration prometheus.Histogram
	PredictedValue    prometheus.Histogram
	ModelLoaded       prometheus.Gauge

	// Prediction event publishing.
	EventsPublished    prometheus.Counter
	EventPublishErrors prometheus.Counter

	RateLimited prometheus.Counter
}

// NewMetrics creates and registers all predictor metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aq_predictor",
			Name:      "predictions_total",
			Help:      "Successful predictions by severity band.",
		}, []string{"severity"}),
		PredictionErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aq_predictor",
			Name:      "prediction_errors_total",
			Help:      "Rejected or failed prediction requests by error kind.",
		}, []string{"kind"}),
		InferenceDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "aq_predictor",
			Name:      "inference_duration_seconds",
			Help:      "Model inference latency.",
			Buckets:   []float64{0.00001, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		}),
		PredictedValue: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "aq_predictor",
			Name:      "predicted_value",
			Help:      "Distribution of predicted pollution index values.",
			Buckets:   []float64{600, 800, 1000, 1064.395, 1200, 1303.75, 1500, 2000},
		}),
		ModelLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "aq_predictor",
			Name:      "model_loaded",
			Help:      "1 when a model artifact is loaded and serving, 0 otherwise.",
		}),
		EventsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "aq_predictor",
			Name:      "events_published_total",
			Help:      "Prediction events written to the events topic.",
		}),
		EventPublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "aq_predictor",
			Name:      "event_publish_errors_total",
			Help:      "Prediction events that failed to publish.",
		}),
		RateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "aq_predictor",
			Name:      "rate_limited_total",
			Help:      "Prediction requests rejected by the rate limiter.",
		}),
	}

	prometheus.MustRegister(
		m.Predictions,
		m.PredictionErrors,
		m.InferenceDuration,
		m.PredictedValue,
		m.ModelLoaded,
		m.EventsPublished,
		m.EventPublishErrors,
		m.RateLimited,
	)

	return m
}

// NewUnregisteredMetrics creates Metrics that are not attached to any
// registry. One-shot tools use it where nothing scrapes /metrics.
func NewUnregisteredMetrics() *Metrics {
	return &Metrics{
		Predictions:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "aq_predictor", Name: "predictions_total"}, []string{"severity"}),
		PredictionErrors:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "aq_predictor", Name: "prediction_errors_total"}, []string{"kind"}),
		InferenceDuration:  prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "aq_predictor", Name: "inference_duration_seconds"}),
		PredictedValue:     prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "aq_predictor", Name: "predicted_value"}),
		ModelLoaded:        prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "aq_predictor", Name: "model_loaded"}),
		EventsPublished:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "aq_predictor", Name: "events_published_total"}),
		EventPublishErrors: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "aq_predictor", Name: "event_publish_errors_total"}),
		RateLimited:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "aq_predictor", Name: "rate_limited_total"}),
	}
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return NewUnregisteredMetrics()
}
