// Package predictor runs one prediction per request: parse, infer, classify, publish.
package predictor

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/couchcryptid/air-quality-predictor/internal/domain"
	"github.com/couchcryptid/air-quality-predictor/internal/observability"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// Publisher forwards prediction events downstream.
type Publisher interface {
	Publish(ctx context.Context, event domain.PredictionEvent) error
}

// Service turns raw readings into classified predictions. It holds the
// model loaded at startup and shares it across all requests.
type Service struct {
	model          domain.Model
	publisher      Publisher
	publishTimeout time.Duration
	logger         *slog.Logger
	metrics        *observability.Metrics
	clock          clockwork.Clock
}

// Option configures a Service.
type Option func(*Service)

// WithPublisher enables best-effort event publishing after each prediction.
func WithPublisher(p Publisher, timeout time.Duration) Option {
	return func(s *Service) {
		s.publisher = p
		s.publishTimeout = timeout
	}
}

// WithClock overrides the clock used for prediction timestamps and latency.
func WithClock(c clockwork.Clock) Option {
	return func(s *Service) { s.clock = c }
}

// New creates a Service around an already-loaded model.
func New(model domain.Model, logger *slog.Logger, metrics *observability.Metrics, opts ...Option) *Service {
	s := &Service{
		model:          model,
		publishTimeout: 2 * time.Second,
		logger:         logger,
		metrics:        metrics,
		clock:          clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if model != nil {
		metrics.ModelLoaded.Set(1)
	}
	return s
}

// CheckReadiness returns nil once a model is loaded.
func (s *Service) CheckReadiness(_ context.Context) error {
	if s.model == nil {
		return errors.New("model not loaded")
	}
	return nil
}

// ModelInfo describes the serving model.
func (s *Service) ModelInfo() domain.ModelInfo {
	if s.model == nil {
		return domain.ModelInfo{}
	}
	return s.model.Info()
}

// Predict parses the seven readings from src, runs inference and classifies
// the result. Input errors are returned before the model is touched.
func (s *Service) Predict(ctx context.Context, src domain.FieldSource) (domain.Prediction, error) {
	features, err := domain.ParseFeatures(src)
	if err != nil {
		s.recordError(err)
		s.logger.Warn("rejected prediction request", "error", err, "field", domain.ErrorField(err))
		return domain.Prediction{}, err
	}
	return s.PredictFeatures(ctx, features)
}

// PredictFeatures runs inference on an already-validated vector.
func (s *Service) PredictFeatures(ctx context.Context, features domain.Features) (domain.Prediction, error) {
	if s.model == nil {
		err := &domain.ModelInferenceError{Err: errors.New("model not loaded")}
		s.recordError(err)
		return domain.Prediction{}, err
	}

	start := s.clock.Now()
	p, err := domain.Infer(s.model, features, start)
	s.metrics.InferenceDuration.Observe(s.clock.Since(start).Seconds())
	if err != nil {
		s.recordError(err)
		s.logger.Error("model inference failed", "error", err, "model", s.model.Info().Name)
		return domain.Prediction{}, err
	}

	s.metrics.Predictions.WithLabelValues(severityLabel(p.Severity)).Inc()
	s.metrics.PredictedValue.Observe(p.Value)
	s.logger.Debug("prediction served",
		"value", p.Value,
		"severity", p.Severity.String(),
		"features", p.Features.Slice(),
	)

	s.publish(ctx, p)
	return p, nil
}

// publish sends the prediction event if a publisher is configured. Failures
// are logged and counted but never fail the request.
func (s *Service) publish(ctx context.Context, p domain.Prediction) {
	if s.publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.publishTimeout)
	defer cancel()

	event := domain.NewPredictionEvent(uuid.NewString(), s.model.Info(), p)
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.metrics.EventPublishErrors.Inc()
		s.logger.Warn("publish prediction event failed", "error", err, "event_id", event.ID)
		return
	}
	s.metrics.EventsPublished.Inc()
}

func (s *Service) recordError(err error) {
	s.metrics.PredictionErrors.WithLabelValues(domain.ErrorKind(err)).Inc()
}

func severityLabel(sev domain.Severity) string {
	b, _ := sev.MarshalText()
	return string(b)
}
