package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/couchcryptid/air-quality-predictor/internal/domain"
	"github.com/couchcryptid/air-quality-predictor/internal/observability"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// maxBodyBytes caps predict request bodies; seven numbers fit easily.
const maxBodyBytes = 64 << 10

// Predictor runs one prediction and reports readiness.
type Predictor interface {
	Predict(ctx context.Context, src domain.FieldSource) (domain.Prediction, error)
	CheckReadiness(ctx context.Context) error
}

// Server exposes the prediction form, the JSON prediction API, and the
// health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	predictor  Predictor
	logger     *slog.Logger
	metrics    *observability.Metrics
	limiter    *rate.Limiter
}

// NewServer creates an HTTP server. A nil limiter disables rate limiting.
func NewServer(addr string, p Predictor, limiter *rate.Limiter, logger *slog.Logger, metrics *observability.Metrics) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		predictor: p,
		logger:    logger,
		metrics:   metrics,
		limiter:   limiter,
	}

	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.Handle("POST /predict", s.rateLimit(http.HandlerFunc(s.handlePredictForm)))
	mux.Handle("POST /api/v1/predict", s.rateLimit(http.HandlerFunc(s.handlePredictJSON)))
	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(p))
	mux.Handle("GET /metrics", promhttp.Handler())

	s.httpServer.Handler = middleware.RequestID(middleware.RealIP(s.logRequests(middleware.Recoverer(mux))))

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHome(w http.ResponseWriter, _ *http.Request) {
	s.writePage(w, http.StatusOK, emptyPage())
}

func (s *Server) handlePredictForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := parseForm(r); err != nil {
		s.logger.Warn("invalid form body", "error", err)
		s.writePage(w, http.StatusBadRequest, errorPage("The submitted form could not be read."))
		return
	}

	p, err := s.predictor.Predict(r.Context(), formSource(r.PostForm))
	if err != nil {
		s.writePage(w, statusFor(err), errorPage(userMessage(err)))
		return
	}
	s.writePage(w, http.StatusOK, resultPage(p))
}

// predictResponse is the JSON body of a successful API prediction.
type predictResponse struct {
	Value        float64         `json:"value"`
	DisplayValue string          `json:"display_value"`
	Severity     domain.Severity `json:"severity"`
	Label        string          `json:"label"`
	Text         string          `json:"text"`
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func (s *Server) handlePredictJSON(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	fields, err := decodeJSONFields(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	p, err := s.predictor.Predict(r.Context(), fields)
	if err != nil {
		status := statusFor(err)
		msg := err.Error()
		if status >= http.StatusInternalServerError {
			msg = userMessage(err)
		}
		writeJSON(w, status, errorResponse{Error: msg, Field: domain.ErrorField(err)})
		return
	}
	writeJSON(w, http.StatusOK, predictResponse{
		Value:        p.Value,
		DisplayValue: p.DisplayValue(),
		Severity:     p.Severity,
		Label:        p.Severity.Label(),
		Text:         p.Text(),
	})
}

func (s *Server) writePage(w http.ResponseWriter, status int, pg page) {
	body, err := renderPage(pg)
	if err != nil {
		s.logger.Error("render failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(body) //nolint:errcheck // client may have gone away
}

// rateLimit rejects requests beyond the limiter's budget with 429.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	if s.limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			s.metrics.RateLimited.Inc()
			w.Header().Set("Retry-After", "1")
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
			"remote_addr", r.RemoteAddr,
		)
	})
}

// formSource exposes submitted form values as domain fields. Repeated keys
// resolve to their first value.
type formSource url.Values

func (f formSource) Lookup(name string) (string, bool) {
	vals, ok := f[name]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

func parseForm(r *http.Request) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return r.ParseMultipartForm(maxBodyBytes)
	}
	return r.ParseForm()
}

// decodeJSONFields reads a JSON object of readings. Numbers and numeric
// strings are both accepted; everything else is left for ParseFeatures to
// reject with a field-level error.
func decodeJSONFields(r *http.Request) (domain.FieldMap, error) {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	var body map[string]any
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("invalid JSON body: %w", err)
	}

	fields := make(domain.FieldMap, len(body))
	for k, v := range body {
		switch tv := v.(type) {
		case json.Number:
			fields[k] = tv.String()
		case string:
			fields[k] = tv
		case nil:
			fields[k] = ""
		default:
			fields[k] = fmt.Sprint(tv)
		}
	}
	return fields, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
