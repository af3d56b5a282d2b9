// Package server exposes the evaluation engines over HTTP. It serves a
// JSON evaluation endpoint, a health probe and a Prometheus metrics
// endpoint, with hardening middleware on the API routes and an
// OpenTelemetry span around each evaluation.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/bigcalc/internal/calc"
	"github.com/agbru/bigcalc/internal/config"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/logging"
)

const (
	// shutdownTimeout bounds the graceful drain once the context is
	// canceled.
	shutdownTimeout = 10 * time.Second
	// readHeaderTimeout bounds request header parsing.
	readHeaderTimeout = 10 * time.Second
	// defaultEngine evaluates requests that do not name an engine.
	defaultEngine = "bignum"
	// statusClientClosedRequest is the nginx convention for a client
	// that went away before the response was ready.
	statusClientClosedRequest = 499
)

// Config carries the server settings derived from the application
// configuration.
type Config struct {
	// Addr is the listen address, host:port.
	Addr string
	// DefaultPrecision is the decimal precision applied when a request
	// does not specify prec.
	DefaultPrecision uint
	// EvalTimeout bounds a single evaluation; zero means no limit.
	EvalTimeout time.Duration
	// Security configures the hardening middleware and request limits.
	Security SecurityConfig
}

// DefaultConfig returns the standalone defaults, aligned with the
// command-line ones.
func DefaultConfig() Config {
	return Config{
		Addr:             config.DefaultAddr,
		DefaultPrecision: config.DefaultPrecision,
		EvalTimeout:      config.DefaultTimeout,
		Security:         DefaultSecurityConfig(),
	}
}

// Server is the HTTP evaluation service.
type Server struct {
	config  Config
	factory calc.EngineFactory
	metrics *Metrics
	logger  logging.Logger
}

// NewServer builds a server over the given engine factory.
func NewServer(cfg Config, factory calc.EngineFactory, logger logging.Logger) *Server {
	return &Server{
		config:  cfg,
		factory: factory,
		metrics: NewMetrics(),
		logger:  logger,
	}
}

// Handler returns the root handler with routing, security and metrics
// middleware applied. The metrics route stays outside the middleware so
// scrapes do not count as requests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/eval", s.metricsMiddleware(SecurityMiddleware(s.config.Security, s.handleEval)))
	mux.HandleFunc("/healthz", s.metricsMiddleware(SecurityMiddleware(s.config.Security, s.handleHealth)))
	mux.HandleFunc("/metrics", s.handleMetrics)
	return mux
}

// ListenAndServe runs the server until ctx is canceled, then drains
// in-flight requests before returning.
func (s *Server) ListenAndServe(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()
	s.logger.Info("http server listening",
		logging.String("addr", s.config.Addr),
		logging.String("engines", strings.Join(s.factory.List(), ", ")))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return apperrors.WrapError(err, "server shutdown")
		}
		<-errCh
		s.logger.Info("http server stopped")
		return nil
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return apperrors.WrapError(err, "server listen")
		}
		return nil
	}
}

// evalResponse is the JSON body of a successful evaluation. Num and Den
// carry the canonical fraction; Decimal is present when a non-zero
// precision applies to a fractional result.
type evalResponse struct {
	Expression string  `json:"expression"`
	Engine     string  `json:"engine"`
	Num        string  `json:"num"`
	Den        string  `json:"den"`
	Integer    bool    `json:"integer"`
	Decimal    string  `json:"decimal,omitempty"`
	Digits     int     `json:"digits"`
	DurationMs float64 `json:"duration_ms"`
}

// errorResponse is the JSON body of a failed request.
type errorResponse struct {
	Error string `json:"error"`
}

// handleEval serves GET /api/v1/eval. Query parameters: expr (required),
// prec (optional decimal precision) and engine (optional engine key).
func (s *Server) handleEval(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	query := r.URL.Query()
	expr := strings.TrimSpace(query.Get("expr"))
	if expr == "" {
		s.metrics.IncrementEvalErrors("bad_request")
		s.writeError(w, r, http.StatusBadRequest, "missing expr parameter")
		return
	}
	if len(expr) > s.config.Security.MaxExprLength {
		s.metrics.IncrementEvalErrors("expr_too_long")
		s.writeError(w, r, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("expression length %d exceeds the maximum of %d bytes", len(expr), s.config.Security.MaxExprLength))
		return
	}

	precision := s.config.DefaultPrecision
	if raw := query.Get("prec"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || uint(parsed) > s.config.Security.MaxPrecision {
			s.metrics.IncrementEvalErrors("bad_request")
			s.writeError(w, r, http.StatusBadRequest,
				fmt.Sprintf("invalid prec %q (want 0 to %d)", raw, s.config.Security.MaxPrecision))
			return
		}
		precision = uint(parsed)
	}

	engineKey := query.Get("engine")
	if engineKey == "" {
		engineKey = defaultEngine
	}
	engine, err := s.factory.Get(engineKey)
	if err != nil {
		s.metrics.IncrementEvalErrors("unknown_engine")
		s.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	if s.config.EvalTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.EvalTimeout)
		defer cancel()
	}
	ctx, span := startEvalSpan(ctx, engineKey, len(expr))

	start := time.Now()
	result, err := engine.Evaluate(ctx, nil, 0, expr)
	elapsed := time.Since(start)
	endEvalSpan(span, result, err)

	if err != nil {
		s.metrics.IncrementEvalErrors(errorReason(err))
		s.logger.Error("evaluation failed", err,
			logging.String("engine", engineKey),
			logging.Dur("duration", elapsed))
		s.writeError(w, r, errorStatus(err), err.Error())
		return
	}
	s.metrics.ObserveEvalDuration(engineKey, elapsed.Seconds())

	response := evalResponse{
		Expression: expr,
		Engine:     engineKey,
		Num:        result.Num,
		Den:        result.Den,
		Integer:    result.IsInteger(),
		Digits:     result.DigitCount(),
		DurationMs: float64(elapsed) / float64(time.Millisecond),
	}
	if precision > 0 && !result.IsInteger() {
		if decimal, derr := result.Decimal(precision); derr == nil {
			response.Decimal = decimal
		}
	}
	s.logger.Info("evaluation served",
		logging.String("engine", engineKey),
		logging.Int("digits", response.Digits),
		logging.Dur("duration", elapsed))
	s.writeJSON(w, http.StatusOK, response)
}

// handleHealth serves GET /healthz.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON writes v as the JSON response body with the given status.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response write failed", err)
	}
}

// writeError writes a JSON error body and logs the rejection.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	s.logger.Debug("request rejected",
		logging.String("method", r.Method),
		logging.String("path", r.URL.Path),
		logging.Int("status", status))
	s.writeJSON(w, status, errorResponse{Error: message})
}

// errorStatus maps an evaluation error to its HTTP status. Timeouts map
// to 504 and expression-level failures (parse, domain, validation) to
// 422; the deadline check runs first because a timeout surfaces wrapped
// in an evaluation error.
func errorStatus(err error) int {
	var timeoutErr apperrors.TimeoutError
	var evalErr apperrors.EvalError
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.As(err, &timeoutErr):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return statusClientClosedRequest
	case errors.As(err, &evalErr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// errorReason labels err for the eval error counter.
func errorReason(err error) string {
	var timeoutErr apperrors.TimeoutError
	var evalErr apperrors.EvalError
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.As(err, &timeoutErr):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.As(err, &evalErr):
		return "eval"
	default:
		return "internal"
	}
}
