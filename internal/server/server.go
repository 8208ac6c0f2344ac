package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/einteger"
	"github.com/agbru/einteger/internal/calc"
	"github.com/agbru/einteger/internal/config"
	apperrors "github.com/agbru/einteger/internal/errors"
	"github.com/agbru/einteger/internal/format"
	"github.com/agbru/einteger/internal/logging"
)

const (
	tracerName      = "github.com/agbru/einteger/internal/server"
	shutdownTimeout = 10 * time.Second
)

// Server is the eintcalc HTTP API.
type Server struct {
	httpServer *http.Server
	evaluator  *calc.Evaluator
	metrics    *Metrics
	logger     logging.Logger
	security   SecurityConfig
	tracer     trace.Tracer
	timeout    time.Duration
	radix      int
}

// Option customizes a Server.
type Option func(*Server)

// WithLogger replaces the default console logger.
func WithLogger(l logging.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithSecurityConfig replaces DefaultSecurityConfig. A positive
// MaxOperandWords also bounds the evaluator.
func WithSecurityConfig(c SecurityConfig) Option {
	return func(s *Server) { s.security = c }
}

// WithTracer replaces the tracer taken from the global provider.
func WithTracer(t trace.Tracer) Option {
	return func(s *Server) { s.tracer = t }
}

// WithRegistry serves a custom operation registry.
func WithRegistry(r *calc.Registry) Option {
	return func(s *Server) { s.evaluator.Registry = r }
}

// New builds a server listening on cfg.Addr.
func New(cfg config.AppConfig, opts ...Option) *Server {
	security := DefaultSecurityConfig()
	if cfg.MaxOperandWords > 0 {
		security.MaxOperandWords = cfg.MaxOperandWords
	}
	s := &Server{
		evaluator: calc.NewEvaluator(0),
		metrics:   NewMetrics(),
		security:  security,
		tracer:    otel.Tracer(tracerName),
		timeout:   cfg.Timeout,
		radix:     cfg.Radix,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.NewDefaultLogger()
	}
	if s.radix == 0 {
		s.radix = config.DefaultRadix
	}
	if s.timeout <= 0 {
		s.timeout = config.DefaultTimeout
	}
	s.evaluator.MaxWords = s.security.MaxOperandWords
	s.evaluator.Observer = s.metrics.Collector()

	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      s.timeout + 30*time.Second,
		IdleTimeout:       2 * time.Minute,
	}
	return s
}

// Handler returns the routed, instrumented handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	route := func(path string, h http.HandlerFunc) {
		mux.HandleFunc(path, SecurityMiddleware(s.security, s.metricsMiddleware(h)))
	}
	route("/v1/eval", s.handleEval)
	route("/v1/ops", s.handleOps)
	route("/healthz", s.handleHealth)
	route("/metrics", s.handleMetrics)
	return mux
}

// Start serves until ctx is done, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		s.logger.Info("server listening", logging.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	s.logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

// ─────────────────────────────────────────────────────────────────────────────
// Handlers
// ─────────────────────────────────────────────────────────────────────────────

type evalRequest struct {
	Op          string   `json:"op"`
	Operands    []string `json:"operands"`
	Radix       int      `json:"radix,omitempty"`
	OutputRadix int      `json:"output_radix,omitempty"`
}

type evalResponse struct {
	Op         string   `json:"op"`
	Results    []string `json:"results"`
	Radix      int      `json:"radix"`
	DurationNS int64    `json:"duration_ns"`
	Duration   string   `json:"duration"`
}

type opInfo struct {
	Name  string `json:"name"`
	Arity int    `json:"arity"`
	Usage string `json:"usage"`
}

type errorResponse struct {
	Error    string `json:"error"`
	ExitCode int    `json:"exit_code"`
}

func (s *Server) handleEval(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.methodNotAllowed(w, r, http.MethodPost)
		return
	}
	if s.security.MaxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.security.MaxBodyBytes)
	}

	var req evalRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, http.StatusRequestEntityTooLarge, apperrors.ValidationError{
				Field: "body", Message: fmt.Sprintf("exceeds %d bytes", tooLarge.Limit),
			})
			return
		}
		s.writeError(w, http.StatusBadRequest, apperrors.ValidationError{Field: "body", Message: err.Error()})
		return
	}

	inRadix, outRadix, err := s.radixes(req)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()
	ctx, span := s.tracer.Start(ctx, "eintcalc.eval",
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("eintcalc.op", req.Op),
			attribute.Int("eintcalc.operands", len(req.Operands)),
			attribute.Int("eintcalc.radix", inRadix),
		))
	defer span.End()

	args, err := calc.ParseOperands(req.Operands, inRadix, nil)
	if err == nil {
		var res calc.Result
		res, err = s.evaluator.Eval(ctx, req.Op, args)
		if err == nil {
			span.SetAttributes(attribute.Int64("eintcalc.duration_ns", res.Duration.Nanoseconds()))
			span.SetStatus(codes.Ok, "")
			s.writeResult(w, res, outRadix)
			s.logger.Debug("evaluated",
				logging.String("op", req.Op),
				logging.Duration("duration", res.Duration))
			return
		}
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("evaluation failed", err, logging.String("op", req.Op))
	}
	s.writeError(w, status, err)
}

func (s *Server) radixes(req evalRequest) (in, out int, err error) {
	in, out = req.Radix, req.OutputRadix
	if in == 0 {
		in = s.radix
	}
	if out == 0 {
		out = in
	}
	for _, r := range []int{in, out} {
		if r < 2 || r > 36 {
			return 0, 0, apperrors.ValidationError{Field: "radix", Message: fmt.Sprintf("radix %d outside 2..36", r)}
		}
	}
	return in, out, nil
}

func (s *Server) writeResult(w http.ResponseWriter, res calc.Result, radix int) {
	out := evalResponse{
		Op:         res.Op,
		Results:    make([]string, len(res.Values)),
		Radix:      radix,
		DurationNS: res.Duration.Nanoseconds(),
		Duration:   format.FormatExecutionDuration(res.Duration),
	}
	for i, v := range res.Values {
		text, err := v.ToRadixString(radix)
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err)
			return
		}
		out.Results[i] = text
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleOps(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r, http.MethodGet)
		return
	}
	ops := s.evaluator.Registry.Operations()
	infos := make([]opInfo, len(ops))
	for i, op := range ops {
		infos[i] = opInfo{Name: op.Name, Arity: op.Arity, Usage: op.Usage}
	}
	s.writeJSON(w, http.StatusOK, infos)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r, http.MethodGet)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r, http.MethodGet)
		return
	}
	s.metrics.WritePrometheus(w, r)
}

func (s *Server) methodNotAllowed(w http.ResponseWriter, r *http.Request, allowed string) {
	w.Header().Set("Allow", allowed)
	if s.logger != nil {
		s.logger.Debug("method not allowed",
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path))
	}
	s.writeJSON(w, http.StatusMethodNotAllowed, errorResponse{
		Error:    "method " + r.Method + " not allowed",
		ExitCode: apperrors.ExitErrorConfig,
	})
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, errorResponse{Error: err.Error(), ExitCode: apperrors.ExitCodeFor(err)})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil && s.logger != nil {
		s.logger.Error("encode response", err)
	}
}

// statusFor maps an evaluation error to an HTTP status.
func statusFor(err error) int {
	var (
		memErr apperrors.MemoryError
		valErr apperrors.ValidationError
	)
	switch {
	case errors.As(err, &memErr):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &valErr), errors.Is(err, einteger.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, einteger.ErrDivideByZero):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
