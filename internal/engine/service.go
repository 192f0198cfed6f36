package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/aria-lang/bioalign-go/internal/traceback"
)

var (
	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bioalign_engine_runs_total",
		Help: "Total engine runs by algorithm and outcome",
	}, []string{"algorithm", "status"})

	runDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bioalign_engine_run_duration_seconds",
		Help:    "Engine run duration in seconds, fill and traceback included",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 16),
	}, []string{"algorithm"})

	runPaths = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bioalign_engine_optimal_paths",
		Help:    "Optimal traceback paths walked per alignment run",
		Buckets: []float64{1, 2, 4, 8, 16, 64, 256, 1024, 10000},
	}, []string{"algorithm"})

	cellsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bioalign_engine_cells_total",
		Help: "Dynamic programming cells filled by algorithm",
	}, []string{"algorithm"})
)

// Limits bound the work a single request may ask for. Zero means unlimited.
type Limits struct {
	MaxPaths          int
	MaxSequenceLength int
}

// Service runs requests through the engine registry with logging, metrics,
// tracing and limits.
type Service struct {
	logger *slog.Logger
	limits Limits
	lookup func(Algorithm) (Engine, error)
}

// NewService creates a service. A nil logger uses slog.Default.
func NewService(logger *slog.Logger, limits Limits) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		logger: logger.With(slog.String("component", "engine")),
		limits: limits,
		lookup: For,
	}
}

// Limits returns the configured limits.
func (s *Service) Limits() Limits {
	return s.limits
}

// Run validates req against the limits and dispatches it.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	ctx, span := otel.Tracer("engine").Start(ctx, "engine.Service.Run",
		trace.WithAttributes(
			attribute.String("algorithm", req.Algorithm.String()),
			attribute.Int("sequences", len(req.Sequences)),
			attribute.String("mode", req.Mode.String()),
		),
	)
	defer span.End()

	start := time.Now()
	res, err := s.run(ctx, &req)
	elapsed := time.Since(start)

	label := req.Algorithm.String()
	runsTotal.WithLabelValues(label, status(err)).Inc()
	runDuration.WithLabelValues(label).Observe(elapsed.Seconds())

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.Warn("engine run failed",
			slog.String("algorithm", label),
			slog.Duration("duration", elapsed),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	cellsTotal.WithLabelValues(label).Add(float64(cells(req)))
	if req.Algorithm != Nussinov {
		runPaths.WithLabelValues(label).Observe(float64(res.Paths))
	}

	span.SetAttributes(
		attribute.Int("score", res.Score),
		attribute.Int("alignments", len(res.Alignments)),
	)
	span.SetStatus(codes.Ok, "")
	s.logger.Info("engine run complete",
		slog.String("algorithm", label),
		slog.Int("score", res.Score),
		slog.Int("alignments", len(res.Alignments)),
		slog.Int("paths", res.Paths),
		slog.Duration("duration", elapsed),
	)
	return res, nil
}

func (s *Service) run(ctx context.Context, req *Request) (*Result, error) {
	eng, err := s.lookup(req.Algorithm)
	if err != nil {
		return nil, err
	}

	if limit := s.limits.MaxSequenceLength; limit > 0 {
		for i, seq := range req.Sequences {
			if seq != nil && seq.Len() > limit {
				return nil, fmt.Errorf("%w: sequence %d has length %d, limit is %d",
					ErrBadRequest, i+1, seq.Len(), limit)
			}
		}
	}
	if limit := s.limits.MaxPaths; limit > 0 && (req.MaxPaths <= 0 || req.MaxPaths > limit) {
		req.MaxPaths = limit
	}

	lengths := make([]int, len(req.Sequences))
	for i, seq := range req.Sequences {
		if seq != nil {
			lengths[i] = seq.Len()
		}
	}
	s.logger.Debug("engine run",
		slog.String("algorithm", req.Algorithm.String()),
		slog.Any("lengths", lengths),
		slog.String("mode", req.Mode.String()),
		slog.Int("max_paths", req.MaxPaths),
	)

	return eng.Compute(ctx, *req)
}

func status(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, traceback.ErrPathLimit):
		return "path_limit"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	case errors.Is(err, ErrBadRequest), errors.Is(err, ErrUnknownAlgorithm):
		return "bad_request"
	}
	return "error"
}

// cells counts the table cells a request fills.
func cells(req Request) int {
	n := 1
	for _, seq := range req.Sequences {
		if seq != nil {
			n *= seq.Len() + 1
		}
	}
	switch req.Algorithm {
	case Gotoh:
		return 3 * n
	case Nussinov:
		if len(req.Sequences) == 1 && req.Sequences[0] != nil {
			l := req.Sequences[0].Len()
			return l * l
		}
	}
	return n
}
