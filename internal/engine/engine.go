// Package engine dispatches alignment and folding requests to the dynamic
// programming engine selected by an explicit algorithm tag.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aria-lang/bioalign-go/internal/alignment"
	"github.com/aria-lang/bioalign-go/internal/folding"
	"github.com/aria-lang/bioalign-go/internal/scoring"
	"github.com/aria-lang/bioalign-go/internal/sequence"
	"github.com/aria-lang/bioalign-go/internal/stats"
	"github.com/aria-lang/bioalign-go/internal/traceback"
)

var (
	// ErrNotImplemented is returned by engines that provide no fill.
	ErrNotImplemented = errors.New("engine not implemented")
	// ErrUnknownAlgorithm is returned for tags with no engine.
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
	// ErrBadRequest marks requests an engine cannot run as given.
	ErrBadRequest = errors.New("bad request")
)

// Algorithm tags an engine variant.
type Algorithm string

const (
	NeedlemanWunsch   Algorithm = "needleman-wunsch"
	Gotoh             Algorithm = "gotoh"
	NeedlemanWunsch3D Algorithm = "needleman-wunsch-3d"
	Nussinov          Algorithm = "nussinov"
)

// Algorithms lists every tag in dispatch order.
func Algorithms() []Algorithm {
	return []Algorithm{NeedlemanWunsch, Gotoh, NeedlemanWunsch3D, Nussinov}
}

// ParseAlgorithm accepts a tag or one of the command aliases
// (nw, global, gotoh, affine, nw3, three, nussinov, fold).
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "needleman-wunsch", "nw", "global":
		return NeedlemanWunsch, nil
	case "gotoh", "affine":
		return Gotoh, nil
	case "needleman-wunsch-3d", "nw3", "three":
		return NeedlemanWunsch3D, nil
	case "nussinov", "fold":
		return Nussinov, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
}

// Sequences returns how many input sequences the algorithm takes.
func (a Algorithm) Sequences() int {
	switch a {
	case NeedlemanWunsch, Gotoh:
		return 2
	case NeedlemanWunsch3D:
		return 3
	case Nussinov:
		return 1
	}
	return 0
}

func (a Algorithm) String() string { return string(a) }

// Request carries the inputs of one engine run. Fields an algorithm does
// not use are ignored.
type Request struct {
	Algorithm Algorithm
	Sequences []*sequence.Sequence
	// Matrix scores substitutions; nil selects scoring.DNA.
	Matrix *scoring.Matrix
	Gap    alignment.LinearGap
	Affine alignment.AffineGap
	Loop   int
	Mode   traceback.Mode
	// Seed drives one-path mode; 0 seeds from the clock.
	Seed     int64
	MaxPaths int
}

// Result is the outcome of one engine run.
type Result struct {
	Algorithm  Algorithm
	Score      int
	Alignments []*alignment.Alignment
	Paths      int
	Structure  *folding.Structure
	// SubScores holds A-B, A-C and B-C for three-way runs.
	SubScores []int
	Summary   *stats.AlignmentSetStats
	Folding   *stats.StructureStats
}

// Engine computes a Result for a Request.
type Engine interface {
	Compute(ctx context.Context, req Request) (*Result, error)
}

// Unimplemented can be embedded by engines under construction. Its Compute
// never reports a score.
type Unimplemented struct{}

// Compute always fails with ErrNotImplemented.
func (Unimplemented) Compute(_ context.Context, req Request) (*Result, error) {
	return nil, fmt.Errorf("%w: %s", ErrNotImplemented, req.Algorithm)
}

// For returns the engine for an algorithm tag.
func For(a Algorithm) (Engine, error) {
	switch a {
	case NeedlemanWunsch:
		return linearEngine{}, nil
	case Gotoh:
		return affineEngine{}, nil
	case NeedlemanWunsch3D:
		return cubeEngine{}, nil
	case Nussinov:
		return foldingEngine{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, string(a))
}

func checkCount(req Request) error {
	want := req.Algorithm.Sequences()
	if len(req.Sequences) != want {
		return fmt.Errorf("%w: %s takes %d sequences, got %d",
			ErrBadRequest, req.Algorithm, want, len(req.Sequences))
	}
	for i, s := range req.Sequences {
		if s == nil {
			return fmt.Errorf("%w: sequence %d is nil", ErrBadRequest, i+1)
		}
	}
	return nil
}

func alignOptions(req Request) alignment.Options {
	opts := alignment.Options{Mode: req.Mode, MaxPaths: req.MaxPaths}
	if req.Mode == traceback.OnePath {
		opts.Rand = traceback.NewRand(req.Seed)
	}
	return opts
}

func fromAlignment(a Algorithm, r *alignment.Result) *Result {
	res := &Result{
		Algorithm:  a,
		Score:      r.Score,
		Alignments: r.Alignments,
		Paths:      r.Paths,
		SubScores:  r.SubScores,
	}
	if summary, err := stats.FromAlignments(r.Alignments); err == nil {
		res.Summary = summary
	}
	return res
}

// badInput marks scoring and parameter errors as request errors.
func badInput(err error) error {
	if errors.Is(err, scoring.ErrUnknownSymbol) ||
		errors.Is(err, alignment.ErrPositiveGap) ||
		errors.Is(err, alignment.ErrSequenceCount) ||
		errors.Is(err, folding.ErrNegativeLoop) {
		return fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	var seqErr sequence.SequenceError
	if errors.As(err, &seqErr) {
		return fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	return err
}

type linearEngine struct{}

func (linearEngine) Compute(ctx context.Context, req Request) (*Result, error) {
	if err := checkCount(req); err != nil {
		return nil, err
	}
	r, err := alignment.NeedlemanWunsch(ctx, req.Sequences[0], req.Sequences[1],
		req.Matrix, req.Gap, alignOptions(req))
	if err != nil {
		return nil, badInput(err)
	}
	return fromAlignment(req.Algorithm, r), nil
}

type affineEngine struct{}

func (affineEngine) Compute(ctx context.Context, req Request) (*Result, error) {
	if err := checkCount(req); err != nil {
		return nil, err
	}
	r, err := alignment.Gotoh(ctx, req.Sequences[0], req.Sequences[1],
		req.Matrix, req.Affine, alignOptions(req))
	if err != nil {
		return nil, badInput(err)
	}
	return fromAlignment(req.Algorithm, r), nil
}

type cubeEngine struct{}

func (cubeEngine) Compute(ctx context.Context, req Request) (*Result, error) {
	if err := checkCount(req); err != nil {
		return nil, err
	}
	r, err := alignment.NeedlemanWunsch3(ctx, req.Sequences[0], req.Sequences[1], req.Sequences[2],
		req.Matrix, req.Gap, alignOptions(req))
	if err != nil {
		return nil, badInput(err)
	}
	return fromAlignment(req.Algorithm, r), nil
}

type foldingEngine struct{}

func (foldingEngine) Compute(ctx context.Context, req Request) (*Result, error) {
	if err := checkCount(req); err != nil {
		return nil, err
	}
	s, err := folding.Nussinov(ctx, req.Sequences[0], req.Loop)
	if err != nil {
		return nil, badInput(err)
	}
	return &Result{
		Algorithm: req.Algorithm,
		Score:     s.Score(),
		Structure: s,
		Folding:   stats.FromStructure(s),
	}, nil
}
