package alignment

import (
	"context"

	"github.com/aria-lang/bioalign-go/internal/grid"
	"github.com/aria-lang/bioalign-go/internal/scoring"
	"github.com/aria-lang/bioalign-go/internal/sequence"
	"github.com/aria-lang/bioalign-go/internal/traceback"
)

// AffineTables holds the three coupled Gotoh tables. S is the main table,
// Q ends in a gap consuming the horizontal sequence and P ends in a gap
// consuming the vertical sequence.
type AffineTables struct {
	S, Q, P *grid.Table
}

// Gotoh performs global alignment with affine gap costs and returns every
// optimal alignment (or one, per opts.Mode).
//
// For y, x >= 1, with o = gap.Open + gap.Extend:
//
//	Q[y][x] = max(Q[y][x-1]+e, S[y][x-1]+o)
//	P[y][x] = max(P[y-1][x]+e, S[y-1][x]+o)
//	S[y][x] = max(Q[y][x], S[y-1][x-1]+score(a,b), P[y][x])
func Gotoh(ctx context.Context, seq1, seq2 *sequence.Sequence,
	m *scoring.Matrix, gap AffineGap, opts Options) (*Result, error) {
	if err := gap.Validate(); err != nil {
		return nil, err
	}
	m, seqs, err := prepare(m, seq1, seq2)
	if err != nil {
		return nil, err
	}

	a, b := seqs[0], seqs[1]
	tables := FillAffine(a, b, m, gap)
	st := &affineStepper{AffineTables: tables, a: a, b: b, m: m, gap: gap}

	return collect(ctx, st, traceback.At(len(a), len(b)), seqs, tables.S.At(len(a), len(b)), GlobalAffine, opts)
}

// isOpenMarker reports whether (y, x) of the gap table l is a boundary
// cell where a gap can only be opened, never extended: row 0 of Q and
// column 0 of P. The cells store grid.NegInf.
func isOpenMarker(l traceback.Label, y, x int) bool {
	switch l {
	case traceback.HorizontalGap:
		return y == 0
	case traceback.VerticalGap:
		return x == 0
	}
	return false
}

// FillAffine fills the S, Q and P tables for a against b.
func FillAffine(a, b string, m *scoring.Matrix, gap AffineGap) *AffineTables {
	rows, cols := len(a), len(b)
	t := &AffineTables{
		S: grid.NewTable(rows+1, cols+1),
		Q: grid.NewTable(rows+1, cols+1),
		P: grid.NewTable(rows+1, cols+1),
	}

	t.S.Set(0, 0, 0)
	for y := 1; y <= rows; y++ {
		t.S.Set(y, 0, gap.Run(y))
	}
	for x := 1; x <= cols; x++ {
		t.S.Set(0, x, gap.Run(x))
	}
	for y := 0; y <= rows; y++ {
		t.Q.Set(y, 0, grid.NegInf)
		if y > 0 {
			t.P.Set(y, 0, grid.NegInf)
		}
	}
	for x := 0; x <= cols; x++ {
		t.P.Set(0, x, grid.NegInf)
		if x > 0 {
			t.Q.Set(0, x, grid.NegInf)
		}
	}

	opening := gap.Opening()
	for y := 1; y <= rows; y++ {
		for x := 1; x <= cols; x++ {
			q := grid.Max(grid.Add(t.Q.At(y, x-1), gap.Extend), grid.Add(t.S.At(y, x-1), opening))
			p := grid.Max(grid.Add(t.P.At(y-1, x), gap.Extend), grid.Add(t.S.At(y-1, x), opening))
			t.Q.Set(y, x, q)
			t.P.Set(y, x, p)
			t.S.Set(y, x, grid.Max(q, grid.Add(t.S.At(y-1, x-1), m.Score(a[y-1], b[x-1])), p))
		}
	}
	return t
}

// affineStepper follows the table labels. In S it checks, in order, the
// substitution, entering P, entering Q, and the two boundary gap runs; a
// non-origin S cell matching none of them jumps straight to the origin.
// In P and Q it checks extend before open.
type affineStepper struct {
	*AffineTables
	a, b string
	m    *scoring.Matrix
	gap  AffineGap
}

func (s *affineStepper) Predecessors(p traceback.Position) []traceback.Position {
	switch p.Label {
	case traceback.VerticalGap:
		return s.gapPredecessors(p, s.P, p.Y-1, p.X)
	case traceback.HorizontalGap:
		return s.gapPredecessors(p, s.Q, p.Y, p.X-1)
	}
	return s.mainPredecessors(p)
}

func (s *affineStepper) gapPredecessors(p traceback.Position, t *grid.Table, py, px int) []traceback.Position {
	if py < 0 || px < 0 {
		return nil
	}
	v := t.At(p.Y, p.X)
	preds := make([]traceback.Position, 0, 2)

	if !isOpenMarker(p.Label, py, px) && v == grid.Add(t.At(py, px), s.gap.Extend) {
		preds = append(preds, traceback.At(py, px).In(p.Label))
	}
	if v == grid.Add(s.S.At(py, px), s.gap.Opening()) {
		preds = append(preds, traceback.At(py, px))
	}
	return preds
}

func (s *affineStepper) mainPredecessors(p traceback.Position) []traceback.Position {
	y, x := p.Y, p.X
	v := s.S.At(y, x)
	preds := make([]traceback.Position, 0, 3)

	if y > 0 && x > 0 {
		if v == grid.Add(s.S.At(y-1, x-1), s.m.Value(symbol(s.a, y), symbol(s.b, x))) {
			preds = append(preds, traceback.At(y-1, x-1))
		}
		if v == s.P.At(y, x) {
			preds = append(preds, p.In(traceback.VerticalGap))
		}
		if v == s.Q.At(y, x) {
			preds = append(preds, p.In(traceback.HorizontalGap))
		}
	}
	if y == 0 && x > 0 && v == s.S.At(0, x-1)+s.gap.Extend {
		preds = append(preds, traceback.At(0, x-1))
	}
	if x == 0 && y > 0 && v == s.S.At(y-1, 0)+s.gap.Extend {
		preds = append(preds, traceback.At(y-1, 0))
	}

	if len(preds) == 0 && p != traceback.Origin {
		preds = append(preds, traceback.Origin)
	}
	return preds
}
