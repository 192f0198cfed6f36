package alignment

import (
	"context"
	"fmt"
	"strings"

	"github.com/aria-lang/bioalign-go/internal/grid"
	"github.com/aria-lang/bioalign-go/internal/scoring"
	"github.com/aria-lang/bioalign-go/internal/sequence"
	"github.com/aria-lang/bioalign-go/internal/traceback"
)

// prepare resolves a nil matrix to scoring.DNA and checks every sequence
// against it.
func prepare(m *scoring.Matrix, seqs ...*sequence.Sequence) (*scoring.Matrix, []string, error) {
	if m == nil {
		m = scoring.DNA()
	}

	bases := make([]string, len(seqs))
	for i, s := range seqs {
		if s == nil {
			return nil, nil, fmt.Errorf("%w: sequence %d is nil", ErrSequenceCount, i+1)
		}
		if at := strings.IndexByte(s.Bases, Gap); at >= 0 {
			return nil, nil, fmt.Errorf("sequence %d: %w", i+1,
				&sequence.InvalidBaseError{Position: at, Found: Gap, SeqType: s.SeqType})
		}
		if err := m.Check(s.Bases); err != nil {
			return nil, nil, fmt.Errorf("sequence %d: %w", i+1, err)
		}
		bases[i] = s.Bases
	}
	return m, bases, nil
}

// symbol returns the symbol at 1-based DP index i of s, or "" on the
// boundary row or column.
func symbol(s string, i int) string {
	if i < 1 || i > len(s) {
		return ""
	}
	return s[i-1 : i]
}

// NeedlemanWunsch performs global alignment with a linear gap cost and
// returns every optimal alignment (or one, per opts.Mode).
//
// T[y][x] = max(T[y][x-1]+g, T[y-1][x-1]+score(a,b), T[y-1][x]+g) with
// T[y][0] = y*g and T[0][x] = x*g. A nil matrix selects scoring.DNA.
func NeedlemanWunsch(ctx context.Context, seq1, seq2 *sequence.Sequence,
	m *scoring.Matrix, gap LinearGap, opts Options) (*Result, error) {
	if err := gap.Validate(); err != nil {
		return nil, err
	}
	m, seqs, err := prepare(m, seq1, seq2)
	if err != nil {
		return nil, err
	}

	a, b := seqs[0], seqs[1]
	t := FillLinear(a, b, m, gap.Cost)
	st := &linearStepper{table: t, a: a, b: b, m: m, gap: gap.Cost}

	return collect(ctx, st, traceback.At(len(a), len(b)), seqs, t.At(len(a), len(b)), Global, opts)
}

// FillLinear fills the (len(a)+1) x (len(b)+1) linear-gap table. Inputs
// are not validated; symbols the matrix cannot score make their cells
// unreachable.
func FillLinear(a, b string, m *scoring.Matrix, cost int) *grid.Table {
	rows, cols := len(a), len(b)
	t := grid.NewTable(rows+1, cols+1)

	t.Set(0, 0, 0)
	for y := 1; y <= rows; y++ {
		t.Set(y, 0, y*cost)
	}
	for x := 1; x <= cols; x++ {
		t.Set(0, x, x*cost)
	}

	for y := 1; y <= rows; y++ {
		for x := 1; x <= cols; x++ {
			t.Set(y, x, grid.Max(
				t.At(y, x-1)+cost,
				grid.Add(t.At(y-1, x-1), m.Score(a[y-1], b[x-1])),
				t.At(y-1, x)+cost,
			))
		}
	}
	return t
}

// linearStepper recomputes the three linear-gap cases: diagonal first,
// then insertion (left) and deletion (up).
type linearStepper struct {
	table *grid.Table
	a, b  string
	m     *scoring.Matrix
	gap   int
}

func (s *linearStepper) Predecessors(p traceback.Position) []traceback.Position {
	y, x := p.Y, p.X
	v := s.table.At(y, x)
	preds := make([]traceback.Position, 0, 3)

	if y > 0 && x > 0 && v == grid.Add(s.table.At(y-1, x-1), s.m.Value(symbol(s.a, y), symbol(s.b, x))) {
		preds = append(preds, traceback.At(y-1, x-1))
	}
	if x > 0 && v == s.table.At(y, x-1)+s.gap {
		preds = append(preds, traceback.At(y, x-1))
	}
	if y > 0 && v == s.table.At(y-1, x)+s.gap {
		preds = append(preds, traceback.At(y-1, x))
	}
	return preds
}

// LinearScore returns the optimal linear-gap score without traceback,
// keeping only two rows of the table.
func LinearScore(seq1, seq2 *sequence.Sequence, m *scoring.Matrix, gap LinearGap) (int, error) {
	if err := gap.Validate(); err != nil {
		return 0, err
	}
	m, seqs, err := prepare(m, seq1, seq2)
	if err != nil {
		return 0, err
	}

	s1, s2 := seqs[0], seqs[1]
	n := len(s2)
	prevRow := make([]int, n+1)
	currRow := make([]int, n+1)

	for j := 0; j <= n; j++ {
		prevRow[j] = j * gap.Cost
	}

	for i := 1; i <= len(s1); i++ {
		currRow[0] = i * gap.Cost

		for j := 1; j <= n; j++ {
			diag := prevRow[j-1] + m.Score(s1[i-1], s2[j-1])
			up := prevRow[j] + gap.Cost
			left := currRow[j-1] + gap.Cost

			currRow[j] = grid.Max(left, diag, up)
		}

		prevRow, currRow = currRow, prevRow
	}

	return prevRow[n], nil
}

// IndexedScore pairs a target index with its global score.
type IndexedScore struct {
	Index int
	Score int
}

// ScoreAgainstMultiple scores a query against every target.
func ScoreAgainstMultiple(query *sequence.Sequence, targets []*sequence.Sequence,
	m *scoring.Matrix, gap LinearGap) ([]IndexedScore, error) {
	if len(targets) == 0 {
		return nil, fmt.Errorf("target list cannot be empty")
	}

	results := make([]IndexedScore, len(targets))
	for i, target := range targets {
		score, err := LinearScore(query, target, m, gap)
		if err != nil {
			return nil, fmt.Errorf("target %d: %w", i, err)
		}
		results[i] = IndexedScore{Index: i, Score: score}
	}
	return results, nil
}

// IndexedResult pairs a target index with its alignment result.
type IndexedResult struct {
	Index  int
	Result *Result
}

// BestGlobalMatch ranks targets by linear global score and aligns the
// query against the best one. Ties go to the earliest target.
func BestGlobalMatch(ctx context.Context, query *sequence.Sequence, targets []*sequence.Sequence,
	m *scoring.Matrix, gap LinearGap, opts Options) (*IndexedResult, error) {
	scores, err := ScoreAgainstMultiple(query, targets, m, gap)
	if err != nil {
		return nil, err
	}

	best := scores[0]
	for _, s := range scores[1:] {
		if s.Score > best.Score {
			best = s
		}
	}

	result, err := NeedlemanWunsch(ctx, query, targets[best.Index], m, gap, opts)
	if err != nil {
		return nil, err
	}
	return &IndexedResult{Index: best.Index, Result: result}, nil
}
