package alignment

import (
	"fmt"

	"github.com/aria-lang/bioalign-go/internal/grid"
	"github.com/aria-lang/bioalign-go/internal/scoring"
)

func checkRows(rows []string) error {
	if len(rows) < 2 {
		return fmt.Errorf("%w: need at least two rows, got %d", ErrSequenceCount, len(rows))
	}
	for _, r := range rows[1:] {
		if len(r) != len(rows[0]) {
			return fmt.Errorf("aligned sequences must have equal length")
		}
	}
	return nil
}

// ScoreLinear scores aligned rows from scratch as a sum of pairs: each
// column adds score(a,b) for every symbol pair, the gap cost for every
// symbol against a gap, and nothing for a gap against a gap.
func ScoreLinear(rows []string, m *scoring.Matrix, gap LinearGap) (int, error) {
	if err := checkRows(rows); err != nil {
		return 0, err
	}
	if m == nil {
		m = scoring.DNA()
	}

	total := 0
	for col := 0; col < len(rows[0]); col++ {
		for i := 0; i < len(rows); i++ {
			for j := i + 1; j < len(rows); j++ {
				a, b := rows[i][col], rows[j][col]
				switch {
				case a == Gap && b == Gap:
				case a == Gap || b == Gap:
					total += gap.Cost
				default:
					total = grid.Add(total, m.Score(a, b))
				}
			}
		}
	}
	return total, nil
}

// ScoreAffine scores a pairwise alignment from scratch, charging
// gap.Run(k) for every maximal gap run of length k in either row.
func ScoreAffine(rows []string, m *scoring.Matrix, gap AffineGap) (int, error) {
	if err := checkRows(rows); err != nil {
		return 0, err
	}
	if len(rows) != 2 {
		return 0, fmt.Errorf("%w: affine scoring is pairwise, got %d rows", ErrSequenceCount, len(rows))
	}
	if m == nil {
		m = scoring.DNA()
	}

	a, b := rows[0], rows[1]
	total := 0
	for i := 0; i < len(a); i++ {
		switch {
		case a[i] == Gap && b[i] == Gap:
			return 0, fmt.Errorf("column %d is a gap in both rows", i)
		case a[i] == Gap:
			if i == 0 || a[i-1] != Gap {
				total += gap.Open
			}
			total += gap.Extend
		case b[i] == Gap:
			if i == 0 || b[i-1] != Gap {
				total += gap.Open
			}
			total += gap.Extend
		default:
			total = grid.Add(total, m.Score(a[i], b[i]))
		}
	}
	return total, nil
}

// Rescore re-scores every alignment of r under the model that produced
// it. It returns the first alignment whose independent score disagrees
// with r.Score, or nil when all agree.
func Rescore(r *Result, m *scoring.Matrix, linear LinearGap, affine AffineGap) (*Alignment, error) {
	for _, a := range r.Alignments {
		var score int
		var err error
		if a.AlignmentType == GlobalAffine {
			score, err = ScoreAffine(a.Rows, m, affine)
		} else {
			score, err = ScoreLinear(a.Rows, m, linear)
		}
		if err != nil {
			return nil, err
		}
		if score != r.Score {
			return a, nil
		}
	}
	return nil, nil
}
