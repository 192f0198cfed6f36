package alignment

import (
	"fmt"
	"strings"

	"github.com/aria-lang/bioalign-go/internal/scoring"
)

// Alignment is one optimal alignment: two or three equal-length rows over
// the input symbols and '-'.
type Alignment struct {
	Rows          []string
	Score         int
	AlignmentType AlignmentType
	Identity      float64
}

// NewAlignment creates an alignment result.
func NewAlignment(rows []string, score int, alignType AlignmentType) (*Alignment, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: alignment needs at least two rows, got %d", ErrSequenceCount, len(rows))
	}
	for _, r := range rows[1:] {
		if len(r) != len(rows[0]) {
			return nil, fmt.Errorf("aligned sequences must have equal length")
		}
	}

	a := &Alignment{
		Rows:          append([]string(nil), rows...),
		Score:         score,
		AlignmentType: alignType,
	}
	a.Identity = a.calculateIdentity()
	return a, nil
}

// calculateIdentity calculates the fraction of fully identical columns.
func (a *Alignment) calculateIdentity() float64 {
	if a.Length() == 0 {
		return 0.0
	}
	return float64(a.MatchCount()) / float64(a.Length())
}

// Length returns the number of columns.
func (a *Alignment) Length() int {
	return len(a.Rows[0])
}

// Row returns row i.
func (a *Alignment) Row(i int) string {
	return a.Rows[i]
}

// Column returns the symbols of column i, one per row.
func (a *Alignment) Column(i int) []byte {
	col := make([]byte, len(a.Rows))
	for r, row := range a.Rows {
		col[r] = row[i]
	}
	return col
}

func identical(col []byte) bool {
	if col[0] == Gap {
		return false
	}
	for _, c := range col[1:] {
		if c != col[0] {
			return false
		}
	}
	return true
}

func hasGap(col []byte) bool {
	for _, c := range col {
		if c == Gap {
			return true
		}
	}
	return false
}

// MatchCount returns the number of columns where every row holds the same
// symbol.
func (a *Alignment) MatchCount() int {
	count := 0
	for i := 0; i < a.Length(); i++ {
		if identical(a.Column(i)) {
			count++
		}
	}
	return count
}

// MismatchCount returns the number of gap-free columns that are not fully
// identical.
func (a *Alignment) MismatchCount() int {
	count := 0
	for i := 0; i < a.Length(); i++ {
		col := a.Column(i)
		if !hasGap(col) && !identical(col) {
			count++
		}
	}
	return count
}

// Gaps returns the number of gap symbols in row i.
func (a *Alignment) Gaps(i int) int {
	return strings.Count(a.Rows[i], string(Gap))
}

// TotalGaps returns the total number of gaps.
func (a *Alignment) TotalGaps() int {
	total := 0
	for i := range a.Rows {
		total += a.Gaps(i)
	}
	return total
}

// GapOpenings counts maximal runs of gaps across all rows.
func (a *Alignment) GapOpenings() int {
	openings := 0
	for _, row := range a.Rows {
		inGap := false
		for i := 0; i < len(row); i++ {
			if row[i] == Gap && !inGap {
				openings++
			}
			inGap = row[i] == Gap
		}
	}
	return openings
}

// Ungapped returns row i with gaps removed.
func (a *Alignment) Ungapped(i int) string {
	return strings.ReplaceAll(a.Rows[i], string(Gap), "")
}

// ToCIGAR generates a CIGAR string for a pairwise alignment, reading the
// first row as the reference. Three-row alignments have no CIGAR.
func (a *Alignment) ToCIGAR() string {
	if len(a.Rows) != 2 || a.Length() == 0 {
		return ""
	}
	ref, query := a.Rows[0], a.Rows[1]

	var cigar strings.Builder
	currentOp := byte(0)
	count := 0

	for i := 0; i < len(ref); i++ {
		var op byte
		if ref[i] == Gap {
			op = 'I'
		} else if query[i] == Gap {
			op = 'D'
		} else if ref[i] == query[i] {
			op = '='
		} else {
			op = 'X'
		}

		if op == currentOp {
			count++
		} else {
			if count > 0 {
				fmt.Fprintf(&cigar, "%d%c", count, currentOp)
			}
			currentOp = op
			count = 1
		}
	}

	if count > 0 {
		fmt.Fprintf(&cigar, "%d%c", count, currentOp)
	}

	return cigar.String()
}

// Conservation returns the annotation line printed under an alignment:
// '*' for fully identical columns, ':' for gap-free columns whose every
// pair scores positively under m, ' ' otherwise. A nil matrix only marks
// identical columns.
func (a *Alignment) Conservation(m *scoring.Matrix) string {
	var line strings.Builder
	for i := 0; i < a.Length(); i++ {
		col := a.Column(i)
		switch {
		case identical(col):
			line.WriteByte('*')
		case m != nil && !hasGap(col) && allPositive(col, m):
			line.WriteByte(':')
		default:
			line.WriteByte(' ')
		}
	}
	return line.String()
}

func allPositive(col []byte, m *scoring.Matrix) bool {
	for i := 0; i < len(col); i++ {
		for j := i + 1; j < len(col); j++ {
			if m.Score(col[i], col[j]) <= 0 {
				return false
			}
		}
	}
	return true
}

func (a *Alignment) String() string {
	return fmt.Sprintf("Alignment { score: %d, identity: %.1f%%, length: %d }",
		a.Score, a.Identity*100, a.Length())
}

// PercentIdentity calculates percent identity between two aligned rows.
func PercentIdentity(aligned1, aligned2 string) (float64, error) {
	if len(aligned1) != len(aligned2) {
		return 0, fmt.Errorf("aligned sequences must have equal length")
	}
	if len(aligned1) == 0 {
		return 0, fmt.Errorf("aligned sequences cannot be empty")
	}

	a, err := NewAlignment([]string{aligned1, aligned2}, 0, Global)
	if err != nil {
		return 0, err
	}
	return a.Identity * 100.0, nil
}
