// Package folding predicts RNA secondary structure by maximizing the
// number of non-crossing base pairs (Nussinov).
package folding

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/aria-lang/bioalign-go/internal/grid"
	"github.com/aria-lang/bioalign-go/internal/sequence"
)

// ErrNegativeLoop is returned for a negative minimum loop length.
var ErrNegativeLoop = errors.New("minimum loop length must be >= 0")

// Complementary reports whether a and b form a Watson-Crick pair (A-U or
// C-G). G-U wobble pairs are not counted.
func Complementary(a, b byte) bool {
	switch a {
	case 'A':
		return b == 'U'
	case 'U':
		return b == 'A'
	case 'C':
		return b == 'G'
	case 'G':
		return b == 'C'
	}
	return false
}

// BasePair is a pair of 1-based positions with I < J.
type BasePair struct {
	I, J int
}

func (p BasePair) String() string {
	return fmt.Sprintf("(%d,%d)", p.I, p.J)
}

// Crosses reports whether p and q form a pseudoknot: i < k < j < l.
func (p BasePair) Crosses(q BasePair) bool {
	return (p.I < q.I && q.I < p.J && p.J < q.J) || (q.I < p.I && p.I < q.J && q.J < p.J)
}

// Structure is a predicted secondary structure.
type Structure struct {
	Sequence   string
	LoopLength int
	Pairs      []BasePair
}

// Score returns the number of base pairs.
func (s *Structure) Score() int {
	return len(s.Pairs)
}

// DotBracket renders the structure with '(' and ')' for paired positions
// and '.' for unpaired ones.
func (s *Structure) DotBracket() string {
	db := []byte(strings.Repeat(".", len(s.Sequence)))
	for _, p := range s.Pairs {
		db[p.I-1] = '('
		db[p.J-1] = ')'
	}
	return string(db)
}

// Validate checks that pairs are complementary, share no position,
// respect the loop length and never cross.
func (s *Structure) Validate() error {
	used := make(map[int]bool, 2*len(s.Pairs))
	for i, p := range s.Pairs {
		if p.I < 1 || p.J > len(s.Sequence) || p.I >= p.J {
			return fmt.Errorf("pair %s out of range", p)
		}
		if p.J-p.I <= s.LoopLength {
			return fmt.Errorf("pair %s encloses fewer than %d positions", p, s.LoopLength)
		}
		if !Complementary(s.Sequence[p.I-1], s.Sequence[p.J-1]) {
			return fmt.Errorf("pair %s (%c-%c) is not complementary", p, s.Sequence[p.I-1], s.Sequence[p.J-1])
		}
		if used[p.I] || used[p.J] {
			return fmt.Errorf("pair %s reuses a paired position", p)
		}
		used[p.I], used[p.J] = true, true
		for _, q := range s.Pairs[i+1:] {
			if p.Crosses(q) {
				return fmt.Errorf("pairs %s and %s cross", p, q)
			}
		}
	}
	return nil
}

// ParseDotBracket reads balanced dot-bracket notation into 1-based pairs
// sorted by left position.
func ParseDotBracket(db string) ([]BasePair, error) {
	var open []int
	var pairs []BasePair
	for i := 0; i < len(db); i++ {
		switch db[i] {
		case '(':
			open = append(open, i+1)
		case ')':
			if len(open) == 0 {
				return nil, fmt.Errorf("unmatched ')' at position %d", i+1)
			}
			pairs = append(pairs, BasePair{I: open[len(open)-1], J: i + 1})
			open = open[:len(open)-1]
		case '.':
		default:
			return nil, fmt.Errorf("invalid dot-bracket symbol %q at position %d", db[i], i+1)
		}
	}
	if len(open) > 0 {
		return nil, fmt.Errorf("unmatched '(' at position %d", open[len(open)-1])
	}
	sortPairs(pairs)
	return pairs, nil
}

func sortPairs(pairs []BasePair) {
	sort.Slice(pairs, func(a, b int) bool { return pairs[a].I < pairs[b].I })
}

// Fill builds the Nussinov table for s: N[y][x] is the maximum number of
// non-crossing pairs in s[y:x], where a pair (k, x-1) needs x-1-k > loop.
// Only cells with y <= x are written.
func Fill(ctx context.Context, s string, loop int) (*grid.Table, error) {
	n := len(s)
	t := grid.NewTable(n+1, n+1)

	for y := 0; y <= n; y++ {
		t.Set(y, y, 0)
		if y < n {
			t.Set(y, y+1, 0)
		}
	}

	for span := 2; span <= n; span++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for y := 0; y+span <= n; y++ {
			x := y + span
			best := t.At(y, x-1)
			for k := y; k < x-1-loop; k++ {
				if Complementary(s[k], s[x-1]) {
					best = grid.Max(best, t.At(y, k)+t.At(k+1, x-1)+1)
				}
			}
			t.Set(y, x, best)
		}
	}
	return t, nil
}

type span struct{ y, x int }

// traceback recovers one optimal structure. An unpaired last position is
// preferred; otherwise the first k closing a pair with x-1 is taken.
func traceback(t *grid.Table, s string, loop int) []BasePair {
	var pairs []BasePair
	work := []span{{0, len(s)}}

	for len(work) > 0 {
		r := work[len(work)-1]
		work = work[:len(work)-1]
		y, x := r.y, r.x

		if x <= y+1 {
			continue
		}
		v := t.At(y, x)
		if v == t.At(y, x-1) {
			work = append(work, span{y, x - 1})
			continue
		}
		for k := y; k < x-1-loop; k++ {
			if Complementary(s[k], s[x-1]) && v == t.At(y, k)+t.At(k+1, x-1)+1 {
				pairs = append(pairs, BasePair{I: k + 1, J: x})
				work = append(work, span{k + 1, x - 1}, span{y, k})
				break
			}
		}
	}

	sortPairs(pairs)
	return pairs
}

// Nussinov predicts the structure of seq with the maximum number of
// non-crossing complementary pairs, each enclosing more than loop
// positions. DNA input is transcribed first.
func Nussinov(ctx context.Context, seq *sequence.Sequence, loop int) (*Structure, error) {
	if loop < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrNegativeLoop, loop)
	}
	if seq == nil {
		return nil, fmt.Errorf("sequence is nil")
	}

	bases := seq.Bases
	if seq.SeqType == sequence.DNA {
		rna, err := seq.Transcribe()
		if err != nil {
			return nil, err
		}
		bases = rna.Bases
	}
	if err := sequence.ValidateRNA(bases); err != nil {
		return nil, err
	}

	t, err := Fill(ctx, bases, loop)
	if err != nil {
		return nil, err
	}

	return &Structure{
		Sequence:   bases,
		LoopLength: loop,
		Pairs:      traceback(t, bases, loop),
	}, nil
}
