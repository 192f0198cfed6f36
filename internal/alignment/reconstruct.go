package alignment

import (
	"context"
	"strings"

	"github.com/aria-lang/bioalign-go/internal/traceback"
)

// Options controls traceback for every engine.
type Options struct {
	// Mode selects all optimal alignments or one chosen at random.
	Mode traceback.Mode
	// MaxPaths bounds the all-paths enumeration; 0 means unlimited.
	MaxPaths int
	// Rand drives OnePath mode. Nil seeds from the clock.
	Rand traceback.Rand
}

// Result is the outcome of one engine run.
type Result struct {
	Score      int
	Alignments []*Alignment
	// Paths is the number of traceback paths walked; several paths can
	// collapse into one alignment.
	Paths int
	// SubScores holds the optimal pairwise scores A-B, A-C and B-C of a
	// three-way run.
	SubScores []int
}

// Best returns the first alignment, or nil when there is none.
func (r *Result) Best() *Alignment {
	if len(r.Alignments) == 0 {
		return nil
	}
	return r.Alignments[0]
}

// coordinates returns the per-axis coordinates of p for n sequences,
// ordered like the sequences: (Y, X) for pairs and (Z, Y, X) for triples.
func coordinates(p traceback.Position, n int) []int {
	if n == 3 {
		return []int{p.Z, p.Y, p.X}
	}
	return []int{p.Y, p.X}
}

// reconstruct turns a start-to-origin path into gapped rows. Each step
// that advances an axis consumes that sequence's next symbol; the other
// rows receive a gap. A step that only changes the table label emits
// nothing. A step jumping several cells along one axis emits one column per
// cell, axis by axis.
func reconstruct(path traceback.Path, seqs []string) []string {
	rows := make([]strings.Builder, len(seqs))
	next := make([]int, len(seqs))

	forward := path.Reverse()
	for k := 1; k < len(forward); k++ {
		from := coordinates(forward[k-1], len(seqs))
		to := coordinates(forward[k], len(seqs))

		delta := make([]int, len(seqs))
		unit := true
		for i := range seqs {
			delta[i] = to[i] - from[i]
			if delta[i] > 1 {
				unit = false
			}
		}

		if unit {
			moved := false
			for _, d := range delta {
				moved = moved || d > 0
			}
			if !moved {
				continue
			}
			for i := range seqs {
				if delta[i] > 0 {
					rows[i].WriteByte(seqs[i][next[i]])
					next[i]++
				} else {
					rows[i].WriteByte(Gap)
				}
			}
			continue
		}

		for axis := range seqs {
			for c := 0; c < delta[axis]; c++ {
				for i := range seqs {
					if i == axis {
						rows[i].WriteByte(seqs[i][next[i]])
						next[i]++
					} else {
						rows[i].WriteByte(Gap)
					}
				}
			}
		}
	}

	out := make([]string, len(seqs))
	for i := range rows {
		out[i] = rows[i].String()
	}
	return out
}

// collect walks the traceback and reconstructs de-duplicated alignments in
// first-seen order.
func collect(ctx context.Context, s traceback.Stepper, start traceback.Position,
	seqs []string, score int, alignType AlignmentType, opts Options) (*Result, error) {
	paths, err := traceback.Walk(ctx, s, start, opts.Mode,
		traceback.Options{MaxPaths: opts.MaxPaths}, opts.Rand)
	if err != nil {
		return nil, err
	}

	result := &Result{Score: score, Paths: len(paths)}
	seen := make(map[string]bool, len(paths))
	for _, p := range paths {
		rows := reconstruct(p, seqs)
		key := strings.Join(rows, "\n")
		if seen[key] {
			continue
		}
		seen[key] = true

		a, err := NewAlignment(rows, score, alignType)
		if err != nil {
			return nil, err
		}
		result.Alignments = append(result.Alignments, a)
	}
	return result, nil
}
