// Package alignment provides global sequence alignment with full
// traceback.
//
// Three engines share one traceback and reconstruction layer:
// Needleman-Wunsch with a linear gap cost, Gotoh with affine gap costs,
// and a three-sequence Needleman-Wunsch over a cube. Each engine fills its
// tables, walks every optimal path (or one random path) back to the origin
// and turns the paths into gapped rows.
package alignment

import (
	"errors"
	"fmt"

	"github.com/aria-lang/bioalign-go/internal/sequence"
)

var (
	// ErrPositiveGap is returned for gap costs above zero.
	ErrPositiveGap = errors.New("gap cost must be <= 0")
	// ErrSequenceCount is returned when an engine receives the wrong number
	// of sequences or rows.
	ErrSequenceCount = errors.New("wrong number of sequences")
)

// Gap is the symbol used for gap columns.
const Gap = sequence.GapSymbol

// AlignmentType represents the engine that produced an alignment.
type AlignmentType int

const (
	// Global is pairwise Needleman-Wunsch with a linear gap cost.
	Global AlignmentType = iota
	// GlobalAffine is pairwise Gotoh with affine gap costs.
	GlobalAffine
	// ThreeWay is three-sequence Needleman-Wunsch.
	ThreeWay
)

func (t AlignmentType) String() string {
	switch t {
	case Global:
		return "global"
	case GlobalAffine:
		return "global-affine"
	case ThreeWay:
		return "three-way"
	default:
		return "unknown"
	}
}

// LinearGap charges Cost for every gap symbol.
type LinearGap struct {
	Cost int
}

// NewLinearGap creates a linear gap model with validation.
func NewLinearGap(cost int) (LinearGap, error) {
	g := LinearGap{Cost: cost}
	return g, g.Validate()
}

// Validate checks that the cost is not positive.
func (g LinearGap) Validate() error {
	if g.Cost > 0 {
		return fmt.Errorf("%w: got %d", ErrPositiveGap, g.Cost)
	}
	return nil
}

func (g LinearGap) String() string {
	return fmt.Sprintf("LinearGap { cost: %d }", g.Cost)
}

// AffineGap charges Open+Extend for the first symbol of a gap run and
// Extend for each further symbol.
type AffineGap struct {
	Open   int
	Extend int
}

// NewAffineGap creates an affine gap model with validation.
func NewAffineGap(open, extend int) (AffineGap, error) {
	g := AffineGap{Open: open, Extend: extend}
	return g, g.Validate()
}

// Validate checks that neither cost is positive.
func (g AffineGap) Validate() error {
	if g.Open > 0 {
		return fmt.Errorf("%w: gap open %d", ErrPositiveGap, g.Open)
	}
	if g.Extend > 0 {
		return fmt.Errorf("%w: gap extend %d", ErrPositiveGap, g.Extend)
	}
	return nil
}

// Opening is the cost of a gap run of length one.
func (g AffineGap) Opening() int {
	return g.Open + g.Extend
}

// Run is the cost of a gap run of length k.
func (g AffineGap) Run(k int) int {
	if k <= 0 {
		return 0
	}
	return g.Open + g.Extend*k
}

func (g AffineGap) String() string {
	return fmt.Sprintf("AffineGap { open: %d, extend: %d }", g.Open, g.Extend)
}
