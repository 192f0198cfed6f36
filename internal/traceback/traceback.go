// Package traceback walks filled dynamic-programming tables back from a
// final cell to the origin.
//
// The walk is generic: each engine supplies a Stepper that recomputes,
// for a cell, which candidate terms of its recurrence produced the stored
// value. All enumerates every such path; One follows a single path,
// choosing uniformly at random at each branch.
package traceback

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// ErrPathLimit is returned when more optimal paths exist than allowed.
var ErrPathLimit = errors.New("traceback: optimal path limit exceeded")

// Label names the table a position belongs to.
type Label int

const (
	// Main is the primary score table (S in the affine model).
	Main Label = iota
	// VerticalGap is the affine table for gaps consuming the vertical
	// sequence (P).
	VerticalGap
	// HorizontalGap is the affine table for gaps consuming the horizontal
	// sequence (Q).
	HorizontalGap
)

func (l Label) String() string {
	switch l {
	case Main:
		return "S"
	case VerticalGap:
		return "P"
	case HorizontalGap:
		return "Q"
	default:
		return "?"
	}
}

// Position is a labeled table cell. Two-dimensional tables leave Z at 0.
type Position struct {
	Z, Y, X int
	Label   Label
}

// Origin is the cell every complete path ends at.
var Origin = Position{}

// At returns the Main-labeled 2D position (y, x).
func At(y, x int) Position {
	return Position{Y: y, X: x}
}

// At3 returns the Main-labeled 3D position (z, y, x).
func At3(z, y, x int) Position {
	return Position{Z: z, Y: y, X: x}
}

// In returns p relabeled to l.
func (p Position) In(l Label) Position {
	p.Label = l
	return p
}

func (p Position) String() string {
	if p.Z != 0 {
		return fmt.Sprintf("%s(%d,%d,%d)", p.Label, p.Z, p.Y, p.X)
	}
	return fmt.Sprintf("%s(%d,%d)", p.Label, p.Y, p.X)
}

// Path is a sequence of positions from a start cell back to the origin.
type Path []Position

// Reverse returns the path in origin-to-start order.
func (p Path) Reverse() Path {
	out := make(Path, len(p))
	for i, pos := range p {
		out[len(p)-1-i] = pos
	}
	return out
}

func (p Path) String() string {
	parts := make([]string, len(p))
	for i, pos := range p {
		parts[i] = pos.String()
	}
	return strings.Join(parts, " <- ")
}

// Stepper reports the predecessors of a position: the cells whose
// recurrence term equals the position's stored value. The order is fixed
// and determines the order in which paths are reported.
type Stepper interface {
	Predecessors(p Position) []Position
}

// StepFunc adapts a function to the Stepper interface.
type StepFunc func(p Position) []Position

// Predecessors calls f(p).
func (f StepFunc) Predecessors(p Position) []Position {
	return f(p)
}

// Options bounds an all-paths enumeration.
type Options struct {
	// MaxPaths caps the number of complete paths; 0 means unlimited.
	MaxPaths int
}

const ctxCheckInterval = 256

// node is a shared suffix of a path under construction. Sibling branches
// point at the same parent, so a branch point never copies its prefix.
type node struct {
	pos    Position
	parent *node
	depth  int
}

func (n *node) path() Path {
	p := make(Path, n.depth+1)
	for cur := n; cur != nil; cur = cur.parent {
		p[cur.depth] = cur.pos
	}
	return p
}

// All returns every path from start to Origin, in the order a recursive
// depth-first search visiting predecessors in Stepper order would find
// them. Branches that end anywhere but Origin are discarded. When start is
// Origin the single one-cell path is returned.
func All(ctx context.Context, s Stepper, start Position, opts Options) ([]Path, error) {
	var paths []Path
	stack := []*node{{pos: start}}

	for steps := 0; len(stack) > 0; steps++ {
		if steps%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if n.pos == Origin {
			if opts.MaxPaths > 0 && len(paths) == opts.MaxPaths {
				return nil, fmt.Errorf("%w: more than %d paths", ErrPathLimit, opts.MaxPaths)
			}
			paths = append(paths, n.path())
			continue
		}

		preds := s.Predecessors(n.pos)
		for i := len(preds) - 1; i >= 0; i-- {
			stack = append(stack, &node{pos: preds[i], parent: n, depth: n.depth + 1})
		}
	}

	return paths, nil
}

// Rand is the random source used by One.
type Rand interface {
	Intn(n int) int
}

// NewRand returns a Rand seeded with seed, or with the current time when
// seed is 0.
func NewRand(seed int64) Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// One follows a single path from start, picking one predecessor uniformly
// at random at every branch, until it reaches Origin or a cell without
// predecessors.
func One(s Stepper, start Position, r Rand) Path {
	if r == nil {
		r = NewRand(0)
	}

	path := Path{start}
	for cur := start; cur != Origin; {
		preds := s.Predecessors(cur)
		if len(preds) == 0 {
			break
		}
		cur = preds[r.Intn(len(preds))]
		path = append(path, cur)
	}
	return path
}

// Complete reports whether p ends at Origin.
func (p Path) Complete() bool {
	return len(p) > 0 && p[len(p)-1] == Origin
}

// Mode selects between all-paths and single random path traceback.
type Mode int

const (
	// AllPaths enumerates every optimal path.
	AllPaths Mode = iota
	// OnePath follows one optimal path chosen at random.
	OnePath
)

func (m Mode) String() string {
	if m == OnePath {
		return "one"
	}
	return "all"
}

// ParseMode maps "all" and "one" to a Mode. The empty string means all.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "", "all":
		return AllPaths, nil
	case "one", "random":
		return OnePath, nil
	}
	return AllPaths, fmt.Errorf("unknown traceback mode %q", s)
}

// Walk runs the traceback selected by mode. In OnePath mode the result
// holds at most one path, and none if the walk dead-ended before Origin.
func Walk(ctx context.Context, s Stepper, start Position, mode Mode, opts Options, r Rand) ([]Path, error) {
	if mode == OnePath {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p := One(s, start, r)
		if !p.Complete() {
			return nil, nil
		}
		return []Path{p}, nil
	}
	return All(ctx, s, start, opts)
}
