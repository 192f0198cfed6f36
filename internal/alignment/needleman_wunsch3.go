package alignment

import (
	"context"

	"github.com/aria-lang/bioalign-go/internal/grid"
	"github.com/aria-lang/bioalign-go/internal/scoring"
	"github.com/aria-lang/bioalign-go/internal/sequence"
	"github.com/aria-lang/bioalign-go/internal/traceback"
)

// CubeTables holds the three-way cube and the pairwise tables its faces
// were built from. The cube is indexed [z][y][x] with z over A, y over B
// and x over C. XY aligns C against B, XZ aligns C against A and YZ aligns
// B against A.
type CubeTables struct {
	T          *grid.Cube
	XY, XZ, YZ *grid.Table
}

// SubScores returns the optimal pairwise scores A-B, A-C and B-C.
func (c *CubeTables) SubScores() []int {
	la, lb, lc := c.T.Depth()-1, c.T.Rows()-1, c.T.Cols()-1
	return []int{c.YZ.At(lb, la), c.XZ.At(lc, la), c.XY.At(lc, lb)}
}

// NeedlemanWunsch3 aligns three sequences globally with a linear gap cost
// and sum-of-pairs scoring, where a gap against a gap costs nothing.
//
// Each interior cell takes the best of seven moves: all three symbols,
// one of the three symbol pairs against a gap, or one symbol against two
// gaps. A move placing a gap in two pairs costs 2g.
func NeedlemanWunsch3(ctx context.Context, seqA, seqB, seqC *sequence.Sequence,
	m *scoring.Matrix, gap LinearGap, opts Options) (*Result, error) {
	if err := gap.Validate(); err != nil {
		return nil, err
	}
	m, seqs, err := prepare(m, seqA, seqB, seqC)
	if err != nil {
		return nil, err
	}

	a, b, c := seqs[0], seqs[1], seqs[2]
	tables := FillCube(a, b, c, m, gap.Cost)
	st := &cubeStepper{cube: tables.T, a: a, b: b, c: c, m: m, gap: gap.Cost}

	result, err := collect(ctx, st, traceback.At3(len(a), len(b), len(c)), seqs,
		tables.T.At(len(a), len(b), len(c)), ThreeWay, opts)
	if err != nil {
		return nil, err
	}
	result.SubScores = tables.SubScores()
	return result, nil
}

// FillCube fills the three-way cube. The three faces come from pairwise
// linear-gap tables plus the gap charged against the missing sequence.
func FillCube(a, b, c string, m *scoring.Matrix, cost int) *CubeTables {
	la, lb, lc := len(a), len(b), len(c)
	tables := &CubeTables{
		T:  grid.NewCube(la+1, lb+1, lc+1),
		XY: FillLinear(c, b, m, cost),
		XZ: FillLinear(c, a, m, cost),
		YZ: FillLinear(b, a, m, cost),
	}
	t := tables.T

	for y := 0; y <= lb; y++ {
		for x := 0; x <= lc; x++ {
			t.Set(0, y, x, tables.XY.At(x, y)+(x+y)*cost)
		}
	}
	for z := 1; z <= la; z++ {
		for x := 0; x <= lc; x++ {
			t.Set(z, 0, x, tables.XZ.At(x, z)+(x+z)*cost)
		}
		for y := 1; y <= lb; y++ {
			t.Set(z, y, 0, tables.YZ.At(y, z)+(y+z)*cost)
		}
	}

	double := 2 * cost
	for z := 1; z <= la; z++ {
		for y := 1; y <= lb; y++ {
			for x := 1; x <= lc; x++ {
				vyz := m.Score(a[z-1], b[y-1])
				vxz := m.Score(a[z-1], c[x-1])
				vxy := m.Score(b[y-1], c[x-1])

				t.Set(z, y, x, grid.Max(
					grid.Add(t.At(z-1, y-1, x-1), grid.Sum(vyz, vxz, vxy)),
					grid.Add(t.At(z-1, y-1, x), vyz)+double,
					grid.Add(t.At(z-1, y, x-1), vxz)+double,
					grid.Add(t.At(z, y-1, x-1), vxy)+double,
					t.At(z-1, y, x)+double,
					t.At(z, y-1, x)+double,
					t.At(z, y, x-1)+double,
				))
			}
		}
	}
	return tables
}

// cubeStepper recomputes the seven cube moves in recurrence order.
type cubeStepper struct {
	cube    *grid.Cube
	a, b, c string
	m       *scoring.Matrix
	gap     int
}

func (s *cubeStepper) Predecessors(p traceback.Position) []traceback.Position {
	z, y, x := p.Z, p.Y, p.X
	v := s.cube.At(z, y, x)
	sa, sb, sc := symbol(s.a, z), symbol(s.b, y), symbol(s.c, x)
	vyz, vxz, vxy := s.m.Value(sa, sb), s.m.Value(sa, sc), s.m.Value(sb, sc)
	double := 2 * s.gap

	preds := make([]traceback.Position, 0, 7)
	if z > 0 && y > 0 && x > 0 && v == grid.Add(s.cube.At(z-1, y-1, x-1), grid.Sum(vyz, vxz, vxy)) {
		preds = append(preds, traceback.At3(z-1, y-1, x-1))
	}
	if z > 0 && y > 0 && v == grid.Sum(s.cube.At(z-1, y-1, x), vyz, double) {
		preds = append(preds, traceback.At3(z-1, y-1, x))
	}
	if z > 0 && x > 0 && v == grid.Sum(s.cube.At(z-1, y, x-1), vxz, double) {
		preds = append(preds, traceback.At3(z-1, y, x-1))
	}
	if y > 0 && x > 0 && v == grid.Sum(s.cube.At(z, y-1, x-1), vxy, double) {
		preds = append(preds, traceback.At3(z, y-1, x-1))
	}
	if z > 0 && v == s.cube.At(z-1, y, x)+double {
		preds = append(preds, traceback.At3(z-1, y, x))
	}
	if y > 0 && v == s.cube.At(z, y-1, x)+double {
		preds = append(preds, traceback.At3(z, y-1, x))
	}
	if x > 0 && v == s.cube.At(z, y, x-1)+double {
		preds = append(preds, traceback.At3(z, y, x-1))
	}
	return preds
}
