// Package grid provides the dynamic-programming tables shared by the
// alignment and folding engines.
//
// Cells hold plain ints. NegInf marks an unreachable cell and absorbs any
// addition, so recurrences can add scores to it without overflow checks.
// Every cell is write-once: writing a cell twice is a bug in the fill loop
// and panics.
package grid

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/exp/constraints"
)

// NegInf is the negative-infinity sentinel. Any value at or below it is
// treated as negative infinity.
const NegInf = math.MinInt / 4

// IsNegInf reports whether v represents negative infinity.
func IsNegInf(v int) bool {
	return v <= NegInf
}

// Add returns a+b, saturating at NegInf when either operand is NegInf.
func Add(a, b int) int {
	if a <= NegInf || b <= NegInf {
		return NegInf
	}
	return a + b
}

// Sum adds all values with the saturating rule of Add.
func Sum(vs ...int) int {
	total := 0
	for _, v := range vs {
		total = Add(total, v)
	}
	return total
}

// Max returns the largest of its arguments.
func Max[T constraints.Ordered](first T, rest ...T) T {
	best := first
	for _, v := range rest {
		if v > best {
			best = v
		}
	}
	return best
}

// Min returns the smallest of its arguments.
func Min[T constraints.Ordered](first T, rest ...T) T {
	best := first
	for _, v := range rest {
		if v < best {
			best = v
		}
	}
	return best
}

// FormatCell renders a cell value, printing NegInf as "-inf".
func FormatCell(v int) string {
	if IsNegInf(v) {
		return "-inf"
	}
	return fmt.Sprintf("%d", v)
}

// Table is a rows x cols matrix of write-once cells.
type Table struct {
	rows, cols int
	cells      []int
	written    []bool
}

// NewTable allocates a table with every cell unwritten.
func NewTable(rows, cols int) *Table {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("grid: negative table size %dx%d", rows, cols))
	}
	return &Table{
		rows:    rows,
		cols:    cols,
		cells:   make([]int, rows*cols),
		written: make([]bool, rows*cols),
	}
}

// Rows returns the number of rows.
func (t *Table) Rows() int { return t.rows }

// Cols returns the number of columns.
func (t *Table) Cols() int { return t.cols }

func (t *Table) index(y, x int) int {
	if y < 0 || y >= t.rows || x < 0 || x >= t.cols {
		panic(fmt.Sprintf("grid: cell (%d,%d) outside %dx%d table", y, x, t.rows, t.cols))
	}
	return y*t.cols + x
}

// At returns the value stored at (y, x). Unwritten cells read as zero.
func (t *Table) At(y, x int) int {
	return t.cells[t.index(y, x)]
}

// Set writes (y, x). It panics if the cell was already written.
func (t *Table) Set(y, x, v int) {
	i := t.index(y, x)
	if t.written[i] {
		panic(fmt.Sprintf("grid: cell (%d,%d) written twice", y, x))
	}
	t.cells[i] = v
	t.written[i] = true
}

// Written reports whether (y, x) has been set.
func (t *Table) Written(y, x int) bool {
	return t.written[t.index(y, x)]
}

// String renders the table row by row with tab-separated cells.
func (t *Table) String() string {
	var sb strings.Builder
	for y := 0; y < t.rows; y++ {
		for x := 0; x < t.cols; x++ {
			if x > 0 {
				sb.WriteByte('\t')
			}
			sb.WriteString(FormatCell(t.At(y, x)))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Cube is a depth x rows x cols block of write-once cells, indexed [z][y][x].
type Cube struct {
	depth, rows, cols int
	cells             []int
	written           []bool
}

// NewCube allocates a cube with every cell unwritten.
func NewCube(depth, rows, cols int) *Cube {
	if depth < 0 || rows < 0 || cols < 0 {
		panic(fmt.Sprintf("grid: negative cube size %dx%dx%d", depth, rows, cols))
	}
	n := depth * rows * cols
	return &Cube{
		depth:   depth,
		rows:    rows,
		cols:    cols,
		cells:   make([]int, n),
		written: make([]bool, n),
	}
}

// Depth returns the extent along z.
func (c *Cube) Depth() int { return c.depth }

// Rows returns the extent along y.
func (c *Cube) Rows() int { return c.rows }

// Cols returns the extent along x.
func (c *Cube) Cols() int { return c.cols }

func (c *Cube) index(z, y, x int) int {
	if z < 0 || z >= c.depth || y < 0 || y >= c.rows || x < 0 || x >= c.cols {
		panic(fmt.Sprintf("grid: cell (%d,%d,%d) outside %dx%dx%d cube",
			z, y, x, c.depth, c.rows, c.cols))
	}
	return (z*c.rows+y)*c.cols + x
}

// At returns the value stored at (z, y, x).
func (c *Cube) At(z, y, x int) int {
	return c.cells[c.index(z, y, x)]
}

// Set writes (z, y, x). It panics if the cell was already written.
func (c *Cube) Set(z, y, x, v int) {
	i := c.index(z, y, x)
	if c.written[i] {
		panic(fmt.Sprintf("grid: cell (%d,%d,%d) written twice", z, y, x))
	}
	c.cells[i] = v
	c.written[i] = true
}

// Written reports whether (z, y, x) has been set.
func (c *Cube) Written(z, y, x int) bool {
	return c.written[c.index(z, y, x)]
}
