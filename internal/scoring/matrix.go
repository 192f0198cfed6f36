// Package scoring provides substitution matrices used to score aligned
// symbol pairs.
//
// A Matrix is square and keyed by single-byte symbols. Lookups are
// case-insensitive. Symbols outside the alphabet fall back to the '*' row
// when the matrix has one; otherwise sequences containing them are rejected
// by Check before any table is filled.
package scoring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aria-lang/bioalign-go/internal/grid"
)

var (
	// ErrUnknownSymbol is returned when a sequence holds a symbol the matrix
	// cannot score.
	ErrUnknownSymbol = errors.New("symbol not in substitution matrix")
	// ErrNotSquare is returned for matrices whose rows and columns disagree.
	ErrNotSquare = errors.New("substitution matrix is not square")
	// ErrEmptyMatrix is returned for matrices without symbols.
	ErrEmptyMatrix = errors.New("substitution matrix has no symbols")
	// ErrUnknownMatrix is returned by Lookup for names with no built-in matrix.
	ErrUnknownMatrix = errors.New("unknown substitution matrix")
)

// Wildcard is the symbol whose row scores symbols outside the alphabet.
const Wildcard = '*'

// Matrix is an immutable substitution matrix.
type Matrix struct {
	name    string
	symbols []byte
	values  [][]int
	index   [256]int
	star    int
}

// New builds a matrix from its symbols and a square table of values, where
// values[i][j] scores symbols[i] against symbols[j].
func New(name, symbols string, values [][]int) (*Matrix, error) {
	if len(symbols) == 0 {
		return nil, ErrEmptyMatrix
	}
	if len(values) != len(symbols) {
		return nil, fmt.Errorf("%w: %d symbols, %d rows", ErrNotSquare, len(symbols), len(values))
	}
	for i, row := range values {
		if len(row) != len(symbols) {
			return nil, fmt.Errorf("%w: row %q has %d values, want %d",
				ErrNotSquare, symbols[i], len(row), len(symbols))
		}
	}

	m := &Matrix{
		name:    name,
		symbols: []byte(strings.ToUpper(symbols)),
		values:  make([][]int, len(values)),
		star:    -1,
	}
	for i := range m.index {
		m.index[i] = -1
	}
	for i, c := range m.symbols {
		if m.index[c] >= 0 {
			return nil, fmt.Errorf("duplicate symbol %q in substitution matrix", c)
		}
		m.index[c] = i
		if lower := c | 0x20; c >= 'A' && c <= 'Z' {
			m.index[lower] = i
		}
		if c == Wildcard {
			m.star = i
		}
		m.values[i] = append([]int(nil), values[i]...)
	}
	return m, nil
}

// NewIdentity builds a matrix over alphabet that scores identical symbols
// with match and any other pair with mismatch.
func NewIdentity(alphabet string, match, mismatch int) (*Matrix, error) {
	if len(alphabet) == 0 {
		return nil, ErrEmptyMatrix
	}
	if mismatch > match {
		return nil, fmt.Errorf("mismatch score %d must not exceed match score %d", mismatch, match)
	}

	values := make([][]int, len(alphabet))
	for i := range values {
		values[i] = make([]int, len(alphabet))
		for j := range values[i] {
			if i == j {
				values[i][j] = match
			} else {
				values[i][j] = mismatch
			}
		}
	}
	return New(fmt.Sprintf("identity(%d,%d)", match, mismatch), alphabet, values)
}

// Name returns the matrix name.
func (m *Matrix) Name() string {
	return m.name
}

// Alphabet returns the matrix symbols in row order.
func (m *Matrix) Alphabet() string {
	return string(m.symbols)
}

// Size returns the number of symbols.
func (m *Matrix) Size() int {
	return len(m.symbols)
}

func (m *Matrix) position(c byte) int {
	if i := m.index[c]; i >= 0 {
		return i
	}
	return m.star
}

// Has reports whether c can be scored.
func (m *Matrix) Has(c byte) bool {
	return m.position(c) >= 0
}

// Score returns the score of aligning a against b. Pairs involving a
// symbol the matrix cannot score yield grid.NegInf.
func (m *Matrix) Score(a, b byte) int {
	i, j := m.position(a), m.position(b)
	if i < 0 || j < 0 {
		return grid.NegInf
	}
	return m.values[i][j]
}

// Value scores two symbols given as strings, where "" stands for an absent
// symbol beyond a sequence boundary. Two absent symbols score 0; a single
// absent symbol scores grid.NegInf, so boundary cells never take a
// substitution step.
func (m *Matrix) Value(a, b string) int {
	switch {
	case a == "" && b == "":
		return 0
	case a == "" || b == "":
		return grid.NegInf
	}
	return m.Score(a[0], b[0])
}

// Check returns ErrUnknownSymbol for the first symbol of seq that the
// matrix cannot score.
func (m *Matrix) Check(seq string) error {
	for i := 0; i < len(seq); i++ {
		if !m.Has(seq[i]) {
			return fmt.Errorf("%w: %q at position %d of %s", ErrUnknownSymbol, seq[i], i, m.name)
		}
	}
	return nil
}

// Symmetric reports whether score(a,b) == score(b,a) for every pair.
func (m *Matrix) Symmetric() bool {
	for i := range m.values {
		for j := i + 1; j < len(m.values); j++ {
			if m.values[i][j] != m.values[j][i] {
				return false
			}
		}
	}
	return true
}

// Transpose returns the matrix with rows and columns exchanged.
func (m *Matrix) Transpose() *Matrix {
	values := make([][]int, len(m.values))
	for i := range values {
		values[i] = make([]int, len(m.values))
		for j := range values[i] {
			values[i][j] = m.values[j][i]
		}
	}
	t, err := New(m.name, string(m.symbols), values)
	if err != nil {
		panic(err)
	}
	return t
}

// Range returns the smallest and largest score in the matrix.
func (m *Matrix) Range() (lo, hi int) {
	lo, hi = m.values[0][0], m.values[0][0]
	for _, row := range m.values {
		lo = grid.Min(lo, row...)
		hi = grid.Max(hi, row...)
	}
	return lo, hi
}

// String renders the matrix in the NCBI text layout read by Parse.
func (m *Matrix) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n", m.name)
	sb.WriteString(" ")
	for _, c := range m.symbols {
		fmt.Fprintf(&sb, " %3c", c)
	}
	sb.WriteByte('\n')
	for i, c := range m.symbols {
		sb.WriteByte(c)
		for _, v := range m.values[i] {
			fmt.Fprintf(&sb, " %3d", v)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
