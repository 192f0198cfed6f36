package scoring

import (
	"strings"
	"testing"

	"github.com/aria-lang/bioalign-go/internal/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltins(t *testing.T) {
	t.Run("BLOSUM62", func(t *testing.T) {
		m := BLOSUM62()
		assert.Equal(t, "BLOSUM62", m.Name())
		assert.Equal(t, 24, m.Size())
		assert.Equal(t, 4, m.Score('A', 'A'))
		assert.Equal(t, 11, m.Score('W', 'W'))
		assert.Equal(t, -3, m.Score('W', 'A'))
		assert.Equal(t, -4, m.Score('A', '*'))
		assert.True(t, m.Symmetric())
	})

	t.Run("PAM250", func(t *testing.T) {
		m := PAM250()
		assert.Equal(t, 17, m.Score('W', 'W'))
		assert.Equal(t, 12, m.Score('C', 'C'))
		assert.Equal(t, -8, m.Score('W', 'C'))
		assert.True(t, m.Symmetric())

		lo, hi := m.Range()
		assert.Equal(t, -8, lo)
		assert.Equal(t, 17, hi)
	})

	t.Run("DNA", func(t *testing.T) {
		m := DNA()
		assert.Equal(t, 1, m.Score('A', 'A'))
		assert.Equal(t, -1, m.Score('A', 'T'))
		assert.False(t, m.Has('U'))
	})
}

func TestLookup(t *testing.T) {
	m, err := Lookup("Blosum62")
	require.NoError(t, err)
	assert.Same(t, BLOSUM62(), m)

	_, err = Lookup("blosum45")
	assert.ErrorIs(t, err, ErrUnknownMatrix)

	assert.Equal(t, []string{"blosum62", "dna", "pam250", "rna"}, Names())
}

func TestValue(t *testing.T) {
	m := BLOSUM62()

	assert.Equal(t, 0, m.Value("", ""))
	assert.True(t, grid.IsNegInf(m.Value("A", "")))
	assert.True(t, grid.IsNegInf(m.Value("", "A")))
	assert.Equal(t, 5, m.Value("R", "R"))
}

func TestCaseInsensitive(t *testing.T) {
	m := BLOSUM62()
	assert.Equal(t, m.Score('H', 'Y'), m.Score('h', 'y'))
}

func TestWildcard(t *testing.T) {
	m := BLOSUM62()
	assert.True(t, m.Has('J'))
	assert.Equal(t, m.Score('*', 'A'), m.Score('J', 'A'))
	assert.NoError(t, m.Check("HEAGAWGHEEJ"))

	d := DNA()
	assert.True(t, grid.IsNegInf(d.Score('A', 'N')))
	err := d.Check("ACGNT")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownSymbol)
	assert.Contains(t, err.Error(), "position 3")
}

func TestNewIdentity(t *testing.T) {
	m, err := NewIdentity("ACGT", 0, -1)
	require.NoError(t, err)
	assert.Equal(t, 0, m.Score('G', 'G'))
	assert.Equal(t, -1, m.Score('G', 'A'))

	_, err = NewIdentity("", 1, -1)
	assert.ErrorIs(t, err, ErrEmptyMatrix)

	_, err = NewIdentity("ACGT", -1, 1)
	assert.Error(t, err)

	_, err = NewIdentity("AAC", 1, -1)
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	_, err := New("bad", "AB", [][]int{{1, 2}})
	assert.ErrorIs(t, err, ErrNotSquare)

	_, err = New("bad", "AB", [][]int{{1, 2}, {3}})
	assert.ErrorIs(t, err, ErrNotSquare)
}

func TestTranspose(t *testing.T) {
	m, err := New("skew", "AB", [][]int{{1, 2}, {3, 4}})
	require.NoError(t, err)
	assert.False(t, m.Symmetric())

	tr := m.Transpose()
	assert.Equal(t, 3, tr.Score('A', 'B'))
	assert.Equal(t, 2, tr.Score('B', 'A'))
	assert.Equal(t, m.Score('A', 'A'), tr.Score('A', 'A'))
}

func TestParse(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		m, err := Parse(strings.NewReader(PAM250().String()), "copy")
		require.NoError(t, err)
		assert.Equal(t, PAM250().Alphabet(), m.Alphabet())
		for _, a := range []byte(m.Alphabet()) {
			for _, b := range []byte(m.Alphabet()) {
				assert.Equal(t, PAM250().Score(a, b), m.Score(a, b))
			}
		}
	})

	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"empty", "# only comments\n\n", ErrEmptyMatrix},
		{"short row", "  A C\nA 1 -1\nC -1\n", ErrNotSquare},
		{"missing row", "  A C\nA 1 -1\n", ErrNotSquare},
		{"extra row", "  A\nA 1\nC 2\n", ErrNotSquare},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input), tt.name)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("bad value", func(t *testing.T) {
		_, err := Parse(strings.NewReader("  A C\nA 1 x\nC -1 1\n"), "bad")
		assert.Error(t, err)
	})

	t.Run("row order", func(t *testing.T) {
		_, err := Parse(strings.NewReader("  A C\nC 1 -1\nA -1 1\n"), "bad")
		assert.Error(t, err)
	})
}

func TestLoad(t *testing.T) {
	m, err := Load("data/blosum62.txt")
	require.NoError(t, err)
	assert.Equal(t, "blosum62", m.Name())
	assert.Equal(t, BLOSUM62().Alphabet(), m.Alphabet())

	_, err = Load("data/missing.txt")
	assert.Error(t, err)
}

func BenchmarkScore(b *testing.B) {
	m := BLOSUM62()
	seq := []byte("HEAGAWGHEEPAWHEAE")
	for i := 0; i < b.N; i++ {
		for j := 1; j < len(seq); j++ {
			m.Score(seq[j-1], seq[j])
		}
	}
}
