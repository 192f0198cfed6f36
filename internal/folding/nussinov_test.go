package folding

import (
	"context"
	"testing"

	"github.com/aria-lang/bioalign-go/internal/sequence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rna(t testing.TB, bases string) *sequence.Sequence {
	t.Helper()
	s, err := sequence.NewRNA(bases)
	require.NoError(t, err)
	return s
}

func TestComplementary(t *testing.T) {
	assert.True(t, Complementary('A', 'U'))
	assert.True(t, Complementary('U', 'A'))
	assert.True(t, Complementary('C', 'G'))
	assert.True(t, Complementary('G', 'C'))
	assert.False(t, Complementary('G', 'U'))
	assert.False(t, Complementary('A', 'A'))
	assert.False(t, Complementary('N', 'N'))
}

func TestNussinov(t *testing.T) {
	tests := []struct {
		name  string
		seq   string
		loop  int
		score int
		db    string
		pairs []BasePair
	}{
		{"nested", "GAUC", 0, 2, "(())", []BasePair{{1, 4}, {2, 3}}},
		{"branching", "CCUGUAAG", 0, 3, "((.)().)", []BasePair{{1, 8}, {2, 4}, {5, 6}}},
		{"adjacent", "CGAAU", 0, 2, "()(.)", []BasePair{{1, 2}, {3, 5}}},
		{"single", "A", 0, 0, ".", nil},
		{"no partners", "ACACACCAC", 0, 0, ".........", nil},
		{"empty", "", 0, 0, "", nil},
		{"hairpin", "GGGAAAUCC", 0, 3, "((.(..)))", []BasePair{{1, 9}, {2, 8}, {4, 7}}},
		{"loop length", "GGGAAAUCC", 3, 2, "((.....))", []BasePair{{1, 9}, {2, 8}}},
		{"loop forbids inner pair", "GAUC", 1, 1, "(..)", []BasePair{{1, 4}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Nussinov(context.Background(), rna(t, tt.seq), tt.loop)
			require.NoError(t, err)

			assert.Equal(t, tt.score, s.Score())
			assert.Equal(t, tt.db, s.DotBracket())
			assert.Equal(t, tt.pairs, s.Pairs)
			assert.NoError(t, s.Validate())
		})
	}
}

func TestNussinovTable(t *testing.T) {
	tbl, err := Fill(context.Background(), "GAUC", 0)
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.At(0, 4))
	assert.Equal(t, 1, tbl.At(1, 3))
	assert.Equal(t, 0, tbl.At(0, 1))
}

func TestNussinovErrors(t *testing.T) {
	_, err := Nussinov(context.Background(), rna(t, "GAUC"), -1)
	assert.ErrorIs(t, err, ErrNegativeLoop)

	p, err := sequence.NewProtein("HEAG")
	require.NoError(t, err)
	_, err = Nussinov(context.Background(), p, 0)
	var baseErr *sequence.InvalidBaseError
	assert.ErrorAs(t, err, &baseErr)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Nussinov(ctx, rna(t, "GAUCGAUC"), 0)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNussinovDNA(t *testing.T) {
	d, err := sequence.New("GATC")
	require.NoError(t, err)

	s, err := Nussinov(context.Background(), d, 0)
	require.NoError(t, err)
	assert.Equal(t, "GAUC", s.Sequence)
	assert.Equal(t, "(())", s.DotBracket())
}

func TestNoCrossingProperty(t *testing.T) {
	seqs := []string{"GGGAAAUCCAUGCAUGCAUUAGC", "ACGUACGUACGUACGU", "CCCCGGGGAAAAUUUU"}
	for _, seq := range seqs {
		for loop := 0; loop <= 3; loop++ {
			s, err := Nussinov(context.Background(), rna(t, seq), loop)
			require.NoError(t, err)
			require.NoError(t, s.Validate(), "%s loop %d", seq, loop)

			tbl, err := Fill(context.Background(), s.Sequence, loop)
			require.NoError(t, err)
			assert.Equal(t, tbl.At(0, len(seq)), s.Score())

			pairs, err := ParseDotBracket(s.DotBracket())
			require.NoError(t, err)
			assert.Equal(t, s.Pairs, pairs)
		}
	}
}

func TestValidate(t *testing.T) {
	crossing := &Structure{Sequence: "GCGC", Pairs: []BasePair{{1, 2}, {2, 3}}}
	assert.Error(t, crossing.Validate())

	pseudoknot := &Structure{Sequence: "GACUGC", Pairs: []BasePair{{1, 5}, {3, 6}}}
	assert.Error(t, pseudoknot.Validate())

	wobble := &Structure{Sequence: "GU", Pairs: []BasePair{{1, 2}}}
	assert.Error(t, wobble.Validate())

	tight := &Structure{Sequence: "GAC", LoopLength: 2, Pairs: []BasePair{{1, 3}}}
	assert.Error(t, tight.Validate())
}

func TestCrosses(t *testing.T) {
	assert.True(t, BasePair{1, 5}.Crosses(BasePair{3, 7}))
	assert.True(t, BasePair{3, 7}.Crosses(BasePair{1, 5}))
	assert.False(t, BasePair{1, 8}.Crosses(BasePair{2, 4}))
	assert.False(t, BasePair{1, 2}.Crosses(BasePair{3, 4}))
}

func TestParseDotBracket(t *testing.T) {
	pairs, err := ParseDotBracket("((.)().)")
	require.NoError(t, err)
	assert.Equal(t, []BasePair{{1, 8}, {2, 4}, {5, 6}}, pairs)

	_, err = ParseDotBracket("(()")
	assert.Error(t, err)
	_, err = ParseDotBracket("())")
	assert.Error(t, err)
	_, err = ParseDotBracket("(x)")
	assert.Error(t, err)
}

func TestFormat(t *testing.T) {
	s := &Structure{Sequence: "GAUC", Pairs: []BasePair{{1, 4}, {2, 3}}}
	assert.Equal(t, "GAUC\n(())\n\n", s.Format(0))
	assert.Equal(t, "GA\n((\n\nUC\n))\n\n", s.Format(2))
}

func BenchmarkNussinov(b *testing.B) {
	seq := rna(b, "GGGAAAUCCAUGCAUGCAUUAGCGGGAAAUCCAUGCAUGCAUUAGC")
	ctx := context.Background()
	for i := 0; i < b.N; i++ {
		_, _ = Nussinov(ctx, seq, 3)
	}
}
