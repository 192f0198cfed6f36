package fasta

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/aria-lang/bioalign-go/internal/sequence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	input := `>seq1 first sequence
AGTC
ag
; comment
>seq2

>seq3
ATC
`
	seqs, err := ParseString(input, sequence.DNA)
	require.NoError(t, err)
	require.Len(t, seqs, 3)

	assert.Equal(t, "seq1", seqs[0].ID)
	assert.Equal(t, "first sequence", seqs[0].Description)
	assert.Equal(t, "AGTCAG", seqs[0].Bases)

	assert.Equal(t, "seq2", seqs[1].ID)
	assert.True(t, seqs[1].IsEmpty())

	assert.Equal(t, "ATC", seqs[2].Bases)
}

func TestParseDetect(t *testing.T) {
	seqs, err := ParseString(">p\nHEAGAWGHEE\n>r\nGAUC\n>d\nACGT\n", sequence.Unknown)
	require.NoError(t, err)
	require.Len(t, seqs, 3)
	assert.Equal(t, sequence.Protein, seqs[0].SeqType)
	assert.Equal(t, sequence.RNA, seqs[1].SeqType)
	assert.Equal(t, sequence.DNA, seqs[2].SeqType)
}

func TestParseErrors(t *testing.T) {
	t.Run("no header", func(t *testing.T) {
		_, err := ParseString("ACGT\n>s\nA\n", sequence.DNA)
		assert.ErrorIs(t, err, ErrNoHeader)
	})

	t.Run("invalid symbol", func(t *testing.T) {
		_, err := ParseString(">r\nGAUC\n", sequence.DNA)
		require.Error(t, err)
		var baseErr *sequence.InvalidBaseError
		assert.ErrorAs(t, err, &baseErr)
		assert.Contains(t, err.Error(), `record "r"`)
	})

	t.Run("empty input", func(t *testing.T) {
		seqs, err := ParseString("", sequence.DNA)
		require.NoError(t, err)
		assert.Empty(t, seqs)
	})
}

func TestWriteRoundTrip(t *testing.T) {
	a, err := sequence.WithMetadata("HEAGAWGHEE", "a", "query", sequence.Protein)
	require.NoError(t, err)
	b, err := sequence.WithMetadata("PAWHEAE", "b", "", sequence.Protein)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []*sequence.Sequence{a, b}))
	assert.Equal(t, ">a query\nHEAGAWGHEE\n>b\nPAWHEAE\n", buf.String())

	path := filepath.Join(t.TempDir(), "out.fasta")
	require.NoError(t, WriteFile(path, []*sequence.Sequence{a, b}))

	seqs, err := ReadFile(path, sequence.Protein)
	require.NoError(t, err)
	require.Len(t, seqs, 2)
	assert.True(t, a.Equal(seqs[0]))
	assert.True(t, b.Equal(seqs[1]))

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.fasta"), sequence.DNA)
	assert.Error(t, err)
}
