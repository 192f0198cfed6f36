package sequence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		bases   string
		want    string
		wantErr bool
	}{
		{name: "valid DNA sequence", bases: "ATGCATGC", want: "ATGCATGC"},
		{name: "lowercase", bases: "atgcatgc", want: "ATGCATGC"},
		{name: "ambiguous base", bases: "ATGCNATGC", want: "ATGCNATGC"},
		{name: "empty sequence", bases: "", want: ""},
		{name: "invalid base X", bases: "ATGCXATGC", wantErr: true},
		{name: "RNA base in DNA", bases: "AUGC", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq, err := New(tt.bases)

			if tt.wantErr {
				require.Error(t, err)
				assert.IsType(t, &InvalidBaseError{}, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, seq.Bases)
			assert.Equal(t, DNA, seq.SeqType)
		})
	}
}

func TestInvalidBaseError(t *testing.T) {
	_, err := NewRNA("GAUTC")
	require.Error(t, err)

	var baseErr *InvalidBaseError
	require.ErrorAs(t, err, &baseErr)
	assert.Equal(t, 3, baseErr.Position)
	assert.Equal(t, 'T', baseErr.Found)
	assert.Equal(t, RNA, baseErr.SeqType)
	assert.Equal(t, "invalid RNA symbol 'T' at position 3", err.Error())

	var seqErr SequenceError
	assert.ErrorAs(t, err, &seqErr)
}

func TestGapSymbolRejected(t *testing.T) {
	for _, seqType := range []SequenceType{DNA, RNA, Protein, Unknown} {
		t.Run(seqType.String(), func(t *testing.T) {
			_, err := WithMetadata("AC-G", "", "", seqType)

			var baseErr *InvalidBaseError
			require.ErrorAs(t, err, &baseErr)
			assert.Equal(t, 2, baseErr.Position)
			assert.Equal(t, GapSymbol, baseErr.Found)
		})
	}

	assert.Equal(t, Unknown, Detect("HE-AW"))
	assert.NoError(t, Validate("HE?AW", Unknown))
}

func TestProtein(t *testing.T) {
	seq, err := NewProtein("heagawghee")
	require.NoError(t, err)
	assert.Equal(t, "HEAGAWGHEE", seq.Bases)
	assert.Equal(t, Protein, seq.SeqType)

	_, err = NewProtein("HEAG1")
	assert.Error(t, err)
}

func TestDetect(t *testing.T) {
	assert.Equal(t, DNA, Detect("acgtn"))
	assert.Equal(t, RNA, Detect("GAUC"))
	assert.Equal(t, Protein, Detect("HEAGAWGHEE"))
	assert.Equal(t, Unknown, Detect("AC#G"))
}

func TestParseType(t *testing.T) {
	for name, want := range map[string]SequenceType{
		"protein": Protein,
		"DNA":     DNA,
		"rna":     RNA,
		"any":     Unknown,
	} {
		got, err := ParseType(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseType("peptide")
	assert.Error(t, err)
}

func TestBaseAt(t *testing.T) {
	seq, err := New("ACG")
	require.NoError(t, err)

	b, ok := seq.BaseAt(1)
	assert.True(t, ok)
	assert.Equal(t, byte('C'), b)
	_, ok = seq.BaseAt(3)
	assert.False(t, ok)
}

func TestReverseAndTranscribe(t *testing.T) {
	seq, err := WithID("ATGC", "s1")
	require.NoError(t, err)

	rev := seq.Reverse()
	assert.Equal(t, "CGTA", rev.Bases)
	assert.Equal(t, "s1", rev.ID)

	rna, err := seq.Transcribe()
	require.NoError(t, err)
	assert.Equal(t, "AUGC", rna.Bases)
	assert.Equal(t, RNA, rna.SeqType)

	_, err = rna.Transcribe()
	assert.Error(t, err)

	_, err = WithID("ATGC", "")
	assert.Error(t, err)
}

func TestToFASTA(t *testing.T) {
	seq, err := WithMetadata("GAUC", "r1", "hairpin", RNA)
	require.NoError(t, err)
	assert.Equal(t, ">r1 hairpin\nGAUC\n", seq.ToFASTA())

	empty, err := New("")
	require.NoError(t, err)
	assert.Equal(t, ">sequence\n", empty.ToFASTA())
	assert.True(t, empty.IsEmpty())
}

func TestEqual(t *testing.T) {
	a, _ := New("ACGT")
	b, _ := New("acgt")
	c, _ := NewProtein("ACGT")

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))
}
