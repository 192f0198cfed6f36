package engine

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aria-lang/bioalign-go/internal/alignment"
	"github.com/aria-lang/bioalign-go/internal/scoring"
	"github.com/aria-lang/bioalign-go/internal/sequence"
	"github.com/aria-lang/bioalign-go/internal/traceback"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seqs(t *testing.T, bases ...string) []*sequence.Sequence {
	t.Helper()
	out := make([]*sequence.Sequence, len(bases))
	for i, b := range bases {
		s, err := sequence.New(b)
		require.NoError(t, err)
		out[i] = s
	}
	return out
}

func rnaSeqs(t *testing.T, bases ...string) []*sequence.Sequence {
	t.Helper()
	out := make([]*sequence.Sequence, len(bases))
	for i, b := range bases {
		s, err := sequence.NewRNA(b)
		require.NoError(t, err)
		out[i] = s
	}
	return out
}

func rows(r *Result) [][]string {
	out := make([][]string, len(r.Alignments))
	for i, a := range r.Alignments {
		out[i] = a.Rows
	}
	return out
}

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		in   string
		want Algorithm
	}{
		{"needleman-wunsch", NeedlemanWunsch},
		{"nw", NeedlemanWunsch},
		{"Global", NeedlemanWunsch},
		{"gotoh", Gotoh},
		{"affine", Gotoh},
		{"nw3", NeedlemanWunsch3D},
		{"needleman-wunsch-3d", NeedlemanWunsch3D},
		{"fold", Nussinov},
		{" nussinov ", Nussinov},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAlgorithm(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseAlgorithm("smith-waterman")
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestSequenceCounts(t *testing.T) {
	assert.Equal(t, 2, NeedlemanWunsch.Sequences())
	assert.Equal(t, 2, Gotoh.Sequences())
	assert.Equal(t, 3, NeedlemanWunsch3D.Sequences())
	assert.Equal(t, 1, Nussinov.Sequences())
	assert.Equal(t, 0, Algorithm("x").Sequences())
}

func TestFor(t *testing.T) {
	for _, a := range Algorithms() {
		e, err := For(a)
		require.NoError(t, err, a)
		assert.NotNil(t, e)
	}

	_, err := For("local")
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
}

type pending struct {
	Unimplemented
}

func TestUnimplemented(t *testing.T) {
	var e Engine = pending{}
	res, err := e.Compute(context.Background(), Request{Algorithm: NeedlemanWunsch})
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrNotImplemented)
}

func TestComputeLinear(t *testing.T) {
	e, err := For(NeedlemanWunsch)
	require.NoError(t, err)

	res, err := e.Compute(context.Background(), Request{
		Algorithm: NeedlemanWunsch,
		Sequences: seqs(t, "AGTC", "ATC"),
		Gap:       alignment.LinearGap{Cost: -2},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Score)
	assert.Equal(t, [][]string{{"AGTC", "A-TC"}}, rows(res))
	require.NotNil(t, res.Summary)
	assert.Equal(t, 1, res.Summary.Count)
}

func TestComputeAffine(t *testing.T) {
	unit, err := scoring.NewIdentity("ACGT", 0, -1)
	require.NoError(t, err)

	e, err := For(Gotoh)
	require.NoError(t, err)

	res, err := e.Compute(context.Background(), Request{
		Algorithm: Gotoh,
		Sequences: seqs(t, "TGGA", "GG"),
		Matrix:    unit,
		Affine:    alignment.AffineGap{Open: -3, Extend: -1},
	})
	require.NoError(t, err)

	assert.Equal(t, -6, res.Score)
	assert.ElementsMatch(t, [][]string{{"TGGA", "--GG"}, {"TGGA", "GG--"}}, rows(res))
}

func TestComputeThreeWay(t *testing.T) {
	e, err := For(NeedlemanWunsch3D)
	require.NoError(t, err)

	res, err := e.Compute(context.Background(), Request{
		Algorithm: NeedlemanWunsch3D,
		Sequences: seqs(t, "ACGT", "AGT", "ACT"),
		Gap:       alignment.LinearGap{Cost: -1},
	})
	require.NoError(t, err)

	assert.Equal(t, 4, res.Score)
	assert.Equal(t, [][]string{{"ACGT", "A-GT", "AC-T"}}, rows(res))
	assert.Equal(t, []int{2, 2, 1}, res.SubScores)
}

func TestComputeFolding(t *testing.T) {
	rna, err := sequence.NewRNA("GAUC")
	require.NoError(t, err)

	e, err := For(Nussinov)
	require.NoError(t, err)

	res, err := e.Compute(context.Background(), Request{
		Algorithm: Nussinov,
		Sequences: []*sequence.Sequence{rna},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, res.Score)
	require.NotNil(t, res.Structure)
	assert.Equal(t, "(())", res.Structure.DotBracket())
	require.NotNil(t, res.Folding)
	assert.Equal(t, 2, res.Folding.Pairs)
}

func TestComputeOnePath(t *testing.T) {
	e, err := For(NeedlemanWunsch)
	require.NoError(t, err)

	req := Request{
		Algorithm: NeedlemanWunsch,
		Sequences: seqs(t, "GATTACA", "GCATGCT"),
		Gap:       alignment.LinearGap{Cost: -1},
	}
	all, err := e.Compute(context.Background(), req)
	require.NoError(t, err)

	req.Mode = traceback.OnePath
	req.Seed = 7
	one, err := e.Compute(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, one.Alignments, 1)
	assert.Equal(t, all.Score, one.Score)
	assert.Contains(t, rows(all), one.Alignments[0].Rows)
}

func TestComputeBadRequest(t *testing.T) {
	tests := []struct {
		name string
		req  Request
	}{
		{
			name: "too few sequences",
			req:  Request{Algorithm: NeedlemanWunsch, Sequences: seqs(t, "ACGT")},
		},
		{
			name: "nil sequence",
			req:  Request{Algorithm: Gotoh, Sequences: []*sequence.Sequence{nil, nil}},
		},
		{
			name: "positive gap",
			req: Request{
				Algorithm: NeedlemanWunsch,
				Sequences: seqs(t, "AC", "AG"),
				Gap:       alignment.LinearGap{Cost: 2},
			},
		},
		{
			name: "symbol outside matrix",
			req: Request{
				Algorithm: NeedlemanWunsch3D,
				Sequences: seqs(t, "ACN", "AC", "A"),
				Gap:       alignment.LinearGap{Cost: -1},
			},
		},
		{
			name: "negative loop",
			req:  Request{Algorithm: Nussinov, Sequences: rnaSeqs(t, "GAUC"), Loop: -1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := For(tt.req.Algorithm)
			require.NoError(t, err)

			_, err = e.Compute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrBadRequest)
		})
	}
}

func TestReport(t *testing.T) {
	e, err := For(NeedlemanWunsch3D)
	require.NoError(t, err)

	res, err := e.Compute(context.Background(), Request{
		Algorithm: NeedlemanWunsch3D,
		Sequences: seqs(t, "AC", "AC", "AC"),
		Gap:       alignment.LinearGap{Cost: -1},
	})
	require.NoError(t, err)

	data, err := json.Marshal(res.Report())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "needleman-wunsch-3d", decoded["algorithm"])
	assert.Equal(t, float64(6), decoded["score"])
	assert.Equal(t, map[string]any{"ab": float64(2), "ac": float64(2), "bc": float64(2)}, decoded["sub_scores"])
	assert.NotContains(t, decoded, "structure")
}

func TestReportStructure(t *testing.T) {
	e, err := For(Nussinov)
	require.NoError(t, err)

	res, err := e.Compute(context.Background(), Request{Algorithm: Nussinov, Sequences: seqs(t, "GATC")})
	require.NoError(t, err)

	rep := res.Report()
	require.NotNil(t, rep.Structure)
	assert.Equal(t, "GAUC", rep.Structure.Sequence)
	assert.Equal(t, "(())", rep.Structure.DotBracket)
	assert.Equal(t, [][2]int{{1, 4}, {2, 3}}, rep.Structure.Pairs)
	assert.Empty(t, rep.Alignments)
}
