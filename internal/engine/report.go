package engine

import (
	"github.com/aria-lang/bioalign-go/internal/alignment"
	"github.com/aria-lang/bioalign-go/internal/stats"
)

// Report is the JSON form of a Result shared by the command line tool and
// the HTTP API.
type Report struct {
	Algorithm  string                   `json:"algorithm"`
	Score      int                      `json:"score"`
	Paths      int                      `json:"paths,omitempty"`
	Alignments []AlignmentReport        `json:"alignments,omitempty"`
	SubScores  *SubScores               `json:"sub_scores,omitempty"`
	Summary    *stats.AlignmentSetStats `json:"summary,omitempty"`
	Structure  *StructureReport         `json:"structure,omitempty"`
}

// AlignmentReport describes one optimal alignment.
type AlignmentReport struct {
	Rows        []string `json:"rows"`
	Identity    float64  `json:"identity"`
	CIGAR       string   `json:"cigar,omitempty"`
	Matches     int      `json:"matches"`
	Mismatches  int      `json:"mismatches"`
	Gaps        int      `json:"gaps"`
	GapOpenings int      `json:"gap_openings"`
}

// SubScores are the optimal pairwise scores of a three-way run.
type SubScores struct {
	AB int `json:"ab"`
	AC int `json:"ac"`
	BC int `json:"bc"`
}

// StructureReport describes a predicted secondary structure.
type StructureReport struct {
	Sequence   string                `json:"sequence"`
	DotBracket string                `json:"dot_bracket"`
	Pairs      [][2]int              `json:"pairs"`
	LoopLength int                   `json:"loop_length"`
	Stats      *stats.StructureStats `json:"stats,omitempty"`
}

// NewAlignmentReport summarizes a single alignment.
func NewAlignmentReport(a *alignment.Alignment) AlignmentReport {
	return AlignmentReport{
		Rows:        a.Rows,
		Identity:    a.Identity,
		CIGAR:       a.ToCIGAR(),
		Matches:     a.MatchCount(),
		Mismatches:  a.MismatchCount(),
		Gaps:        a.TotalGaps(),
		GapOpenings: a.GapOpenings(),
	}
}

// Report converts r to its JSON form.
func (r *Result) Report() *Report {
	rep := &Report{
		Algorithm: r.Algorithm.String(),
		Score:     r.Score,
		Paths:     r.Paths,
		Summary:   r.Summary,
	}
	for _, a := range r.Alignments {
		rep.Alignments = append(rep.Alignments, NewAlignmentReport(a))
	}
	if len(r.SubScores) == 3 {
		rep.SubScores = &SubScores{AB: r.SubScores[0], AC: r.SubScores[1], BC: r.SubScores[2]}
	}
	if s := r.Structure; s != nil {
		pairs := make([][2]int, len(s.Pairs))
		for i, p := range s.Pairs {
			pairs[i] = [2]int{p.I, p.J}
		}
		rep.Structure = &StructureReport{
			Sequence:   s.Sequence,
			DotBracket: s.DotBracket(),
			Pairs:      pairs,
			LoopLength: s.LoopLength,
			Stats:      r.Folding,
		}
	}
	return rep
}
