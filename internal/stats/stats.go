// Package stats provides summaries of sequences, optimal alignment sets
// and predicted structures.
package stats

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aria-lang/bioalign-go/internal/alignment"
	"github.com/aria-lang/bioalign-go/internal/folding"
	"github.com/aria-lang/bioalign-go/internal/sequence"
)

// SequenceStats represents statistics for a single sequence.
type SequenceStats struct {
	Length      int            `json:"length"`
	Type        string         `json:"type"`
	Composition map[string]int `json:"composition"`
}

// FromSequence counts each symbol of a sequence.
func FromSequence(seq *sequence.Sequence) *SequenceStats {
	comp := make(map[string]int)
	for i := 0; i < len(seq.Bases); i++ {
		comp[seq.Bases[i:i+1]]++
	}
	return &SequenceStats{
		Length:      seq.Len(),
		Type:        seq.SeqType.String(),
		Composition: comp,
	}
}

func (s *SequenceStats) String() string {
	symbols := make([]string, 0, len(s.Composition))
	for sym := range s.Composition {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)

	parts := make([]string, len(symbols))
	for i, sym := range symbols {
		parts[i] = fmt.Sprintf("%s=%d", sym, s.Composition[sym])
	}
	return fmt.Sprintf("SequenceStats { type: %s, length: %d, composition: %s }",
		s.Type, s.Length, strings.Join(parts, " "))
}

// AlignmentSetStats summarizes a set of co-optimal alignments.
type AlignmentSetStats struct {
	Count          int     `json:"count"`
	Score          int     `json:"score"`
	MinLength      int     `json:"min_length"`
	MaxLength      int     `json:"max_length"`
	MedianLength   int     `json:"median_length"`
	MinIdentity    float64 `json:"min_identity"`
	MaxIdentity    float64 `json:"max_identity"`
	MeanIdentity   float64 `json:"mean_identity"`
	MinGapOpenings int     `json:"min_gap_openings"`
	MaxGapOpenings int     `json:"max_gap_openings"`
}

// FromAlignments summarizes alignments that share one optimal score.
func FromAlignments(alignments []*alignment.Alignment) (*AlignmentSetStats, error) {
	if len(alignments) == 0 {
		return nil, fmt.Errorf("alignment list cannot be empty")
	}

	first := alignments[0]
	s := &AlignmentSetStats{
		Count:          len(alignments),
		Score:          first.Score,
		MinLength:      first.Length(),
		MaxLength:      first.Length(),
		MinIdentity:    first.Identity,
		MaxIdentity:    first.Identity,
		MinGapOpenings: first.GapOpenings(),
		MaxGapOpenings: first.GapOpenings(),
	}

	lengths := make([]int, len(alignments))
	identitySum := 0.0
	for i, a := range alignments {
		lengths[i] = a.Length()
		identitySum += a.Identity
		openings := a.GapOpenings()

		s.MinLength = min(s.MinLength, a.Length())
		s.MaxLength = max(s.MaxLength, a.Length())
		s.MinIdentity = min(s.MinIdentity, a.Identity)
		s.MaxIdentity = max(s.MaxIdentity, a.Identity)
		s.MinGapOpenings = min(s.MinGapOpenings, openings)
		s.MaxGapOpenings = max(s.MaxGapOpenings, openings)
	}
	s.MeanIdentity = identitySum / float64(len(alignments))

	sort.Ints(lengths)
	mid := len(lengths) / 2
	if len(lengths)%2 == 0 {
		s.MedianLength = (lengths[mid-1] + lengths[mid]) / 2
	} else {
		s.MedianLength = lengths[mid]
	}

	return s, nil
}

func (s *AlignmentSetStats) String() string {
	return fmt.Sprintf(`AlignmentSetStats {
  optimal alignments: %d
  score: %d
  length range: %d - %d
  median length: %d
  identity range: %.1f%% - %.1f%%
  mean identity: %.1f%%
  gap openings: %d - %d
}`, s.Count, s.Score, s.MinLength, s.MaxLength, s.MedianLength,
		s.MinIdentity*100, s.MaxIdentity*100, s.MeanIdentity*100,
		s.MinGapOpenings, s.MaxGapOpenings)
}

// StructureStats summarizes a predicted secondary structure.
type StructureStats struct {
	Length         int     `json:"length"`
	Pairs          int     `json:"pairs"`
	Unpaired       int     `json:"unpaired"`
	PairedFraction float64 `json:"paired_fraction"`
	AUPairs        int     `json:"au_pairs"`
	CGPairs        int     `json:"cg_pairs"`
}

// FromStructure counts paired positions and pair types.
func FromStructure(s *folding.Structure) *StructureStats {
	st := &StructureStats{
		Length: len(s.Sequence),
		Pairs:  len(s.Pairs),
	}
	st.Unpaired = st.Length - 2*st.Pairs
	if st.Length > 0 {
		st.PairedFraction = float64(2*st.Pairs) / float64(st.Length)
	}

	for _, p := range s.Pairs {
		switch s.Sequence[p.I-1] {
		case 'A', 'U':
			st.AUPairs++
		case 'C', 'G':
			st.CGPairs++
		}
	}
	return st
}

func (s *StructureStats) String() string {
	return fmt.Sprintf("StructureStats { length: %d, pairs: %d (AU %d, CG %d), unpaired: %d, paired: %.1f%% }",
		s.Length, s.Pairs, s.AUPairs, s.CGPairs, s.Unpaired, s.PairedFraction*100)
}
