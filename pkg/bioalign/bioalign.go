// Package bioalign provides a high-level API for optimal global sequence
// alignment and RNA secondary structure prediction.
//
// Example usage:
//
//	a, _ := bioalign.NewSequence("GATTACA")
//	b, _ := bioalign.NewSequence("GCATGCT")
//
//	res, err := bioalign.Align(ctx, a, b, nil, -1)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, aln := range res.Alignments {
//	    fmt.Println(aln.Format(nil, nil, bioalign.LineLength))
//	}
package bioalign

import (
	"context"
	"fmt"
	"io"

	"github.com/aria-lang/bioalign-go/internal/alignment"
	"github.com/aria-lang/bioalign-go/internal/engine"
	"github.com/aria-lang/bioalign-go/internal/fasta"
	"github.com/aria-lang/bioalign-go/internal/folding"
	"github.com/aria-lang/bioalign-go/internal/scoring"
	"github.com/aria-lang/bioalign-go/internal/sequence"
	"github.com/aria-lang/bioalign-go/internal/stats"
	"github.com/aria-lang/bioalign-go/internal/traceback"
)

// Re-export types for convenience
type (
	Sequence     = sequence.Sequence
	SequenceType = sequence.SequenceType
	Alignment    = alignment.Alignment
	Result       = alignment.Result
	Options      = alignment.Options
	LinearGap    = alignment.LinearGap
	AffineGap    = alignment.AffineGap
	Matrix       = scoring.Matrix
	Structure    = folding.Structure
	BasePair     = folding.BasePair
	Mode         = traceback.Mode
	Algorithm    = engine.Algorithm
	Request      = engine.Request
	Report       = engine.Report
	SetStats     = stats.AlignmentSetStats
)

// Constants
const (
	DNA     = sequence.DNA
	RNA     = sequence.RNA
	Protein = sequence.Protein
	Unknown = sequence.Unknown

	AllPaths = traceback.AllPaths
	OnePath  = traceback.OnePath

	LineLength = alignment.LineLength
)

// NewSequence creates a new DNA sequence.
func NewSequence(bases string) (*Sequence, error) {
	return sequence.New(bases)
}

// NewSequenceWithID creates a new sequence with an identifier.
func NewSequenceWithID(bases, id string) (*Sequence, error) {
	return sequence.WithID(bases, id)
}

// NewRNASequence creates a new RNA sequence.
func NewRNASequence(bases string) (*Sequence, error) {
	return sequence.NewRNA(bases)
}

// NewProteinSequence creates a new protein sequence.
func NewProteinSequence(bases string) (*Sequence, error) {
	return sequence.NewProtein(bases)
}

// DetectSequence creates a sequence whose alphabet is detected from bases.
func DetectSequence(bases, id string) (*Sequence, error) {
	return sequence.WithMetadata(bases, id, "", sequence.Detect(bases))
}

// LookupMatrix returns a built-in matrix by name.
func LookupMatrix(name string) (*Matrix, error) {
	return scoring.Lookup(name)
}

// LoadMatrix reads an NCBI-style matrix file.
func LoadMatrix(path string) (*Matrix, error) {
	return scoring.Load(path)
}

// MatrixNames lists the built-in matrices.
func MatrixNames() []string {
	return scoring.Names()
}

// DefaultMatrix picks a built-in matrix for seqs: BLOSUM62 when any is a
// protein, the RNA identity matrix when any is RNA, else the DNA one.
func DefaultMatrix(seqs ...*Sequence) *Matrix {
	rna := false
	for _, s := range seqs {
		switch s.SeqType {
		case sequence.Protein:
			return scoring.BLOSUM62()
		case sequence.RNA:
			rna = true
		}
	}
	if rna {
		return scoring.RNA()
	}
	return scoring.DNA()
}

// Align performs linear-gap global alignment and returns every optimal
// alignment. A nil matrix selects DefaultMatrix.
func Align(ctx context.Context, seq1, seq2 *Sequence, m *Matrix, gap int) (*Result, error) {
	if m == nil {
		m = DefaultMatrix(seq1, seq2)
	}
	return alignment.NeedlemanWunsch(ctx, seq1, seq2, m, LinearGap{Cost: gap}, Options{})
}

// AlignAffine performs affine-gap global alignment and returns every
// optimal alignment.
func AlignAffine(ctx context.Context, seq1, seq2 *Sequence, m *Matrix, open, extend int) (*Result, error) {
	if m == nil {
		m = DefaultMatrix(seq1, seq2)
	}
	return alignment.Gotoh(ctx, seq1, seq2, m, AffineGap{Open: open, Extend: extend}, Options{})
}

// AlignThree performs three-sequence global alignment.
func AlignThree(ctx context.Context, a, b, c *Sequence, m *Matrix, gap int) (*Result, error) {
	if m == nil {
		m = DefaultMatrix(a, b, c)
	}
	return alignment.NeedlemanWunsch3(ctx, a, b, c, m, LinearGap{Cost: gap}, Options{})
}

// Score returns the optimal linear-gap score without traceback.
func Score(seq1, seq2 *Sequence, m *Matrix, gap int) (int, error) {
	if m == nil {
		m = DefaultMatrix(seq1, seq2)
	}
	return alignment.LinearScore(seq1, seq2, m, LinearGap{Cost: gap})
}

// Fold predicts a maximum-pairing secondary structure.
func Fold(ctx context.Context, seq *Sequence, loop int) (*Structure, error) {
	return folding.Nussinov(ctx, seq, loop)
}

// Summarize returns statistics over a set of optimal alignments.
func Summarize(alignments []*Alignment) (*SetStats, error) {
	return stats.FromAlignments(alignments)
}

// Run dispatches a request to the engine for its algorithm.
func Run(ctx context.Context, req Request) (*engine.Result, error) {
	e, err := engine.For(req.Algorithm)
	if err != nil {
		return nil, err
	}
	return e.Compute(ctx, req)
}

// ReadFASTA reads sequences from a FASTA file, detecting each record's
// alphabet when seqType is Unknown.
func ReadFASTA(filename string, seqType SequenceType) ([]*Sequence, error) {
	return fasta.ReadFile(filename, seqType)
}

// ParseFASTA parses FASTA format from a reader.
func ParseFASTA(r io.Reader, seqType SequenceType) ([]*Sequence, error) {
	return fasta.Parse(r, seqType)
}

// WriteFASTA writes sequences to a FASTA file.
func WriteFASTA(filename string, sequences []*Sequence) error {
	return fasta.WriteFile(filename, sequences)
}

// Version returns the bioalign version.
func Version() string {
	return "1.0.0"
}

// Info returns information about bioalign.
func Info() string {
	return fmt.Sprintf(`bioalign v%s - Optimal Sequence Alignment and RNA Folding

Features:
  - Needleman-Wunsch global alignment (linear gap)
  - Gotoh global alignment (affine gap)
  - Three-sequence Needleman-Wunsch alignment
  - Nussinov RNA secondary structure prediction
  - All co-optimal tracebacks or one at random
  - BLOSUM62, PAM250 and identity matrices, NCBI matrix files
  - FASTA input
`, Version())
}
