// Package sequence provides validated protein, DNA and RNA sequences.
//
// Symbols are stored uppercase. Empty sequences are valid: aligning against
// an empty sequence is a well-defined all-gap alignment.
package sequence

import (
	"fmt"
	"strings"
)

// SequenceType represents the alphabet a sequence is drawn from.
type SequenceType int

const (
	// Protein uses the amino-acid alphabet including B, Z, X and '*'.
	Protein SequenceType = iota
	// DNA uses A, C, G, T and the ambiguity code N.
	DNA
	// RNA uses A, C, G, U and the ambiguity code N.
	RNA
	// Unknown skips alphabet validation.
	Unknown
)

func (t SequenceType) String() string {
	switch t {
	case Protein:
		return "Protein"
	case DNA:
		return "DNA"
	case RNA:
		return "RNA"
	default:
		return "Unknown"
	}
}

// ParseType maps a type name ("protein", "dna", "rna") to a SequenceType.
func ParseType(name string) (SequenceType, error) {
	switch strings.ToLower(name) {
	case "protein", "aa", "amino":
		return Protein, nil
	case "dna", "nucleotide":
		return DNA, nil
	case "rna":
		return RNA, nil
	case "unknown", "any":
		return Unknown, nil
	}
	return Unknown, fmt.Errorf("unknown sequence type %q", name)
}

// Sequence is an immutable symbol sequence with optional metadata.
type Sequence struct {
	Bases       string
	ID          string
	Description string
	SeqType     SequenceType
}

// New creates a DNA sequence.
func New(bases string) (*Sequence, error) {
	return WithMetadata(bases, "", "", DNA)
}

// NewRNA creates an RNA sequence.
func NewRNA(bases string) (*Sequence, error) {
	return WithMetadata(bases, "", "", RNA)
}

// NewProtein creates a protein sequence.
func NewProtein(bases string) (*Sequence, error) {
	return WithMetadata(bases, "", "", Protein)
}

// WithID creates a DNA sequence with an identifier.
func WithID(bases, id string) (*Sequence, error) {
	if len(id) == 0 {
		return nil, fmt.Errorf("ID cannot be empty")
	}
	return WithMetadata(bases, id, "", DNA)
}

// WithMetadata creates a sequence of the given type after normalizing to
// uppercase and validating every symbol.
func WithMetadata(bases, id, description string, seqType SequenceType) (*Sequence, error) {
	normalized := strings.ToUpper(strings.TrimSpace(bases))

	if err := Validate(normalized, seqType); err != nil {
		return nil, err
	}

	return &Sequence{
		Bases:       normalized,
		ID:          id,
		Description: description,
		SeqType:     seqType,
	}, nil
}

// Detect guesses the narrowest alphabet that accepts bases: DNA, then RNA,
// then Protein.
func Detect(bases string) SequenceType {
	normalized := strings.ToUpper(bases)
	switch {
	case ValidateDNA(normalized) == nil:
		return DNA
	case ValidateRNA(normalized) == nil:
		return RNA
	case ValidateProtein(normalized) == nil:
		return Protein
	}
	return Unknown
}

// Len returns the length of the sequence.
func (s *Sequence) Len() int {
	return len(s.Bases)
}

// IsEmpty reports whether the sequence has no symbols.
func (s *Sequence) IsEmpty() bool {
	return len(s.Bases) == 0
}

// IsValid checks that every symbol belongs to the sequence alphabet.
func (s *Sequence) IsValid() bool {
	return Validate(s.Bases, s.SeqType) == nil
}

// BaseAt returns the symbol at a 0-based index.
func (s *Sequence) BaseAt(index int) (byte, bool) {
	if index < 0 || index >= len(s.Bases) {
		return 0, false
	}
	return s.Bases[index], true
}

// Reverse returns the sequence reversed.
func (s *Sequence) Reverse() *Sequence {
	b := []byte(s.Bases)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return &Sequence{
		Bases:       string(b),
		ID:          s.ID,
		Description: s.Description,
		SeqType:     s.SeqType,
	}
}

// Transcribe converts DNA to RNA (T -> U).
func (s *Sequence) Transcribe() (*Sequence, error) {
	if s.SeqType != DNA {
		return nil, fmt.Errorf("can only transcribe DNA")
	}

	return &Sequence{
		Bases:       strings.ReplaceAll(s.Bases, "T", "U"),
		ID:          s.ID,
		Description: s.Description,
		SeqType:     RNA,
	}, nil
}

// Label returns the ID, or fallback when the sequence has none.
func (s *Sequence) Label(fallback string) string {
	if s.ID != "" {
		return s.ID
	}
	return fallback
}

// ToFASTA returns the sequence in FASTA format with 80-column lines.
func (s *Sequence) ToFASTA() string {
	header := ">" + s.Label("sequence")
	if s.Description != "" {
		header += " " + s.Description
	}

	var sb strings.Builder
	sb.WriteString(header)
	sb.WriteRune('\n')

	for i := 0; i < len(s.Bases); i += 80 {
		end := i + 80
		if end > len(s.Bases) {
			end = len(s.Bases)
		}
		sb.WriteString(s.Bases[i:end])
		sb.WriteRune('\n')
	}

	return sb.String()
}

// String returns a string representation of the sequence.
func (s *Sequence) String() string {
	if s.ID != "" {
		return fmt.Sprintf(">%s\n%s", s.ID, s.Bases)
	}
	return s.Bases
}

// Equal checks equality with another sequence.
func (s *Sequence) Equal(other *Sequence) bool {
	if other == nil {
		return false
	}
	return s.Bases == other.Bases && s.SeqType == other.SeqType
}
