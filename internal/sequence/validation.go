package sequence

import "fmt"

// SequenceError is the base error type for sequence operations.
type SequenceError interface {
	error
	IsSequenceError()
}

// InvalidBaseError is returned when a symbol is outside the alphabet.
type InvalidBaseError struct {
	Position int
	Found    rune
	SeqType  SequenceType
}

func (e *InvalidBaseError) Error() string {
	return fmt.Sprintf("invalid %s symbol '%c' at position %d", e.SeqType, e.Found, e.Position)
}

func (e *InvalidBaseError) IsSequenceError() {}

// Alphabets accepted by each sequence type.
const (
	DNAAlphabet     = "ACGTN"
	RNAAlphabet     = "ACGUN"
	ProteinAlphabet = "ARNDCQEGHILKMFPSTWYVBZXUO*"
)

var alphabets = map[SequenceType]*[256]bool{
	DNA:     symbolSet(DNAAlphabet),
	RNA:     symbolSet(RNAAlphabet),
	Protein: symbolSet(ProteinAlphabet),
}

func symbolSet(symbols string) *[256]bool {
	var set [256]bool
	for i := 0; i < len(symbols); i++ {
		set[symbols[i]] = true
	}
	return &set
}

// GapSymbol marks gap columns in aligned rows. No alphabet contains it.
const GapSymbol = '-'

// Validate checks bases against the alphabet of seqType. Unknown accepts
// any printable ASCII symbol except GapSymbol.
func Validate(bases string, seqType SequenceType) error {
	set, ok := alphabets[seqType]
	for i, b := range bases {
		if b == GapSymbol {
			return &InvalidBaseError{Position: i, Found: b, SeqType: seqType}
		}
		if ok {
			if b > 255 || !set[b] {
				return &InvalidBaseError{Position: i, Found: b, SeqType: seqType}
			}
			continue
		}
		if b <= ' ' || b > '~' {
			return &InvalidBaseError{Position: i, Found: b, SeqType: seqType}
		}
	}
	return nil
}

// ValidateDNA validates that a string contains only valid DNA bases.
func ValidateDNA(bases string) error {
	return Validate(bases, DNA)
}

// ValidateRNA validates that a string contains only valid RNA bases.
func ValidateRNA(bases string) error {
	return Validate(bases, RNA)
}

// ValidateProtein validates that a string contains only amino-acid symbols.
func ValidateProtein(bases string) error {
	return Validate(bases, Protein)
}
