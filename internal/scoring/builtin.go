package scoring

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
)

//go:embed data/blosum62.txt
var blosum62Text string

//go:embed data/pam250.txt
var pam250Text string

var (
	blosum62 = mustParse(blosum62Text, "BLOSUM62")
	pam250   = mustParse(pam250Text, "PAM250")
	dna      = mustIdentity("ACGT", 1, -1, "DNA")
	rna      = mustIdentity("ACGU", 1, -1, "RNA")
)

var builtins = map[string]*Matrix{
	"blosum62": blosum62,
	"pam250":   pam250,
	"dna":      dna,
	"rna":      rna,
}

func mustParse(text, name string) *Matrix {
	m, err := Parse(strings.NewReader(text), name)
	if err != nil {
		panic(fmt.Sprintf("scoring: built-in %s: %v", name, err))
	}
	return m
}

func mustIdentity(alphabet string, match, mismatch int, name string) *Matrix {
	m, err := NewIdentity(alphabet, match, mismatch)
	if err != nil {
		panic(fmt.Sprintf("scoring: built-in %s: %v", name, err))
	}
	m.name = name
	return m
}

// BLOSUM62 returns the BLOSUM62 amino-acid matrix.
func BLOSUM62() *Matrix { return blosum62 }

// PAM250 returns the PAM250 amino-acid matrix.
func PAM250() *Matrix { return pam250 }

// DNA returns the nucleotide matrix scoring +1 for identity and -1 otherwise.
func DNA() *Matrix { return dna }

// RNA is DNA with U in place of T.
func RNA() *Matrix { return rna }

// Lookup returns the built-in matrix with the given case-insensitive name.
func Lookup(name string) (*Matrix, error) {
	m, ok := builtins[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMatrix, name)
	}
	return m, nil
}

// Names lists the built-in matrix names in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
