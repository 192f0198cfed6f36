// Package fasta reads and writes FASTA files.
//
// A record whose header is followed by no residue lines yields an empty
// sequence rather than being skipped, so an input file always produces one
// sequence per header.
package fasta

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aria-lang/bioalign-go/internal/sequence"
)

// ErrNoHeader is returned when residues appear before the first header.
var ErrNoHeader = errors.New("fasta: residues before first header")

// Parse reads every record from r. Sequences are validated against
// seqType; with sequence.Unknown each record's alphabet is detected.
func Parse(r io.Reader, seqType sequence.SequenceType) ([]*sequence.Sequence, error) {
	sequences := make([]*sequence.Sequence, 0)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

	var currentID, currentDesc string
	var currentBases strings.Builder
	inRecord := false
	line := 0

	flushSequence := func() error {
		if !inRecord {
			return nil
		}
		bases := currentBases.String()
		t := seqType
		if t == sequence.Unknown {
			t = sequence.Detect(bases)
		}
		seq, err := sequence.WithMetadata(bases, currentID, currentDesc, t)
		if err != nil {
			return fmt.Errorf("record %q: %w", currentID, err)
		}
		sequences = append(sequences, seq)
		currentBases.Reset()
		return nil
	}

	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())

		if len(text) == 0 || text[0] == ';' {
			continue
		}

		if text[0] == '>' {
			if err := flushSequence(); err != nil {
				return nil, err
			}

			parts := strings.SplitN(text[1:], " ", 2)
			currentID = parts[0]
			currentDesc = ""
			if len(parts) > 1 {
				currentDesc = strings.TrimSpace(parts[1])
			}
			inRecord = true
			continue
		}

		if !inRecord {
			return nil, fmt.Errorf("line %d: %w", line, ErrNoHeader)
		}
		currentBases.WriteString(text)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading fasta: %w", err)
	}

	if err := flushSequence(); err != nil {
		return nil, err
	}

	return sequences, nil
}

// ParseString is Parse over an in-memory string.
func ParseString(s string, seqType sequence.SequenceType) ([]*sequence.Sequence, error) {
	return Parse(strings.NewReader(s), seqType)
}

// ReadFile reads every record of a FASTA file.
func ReadFile(filename string, seqType sequence.SequenceType) ([]*sequence.Sequence, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	return Parse(file, seqType)
}

// Write writes sequences in FASTA format.
func Write(w io.Writer, sequences []*sequence.Sequence) error {
	for _, seq := range sequences {
		if _, err := io.WriteString(w, seq.ToFASTA()); err != nil {
			return fmt.Errorf("writing sequence: %w", err)
		}
	}
	return nil
}

// WriteFile writes sequences to a FASTA file.
func WriteFile(filename string, sequences []*sequence.Sequence) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}

	if err := Write(file, sequences); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
