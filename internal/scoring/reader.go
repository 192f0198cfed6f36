package scoring

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Parse reads a substitution matrix in the NCBI text layout: '#' comment
// lines, a header line listing the column symbols, then one row per symbol
// beginning with that symbol.
func Parse(r io.Reader, name string) (*Matrix, error) {
	scanner := bufio.NewScanner(r)

	var header []string
	var values [][]int
	line := 0

	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Fields(text)
		if header == nil {
			for _, f := range fields {
				if len(f) != 1 {
					return nil, fmt.Errorf("line %d: column symbol %q is not a single character", line, f)
				}
			}
			header = fields
			continue
		}

		row := len(values)
		if row >= len(header) {
			return nil, fmt.Errorf("line %d: %w: more rows than columns", line, ErrNotSquare)
		}
		if fields[0] != header[row] {
			return nil, fmt.Errorf("line %d: row symbol %q, want %q", line, fields[0], header[row])
		}
		if len(fields)-1 != len(header) {
			return nil, fmt.Errorf("line %d: %w: %d values, want %d",
				line, ErrNotSquare, len(fields)-1, len(header))
		}

		rowValues := make([]int, len(header))
		for i, f := range fields[1:] {
			v, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("line %d: parsing score %q: %w", line, f, err)
			}
			rowValues[i] = v
		}
		values = append(values, rowValues)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading matrix: %w", err)
	}
	if header == nil {
		return nil, ErrEmptyMatrix
	}

	return New(name, strings.Join(header, ""), values)
}

// Load reads a matrix file. The matrix is named after the file's base name
// without extension.
func Load(path string) (*Matrix, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening matrix: %w", err)
	}
	defer file.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Parse(file, name)
}
