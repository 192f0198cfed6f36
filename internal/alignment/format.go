package alignment

import (
	"strings"

	"github.com/aria-lang/bioalign-go/internal/scoring"
)

// LineLength is the default number of columns per printed block.
const LineLength = 80

// nameGap separates a row name from its symbols.
const nameGap = 3

// Format renders the alignment in blocks of at most width columns. Each
// row is prefixed by its name and followed by the conservation line under
// m. Missing names print as blanks; width <= 0 selects LineLength.
func (a *Alignment) Format(names []string, m *scoring.Matrix, width int) string {
	if width <= 0 {
		width = LineLength
	}

	labels := make([]string, len(a.Rows))
	pad := 0
	for i := range a.Rows {
		if i < len(names) {
			labels[i] = names[i]
		}
		pad = max(pad, len(labels[i]))
	}
	if pad > 0 {
		pad += nameGap
	}

	conservation := a.Conservation(m)

	var sb strings.Builder
	for start := 0; start < a.Length() || start == 0; start += width {
		end := min(start+width, a.Length())
		if start > 0 {
			sb.WriteByte('\n')
		}
		for i, row := range a.Rows {
			sb.WriteString(labels[i])
			sb.WriteString(strings.Repeat(" ", pad-len(labels[i])))
			sb.WriteString(row[start:end])
			sb.WriteByte('\n')
		}
		sb.WriteString(strings.TrimRight(strings.Repeat(" ", pad)+conservation[start:end], " "))
		sb.WriteByte('\n')
		if a.Length() == 0 {
			break
		}
	}
	return sb.String()
}
