package folding

import "strings"

// LineLength is the default number of positions per printed block.
const LineLength = 80

// Format prints the sequence above its dot-bracket line in blocks of at
// most width positions, with a blank line after each block.
func (s *Structure) Format(width int) string {
	if width <= 0 {
		width = LineLength
	}
	db := s.DotBracket()

	var sb strings.Builder
	for start := 0; start < len(db) || start == 0; start += width {
		end := min(start+width, len(db))
		sb.WriteString(s.Sequence[start:end])
		sb.WriteByte('\n')
		sb.WriteString(db[start:end])
		sb.WriteString("\n\n")
		if len(db) == 0 {
			break
		}
	}
	return sb.String()
}
