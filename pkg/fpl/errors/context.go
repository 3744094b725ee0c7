package errors

import (
	"strings"
	"unicode/utf8"
)

// Caret renders src on one line with a caret under the byte offset pos.
// Offsets past the end of src point just after the last character, which is
// where premature end of input errors are reported.
func Caret(src string, pos int) string {
	if pos < 0 {
		return ""
	}
	if pos > len(src) {
		pos = len(src)
	}

	line := strings.NewReplacer("\n", " ", "\t", " ").Replace(src)
	col := utf8.RuneCountInString(src[:pos])

	var sb strings.Builder
	sb.WriteString("  | ")
	sb.WriteString(line)
	sb.WriteString("\n  | ")
	sb.WriteString(strings.Repeat(" ", col))
	sb.WriteString("^")
	return sb.String()
}
