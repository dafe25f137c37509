package calc

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// formatCodeFrame quotes the source line holding pos and marks the offending
// rune with a caret:
//
//	1 | (2 + 3
//	  |       ^
func formatCodeFrame(source string, pos Position) string {
	if source == "" || pos.Line <= 0 || pos.Offset < 0 || pos.Offset > len(source) {
		return ""
	}

	start := strings.LastIndexByte(source[:pos.Offset], '\n') + 1
	end := len(source)
	if i := strings.IndexByte(source[pos.Offset:], '\n'); i >= 0 {
		end = pos.Offset + i
	}
	line := strings.TrimRight(source[start:end], "\r")
	caret := utf8.RuneCountInString(source[start:pos.Offset])

	label := strconv.Itoa(pos.Line)
	var b strings.Builder
	b.WriteString(label)
	b.WriteString(" | ")
	b.WriteString(line)
	b.WriteByte('\n')
	b.WriteString(strings.Repeat(" ", len(label)))
	b.WriteString(" | ")
	b.WriteString(strings.Repeat(" ", caret))
	b.WriteByte('^')
	return b.String()
}
