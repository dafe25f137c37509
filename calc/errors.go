package calc

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a failure by the pipeline stage that raised it.
type ErrorKind string

const (
	KindLexical        ErrorKind = "LexicalError"
	KindParsing        ErrorKind = "ParsingError"
	KindDivisionByZero ErrorKind = "DivisionByZeroError"
	KindOverflow       ErrorKind = "OverflowError"
	KindLimit          ErrorKind = "LimitError"
	KindInternal       ErrorKind = "InternalError"
)

// Sentinels matched by errors.Is against an *Error of the same kind.
var (
	ErrLexical        = errors.New("lexical error")
	ErrParsing        = errors.New("parsing error")
	ErrDivisionByZero = errors.New("division by zero")
	ErrOverflow       = errors.New("integer overflow")
	ErrLimit          = errors.New("limit exceeded")
	ErrInternal       = errors.New("internal error")
)

var kindSentinels = map[ErrorKind]error{
	KindLexical:        ErrLexical,
	KindParsing:        ErrParsing,
	KindDivisionByZero: ErrDivisionByZero,
	KindOverflow:       ErrOverflow,
	KindLimit:          ErrLimit,
	KindInternal:       ErrInternal,
}

// Error is returned by every stage of the pipeline. It aborts the whole
// evaluation; no stage recovers from another stage's error.
type Error struct {
	Kind      ErrorKind
	Message   string
	Pos       Position
	CodeFrame string
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if e.Pos.Line > 0 {
		fmt.Fprintf(&b, " at %d:%d", e.Pos.Line, e.Pos.Column)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.CodeFrame != "" {
		b.WriteString("\n")
		b.WriteString(e.CodeFrame)
	}
	return b.String()
}

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	sentinel, ok := kindSentinels[e.Kind]
	return ok && sentinel == target
}

func newError(kind ErrorKind, message string, pos Position, source string) *Error {
	return &Error{
		Kind:      kind,
		Message:   message,
		Pos:       pos,
		CodeFrame: formatCodeFrame(source, pos),
	}
}

// KindOf extracts the ErrorKind of err, or "" when err did not come from
// this package.
func KindOf(err error) ErrorKind {
	var calcErr *Error
	if errors.As(err, &calcErr) {
		return calcErr.Kind
	}
	return ""
}
