package compiler

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a compile failure.
type Kind int

const (
	KindLex Kind = iota + 1
	KindSyntax
	KindParam
	KindEmptyProgram
)

func (k Kind) String() string {
	switch k {
	case KindLex:
		return "lex error"
	case KindSyntax:
		return "syntax error"
	case KindParam:
		return "param error"
	case KindEmptyProgram:
		return "empty program"
	default:
		return "compile error"
	}
}

// Error is returned by every compile stage. Line and Col are 1-based and
// zero when no source position applies.
type Error struct {
	Kind Kind
	Line int
	Col  int
	Unit string
	Msg  string
}

// Sentinels for errors.Is. They match any *Error of the same Kind.
var (
	ErrLex          = &Error{Kind: KindLex}
	ErrSyntax       = &Error{Kind: KindSyntax}
	ErrParam        = &Error{Kind: KindParam}
	ErrEmptyProgram = &Error{Kind: KindEmptyProgram}
)

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Line > 0 {
		fmt.Fprintf(&b, " at %d:%d", e.Line, e.Col)
	}
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if e.Unit != "" {
		fmt.Fprintf(&b, " (in %q)", e.Unit)
	}
	return b.String()
}

// Is reports whether target is the sentinel for e's Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Msg == "" && t.Line == 0
}

func syntaxErrorf(u Unit, format string, args ...any) *Error {
	return &Error{Kind: KindSyntax, Line: u.Line, Col: u.Col, Unit: u.Text, Msg: fmt.Sprintf(format, args...)}
}

// Snippet renders err with a caret under its source position, showing up to
// one line of context on either side. Errors without a position are returned
// as their plain message.
func Snippet(err error, src string) string {
	var e *Error
	if !errors.As(err, &e) || e.Line == 0 {
		return err.Error()
	}

	lines := strings.Split(src, "\n")
	line, col := e.Line, e.Col
	if line > len(lines) {
		line = len(lines)
	}
	if col < 1 {
		col = 1
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", e.Error())
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
