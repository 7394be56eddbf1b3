package compiler

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	e := &Error{Kind: KindSyntax, Line: 3, Col: 7, Unit: "'x", Msg: "invalid wait duration"}
	want := `syntax error at 3:7: invalid wait duration (in "'x")`
	if got := e.Error(); got != want {
		t.Errorf("Error() = %q; want %q", got, want)
	}
	if got := (&Error{Kind: KindEmptyProgram}).Error(); got != "empty program" {
		t.Errorf("Error() = %q", got)
	}
}

func TestErrorIs(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &Error{Kind: KindParam, Line: 1, Col: 1, Msg: "bad"})
	if !errors.Is(err, ErrParam) {
		t.Error("wrapped param error does not match ErrParam")
	}
	if errors.Is(err, ErrSyntax) {
		t.Error("param error matches ErrSyntax")
	}
}

func TestSnippet(t *testing.T) {
	src := "\"one\"\n  'x\n;"
	_, err := Compile(src, DefaultOptions())
	if err == nil {
		t.Fatal("expected an error")
	}
	want := "syntax error at 2:3: invalid wait duration \"x\" (in \"'x\")\n\n" +
		"   1 | \"one\"\n" +
		"   2 |   'x\n" +
		"     |   ^\n" +
		"   3 | ;\n"
	if got := Snippet(err, src); got != want {
		t.Errorf("Snippet =\n%s\nwant:\n%s", got, want)
	}
}

func TestSnippetWithoutPosition(t *testing.T) {
	err := errors.New("boom")
	if got := Snippet(err, "src"); got != "boom" {
		t.Errorf("Snippet = %q", got)
	}
}
