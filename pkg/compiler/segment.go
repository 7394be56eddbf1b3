package compiler

import (
	"fmt"

	"github.com/dlclark/regexp2"
)

// Unit is one lexical unit: a raw slice of the source in source order.
type Unit struct {
	Text   string
	Offset int // rune offset into the source
	Line   int // 1-based
	Col    int // 1-based, in runes
}

func (u Unit) String() string {
	return fmt.Sprintf("%d:%d %q", u.Line, u.Col, u.Text)
}

// Pattern pieces, tried left to right at each position.
const (
	wordRun      = `[\w&!@#$%><+\-_']+`
	unarySigil   = `[*.;]`
	quoted       = `(?<!\\)"[^"\\]*(?:\\.[^"\\]*)*"`
	parenGroup   = `\([\s\S]*?\)`
	bracketGroup = `\[[\s\S]*?\]`
	lineComment  = `//.*`
	blockComment = `/\*[\s\S]*?\*/`
)

// unitPattern is compiled once and only read afterwards. RE2 cannot express
// the look-behind that keeps an escaped quote from opening a string, hence
// regexp2.
var unitPattern = regexp2.MustCompile(
	wordRun+`|`+unarySigil+`|`+quoted+`|`+parenGroup+`|`+bracketGroup+`|`+lineComment+`|`+blockComment,
	regexp2.None,
)

// Segment splits src into lexical units. Text that matches no unit
// (whitespace, stray commas, unmatched closers) is dropped.
func Segment(src string) ([]Unit, error) {
	runes := []rune(src)
	var units []Unit

	line, col, pos := 1, 1, 0
	advanceTo := func(idx int) {
		for ; pos < idx; pos++ {
			if runes[pos] == '\n' {
				line++
				col = 1
			} else {
				col++
			}
		}
	}

	m, err := unitPattern.FindRunesMatch(runes)
	for err == nil && m != nil {
		advanceTo(m.Index)
		units = append(units, Unit{Text: m.String(), Offset: m.Index, Line: line, Col: col})
		m, err = unitPattern.FindNextMatch(m)
	}
	if err != nil {
		return nil, &Error{Kind: KindLex, Line: line, Col: col, Msg: err.Error()}
	}

	if len(units) == 0 {
		return nil, &Error{Kind: KindLex, Msg: "source contains no lexical units"}
	}
	return units, nil
}
