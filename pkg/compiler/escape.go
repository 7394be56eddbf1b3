package compiler

import (
	"strconv"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
	"golang.org/x/text/unicode/runenames"
)

// escapePattern lists the recognised escapes in priority order. A match that
// fails to decode (bad hex digits, unknown name) is kept verbatim.
var escapePattern = regexp2.MustCompile(
	`\\U.{8}|\\u.{4}|\\x.{2}|\\[0-7]{1,3}|\\N\{[^}]+\}|\\[\\'"abfnrtv]`,
	regexp2.None,
)

var singleEscapes = map[byte]string{
	'\\': "\\",
	'\'': "'",
	'"':  "\"",
	'a':  "\a",
	'b':  "\b",
	'f':  "\f",
	'n':  "\n",
	'r':  "\r",
	't':  "\t",
	'v':  "\v",
}

// decodeEscapes replaces escape sequences in s with the text they denote.
func decodeEscapes(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	out, err := escapePattern.ReplaceFunc(s, func(m regexp2.Match) string {
		return decodeEscape(m.String())
	}, -1, -1)
	if err != nil {
		return s
	}
	return out
}

func decodeEscape(seq string) string {
	switch seq[1] {
	case 'U', 'u', 'x':
		v, err := strconv.ParseUint(seq[2:], 16, 32)
		if err != nil {
			return seq
		}
		return runeOrVerbatim(rune(v), seq)
	case 'N':
		if r, ok := lookupRuneName(seq[3 : len(seq)-1]); ok {
			return string(r)
		}
		return seq
	}
	if seq[1] >= '0' && seq[1] <= '7' {
		v, err := strconv.ParseUint(seq[1:], 8, 32)
		if err != nil {
			return seq
		}
		return string(rune(v))
	}
	if lit, ok := singleEscapes[seq[1]]; ok {
		return lit
	}
	return seq
}

func runeOrVerbatim(r rune, seq string) string {
	if !utf8.ValidRune(r) {
		return seq
	}
	return string(r)
}

var (
	runeNamesOnce sync.Once
	runeNames     map[string]rune
)

const cjkPrefix = "CJK UNIFIED IDEOGRAPH-"

// lookupRuneName resolves a Unicode character name, case-insensitively.
// The reverse index is built on first use.
func lookupRuneName(name string) (rune, bool) {
	name = strings.ToUpper(strings.TrimSpace(name))
	if strings.HasPrefix(name, cjkPrefix) {
		v, err := strconv.ParseUint(name[len(cjkPrefix):], 16, 32)
		if err != nil || !unicode.Is(unicode.Han, rune(v)) {
			return 0, false
		}
		return rune(v), true
	}

	runeNamesOnce.Do(func() {
		runeNames = make(map[string]rune, 1<<15)
		for r := rune(0); r <= unicode.MaxRune; r++ {
			n := runenames.Name(r)
			if n == "" || n[0] == '<' {
				continue
			}
			if _, dup := runeNames[n]; !dup {
				runeNames[n] = r
			}
		}
	})
	r, ok := runeNames[name]
	return r, ok
}
