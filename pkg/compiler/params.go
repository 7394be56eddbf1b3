package compiler

import (
	"strings"
	"unicode"
)

var closers = map[byte]byte{'(': ')', '[': ']'}

// Pack decomposes a parenthesized or bracketed unit into its parameter
// values. Nested groups are flattened in place.
func Pack(u Unit) ([]string, error) {
	return pack(u, u.Text)
}

func pack(u Unit, group string) ([]string, error) {
	if len(group) < 2 || closers[group[0]] == 0 || group[len(group)-1] != closers[group[0]] {
		return nil, &Error{Kind: KindParam, Line: u.Line, Col: u.Col, Unit: u.Text, Msg: "malformed parameter group " + group}
	}

	var out []string
	for _, piece := range splitTopLevel(group[1 : len(group)-1]) {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		switch piece[0] {
		case '"':
			s, err := unquote(u, piece)
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		case '(', '[':
			inner, err := pack(u, piece)
			if err != nil {
				return nil, err
			}
			out = append(out, inner...)
		default:
			if strings.IndexFunc(piece, unicode.IsSpace) >= 0 {
				return nil, &Error{Kind: KindParam, Line: u.Line, Col: u.Col, Unit: u.Text, Msg: "whitespace in bare parameter " + piece}
			}
			out = append(out, piece)
		}
	}
	return out, nil
}

// splitTopLevel splits s on commas that are outside quotes and nested groups.
func splitTopLevel(s string) []string {
	var (
		parts   []string
		depth   int
		inQuote bool
		start   int
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case inQuote:
			if c == '\\' {
				i++
			} else if c == '"' {
				inQuote = false
			}
		case c == '"':
			inQuote = true
		case c == '(' || c == '[':
			depth++
		case c == ')' || c == ']':
			if depth > 0 {
				depth--
			}
		case c == ',' && depth == 0:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}

// unquote strips the surrounding quotes of a string unit, trims the contents
// and decodes its escapes. The result may not contain NUL, which terminates
// data table entries.
func unquote(u Unit, s string) (string, error) {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return "", &Error{Kind: KindParam, Line: u.Line, Col: u.Col, Unit: u.Text, Msg: "unterminated string " + s}
	}
	out := decodeEscapes(strings.TrimSpace(s[1 : len(s)-1]))
	if strings.IndexByte(out, 0) >= 0 {
		return "", &Error{Kind: KindParam, Line: u.Line, Col: u.Col, Unit: u.Text, Msg: "NUL character in string " + s}
	}
	return out, nil
}
