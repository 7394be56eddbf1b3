package compiler

import "testing"

func TestDecodeEscapes(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`plain`, "plain"},
		{`a\nb`, "a\nb"},
		{`\t\\\'\"`, "\t\\'\""},
		{`\a\b\f\r\v`, "\a\b\f\r\v"},
		{`\x41\x5a`, "AZ"},
		{`\u00e9t\u00e9`, "été"},
		{`\U0001F600`, "😀"},
		{`\101\0`, "A\x00"},
		{`\N{LATIN SMALL LETTER A}`, "a"},
		{`\N{greek capital letter omega}`, "Ω"},
		{`\N{CJK UNIFIED IDEOGRAPH-4E2D}`, "中"},
		{`\\x41`, `\x41`},

		// Undecodable sequences are kept as written.
		{`\xZZ`, `\xZZ`},
		{`\uD800`, `\uD800`},
		{`\U00110000`, `\U00110000`},
		{`\N{NOT A REAL NAME}`, `\N{NOT A REAL NAME}`},
		{`\q`, `\q`},
	}

	for _, tc := range tests {
		if got := decodeEscapes(tc.input); got != tc.expected {
			t.Errorf("decodeEscapes(%q) = %q; want %q", tc.input, got, tc.expected)
		}
	}
}
