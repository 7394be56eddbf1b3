package compiler

import (
	"regexp"
	"strconv"
	"strings"

	"animac/pkg/dvm"
	"animac/pkg/murmur"
)

// identPattern is what a bare `$name` argument must look like.
var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_\-]*$`)

// actorWildcard stands for "every actor", optionally followed by exclusions.
const actorWildcard = "..."

// Classifier turns lexical units into instructions, dispatching on the first
// character of each unit.
//
//	/...      comment, skipped
//	"text"    Line
//	@name     Action, takes a following (...) when present
//	$name     NamedCall, takes a mandatory (...), "text" or identifier
//	!name     Emotion
//	'N        Wait
//	##hex     Color
//	#x        reserved, skipped
//	[a, b]    Actor
//	*         NoOp (mode 1)
//	.         Sync
//	;         UserInput
//	+name     NamedCall(true)
//	-name     NamedCall(false)
//	(...)     orphan group, skipped
type Classifier struct {
	units []Unit
	pos   int
}

func NewClassifier(units []Unit) *Classifier {
	return &Classifier{units: units}
}

// Classify is a convenience wrapper around NewClassifier(units).Classify().
func Classify(units []Unit) ([]dvm.Instruction, error) {
	return NewClassifier(units).Classify()
}

// peek returns the current unit, or false at the end of input.
func (c *Classifier) peek() (Unit, bool) {
	if c.pos >= len(c.units) {
		return Unit{}, false
	}
	return c.units[c.pos], true
}

func (c *Classifier) advance() Unit {
	u, _ := c.peek()
	if c.pos < len(c.units) {
		c.pos++
	}
	return u
}

func (c *Classifier) Classify() ([]dvm.Instruction, error) {
	if len(c.units) == 0 {
		return nil, &Error{Kind: KindLex, Msg: "no lexical units to classify"}
	}

	var out []dvm.Instruction
	for c.pos < len(c.units) {
		u := c.advance()
		u.Text = strings.TrimSpace(u.Text)
		if u.Text == "" {
			continue
		}
		in, ok, err := c.classify(u)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		in.Line, in.Col = u.Line, u.Col
		out = append(out, in)
	}

	if len(out) == 0 {
		return nil, &Error{Kind: KindEmptyProgram, Msg: "script produced no instructions"}
	}
	return out, nil
}

// classify handles one unit. ok is false for units that produce nothing.
func (c *Classifier) classify(u Unit) (in dvm.Instruction, ok bool, err error) {
	text := u.Text
	switch text[0] {
	case '/', '(':
		return in, false, nil

	case '"':
		s, err := unquote(u, text)
		if err != nil {
			return in, false, err
		}
		return dvm.Instruction{Op: dvm.OpLine, Params: dvm.Texts(s)}, true, nil

	case '@':
		name, err := sigilName(u)
		if err != nil {
			return in, false, err
		}
		in = dvm.Instruction{Op: dvm.OpAction, Name: name}
		if next, more := c.peek(); more && strings.HasPrefix(strings.TrimSpace(next.Text), "(") {
			params, err := Pack(trimmed(c.advance()))
			if err != nil {
				return in, false, err
			}
			in.Params = dvm.Texts(params...)
		}
		return in, true, nil

	case '$':
		return c.namedCall(u)

	case '!':
		name, err := sigilName(u)
		if err != nil {
			return in, false, err
		}
		return dvm.Instruction{Op: dvm.OpEmotion, Name: name}, true, nil

	case '\'':
		if len(text) < 2 {
			return in, false, syntaxErrorf(u, "wait needs a duration")
		}
		n, err := strconv.ParseUint(text[1:], 10, 64)
		if err != nil {
			return in, false, syntaxErrorf(u, "invalid wait duration %q", text[1:])
		}
		return dvm.Instruction{Op: dvm.OpWait, Params: []dvm.Param{dvm.Int(n)}}, true, nil

	case '#':
		if len(text) < 4 {
			return in, false, syntaxErrorf(u, "color tag too short")
		}
		if text[1] != '#' {
			return in, false, nil
		}
		// TODO: decode the hex digits into RGB components once the runtime
		// accepts literal colors; until then the tag is addressed by hash.
		return dvm.Instruction{Op: dvm.OpColor, Params: []dvm.Param{dvm.Int(murmur.String(text[2:]))}}, true, nil

	case '[':
		return c.actor(u)

	case '*':
		return dvm.Instruction{Op: dvm.OpNoOp, Mode: dvm.ModeExtra}, true, nil

	case '.':
		return dvm.Instruction{Op: dvm.OpSync}, true, nil

	case ';':
		return dvm.Instruction{Op: dvm.OpUserInput}, true, nil

	case '+', '-':
		name, err := sigilName(u)
		if err != nil {
			return in, false, err
		}
		return dvm.Instruction{Op: dvm.OpNamedCall, Name: name, Params: []dvm.Param{dvm.Bool(text[0] == '+')}}, true, nil
	}

	return in, false, syntaxErrorf(u, "unrecognized sigil %q", text[0])
}

func (c *Classifier) namedCall(u Unit) (dvm.Instruction, bool, error) {
	name, err := sigilName(u)
	if err != nil {
		return dvm.Instruction{}, false, err
	}
	in := dvm.Instruction{Op: dvm.OpNamedCall, Name: name}

	next, more := c.peek()
	if !more {
		return in, false, syntaxErrorf(u, "named call $%s needs an argument", name)
	}
	next = trimmed(next)

	switch {
	case strings.HasPrefix(next.Text, "("):
		params, err := Pack(next)
		if err != nil {
			return in, false, err
		}
		in.Params = dvm.Texts(params...)
	case strings.HasPrefix(next.Text, `"`):
		s, err := unquote(next, next.Text)
		if err != nil {
			return in, false, err
		}
		in.Params = dvm.Texts(s)
	case identPattern.MatchString(next.Text):
		in.Params = dvm.Texts(next.Text)
	default:
		return in, false, syntaxErrorf(next, "invalid argument for named call $%s", name)
	}
	c.advance()
	return in, true, nil
}

func (c *Classifier) actor(u Unit) (dvm.Instruction, bool, error) {
	params, err := Pack(u)
	if err != nil {
		return dvm.Instruction{}, false, err
	}
	for i, p := range params {
		if p == actorWildcard {
			if i > 0 {
				return dvm.Instruction{}, false, syntaxErrorf(u, "%s must be the first actor", actorWildcard)
			}
			continue
		}
		if strings.Contains(p, ".") {
			return dvm.Instruction{}, false, syntaxErrorf(u, "invalid actor name %q", p)
		}
	}
	return dvm.Instruction{Op: dvm.OpActor, Params: dvm.Texts(params...)}, true, nil
}

// sigilName returns the text after a one-character sigil.
func sigilName(u Unit) (string, error) {
	if len(u.Text) < 2 {
		return "", syntaxErrorf(u, "%q needs a name", u.Text)
	}
	return u.Text[1:], nil
}

func trimmed(u Unit) Unit {
	u.Text = strings.TrimSpace(u.Text)
	return u
}
