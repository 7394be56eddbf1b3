package dvm

import (
	"fmt"
	"strconv"
	"strings"
)

// ParamKind tells which field of a Param is meaningful.
type ParamKind int

const (
	ParamText ParamKind = iota
	ParamInt
	ParamBool
)

// Param is one instruction parameter.
type Param struct {
	Kind ParamKind
	Text string
	Int  uint64
	Bool bool
}

func Text(s string) Param { return Param{Kind: ParamText, Text: s} }
func Int(v uint64) Param  { return Param{Kind: ParamInt, Int: v} }
func Bool(b bool) Param   { return Param{Kind: ParamBool, Bool: b} }

// Texts wraps each string as a text Param.
func Texts(ss ...string) []Param {
	out := make([]Param, len(ss))
	for i, s := range ss {
		out[i] = Text(s)
	}
	return out
}

// String returns the text this parameter occupies in the data table.
func (p Param) String() string {
	switch p.Kind {
	case ParamInt:
		return strconv.FormatUint(p.Int, 10)
	case ParamBool:
		return strconv.FormatBool(p.Bool)
	default:
		return p.Text
	}
}

// Instruction is one classified script statement, ready to be encoded.
type Instruction struct {
	Op     Operation
	Name   string
	Params []Param
	Mode   uint16

	// Line and Col locate the unit the instruction came from.
	Line int
	Col  int
}

// Opcode returns the opcode word using mode, or the instruction's own mode
// when mode is zero.
func (in Instruction) Opcode(mode uint16) uint16 {
	if mode == 0 {
		mode = in.Mode
	}
	return EncodeOpcode(in.Op, mode)
}

func (in Instruction) String() string {
	var b strings.Builder
	b.WriteString(in.Op.String())
	if in.Name != "" {
		b.WriteString(" ")
		b.WriteString(in.Name)
	}
	if len(in.Params) > 0 {
		parts := make([]string, len(in.Params))
		for i, p := range in.Params {
			if p.Kind == ParamText {
				parts[i] = strconv.Quote(p.Text)
			} else {
				parts[i] = p.String()
			}
		}
		fmt.Fprintf(&b, " (%s)", strings.Join(parts, ", "))
	}
	if in.Mode != 0 {
		fmt.Fprintf(&b, " mode=%d", in.Mode)
	}
	return b.String()
}
