package asm

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"animac/pkg/dvm"
)

// ErrEncode is wrapped by every error the assembler returns.
var ErrEncode = errors.New("encode error")

type Assembler struct {
	order dvm.ByteOrder
}

func NewAssembler(order dvm.ByteOrder) *Assembler {
	return &Assembler{order: order}
}

// Assemble encodes instrs little-endian.
func Assemble(instrs []dvm.Instruction) (*Program, error) {
	return NewAssembler(binary.LittleEndian).Assemble(instrs)
}

func (a *Assembler) Assemble(instrs []dvm.Instruction) (*Program, error) {
	prog := NewProgram(a.order)
	for _, in := range instrs {
		prog.mark(in.Line)
		if err := encode(prog, in); err != nil {
			return nil, err
		}
	}
	return prog, nil
}

func encode(p *Program, in dvm.Instruction) error {
	for _, prm := range in.Params {
		if prm.Kind == dvm.ParamText && strings.IndexByte(prm.Text, 0) >= 0 {
			return encodeErrorf(in, "NUL character in parameter %q", prm.Text)
		}
	}

	switch in.Op {
	case dvm.OpNoOp, dvm.OpHalt, dvm.OpSync, dvm.OpUserInput:
		p.AddOperation(in.Opcode(0))

	case dvm.OpLine:
		if len(in.Params) != 1 {
			return encodeErrorf(in, "expects 1 parameter, got %d", len(in.Params))
		}
		p.AddOperation(in.Opcode(0))
		p.AddStringOperand(in.Params[0].String())

	case dvm.OpActor:
		if len(in.Params) == 0 {
			p.AddOperation(in.Opcode(0))
			p.AddOperand(0)
			return nil
		}
		for i, prm := range in.Params {
			name := prm.String()
			if name == "..." {
				if i > 0 {
					return encodeErrorf(in, "wildcard actor at position %d", i+1)
				}
				p.AddOperation(in.Opcode(dvm.ModeAll))
				continue
			}
			mode := dvm.ModeDefault
			if i > 0 {
				mode = dvm.ModeExtra
			}
			p.AddOperation(in.Opcode(mode))
			p.AddNamedOperand(name)
		}

	case dvm.OpEmotion:
		p.AddOperation(in.Opcode(0))
		p.AddNamedOperand(in.Name)

	case dvm.OpColor, dvm.OpWait, dvm.OpJump:
		if len(in.Params) != 1 || in.Params[0].Kind != dvm.ParamInt {
			return encodeErrorf(in, "expects one numeric parameter")
		}
		p.AddOperation(in.Opcode(0))
		p.AddOperand(in.Params[0].Int)

	case dvm.OpAction:
		if len(in.Params) == 0 {
			p.AddOperation(in.Opcode(0))
			return nil
		}
		p.AddOperation(in.Opcode(dvm.ModeExtra))
		p.AddParamPackOperand(paramTexts(in.Params))

	case dvm.OpNamedCall:
		return encodeNamedCall(p, in)

	default:
		return encodeErrorf(in, "unknown operation")
	}
	return nil
}

// encodeNamedCall picks the operand shape from the parameter count. A call
// without parameters gets an empty pack so mode 1 always means two operands.
func encodeNamedCall(p *Program, in dvm.Instruction) error {
	if len(in.Params) != 1 {
		p.AddOperation(in.Opcode(dvm.ModeExtra))
		p.AddParamPackOperand(paramTexts(in.Params))
		return nil
	}

	p.AddOperation(in.Opcode(0))
	switch prm := in.Params[0]; prm.Kind {
	case dvm.ParamBool:
		if prm.Bool {
			p.AddOperand(1)
		} else {
			p.AddOperand(0)
		}
	case dvm.ParamInt:
		p.AddOperand(prm.Int)
	default:
		p.AddStringOperand(prm.Text)
	}
	return nil
}

func encodeErrorf(in dvm.Instruction, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if in.Line > 0 {
		return fmt.Errorf("%w: %s on line %d: %s", ErrEncode, in.Op, in.Line, msg)
	}
	return fmt.Errorf("%w: %s: %s", ErrEncode, in.Op, msg)
}
