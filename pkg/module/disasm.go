package module

import (
	"fmt"
	"strconv"
	"strings"

	"animac/pkg/dvm"
)

// operandKind says how a disassembled operand is annotated.
type operandKind int

const (
	literal operandKind = iota
	hashed
	dataRef
	packRef
	maybeRef // a named call's sole operand: data reference or boolean
)

// Instr is one disassembled instruction.
type Instr struct {
	Offset   uint64   `yaml:"offset"`
	Op       string   `yaml:"op"`
	Mode     uint16   `yaml:"mode"`
	Operands []uint64 `yaml:"operands,omitempty"`
	Comment  string   `yaml:"comment,omitempty"`
	// Line is the source line of the instruction, when known.
	Line int `yaml:"line,omitempty"`
}

// operandShape mirrors the assembler: which operands follow an opcode.
func operandShape(op dvm.Operation, mode uint16) ([]operandKind, error) {
	switch op {
	case dvm.OpNoOp, dvm.OpHalt, dvm.OpSync, dvm.OpUserInput:
		return nil, nil
	case dvm.OpLine:
		return []operandKind{dataRef}, nil
	case dvm.OpActor:
		if mode == dvm.ModeAll {
			return nil, nil
		}
		return []operandKind{hashed}, nil
	case dvm.OpEmotion:
		return []operandKind{hashed}, nil
	case dvm.OpColor:
		return []operandKind{hashed}, nil
	case dvm.OpAction:
		if mode == dvm.ModeExtra {
			return []operandKind{packRef, literal}, nil
		}
		return nil, nil
	case dvm.OpNamedCall:
		if mode == dvm.ModeExtra {
			return []operandKind{packRef, literal}, nil
		}
		return []operandKind{maybeRef}, nil
	case dvm.OpWait, dvm.OpJump:
		return []operandKind{literal}, nil
	}
	return nil, fmt.Errorf("%w: unknown operation %s", ErrDecode, op)
}

// Disassemble walks the code stream of f.
func Disassemble(f *File) ([]Instr, error) {
	order := f.ByteOrder()
	var out []Instr
	for pos := 0; pos < len(f.Code); {
		if pos+dvm.OpcodeSize > len(f.Code) {
			return nil, fmt.Errorf("%w: truncated opcode at offset %d", ErrDecode, pos)
		}
		op, mode := dvm.DecodeOpcode(order.Uint16(f.Code[pos:]))
		in := Instr{Offset: uint64(pos), Op: op.String(), Mode: mode}
		pos += dvm.OpcodeSize

		shape, err := operandShape(op, mode)
		if err != nil {
			return nil, fmt.Errorf("%w at offset %d", err, in.Offset)
		}
		for range shape {
			if pos+dvm.OperandSize > len(f.Code) {
				return nil, fmt.Errorf("%w: truncated %s operand at offset %d", ErrDecode, op, pos)
			}
			in.Operands = append(in.Operands, order.Uint64(f.Code[pos:]))
			pos += dvm.OperandSize
		}
		in.Comment = f.annotate(shape, in.Operands)
		out = append(out, in)
	}
	return out, nil
}

func (f *File) annotate(shape []operandKind, operands []uint64) string {
	var parts []string
	for i, kind := range shape {
		v := operands[i]
		switch kind {
		case dataRef, maybeRef:
			if s, ok := f.ref(v); ok {
				parts = append(parts, strconv.Quote(s))
			}
		case packRef:
			n := operands[i+1]
			var vals []string
			for j := uint64(0); j < n; j++ {
				s, ok := f.ref(v + j)
				if !ok {
					break
				}
				vals = append(vals, strconv.Quote(s))
			}
			parts = append(parts, "("+strings.Join(vals, ", ")+")")
			return strings.Join(parts, " ")
		}
	}
	return strings.Join(parts, " ")
}

// ref resolves a 1-based data table reference.
func (f *File) ref(v uint64) (string, bool) {
	if v == 0 || v > uint64(len(f.Data)) {
		return "", false
	}
	return f.Data[v-1], true
}
