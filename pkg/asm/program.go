package asm

import (
	"encoding/binary"

	"animac/pkg/dvm"
	"animac/pkg/murmur"
)

// Program is the output of one assembly pass: the data table, the jump map
// and the code stream. It is built once and serialized once.
type Program struct {
	// Data holds string literals; code references them 1-based.
	Data []string
	// Jumps maps label offsets to target offsets. Nothing produces jumps yet.
	Jumps map[uint64]uint64
	Code  []byte
	// SourceMap maps a code offset to the source line of its instruction.
	SourceMap map[uint64]int

	order dvm.ByteOrder
}

// NewProgram returns an empty program whose data table is seeded with the
// two boolean literals.
func NewProgram(order dvm.ByteOrder) *Program {
	if order == nil {
		order = binary.LittleEndian
	}
	return &Program{
		Data:      []string{"false", "true"},
		Jumps:     make(map[uint64]uint64),
		SourceMap: make(map[uint64]int),
		order:     order,
	}
}

// ByteOrder is the order every word of the program is written in.
func (p *Program) ByteOrder() dvm.ByteOrder {
	return p.order
}

func (p *Program) AddOperation(opcode uint16) {
	p.Code = p.order.AppendUint16(p.Code, opcode)
}

func (p *Program) AddOperand(value uint64) {
	p.Code = p.order.AppendUint64(p.Code, value)
}

// AddStringOperand appends s to the data table and emits its 1-based index.
func (p *Program) AddStringOperand(s string) {
	p.AddOperand(uint64(len(p.Data)) + 1)
	p.Data = append(p.Data, s)
}

// AddNamedOperand emits the hash of name.
func (p *Program) AddNamedOperand(name string) {
	p.AddOperand(murmur.String(name))
}

// AddParamPackOperand emits [index, count] and appends values to the data
// table, index being the 1-based slot of the first value.
func (p *Program) AddParamPackOperand(values []string) {
	p.AddOperand(uint64(len(p.Data)) + 1)
	p.AddOperand(uint64(len(values)))
	p.Data = append(p.Data, values...)
}

func (p *Program) mark(line int) {
	if line > 0 {
		p.SourceMap[uint64(len(p.Code))] = line
	}
}

// paramTexts renders params the way they are stored in the data table.
func paramTexts(params []dvm.Param) []string {
	out := make([]string, len(params))
	for i, prm := range params {
		out[i] = prm.String()
	}
	return out
}
