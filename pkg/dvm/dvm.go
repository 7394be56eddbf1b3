// Package dvm defines the dialog virtual machine bytecode shared by the
// compiler, the assembler and the module packager.
//
// An encoded instruction is a 2-byte opcode (operation in the low 12 bits,
// mode in the high 4 bits) followed by zero or more 8-byte operands.
package dvm

import "fmt"

// Operation identifies what an encoded instruction does.
type Operation uint16

const (
	OpNoOp      Operation = 0x0
	OpHalt      Operation = 0x1
	OpActor     Operation = 0x2
	OpLine      Operation = 0x3
	OpEmotion   Operation = 0x4
	OpAction    Operation = 0x5
	OpColor     Operation = 0x6
	OpWait      Operation = 0x7
	OpSync      Operation = 0x8
	OpUserInput Operation = 0x9
	OpNamedCall Operation = 0xA
	OpJump      Operation = 0xB
)

var operationNames = map[Operation]string{
	OpNoOp:      "NOOP",
	OpHalt:      "HALT",
	OpActor:     "ACTOR",
	OpLine:      "LINE",
	OpEmotion:   "EMOTION",
	OpAction:    "ACTION",
	OpColor:     "COLOR",
	OpWait:      "WAIT",
	OpSync:      "SYNC",
	OpUserInput: "USER_INPUT",
	OpNamedCall: "NAMED_CALL",
	OpJump:      "JUMP",
}

func (op Operation) String() string {
	if name, ok := operationNames[op]; ok {
		return name
	}
	return fmt.Sprintf("OP(0x%03X)", uint16(op))
}

// Valid reports whether op is one of the known operations.
func (op Operation) Valid() bool {
	_, ok := operationNames[op]
	return ok
}

const (
	// ModeMask selects the mode bits of an opcode.
	ModeMask uint16 = 0xF << 12
	// OperationMask selects the operation bits of an opcode.
	OperationMask uint16 = ^ModeMask

	// OpcodeSize and OperandSize are the widths, in bytes, of the two word
	// kinds in the code stream.
	OpcodeSize  = 2
	OperandSize = 8
)

// Modes used by the compiler.
const (
	ModeDefault uint16 = 0
	ModeExtra   uint16 = 1 // follow-up actor, param pack, or NoOp marker
	ModeAll     uint16 = 2 // "all remaining actors"
)

// EncodeOpcode packs an operation and a mode into an opcode word.
func EncodeOpcode(op Operation, mode uint16) uint16 {
	return (uint16(op) & OperationMask) | ((mode & 0xF) << 12)
}

// DecodeOpcode splits an opcode word into its operation and mode.
func DecodeOpcode(word uint16) (Operation, uint16) {
	return Operation(word & OperationMask), (word & ModeMask) >> 12
}
