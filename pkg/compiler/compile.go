package compiler

import (
	"encoding/binary"
	"io"
	"log/slog"

	"animac/pkg/asm"
	"animac/pkg/dvm"
	"animac/pkg/module"
)

// Options configures a compilation. The zero value compiles little-endian
// with the default module header and no logging.
type Options struct {
	ByteOrder dvm.ByteOrder
	Module    module.Options
	Logger    *slog.Logger
}

// DefaultOptions returns little-endian options for the current module format.
func DefaultOptions() Options {
	return Options{ByteOrder: binary.LittleEndian, Module: module.DefaultOptions()}
}

// Result holds the output of every stage.
type Result struct {
	Units        []Unit
	Instructions []dvm.Instruction
	Program      *asm.Program
	Binary       []byte
}

// Compile runs the whole pipeline over src. It keeps no state between calls.
func Compile(src string, opts Options) (*Result, error) {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	order := opts.ByteOrder
	if order == nil {
		order = binary.LittleEndian
	}

	units, err := Segment(src)
	if err != nil {
		return nil, err
	}
	log.Debug("segmented", "units", len(units))

	instrs, err := Classify(units)
	if err != nil {
		return nil, err
	}
	log.Debug("classified", "instructions", len(instrs))

	prog, err := asm.NewAssembler(order).Assemble(instrs)
	if err != nil {
		return nil, err
	}
	log.Debug("assembled", "code", len(prog.Code), "data", len(prog.Data))

	bin := module.Package(prog, opts.Module)
	log.Debug("packaged", "bytes", len(bin), "legacy_data_size", opts.Module.LegacyDataSize)

	return &Result{Units: units, Instructions: instrs, Program: prog, Binary: bin}, nil
}
