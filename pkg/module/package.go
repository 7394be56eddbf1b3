// Package module lays out an assembled program as a binary dialog module and
// reads such modules back.
//
// Layout:
//
//	header  headerSize, version, minVersion, flags, data, jumps, code
//	data    each entry's bytes followed by 0x00
//	jumps   key, value pairs
//	code    opcode/operand stream
package module

import (
	"sort"

	"animac/pkg/asm"
	"animac/pkg/dvm"
)

// Options controls the header fields and the data section accounting.
type Options struct {
	Version    uint64
	MinVersion uint64
	Flags      uint64

	// LegacyDataSize leaves the per-entry terminator bytes out of the
	// declared data section size, as older toolchains wrote it.
	LegacyDataSize bool
}

// DefaultOptions returns the options for the current module format.
func DefaultOptions() Options {
	return Options{Version: dvm.Version, MinVersion: dvm.MinVersion}
}

// DataSection returns the data section, which starts right after the header.
func DataSection(p *asm.Program, opts Options) dvm.Section {
	s := dvm.Section{Start: dvm.HeaderSize}
	for _, entry := range p.Data {
		s.Size += uint64(len(entry))
		if !opts.LegacyDataSize {
			s.Size++
		}
	}
	return s
}

func JumpSection(p *asm.Program, opts Options) dvm.Section {
	return dvm.Section{
		Start: DataSection(p, opts).Offset(),
		Size:  uint64(len(p.Jumps)) * dvm.JumpEntrySize,
	}
}

func CodeSection(p *asm.Program, opts Options) dvm.Section {
	return dvm.Section{
		Start: JumpSection(p, opts).Offset(),
		Size:  uint64(len(p.Code)),
	}
}

// NewHeader computes the header of p.
func NewHeader(p *asm.Program, opts Options) dvm.Header {
	return dvm.Header{
		HeaderSize: dvm.HeaderSize,
		Version:    opts.Version,
		MinVersion: opts.MinVersion,
		Flags:      opts.Flags,
		Data:       DataSection(p, opts),
		Jumps:      JumpSection(p, opts),
		Code:       CodeSection(p, opts),
	}
}

// Package serializes p in its own byte order.
func Package(p *asm.Program, opts Options) []byte {
	order := p.ByteOrder()
	h := NewHeader(p, opts)

	out := make([]byte, 0, h.Code.Offset())
	out = appendHeader(out, order, h)
	for _, entry := range p.Data {
		out = append(out, entry...)
		out = append(out, 0)
	}
	for _, k := range sortedKeys(p.Jumps) {
		out = order.AppendUint64(out, k)
		out = order.AppendUint64(out, p.Jumps[k])
	}
	return append(out, p.Code...)
}

func appendHeader(out []byte, order dvm.ByteOrder, h dvm.Header) []byte {
	for _, v := range []uint64{
		h.HeaderSize, h.Version, h.MinVersion, h.Flags,
		h.Data.Start, h.Data.Size,
		h.Jumps.Start, h.Jumps.Size,
		h.Code.Start, h.Code.Size,
	} {
		out = order.AppendUint64(out, v)
	}
	return out
}

func sortedKeys(m map[uint64]uint64) []uint64 {
	keys := make([]uint64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
