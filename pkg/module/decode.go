package module

import (
	"errors"
	"fmt"

	"animac/pkg/dvm"
)

// ErrDecode is wrapped by every error Decode and Disassemble return.
var ErrDecode = errors.New("decode error")

// File is a decoded module.
type File struct {
	Header dvm.Header
	Data   []string
	Jumps  map[uint64]uint64
	Code   []byte

	order dvm.ByteOrder
}

// ByteOrder returns the order the module was decoded with.
func (f *File) ByteOrder() dvm.ByteOrder {
	return f.order
}

// DecodeOptions tells Decode how the module was written.
type DecodeOptions struct {
	Order dvm.ByteOrder
	// LegacyDataSize marks modules whose declared data size omits the
	// terminators. Their sections are located from the end of the blob.
	LegacyDataSize bool
}

// Decode reads a module, checking only that the declared sections fit.
func Decode(blob []byte, opts DecodeOptions) (*File, error) {
	order := opts.Order
	if order == nil {
		return nil, fmt.Errorf("%w: no byte order given", ErrDecode)
	}
	if len(blob) < 8 {
		return nil, fmt.Errorf("%w: module is %d bytes, too small for a header", ErrDecode, len(blob))
	}

	f := &File{Jumps: make(map[uint64]uint64), order: order}
	h := &f.Header
	h.HeaderSize = order.Uint64(blob)
	if h.HeaderSize < dvm.HeaderSize || uint64(len(blob)) < h.HeaderSize {
		return nil, fmt.Errorf("%w: bad header size %d for a %d byte module", ErrDecode, h.HeaderSize, len(blob))
	}
	words := make([]uint64, 10)
	for i := range words {
		words[i] = order.Uint64(blob[i*8:])
	}
	h.Version, h.MinVersion, h.Flags = words[1], words[2], words[3]
	h.Data = dvm.Section{Start: words[4], Size: words[5]}
	h.Jumps = dvm.Section{Start: words[6], Size: words[7]}
	h.Code = dvm.Section{Start: words[8], Size: words[9]}

	size := uint64(len(blob))
	if h.Jumps.Size%dvm.JumpEntrySize != 0 {
		return nil, fmt.Errorf("%w: jump section size %d is not a multiple of %d", ErrDecode, h.Jumps.Size, dvm.JumpEntrySize)
	}
	if h.Code.Size == 0 || h.Code.Size%dvm.OpcodeSize != 0 {
		return nil, fmt.Errorf("%w: malformed code section size %d", ErrDecode, h.Code.Size)
	}

	data, jumps, code := h.Data, h.Jumps, h.Code
	if opts.LegacyDataSize {
		if h.HeaderSize+h.Jumps.Size+h.Code.Size > size {
			return nil, fmt.Errorf("%w: sections exceed the %d byte module", ErrDecode, size)
		}
		code.Start = size - h.Code.Size
		jumps.Start = code.Start - h.Jumps.Size
		data = dvm.Section{Start: h.HeaderSize, Size: jumps.Start - h.HeaderSize}
	}
	for _, s := range []struct {
		name string
		sec  dvm.Section
	}{{"data", data}, {"jumps", jumps}, {"code", code}} {
		if s.sec.Start < h.HeaderSize || s.sec.Offset() < s.sec.Start || s.sec.Offset() > size {
			return nil, fmt.Errorf("%w: %s section [%d, %d) outside the %d byte module", ErrDecode, s.name, s.sec.Start, s.sec.Offset(), size)
		}
	}

	f.Data = splitData(blob[data.Start:data.Offset()])
	for off := jumps.Start; off < jumps.Offset(); off += dvm.JumpEntrySize {
		f.Jumps[order.Uint64(blob[off:])] = order.Uint64(blob[off+8:])
	}
	f.Code = append([]byte(nil), blob[code.Start:code.Offset()]...)
	return f, nil
}

// splitData cuts the data section at each terminator. A trailing entry
// without one is kept.
func splitData(b []byte) []string {
	var out []string
	start := 0
	for i, c := range b {
		if c == 0 {
			out = append(out, string(b[start:i]))
			start = i + 1
		}
	}
	if start < len(b) {
		out = append(out, string(b[start:]))
	}
	return out
}
