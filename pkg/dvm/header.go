package dvm

import "encoding/binary"

const (
	// Version is the module format version written by this compiler.
	Version uint64 = 0
	// MinVersion is the oldest runtime version able to load the module.
	MinVersion uint64 = 0
)

// Section is a byte range inside a serialized module.
type Section struct {
	Start uint64 `yaml:"start"`
	Size  uint64 `yaml:"size"`
}

// SectionSize is the serialized width of a Section.
const SectionSize = 8 * 2

// Offset returns the first byte past the section.
func (s Section) Offset() uint64 {
	return s.Start + s.Size
}

// Header is the fixed-size module header.
type Header struct {
	HeaderSize uint64  `yaml:"header_size"`
	Version    uint64  `yaml:"version"`
	MinVersion uint64  `yaml:"min_version"`
	Flags      uint64  `yaml:"flags"`
	Data       Section `yaml:"data"`
	Jumps      Section `yaml:"jumps"`
	Code       Section `yaml:"code"`
}

// HeaderSize is the serialized width of a Header: four words and three sections.
const HeaderSize = 8*4 + SectionSize*3

// JumpEntrySize is the width of one serialized jump table entry (key, value).
const JumpEntrySize = 8 * 2

// ByteOrder reads and appends the fixed-width words of a module.
// binary.LittleEndian and binary.BigEndian both satisfy it.
type ByteOrder interface {
	binary.ByteOrder
	binary.AppendByteOrder
}
