package module

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"animac/pkg/dvm"
)

// Listing is a module's header, data table and disassembled code.
type Listing struct {
	Header dvm.Header        `yaml:"header"`
	Data   []string          `yaml:"data"`
	Jumps  map[uint64]uint64 `yaml:"jumps,omitempty"`
	Code   []Instr           `yaml:"code"`
}

// NewListing disassembles f.
func NewListing(f *File) (*Listing, error) {
	code, err := Disassemble(f)
	if err != nil {
		return nil, err
	}
	return &Listing{Header: f.Header, Data: f.Data, Jumps: f.Jumps, Code: code}, nil
}

// AttachSource sets the source line of every instruction found in
// sourceMap, which maps code offsets to lines.
func (l *Listing) AttachSource(sourceMap map[uint64]int) {
	for i := range l.Code {
		l.Code[i].Line = sourceMap[l.Code[i].Offset]
	}
}

// YAML renders the listing as a YAML document.
func (l *Listing) YAML() ([]byte, error) {
	return yaml.Marshal(l)
}

// Table renders the listing as text tables.
func (l *Listing) Table() string {
	h := l.Header
	hdr := table.NewWriter()
	hdr.SetTitle("Header")
	hdr.AppendHeader(table.Row{"Field", "Value"})
	hdr.AppendRows([]table.Row{
		{"header size", h.HeaderSize},
		{"version", h.Version},
		{"min version", h.MinVersion},
		{"flags", fmt.Sprintf("0x%X", h.Flags)},
		{"data", sectionString(h.Data)},
		{"jumps", sectionString(h.Jumps)},
		{"code", sectionString(h.Code)},
	})

	data := table.NewWriter()
	data.SetTitle("Data")
	data.AppendHeader(table.Row{"Ref", "Text"})
	for i, s := range l.Data {
		data.AppendRow(table.Row{i + 1, strconv.Quote(s)})
	}

	code := table.NewWriter()
	code.SetTitle("Code")
	code.AppendHeader(table.Row{"Offset", "Line", "Op", "Mode", "Operands", "Comment"})
	for _, in := range l.Code {
		ops := ""
		for i, v := range in.Operands {
			if i > 0 {
				ops += " "
			}
			ops += fmt.Sprintf("0x%016X", v)
		}
		line := ""
		if in.Line > 0 {
			line = strconv.Itoa(in.Line)
		}
		code.AppendRow(table.Row{fmt.Sprintf("%04X", in.Offset), line, in.Op, in.Mode, ops, in.Comment})
	}

	out := hdr.Render() + "\n" + data.Render() + "\n"
	if len(l.Jumps) > 0 {
		jumps := table.NewWriter()
		jumps.SetTitle("Jumps")
		jumps.AppendHeader(table.Row{"Label", "Target"})
		for _, k := range sortedKeys(l.Jumps) {
			jumps.AppendRow(table.Row{k, l.Jumps[k]})
		}
		out += jumps.Render() + "\n"
	}
	return out + code.Render() + "\n"
}

func sectionString(s dvm.Section) string {
	return fmt.Sprintf("[%d, %d) size %d", s.Start, s.Offset(), s.Size)
}
