// Package compiler turns dialog scripts into dialog VM modules.
//
// Pipeline: source → Segment → Classify → asm.Assemble → module.Package
package compiler
