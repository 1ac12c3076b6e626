// Package emu provides functional IMPS emulation.
package emu

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sarchlab/impsim/insts"
)

// LineSource resolves a debug byte offset to a line of the companion
// source listing.
type LineSource interface {
	// Line returns the listing text starting at offset, up to but not
	// including the next newline. It reports false when the offset lies
	// outside the listing; an offset exactly at the end yields an empty
	// line.
	Line(offset uint32) (string, bool)
}

// FileLineSource serves listing lines from an open file.
type FileLineSource struct {
	file *os.File
	size int64
}

// NewFileLineSource opens the listing at path.
func NewFileLineSource(path string) (*FileLineSource, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, err
	}

	return &FileLineSource{file: file, size: info.Size()}, nil
}

// Line implements LineSource.
func (s *FileLineSource) Line(offset uint32) (string, bool) {
	if int64(offset) > s.size {
		return "", false
	}

	section := io.NewSectionReader(s.file, int64(offset), s.size-int64(offset))
	line, err := bufio.NewReader(section).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", false
	}
	return strings.TrimSuffix(line, "\n"), true
}

// Close releases the underlying file.
func (s *FileLineSource) Close() error {
	return s.file.Close()
}

// Tracer prints per-instruction diagnostics: the source listing line
// before an instruction executes, and the registers it changed after.
// Trace output shares the stream program output goes to, so the two
// interleave in execution order.
type Tracer struct {
	regFile *RegFile
	lines   LineSource
	out     io.Writer

	prev [NumRegs]uint32
}

// NewTracer creates a tracer over the given register file. lines may be
// nil, in which case only register changes are printed.
func NewTracer(regFile *RegFile, lines LineSource, out io.Writer) *Tracer {
	return &Tracer{
		regFile: regFile,
		lines:   lines,
		out:     out,
	}
}

// BeforeExecute prints the listing line for the instruction at the given
// debug offset and snapshots the registers for the change report.
func (t *Tracer) BeforeExecute(offset uint32) {
	if t.lines != nil {
		if line, ok := t.lines.Line(offset); ok {
			_, _ = fmt.Fprintln(t.out, line)
		}
	}
	t.prev = t.regFile.Snapshot()
}

// AfterExecute prints one line per register whose value changed since
// BeforeExecute. The PC is not reported.
func (t *Tracer) AfterExecute() {
	current := t.regFile.Snapshot()
	for i := range current {
		if current[i] != t.prev[i] {
			_, _ = fmt.Fprintf(t.out, "   %s: 0x%08x -> 0x%08x\n",
				insts.RegName(uint8(i)), t.prev[i], current[i])
		}
	}
}
