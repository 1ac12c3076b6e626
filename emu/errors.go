// Package emu provides functional IMPS emulation.
package emu

import (
	"errors"
	"fmt"
)

// Fatal execution faults. Any of these ends the run; they are never
// reported to the emulated program.
var (
	// ErrFetchPastEnd reports a fetch from an instruction index at or past
	// the end of the program text.
	ErrFetchPastEnd = errors.New("execution past the end of instructions")

	// ErrOverflow reports a signed overflow in ADD or ADDI.
	ErrOverflow = errors.New("addition would overflow")

	// ErrBadSyscall reports a syscall number the handler does not know.
	ErrBadSyscall = errors.New("bad syscall number")
)

// AddressError reports a memory access outside the data segment or not
// aligned to its width.
type AddressError struct {
	Addr  uint32
	Width int
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("bad address for %s access: 0x%08x", widthName(e.Width), e.Addr)
}

func widthName(width int) string {
	switch width {
	case 1:
		return "byte"
	case 2:
		return "half"
	default:
		return "word"
	}
}

// UnknownInstructionError reports a word that decodes to no IMPS
// instruction.
type UnknownInstructionError struct {
	Word uint32
}

func (e *UnknownInstructionError) Error() string {
	return fmt.Sprintf("bad instruction 0x%08x", e.Word)
}
