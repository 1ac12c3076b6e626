// Package emu provides functional IMPS emulation.
package emu

import (
	"fmt"
	"io"
)

// IMPS syscall numbers, selected by $v0.
const (
	SyscallPrintInt    uint32 = 1  // print $a0 as a signed integer
	SyscallPrintString uint32 = 4  // print the zero-terminated string at $a0
	SyscallExit        uint32 = 10 // stop execution
	SyscallPrintChar   uint32 = 11 // print the low byte of $a0
	SyscallReadChar    uint32 = 12 // read one byte of input into $v0
	SyscallOpenFile    uint32 = 13 // open the name at $a0 with mode $a1
	SyscallReadFile    uint32 = 14 // read $a2 bytes from fd $a0 into $a1
	SyscallWriteFile   uint32 = 15 // write $a2 bytes at $a1 to fd $a0
	SyscallCloseFile   uint32 = 16 // close fd $a0
)

// SyscallResult represents the result of a syscall execution.
type SyscallResult struct {
	// Exited is true if the syscall caused program termination.
	Exited bool

	// ExitCode is the exit status if Exited is true. The IMPS exit
	// syscall carries no status, so it is always 0.
	ExitCode int

	// Err is set when the syscall faulted: an unknown syscall number, or
	// a bad address reached through a pointer argument. Faults end the
	// run; they are distinct from the in-band failures a program sees as
	// FailResult in $v0.
	Err error
}

// SyscallHandler is the interface for handling IMPS syscalls.
type SyscallHandler interface {
	// Handle executes the syscall indicated by the register file state.
	// IMPS syscall convention:
	//   - Syscall number in $v0
	//   - Arguments in $a0-$a2
	//   - Result in $v0
	Handle() SyscallResult
}

// DefaultSyscallHandler provides the standard IMPS syscall behavior:
// console I/O on the configured streams and file I/O against the virtual
// filesystem.
type DefaultSyscallHandler struct {
	regFile *RegFile
	memory  *Memory
	fs      *FileSystem
	stdin   io.Reader
	stdout  io.Writer
}

// NewDefaultSyscallHandler creates a default syscall handler. A nil stdin
// behaves as an exhausted input stream.
func NewDefaultSyscallHandler(
	regFile *RegFile,
	memory *Memory,
	fs *FileSystem,
	stdin io.Reader,
	stdout io.Writer,
) *DefaultSyscallHandler {
	return &DefaultSyscallHandler{
		regFile: regFile,
		memory:  memory,
		fs:      fs,
		stdin:   stdin,
		stdout:  stdout,
	}
}

// Handle executes the syscall selected by $v0.
func (h *DefaultSyscallHandler) Handle() SyscallResult {
	switch h.regFile.ReadReg(RegV0) {
	case SyscallPrintInt:
		h.handlePrintInt()
	case SyscallPrintString:
		return SyscallResult{Err: h.handlePrintString()}
	case SyscallExit:
		return SyscallResult{Exited: true}
	case SyscallPrintChar:
		h.handlePrintChar()
	case SyscallReadChar:
		h.handleReadChar()
	case SyscallOpenFile:
		return SyscallResult{Err: h.handleOpenFile()}
	case SyscallReadFile:
		return SyscallResult{Err: h.handleReadFile()}
	case SyscallWriteFile:
		return SyscallResult{Err: h.handleWriteFile()}
	case SyscallCloseFile:
		h.handleCloseFile()
	default:
		return SyscallResult{Err: ErrBadSyscall}
	}
	return SyscallResult{}
}

// handlePrintInt prints $a0 as a signed decimal integer (1).
func (h *DefaultSyscallHandler) handlePrintInt() {
	_, _ = fmt.Fprintf(h.stdout, "%d", int32(h.regFile.ReadReg(RegA0)))
}

// handlePrintString prints the zero-terminated string at $a0 (4). Every
// byte's address is validated before the byte is read, so a string that
// reaches the segment edge without a terminator faults there.
func (h *DefaultSyscallHandler) handlePrintString() error {
	addr := h.regFile.ReadReg(RegA0)
	for {
		value, err := h.memory.Read8(addr)
		if err != nil {
			return err
		}
		if value == 0 {
			return nil
		}
		_, _ = h.stdout.Write([]byte{value})
		addr++
	}
}

// handlePrintChar prints the low byte of $a0 (11).
func (h *DefaultSyscallHandler) handlePrintChar() {
	_, _ = h.stdout.Write([]byte{byte(h.regFile.ReadReg(RegA0))})
}

// handleReadChar reads one byte of input into $v0 (12). End of input
// reads as FailResult.
func (h *DefaultSyscallHandler) handleReadChar() {
	var buf [1]byte
	if h.stdin != nil {
		if n, _ := h.stdin.Read(buf[:]); n == 1 {
			h.regFile.WriteReg(RegV0, uint32(buf[0]))
			return
		}
	}
	h.regFile.WriteReg(RegV0, FailResult)
}

// handleOpenFile opens the file named at $a0 with mode $a1 (13).
func (h *DefaultSyscallHandler) handleOpenFile() error {
	name, err := h.readString(h.regFile.ReadReg(RegA0))
	if err != nil {
		return err
	}

	mode := h.regFile.ReadReg(RegA1)
	h.regFile.WriteReg(RegV0, h.fs.Open(name, mode))
	return nil
}

// handleReadFile reads up to $a2 bytes from descriptor $a0 into memory at
// $a1 (14). The count is signed; negative counts read nothing.
func (h *DefaultSyscallHandler) handleReadFile() error {
	fd := h.regFile.ReadReg(RegA0)
	dest := h.regFile.ReadReg(RegA1)
	count := int32(h.regFile.ReadReg(RegA2))

	result, err := h.fs.Read(fd, dest, count)
	if err != nil {
		return err
	}
	h.regFile.WriteReg(RegV0, result)
	return nil
}

// handleWriteFile writes up to $a2 bytes from memory at $a1 to descriptor
// $a0 (15). The count is signed; negative counts write nothing.
func (h *DefaultSyscallHandler) handleWriteFile() error {
	fd := h.regFile.ReadReg(RegA0)
	src := h.regFile.ReadReg(RegA1)
	count := int32(h.regFile.ReadReg(RegA2))

	result, err := h.fs.Write(fd, src, count)
	if err != nil {
		return err
	}
	h.regFile.WriteReg(RegV0, result)
	return nil
}

// handleCloseFile closes descriptor $a0 (16).
func (h *DefaultSyscallHandler) handleCloseFile() {
	h.regFile.WriteReg(RegV0, h.fs.Close(h.regFile.ReadReg(RegA0)))
}

// readString scans the zero-terminated string at addr, validating every
// byte's address before reading it.
func (h *DefaultSyscallHandler) readString(addr uint32) (string, error) {
	var name []byte
	for {
		value, err := h.memory.Read8(addr)
		if err != nil {
			return "", err
		}
		if value == 0 {
			return string(name), nil
		}
		name = append(name, value)
		addr++
	}
}
