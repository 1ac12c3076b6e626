// Package emu provides functional IMPS emulation.
package emu

import (
	"fmt"
	"io"
	"os"

	"github.com/sarchlab/impsim/insts"
	"github.com/sarchlab/impsim/loader"
)

// StepResult represents the result of executing a single instruction.
type StepResult struct {
	// Exited is true if the program terminated (via the exit syscall).
	Exited bool

	// ExitCode is the exit status if Exited is true.
	ExitCode int

	// Err is set if a fault occurred during execution. The emulator never
	// prints; the caller decides how to report the fault.
	Err error
}

// Emulator executes IMPS programs functionally. One emulator owns one
// loaded program: the program text is immutable while the data segment,
// registers, and virtual filesystem evolve as it runs.
type Emulator struct {
	program *loader.Program

	regFile        *RegFile
	memory         *Memory
	fs             *FileSystem
	decoder        *insts.Decoder
	syscallHandler SyscallHandler

	// Execution units
	alu        *ALU
	lsu        *LoadStoreUnit
	branchUnit *BranchUnit

	// Tracing
	tracing    bool
	traceLines LineSource
	tracer     *Tracer

	// I/O
	stdin  io.Reader
	stdout io.Writer

	// Execution state
	instructionCount uint64
	maxInstructions  uint64 // 0 means no limit
}

// EmulatorOption is a functional option for configuring the Emulator.
type EmulatorOption func(*Emulator)

// WithStdout sets a custom stdout writer. Program output and trace output
// both go there.
func WithStdout(w io.Writer) EmulatorOption {
	return func(e *Emulator) {
		e.stdout = w
	}
}

// WithStdin sets the reader backing the read-character syscall. Without
// it, reads see end of input.
func WithStdin(r io.Reader) EmulatorOption {
	return func(e *Emulator) {
		e.stdin = r
	}
}

// WithSyscallHandler sets a custom syscall handler.
func WithSyscallHandler(handler SyscallHandler) EmulatorOption {
	return func(e *Emulator) {
		e.syscallHandler = handler
	}
}

// WithTrace enables per-instruction tracing against the given source
// listing. A nil lines still traces register changes.
func WithTrace(lines LineSource) EmulatorOption {
	return func(e *Emulator) {
		e.tracing = true
		e.traceLines = lines
	}
}

// WithMaxInstructions sets the maximum number of instructions to execute.
// A value of 0 means no limit.
func WithMaxInstructions(max uint64) EmulatorOption {
	return func(e *Emulator) {
		e.maxInstructions = max
	}
}

// NewEmulator creates an emulator for the given program. The data segment
// is seeded with a copy of the program's data, so the program value stays
// untouched, and the PC starts at the image's entry point.
func NewEmulator(program *loader.Program, opts ...EmulatorOption) *Emulator {
	regFile := &RegFile{PC: program.EntryPoint}
	memory := NewMemory(program.Data)
	fs := NewFileSystem(memory)

	e := &Emulator{
		program: program,
		regFile: regFile,
		memory:  memory,
		fs:      fs,
		decoder: insts.NewDecoder(),
		stdout:  os.Stdout,
	}

	// Apply options first (may set stdin/stdout)
	for _, opt := range opts {
		opt(e)
	}

	// Create execution units
	e.alu = NewALU(regFile)
	e.lsu = NewLoadStoreUnit(regFile, memory)
	e.branchUnit = NewBranchUnit(regFile)

	if e.tracing {
		e.tracer = NewTracer(regFile, e.traceLines, e.stdout)
	}

	// If no syscall handler was provided, create a default one
	if e.syscallHandler == nil {
		e.syscallHandler = NewDefaultSyscallHandler(regFile, memory, fs, e.stdin, e.stdout)
	}

	return e
}

// RegFile returns the emulator's register file.
func (e *Emulator) RegFile() *RegFile {
	return e.regFile
}

// Memory returns the emulator's data segment.
func (e *Emulator) Memory() *Memory {
	return e.memory
}

// FileSystem returns the emulator's virtual filesystem.
func (e *Emulator) FileSystem() *FileSystem {
	return e.fs
}

// InstructionCount returns the number of instructions executed.
func (e *Emulator) InstructionCount() uint64 {
	return e.instructionCount
}

// Step executes a single instruction.
// Returns a StepResult indicating whether execution should continue.
func (e *Emulator) Step() StepResult {
	// Check instruction limit before executing
	if e.maxInstructions > 0 && e.instructionCount >= e.maxInstructions {
		return StepResult{
			Err: fmt.Errorf("max instructions reached"),
		}
	}

	// 1. Fetch: the PC indexes whole instructions in the program text
	if e.regFile.PC >= uint32(len(e.program.Instructions)) {
		return StepResult{Err: ErrFetchPastEnd}
	}
	word := e.program.Instructions[e.regFile.PC]

	// 2. Decode
	inst := e.decoder.Decode(word)

	if e.tracer != nil {
		e.tracer.BeforeExecute(e.program.DebugOffsets[e.regFile.PC])
	}

	// 3. Execute
	result := e.execute(inst)

	if e.tracer != nil && !result.Exited && result.Err == nil {
		e.tracer.AfterExecute()
	}

	// Increment instruction count
	e.instructionCount++

	return result
}

// Run executes instructions until the program exits or a fault occurs.
// The returned result is the terminal one: either Exited is set or Err is
// non-nil.
func (e *Emulator) Run() StepResult {
	for {
		result := e.Step()
		if result.Exited || result.Err != nil {
			return result
		}
	}
}

// execute dispatches and executes a decoded instruction.
func (e *Emulator) execute(inst *insts.Instruction) StepResult {
	if inst.Op == insts.OpUnknown {
		return StepResult{Err: &UnknownInstructionError{Word: inst.Word}}
	}

	// Handle SYSCALL separately: it owns the PC and may end the run
	if inst.Op == insts.OpSYSCALL {
		return e.executeSyscall()
	}

	var err error
	switch inst.Format {
	case insts.FormatArithImm:
		err = e.executeArithImm(inst)
	case insts.FormatArithReg:
		err = e.executeArithReg(inst)
	case insts.FormatBranch:
		e.executeBranch(inst)
		return StepResult{} // PC already updated by branch
	case insts.FormatMemory:
		err = e.executeMemory(inst)
	}

	if err != nil {
		return StepResult{Err: err}
	}

	// Advance to the next instruction (branches manage the PC themselves)
	e.regFile.PC++

	return StepResult{}
}

// executeSyscall handles the SYSCALL instruction. The PC advances only
// when the program keeps running: exit leaves it on the syscall, and a
// fault freezes it where the fault happened.
func (e *Emulator) executeSyscall() StepResult {
	result := e.syscallHandler.Handle()
	if result.Exited || result.Err != nil {
		return StepResult{
			Exited:   result.Exited,
			ExitCode: result.ExitCode,
			Err:      result.Err,
		}
	}

	e.regFile.PC++
	return StepResult{}
}

// executeArithImm executes immediate arithmetic instructions.
func (e *Emulator) executeArithImm(inst *insts.Instruction) error {
	switch inst.Op {
	case insts.OpADDI:
		return e.alu.ADDI(inst.Rt, inst.Rs, inst.SignedImm)
	case insts.OpADDIU:
		e.alu.ADDIU(inst.Rt, inst.Rs, inst.SignedImm)
	case insts.OpORI:
		e.alu.ORI(inst.Rt, inst.Rs, inst.Imm)
	case insts.OpLUI:
		e.alu.LUI(inst.Rt, inst.Imm)
	}
	return nil
}

// executeArithReg executes register arithmetic instructions.
func (e *Emulator) executeArithReg(inst *insts.Instruction) error {
	switch inst.Op {
	case insts.OpADD:
		return e.alu.ADD(inst.Rd, inst.Rs, inst.Rt)
	case insts.OpADDU:
		e.alu.ADDU(inst.Rd, inst.Rs, inst.Rt)
	case insts.OpMUL:
		e.alu.MUL(inst.Rd, inst.Rs, inst.Rt)
	case insts.OpSLT:
		e.alu.SLT(inst.Rd, inst.Rs, inst.Rt)
	case insts.OpCLO:
		e.alu.CLO(inst.Rd, inst.Rs)
	case insts.OpCLZ:
		e.alu.CLZ(inst.Rd, inst.Rs)
	}
	return nil
}

// executeBranch executes branch instructions.
func (e *Emulator) executeBranch(inst *insts.Instruction) {
	switch inst.Op {
	case insts.OpBEQ:
		e.branchUnit.BEQ(inst.Rs, inst.Rt, inst.SignedImm)
	case insts.OpBNE:
		e.branchUnit.BNE(inst.Rs, inst.Rt, inst.SignedImm)
	}
}

// executeMemory executes load and store instructions.
func (e *Emulator) executeMemory(inst *insts.Instruction) error {
	switch inst.Op {
	case insts.OpLB:
		return e.lsu.LB(inst.Rt, inst.Rs, inst.SignedImm)
	case insts.OpLH:
		return e.lsu.LH(inst.Rt, inst.Rs, inst.SignedImm)
	case insts.OpLW:
		return e.lsu.LW(inst.Rt, inst.Rs, inst.SignedImm)
	case insts.OpSB:
		return e.lsu.SB(inst.Rt, inst.Rs, inst.SignedImm)
	case insts.OpSH:
		return e.lsu.SH(inst.Rt, inst.Rs, inst.SignedImm)
	case insts.OpSW:
		return e.lsu.SW(inst.Rt, inst.Rs, inst.SignedImm)
	}
	return nil
}
