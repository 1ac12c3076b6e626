// Package emu provides functional IMPS emulation.
package emu

// NumRegs is the number of general-purpose registers.
const NumRegs = 32

// Register indices with conventional roles in the syscall interface.
const (
	// RegZero is hardwired to zero; writes to it are dropped.
	RegZero uint8 = 0
	// RegV0 selects the syscall and receives its result.
	RegV0 uint8 = 2
	// RegA0, RegA1, and RegA2 carry syscall arguments.
	RegA0 uint8 = 4
	RegA1 uint8 = 5
	RegA2 uint8 = 6
)

// RegFile represents the IMPS register file: 32 general-purpose registers
// and the program counter. The PC holds an instruction index into the
// program text, not a byte address.
type RegFile struct {
	regs [NumRegs]uint32

	// PC is the program counter.
	PC uint32
}

// ReadReg reads a register value. Register 0 always reads as 0.
func (r *RegFile) ReadReg(reg uint8) uint32 {
	if reg >= NumRegs {
		return 0 // invalid/sentinel register
	}
	return r.regs[reg]
}

// WriteReg writes a value to a register. Writes to register 0 are
// silently dropped, as are writes to out-of-range registers.
func (r *RegFile) WriteReg(reg uint8, value uint32) {
	if reg == RegZero || reg >= NumRegs {
		return
	}
	r.regs[reg] = value
}

// Snapshot returns a copy of all register values, for tracing diffs.
func (r *RegFile) Snapshot() [NumRegs]uint32 {
	return r.regs
}
