// Package insts provides IMPS instruction definitions and decoding.
package insts

// Op represents an IMPS operation.
type Op uint16

// IMPS operations.
const (
	OpUnknown Op = iota
	OpADDI
	OpADDIU
	OpORI
	OpLUI
	OpADD
	OpADDU
	OpMUL
	OpSLT
	OpCLO
	OpCLZ
	OpBEQ
	OpBNE
	OpLB
	OpLH
	OpLW
	OpSB
	OpSH
	OpSW
	OpSYSCALL
)

// Format represents an instruction encoding format.
type Format uint8

// Instruction formats.
const (
	FormatUnknown  Format = iota
	FormatArithImm // Arithmetic with 16-bit immediate
	FormatArithReg // Arithmetic on registers (funct-selected)
	FormatBranch   // Conditional branch with instruction-index offset
	FormatMemory   // Load/store with base register and byte offset
	FormatSyscall  // System call
)

// Primary opcode values (bits [31:26]).
const (
	opcodeSpecial = 0x00
	opcodeBEQ     = 0x04
	opcodeBNE     = 0x05
	opcodeADDI    = 0x08
	opcodeADDIU   = 0x09
	opcodeORI     = 0x0D
	opcodeLUI     = 0x0F
	opcodeMUL     = 0x1C
	opcodeLB      = 0x20
	opcodeLH      = 0x21
	opcodeLW      = 0x23
	opcodeSB      = 0x28
	opcodeSH      = 0x29
	opcodeSW      = 0x2B
)

// Function codes for opcode 0x00 (bits [5:0]).
const (
	functSYSCALL = 0x0C
	functCLZ     = 0x10
	functCLO     = 0x11
	functADD     = 0x20
	functADDU    = 0x21
	functSLT     = 0x2A
)

// Instruction represents a decoded IMPS instruction.
type Instruction struct {
	Op     Op     // Operation
	Format Format // Encoding format

	// Word is the raw 32-bit encoding the instruction was decoded from.
	Word uint32

	Opcode uint8 // Primary opcode, bits [31:26]
	Rs     uint8 // Source / base register, bits [25:21]
	Rt     uint8 // Target register, bits [20:16]
	Rd     uint8 // Destination register, bits [15:11]
	Funct  uint8 // Function code, bits [5:0] (opcode 0x00 only)

	// Imm is the raw 16-bit immediate; SignedImm is the same field
	// sign-extended from bit 15. Branches and memory accesses use the
	// signed form, ORI and LUI use the raw form.
	Imm       uint16
	SignedImm int32
}

// Decoder decodes IMPS machine code into instructions.
type Decoder struct{}

// NewDecoder creates a new IMPS instruction decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode decodes a 32-bit IMPS instruction word. Words that match no IMPS
// encoding decode to an Instruction with OpUnknown.
func (d *Decoder) Decode(word uint32) *Instruction {
	inst := &Instruction{
		Op:     OpUnknown,
		Format: FormatUnknown,
		Word:   word,

		Opcode:    uint8(word >> 26 & 0x3F), // bits [31:26]
		Rs:        uint8(word >> 21 & 0x1F), // bits [25:21]
		Rt:        uint8(word >> 16 & 0x1F), // bits [20:16]
		Rd:        uint8(word >> 11 & 0x1F), // bits [15:11]
		Imm:       uint16(word),             // bits [15:0]
		SignedImm: int32(int16(word)),
	}

	switch inst.Opcode {
	case opcodeSpecial:
		d.decodeSpecial(word, inst)
	case opcodeADDI, opcodeADDIU, opcodeORI, opcodeLUI:
		d.decodeArithImm(inst)
	case opcodeMUL:
		// Opcode 0x1c selects MUL outright; the funct field is not inspected.
		inst.Op = OpMUL
		inst.Format = FormatArithReg
	case opcodeBEQ, opcodeBNE:
		d.decodeBranch(inst)
	default:
		d.decodeMemory(inst)
	}

	return inst
}

// decodeSpecial decodes opcode 0x00 instructions, selected by funct.
func (d *Decoder) decodeSpecial(word uint32, inst *Instruction) {
	inst.Funct = uint8(word & 0x3F) // bits [5:0]

	switch inst.Funct {
	case functSYSCALL:
		inst.Op = OpSYSCALL
		inst.Format = FormatSyscall
	case functCLZ:
		inst.Op = OpCLZ
		inst.Format = FormatArithReg
	case functCLO:
		inst.Op = OpCLO
		inst.Format = FormatArithReg
	case functADD:
		inst.Op = OpADD
		inst.Format = FormatArithReg
	case functADDU:
		inst.Op = OpADDU
		inst.Format = FormatArithReg
	case functSLT:
		inst.Op = OpSLT
		inst.Format = FormatArithReg
	}
}

// decodeArithImm decodes ADDI, ADDIU, ORI, and LUI.
func (d *Decoder) decodeArithImm(inst *Instruction) {
	inst.Format = FormatArithImm

	switch inst.Opcode {
	case opcodeADDI:
		inst.Op = OpADDI
	case opcodeADDIU:
		inst.Op = OpADDIU
	case opcodeORI:
		inst.Op = OpORI
	case opcodeLUI:
		inst.Op = OpLUI
	}
}

// decodeBranch decodes BEQ and BNE. The immediate is a signed offset in
// whole instructions, not bytes.
func (d *Decoder) decodeBranch(inst *Instruction) {
	inst.Format = FormatBranch

	if inst.Opcode == opcodeBEQ {
		inst.Op = OpBEQ
	} else {
		inst.Op = OpBNE
	}
}

// decodeMemory decodes the load/store opcode group. Rs is the base register
// and the immediate is a signed byte offset.
func (d *Decoder) decodeMemory(inst *Instruction) {
	switch inst.Opcode {
	case opcodeLB:
		inst.Op = OpLB
	case opcodeLH:
		inst.Op = OpLH
	case opcodeLW:
		inst.Op = OpLW
	case opcodeSB:
		inst.Op = OpSB
	case opcodeSH:
		inst.Op = OpSH
	case opcodeSW:
		inst.Op = OpSW
	default:
		return
	}
	inst.Format = FormatMemory
}
