// Package insts provides IMPS instruction definitions and decoding.
//
// This package implements decoding of IMPS machine code into structured
// instruction representations. It supports:
//   - Arithmetic (Immediate): ADDI, ADDIU, ORI, LUI
//   - Arithmetic (Register): ADD, ADDU, MUL, SLT, CLO, CLZ
//   - Branch instructions: BEQ, BNE
//   - Memory instructions: LB, LH, LW, SB, SH, SW
//   - SYSCALL
//
// Usage:
//
//	decoder := insts.NewDecoder()
//	inst := decoder.Decode(0x21080005) // addi $t0, $t0, 5
//	fmt.Printf("Op: %v, Rt: %d, Rs: %d, Imm: %d\n", inst.Op, inst.Rt, inst.Rs, inst.SignedImm)
package insts

import "fmt"

// regNames maps register numbers to their conventional MIPS names.
var regNames = [32]string{
	"zero", "at", "v0", "v1", "a0", "a1", "a2", "a3",
	"t0", "t1", "t2", "t3", "t4", "t5", "t6", "t7",
	"s0", "s1", "s2", "s3", "s4", "s5", "s6", "s7",
	"t8", "t9", "k0", "k1", "gp", "sp", "fp", "ra",
}

// RegName returns the display name of a register, e.g. "$t0".
func RegName(reg uint8) string {
	if int(reg) >= len(regNames) {
		return fmt.Sprintf("$%d", reg)
	}
	return "$" + regNames[reg]
}

var opMnemonics = [...]string{
	OpUnknown: "unknown",
	OpADDI:    "addi",
	OpADDIU:   "addiu",
	OpORI:     "ori",
	OpLUI:     "lui",
	OpADD:     "add",
	OpADDU:    "addu",
	OpMUL:     "mul",
	OpSLT:     "slt",
	OpCLO:     "clo",
	OpCLZ:     "clz",
	OpBEQ:     "beq",
	OpBNE:     "bne",
	OpLB:      "lb",
	OpLH:      "lh",
	OpLW:      "lw",
	OpSB:      "sb",
	OpSH:      "sh",
	OpSW:      "sw",
	OpSYSCALL: "syscall",
}

// String returns the assembly mnemonic of the operation.
func (o Op) String() string {
	if int(o) >= len(opMnemonics) {
		return "unknown"
	}
	return opMnemonics[o]
}

// String renders the instruction in assembly form.
func (i *Instruction) String() string {
	switch i.Format {
	case FormatArithImm:
		switch i.Op {
		case OpLUI:
			return fmt.Sprintf("%v %s, 0x%x", i.Op, RegName(i.Rt), i.Imm)
		case OpORI:
			return fmt.Sprintf("%v %s, %s, 0x%x",
				i.Op, RegName(i.Rt), RegName(i.Rs), i.Imm)
		default:
			return fmt.Sprintf("%v %s, %s, %d",
				i.Op, RegName(i.Rt), RegName(i.Rs), i.SignedImm)
		}
	case FormatArithReg:
		if i.Op == OpCLO || i.Op == OpCLZ {
			return fmt.Sprintf("%v %s, %s", i.Op, RegName(i.Rd), RegName(i.Rs))
		}
		return fmt.Sprintf("%v %s, %s, %s",
			i.Op, RegName(i.Rd), RegName(i.Rs), RegName(i.Rt))
	case FormatBranch:
		return fmt.Sprintf("%v %s, %s, %d",
			i.Op, RegName(i.Rs), RegName(i.Rt), i.SignedImm)
	case FormatMemory:
		return fmt.Sprintf("%v %s, %d(%s)",
			i.Op, RegName(i.Rt), i.SignedImm, RegName(i.Rs))
	case FormatSyscall:
		return "syscall"
	default:
		return fmt.Sprintf(".word 0x%08x", i.Word)
	}
}
