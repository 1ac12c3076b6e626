// Package emu provides functional IMPS emulation.
package emu

import (
	"math"
	"math/bits"
)

// ALU implements IMPS arithmetic and logic operations.
type ALU struct {
	regFile *RegFile
}

// NewALU creates a new ALU connected to the given register file.
func NewALU(regFile *RegFile) *ALU {
	return &ALU{regFile: regFile}
}

// ADDI performs overflow-checked addition with immediate: rt = rs + imm.
// Register 0 as destination makes the instruction a no-op: the overflow
// check is skipped along with the write.
func (a *ALU) ADDI(rt, rs uint8, imm int32) error {
	if rt == RegZero {
		return nil
	}

	op1 := a.regFile.ReadReg(rs)
	if err := checkAddOverflow(imm, int32(op1)); err != nil {
		return err
	}

	a.regFile.WriteReg(rt, op1+uint32(imm))
	return nil
}

// ADDIU performs wrapping addition with immediate: rt = rs + imm.
// Despite the name, the immediate is sign-extended.
func (a *ALU) ADDIU(rt, rs uint8, imm int32) {
	result := a.regFile.ReadReg(rs) + uint32(imm)
	a.regFile.WriteReg(rt, result)
}

// ORI performs bitwise OR with a zero-extended immediate: rt = rs | imm.
func (a *ALU) ORI(rt, rs uint8, imm uint16) {
	result := a.regFile.ReadReg(rs) | uint32(imm)
	a.regFile.WriteReg(rt, result)
}

// LUI loads the immediate into the upper halfword: rt = imm << 16.
func (a *ALU) LUI(rt uint8, imm uint16) {
	a.regFile.WriteReg(rt, uint32(imm)<<16)
}

// ADD performs overflow-checked addition: rd = rs + rt. As with ADDI,
// register 0 as destination skips both the check and the write.
func (a *ALU) ADD(rd, rs, rt uint8) error {
	if rd == RegZero {
		return nil
	}

	op1 := a.regFile.ReadReg(rt)
	op2 := a.regFile.ReadReg(rs)
	if err := checkAddOverflow(int32(op1), int32(op2)); err != nil {
		return err
	}

	a.regFile.WriteReg(rd, op1+op2)
	return nil
}

// ADDU performs wrapping addition: rd = rs + rt.
func (a *ALU) ADDU(rd, rs, rt uint8) {
	result := a.regFile.ReadReg(rs) + a.regFile.ReadReg(rt)
	a.regFile.WriteReg(rd, result)
}

// MUL performs multiplication, keeping the low 32 bits: rd = rs * rt.
func (a *ALU) MUL(rd, rs, rt uint8) {
	result := a.regFile.ReadReg(rs) * a.regFile.ReadReg(rt)
	a.regFile.WriteReg(rd, result)
}

// SLT performs a signed comparison: rd = 1 if rs < rt, else 0.
func (a *ALU) SLT(rd, rs, rt uint8) {
	var result uint32
	if int32(a.regFile.ReadReg(rs)) < int32(a.regFile.ReadReg(rt)) {
		result = 1
	}
	a.regFile.WriteReg(rd, result)
}

// CLO counts the leading one bits of rs into rd.
func (a *ALU) CLO(rd, rs uint8) {
	count := bits.LeadingZeros32(^a.regFile.ReadReg(rs))
	a.regFile.WriteReg(rd, uint32(count))
}

// CLZ counts the leading zero bits of rs into rd.
func (a *ALU) CLZ(rd, rs uint8) {
	count := bits.LeadingZeros32(a.regFile.ReadReg(rs))
	a.regFile.WriteReg(rd, uint32(count))
}

// checkAddOverflow reports ErrOverflow when a+b does not fit in a signed
// 32-bit integer.
func checkAddOverflow(a, b int32) error {
	if (a > 0 && b > math.MaxInt32-a) || (a < 0 && b < math.MinInt32-a) {
		return ErrOverflow
	}
	return nil
}
