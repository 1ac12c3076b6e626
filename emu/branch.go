// Package emu provides functional IMPS emulation.
package emu

// BranchUnit implements IMPS branch operations. Branch offsets are signed
// deltas in whole instructions, applied to the PC directly: a taken branch
// with offset 1 and a fall-through land on the same instruction.
type BranchUnit struct {
	regFile *RegFile
}

// NewBranchUnit creates a new BranchUnit connected to the given register file.
func NewBranchUnit(regFile *RegFile) *BranchUnit {
	return &BranchUnit{regFile: regFile}
}

// BEQ branches by offset when rs equals rt; otherwise the PC advances to
// the next instruction.
func (b *BranchUnit) BEQ(rs, rt uint8, offset int32) {
	b.branch(b.regFile.ReadReg(rs) == b.regFile.ReadReg(rt), offset)
}

// BNE branches by offset when rs differs from rt; otherwise the PC
// advances to the next instruction.
func (b *BranchUnit) BNE(rs, rt uint8, offset int32) {
	b.branch(b.regFile.ReadReg(rs) != b.regFile.ReadReg(rt), offset)
}

func (b *BranchUnit) branch(taken bool, offset int32) {
	if taken {
		b.regFile.PC += uint32(offset)
	} else {
		b.regFile.PC++
	}
}
