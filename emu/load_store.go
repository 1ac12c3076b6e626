// Package emu provides functional IMPS emulation.
package emu

// LoadStoreUnit implements IMPS load and store operations. Addresses are
// formed as base register plus sign-extended byte offset, with uint32
// wraparound, and validated by the memory before access. Loads to register
// 0 still validate and read; only the write is dropped.
type LoadStoreUnit struct {
	regFile *RegFile
	memory  *Memory
}

// NewLoadStoreUnit creates a new LoadStoreUnit connected to the given
// register file and memory.
func NewLoadStoreUnit(regFile *RegFile, memory *Memory) *LoadStoreUnit {
	return &LoadStoreUnit{
		regFile: regFile,
		memory:  memory,
	}
}

// LB loads a byte with sign extension: rt = sign_extend(mem[base + offset])
func (lsu *LoadStoreUnit) LB(rt, base uint8, offset int32) error {
	value, err := lsu.memory.Read8(lsu.addr(base, offset))
	if err != nil {
		return err
	}
	lsu.regFile.WriteReg(rt, uint32(int32(int8(value))))
	return nil
}

// LH loads a halfword with sign extension: rt = sign_extend(mem[base + offset])
func (lsu *LoadStoreUnit) LH(rt, base uint8, offset int32) error {
	value, err := lsu.memory.Read16(lsu.addr(base, offset))
	if err != nil {
		return err
	}
	lsu.regFile.WriteReg(rt, uint32(int32(int16(value))))
	return nil
}

// LW loads a word: rt = mem[base + offset]
func (lsu *LoadStoreUnit) LW(rt, base uint8, offset int32) error {
	value, err := lsu.memory.Read32(lsu.addr(base, offset))
	if err != nil {
		return err
	}
	lsu.regFile.WriteReg(rt, value)
	return nil
}

// SB stores the low byte: mem[base + offset] = rt[7:0]
func (lsu *LoadStoreUnit) SB(rt, base uint8, offset int32) error {
	value := uint8(lsu.regFile.ReadReg(rt))
	return lsu.memory.Write8(lsu.addr(base, offset), value)
}

// SH stores the low halfword: mem[base + offset] = rt[15:0]
func (lsu *LoadStoreUnit) SH(rt, base uint8, offset int32) error {
	value := uint16(lsu.regFile.ReadReg(rt))
	return lsu.memory.Write16(lsu.addr(base, offset), value)
}

// SW stores a word: mem[base + offset] = rt
func (lsu *LoadStoreUnit) SW(rt, base uint8, offset int32) error {
	value := lsu.regFile.ReadReg(rt)
	return lsu.memory.Write32(lsu.addr(base, offset), value)
}

func (lsu *LoadStoreUnit) addr(base uint8, offset int32) uint32 {
	return lsu.regFile.ReadReg(base) + uint32(offset)
}
