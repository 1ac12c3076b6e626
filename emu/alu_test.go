package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/impsim/emu"
)

var _ = Describe("ALU", func() {
	var (
		regFile *emu.RegFile
		alu     *emu.ALU
	)

	BeforeEach(func() {
		regFile = &emu.RegFile{}
		alu = emu.NewALU(regFile)
	})

	Describe("ADDI", func() {
		It("should add a positive immediate", func() {
			regFile.WriteReg(9, 10)

			Expect(alu.ADDI(8, 9, 5)).To(Succeed())
			Expect(regFile.ReadReg(8)).To(Equal(uint32(15)))
		})

		It("should add a negative immediate", func() {
			regFile.WriteReg(9, 10)

			Expect(alu.ADDI(8, 9, -15)).To(Succeed())
			Expect(regFile.ReadReg(8)).To(Equal(uint32(0xFFFFFFFB))) // -5
		})

		It("should report overflow past MaxInt32", func() {
			regFile.WriteReg(9, 0x7FFFFFFF)

			Expect(alu.ADDI(8, 9, 1)).To(MatchError(emu.ErrOverflow))
			Expect(regFile.ReadReg(8)).To(Equal(uint32(0)))
		})

		It("should report overflow past MinInt32", func() {
			regFile.WriteReg(9, 0x80000000)

			Expect(alu.ADDI(8, 9, -1)).To(MatchError(emu.ErrOverflow))
		})

		It("should treat a $zero destination as a no-op", func() {
			regFile.WriteReg(9, 0x7FFFFFFF)

			Expect(alu.ADDI(0, 9, 1)).To(Succeed())
			Expect(regFile.ReadReg(0)).To(Equal(uint32(0)))
		})
	})

	Describe("ADDIU", func() {
		It("should wrap instead of overflowing", func() {
			regFile.WriteReg(9, 0xFFFFFFFF)

			alu.ADDIU(8, 9, 1)

			Expect(regFile.ReadReg(8)).To(Equal(uint32(0)))
		})

		It("should sign-extend the immediate", func() {
			regFile.WriteReg(9, 10)

			alu.ADDIU(8, 9, -1)

			Expect(regFile.ReadReg(8)).To(Equal(uint32(9)))
		})
	})

	Describe("ORI", func() {
		It("should OR a zero-extended immediate", func() {
			regFile.WriteReg(9, 0xFFFF0000)

			alu.ORI(8, 9, 0x8001)

			Expect(regFile.ReadReg(8)).To(Equal(uint32(0xFFFF8001)))
		})

		It("should load a small constant from $zero", func() {
			alu.ORI(8, 0, 42)

			Expect(regFile.ReadReg(8)).To(Equal(uint32(42)))
		})
	})

	Describe("LUI", func() {
		It("should place the immediate in the upper halfword", func() {
			alu.LUI(8, 0x1001)

			Expect(regFile.ReadReg(8)).To(Equal(uint32(0x10010000)))
		})

		It("should clear the lower halfword", func() {
			regFile.WriteReg(8, 0xFFFFFFFF)

			alu.LUI(8, 1)

			Expect(regFile.ReadReg(8)).To(Equal(uint32(0x00010000)))
		})
	})

	Describe("ADD", func() {
		It("should add two registers", func() {
			regFile.WriteReg(8, 10)
			regFile.WriteReg(9, 5)

			Expect(alu.ADD(10, 8, 9)).To(Succeed())
			Expect(regFile.ReadReg(10)).To(Equal(uint32(15)))
		})

		It("should report overflow of two positive operands", func() {
			regFile.WriteReg(8, 0x7FFFFFFF)
			regFile.WriteReg(9, 1)

			Expect(alu.ADD(10, 8, 9)).To(MatchError(emu.ErrOverflow))
		})

		It("should report overflow of two negative operands", func() {
			regFile.WriteReg(8, 0x80000000)
			regFile.WriteReg(9, 0xFFFFFFFF) // -1

			Expect(alu.ADD(10, 8, 9)).To(MatchError(emu.ErrOverflow))
		})

		It("should not overflow on mixed signs", func() {
			regFile.WriteReg(8, 0x7FFFFFFF)
			regFile.WriteReg(9, 0x80000000)

			Expect(alu.ADD(10, 8, 9)).To(Succeed())
			Expect(regFile.ReadReg(10)).To(Equal(uint32(0xFFFFFFFF)))
		})

		It("should treat a $zero destination as a no-op", func() {
			regFile.WriteReg(8, 0x7FFFFFFF)
			regFile.WriteReg(9, 1)

			Expect(alu.ADD(0, 8, 9)).To(Succeed())
			Expect(regFile.ReadReg(0)).To(Equal(uint32(0)))
		})
	})

	Describe("ADDU", func() {
		It("should wrap instead of overflowing", func() {
			regFile.WriteReg(8, 0x80000000)
			regFile.WriteReg(9, 0x80000000)

			alu.ADDU(10, 8, 9)

			Expect(regFile.ReadReg(10)).To(Equal(uint32(0)))
		})
	})

	Describe("MUL", func() {
		It("should multiply two registers", func() {
			regFile.WriteReg(8, 6)
			regFile.WriteReg(9, 7)

			alu.MUL(10, 8, 9)

			Expect(regFile.ReadReg(10)).To(Equal(uint32(42)))
		})

		It("should keep the low 32 bits of a wide product", func() {
			regFile.WriteReg(8, 0x10000)
			regFile.WriteReg(9, 0x10001)

			alu.MUL(10, 8, 9)

			Expect(regFile.ReadReg(10)).To(Equal(uint32(0x00010000)))
		})

		It("should handle negative operands through wrapping", func() {
			regFile.WriteReg(8, 0xFFFFFFFF) // -1
			regFile.WriteReg(9, 2)

			alu.MUL(10, 8, 9)

			Expect(regFile.ReadReg(10)).To(Equal(uint32(0xFFFFFFFE))) // -2
		})
	})

	Describe("SLT", func() {
		It("should compare as signed values", func() {
			regFile.WriteReg(8, 0xFFFFFFFF) // -1
			regFile.WriteReg(9, 1)

			alu.SLT(10, 8, 9)
			Expect(regFile.ReadReg(10)).To(Equal(uint32(1)))

			alu.SLT(10, 9, 8)
			Expect(regFile.ReadReg(10)).To(Equal(uint32(0)))
		})

		It("should report 0 for equal values", func() {
			regFile.WriteReg(8, 5)
			regFile.WriteReg(9, 5)
			regFile.WriteReg(10, 99)

			alu.SLT(10, 8, 9)

			Expect(regFile.ReadReg(10)).To(Equal(uint32(0)))
		})
	})

	Describe("CLO", func() {
		It("should count leading ones", func() {
			cases := map[uint32]uint32{
				0xFFFFFFFF: 32,
				0xFFFFFFFE: 31,
				0xF0000000: 4,
				0x80000000: 1,
				0x7FFFFFFF: 0,
				0:          0,
			}
			for value, want := range cases {
				regFile.WriteReg(8, value)
				alu.CLO(10, 8)
				Expect(regFile.ReadReg(10)).To(Equal(want),
					"CLO(0x%08x)", value)
			}
		})
	})

	Describe("CLZ", func() {
		It("should count leading zeros", func() {
			cases := map[uint32]uint32{
				0:          32,
				1:          31,
				0x0000FFFF: 16,
				0x80000000: 0,
				0xFFFFFFFF: 0,
			}
			for value, want := range cases {
				regFile.WriteReg(8, value)
				alu.CLZ(10, 8)
				Expect(regFile.ReadReg(10)).To(Equal(want),
					"CLZ(0x%08x)", value)
			}
		})
	})
})
