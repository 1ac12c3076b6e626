package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/impsim/emu"
)

var _ = Describe("Memory", func() {
	var memory *emu.Memory

	BeforeEach(func() {
		memory = emu.NewMemory(make([]byte, 16))
	})

	Describe("Validate", func() {
		It("should accept addresses inside the segment", func() {
			_, err := memory.Validate(emu.MemoryBase, 4)
			Expect(err).To(BeNil())

			_, err = memory.Validate(emu.MemoryBase+12, 4)
			Expect(err).To(BeNil())
		})

		It("should reject addresses below the segment", func() {
			_, err := memory.Validate(emu.MemoryBase-4, 4)
			Expect(err).To(HaveOccurred())

			_, err = memory.Validate(0, 1)
			Expect(err).To(HaveOccurred())
		})

		It("should reject addresses past the loose upper bound", func() {
			// For word access the bound is size+3; the first aligned
			// address past it is size+4.
			_, err := memory.Validate(emu.MemoryBase+16+4, 4)
			Expect(err).To(HaveOccurred())

			_, err = memory.Validate(emu.MemoryBase+16, 1)
			Expect(err).To(HaveOccurred())
		})

		It("should reject misaligned addresses", func() {
			_, err := memory.Validate(emu.MemoryBase+1, 2)
			Expect(err).To(HaveOccurred())

			_, err = memory.Validate(emu.MemoryBase+2, 4)
			Expect(err).To(HaveOccurred())
		})

		It("should allow byte access at any offset", func() {
			for offset := uint32(0); offset < 16; offset++ {
				_, err := memory.Validate(emu.MemoryBase+offset, 1)
				Expect(err).To(BeNil())
			}
		})

		It("should describe the failed access in the error", func() {
			_, err := memory.Validate(0x1000, 4)
			Expect(err.Error()).To(Equal("bad address for word access: 0x00001000"))

			_, err = memory.Validate(0x1000, 2)
			Expect(err.Error()).To(Equal("bad address for half access: 0x00001000"))

			_, err = memory.Validate(0x1001, 1)
			Expect(err.Error()).To(Equal("bad address for byte access: 0x00001001"))
		})
	})

	Describe("reads and writes", func() {
		It("should round-trip a byte", func() {
			Expect(memory.Write8(emu.MemoryBase+5, 0xAB)).To(Succeed())
			Expect(memory.Read8(emu.MemoryBase + 5)).To(Equal(uint8(0xAB)))
		})

		It("should round-trip a halfword", func() {
			Expect(memory.Write16(emu.MemoryBase+6, 0xBEEF)).To(Succeed())
			Expect(memory.Read16(emu.MemoryBase + 6)).To(Equal(uint16(0xBEEF)))
		})

		It("should round-trip a word", func() {
			Expect(memory.Write32(emu.MemoryBase+8, 0xDEADBEEF)).To(Succeed())
			Expect(memory.Read32(emu.MemoryBase + 8)).To(Equal(uint32(0xDEADBEEF)))
		})

		It("should store words little-endian", func() {
			Expect(memory.Write32(emu.MemoryBase, 0x12345678)).To(Succeed())

			Expect(memory.Read8(emu.MemoryBase + 0)).To(Equal(uint8(0x78)))
			Expect(memory.Read8(emu.MemoryBase + 1)).To(Equal(uint8(0x56)))
			Expect(memory.Read8(emu.MemoryBase + 2)).To(Equal(uint8(0x34)))
			Expect(memory.Read8(emu.MemoryBase + 3)).To(Equal(uint8(0x12)))
		})

		It("should see the seeded contents", func() {
			memory = emu.NewMemory([]byte{0x01, 0x02, 0x03, 0x04})

			Expect(memory.Read32(emu.MemoryBase)).To(Equal(uint32(0x04030201)))
		})
	})

	Describe("accesses overhanging the segment end", func() {
		// A word access at the last aligned address passes validation
		// even when only part of it is backed by the segment.
		It("should read overhanging bytes as zero", func() {
			memory = emu.NewMemory([]byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE})

			value, err := memory.Read32(emu.MemoryBase + 4)

			Expect(err).To(BeNil())
			Expect(value).To(Equal(uint32(0x000000EE)))
		})

		It("should drop writes to overhanging bytes", func() {
			memory = emu.NewMemory([]byte{0, 0, 0, 0, 0})

			Expect(memory.Write32(emu.MemoryBase+4, 0xDEADBEEF)).To(Succeed())

			Expect(memory.Read8(emu.MemoryBase + 4)).To(Equal(uint8(0xEF)))
			value, err := memory.Read32(emu.MemoryBase + 4)
			Expect(err).To(BeNil())
			Expect(value).To(Equal(uint32(0x000000EF)))
		})
	})

	Describe("Size", func() {
		It("should report the segment size", func() {
			Expect(memory.Size()).To(Equal(16))
			Expect(emu.NewMemory(nil).Size()).To(Equal(0))
		})
	})
})
