package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/impsim/emu"
)

var _ = Describe("FileSystem", func() {
	var (
		memory *emu.Memory
		fs     *emu.FileSystem
	)

	BeforeEach(func() {
		memory = emu.NewMemory(make([]byte, 160))
		fs = emu.NewFileSystem(memory)
	})

	// seed places bytes in memory for the filesystem to pick up.
	seed := func(offset uint32, data []byte) {
		for i, b := range data {
			Expect(memory.Write8(emu.MemoryBase+offset+uint32(i), b)).To(Succeed())
		}
	}

	Describe("Open", func() {
		It("should fail to open a missing file for reading", func() {
			fd := fs.Open("missing.txt", 0)

			Expect(fd).To(Equal(emu.FailResult))
			Expect(fs.Lookup("missing.txt")).To(BeNil())
		})

		It("should create a file when opened for writing", func() {
			fd := fs.Open("out.txt", 1)

			Expect(fd).To(Equal(uint32(0)))
			Expect(fs.Lookup("out.txt")).NotTo(BeNil())
		})

		It("should treat any nonzero mode as writing", func() {
			fd := fs.Open("out.txt", 5)

			Expect(fd).NotTo(Equal(emu.FailResult))
			Expect(fs.Lookup("out.txt")).NotTo(BeNil())
		})

		It("should open an existing file for reading", func() {
			Expect(fs.Open("a.txt", 1)).To(Equal(uint32(0)))

			fd := fs.Open("a.txt", 0)

			Expect(fd).To(Equal(uint32(1)))
		})

		It("should allow the empty string as a name", func() {
			fd := fs.Open("", 1)

			Expect(fd).NotTo(Equal(emu.FailResult))
			Expect(fs.Lookup("")).NotTo(BeNil())
		})

		It("should fail when all file slots are taken", func() {
			names := []string{"a", "b", "c", "d", "e", "f"}
			for i, name := range names {
				fd := fs.Open(name, 1)
				Expect(fd).NotTo(Equal(emu.FailResult))
				Expect(fs.Close(fd)).To(Equal(uint32(0)), "file %d", i)
			}

			Expect(fs.Open("g", 1)).To(Equal(emu.FailResult))
			Expect(fs.Lookup("g")).To(BeNil())
		})

		It("should fail when all descriptors are taken", func() {
			for i := 0; i < emu.MaxDescriptors; i++ {
				// Two descriptors per file keeps the file table in bounds.
				name := string(rune('a' + i/2))
				Expect(fs.Open(name, 1)).To(Equal(uint32(i)))
			}

			Expect(fs.Open("a", 0)).To(Equal(emu.FailResult))
		})

		It("should not create a file when no descriptor is free", func() {
			for i := 0; i < emu.MaxDescriptors; i++ {
				name := string(rune('a' + i/2))
				Expect(fs.Open(name, 1)).To(Equal(uint32(i)))
			}

			Expect(fs.Open("fresh", 1)).To(Equal(emu.FailResult))
			Expect(fs.Lookup("fresh")).To(BeNil())
		})
	})

	Describe("Write", func() {
		It("should copy bytes from memory into the file", func() {
			seed(0, []byte("hello"))
			fd := fs.Open("out.txt", 1)

			n, err := fs.Write(fd, emu.MemoryBase, 5)

			Expect(err).To(BeNil())
			Expect(n).To(Equal(uint32(5)))

			file := fs.Lookup("out.txt")
			Expect(file.Size).To(Equal(5))
			Expect(string(file.Data[:5])).To(Equal("hello"))
		})

		It("should advance the position across writes", func() {
			seed(0, []byte("abcdef"))
			fd := fs.Open("out.txt", 1)

			_, err := fs.Write(fd, emu.MemoryBase, 3)
			Expect(err).To(BeNil())
			_, err = fs.Write(fd, emu.MemoryBase+3, 3)
			Expect(err).To(BeNil())

			file := fs.Lookup("out.txt")
			Expect(string(file.Data[:file.Size])).To(Equal("abcdef"))
		})

		It("should clamp the count to the file capacity", func() {
			fd := fs.Open("out.txt", 1)

			n, err := fs.Write(fd, emu.MemoryBase, 200)

			Expect(err).To(BeNil())
			Expect(n).To(Equal(uint32(emu.MaxFileSize)))
			Expect(fs.Lookup("out.txt").Size).To(Equal(emu.MaxFileSize))
		})

		It("should write nothing once the file is full", func() {
			fd := fs.Open("out.txt", 1)
			_, err := fs.Write(fd, emu.MemoryBase, emu.MaxFileSize)
			Expect(err).To(BeNil())

			n, err := fs.Write(fd, emu.MemoryBase, 10)

			Expect(err).To(BeNil())
			Expect(n).To(Equal(uint32(0)))
		})

		It("should write nothing for a negative count", func() {
			fd := fs.Open("out.txt", 1)

			n, err := fs.Write(fd, emu.MemoryBase, -1)

			Expect(err).To(BeNil())
			Expect(n).To(Equal(uint32(0)))
			Expect(fs.Lookup("out.txt").Size).To(Equal(0))
		})

		It("should fail on a read-only descriptor", func() {
			Expect(fs.Open("a.txt", 1)).To(Equal(uint32(0)))
			fd := fs.Open("a.txt", 0)

			n, err := fs.Write(fd, emu.MemoryBase, 1)

			Expect(err).To(BeNil())
			Expect(n).To(Equal(emu.FailResult))
		})

		It("should fault when a source byte is out of range", func() {
			fd := fs.Open("out.txt", 1)

			// The last 2 of 4 bytes fall past the segment end.
			_, err := fs.Write(fd, emu.MemoryBase+158, 4)

			Expect(err).To(HaveOccurred())
		})

		It("should keep the size at its high-water mark", func() {
			seed(0, []byte("abcde"))
			fd := fs.Open("out.txt", 1)
			_, err := fs.Write(fd, emu.MemoryBase, 5)
			Expect(err).To(BeNil())
			Expect(fs.Close(fd)).To(Equal(uint32(0)))

			seed(10, []byte("XY"))
			fd = fs.Open("out.txt", 1)
			_, err = fs.Write(fd, emu.MemoryBase+10, 2)
			Expect(err).To(BeNil())

			file := fs.Lookup("out.txt")
			Expect(file.Size).To(Equal(5))
			Expect(string(file.Data[:5])).To(Equal("XYcde"))
		})
	})

	Describe("Read", func() {
		var fd uint32

		BeforeEach(func() {
			seed(0, []byte("hello"))
			wfd := fs.Open("in.txt", 1)
			_, err := fs.Write(wfd, emu.MemoryBase, 5)
			Expect(err).To(BeNil())
			Expect(fs.Close(wfd)).To(Equal(uint32(0)))

			fd = fs.Open("in.txt", 0)
		})

		It("should copy bytes from the file into memory", func() {
			n, err := fs.Read(fd, emu.MemoryBase+100, 5)

			Expect(err).To(BeNil())
			Expect(n).To(Equal(uint32(5)))
			for i, want := range []byte("hello") {
				Expect(memory.Read8(emu.MemoryBase + 100 + uint32(i))).
					To(Equal(want))
			}
		})

		It("should advance the position across reads", func() {
			n, err := fs.Read(fd, emu.MemoryBase+100, 2)
			Expect(err).To(BeNil())
			Expect(n).To(Equal(uint32(2)))

			n, err = fs.Read(fd, emu.MemoryBase+102, 2)
			Expect(err).To(BeNil())
			Expect(n).To(Equal(uint32(2)))

			Expect(memory.Read8(emu.MemoryBase + 102)).To(Equal(uint8('l')))
			Expect(memory.Read8(emu.MemoryBase + 103)).To(Equal(uint8('l')))
		})

		It("should clamp the count to the remaining content", func() {
			n, err := fs.Read(fd, emu.MemoryBase+100, 100)

			Expect(err).To(BeNil())
			Expect(n).To(Equal(uint32(5)))
		})

		It("should read nothing at the end of the file", func() {
			_, err := fs.Read(fd, emu.MemoryBase+100, 5)
			Expect(err).To(BeNil())

			n, err := fs.Read(fd, emu.MemoryBase+100, 5)

			Expect(err).To(BeNil())
			Expect(n).To(Equal(uint32(0)))
		})

		It("should read nothing for a negative count", func() {
			n, err := fs.Read(fd, emu.MemoryBase+100, -5)

			Expect(err).To(BeNil())
			Expect(n).To(Equal(uint32(0)))
		})

		It("should fail on a write-only descriptor", func() {
			wfd := fs.Open("w.txt", 1)

			n, err := fs.Read(wfd, emu.MemoryBase+100, 1)

			Expect(err).To(BeNil())
			Expect(n).To(Equal(emu.FailResult))
		})

		It("should fail on an out-of-range descriptor", func() {
			n, err := fs.Read(99, emu.MemoryBase+100, 1)

			Expect(err).To(BeNil())
			Expect(n).To(Equal(emu.FailResult))
		})

		It("should fault when a destination byte is out of range", func() {
			_, err := fs.Read(fd, emu.MemoryBase+158, 5)

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Close", func() {
		It("should release the descriptor for reuse", func() {
			fd := fs.Open("a.txt", 1)
			Expect(fs.Close(fd)).To(Equal(uint32(0)))

			Expect(fs.Open("a.txt", 0)).To(Equal(fd))
		})

		It("should fail on a descriptor that is not open", func() {
			Expect(fs.Close(3)).To(Equal(emu.FailResult))
		})

		It("should fail when closing twice", func() {
			fd := fs.Open("a.txt", 1)

			Expect(fs.Close(fd)).To(Equal(uint32(0)))
			Expect(fs.Close(fd)).To(Equal(emu.FailResult))
		})

		It("should fail on an out-of-range descriptor", func() {
			Expect(fs.Close(99)).To(Equal(emu.FailResult))
		})

		It("should keep the file contents", func() {
			seed(0, []byte("keep"))
			fd := fs.Open("a.txt", 1)
			_, err := fs.Write(fd, emu.MemoryBase, 4)
			Expect(err).To(BeNil())
			Expect(fs.Close(fd)).To(Equal(uint32(0)))

			file := fs.Lookup("a.txt")
			Expect(file).NotTo(BeNil())
			Expect(string(file.Data[:file.Size])).To(Equal("keep"))
		})
	})
})
