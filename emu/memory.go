// Package emu provides functional IMPS emulation.
package emu

// MemoryBase is the virtual address of the first data segment byte. All
// program-visible addresses live in [MemoryBase, MemoryBase+size).
const MemoryBase uint32 = 0x10010000

// Memory is the emulated data segment: a fixed-size byte array mapped at
// MemoryBase, seeded from the program image. All accesses are little-endian
// and validated for range and alignment.
type Memory struct {
	data []byte
}

// NewMemory creates a data segment seeded with a copy of initial. The
// segment size is fixed at len(initial) for the life of the emulator.
func NewMemory(initial []byte) *Memory {
	data := make([]byte, len(initial))
	copy(data, initial)
	return &Memory{data: data}
}

// Size returns the segment size in bytes.
func (m *Memory) Size() int {
	return len(m.data)
}

// Validate checks addr for an access of the given width (1, 2, or 4 bytes)
// and returns the segment offset it maps to. The upper bound is loose by
// width-1 bytes, so a wide access near the segment end may pass validation
// while overhanging it; overhanging bytes read as zero and writes to them
// are dropped.
func (m *Memory) Validate(addr uint32, width int) (int, error) {
	if addr < MemoryBase ||
		addr >= MemoryBase+uint32(len(m.data))+uint32(width-1) ||
		addr%uint32(width) != 0 {
		return 0, &AddressError{Addr: addr, Width: width}
	}
	return int(addr - MemoryBase), nil
}

// Read8 reads the byte at addr.
func (m *Memory) Read8(addr uint32) (uint8, error) {
	offset, err := m.Validate(addr, 1)
	if err != nil {
		return 0, err
	}
	return m.byteAt(offset), nil
}

// Read16 reads the little-endian halfword at addr.
func (m *Memory) Read16(addr uint32) (uint16, error) {
	offset, err := m.Validate(addr, 2)
	if err != nil {
		return 0, err
	}

	var value uint16
	for i := 0; i < 2; i++ {
		value |= uint16(m.byteAt(offset+i)) << (8 * i)
	}
	return value, nil
}

// Read32 reads the little-endian word at addr.
func (m *Memory) Read32(addr uint32) (uint32, error) {
	offset, err := m.Validate(addr, 4)
	if err != nil {
		return 0, err
	}

	var value uint32
	for i := 0; i < 4; i++ {
		value |= uint32(m.byteAt(offset+i)) << (8 * i)
	}
	return value, nil
}

// Write8 writes the byte at addr.
func (m *Memory) Write8(addr uint32, value uint8) error {
	offset, err := m.Validate(addr, 1)
	if err != nil {
		return err
	}
	m.setByte(offset, value)
	return nil
}

// Write16 writes the little-endian halfword at addr.
func (m *Memory) Write16(addr uint32, value uint16) error {
	offset, err := m.Validate(addr, 2)
	if err != nil {
		return err
	}
	for i := 0; i < 2; i++ {
		m.setByte(offset+i, byte(value>>(8*i)))
	}
	return nil
}

// Write32 writes the little-endian word at addr.
func (m *Memory) Write32(addr uint32, value uint32) error {
	offset, err := m.Validate(addr, 4)
	if err != nil {
		return err
	}
	for i := 0; i < 4; i++ {
		m.setByte(offset+i, byte(value>>(8*i)))
	}
	return nil
}

// byteAt reads one segment byte; offsets past the end read as zero.
func (m *Memory) byteAt(offset int) byte {
	if offset < len(m.data) {
		return m.data[offset]
	}
	return 0
}

// setByte writes one segment byte; writes past the end are dropped.
func (m *Memory) setByte(offset int, value byte) {
	if offset < len(m.data) {
		m.data[offset] = value
	}
}
