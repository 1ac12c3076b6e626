// Package loader reads and writes IMPS executable images.
package loader

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
)

// ErrInvalidImage reports that a file is not a well-formed IMPS image.
var ErrInvalidImage = errors.New("invalid IMPS image")

// imageMagic identifies an IMPS executable: the ASCII bytes "IMPS".
var imageMagic = [4]byte{0x49, 0x4D, 0x50, 0x53}

// Program represents a loaded IMPS executable ready for execution.
type Program struct {
	// Instructions contains the program text, one 32-bit word per
	// instruction, in execution order.
	Instructions []uint32
	// DebugOffsets holds, per instruction, the byte offset of the matching
	// line in the companion source listing.
	DebugOffsets []uint32
	// EntryPoint is the instruction index where execution begins. It is
	// not validated at load time; an image may deliberately start past the
	// end of the text to exercise fault handling.
	EntryPoint uint32
	// Data is the initial data segment. Decode sizes it to the declared
	// data segment size exactly, zero-filling bytes a short image omits.
	Data []byte
}

// Load reads and decodes the IMPS image at path.
func Load(path string) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	return Decode(data)
}

// Decode parses a complete IMPS image held in memory.
//
// The layout is little-endian throughout: a 4-byte magic, a 4-byte
// instruction count, a 4-byte entry point, the instruction words, one
// 4-byte debug offset per instruction, a 2-byte data segment size, and the
// data segment itself. A short data segment is tolerated and zero-filled;
// any other truncation is an error.
func Decode(data []byte) (*Program, error) {
	r := &imageReader{data: data}

	var magic [4]byte
	if !r.read(magic[:]) || magic != imageMagic {
		return nil, fmt.Errorf("%w: bad magic", ErrInvalidImage)
	}

	count, ok := r.readWord()
	if !ok {
		return nil, fmt.Errorf("%w: truncated header", ErrInvalidImage)
	}
	entry, ok := r.readWord()
	if !ok {
		return nil, fmt.Errorf("%w: truncated header", ErrInvalidImage)
	}

	instructions, ok := r.readWords(count)
	if !ok {
		return nil, fmt.Errorf("%w: truncated instruction stream", ErrInvalidImage)
	}
	offsets, ok := r.readWords(count)
	if !ok {
		return nil, fmt.Errorf("%w: truncated debug offsets", ErrInvalidImage)
	}

	size, ok := r.readHalf()
	if !ok {
		return nil, fmt.Errorf("%w: missing data segment size", ErrInvalidImage)
	}

	// Bytes past the declared size are ignored, missing bytes read as zero.
	segment := make([]byte, size)
	copy(segment, r.data[r.pos:])

	return &Program{
		Instructions: instructions,
		DebugOffsets: offsets,
		EntryPoint:   entry,
		Data:         segment,
	}, nil
}

// Encode serializes a program into the IMPS image format. It is the inverse
// of Decode. Missing debug offsets are written as zero, so hand-assembled
// programs only need their instruction words filled in.
func Encode(p *Program) []byte {
	size := 4 + 4 + 4 + 8*len(p.Instructions) + 2 + len(p.Data)
	out := make([]byte, 0, size)

	out = append(out, imageMagic[:]...)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(p.Instructions)))
	out = binary.LittleEndian.AppendUint32(out, p.EntryPoint)
	for _, word := range p.Instructions {
		out = binary.LittleEndian.AppendUint32(out, word)
	}
	for i := range p.Instructions {
		var offset uint32
		if i < len(p.DebugOffsets) {
			offset = p.DebugOffsets[i]
		}
		out = binary.LittleEndian.AppendUint32(out, offset)
	}
	out = binary.LittleEndian.AppendUint16(out, uint16(len(p.Data)))
	out = append(out, p.Data...)

	return out
}

// Save writes the program to path in the IMPS image format.
func Save(path string, p *Program) error {
	return os.WriteFile(path, Encode(p), 0644)
}

// imageReader is a bounds-checked cursor over raw image bytes.
type imageReader struct {
	data []byte
	pos  int
}

func (r *imageReader) remaining() int {
	return len(r.data) - r.pos
}

func (r *imageReader) read(dst []byte) bool {
	if r.remaining() < len(dst) {
		return false
	}
	copy(dst, r.data[r.pos:])
	r.pos += len(dst)
	return true
}

func (r *imageReader) readWord() (uint32, bool) {
	if r.remaining() < 4 {
		return 0, false
	}
	v := binary.LittleEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return v, true
}

func (r *imageReader) readHalf() (uint16, bool) {
	if r.remaining() < 2 {
		return 0, false
	}
	v := binary.LittleEndian.Uint16(r.data[r.pos:])
	r.pos += 2
	return v, true
}

// readWords checks the full span is present before allocating, so a bogus
// count in a truncated image cannot force a huge allocation.
func (r *imageReader) readWords(n uint32) ([]uint32, bool) {
	if uint64(r.remaining()) < 4*uint64(n) {
		return nil, false
	}
	words := make([]uint32, n)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(r.data[r.pos:])
		r.pos += 4
	}
	return words, true
}
