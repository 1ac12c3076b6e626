// Package emu provides functional IMPS emulation.
package emu

// Capacity limits of the virtual filesystem.
const (
	// MaxFileSize is the byte capacity of every virtual file.
	MaxFileSize = 128
	// MaxFiles is the number of file slots.
	MaxFiles = 6
	// MaxDescriptors is the number of open-descriptor slots.
	MaxDescriptors = 8
)

// FailResult is the value syscalls place in $v0 to report failure to the
// emulated program.
const FailResult uint32 = 0xFFFFFFFF

// VirtualFile is one named file in the in-memory filesystem. Files are
// created by opening a fresh name for writing and live until the emulator
// is discarded; there is no unlink.
type VirtualFile struct {
	// Name is the key files are looked up by. The empty string is a legal
	// name like any other.
	Name string
	// Data is the file's backing store; only the first Size bytes hold
	// content.
	Data [MaxFileSize]byte
	// Size is the content length: the high-water mark of all writes.
	Size int
}

// Descriptor is one slot in the open-descriptor table.
type Descriptor struct {
	// File indexes the filesystem's file table; -1 marks a free slot.
	File int
	// Position is the cursor shared by reads and writes.
	Position int
	// Read and Write record the mode the descriptor was opened in.
	Read  bool
	Write bool
}

// FileSystem is the fixed-capacity in-memory filesystem backing the file
// syscalls. File content enters and leaves through the emulated memory,
// one validated byte at a time.
type FileSystem struct {
	memory *Memory

	files       [MaxFiles]*VirtualFile
	descriptors [MaxDescriptors]Descriptor
}

// NewFileSystem creates an empty filesystem over the given memory.
func NewFileSystem(memory *Memory) *FileSystem {
	fs := &FileSystem{memory: memory}
	for i := range fs.descriptors {
		fs.descriptors[i].File = -1
	}
	return fs
}

// Open implements the open syscall's table semantics: mode 0 opens an
// existing file for reading, any nonzero mode opens for writing, creating
// the file if the name is new. It returns the new descriptor index, or
// FailResult when the name is unknown (read mode) or a table is full.
// Failed opens leave both tables untouched.
func (fs *FileSystem) Open(name string, mode uint32) uint32 {
	for i, file := range fs.files {
		if file != nil && file.Name == name {
			return fs.allocDescriptor(i, mode)
		}
	}

	if mode == 0 {
		return FailResult // reading a file that does not exist
	}

	slot := -1
	for i, file := range fs.files {
		if file == nil {
			slot = i
			break
		}
	}
	if slot == -1 || !fs.hasFreeDescriptor() {
		return FailResult
	}

	fs.files[slot] = &VirtualFile{Name: name}
	return fs.allocDescriptor(slot, mode)
}

// Read copies up to count bytes from the descriptor's file into memory at
// dest and advances the position. It returns the byte count for $v0, or
// FailResult when the descriptor is out of range or not readable. A
// negative count reads nothing. Every destination byte is validated
// before it is written; a bad address is a fatal fault.
func (fs *FileSystem) Read(fd, dest uint32, count int32) (uint32, error) {
	desc := fs.descriptor(fd)
	if desc == nil || !desc.Read {
		return FailResult, nil
	}
	file := fs.files[desc.File]

	n := clampCount(int(count), file.Size-desc.Position)
	for i := 0; i < n; i++ {
		err := fs.memory.Write8(dest+uint32(i), file.Data[desc.Position+i])
		if err != nil {
			return 0, err
		}
	}

	desc.Position += n
	return uint32(n), nil
}

// Write copies up to count bytes from memory at src into the descriptor's
// file, advancing the position and extending the size high-water mark. It
// returns the byte count for $v0, clamped to the remaining file capacity,
// or FailResult when the descriptor is out of range or not writable. Only
// the clamped span of source bytes is validated and read.
func (fs *FileSystem) Write(fd, src uint32, count int32) (uint32, error) {
	desc := fs.descriptor(fd)
	if desc == nil || !desc.Write {
		return FailResult, nil
	}
	file := fs.files[desc.File]

	n := clampCount(int(count), MaxFileSize-desc.Position)
	for i := 0; i < n; i++ {
		value, err := fs.memory.Read8(src + uint32(i))
		if err != nil {
			return 0, err
		}
		file.Data[desc.Position+i] = value
	}

	desc.Position += n
	if desc.Position > file.Size {
		file.Size = desc.Position
	}
	return uint32(n), nil
}

// Close releases a descriptor and returns 0, or FailResult when the
// descriptor is out of range or not open. Closing never touches the file
// itself.
func (fs *FileSystem) Close(fd uint32) uint32 {
	desc := fs.descriptor(fd)
	if desc == nil || desc.File == -1 {
		return FailResult
	}
	*desc = Descriptor{File: -1}
	return 0
}

// Lookup returns the file with the given name, or nil.
func (fs *FileSystem) Lookup(name string) *VirtualFile {
	for _, file := range fs.files {
		if file != nil && file.Name == name {
			return file
		}
	}
	return nil
}

func (fs *FileSystem) descriptor(fd uint32) *Descriptor {
	if fd >= MaxDescriptors {
		return nil
	}
	return &fs.descriptors[fd]
}

func (fs *FileSystem) allocDescriptor(file int, mode uint32) uint32 {
	for i := range fs.descriptors {
		desc := &fs.descriptors[i]
		if desc.File != -1 {
			continue
		}
		*desc = Descriptor{
			File:  file,
			Read:  mode == 0,
			Write: mode != 0,
		}
		return uint32(i)
	}
	return FailResult
}

func (fs *FileSystem) hasFreeDescriptor() bool {
	for i := range fs.descriptors {
		if fs.descriptors[i].File == -1 {
			return true
		}
	}
	return false
}

// clampCount bounds a requested byte count to [0, limit].
func clampCount(n, limit int) int {
	if n > limit {
		n = limit
	}
	if n < 0 {
		return 0
	}
	return n
}
