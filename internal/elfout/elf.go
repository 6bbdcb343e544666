// Package elfout wraps an assembled code blob in a minimal static
// ELF64 executable: one PT_LOAD RWX segment covering the whole file,
// no sections, entry at the first byte of the code that follows the
// headers. This is the supplemented --elf output
// mode described in SPEC_FULL.md section 10, adapted down from the
// teacher's multi-section buildELF64 in
// _examples/tinyrange-rtg/std/compiler/elf_x64.go — our segment holds
// nothing but the code, since the compiler has no .rodata/.data and
// no symbol table to emit.
package elfout

import "encoding/binary"

const (
	elfHeaderSize = 64
	phdrSize      = 56
	baseAddr      = uint64(0x400000)
)

// Wrap returns code wrapped in a minimal ET_EXEC ELF64 file for
// x86-64 Linux. The code segment (and the file's entry point) begins
// immediately after the header and single program header, aligned to
// 16 bytes.
func Wrap(code []byte) []byte {
	headerTotal := elfHeaderSize + phdrSize
	codeOffset := align16(headerTotal)
	total := codeOffset + len(code)

	out := make([]byte, total)

	out[0] = 0x7f
	out[1] = 'E'
	out[2] = 'L'
	out[3] = 'F'
	out[4] = 2 // ELFCLASS64
	out[5] = 1 // ELFDATA2LSB
	out[6] = 1 // EV_CURRENT
	out[7] = 0 // ELFOSABI_NONE

	entry := baseAddr + uint64(codeOffset)

	binary.LittleEndian.PutUint16(out[16:], 2)  // e_type: ET_EXEC
	binary.LittleEndian.PutUint16(out[18:], 62) // e_machine: EM_X86_64
	binary.LittleEndian.PutUint32(out[20:], 1)  // e_version
	binary.LittleEndian.PutUint64(out[24:], entry)
	binary.LittleEndian.PutUint64(out[32:], uint64(elfHeaderSize)) // e_phoff
	binary.LittleEndian.PutUint64(out[40:], 0)                     // e_shoff: no section headers
	binary.LittleEndian.PutUint32(out[48:], 0)                     // e_flags
	binary.LittleEndian.PutUint16(out[52:], uint16(elfHeaderSize))
	binary.LittleEndian.PutUint16(out[54:], uint16(phdrSize))
	binary.LittleEndian.PutUint16(out[56:], 1) // e_phnum
	binary.LittleEndian.PutUint16(out[58:], 0) // e_shentsize
	binary.LittleEndian.PutUint16(out[60:], 0) // e_shnum
	binary.LittleEndian.PutUint16(out[62:], 0) // e_shstrndx

	phdr := out[elfHeaderSize:]
	binary.LittleEndian.PutUint32(phdr[0:], 1) // p_type: PT_LOAD
	binary.LittleEndian.PutUint32(phdr[4:], 7) // p_flags: PF_R|PF_W|PF_X
	binary.LittleEndian.PutUint64(phdr[8:], 0) // p_offset
	binary.LittleEndian.PutUint64(phdr[16:], baseAddr)
	binary.LittleEndian.PutUint64(phdr[24:], baseAddr)
	binary.LittleEndian.PutUint64(phdr[32:], uint64(total))
	binary.LittleEndian.PutUint64(phdr[40:], uint64(total))
	binary.LittleEndian.PutUint64(phdr[48:], 0x1000) // p_align

	copy(out[codeOffset:], code)
	return out
}

func align16(n int) int {
	return (n + 15) &^ 15
}
