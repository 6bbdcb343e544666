// Package asmx64 implements the compiler's x86-64 assembler: per-op
// instruction templates and the two-pass branch-resolution algorithm
// described in spec.md section 4.4. Byte templates are grounded on
// _examples/original_source/assembler_x86_64.c, corrected where
// spec.md's design-level table is explicit and the original's C is
// stale (the Move/add-to-rsp encoding, and the test-at-sp opcode typo).
package asmx64

import "github.com/flatbyte/bfc/internal/iobuf"

// putU32 appends v as four little-endian bytes to buf. 32-bit
// immediates must always be written in explicit little-endian order
// rather than relying on host byte order (spec.md section 9,
// "Endianness").
func putU32(buf *iobuf.Buffer, v uint32) {
	buf.AppendBytes(byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

func putI32(buf *iobuf.Buffer, v int32) {
	putU32(buf, uint32(v))
}

// mutateTemplate emits `add byte [rsp], imm8` — 80 04 24 ib. n is
// taken mod 256, matching a single-byte cell's natural wraparound.
func mutateTemplate(n int32) []byte {
	buf := iobuf.New()
	buf.AppendBytes(0x80, 0x04, 0x24, byte(n))
	return buf.Bytes()
}

// moveTemplate emits `add rsp, imm32` with value -n, because '>'
// conceptually advances the tape forward but is mapped to decrementing
// rsp (spec.md section 4.4). This is the 48 81 C4 id form spec.md
// mandates; the original C's 0x66,0x83,0xc4 16-bit-operand form is
// stale and is not used here.
func moveTemplate(n int32) []byte {
	buf := iobuf.New()
	buf.AppendBytes(0x48, 0x81, 0xc4)
	putI32(buf, -n)
	return buf.Bytes()
}

// writeSyscallOne is the 20-byte write-syscall template: mov rax,1;
// mov rdi,1; mov rsi,rsp; mov rdx,1; syscall.
func writeSyscallOne(buf *iobuf.Buffer) {
	buf.AppendBytes(
		0xb8, 0x01, 0x00, 0x00, 0x00, // mov eax, 1
		0xbf, 0x01, 0x00, 0x00, 0x00, // mov edi, 1
		0x48, 0x89, 0xe6, // mov rsi, rsp
		0xba, 0x01, 0x00, 0x00, 0x00, // mov edx, 1
		0x0f, 0x05, // syscall
	)
}

// readSyscallOne is the 16-byte read-syscall template: xor rax,rax;
// xor rdi,rdi; mov rsi,rsp; mov rdx,1; syscall.
func readSyscallOne(buf *iobuf.Buffer) {
	buf.AppendBytes(
		0x48, 0x31, 0xc0, // xor rax, rax
		0x48, 0x31, 0xff, // xor rdi, rdi
		0x48, 0x89, 0xe6, // mov rsi, rsp
		0xba, 0x01, 0x00, 0x00, 0x00, // mov edx, 1
		0x0f, 0x05, // syscall
	)
}

// printTemplate repeats the write-syscall template k times.
func printTemplate(k uint32) []byte {
	buf := iobuf.New()
	for i := uint32(0); i < k; i++ {
		writeSyscallOne(buf)
	}
	return buf.Bytes()
}

// inputTemplate repeats the read-syscall template k times.
func inputTemplate(k uint32) []byte {
	buf := iobuf.New()
	for i := uint32(0); i < k; i++ {
		readSyscallOne(buf)
	}
	return buf.Bytes()
}

// testAtSP appends the shared branch prefix: mov al,[rsp]; test al,al
// — 8A 04 24 84 C0. The original C's write_test_at_sp has a typo
// (0x0a instead of 0x8A); this is the corrected form spec.md mandates.
func testAtSP(buf *iobuf.Buffer) {
	buf.AppendBytes(0x8a, 0x04, 0x24, 0x84, 0xc0)
}

const (
	testPrefixSize = 5
	shortOpSize    = 2 // 74/75 ib
	nearOpSize     = 6 // 0F 84/85 id
	shortFormSize  = testPrefixSize + shortOpSize
	nearFormSize   = testPrefixSize + nearOpSize
)

// ifZeroShort emits the short-form `[` branch: test prefix + 74 ib.
func ifZeroShort(disp int8) []byte {
	buf := iobuf.New()
	testAtSP(buf)
	buf.AppendBytes(0x74, byte(disp))
	return buf.Bytes()
}

// ifNotZeroShort emits the short-form `]` branch: test prefix + 75 ib.
func ifNotZeroShort(disp int8) []byte {
	buf := iobuf.New()
	testAtSP(buf)
	buf.AppendBytes(0x75, byte(disp))
	return buf.Bytes()
}

// ifZeroNear emits the near-form `[` branch: test prefix + 0F 84 id.
func ifZeroNear(disp int32) []byte {
	buf := iobuf.New()
	testAtSP(buf)
	buf.AppendBytes(0x0f, 0x84)
	putI32(buf, disp)
	return buf.Bytes()
}

// ifNotZeroNear emits the near-form `]` branch: test prefix + 0F 85 id.
func ifNotZeroNear(disp int32) []byte {
	buf := iobuf.New()
	testAtSP(buf)
	buf.AppendBytes(0x0f, 0x85)
	putI32(buf, disp)
	return buf.Bytes()
}

// prologueTemplate reserves the cell tape by advancing rsp downward:
// add rsp, -tapeSize (48 81 C4 id), 7 bytes.
func prologueTemplate(tapeSize int32) []byte {
	buf := iobuf.New()
	buf.AppendBytes(0x48, 0x81, 0xc4)
	putI32(buf, -tapeSize)
	return buf.Bytes()
}

// exitSuccessTemplate is the 10-byte exit(0) footer: mov rax,60;
// xor rdi,rdi; syscall.
func exitSuccessTemplate() []byte {
	buf := iobuf.New()
	buf.AppendBytes(
		0xb8, 0x3c, 0x00, 0x00, 0x00, // mov eax, 60
		0x48, 0x31, 0xff, // xor rdi, rdi
		0x0f, 0x05, // syscall
	)
	return buf.Bytes()
}
