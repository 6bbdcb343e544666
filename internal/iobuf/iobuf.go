// Package iobuf implements a growable byte buffer with amortized
// doubling capacity growth, mirroring the assembler's sole memory
// primitive in the original implementation.
package iobuf

const initialCapacity = 16

// Buffer is a (pointer, size, capacity) triple. The zero value is the
// sentinel "uninitialized" state: nil backing array, zero capacity.
type Buffer struct {
	data []byte
}

// New allocates a Buffer with an initial capacity of 16 bytes.
func New() *Buffer {
	return &Buffer{data: make([]byte, 0, initialCapacity)}
}

// Reset releases the backing array and returns the Buffer to its
// sentinel state.
func (b *Buffer) Reset() {
	b.data = nil
}

// Len returns the number of bytes currently written.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Bytes returns the written bytes. The slice is owned by the Buffer
// and must not be retained past the next mutating call.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// AppendByte appends a single byte, growing capacity if needed.
// Reports false only if growth could not satisfy the append.
func (b *Buffer) AppendByte(v byte) bool {
	return b.AppendBytes(v)
}

// AppendBytes appends n bytes, doubling capacity until the new size
// fits. Reports false only if growth could not satisfy the append.
func (b *Buffer) AppendBytes(vs ...byte) bool {
	if b.data == nil {
		b.data = make([]byte, 0, initialCapacity)
	}
	needed := len(b.data) + len(vs)
	if cap(b.data) < needed {
		newCap := cap(b.data)
		if newCap == 0 {
			newCap = initialCapacity
		}
		for newCap < needed {
			newCap *= 2
		}
		grown := make([]byte, len(b.data), newCap)
		copy(grown, b.data)
		b.data = grown
	}
	if cap(b.data) < needed {
		return false
	}
	b.data = append(b.data, vs...)
	return true
}
