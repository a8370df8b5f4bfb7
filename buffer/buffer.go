// Package buffer implements the append-only growable byte container
// used by the mi and annotation parsers to hold unconsumed bytes
// across pushes (spec §4.1). It favors amortized O(1) append and
// in-place erase of a prefix range over turning every push into a
// fresh allocation, since the parsers above it may be fed input one
// byte at a time.
package buffer

// Growth policy: 0 -> 128, doubling up to 4096, then +4096 at a time.
const (
	initialCapacity = 128
	growthCeiling   = 4096
	growthStep      = 4096
)

// Buffer is an append-only byte container with O(1) amortized append,
// substring search, and in-place erase of a prefix range. The zero
// value is ready to use.
type Buffer struct {
	data []byte
}

// Append adds bytes to the end of the buffer. Amortized O(n).
func (b *Buffer) Append(p []byte) {
	b.grow(len(p))
	b.data = append(b.data, p...)
}

// AppendNulTerminated behaves like Append, but if cstr ends in a NUL
// byte that terminator is not counted in Size. It exists to make
// wrapping a NUL-terminated source (e.g. a C string bridged over cgo)
// lossless without the caller needing to trim it first.
func (b *Buffer) AppendNulTerminated(cstr []byte) {
	b.Append(cstr)
	if n := len(b.data); n > 0 && b.data[n-1] == 0 {
		b.data = b.data[:n-1]
	}
}

// Clear resets the buffer's size to zero; capacity is retained.
func (b *Buffer) Clear() {
	b.data = b.data[:0]
}

// Len returns the number of bytes currently held.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Cap returns the buffer's current capacity.
func (b *Buffer) Cap() int {
	return cap(b.data)
}

// Bytes returns a view of the buffer's contents. The slice is only
// valid until the next mutating call (Append, Erase, Clear), since
// those may reallocate or shift the backing array.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// FindFirstOf returns the earliest index in the buffer whose byte
// appears in chars, or Len() when no byte matches. A NUL byte inside
// the buffer does not terminate the scan.
func (b *Buffer) FindFirstOf(chars string) int {
	for i, c := range b.data {
		for j := 0; j < len(chars); j++ {
			if c == chars[j] {
				return i
			}
		}
	}
	return len(b.data)
}

// Erase removes up to count bytes starting at pos. If pos+count
// exceeds Len(), the erase is truncated at Len(). It is an error to
// erase at or past the end of the buffer.
func (b *Buffer) Erase(pos, count int) error {
	size := len(b.data)
	if pos >= size {
		return errOutOfRange
	}
	end := pos + count
	if end > size {
		end = size
	}
	b.data = append(b.data[:pos], b.data[end:]...)
	return nil
}

func (b *Buffer) grow(n int) {
	need := len(b.data) + n
	c := cap(b.data)
	if need <= c {
		return
	}
	for c < need {
		switch {
		case c == 0:
			c = initialCapacity
		case c < growthCeiling:
			c *= 2
		default:
			c += growthStep
		}
	}
	grown := make([]byte, len(b.data), c)
	copy(grown, b.data)
	b.data = grown
}

var errOutOfRange = bufferError("erase position out of range")

type bufferError string

func (e bufferError) Error() string { return string(e) }
