package bitarray

import (
	"fmt"
	"strings"
)

// BitArray is a bit-granular cursor over a byte buffer. The live bits are
// those in [head, end). Bits are numbered MSB-first within each byte.
//
// Clones and views returned by Eat share the underlying buffer. Only an
// array that owns its buffer writes into it; everyone else copies on the
// first Extend.
type BitArray struct {
	buf   []byte
	head  int
	end   int
	owned bool
}

// New returns a cursor over a copy of data starting at bit 0.
func New(data []byte) *BitArray {
	return NewAt(data, 0)
}

// NewAt returns a cursor over a copy of data starting at bit head.
func NewAt(data []byte, head int) *BitArray {
	end := len(data) * 8
	if head < 0 || head > end {
		panic(fmt.Sprintf("bitarray: head %d outside [0, %d]", head, end))
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	return &BitArray{buf: buf, head: head, end: end, owned: true}
}

// Head returns the absolute bit offset of the cursor.
func (b *BitArray) Head() int { return b.head }

// Len returns the number of live bits.
func (b *BitArray) Len() int { return b.end - b.head }

// Clone returns a cursor with its own head over the same buffer.
func (b *BitArray) Clone() *BitArray {
	return &BitArray{buf: b.buf, head: b.head, end: b.end}
}

// Eat consumes the next n bits and returns a view over exactly those bits.
// It reports false and leaves the head untouched when fewer than n remain.
func (b *BitArray) Eat(n int) (*BitArray, bool) {
	if n < 0 || n > b.Len() {
		return nil, false
	}
	view := &BitArray{buf: b.buf, head: b.head, end: b.head + n}
	b.head += n
	return view, true
}

// Peek reads the next n bits big-endian without advancing.
func (b *BitArray) Peek(n int) uint64 {
	if n < 0 || n > 64 {
		panic(fmt.Sprintf("bitarray: peek width %d outside [0, 64]", n))
	}
	if n > b.Len() {
		panic(fmt.Sprintf("bitarray: peek %d with %d bits left", n, b.Len()))
	}
	var v uint64
	for i := 0; i < n; i++ {
		v = v<<1 | uint64(b.bit(b.head+i))
	}
	return v
}

// Extend appends the live bits of other to the end of b.
func (b *BitArray) Extend(other *BitArray) {
	n := other.Len()
	if n == 0 {
		return
	}
	b.own()
	if b.end%8 == 0 && other.head%8 == 0 {
		b.buf = append(b.buf, other.buf[other.head/8:byteLen(other.end)]...)
		b.end += n
		return
	}
	for i := other.head; i < other.end; i++ {
		b.appendBit(other.bit(i))
	}
}

// AppendUint appends the low n bits of v MSB-first.
func (b *BitArray) AppendUint(v uint64, n int) {
	if n < 0 || n > 64 {
		panic(fmt.Sprintf("bitarray: append width %d outside [0, 64]", n))
	}
	b.own()
	for i := n - 1; i >= 0; i-- {
		b.appendBit(byte(v >> uint(i) & 1))
	}
}

// AdvanceToMatch moves the head of b to the head of other, which must have
// been derived from b by consumption.
func (b *BitArray) AdvanceToMatch(other *BitArray) {
	if !sameBuffer(b.buf, other.buf) || other.end != b.end || other.head < b.head {
		panic(fmt.Sprintf("bitarray: cannot advance %s to unrelated cursor %s", b.position(), other.position()))
	}
	b.head = other.head
}

// Bytes packs the live bits into bytes. The last byte is zero padded.
func (b *BitArray) Bytes() []byte {
	n := b.Len()
	out := make([]byte, byteLen(n))
	if b.head%8 == 0 {
		copy(out, b.buf[b.head/8:byteLen(b.end)])
		if n%8 != 0 {
			out[len(out)-1] &^= 0xFF >> uint(n%8)
		}
		return out
	}
	for i := 0; i < n; i++ {
		if b.bit(b.head+i) == 1 {
			out[i/8] |= 0x80 >> uint(i%8)
		}
	}
	return out
}

// Equal reports whether the live bits of b and other are identical.
func (b *BitArray) Equal(other *BitArray) bool {
	if b.Len() != other.Len() {
		return false
	}
	for i := 0; i < b.Len(); i++ {
		if b.bit(b.head+i) != other.bit(other.head+i) {
			return false
		}
	}
	return true
}

// String renders the live bits as binary digits grouped by byte.
func (b *BitArray) String() string {
	var sb strings.Builder
	for i := b.head; i < b.end; i++ {
		if i > b.head && (i-b.head)%8 == 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte('0' + b.bit(i))
	}
	return sb.String()
}

func (b *BitArray) bit(i int) byte {
	return b.buf[i/8] >> uint(7-i%8) & 1
}

func (b *BitArray) appendBit(v byte) {
	if b.end%8 == 0 {
		b.buf = append(b.buf, 0)
	}
	mask := byte(0x80) >> uint(b.end%8)
	if v == 1 {
		b.buf[b.end/8] |= mask
	} else {
		b.buf[b.end/8] &^= mask
	}
	b.end++
}

// own gives b a private buffer trimmed to its end so appends never touch
// bytes another cursor can read.
func (b *BitArray) own() {
	if b.owned {
		b.buf = b.buf[:byteLen(b.end)]
		return
	}
	buf := make([]byte, byteLen(b.end))
	copy(buf, b.buf)
	b.buf = buf
	b.owned = true
}

func (b *BitArray) position() string {
	return fmt.Sprintf("[%d:%d]", b.head, b.end)
}

func byteLen(bits int) int {
	return (bits + 7) / 8
}

func sameBuffer(a, b []byte) bool {
	if cap(a) == 0 || cap(b) == 0 {
		return cap(a) == cap(b)
	}
	return &a[:1][0] == &b[:1][0]
}
