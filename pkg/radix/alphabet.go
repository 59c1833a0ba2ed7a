package radix

import (
	"strconv"
	"strings"
)

// Alphabet describes how symbols are packed into a key buffer.
// The engine only ever touches key bytes through an Alphabet, so the same
// insertion, lookup and removal code serves both byte and bit keys.
type Alphabet interface {
	// Size is the number of distinct symbol values (256 for bytes, 2 for bits).
	Size() int
	// PerByte is the number of symbols packed into a single byte of a key.
	PerByte() int
	// At returns the i-th symbol of buf.
	At(buf []byte, i int) byte
	// Set overwrites the i-th symbol of buf.
	Set(buf []byte, i int, sym byte)
	// Format renders n symbols of buf starting at symbol off, for diagnostics.
	Format(buf []byte, off int, n int) string
	Name() string
}

var (
	// Bytes addresses keys one byte per symbol.
	Bytes Alphabet = byteAlphabet{}
	// Bits addresses keys one bit per symbol, least significant bit first:
	// symbol k lives in bit k%8 of byte k/8.
	Bits Alphabet = bitAlphabet{}
)

type byteAlphabet struct{}

func (byteAlphabet) Size() int    { return 256 }
func (byteAlphabet) PerByte() int { return 1 }
func (byteAlphabet) Name() string { return "bytes" }

func (byteAlphabet) At(buf []byte, i int) byte {
	return buf[i]
}

func (byteAlphabet) Set(buf []byte, i int, sym byte) {
	buf[i] = sym
}

func (byteAlphabet) Format(buf []byte, off int, n int) string {
	quoted := strconv.Quote(string(buf[off : off+n]))
	return quoted[1 : len(quoted)-1]
}

type bitAlphabet struct{}

func (bitAlphabet) Size() int    { return 2 }
func (bitAlphabet) PerByte() int { return 8 }
func (bitAlphabet) Name() string { return "bits" }

func (bitAlphabet) At(buf []byte, i int) byte {
	return (buf[i/8] >> (i % 8)) & 1
}

func (bitAlphabet) Set(buf []byte, i int, sym byte) {
	mask := byte(1) << (i % 8)
	if sym&1 == 1 {
		buf[i/8] |= mask
	} else {
		buf[i/8] &^= mask
	}
}

func (a bitAlphabet) Format(buf []byte, off int, n int) string {
	var sb strings.Builder
	sb.Grow(n)
	for i := 0; i < n; i++ {
		sb.WriteByte('0' + a.At(buf, off+i))
	}
	return sb.String()
}

// bytesFor returns how many bytes hold n symbols starting at symbol offset off.
func bytesFor(a Alphabet, off int, n int) int {
	unit := a.PerByte()
	return (off + n + unit - 1) / unit
}
