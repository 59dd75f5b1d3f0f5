package code

import (
	"bytes"
	"math/bits"

	"github.com/icza/bitio"
)

// bitio works most significant bit first so every byte is reversed on the
// way in and out, which turns the stream into least significant bit first.
func reverseBytes(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[i] = bits.Reverse8(v)
	}
	return out
}

func reverseBits(v uint64, n int) uint64 {
	return bits.Reverse64(v) >> (64 - uint(n))
}

// bitReader never fails; reading past the end yields zero bits
type bitReader struct {
	r        *bitio.Reader
	pos, len int
}

func newBitReader(b []byte) *bitReader {
	return &bitReader{
		r:   bitio.NewReader(bytes.NewReader(reverseBytes(b))),
		len: len(b) << 3,
	}
}

func (br *bitReader) eof() bool {
	return br.pos >= br.len
}

func (br *bitReader) readBit() int {
	if br.eof() {
		return 0
	}
	b, err := br.r.ReadBool()
	if err != nil {
		br.pos = br.len
		return 0
	}
	br.pos++
	if b {
		return 1
	}
	return 0
}

// readBits returns the next n (1-64) bits with the first bit read as the
// least significant bit. If fewer than n bits remain nothing is consumed
// and zero is returned.
func (br *bitReader) readBits(n int) int {
	if n <= 0 || n > 64 || br.pos+n > br.len {
		return 0
	}
	v, err := br.r.ReadBits(uint8(n))
	if err != nil {
		br.pos = br.len
		return 0
	}
	br.pos += n
	return int(reverseBits(v, n))
}

// skip discards n bits, following the same rule as readBits
func (br *bitReader) skip(n int) {
	if br.pos+n > br.len {
		return
	}
	for ; n > 0; n-- {
		br.readBit()
	}
}

type bitWriter struct {
	buf bytes.Buffer
	w   *bitio.Writer
	err error
}

func newBitWriter() *bitWriter {
	bw := new(bitWriter)
	bw.w = bitio.NewWriter(&bw.buf)
	return bw
}

func (bw *bitWriter) writeBit(b int) {
	if bw.err == nil {
		bw.err = bw.w.WriteBool(b != 0)
	}
}

// writeBits writes the low n bits of v, least significant bit first
func (bw *bitWriter) writeBits(v, n int) {
	if bw.err == nil {
		bw.err = bw.w.WriteBits(reverseBits(uint64(v), n), uint8(n))
	}
}

// bytes flushes any partial byte, padded with zero bits, and returns the
// stream
func (bw *bitWriter) bytes() ([]byte, error) {
	if bw.err != nil {
		return nil, bw.err
	}
	if err := bw.w.Close(); err != nil {
		return nil, err
	}
	return reverseBytes(bw.buf.Bytes()), nil
}
