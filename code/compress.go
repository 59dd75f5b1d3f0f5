package code

import (
	"encoding/binary"
	"math"
)

const (
	maxOffset = 1 << longOffsetBits
	maxChain  = 256
	hashBytes = 3
)

type matcher struct {
	src   []byte
	heads map[uint32][]int
}

func hash3(b []byte) uint32 {
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
}

func (m *matcher) insert(i int) {
	if i+hashBytes > len(m.src) {
		return
	}
	h := hash3(m.src[i:])
	m.heads[h] = append(m.heads[h], i)
}

// find returns the longest earlier match for the bytes at i
func (m *matcher) find(i int) (offset, length int) {
	if i+hashBytes > len(m.src) {
		return 0, 0
	}
	chain := m.heads[hash3(m.src[i:])]
	for c, tried := len(chain)-1, 0; c >= 0 && tried < maxChain; c, tried = c-1, tried+1 {
		j := chain[c]
		if i-j > maxOffset {
			break
		}
		n := 0
		// Matches may run into the bytes being encoded
		for i+n < len(m.src) && m.src[j+n] == m.src[i+n] {
			n++
		}
		if n > length {
			offset, length = i-j, n
		}
	}
	return
}

type compressor struct {
	w   *bitWriter
	mtf *moveToFront
}

func (c *compressor) literal(b byte) {
	i := c.mtf.index(b)
	unary := 0
	for i >= literalBase(unary+1) {
		unary++
	}

	c.w.writeBit(1)
	for n := 0; n < unary; n++ {
		c.w.writeBit(1)
	}
	c.w.writeBit(0)
	c.w.writeBits(i-literalBase(unary), literalBits+unary)

	c.mtf.take(i)
}

func (c *compressor) copy(offset, length int) {
	c.w.writeBit(0)

	switch {
	case offset-1 < 1<<shortOffsetBits:
		c.w.writeBit(1)
		c.w.writeBit(1)
		c.w.writeBits(offset-1, shortOffsetBits)
	case offset-1 < 1<<mediumOffsetBits:
		c.w.writeBit(1)
		c.w.writeBit(0)
		c.w.writeBits(offset-1, mediumOffsetBits)
	default:
		c.w.writeBit(0)
		c.w.writeBits(offset-1, longOffsetBits)
	}

	for n := length - minCopy; ; n -= copyLimit {
		if n < copyLimit {
			c.w.writeBits(n, copyBits)
			break
		}
		c.w.writeBits(copyLimit, copyBits)
	}
}

// Compress encodes src in the compressed program format including the 8
// byte header
func Compress(src string) ([]byte, error) {
	if len(src) > math.MaxUint16 {
		return nil, ErrTooLarge
	}

	m := &matcher{src: []byte(src), heads: make(map[uint32][]int)}
	c := &compressor{w: newBitWriter(), mtf: newMoveToFront()}

	for i := 0; i < len(src); {
		if offset, length := m.find(i); length >= minCopy {
			c.copy(offset, length)
			for end := i + length; i < end; i++ {
				m.insert(i)
			}
			continue
		}
		c.literal(src[i])
		m.insert(i)
		i++
	}

	payload, err := c.w.bytes()
	if err != nil {
		return nil, err
	}
	if len(payload)+headerSize > math.MaxUint16 {
		return nil, ErrTooLarge
	}

	b := make([]byte, headerSize, headerSize+len(payload))
	copy(b, pxaTag)
	binary.BigEndian.PutUint16(b[4:], uint16(len(src)))
	binary.BigEndian.PutUint16(b[6:], uint16(len(payload)+headerSize))

	return append(b, payload...), nil
}
