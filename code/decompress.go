package code

import "encoding/binary"

const (
	literalBits = 4
	// Any longer unary prefix can only produce an index beyond the table
	maxUnary = 4

	shortOffsetBits  = 5
	mediumOffsetBits = 10
	longOffsetBits   = 15

	minCopy   = 3
	copyBits  = 3
	copyLimit = 1<<copyBits - 1
)

func literalBase(unary int) int {
	return (1<<uint(unary) - 1) << literalBits
}

// decompress decodes the compressed form that follows the tag
func decompress(b []byte) string {
	if len(b) < headerSize-tagSize {
		return ""
	}

	length := int(binary.BigEndian.Uint16(b[0:]))
	compressed := int(binary.BigEndian.Uint16(b[2:])) - headerSize

	b = b[headerSize-tagSize:]
	if compressed < 0 {
		compressed = 0
	}
	if compressed < len(b) {
		b = b[:compressed]
	}

	r := newBitReader(b)
	mtf := newMoveToFront()
	out := make([]byte, 0, length)

	for len(out) < length && !r.eof() {
		if r.readBit() == 1 {
			unary := 0
			for r.readBit() == 1 {
				unary++
			}

			if unary > maxUnary {
				r.skip(literalBits + unary)
				continue
			}

			// Out of range indices are ignored
			if i := r.readBits(literalBits+unary) + literalBase(unary); i < len(mtf) {
				out = append(out, mtf.take(i))
			}
			continue
		}

		offsetBits := longOffsetBits
		if r.readBit() == 1 {
			if r.readBit() == 1 {
				offsetBits = shortOffsetBits
			} else {
				offsetBits = mediumOffsetBits
			}
		}
		offset := r.readBits(offsetBits) + 1

		// Raw bytes up to a zero byte
		if offsetBits == mediumOffsetBits && offset == 1 {
			for !r.eof() {
				c := r.readBits(8)
				if c == 0x00 {
					break
				}
				out = append(out, byte(c))
			}
			continue
		}

		n := minCopy
		for {
			part := r.readBits(copyBits)
			n += part
			if part != copyLimit {
				break
			}
		}

		if offset > len(out) {
			break
		}

		// Copying one byte at a time repeats the window when n > offset
		start := len(out) - offset
		for i := 0; i < n && len(out) < length; i++ {
			out = append(out, out[start+i])
		}
	}

	if len(out) > length {
		out = out[:length]
	}

	return string(out)
}
