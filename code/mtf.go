package code

// moveToFront is the adaptive byte ordering shared by the literal encoder
// and decoder
type moveToFront [256]byte

func newMoveToFront() *moveToFront {
	m := new(moveToFront)
	for i := range m {
		m[i] = byte(i)
	}
	return m
}

// take returns the byte at position i and moves it to the front
func (m *moveToFront) take(i int) byte {
	b := m[i]
	copy(m[1:i+1], m[:i])
	m[0] = b
	return b
}

func (m *moveToFront) index(b byte) int {
	for i, v := range m {
		if v == b {
			return i
		}
	}
	return -1
}
