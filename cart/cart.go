/*
Package cart implements the memory layout of a PICO-8 cartridge.

A cartridge is a flat memory image where each kind of asset lives at a fixed
offset:

	0x0000-0x1fff  sprite sheet (the upper half doubles as map rows 32-63)
	0x2000-0x2fff  map rows 0-31
	0x3000-0x30ff  sprite flags
	0x3100-0x31ff  music patterns
	0x3200-0x42ff  sound effects
	0x4300-        program
*/
package cart

import (
	"errors"
	"fmt"
)

const (
	graphicsOffset = 0x0000
	sharedOffset   = 0x1000
	mapOffset      = 0x2000
	flagsOffset    = 0x3000
	musicOffset    = 0x3100
	sfxOffset      = 0x3200

	// CodeOffset is the start of the program section
	CodeOffset = 0x4300

	// GraphicsSize is the size in bytes of the sprite sheet
	GraphicsSize = mapOffset - graphicsOffset
	// MapSize is the size in bytes of the reconstructed map
	MapSize = 2 * (flagsOffset - mapOffset)
	// MapWidth is the number of tiles in each map row
	MapWidth = 128
	// MusicSize is the size in bytes of the music patterns
	MusicSize = sfxOffset - musicOffset
	// SFXSize is the size in bytes of the sound effects
	SFXSize = CodeOffset - sfxOffset
	// MinSize is the smallest memory image that contains every section
	MinSize = CodeOffset
	// Size is the nominal size of the cartridge memory
	Size = 0x8000
	// CodeSize is the nominal size of the program section
	CodeSize = Size - CodeOffset
)

// ErrShortCartridge is returned when the memory image stops before the
// program section
var ErrShortCartridge = errors.New("cart: not enough cartridge data")

// Flags holds the flag bitmask for each of the 256 sprites
type Flags [256]byte

// Has reports whether flag (0-7) is set for sprite
func (f Flags) Has(sprite, flag int) bool {
	return f[sprite&0xff]&(1<<uint(flag&0x07)) != 0
}

// Cartridge is an immutable cartridge memory image. It implements the
// encoding.BinaryMarshaler and encoding.BinaryUnmarshaler interfaces using
// the raw .p8.rom form.
type Cartridge struct {
	b []byte
}

// New returns a Cartridge holding a copy of b
func New(b []byte) (*Cartridge, error) {
	c := new(Cartridge)
	if err := c.UnmarshalBinary(b); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Cartridge) section(start, end int) []byte {
	return append([]byte(nil), c.b[start:end]...)
}

// Len returns the length of the memory image
func (c *Cartridge) Len() int {
	return len(c.b)
}

// Bytes returns a copy of the whole memory image
func (c *Cartridge) Bytes() []byte {
	return c.section(0, len(c.b))
}

// Graphics returns the 8192 byte sprite sheet
func (c *Cartridge) Graphics() []byte {
	return c.section(graphicsOffset, mapOffset)
}

// Map returns the 8192 byte map. The rows stored at 0x2000 come first
// followed by the rows shared with the lower half of the sprite sheet.
func (c *Cartridge) Map() []byte {
	m := make([]byte, MapSize)
	copy(m, c.b[mapOffset:flagsOffset])
	copy(m[MapSize>>1:], c.b[sharedOffset:mapOffset])
	return m
}

// Flags returns the sprite flags
func (c *Cartridge) Flags() Flags {
	var f Flags
	copy(f[:], c.b[flagsOffset:musicOffset])
	return f
}

// Music returns the raw music patterns
func (c *Cartridge) Music() []byte {
	return c.section(musicOffset, sfxOffset)
}

// SFX returns the 4352 byte sound effect section
func (c *Cartridge) SFX() []byte {
	return c.section(sfxOffset, CodeOffset)
}

// Code returns everything from the start of the program section to the end
// of the memory image
func (c *Cartridge) Code() []byte {
	return c.section(CodeOffset, len(c.b))
}

// MarshalBinary returns the cartridge memory, truncated or zero-padded to
// exactly 32768 bytes
func (c *Cartridge) MarshalBinary() ([]byte, error) {
	b := make([]byte, Size)
	copy(b, c.b)
	return b, nil
}

// UnmarshalBinary replaces the cartridge memory with a copy of b
func (c *Cartridge) UnmarshalBinary(b []byte) error {
	if len(b) < MinSize {
		return fmt.Errorf("%w: %d bytes, minimum %d", ErrShortCartridge, len(b), MinSize)
	}
	c.b = append([]byte(nil), b...)
	return nil
}
