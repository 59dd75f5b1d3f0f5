/*
Package gfx implements the PICO-8 sprite sheet decoder and encoder.

The sprite sheet is 128 by 128 pixels exactly. Each pixel is a 4-bit index
into the fixed 16 color palette and each byte holds two horizontally
adjacent pixels, the left pixel in the lower nibble and the right pixel in
the upper nibble. There is no compression so the sheet is always 8192 bytes.
Color 0 is transparent when drawn.
*/
package gfx

import (
	"errors"
	"image/color"
)

const (
	// Width is the width in pixels of the sprite sheet
	Width = 128
	// Height is the height in pixels of the sprite sheet
	Height = 128
	// Size is the size in bytes of a packed sprite sheet
	Size = Width * Height >> 1

	numColors = 16
)

// ErrSize is returned when the packed sprite sheet is not 8192 bytes or the
// image to pack is not 128 by 128 pixels
var ErrSize = errors.New("gfx: wrong size")

// Palette is the fixed PICO-8 palette
var Palette = color.Palette{
	color.RGBA{0x00, 0x00, 0x00, 0xff}, // black
	color.RGBA{0x1d, 0x2b, 0x53, 0xff}, // dark blue
	color.RGBA{0x7e, 0x25, 0x53, 0xff}, // dark purple
	color.RGBA{0x00, 0x87, 0x51, 0xff}, // dark green
	color.RGBA{0xab, 0x52, 0x36, 0xff}, // brown
	color.RGBA{0x5f, 0x57, 0x4f, 0xff}, // dark grey
	color.RGBA{0xc2, 0xc3, 0xc7, 0xff}, // light grey
	color.RGBA{0xff, 0xf1, 0xe8, 0xff}, // white
	color.RGBA{0xff, 0x00, 0x4d, 0xff}, // red
	color.RGBA{0xff, 0xa3, 0x00, 0xff}, // orange
	color.RGBA{0xff, 0xec, 0x27, 0xff}, // yellow
	color.RGBA{0x00, 0xe4, 0x36, 0xff}, // green
	color.RGBA{0x29, 0xad, 0xff, 0xff}, // blue
	color.RGBA{0x83, 0x76, 0x9c, 0xff}, // lavender
	color.RGBA{0xff, 0x77, 0xa8, 0xff}, // pink
	color.RGBA{0xff, 0xcc, 0xaa, 0xff}, // peach
}

func upperNibble(b byte) byte {
	return b >> 4
}

func lowerNibble(b byte) byte {
	return b & 0x0f
}
