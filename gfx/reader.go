package gfx

import (
	"fmt"
	"image"
	"image/color"
)

func toNRGBA(i byte) color.NRGBA {
	if i == 0 {
		return color.NRGBA{}
	}
	c := Palette[i].(color.RGBA)
	return color.NRGBA{c.R, c.G, c.B, 0xff}
}

// Unpack expands a packed sprite sheet into a 128 by 128 image with color 0
// fully transparent.
func Unpack(b []byte) (*image.NRGBA, error) {
	if len(b) != Size {
		return nil, fmt.Errorf("%w: %d bytes, expected %d", ErrSize, len(b), Size)
	}

	m := image.NewNRGBA(image.Rect(0, 0, Width, Height))
	for i, v := range b {
		x, y := i<<1%Width, i<<1/Width

		m.SetNRGBA(x+0, y, toNRGBA(lowerNibble(v)))
		m.SetNRGBA(x+1, y, toNRGBA(upperNibble(v)))
	}

	return m, nil
}

// Index returns the palette index of the pixel at x, y in a packed sprite
// sheet
func Index(b []byte, x, y int) byte {
	v := b[(y*Width+x)>>1]
	if x&1 == 0 {
		return lowerNibble(v)
	}
	return upperNibble(v)
}
