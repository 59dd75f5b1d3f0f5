/*
Package carrier implements reading and writing the cartridge data that is
hidden in the pixels of a PICO-8 cartridge image.

The carrier is 160 by 205 pixels exactly. Each pixel stores one byte of
cartridge data in the two least significant bits of each of its four
channels, with the alpha channel holding the most significant pair followed
by red, green and blue. Pixels are read in row-major order so the image
holds 32800 bytes, the first 32768 of which are the cartridge memory.
*/
package carrier

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

const (
	// Width is the required width of a carrier image
	Width = 160
	// Height is the required height of a carrier image
	Height = 205
	// Size is the number of bytes held by a carrier image
	Size = Width * Height
)

var (
	// ErrInvalidDimensions is returned when the carrier is not 160 by 205
	// pixels
	ErrInvalidDimensions = errors.New("carrier: invalid dimensions")
	errTooMuch           = errors.New("carrier: too much data")
)

func pack(c color.NRGBA) byte {
	return c.A&0x03<<6 | c.R&0x03<<4 | c.G&0x03<<2 | c.B&0x03
}

func checkBounds(b image.Rectangle) error {
	if b.Dx() != Width || b.Dy() != Height {
		return fmt.Errorf("%w: %dx%d, expected %dx%d", ErrInvalidDimensions, b.Dx(), b.Dy(), Width, Height)
	}
	return nil
}

// Extract returns the bytes hidden in the carrier image m.
func Extract(m image.Image) ([]byte, error) {
	b := m.Bounds()
	if err := checkBounds(b); err != nil {
		return nil, err
	}

	out := make([]byte, 0, Size)

	// Premultiplied alpha would destroy the low bits, so the channels must
	// be read unmodified
	if nm, ok := m.(*image.NRGBA); ok {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			i := nm.PixOffset(b.Min.X, y)
			for x := 0; x < Width; x, i = x+1, i+4 {
				out = append(out, pack(color.NRGBA{nm.Pix[i], nm.Pix[i+1], nm.Pix[i+2], nm.Pix[i+3]}))
			}
		}
		return out, nil
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out = append(out, pack(color.NRGBAModel.Convert(m.At(x, y)).(color.NRGBA)))
		}
	}

	return out, nil
}

// Embed returns a new carrier image holding data. The upper six bits of each
// channel are taken from cover, which may be nil in which case an opaque
// black image is used. Any unused pixels encode zero.
func Embed(cover image.Image, data []byte) (*image.NRGBA, error) {
	if len(data) > Size {
		return nil, fmt.Errorf("%w: %d bytes, maximum %d", errTooMuch, len(data), Size)
	}

	r := image.Rect(0, 0, Width, Height)
	if cover != nil {
		if err := checkBounds(cover.Bounds()); err != nil {
			return nil, err
		}
		r = cover.Bounds()
	}

	m := image.NewNRGBA(image.Rect(0, 0, Width, Height))
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			c := color.NRGBA{A: 0xff}
			if cover != nil {
				c = color.NRGBAModel.Convert(cover.At(r.Min.X+x, r.Min.Y+y)).(color.NRGBA)
			}

			var v byte
			if i := y*Width + x; i < len(data) {
				v = data[i]
			}

			m.SetNRGBA(x, y, color.NRGBA{
				c.R&0xfc | v>>4&0x03,
				c.G&0xfc | v>>2&0x03,
				c.B&0xfc | v&0x03,
				c.A&0xfc | v>>6&0x03,
			})
		}
	}

	return m, nil
}
