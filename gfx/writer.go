package gfx

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/ericpauley/go-quantize/quantize"
)

func countColors(m image.Image) int {
	colors := make(map[color.Color]struct{})
	b := m.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			colors[m.At(x, y)] = struct{}{}
		}
	}
	return len(colors)
}

func transparent(c color.Color) bool {
	_, _, _, a := c.RGBA()
	return a < 0x8000
}

// Pack converts the image m into a packed sprite sheet. Mostly transparent
// pixels become color 0 and every other pixel is mapped to the closest
// palette color. Images using more than 16 colors are reduced to 16 first.
func Pack(m image.Image) ([]byte, error) {
	b := m.Bounds()
	if b.Dx() != Width || b.Dy() != Height {
		return nil, fmt.Errorf("%w: %dx%d, expected %dx%d", ErrSize, b.Dx(), b.Dy(), Width, Height)
	}

	src := m
	if countColors(m) > numColors {
		q := quantize.MedianCutQuantizer{}
		pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, numColors), m))
		draw.Draw(pm, b, m, b.Min, draw.Src)
		src = pm
	}

	out := make([]byte, Size)
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			var i byte
			if !transparent(m.At(b.Min.X+x, b.Min.Y+y)) {
				i = byte(Palette.Index(src.At(b.Min.X+x, b.Min.Y+y)))
			}

			// This is masking off any bits leaving a 0-15 value
			if x&1 == 0 {
				out[(y*Width+x)>>1] |= i & 0x0f
			} else {
				out[(y*Width+x)>>1] |= i & 0x0f << 4
			}
		}
	}

	return out, nil
}
