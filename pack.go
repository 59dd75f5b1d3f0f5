package picocart

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/bodgit/picocart/carrier"
	"github.com/bodgit/picocart/cart"
	"github.com/bodgit/picocart/code"
	"github.com/bodgit/picocart/gfx"
)

// Build returns the memory image of a cartridge holding the program src and
// the optional sprite sheet. The program is compressed unless it is small
// enough to store as plain text.
func Build(src string, sheet image.Image) ([]byte, error) {
	b := make([]byte, carrier.Size)

	if sheet != nil {
		g, err := gfx.Pack(sheet)
		if err != nil {
			return nil, err
		}
		copy(b, g)
	}

	program, err := code.Plain(src, cart.CodeSize)
	if err != nil {
		if program, err = code.Compress(src); err != nil {
			return nil, err
		}
	}
	if len(program) > cart.CodeSize {
		return nil, fmt.Errorf("%w: %d bytes, maximum %d", code.ErrTooLarge, len(program), cart.CodeSize)
	}
	copy(b[cart.CodeOffset:], program)

	return b, nil
}

// Pack writes a cartridge image to w holding the program src and the
// optional sprite sheet, drawn over the optional 160 by 205 cover image.
func Pack(w io.Writer, src string, sheet, cover image.Image) error {
	b, err := Build(src, sheet)
	if err != nil {
		return err
	}

	m, err := carrier.Embed(cover, b)
	if err != nil {
		return err
	}

	return png.Encode(w, m)
}
