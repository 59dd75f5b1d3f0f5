package picocart

import (
	"image"

	"github.com/bodgit/picocart/cart"
	"github.com/bodgit/picocart/code"
	"github.com/bodgit/picocart/gfx"
	"github.com/bodgit/picocart/sfx"
	"golang.org/x/sync/errgroup"
)

// Contents holds the decoded sections of a cartridge
type Contents struct {
	Graphics *image.NRGBA
	Map      []byte
	Flags    cart.Flags
	SFX      []sfx.SFX
	Format   code.Format
	Code     string
}

// Decode decodes every section of the cartridge concurrently. If only the
// program cannot be decoded the other sections are still returned along with
// the error.
func Decode(c *cart.Cartridge) (*Contents, error) {
	var (
		contents Contents
		codeErr  error
		g        errgroup.Group
	)

	g.Go(func() (err error) {
		contents.Graphics, err = gfx.Unpack(c.Graphics())
		return
	})

	g.Go(func() error {
		contents.Map = c.Map()
		contents.Flags = c.Flags()
		return nil
	})

	g.Go(func() (err error) {
		contents.SFX, err = sfx.Decode(c.SFX())
		return
	})

	g.Go(func() error {
		b := c.Code()
		contents.Format = code.Detect(b)
		contents.Code, codeErr = code.Decode(b)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &contents, codeErr
}
