package picocart

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"image"
	_ "image/png" // carrier images are PNG
	"os"
	"path/filepath"

	"github.com/bodgit/picocart/carrier"
	"github.com/bodgit/picocart/cart"
)

func (p *PicoCart) cached(locator string) ([]byte, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	b, ok := p.cache[locator]
	return b, ok
}

func (p *PicoCart) remember(locator string, b []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cache[locator] = b
}

func extract(raw []byte) ([]byte, error) {
	m, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	return carrier.Extract(m)
}

// Load returns the cartridge hidden in the carrier image file. The
// extracted memory image is cached for the lifetime of the process and in
// the database for as long as the file is unchanged.
func (p *PicoCart) Load(file string) (*cart.Cartridge, error) {
	locator, err := filepath.Abs(file)
	if err != nil {
		return nil, err
	}

	if b, ok := p.cached(locator); ok {
		return cart.New(b)
	}

	raw, err := os.ReadFile(locator)
	if err != nil {
		return nil, err
	}
	sum := sha1.Sum(raw)
	sha := fmt.Sprintf("%X", sum[:])

	b, err := p.db.FindCartridge(locator, sha)
	if err != nil {
		p.logger.Printf("Discarding cached \"%s\": %s\n", locator, err)
		if err := p.db.Forget(locator); err != nil {
			return nil, err
		}
		b = nil
	}

	if b == nil {
		if b, err = extract(raw); err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		if err := p.db.StoreCartridge(locator, sha, b); err != nil {
			return nil, err
		}
		p.logger.Printf("Extracted \"%s\"\n", locator)
	} else {
		p.logger.Printf("Using cached \"%s\"\n", locator)
	}

	p.remember(locator, b)

	return cart.New(b)
}
