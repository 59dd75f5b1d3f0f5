package picocart

import (
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/picocart/code"
)

// Export files written for each cartridge
const (
	CodeExtension     = ".lua"
	GraphicsExtension = ".gfx.png"
	MapExtension      = ".map.bin"
	ROMExtension      = ".p8.rom"
)

func baseName(file string) string {
	name := filepath.Base(file)
	if isCartridge(name) {
		return name[:len(name)-len(Extension)]
	}
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func writeFile(file string, write func(f *os.File) error) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Export writes the program, sprite sheet, map and raw memory image of the
// cartridge in file to dir. A program in the legacy format is skipped.
func (p *PicoCart) Export(file, dir string) error {
	c, err := p.Load(file)
	if err != nil {
		return err
	}

	contents, codeErr := Decode(c)
	if codeErr != nil && !errors.Is(codeErr, code.ErrLegacyFormat) {
		return codeErr
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	base := filepath.Join(dir, baseName(file))

	if codeErr != nil {
		p.logger.Printf("Not exporting program of \"%s\": %s\n", file, codeErr)
	} else {
		if err := os.WriteFile(base+CodeExtension, []byte(contents.Code), 0o644); err != nil {
			return err
		}
	}

	if err := writeFile(base+GraphicsExtension, func(f *os.File) error {
		return png.Encode(f, contents.Graphics)
	}); err != nil {
		return err
	}

	if err := os.WriteFile(base+MapExtension, contents.Map, 0o644); err != nil {
		return err
	}

	rom, err := c.MarshalBinary()
	if err != nil {
		return err
	}
	if err := os.WriteFile(base+ROMExtension, rom, 0o644); err != nil {
		return err
	}

	p.logger.Printf("Exported \"%s\" to \"%s\"\n", file, dir)

	return nil
}
