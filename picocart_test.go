package picocart

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bodgit/picocart/carrier"
	"github.com/bodgit/picocart/cart"
	"github.com/bodgit/picocart/code"
	"github.com/bodgit/picocart/gfx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hiProgram is "\x00pxa" with three move-to-front literals spelling "hi!"
var hiProgram = []byte{
	0x00, 'p', 'x', 'a',
	0x00, 0x03, // decompressed length
	0x00, 0x0c, // compressed length + 8
	0x87, 0x5f, 0xbe, 0x09,
}

func newTestPicoCart(t *testing.T) (*PicoCart, string) {
	t.Helper()

	file := filepath.Join(t.TempDir(), "test.db")
	p, err := New(file, log.New(io.Discard, "", 0))
	require.NoError(t, err)
	t.Cleanup(func() {
		p.Close()
	})
	return p, file
}

func writeCarrier(t *testing.T, file string, b []byte) {
	t.Helper()

	m, err := carrier.Embed(nil, b)
	require.NoError(t, err)

	f, err := os.Create(file)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, m))
}

func memoryImage(program []byte) []byte {
	b := make([]byte, carrier.Size)
	copy(b[0x4300:], program)
	return b
}

func TestEndToEnd(t *testing.T) {
	p, _ := newTestPicoCart(t)

	file := filepath.Join(t.TempDir(), "hi.p8.png")
	writeCarrier(t, file, memoryImage(hiProgram))

	c, err := p.Load(file)
	require.NoError(t, err)
	assert.Equal(t, carrier.Size, c.Len())

	contents, err := Decode(c)
	require.NoError(t, err)
	assert.Equal(t, code.FormatPXA, contents.Format)
	assert.Equal(t, "hi!", contents.Code)

	// The compressor chooses the same literals
	b, err := code.Compress("hi!")
	require.NoError(t, err)
	assert.Equal(t, hiProgram, b)
}

func TestLoadInvalidDimensions(t *testing.T) {
	p, _ := newTestPicoCart(t)

	file := filepath.Join(t.TempDir(), "label.p8.png")
	f, err := os.Create(file)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewNRGBA(image.Rect(0, 0, 128, 128))))
	require.NoError(t, f.Close())

	_, err = p.Load(file)
	assert.ErrorIs(t, err, carrier.ErrInvalidDimensions)

	n, err := p.db.Length()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestLoadCache(t *testing.T) {
	p, dbFile := newTestPicoCart(t)

	file := filepath.Join(t.TempDir(), "cache.p8.png")
	writeCarrier(t, file, memoryImage([]byte("x=1")))

	c, err := p.Load(file)
	require.NoError(t, err)

	n, err := p.db.Length()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// The process cache doesn't notice the file changing
	writeCarrier(t, file, memoryImage([]byte("x=2")))
	c, err = p.Load(file)
	require.NoError(t, err)
	contents, err := Decode(c)
	require.NoError(t, err)
	assert.Equal(t, "x=1", contents.Code)

	require.NoError(t, p.Close())

	// A new process sees the database, which checks the hash
	p, err = New(dbFile, log.New(io.Discard, "", 0))
	require.NoError(t, err)
	defer p.Close()

	c, err = p.Load(file)
	require.NoError(t, err)
	contents, err = Decode(c)
	require.NoError(t, err)
	assert.Equal(t, "x=2", contents.Code)

	n, err = p.db.Length()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCartDB(t *testing.T) {
	db, err := NewCartDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer db.Close()

	b, err := db.FindCartridge("/a.p8.png", "AA")
	require.NoError(t, err)
	assert.Nil(t, b)

	data := bytes.Repeat([]byte{0x12, 0x34}, carrier.Size>>1)
	require.NoError(t, db.StoreCartridge("/a.p8.png", "AA", data))

	b, err = db.FindCartridge("/a.p8.png", "AA")
	require.NoError(t, err)
	assert.Equal(t, data, b)

	b, err = db.FindCartridge("/a.p8.png", "BB")
	require.NoError(t, err)
	assert.Nil(t, b)

	require.NoError(t, db.StoreCartridge("/a.p8.png", "BB", data[:cart.MinSize]))
	b, err = db.FindCartridge("/a.p8.png", "BB")
	require.NoError(t, err)
	assert.Len(t, b, cart.MinSize)

	require.NoError(t, db.Forget("/a.p8.png"))
	n, err := db.Length()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCartDBReopen(t *testing.T) {
	file := filepath.Join(t.TempDir(), "test.db")

	db, err := NewCartDB(file)
	require.NoError(t, err)

	data := bytes.Repeat([]byte{0x56, 0x78}, carrier.Size>>1)
	require.NoError(t, db.StoreCartridge("/a.p8.png", "AA", data))
	require.NoError(t, db.Close())

	db, err = NewCartDB(file)
	require.NoError(t, err)
	defer db.Close()

	b, err := db.FindCartridge("/a.p8.png", "AA")
	require.NoError(t, err)
	assert.Equal(t, data, b)
}

func TestDecodeLegacy(t *testing.T) {
	b := memoryImage([]byte(":c:\x00compressed"))
	b[0] = 0x21

	c, err := cart.New(b)
	require.NoError(t, err)

	contents, err := Decode(c)
	assert.ErrorIs(t, err, code.ErrLegacyFormat)
	require.NotNil(t, contents)
	assert.Equal(t, code.FormatLegacy, contents.Format)
	assert.Empty(t, contents.Code)
	assert.Equal(t, uint8(0xff), contents.Graphics.NRGBAAt(0, 0).A)
	assert.Equal(t, uint8(0xff), contents.Graphics.NRGBAAt(1, 0).A)
	assert.Len(t, contents.SFX, 64)
	assert.Len(t, contents.Map, cart.MapSize)
}

func TestBuild(t *testing.T) {
	small := "print(\"hello\")"
	large := strings.Repeat("print(\"hello world\")\n", 2000)

	tables := []struct {
		name   string
		src    string
		format code.Format
	}{
		{"plain", small, code.FormatPlain},
		{"compressed", large, code.FormatPXA},
		{"zero byte", "a\x00b", code.FormatPXA},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			b, err := Build(table.src, nil)
			require.NoError(t, err)

			c, err := cart.New(b)
			require.NoError(t, err)

			contents, err := Decode(c)
			require.NoError(t, err)
			assert.Equal(t, table.format, contents.Format)
			assert.Equal(t, table.src, contents.Code)
		})
	}

	// Random bytes don't compress
	noise := make([]byte, cart.CodeSize*2)
	rand.New(rand.NewSource(1)).Read(noise)
	_, err := Build(string(noise), nil)
	assert.ErrorIs(t, err, code.ErrTooLarge)
}

func TestPack(t *testing.T) {
	sheet := image.NewNRGBA(image.Rect(0, 0, gfx.Width, gfx.Height))
	sheet.Set(3, 0, gfx.Palette[9])

	var buf bytes.Buffer
	require.NoError(t, Pack(&buf, "x=1", sheet, nil))

	m, err := png.Decode(&buf)
	require.NoError(t, err)
	b, err := carrier.Extract(m)
	require.NoError(t, err)

	c, err := cart.New(b)
	require.NoError(t, err)
	contents, err := Decode(c)
	require.NoError(t, err)
	assert.Equal(t, "x=1", contents.Code)
	assert.Equal(t, byte(0x90), c.Graphics()[1])
	assert.Equal(t, uint8(0), contents.Graphics.NRGBAAt(2, 0).A)
	assert.Equal(t, uint8(0xff), contents.Graphics.NRGBAAt(3, 0).A)

	assert.Error(t, Pack(&buf, "x=1", image.NewNRGBA(image.Rect(0, 0, 8, 8)), nil))
}

func TestScan(t *testing.T) {
	p, _ := newTestPicoCart(t)

	dir := t.TempDir()
	writeCarrier(t, filepath.Join(dir, "one.p8.png"), memoryImage([]byte("x=1")))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	writeCarrier(t, filepath.Join(dir, "sub", "two.P8.PNG"), memoryImage(hiProgram))
	writeCarrier(t, filepath.Join(dir, "sub", "legacy.p8.png"), memoryImage([]byte(":c:\x00")))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".hidden"), 0o755))
	writeCarrier(t, filepath.Join(dir, ".hidden", "three.p8.png"), memoryImage(nil))
	writeCarrier(t, filepath.Join(dir, "other.png"), memoryImage(nil))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.p8.png"), []byte("not a png"), 0o644))

	require.NoError(t, p.Scan(dir))

	n, err := p.db.Length()
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestExport(t *testing.T) {
	p, _ := newTestPicoCart(t)

	b := memoryImage(hiProgram)
	b[0x2000] = 0x42
	file := filepath.Join(t.TempDir(), "game.p8.png")
	writeCarrier(t, file, b)

	dir := filepath.Join(t.TempDir(), "out")
	require.NoError(t, p.Export(file, dir))

	lua, err := os.ReadFile(filepath.Join(dir, "game"+CodeExtension))
	require.NoError(t, err)
	assert.Equal(t, "hi!", string(lua))

	m, err := os.ReadFile(filepath.Join(dir, "game"+MapExtension))
	require.NoError(t, err)
	require.Len(t, m, cart.MapSize)
	assert.Equal(t, byte(0x42), m[0])

	rom, err := os.ReadFile(filepath.Join(dir, "game"+ROMExtension))
	require.NoError(t, err)
	assert.Equal(t, b[:cart.Size], rom)

	f, err := os.Open(filepath.Join(dir, "game"+GraphicsExtension))
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, gfx.Width, cfg.Width)
	assert.Equal(t, gfx.Height, cfg.Height)

	// A legacy program still exports everything else
	legacy := filepath.Join(t.TempDir(), "old.p8.png")
	writeCarrier(t, legacy, memoryImage([]byte(":c:\x00")))
	require.NoError(t, p.Export(legacy, dir))
	_, err = os.Stat(filepath.Join(dir, "old"+CodeExtension))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "old"+ROMExtension))
	assert.NoError(t, err)
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "game", baseName("/tmp/game.p8.png"))
	assert.Equal(t, "GAME", baseName("GAME.P8.PNG"))
	assert.Equal(t, "cover", baseName("cover.png"))
}
