/*
Package code implements decoding and encoding of the PICO-8 program section.

The program is stored in one of three forms, identified by the first four
bytes of the section:

	"\x00pxa"  compressed with move-to-front literals and back-references
	":c:\x00"  the legacy compressed format, which is not supported
	anything   plain text terminated by the first zero byte

The compressed form starts with an 8 byte header: the tag, the decompressed
length as a big-endian 16-bit value and the compressed length plus 8 as a
big-endian 16-bit value. The payload is a bit stream read least significant
bit first.
*/
package code

import (
	"bytes"
	"errors"
	"strings"
)

const (
	pxaTag    = "\x00pxa"
	legacyTag = ":c:\x00"

	tagSize    = 4
	headerSize = 8
)

var (
	// ErrLegacyFormat is returned for programs using the legacy
	// compressed format
	ErrLegacyFormat = errors.New("code: legacy compressed format is not supported")
	// ErrTooLarge is returned when a program cannot be represented in the
	// compressed format
	ErrTooLarge = errors.New("code: program too large")

	errZeroByte = errors.New("code: plain text program contains a zero byte")
)

// Format is the storage form of a program section
type Format int

// Formats
const (
	FormatPlain Format = iota
	FormatPXA
	FormatLegacy
)

func (f Format) String() string {
	switch f {
	case FormatPXA:
		return "pxa"
	case FormatLegacy:
		return "legacy"
	default:
		return "plain"
	}
}

// Detect returns the storage form of the program section b
func Detect(b []byte) Format {
	switch {
	case bytes.HasPrefix(b, []byte(pxaTag)):
		return FormatPXA
	case bytes.HasPrefix(b, []byte(legacyTag)):
		return FormatLegacy
	default:
		return FormatPlain
	}
}

func decodePlain(b []byte) string {
	if i := bytes.IndexByte(b, 0x00); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

// Decode returns the program text held in the program section b. The text
// is returned byte for byte; characters above 0x7f are PICO-8 glyphs and are
// not converted to UTF-8. A damaged compressed stream is not an error, the
// text decoded up to the damage is returned instead.
func Decode(b []byte) (string, error) {
	switch Detect(b) {
	case FormatPXA:
		return decompress(b[tagSize:]), nil
	case FormatLegacy:
		return "", ErrLegacyFormat
	default:
		return decodePlain(b), nil
	}
}

// Plain returns src as a plain text program section of at most size bytes,
// including the terminating zero byte
func Plain(src string, size int) ([]byte, error) {
	if len(src) >= size {
		return nil, ErrTooLarge
	}
	if strings.IndexByte(src, 0x00) >= 0 {
		return nil, errZeroByte
	}
	return append([]byte(src), 0x00), nil
}
