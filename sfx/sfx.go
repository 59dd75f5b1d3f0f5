/*
Package sfx implements the PICO-8 sound effect decoder.

The sound effect section holds 64 effects of 68 bytes each. The first 62
bytes of an effect are 31 notes stored as little-endian 16-bit words and the
last four bytes are the playback mode, speed, loop start and loop end.
*/
package sfx

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	// NumEffects is the number of sound effects in the section
	NumEffects = 64
	// NumNotes is the number of notes decoded for each sound effect
	NumNotes = 31
	// Size is the size in bytes of the sound effect section
	Size = NumEffects * effectSize

	effectSize   = 68
	headerOffset = 64
)

// ErrSize is returned when the section is not 4352 bytes
var ErrSize = errors.New("sfx: wrong size")

// Note is a single step of a sound effect
type Note struct {
	Pitch        uint8
	Waveform     Waveform
	Volume       uint8
	Effect       Effect
	Continuation bool
}

// SFX is a single sound effect
type SFX struct {
	Index     int
	Notes     [NumNotes]Note
	Mode      uint8
	Speed     uint8
	LoopStart uint8
	LoopEnd   uint8
}

// Empty reports whether every note of the sound effect is silent
func (s *SFX) Empty() bool {
	for _, n := range s.Notes {
		if n.Volume != 0 {
			return false
		}
	}
	return true
}

func decodeNote(w uint16) Note {
	return Note{
		Pitch:        uint8(w & 0x3f),
		Waveform:     Waveform(w >> 6 & 0x07),
		Volume:       uint8(w >> 9 & 0x07),
		Effect:       Effect(w >> 12 & 0x07),
		Continuation: w>>15&0x01 != 0,
	}
}

func decodeSFX(index int, b []byte) SFX {
	s := SFX{
		Index:     index,
		Mode:      b[headerOffset+0],
		Speed:     b[headerOffset+1],
		LoopStart: b[headerOffset+2],
		LoopEnd:   b[headerOffset+3],
	}
	for i := range s.Notes {
		s.Notes[i] = decodeNote(binary.LittleEndian.Uint16(b[i<<1:]))
	}
	return s
}

// Decode returns the 64 sound effects held in b
func Decode(b []byte) ([]SFX, error) {
	if len(b) != Size {
		return nil, fmt.Errorf("%w: %d bytes, expected %d", ErrSize, len(b), Size)
	}

	effects := make([]SFX, NumEffects)
	for i := range effects {
		effects[i] = decodeSFX(i, b[i*effectSize:(i+1)*effectSize])
	}

	return effects, nil
}
