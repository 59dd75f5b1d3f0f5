package sfx

import "fmt"

// Waveform is the instrument used to play a note
type Waveform uint8

// Waveforms
const (
	WaveformTriangle Waveform = iota
	WaveformTiltedSaw
	WaveformSaw
	WaveformSquare
	WaveformPulse
	WaveformOrgan
	WaveformNoise
	WaveformPhaser
)

var waveformNames = [...]string{
	"triangle",
	"tilted saw",
	"saw",
	"square",
	"pulse",
	"organ",
	"noise",
	"phaser",
}

func (w Waveform) String() string {
	if int(w) < len(waveformNames) {
		return waveformNames[w]
	}
	return fmt.Sprintf("waveform(%d)", uint8(w))
}

// Effect modifies how a note is played
type Effect uint8

// Effects
const (
	EffectNone Effect = iota
	EffectSlide
	EffectVibrato
	EffectDrop
	EffectFadeIn
	EffectFadeOut
	EffectArpeggioFast
	EffectArpeggioSlow
)

var effectNames = [...]string{
	"none",
	"slide",
	"vibrato",
	"drop",
	"fade in",
	"fade out",
	"arpeggio fast",
	"arpeggio slow",
}

func (e Effect) String() string {
	if int(e) < len(effectNames) {
		return effectNames[e]
	}
	return fmt.Sprintf("effect(%d)", uint8(e))
}
