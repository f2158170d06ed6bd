// Package lfo provides the periodic modulator behind a tone's frequency
// modulation (vibrato): a low-frequency oscillator sampled once per audio
// frame.
package lfo

import "math"

// Waveform constants for the modulator shape.
const (
	WaveSine = iota
	WaveSquare
	WaveTriangle
	WaveSaw
)

// LFO produces per-sample modulation in [-depth, +depth]. One instance
// belongs to one rendered event; it is not shared.
type LFO struct {
	depth    float64 // peak deviation (Hz when modulating frequency)
	rateHz   float64
	waveform int
	phase    float64 // current phase [0, 1)
}

// Set configures the modulator. Unknown waveforms fall back to sine.
func (l *LFO) Set(depth, rateHz float64, waveform int) {
	l.depth = depth
	l.rateHz = rateHz
	if waveform < WaveSine || waveform > WaveSaw {
		waveform = WaveSine
	}
	l.waveform = waveform
}

// Sample advances the oscillator by one sample period and returns the
// modulation value. Returns 0 when depth or rate is zero.
func (l *LFO) Sample(sampleRate float64) float64 {
	if l.depth == 0 || l.rateHz == 0 || sampleRate == 0 {
		return 0
	}
	var v float64
	switch l.waveform {
	case WaveSquare:
		if l.phase < 0.5 {
			v = 1
		} else {
			v = -1
		}
	case WaveTriangle:
		if l.phase < 0.5 {
			v = 4*l.phase - 1
		} else {
			v = 3 - 4*l.phase
		}
	case WaveSaw:
		v = 1 - 2*l.phase
	default:
		v = math.Sin(2 * math.Pi * l.phase)
	}
	l.phase += l.rateHz / sampleRate
	for l.phase >= 1 {
		l.phase -= 1
	}
	return v * l.depth
}

// Active reports whether sampling would produce non-zero modulation.
func (l *LFO) Active() bool {
	return l.depth != 0 && l.rateHz != 0
}

// Reset zeros the oscillator phase.
func (l *LFO) Reset() {
	l.phase = 0
}
