// Package render executes a compiled schedule as stereo float32 audio. It
// is the reference implementation of the backend contract: oscillators
// with automatable frequency, noise-buffer sources, envelope gain, biquad
// filters and stereo panning, mixed to a single output. Rendering is
// deterministic for a given schedule and sample rate.
package render

import (
	"math"

	"github.com/cbegin/spa-go/internal/effects"
	"github.com/cbegin/spa-go/internal/envelope"
	"github.com/cbegin/spa-go/internal/lfo"
	"github.com/cbegin/spa-go/internal/noise"
	"github.com/cbegin/spa-go/internal/sched"
	"github.com/cbegin/spa-go/internal/sound"
)

// pulseDuty is the duty cycle of the pulse waveform; square is a pulse at
// one half.
const pulseDuty = 0.25

// filterUpdateFrames is how often an automated filter cutoff recomputes
// its coefficients. Per-sample recomputation buys nothing audible.
const filterUpdateFrames = 64

// Renderer streams a schedule. It implements the audio.SampleSource
// contract (Process into an interleaved stereo buffer) and reports when
// every event has finished.
type Renderer struct {
	sampleRate float64
	voices     []*voice // sorted by start frame, as compiled
	next       int
	active     []*voice
	frame      int64
	endFrame   int64
	master     float64
}

type voice struct {
	ev     sched.Event
	startF int64
	endF   int64
	phase  float64
	mod    lfo.LFO

	// The filter path is an effects chain; biquad keeps a handle on the
	// stage that gets reconfigured when the cutoff is automated.
	fx         *effects.Chain
	biquad     *effects.Biquad
	filterAuto bool

	bufL, bufR []float32
}

// New prepares a renderer for a compiled, time-ordered schedule. Noise
// buffers are synthesized up front from each event's seed, one per channel
// with decorrelated seeds.
func New(events []sched.Event, sampleRate int) *Renderer {
	r := &Renderer{
		sampleRate: float64(sampleRate),
		voices:     make([]*voice, 0, len(events)),
		master:     1,
	}
	for _, ev := range events {
		v := &voice{
			ev:     ev,
			startF: int64(math.Round(ev.Start * r.sampleRate)),
			endF:   int64(math.Round(ev.End() * r.sampleRate)),
		}
		if v.endF > r.endFrame {
			r.endFrame = v.endF
		}
		if ev.Kind == sched.KindNoise {
			n := int(v.endF - v.startF)
			v.bufL = noise.Synthesize(ev.Color, n, ev.Seed)
			v.bufR = noise.Synthesize(ev.Color, n, ev.Seed^0x9e3779b9)
		}
		if ev.FreqMod != nil {
			v.mod.Set(ev.FreqMod.Depth, ev.FreqMod.RateHz, modWave(ev.FreqMod.Wave))
		}
		if f := ev.Filter; f != nil {
			v.biquad = effects.NewBiquad(sampleRate, biquadType(f.Type), filterCutoff(f, 0, ev.Dur), f.Resonance.At(0, ev.Dur), f.Gain)
			v.fx = effects.NewChain(v.biquad)
			v.filterAuto = f.Cutoff.Curve != nil || f.Resonance.Curve != nil
		}
		r.voices = append(r.voices, v)
	}
	return r
}

// SetMasterGain scales the final mix.
func (r *Renderer) SetMasterGain(g float64) {
	if g < 0 {
		g = 0
	}
	r.master = g
}

// Duration returns the schedule's total length in seconds.
func (r *Renderer) Duration() float64 {
	return float64(r.endFrame) / r.sampleRate
}

// Finished reports whether every event has been rendered to completion.
func (r *Renderer) Finished() bool {
	return r.next >= len(r.voices) && len(r.active) == 0
}

// Process fills dst with interleaved stereo frames, advancing the stream.
func (r *Renderer) Process(dst []float32) {
	frames := len(dst) / 2
	for f := 0; f < frames; f++ {
		// Activate voices whose start frame has arrived.
		for r.next < len(r.voices) && r.voices[r.next].startF <= r.frame {
			r.active = append(r.active, r.voices[r.next])
			r.next++
		}
		var mixL, mixR float64
		alive := r.active[:0]
		for _, v := range r.active {
			if r.frame >= v.endF {
				continue
			}
			l, rr := r.renderVoice(v)
			mixL += l
			mixR += rr
			alive = append(alive, v)
		}
		r.active = alive
		dst[f*2] = float32(clamp(mixL*r.master, -1, 1))
		dst[f*2+1] = float32(clamp(mixR*r.master, -1, 1))
		r.frame++
	}
}

func (r *Renderer) renderVoice(v *voice) (float64, float64) {
	rel := r.frame - v.startF
	elapsed := float64(rel) / r.sampleRate
	ev := &v.ev

	var sl, sr float64
	if ev.Kind == sched.KindNoise {
		if i := int(rel); i < len(v.bufL) {
			sl = float64(v.bufL[i])
			sr = float64(v.bufR[i])
		}
	} else {
		s := r.renderTone(v, elapsed)
		sl, sr = s, s
	}

	gain := envelope.LevelAt(ev.Env, ev.Start+elapsed) * ev.Amp.At(elapsed, ev.Dur)
	sl *= gain
	sr *= gain

	// Equal-power pan.
	pan := ev.Pan.At(elapsed, ev.Dur)
	angle := (pan + 1) * math.Pi / 4
	sl *= math.Cos(angle)
	sr *= math.Sin(angle)

	if v.fx != nil {
		if v.filterAuto && rel%filterUpdateFrames == 0 {
			f := ev.Filter
			v.biquad.Configure(filterCutoff(f, elapsed, ev.Dur), f.Resonance.At(elapsed, ev.Dur), f.Gain)
		}
		fl, fr := v.fx.Process(float32(sl), float32(sr))
		sl, sr = float64(fl), float64(fr)
	}
	return sl, sr
}

func (r *Renderer) renderTone(v *voice, elapsed float64) float64 {
	freq := v.ev.Freq.At(elapsed, v.ev.Dur)
	if v.mod.Active() {
		freq += v.mod.Sample(r.sampleRate)
	}
	if freq < 0 {
		freq = 0
	}
	dt := freq / r.sampleRate
	v.phase += dt
	if v.phase >= 1 {
		v.phase -= 1
	}
	switch v.ev.Wave {
	case sound.WaveSquare:
		return pulseWave(v.phase, dt, 0.5)
	case sound.WavePulse:
		return pulseWave(v.phase, dt, pulseDuty)
	case sound.WaveTriangle:
		return 2*math.Abs(2*v.phase-1) - 1
	case sound.WaveSaw:
		return 2*v.phase - 1 - polyBLEP(v.phase, dt)
	default:
		// sine; custom waves render as sine in the reference backend.
		return math.Sin(2 * math.Pi * v.phase)
	}
}

func pulseWave(phase, dt, duty float64) float64 {
	out := -1.0
	if phase < duty {
		out = 1
	}
	out += polyBLEP(phase, dt)
	out -= polyBLEP(math.Mod(phase-duty+1, 1), dt)
	return out
}

func polyBLEP(t, dt float64) float64 {
	if dt <= 0 {
		return 0
	}
	if t < dt {
		t /= dt
		return t + t - t*t - 1
	}
	if t > 1-dt {
		t = (t - 1) / dt
		return t*t + t + t + 1
	}
	return 0
}

// filterCutoff applies the filter's detune (cents) on top of the cutoff
// parameter at the given elapsed time.
func filterCutoff(f *sched.FilterSpec, elapsed, span float64) float64 {
	cut := f.Cutoff.At(elapsed, span)
	if f.Detune != 0 {
		cut *= math.Pow(2, f.Detune/1200)
	}
	return cut
}

func biquadType(t sound.FilterType) effects.BiquadType {
	switch t {
	case sound.FilterHighpass:
		return effects.Highpass
	case sound.FilterBandpass:
		return effects.Bandpass
	case sound.FilterNotch:
		return effects.Notch
	case sound.FilterAllpass:
		return effects.Allpass
	case sound.FilterPeaking:
		return effects.Peaking
	case sound.FilterLowshelf:
		return effects.Lowshelf
	case sound.FilterHighshelf:
		return effects.Highshelf
	default:
		return effects.Lowpass
	}
}

func modWave(w sound.Wave) int {
	switch w {
	case sound.WaveSquare, sound.WavePulse:
		return lfo.WaveSquare
	case sound.WaveTriangle:
		return lfo.WaveTriangle
	case sound.WaveSaw:
		return lfo.WaveSaw
	default:
		return lfo.WaveSine
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Render renders a whole schedule to an interleaved stereo buffer in one
// call.
func Render(events []sched.Event, sampleRate int) []float32 {
	r := New(events, sampleRate)
	out := make([]float32, int(r.endFrame)*2)
	r.Process(out)
	return out
}
