package effects

import (
	"math"
	"testing"
)

// rms pushes a sine of the given frequency through the filter and measures
// output energy after the transient settles.
func rms(f Effector, freq float64, sampleRate int) float64 {
	const n = 8192
	var sum float64
	var count int
	for i := 0; i < n; i++ {
		x := float32(math.Sin(2 * math.Pi * freq * float64(i) / float64(sampleRate)))
		y, _ := f.Process(x, x)
		if i >= n/2 {
			sum += float64(y) * float64(y)
			count++
		}
	}
	return math.Sqrt(sum / float64(count))
}

func TestLowpassAttenuatesHighs(t *testing.T) {
	const sr = 48000
	low := rms(NewBiquad(sr, Lowpass, 1000, 0.707, 0), 100, sr)
	high := rms(NewBiquad(sr, Lowpass, 1000, 0.707, 0), 10000, sr)
	if high > low/4 {
		t.Fatalf("lowpass barely attenuated 10kHz: low=%g high=%g", low, high)
	}
}

func TestHighpassAttenuatesLows(t *testing.T) {
	const sr = 48000
	low := rms(NewBiquad(sr, Highpass, 1000, 0.707, 0), 100, sr)
	high := rms(NewBiquad(sr, Highpass, 1000, 0.707, 0), 10000, sr)
	if low > high/4 {
		t.Fatalf("highpass barely attenuated 100Hz: low=%g high=%g", low, high)
	}
}

func TestBandpassPeaksAtCenter(t *testing.T) {
	const sr = 48000
	center := rms(NewBiquad(sr, Bandpass, 2000, 2, 0), 2000, sr)
	off := rms(NewBiquad(sr, Bandpass, 2000, 2, 0), 200, sr)
	if center < off*2 {
		t.Fatalf("bandpass not selective: center=%g off=%g", center, off)
	}
}

func TestNotchRejectsCenter(t *testing.T) {
	const sr = 48000
	center := rms(NewBiquad(sr, Notch, 2000, 4, 0), 2000, sr)
	off := rms(NewBiquad(sr, Notch, 2000, 4, 0), 200, sr)
	if center > off/2 {
		t.Fatalf("notch did not reject its center: center=%g off=%g", center, off)
	}
}

func TestAllpassPreservesEnergy(t *testing.T) {
	const sr = 48000
	out := rms(NewBiquad(sr, Allpass, 1000, 0.707, 0), 440, sr)
	// Unit sine has RMS 1/sqrt(2).
	want := 1 / math.Sqrt2
	if math.Abs(out-want) > 0.05 {
		t.Fatalf("allpass changed magnitude: got %g want %g", out, want)
	}
}

func TestPeakingBoost(t *testing.T) {
	const sr = 48000
	boosted := rms(NewBiquad(sr, Peaking, 1000, 1, 12), 1000, sr)
	flat := rms(NewBiquad(sr, Peaking, 1000, 1, 0), 1000, sr)
	if boosted < flat*1.5 {
		t.Fatalf("+12dB peak had no effect: boosted=%g flat=%g", boosted, flat)
	}
}

func TestConfigureClampsDegenerateInput(t *testing.T) {
	f := NewBiquad(48000, Lowpass, -500, -1, 0)
	y, _ := f.Process(1, 1)
	if math.IsNaN(float64(y)) || math.IsInf(float64(y), 0) {
		t.Fatalf("degenerate configuration produced %g", y)
	}
}

func TestResetClearsState(t *testing.T) {
	f := NewBiquad(48000, Lowpass, 1000, 0.707, 0)
	for i := 0; i < 100; i++ {
		f.Process(1, 1)
	}
	f.Reset()
	g := NewBiquad(48000, Lowpass, 1000, 0.707, 0)
	for i := 0; i < 10; i++ {
		yl1, _ := f.Process(0.5, 0.5)
		yl2, _ := g.Process(0.5, 0.5)
		if yl1 != yl2 {
			t.Fatalf("reset filter diverged from fresh filter at sample %d", i)
		}
	}
}
