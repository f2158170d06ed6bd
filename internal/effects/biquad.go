package effects

import "math"

// BiquadType selects the frequency response of a Biquad.
type BiquadType int

const (
	Lowpass BiquadType = iota
	Highpass
	Bandpass
	Notch
	Allpass
	Peaking
	Lowshelf
	Highshelf
)

// Biquad is a two-pole two-zero IIR filter with coefficients from the RBJ
// audio EQ cookbook. Both stereo channels share coefficients but keep
// independent state.
type Biquad struct {
	sampleRate float64
	typ        BiquadType

	b0, b1, b2, a1, a2 float64

	x1L, x2L, y1L, y2L float64
	x1R, x2R, y1R, y2R float64
}

// NewBiquad creates a filter. freq is the cutoff/center in Hz, q the
// resonance, gainDB the boost/cut for peaking and shelf types (ignored
// otherwise).
func NewBiquad(sampleRate int, typ BiquadType, freq, q, gainDB float64) *Biquad {
	f := &Biquad{sampleRate: float64(sampleRate), typ: typ}
	f.Configure(freq, q, gainDB)
	return f
}

// Configure recomputes coefficients without clearing filter state, so
// automated cutoffs can sweep mid-stream.
func (f *Biquad) Configure(freq, q, gainDB float64) {
	if freq < 10 {
		freq = 10
	}
	if max := f.sampleRate * 0.49; freq > max {
		freq = max
	}
	if q < 1e-4 {
		q = 1e-4
	}
	w0 := 2 * math.Pi * freq / f.sampleRate
	cosW := math.Cos(w0)
	sinW := math.Sin(w0)
	alpha := sinW / (2 * q)
	bigA := math.Pow(10, gainDB/40)

	var b0, b1, b2, a0, a1, a2 float64
	switch f.typ {
	case Lowpass:
		b0 = (1 - cosW) / 2
		b1 = 1 - cosW
		b2 = (1 - cosW) / 2
		a0 = 1 + alpha
		a1 = -2 * cosW
		a2 = 1 - alpha
	case Highpass:
		b0 = (1 + cosW) / 2
		b1 = -(1 + cosW)
		b2 = (1 + cosW) / 2
		a0 = 1 + alpha
		a1 = -2 * cosW
		a2 = 1 - alpha
	case Bandpass:
		b0 = alpha
		b1 = 0
		b2 = -alpha
		a0 = 1 + alpha
		a1 = -2 * cosW
		a2 = 1 - alpha
	case Notch:
		b0 = 1
		b1 = -2 * cosW
		b2 = 1
		a0 = 1 + alpha
		a1 = -2 * cosW
		a2 = 1 - alpha
	case Allpass:
		b0 = 1 - alpha
		b1 = -2 * cosW
		b2 = 1 + alpha
		a0 = 1 + alpha
		a1 = -2 * cosW
		a2 = 1 - alpha
	case Peaking:
		b0 = 1 + alpha*bigA
		b1 = -2 * cosW
		b2 = 1 - alpha*bigA
		a0 = 1 + alpha/bigA
		a1 = -2 * cosW
		a2 = 1 - alpha/bigA
	case Lowshelf:
		sq := 2 * math.Sqrt(bigA) * alpha
		b0 = bigA * ((bigA + 1) - (bigA-1)*cosW + sq)
		b1 = 2 * bigA * ((bigA - 1) - (bigA+1)*cosW)
		b2 = bigA * ((bigA + 1) - (bigA-1)*cosW - sq)
		a0 = (bigA + 1) + (bigA-1)*cosW + sq
		a1 = -2 * ((bigA - 1) + (bigA+1)*cosW)
		a2 = (bigA + 1) + (bigA-1)*cosW - sq
	case Highshelf:
		sq := 2 * math.Sqrt(bigA) * alpha
		b0 = bigA * ((bigA + 1) + (bigA-1)*cosW + sq)
		b1 = -2 * bigA * ((bigA - 1) + (bigA+1)*cosW)
		b2 = bigA * ((bigA + 1) + (bigA-1)*cosW - sq)
		a0 = (bigA + 1) - (bigA-1)*cosW + sq
		a1 = 2 * ((bigA - 1) - (bigA+1)*cosW)
		a2 = (bigA + 1) - (bigA-1)*cosW - sq
	default:
		b0, a0 = 1, 1
	}
	f.b0 = b0 / a0
	f.b1 = b1 / a0
	f.b2 = b2 / a0
	f.a1 = a1 / a0
	f.a2 = a2 / a0
}

func (f *Biquad) Process(l, r float32) (float32, float32) {
	xl, xr := float64(l), float64(r)

	yl := f.b0*xl + f.b1*f.x1L + f.b2*f.x2L - f.a1*f.y1L - f.a2*f.y2L
	f.x2L, f.x1L = f.x1L, xl
	f.y2L, f.y1L = f.y1L, yl

	yr := f.b0*xr + f.b1*f.x1R + f.b2*f.x2R - f.a1*f.y1R - f.a2*f.y2R
	f.x2R, f.x1R = f.x1R, xr
	f.y2R, f.y1R = f.y1R, yr

	return float32(yl), float32(yr)
}

func (f *Biquad) Reset() {
	f.x1L, f.x2L, f.y1L, f.y2L = 0, 0, 0, 0
	f.x1R, f.x2R, f.y1R, f.y2R = 0, 0, 0, 0
}
