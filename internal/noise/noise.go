// Package noise generates colored-noise sample data with deterministic,
// seedable stochastic algorithms. Each color shapes the spectrum of the
// same white core differently; channels are synthesized independently with
// their own seeds (no stereo correlation).
package noise

type Color int

const (
	White Color = iota + 1
	Pink
	Brown
	Blue
)

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Pink:
		return "pink"
	case Brown:
		return "brown"
	case Blue:
		return "blue"
	default:
		return "unknown"
	}
}

// RNG is a xorshift32 generator. Seed 0 is remapped to 1 to avoid the
// all-zero lockup state.
type RNG struct {
	state uint32
}

func NewRNG(seed uint32) *RNG {
	if seed == 0 {
		seed = 1
	}
	return &RNG{state: seed}
}

// Float returns the next sample in [-1, 1].
func (r *RNG) Float() float64 {
	r.state ^= r.state << 13
	r.state ^= r.state >> 17
	r.state ^= r.state << 5
	u := float64(r.state) / float64(^uint32(0))
	return 2*u - 1
}

// Synthesize produces n samples of the requested color from the given
// seed. The same (color, n, seed) triple always yields the same samples.
func Synthesize(color Color, n int, seed uint32) []float32 {
	rng := NewRNG(seed)
	out := make([]float32, n)
	switch color {
	case Pink:
		synthesizePink(rng, out)
	case Brown:
		synthesizeBrown(rng, out)
	case Blue:
		synthesizeBlue(rng, out)
	default:
		for i := range out {
			out[i] = float32(rng.Float())
		}
	}
	return out
}

// synthesizePink runs white noise through Kellet's seven-pole running
// filter. The 0.11 factor normalizes the summed poles back to roughly
// unit amplitude.
func synthesizePink(rng *RNG, out []float32) {
	var b0, b1, b2, b3, b4, b5, b6 float64
	for i := range out {
		w := rng.Float()
		b0 = 0.99886*b0 + w*0.0555179
		b1 = 0.99332*b1 + w*0.0750759
		b2 = 0.96900*b2 + w*0.1538520
		b3 = 0.86650*b3 + w*0.3104856
		b4 = 0.55000*b4 + w*0.5329522
		b5 = -0.7616*b5 - w*0.0168980
		out[i] = float32((b0 + b1 + b2 + b3 + b4 + b5 + b6 + w*0.5362) * 0.11)
		b6 = w * 0.115926
	}
}

// synthesizeBrown integrates white noise leakily; the 3.5 factor
// normalizes the heavily lowpassed signal back up.
func synthesizeBrown(rng *RNG, out []float32) {
	var prev float64
	for i := range out {
		prev = (prev + 0.02*rng.Float()) / 1.02
		out[i] = float32(prev * 3.5)
	}
}

// synthesizeBlue differentiates white noise, tilting energy toward the
// high end.
func synthesizeBlue(rng *RNG, out []float32) {
	var prev float64
	for i := range out {
		w := rng.Float()
		out[i] = float32((w - prev) * 0.5)
		prev = w
	}
}
