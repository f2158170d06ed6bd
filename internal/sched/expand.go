package sched

import (
	"math"

	"github.com/cbegin/spa-go/internal/sound"
)

// Instance is one materialized repetition of a leaf node, offset from the
// node's base time.
type Instance struct {
	Offset float64
	Node   sound.Node
}

// Expand materializes the repeat copies of a Tone/Noise leaf. Copy i starts
// at delay + i*interval, has its amplitude scaled by (1-decay)^i (clamped
// at zero), and — for tones — its frequency multiplied by
// 2^(i*pitchShift/12); automation curves are scaled on both endpoints so
// the ramp shape survives. Copies are ordinary leaf nodes with the repeat
// spec cleared. maxCount bounds infinite repeats; finite counts ignore it.
func Expand(n sound.Node, maxCount int) []Instance {
	if n.Repeat == nil {
		return []Instance{{Node: n}}
	}
	r := *n.Repeat
	count := r.Count
	if r.Infinite {
		count = maxCount
	}
	if count < 1 {
		count = 1
	}
	base := n
	base.Repeat = nil
	out := make([]Instance, 0, count)
	amp := 1.0
	for i := 0; i < count; i++ {
		inst := base
		inst.Amp = base.Amp.Scale(amp)
		if base.Kind == sound.KindTone && r.PitchShift != 0 && i > 0 {
			inst.Freq = base.Freq.Scale(math.Pow(2, float64(i)*r.PitchShift/12))
		}
		out = append(out, Instance{
			Offset: r.Delay + float64(i)*r.Interval,
			Node:   inst,
		})
		amp *= 1 - r.Decay
		if amp < 0 {
			amp = 0
		}
	}
	return out
}
