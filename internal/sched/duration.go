package sched

import (
	"math"

	"github.com/cbegin/spa-go/internal/sound"
)

// Duration computes the total wall-clock time a node occupies, recursively.
// Groups end when their longest child ends; sequences when the latest
// (at + child duration) ends; empty collections occupy zero time. A node
// with an infinite repeat has unbounded duration: the result is +Inf and no
// expansion happens here — callers wanting a schedule bound the window
// explicitly via Options.MaxRepeatWindow.
func Duration(n sound.Node) float64 {
	switch n.Kind {
	case sound.KindTone, sound.KindNoise:
		return leafDuration(n)
	case sound.KindGroup:
		var max float64
		for _, c := range n.Children {
			if d := Duration(c); d > max {
				max = d
			}
		}
		return max
	case sound.KindSequence:
		var max float64
		for _, el := range n.Elements {
			if d := el.At + Duration(el.Sound); d > max {
				max = d
			}
		}
		return max
	default:
		return 0
	}
}

// leafDuration is the node's own dur stretched by its repeat spec: the last
// repetition contributes its full dur after its start, not another
// interval.
func leafDuration(n sound.Node) float64 {
	if n.Repeat == nil {
		return n.Dur
	}
	r := n.Repeat
	if r.Infinite {
		return math.Inf(1)
	}
	count := r.Count
	if count < 1 {
		count = 1
	}
	return r.Delay + float64(count-1)*r.Interval + n.Dur
}
