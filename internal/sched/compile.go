package sched

import (
	"math"
	"sort"

	"github.com/cbegin/spa-go/internal/envelope"
	"github.com/cbegin/spa-go/internal/sound"
)

// DefaultRepeatWindow bounds infinite repeats when the caller does not ask
// for a specific window.
const DefaultRepeatWindow = 60.0

// Options configure one compilation. Every call is independent and
// reentrant; nothing is shared across concurrent compiles.
type Options struct {
	// Offset compiles a partial schedule beginning mid-playback: events
	// that started before the offset are dropped (a resumed schedule does
	// not re-enter half-played sounds) and the remainder is shifted so the
	// first playable moment is time zero.
	Offset float64

	// MaxRepeatWindow is the timeline span, in seconds, over which
	// "infinite" repeats are materialized. Zero means DefaultRepeatWindow.
	MaxRepeatWindow float64

	// NoiseSeed is the base seed for noise events. Each noise event derives
	// its own seed from this base and its position in the walk, so a
	// compile is reproducible end to end. Zero is a valid base.
	NoiseSeed uint32
}

// Compile resolves references, expands repeats, evaluates envelopes, and
// flattens the document tree into a time-ordered list of render events.
// It is pure: the input document is never mutated and no backend is
// touched. Top-level sounds all start at the playback origin; document
// order breaks ties between simultaneous events.
func Compile(doc *sound.Document, opts Options) ([]Event, error) {
	resolved, err := sound.ResolveReferences(doc)
	if err != nil {
		return nil, err
	}
	if opts.MaxRepeatWindow <= 0 {
		opts.MaxRepeatWindow = DefaultRepeatWindow
	}
	c := &compiler{opts: opts}
	for _, n := range resolved.Sounds {
		if err := c.walk(n, 0, 1, 0); err != nil {
			return nil, err
		}
	}
	events := c.events
	if opts.Offset > 0 {
		kept := events[:0]
		for _, ev := range events {
			if ev.Start < opts.Offset {
				continue
			}
			ev.Start -= opts.Offset
			ev.Env = shiftBreakpoints(ev.Env, -opts.Offset)
			kept = append(kept, ev)
		}
		events = kept
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Start < events[j].Start
	})
	return events, nil
}

type compiler struct {
	opts   Options
	events []Event
	seq    uint32 // per-walk event counter for noise seed derivation
}

// walk places node n at absolute base time, with accumulated group
// amplitude scaling and pan shift. Group-level automation curves flatten to
// their start value when combined onto children; only constants compose.
func (c *compiler) walk(n sound.Node, base, ampScale, panShift float64) error {
	switch n.Kind {
	case sound.KindTone, sound.KindNoise:
		return c.walkLeaf(n, base, ampScale, panShift)
	case sound.KindGroup:
		ampScale *= flatten(n.Amp)
		if n.Pan != nil {
			panShift = clampPan(panShift + flatten(*n.Pan))
		}
		for _, child := range n.Children {
			if err := c.walk(child, base, ampScale, panShift); err != nil {
				return err
			}
		}
		return nil
	case sound.KindSequence:
		// Placement follows `at`, not declaration order.
		elements := make([]sound.Element, len(n.Elements))
		copy(elements, n.Elements)
		sort.SliceStable(elements, func(i, j int) bool {
			return elements[i].At < elements[j].At
		})
		for _, el := range elements {
			if el.At < 0 {
				return &SchedulingError{Node: describe(n), Msg: "sequence element offset is negative"}
			}
			if err := c.walk(el.Sound, base+el.At, ampScale, panShift); err != nil {
				return err
			}
		}
		return nil
	default:
		return &SchedulingError{Msg: "unknown node kind"}
	}
}

func (c *compiler) walkLeaf(n sound.Node, base, ampScale, panShift float64) error {
	if n.Dur <= 0 {
		return &SchedulingError{Node: describe(n), Msg: "duration must be positive"}
	}
	maxCount := 1
	if n.Repeat != nil && n.Repeat.Infinite {
		if n.Repeat.Interval <= 0 {
			return &SchedulingError{Node: describe(n), Msg: "infinite repeat requires a positive interval"}
		}
		maxCount = int(math.Floor((c.opts.MaxRepeatWindow-n.Repeat.Delay)/n.Repeat.Interval)) + 1
		if maxCount < 1 {
			maxCount = 1
		}
	}
	for _, inst := range Expand(n, maxCount) {
		start := base + inst.Offset
		if start < 0 {
			return &SchedulingError{Node: describe(n), Msg: "computed start time is negative"}
		}
		ev, err := c.leafEvent(inst.Node, start, ampScale, panShift)
		if err != nil {
			return err
		}
		c.events = append(c.events, ev)
	}
	return nil
}

func (c *compiler) leafEvent(n sound.Node, start, ampScale, panShift float64) (Event, error) {
	ev := Event{
		ID:    n.ID,
		Start: start,
		Dur:   n.Dur,
		Amp:   toParam(n.Amp.Scale(ampScale)),
	}
	switch n.Kind {
	case sound.KindTone:
		ev.Kind = KindTone
		ev.Wave = n.Wave
		freq := n.Freq
		if n.Phase != 0 {
			// Detune in cents becomes a plain frequency multiplier.
			freq = freq.Scale(math.Pow(2, n.Phase/1200))
		}
		ev.Freq = toParam(freq)
		if n.FreqMod != nil {
			mod := *n.FreqMod
			ev.FreqMod = &mod
		}
	case sound.KindNoise:
		ev.Kind = KindNoise
		ev.Color = toColor(n.Color)
		ev.Seed = c.opts.NoiseSeed + c.seq*2654435761
	}
	c.seq++

	pan := Param{}
	if n.Pan != nil {
		pan = toParam(*n.Pan)
	}
	if panShift != 0 {
		if pan.Curve != nil {
			curve := *pan.Curve
			curve.Start = clampPan(curve.Start + panShift)
			curve.End = clampPan(curve.End + panShift)
			pan.Curve = &curve
		} else {
			pan.Value = clampPan(pan.Value + panShift)
		}
	}
	ev.Pan = pan

	if n.Envelope != nil && n.Envelope.Env != nil {
		env := *n.Envelope.Env
		ev.Env = envelope.Breakpoints(envelope.ADSR{
			Attack:  env.Attack,
			Decay:   env.Decay,
			Sustain: env.Sustain,
			Release: env.Release,
		}, start, n.Dur)
	} else {
		ev.Env = envelope.DefaultFade(start, n.Dur)
	}

	if n.Filter != nil && n.Filter.Filter != nil {
		f := n.Filter.Filter
		ev.Filter = &FilterSpec{
			Type:      f.Type,
			Cutoff:    toParam(f.Cutoff),
			Resonance: toParam(f.Resonance),
			Gain:      f.Gain,
			Detune:    f.Detune,
		}
	}
	return ev, nil
}

// flatten reduces a parameter to a single scaling constant; automation on a
// group collapses to its start value.
func flatten(p sound.Param) float64 {
	if p.Curve != nil {
		return p.Curve.Start
	}
	return p.Value
}

func clampPan(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}

func shiftBreakpoints(points []envelope.Breakpoint, by float64) []envelope.Breakpoint {
	out := make([]envelope.Breakpoint, len(points))
	for i, bp := range points {
		bp.Time += by
		out[i] = bp
	}
	return out
}

func describe(n sound.Node) string {
	if n.ID != "" {
		return n.Kind.String() + " " + n.ID
	}
	return n.Kind.String()
}
