package sched

import (
	"fmt"

	"github.com/cbegin/spa-go/internal/automation"
	"github.com/cbegin/spa-go/internal/envelope"
	"github.com/cbegin/spa-go/internal/noise"
	"github.com/cbegin/spa-go/internal/sound"
)

// Kind identifies what a scheduled event renders.
type Kind int

const (
	KindTone Kind = iota + 1
	KindNoise
)

func (k Kind) String() string {
	if k == KindNoise {
		return "noise"
	}
	return "tone"
}

// Param is a fully resolved event parameter: a constant, or an automation
// descriptor the backend can ramp natively.
type Param struct {
	Value float64
	Curve *automation.Curve
}

// At evaluates the parameter at elapsed seconds into an event spanning
// span seconds.
func (p Param) At(elapsed, span float64) float64 {
	if p.Curve != nil {
		return automation.Evaluate(*p.Curve, elapsed, span)
	}
	return p.Value
}

// FilterSpec is a resolved biquad description attached to an event.
type FilterSpec struct {
	Type      sound.FilterType
	Cutoff    Param
	Resonance Param
	Gain      float64 // dB, peaking/shelf only
	Detune    float64 // cents applied to the cutoff
}

// Event is one primitive render operation. Events are immutable once
// compiled and owned by the caller that requested compilation; no
// references back into the source document survive.
type Event struct {
	Kind  Kind
	ID    string
	Start float64 // absolute seconds from playback origin
	Dur   float64

	// tone
	Wave    sound.Wave
	Freq    Param
	FreqMod *sound.Modulator

	// noise
	Color noise.Color
	Seed  uint32

	Amp    Param
	Pan    Param
	Env    []envelope.Breakpoint
	Filter *FilterSpec
}

// End returns the event's absolute end time.
func (e Event) End() float64 { return e.Start + e.Dur }

// SchedulingError reports an invalid duration/repeat combination that makes
// a schedule unrenderable. It aborts compilation.
type SchedulingError struct {
	Node string
	Msg  string
}

func (e *SchedulingError) Error() string {
	if e.Node != "" {
		return fmt.Sprintf("scheduling error in %s: %s", e.Node, e.Msg)
	}
	return "scheduling error: " + e.Msg
}

func toParam(p sound.Param) Param {
	if p.Curve == nil {
		return Param{Value: p.Value}
	}
	return Param{Curve: &automation.Curve{
		Start:    p.Curve.Start,
		End:      p.Curve.End,
		Shape:    toShape(p.Curve.Shape),
		Duration: p.Curve.Duration,
	}}
}

func toShape(s sound.CurveShape) automation.Shape {
	switch s {
	case sound.CurveExponential:
		return automation.Exponential
	case sound.CurveStep:
		return automation.Step
	default:
		return automation.Linear
	}
}

func toColor(c sound.Color) noise.Color {
	switch c {
	case sound.ColorPink:
		return noise.Pink
	case sound.ColorBrown:
		return noise.Brown
	case sound.ColorBlue:
		return noise.Blue
	default:
		return noise.White
	}
}
