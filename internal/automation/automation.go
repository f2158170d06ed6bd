// Package automation turns start/end/shape parameter descriptions into
// closed-form functions of elapsed time. The same evaluation feeds both the
// breakpoints handed to a backend's native ramps and offline
// sample-accurate rendering.
package automation

import "math"

// expFloor is the minimum magnitude either endpoint of an exponential ramp
// may take; a true zero endpoint has no geometric interpolation.
const expFloor = 1e-4

type Shape int

const (
	Linear Shape = iota + 1
	Exponential
	Step
)

// Curve is a fully resolved automation descriptor.
type Curve struct {
	Start    float64
	End      float64
	Shape    Shape
	Duration float64 // 0 = the owning parameter's natural span
}

// Evaluate returns the curve value at elapsed seconds into a parameter
// whose natural span is span seconds. When the curve carries an explicit
// Duration it overrides the span; elapsed time is clamped to the effective
// duration either way.
//
// Step holds Start for the whole ramp and jumps to End exactly at the
// ramp's duration (never a midpoint, never a staircase).
func Evaluate(c Curve, elapsed, span float64) float64 {
	d := c.Duration
	if d <= 0 {
		d = span
	}
	if d <= 0 {
		return c.Start
	}
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > d {
		elapsed = d
	}
	switch c.Shape {
	case Exponential:
		start := clampMagnitude(c.Start)
		end := clampMagnitude(c.End)
		if start*end < 0 {
			// A geometric ramp cannot cross zero; sign-crossing
			// endpoints interpolate linearly instead.
			return c.Start + (c.End-c.Start)*(elapsed/d)
		}
		return start * math.Pow(end/start, elapsed/d)
	case Step:
		if elapsed < d {
			return c.Start
		}
		return c.End
	default:
		return c.Start + (c.End-c.Start)*(elapsed/d)
	}
}

// clampMagnitude keeps exponential endpoints away from zero, preserving
// sign for negative ramps.
func clampMagnitude(v float64) float64 {
	if v >= 0 && v < expFloor {
		return expFloor
	}
	if v < 0 && v > -expFloor {
		return -expFloor
	}
	return v
}
