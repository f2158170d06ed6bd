// Package envelope schedules ADSR amplitude shapes as ordered
// (time, level) breakpoints on an absolute timeline.
package envelope

// ADSR holds attack/decay/release in seconds and a 0..1 sustain level.
type ADSR struct {
	Attack  float64
	Decay   float64
	Sustain float64
	Release float64
}

// Breakpoint is a point on a gain ramp; consumers interpolate linearly
// between consecutive points.
type Breakpoint struct {
	Time  float64
	Level float64
}

// defaultFade is the anti-click fade applied when a sound has no envelope.
const defaultFade = 0.010

// Breakpoints expands an ADSR over a sound lasting dur seconds starting at
// start. The shape is always five points: rise to full level over the
// attack, fall to the sustain level over the decay, hold until release
// begins, fall to zero at the end. When attack+decay reaches into the
// release region the sustain hold degenerates to zero length; when the
// phases exceed the total duration the times are clipped at start+dur,
// never reordered.
func Breakpoints(env ADSR, start, dur float64) []Breakpoint {
	end := start + dur
	clip := func(t float64) float64 {
		if t > end {
			return end
		}
		return t
	}
	attackEnd := clip(start + env.Attack)
	decayEnd := clip(start + env.Attack + env.Decay)
	hold := start + env.Attack + env.Decay
	if r := start + dur - env.Release; r > hold {
		hold = r
	}
	return []Breakpoint{
		{Time: start, Level: 0},
		{Time: attackEnd, Level: 1},
		{Time: decayEnd, Level: env.Sustain},
		{Time: clip(hold), Level: env.Sustain},
		{Time: end, Level: 0},
	}
}

// DefaultFade is the implicit envelope for sounds that declare none: a
// 10 ms linear fade in and out, shrunk to half the duration each when the
// sound is shorter than 20 ms. It exists to avoid discontinuity clicks and
// is not a user-visible envelope.
func DefaultFade(start, dur float64) []Breakpoint {
	fade := defaultFade
	if dur < 2*fade {
		fade = dur / 2
	}
	return []Breakpoint{
		{Time: start, Level: 0},
		{Time: start + fade, Level: 1},
		{Time: start + dur - fade, Level: 1},
		{Time: start + dur, Level: 0},
	}
}

// LevelAt linearly interpolates a breakpoint list at time t. Before the
// first point it returns the first level, after the last the last level.
func LevelAt(points []Breakpoint, t float64) float64 {
	if len(points) == 0 {
		return 1
	}
	if t <= points[0].Time {
		return points[0].Level
	}
	for i := 1; i < len(points); i++ {
		if t <= points[i].Time {
			prev, next := points[i-1], points[i]
			span := next.Time - prev.Time
			if span <= 0 {
				return next.Level
			}
			frac := (t - prev.Time) / span
			return prev.Level + (next.Level-prev.Level)*frac
		}
	}
	return points[len(points)-1].Level
}
