package sched

import (
	"math"
	"testing"

	"github.com/cbegin/spa-go/internal/sound"
)

func TestExpandNoRepeat(t *testing.T) {
	insts := Expand(tone(0.5), 100)
	if len(insts) != 1 {
		t.Fatalf("expected 1 instance, got %d", len(insts))
	}
	if insts[0].Offset != 0 {
		t.Fatalf("expected offset 0, got %g", insts[0].Offset)
	}
}

func TestExpandOffsetsAndDecay(t *testing.T) {
	n := tone(0.1)
	n.Repeat = &sound.Repeat{Count: 3, Interval: 0.5, Delay: 0.2, Decay: 0.5}
	insts := Expand(n, 100)
	if len(insts) != 3 {
		t.Fatalf("expected 3 instances, got %d", len(insts))
	}
	wantOffsets := []float64{0.2, 0.7, 1.2}
	wantAmps := []float64{1, 0.5, 0.25}
	for i, inst := range insts {
		if math.Abs(inst.Offset-wantOffsets[i]) > 1e-9 {
			t.Fatalf("instance %d: expected offset %g, got %g", i, wantOffsets[i], inst.Offset)
		}
		if math.Abs(inst.Node.Amp.Value-wantAmps[i]) > 1e-9 {
			t.Fatalf("instance %d: expected amp %g, got %g", i, wantAmps[i], inst.Node.Amp.Value)
		}
		if inst.Node.Repeat != nil {
			t.Fatalf("instance %d still carries a repeat spec", i)
		}
	}
}

func TestExpandFullDecaySilences(t *testing.T) {
	n := tone(0.1)
	n.Repeat = &sound.Repeat{Count: 3, Interval: 0.5, Decay: 1}
	insts := Expand(n, 100)
	if insts[1].Node.Amp.Value != 0 || insts[2].Node.Amp.Value != 0 {
		t.Fatalf("decay=1 must silence repetitions after the first: %g %g",
			insts[1].Node.Amp.Value, insts[2].Node.Amp.Value)
	}
}

func TestExpandPitchShift(t *testing.T) {
	n := tone(0.1)
	n.Freq = sound.Param{Value: 440}
	n.Repeat = &sound.Repeat{Count: 3, Interval: 0.5, PitchShift: 12}
	insts := Expand(n, 100)
	if insts[0].Node.Freq.Value != 440 {
		t.Fatalf("first instance must keep the base pitch, got %g", insts[0].Node.Freq.Value)
	}
	if math.Abs(insts[1].Node.Freq.Value-880) > 1e-9 {
		t.Fatalf("expected one octave up, got %g", insts[1].Node.Freq.Value)
	}
	if math.Abs(insts[2].Node.Freq.Value-1760) > 1e-9 {
		t.Fatalf("expected two octaves up, got %g", insts[2].Node.Freq.Value)
	}
}

func TestExpandPitchShiftScalesCurve(t *testing.T) {
	n := tone(0.1)
	n.Freq = sound.Param{Curve: &sound.Curve{Start: 440, End: 220, Shape: sound.CurveLinear}}
	n.Repeat = &sound.Repeat{Count: 2, Interval: 0.5, PitchShift: 12}
	insts := Expand(n, 100)
	c := insts[1].Node.Freq.Curve
	if c == nil || math.Abs(c.Start-880) > 1e-9 || math.Abs(c.End-440) > 1e-9 {
		t.Fatalf("curve endpoints must scale together, got %+v", c)
	}
	// The original node's curve is untouched.
	if n.Freq.Curve.Start != 440 {
		t.Fatalf("expansion mutated the source node")
	}
}

func TestExpandInfiniteUsesMaxCount(t *testing.T) {
	n := tone(0.1)
	n.Repeat = &sound.Repeat{Infinite: true, Interval: 0.5}
	insts := Expand(n, 7)
	if len(insts) != 7 {
		t.Fatalf("expected 7 instances, got %d", len(insts))
	}
}
