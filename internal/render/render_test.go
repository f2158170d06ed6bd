package render

import (
	"math"
	"testing"

	"github.com/cbegin/spa-go/internal/envelope"
	"github.com/cbegin/spa-go/internal/noise"
	"github.com/cbegin/spa-go/internal/sched"
	"github.com/cbegin/spa-go/internal/sound"
)

func toneEvent(start, dur, freq float64) sched.Event {
	return sched.Event{
		Kind:  sched.KindTone,
		Start: start,
		Dur:   dur,
		Wave:  sound.WaveSine,
		Freq:  sched.Param{Value: freq},
		Amp:   sched.Param{Value: 1},
		Env:   envelope.DefaultFade(start, dur),
	}
}

func energy(samples []float32) float64 {
	var sum float64
	for _, s := range samples {
		sum += float64(s) * float64(s)
	}
	return sum
}

func TestRenderLengthAndSignal(t *testing.T) {
	const sr = 48000
	out := Render([]sched.Event{toneEvent(0, 0.5, 440)}, sr)
	if len(out) != sr/2*2 {
		t.Fatalf("expected %d samples, got %d", sr/2*2, len(out))
	}
	if energy(out) == 0 {
		t.Fatalf("rendered silence")
	}
	for i, s := range out {
		if s < -1 || s > 1 {
			t.Fatalf("sample %d out of range: %g", i, s)
		}
	}
}

func TestRenderDeterministic(t *testing.T) {
	events := []sched.Event{
		toneEvent(0, 0.3, 440),
		{
			Kind:  sched.KindNoise,
			Start: 0.1,
			Dur:   0.3,
			Color: noise.Pink,
			Seed:  42,
			Amp:   sched.Param{Value: 0.5},
			Env:   envelope.DefaultFade(0.1, 0.3),
		},
	}
	a := Render(events, 44100)
	b := Render(events, 44100)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("render diverged at sample %d", i)
		}
	}
}

func TestRenderRespectsStartTime(t *testing.T) {
	const sr = 48000
	out := Render([]sched.Event{toneEvent(0.5, 0.25, 440)}, sr)
	// The first half second is silent.
	lead := out[:int(0.4*sr)*2]
	if energy(lead) != 0 {
		t.Fatalf("signal before the event's start time")
	}
	body := out[int(0.5*sr)*2:]
	if energy(body) == 0 {
		t.Fatalf("no signal after the event's start time")
	}
}

func TestRenderEnvelopeSilencesEnds(t *testing.T) {
	const sr = 48000
	ev := toneEvent(0, 0.5, 440)
	out := Render([]sched.Event{ev}, sr)
	if out[0] != 0 {
		t.Fatalf("expected silence at the very first sample, got %g", out[0])
	}
	var midEnergy float64
	for i := len(out)/2 - 200; i < len(out)/2+200; i++ {
		midEnergy += float64(out[i]) * float64(out[i])
	}
	if midEnergy == 0 {
		t.Fatalf("expected full signal mid-event")
	}
}

func TestRenderPanHardLeft(t *testing.T) {
	const sr = 48000
	ev := toneEvent(0, 0.2, 440)
	ev.Pan = sched.Param{Value: -1}
	out := Render([]sched.Event{ev}, sr)
	var left, right float64
	for i := 0; i < len(out); i += 2 {
		left += float64(out[i]) * float64(out[i])
		right += float64(out[i+1]) * float64(out[i+1])
	}
	if left == 0 {
		t.Fatalf("hard-left pan silenced the left channel")
	}
	// cos/sin panning puts sin(0)=0 in the right channel.
	if right > left*1e-6 {
		t.Fatalf("hard-left pan leaked right: left=%g right=%g", left, right)
	}
}

func TestRenderFilterAttenuates(t *testing.T) {
	const sr = 48000
	flat := []envelope.Breakpoint{{Time: 0, Level: 1}, {Time: 0.5, Level: 1}}
	plain := toneEvent(0, 0.5, 4000)
	plain.Env = flat
	filtered := plain
	filtered.Filter = &sched.FilterSpec{
		Type:      sound.FilterLowpass,
		Cutoff:    sched.Param{Value: 200},
		Resonance: sched.Param{Value: 0.707},
	}
	open := energy(Render([]sched.Event{plain}, sr))
	closed := energy(Render([]sched.Event{filtered}, sr))
	if closed > open/4 {
		t.Fatalf("lowpass at 200Hz barely touched a 4kHz tone: open=%g closed=%g", open, closed)
	}
}

func TestRenderMixClamps(t *testing.T) {
	const sr = 8000
	events := make([]sched.Event, 8)
	for i := range events {
		events[i] = toneEvent(0, 0.1, 440)
	}
	out := Render(events, sr)
	for i, s := range out {
		if s < -1 || s > 1 {
			t.Fatalf("mix exceeded full scale at %d: %g", i, s)
		}
	}
}

func TestRenderMasterGain(t *testing.T) {
	const sr = 8000
	events := []sched.Event{toneEvent(0, 0.1, 440)}
	r := New(events, sr)
	r.SetMasterGain(0)
	out := make([]float32, int(0.1*sr)*2)
	r.Process(out)
	if energy(out) != 0 {
		t.Fatalf("zero master gain still produced signal")
	}
}

func TestRendererFinished(t *testing.T) {
	const sr = 8000
	r := New([]sched.Event{toneEvent(0, 0.1, 440)}, sr)
	if r.Finished() {
		t.Fatalf("renderer finished before producing anything")
	}
	buf := make([]float32, 2*sr) // well past the event
	r.Process(buf)
	if !r.Finished() {
		t.Fatalf("renderer not finished after rendering past the end")
	}
	if got, want := r.Duration(), 0.1; math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected duration %g, got %g", want, got)
	}
}

func TestRenderFrequencyRoughlyCorrect(t *testing.T) {
	const sr = 48000
	ev := toneEvent(0, 1.0, 440)
	ev.Env = []envelope.Breakpoint{{Time: 0, Level: 1}, {Time: 1, Level: 1}}
	out := Render([]sched.Event{ev}, sr)
	// Count upward zero crossings on the left channel.
	crossings := 0
	prev := out[0]
	for i := 2; i < len(out); i += 2 {
		cur := out[i]
		if prev < 0 && cur >= 0 {
			crossings++
		}
		prev = cur
	}
	if crossings < 430 || crossings > 450 {
		t.Fatalf("expected ~440 cycles, counted %d", crossings)
	}
}
