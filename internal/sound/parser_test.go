package sound

import (
	"errors"
	"strings"
	"testing"
)

func TestParseMinimalTone(t *testing.T) {
	doc, rep, err := ParseDocument(`<spa version="1.0"><tone wave="sine" freq="440" dur="0.5"/></spa>`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !rep.Valid() {
		t.Fatalf("expected valid document, got errors: %v", rep.Errors)
	}
	if len(doc.Sounds) != 1 {
		t.Fatalf("expected 1 sound, got %d", len(doc.Sounds))
	}
	n := doc.Sounds[0]
	if n.Kind != KindTone || n.Wave != WaveSine {
		t.Fatalf("expected sine tone, got kind=%v wave=%v", n.Kind, n.Wave)
	}
	if n.Freq.Value != 440 || n.Freq.Curve != nil {
		t.Fatalf("expected constant freq 440, got %+v", n.Freq)
	}
	if n.Dur != 0.5 {
		t.Fatalf("expected dur 0.5, got %g", n.Dur)
	}
	if n.Amp.Value != 1 {
		t.Fatalf("expected default amp 1, got %g", n.Amp.Value)
	}
}

func TestParseDottedAutomation(t *testing.T) {
	doc, rep, err := ParseDocument(`<spa version="1.0">
		<tone wave="saw" freq.start="880" freq.end="110" freq.curve="exponential" freq.dur="0.2" dur="0.5"/>
	</spa>`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !rep.Valid() {
		t.Fatalf("unexpected errors: %v", rep.Errors)
	}
	c := doc.Sounds[0].Freq.Curve
	if c == nil {
		t.Fatalf("expected automation curve on freq")
	}
	if c.Start != 880 || c.End != 110 || c.Shape != CurveExponential || c.Duration != 0.2 {
		t.Fatalf("unexpected curve: %+v", c)
	}
}

func TestParseBaseValueAsCurveStart(t *testing.T) {
	// freq="440" with freq.end supplies the curve start.
	doc, rep, err := ParseDocument(`<spa version="1.0"><tone wave="sine" freq="440" freq.end="220" dur="1"/></spa>`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !rep.Valid() {
		t.Fatalf("unexpected errors: %v", rep.Errors)
	}
	c := doc.Sounds[0].Freq.Curve
	if c == nil || c.Start != 440 || c.End != 220 || c.Shape != CurveLinear {
		t.Fatalf("unexpected curve: %+v", c)
	}
}

func TestParseEnvelopeShorthandInline(t *testing.T) {
	doc, rep, err := ParseDocument(`<spa version="1.0"><tone wave="sine" freq="440" dur="1" envelope="0.1, 0.1, 0.5, 0.2"/></spa>`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !rep.Valid() {
		t.Fatalf("unexpected errors: %v", rep.Errors)
	}
	ref := doc.Sounds[0].Envelope
	if ref == nil || ref.Env == nil {
		t.Fatalf("expected inline envelope")
	}
	env := *ref.Env
	if env.Attack != 0.1 || env.Decay != 0.1 || env.Sustain != 0.5 || env.Release != 0.2 {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestParseEnvelopeShorthandReference(t *testing.T) {
	doc, rep, err := ParseDocument(`<spa version="1.0">
		<defs><envelope name="pluck" attack="0.01" decay="0.2" sustain="0.3" release="0.1"/></defs>
		<tone wave="sine" freq="440" dur="1" envelope="pluck"/>
	</spa>`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !rep.Valid() {
		t.Fatalf("unexpected errors: %v", rep.Errors)
	}
	if _, ok := doc.Envelopes["pluck"]; !ok {
		t.Fatalf("expected pluck in defs")
	}
	ref := doc.Sounds[0].Envelope
	if ref == nil || ref.Name != "pluck" || ref.Env != nil {
		t.Fatalf("expected unresolved name reference, got %+v", ref)
	}
}

func TestParseInvalidWaveEnum(t *testing.T) {
	_, rep, err := ParseDocument(`<spa version="1.0"><tone wave="sawtooth" freq="440" dur="1"/></spa>`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if rep.Valid() {
		t.Fatalf("expected validation error for wave=sawtooth")
	}
	issue := rep.Errors[0]
	if issue.Code != CodeEnum || issue.Attr != "wave" {
		t.Fatalf("expected enum error on wave, got %+v", issue)
	}
	if !strings.Contains(issue.Message, "sawtooth") {
		t.Fatalf("error should name the offending value: %s", issue.Message)
	}
}

func TestParseMissingRequiredAttrs(t *testing.T) {
	_, rep, err := ParseDocument(`<spa version="1.0"><tone wave="sine" freq="440"/><noise dur="1"/></spa>`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	var attrs []string
	for _, e := range rep.Errors {
		if e.Code == CodeRequired {
			attrs = append(attrs, e.Attr)
		}
	}
	if len(attrs) != 2 || attrs[0] != "dur" || attrs[1] != "color" {
		t.Fatalf("expected missing dur and color, got %v", attrs)
	}
}

func TestParseMalformedXML(t *testing.T) {
	_, _, err := ParseDocument(`<spa version="1.0"><tone wave="sine"`)
	if err == nil {
		t.Fatalf("expected parse error for truncated document")
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
}

func TestParseUnsupportedVersion(t *testing.T) {
	_, rep, err := ParseDocument(`<spa version="2.0"><tone wave="sine" freq="440" dur="1"/></spa>`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if rep.Valid() {
		t.Fatalf("expected version error")
	}
	if rep.Errors[0].Code != CodeVersion {
		t.Fatalf("expected version error first, got %+v", rep.Errors[0])
	}
}

func TestParseRootMustBeSpa(t *testing.T) {
	_, _, err := ParseDocument(`<sound version="1.0"/>`)
	if err == nil {
		t.Fatalf("expected error for wrong root element")
	}
}

func TestParseSubAudibleFreqWarns(t *testing.T) {
	_, rep, err := ParseDocument(`<spa version="1.0"><tone wave="sine" freq="5" dur="1"/></spa>`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	// Out-of-band frequencies are legal, just flagged.
	if !rep.Valid() {
		t.Fatalf("freq=5 must not be an error: %v", rep.Errors)
	}
	found := false
	for _, w := range rep.Warnings {
		if w.Code == CodeRange && w.Attr == "freq" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected audible-band warning, got %v", rep.Warnings)
	}
}

func TestParseAmpOutOfRange(t *testing.T) {
	_, rep, err := ParseDocument(`<spa version="1.0"><tone wave="sine" freq="440" dur="1" amp="1.5"/></spa>`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if rep.Valid() {
		t.Fatalf("expected range error for amp=1.5")
	}
	if rep.Errors[0].Code != CodeRange || rep.Errors[0].Attr != "amp" {
		t.Fatalf("expected range error on amp, got %+v", rep.Errors[0])
	}
}

func TestParseSequenceAtOffsets(t *testing.T) {
	doc, rep, err := ParseDocument(`<spa version="1.0">
		<sequence loop="true">
			<tone wave="sine" freq="440" dur="0.2" at="0.5"/>
			<noise color="white" dur="0.1" at="0"/>
		</sequence>
	</spa>`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !rep.Valid() {
		t.Fatalf("unexpected errors: %v", rep.Errors)
	}
	seq := doc.Sounds[0]
	if seq.Kind != KindSequence || !seq.Loop {
		t.Fatalf("expected looping sequence, got %+v", seq)
	}
	if len(seq.Elements) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(seq.Elements))
	}
	// Declaration order is preserved here; the scheduler orders by at.
	if seq.Elements[0].At != 0.5 || seq.Elements[1].At != 0 {
		t.Fatalf("unexpected at offsets: %g %g", seq.Elements[0].At, seq.Elements[1].At)
	}
}

func TestParseRepeatAttrs(t *testing.T) {
	doc, rep, err := ParseDocument(`<spa version="1.0">
		<tone wave="sine" freq="440" dur="0.1" repeat="3" repeat.interval="0.5" repeat.delay="0.2" repeat.decay="0.5" repeat.pitchShift="12"/>
	</spa>`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !rep.Valid() {
		t.Fatalf("unexpected errors: %v", rep.Errors)
	}
	r := doc.Sounds[0].Repeat
	if r == nil {
		t.Fatalf("expected repeat spec")
	}
	if r.Count != 3 || r.Infinite || r.Interval != 0.5 || r.Delay != 0.2 || r.Decay != 0.5 || r.PitchShift != 12 {
		t.Fatalf("unexpected repeat: %+v", r)
	}
}

func TestParseRepeatInfinite(t *testing.T) {
	doc, rep, err := ParseDocument(`<spa version="1.0">
		<noise color="brown" dur="0.1" repeat="infinite" repeat.interval="1"/>
	</spa>`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !rep.Valid() {
		t.Fatalf("unexpected errors: %v", rep.Errors)
	}
	r := doc.Sounds[0].Repeat
	if r == nil || !r.Infinite {
		t.Fatalf("expected infinite repeat, got %+v", r)
	}
}

func TestParseRepeatOnGroupWarnsNoEffect(t *testing.T) {
	doc, rep, err := ParseDocument(`<spa version="1.0">
		<group repeat="3" repeat.interval="0.5"><tone wave="sine" freq="440" dur="0.1"/></group>
	</spa>`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !rep.Valid() {
		t.Fatalf("unexpected errors: %v", rep.Errors)
	}
	if doc.Sounds[0].Repeat != nil {
		t.Fatalf("repeat on group must be dropped")
	}
	found := false
	for _, w := range rep.Warnings {
		if w.Code == CodeNoEffect && w.Attr == "repeat" {
			found = true
		}
		// The repeat.* attributes are consumed, not reported as unknown.
		if w.Code == CodeUnknown && strings.HasPrefix(w.Attr, "repeat") {
			t.Fatalf("consumed repeat attribute reported unknown: %+v", w)
		}
	}
	if !found {
		t.Fatalf("expected no-effect warning, got %v", rep.Warnings)
	}
}

func TestParseInlineFilterChild(t *testing.T) {
	doc, rep, err := ParseDocument(`<spa version="1.0">
		<noise color="white" dur="1">
			<filter type="lowpass" cutoff="1200" resonance="2"/>
		</noise>
	</spa>`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !rep.Valid() {
		t.Fatalf("unexpected errors: %v", rep.Errors)
	}
	ref := doc.Sounds[0].Filter
	if ref == nil || ref.Filter == nil {
		t.Fatalf("expected inline filter")
	}
	f := ref.Filter
	if f.Type != FilterLowpass || f.Cutoff.Value != 1200 || f.Resonance.Value != 2 {
		t.Fatalf("unexpected filter: %+v", f)
	}
}

func TestParseFilterBandstopAlias(t *testing.T) {
	doc, rep, err := ParseDocument(`<spa version="1.0">
		<defs><filter name="hum" type="bandstop" cutoff="60" resonance="8"/></defs>
		<tone wave="sine" freq="440" dur="1" filter="hum"/>
	</spa>`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !rep.Valid() {
		t.Fatalf("unexpected errors: %v", rep.Errors)
	}
	if doc.Filters["hum"].Type != FilterNotch {
		t.Fatalf("bandstop must alias notch, got %v", doc.Filters["hum"].Type)
	}
}

func TestParseUnknownElementAndAttrWarn(t *testing.T) {
	doc, rep, err := ParseDocument(`<spa version="1.0">
		<reverb size="0.9"/>
		<tone wave="sine" freq="440" dur="1" sparkle="yes"/>
	</spa>`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !rep.Valid() {
		t.Fatalf("unknown markup must warn, not error: %v", rep.Errors)
	}
	if len(doc.Sounds) != 1 {
		t.Fatalf("unknown element must be skipped, got %d sounds", len(doc.Sounds))
	}
	if len(rep.Warnings) < 2 {
		t.Fatalf("expected warnings for <reverb> and sparkle, got %v", rep.Warnings)
	}
}

func TestParseDegradedCurveShapeWarns(t *testing.T) {
	doc, rep, err := ParseDocument(`<spa version="1.0">
		<tone wave="sine" freq.start="440" freq.end="220" freq.curve="smooth" dur="1"/>
	</spa>`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !rep.Valid() {
		t.Fatalf("degraded curve must not error: %v", rep.Errors)
	}
	if doc.Sounds[0].Freq.Curve.Shape != CurveLinear {
		t.Fatalf("smooth must degrade to linear")
	}
	found := false
	for _, w := range rep.Warnings {
		if w.Code == CodeNoEffect {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected degradation warning, got %v", rep.Warnings)
	}
}

func TestParseModulator(t *testing.T) {
	doc, rep, err := ParseDocument(`<spa version="1.0">
		<tone wave="sine" freq="440" dur="1" freq.mod.rate="5" freq.mod.depth="10" freq.mod.wave="triangle"/>
	</spa>`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !rep.Valid() {
		t.Fatalf("unexpected errors: %v", rep.Errors)
	}
	m := doc.Sounds[0].FreqMod
	if m == nil || m.RateHz != 5 || m.Depth != 10 || m.Wave != WaveTriangle {
		t.Fatalf("unexpected modulator: %+v", m)
	}
}

func TestParseIssueLocation(t *testing.T) {
	_, rep, err := ParseDocument("<spa version=\"1.0\">\n  <tone wave=\"bad\" freq=\"440\" dur=\"1\"/>\n</spa>")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if rep.Valid() {
		t.Fatalf("expected enum error")
	}
	if rep.Errors[0].Line != 2 {
		t.Fatalf("expected error located on line 2, got %d", rep.Errors[0].Line)
	}
}
