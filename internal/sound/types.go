package sound

// SchemaVersion is the document schema version this parser understands.
const SchemaVersion = "1.0"

// NodeKind discriminates the Node tagged union.
type NodeKind int

const (
	KindTone NodeKind = iota + 1
	KindNoise
	KindGroup
	KindSequence
)

func (k NodeKind) String() string {
	switch k {
	case KindTone:
		return "tone"
	case KindNoise:
		return "noise"
	case KindGroup:
		return "group"
	case KindSequence:
		return "sequence"
	default:
		return "unknown"
	}
}

type Wave int

const (
	WaveSine Wave = iota + 1
	WaveSquare
	WaveTriangle
	WaveSaw
	WavePulse
	WaveCustom
)

func (w Wave) String() string {
	switch w {
	case WaveSine:
		return "sine"
	case WaveSquare:
		return "square"
	case WaveTriangle:
		return "triangle"
	case WaveSaw:
		return "saw"
	case WavePulse:
		return "pulse"
	case WaveCustom:
		return "custom"
	default:
		return "unknown"
	}
}

type Color int

const (
	ColorWhite Color = iota + 1
	ColorPink
	ColorBrown
	ColorBlue
)

func (c Color) String() string {
	switch c {
	case ColorWhite:
		return "white"
	case ColorPink:
		return "pink"
	case ColorBrown:
		return "brown"
	case ColorBlue:
		return "blue"
	default:
		return "unknown"
	}
}

type CurveShape int

const (
	CurveLinear CurveShape = iota + 1
	CurveExponential
	CurveStep
)

func (s CurveShape) String() string {
	switch s {
	case CurveLinear:
		return "linear"
	case CurveExponential:
		return "exponential"
	case CurveStep:
		return "step"
	default:
		return "unknown"
	}
}

type FilterType int

const (
	FilterLowpass FilterType = iota + 1
	FilterHighpass
	FilterBandpass
	FilterNotch
	FilterAllpass
	FilterPeaking
	FilterLowshelf
	FilterHighshelf
)

func (t FilterType) String() string {
	switch t {
	case FilterLowpass:
		return "lowpass"
	case FilterHighpass:
		return "highpass"
	case FilterBandpass:
		return "bandpass"
	case FilterNotch:
		return "notch"
	case FilterAllpass:
		return "allpass"
	case FilterPeaking:
		return "peaking"
	case FilterLowshelf:
		return "lowshelf"
	case FilterHighshelf:
		return "highshelf"
	default:
		return "unknown"
	}
}

// Curve is an authored automation: start value, end value, interpolation
// shape, and an optional explicit duration (0 means the owning parameter's
// natural span).
type Curve struct {
	Start    float64
	End      float64
	Shape    CurveShape
	Duration float64
}

// Param is a constant value or an automation curve. Curve takes precedence
// when non-nil.
type Param struct {
	Value float64
	Curve *Curve
}

// Constant reports whether the parameter has no automation attached.
func (p Param) Constant() bool { return p.Curve == nil }

// Scale multiplies the parameter by f. Curves scale both endpoints so the
// automation shape is preserved.
func (p Param) Scale(f float64) Param {
	if p.Curve != nil {
		c := *p.Curve
		c.Start *= f
		c.End *= f
		p.Curve = &c
		return p
	}
	p.Value *= f
	return p
}

// Modulator is a periodic frequency modulator (vibrato) layered on a tone's
// base frequency.
type Modulator struct {
	RateHz float64 // oscillation rate
	Depth  float64 // peak deviation in Hz
	Wave   Wave    // sine/square/triangle/saw; sine when unset
}

// Envelope is an ADSR amplitude shape. Attack, Decay and Release are
// seconds; Sustain is a 0..1 level. Attack+decay+release exceeding the
// owning sound's duration is legal and clipped at schedule time.
type Envelope struct {
	Attack  float64
	Decay   float64
	Sustain float64
	Release float64
}

// Filter is a biquad-style filter description.
type Filter struct {
	Type      FilterType
	Cutoff    Param // Hz
	Resonance Param // Q factor
	Gain      float64
	Detune    float64
}

// EnvelopeRef is either a name into Document.Envelopes or an inline value.
// After reference resolution Env is always non-nil.
type EnvelopeRef struct {
	Name string
	Env  *Envelope
}

// FilterRef is either a name into Document.Filters or an inline value.
type FilterRef struct {
	Name   string
	Filter *Filter
}

// Repeat materializes a sound N times with time, amplitude and pitch
// offsets per repetition.
type Repeat struct {
	Count      int     // ignored when Infinite
	Infinite   bool
	Interval   float64 // seconds between repeat starts
	Delay      float64 // seconds before the first occurrence
	Decay      float64 // fractional amplitude reduction per repetition
	PitchShift float64 // semitones per repetition (tones only)
}

// Element places a sound at an explicit offset from its sequence's start.
type Element struct {
	At    float64
	Sound Node
}

// Node is the tagged union over tone, noise, group and sequence. Kind
// selects which fields are meaningful; consumers switch exhaustively on it.
type Node struct {
	Kind   NodeKind
	ID     string
	Repeat *Repeat

	// tone
	Wave    Wave
	Freq    Param
	FreqMod *Modulator
	Phase   float64 // detune in cents

	// noise
	Color Color

	// tone + noise leaves; Amp/Pan also act as uniform scaling on groups
	Dur      float64
	Amp      Param
	Pan      *Param
	Envelope *EnvelopeRef
	Filter   *FilterRef

	// group
	Children []Node

	// sequence
	Elements []Element
	Loop     bool
	Tempo    float64 // BPM, reserved for beat-relative offsets
}

// Document is a parsed sound document. It is built once by the parser and
// never mutated afterwards; the compiler treats it as read-only.
type Document struct {
	Version   string
	Envelopes map[string]Envelope
	Filters   map[string]Filter
	Sounds    []Node
}

// ParseWave maps an attribute value to a waveform.
func ParseWave(s string) (Wave, bool) {
	switch s {
	case "sine":
		return WaveSine, true
	case "square":
		return WaveSquare, true
	case "triangle":
		return WaveTriangle, true
	case "saw":
		return WaveSaw, true
	case "pulse":
		return WavePulse, true
	case "custom":
		return WaveCustom, true
	default:
		return 0, false
	}
}

// ParseColor maps an attribute value to a noise color. violet and grey are
// reserved in the schema but not implemented; they are rejected like any
// other unknown value.
func ParseColor(s string) (Color, bool) {
	switch s {
	case "white":
		return ColorWhite, true
	case "pink":
		return ColorPink, true
	case "brown":
		return ColorBrown, true
	case "blue":
		return ColorBlue, true
	default:
		return 0, false
	}
}

// ParseCurveShape maps an attribute value to an interpolation shape. The
// degraded variants (logarithmic, smooth, ease) fall back to linear; the
// second return distinguishes exact matches from degraded ones so the
// validator can warn.
func ParseCurveShape(s string) (shape CurveShape, exact bool, ok bool) {
	switch s {
	case "linear":
		return CurveLinear, true, true
	case "exponential":
		return CurveExponential, true, true
	case "step":
		return CurveStep, true, true
	case "logarithmic", "smooth", "ease":
		return CurveLinear, false, true
	default:
		return 0, false, false
	}
}

// ParseFilterType maps an attribute value to a filter type. bandstop is an
// accepted alias for notch.
func ParseFilterType(s string) (FilterType, bool) {
	switch s {
	case "lowpass":
		return FilterLowpass, true
	case "highpass":
		return FilterHighpass, true
	case "bandpass":
		return FilterBandpass, true
	case "bandstop", "notch":
		return FilterNotch, true
	case "allpass":
		return FilterAllpass, true
	case "peaking":
		return FilterPeaking, true
	case "lowshelf":
		return FilterLowshelf, true
	case "highshelf":
		return FilterHighshelf, true
	default:
		return 0, false
	}
}
