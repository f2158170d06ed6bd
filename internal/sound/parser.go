package sound

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Issue codes produced by the validator.
const (
	CodeVersion  = "version"
	CodeRequired = "required"
	CodeEnum     = "enum"
	CodeRange    = "range"
	CodeSyntax   = "syntax"
	CodeUnknown  = "unknown"
	CodeNoEffect = "no-effect"
)

// ParseDocument parses and validates a sound document. A non-nil error is
// always a *ParseError (malformed XML); schema problems accumulate in the
// report and a best-effort document is still returned so non-strict callers
// can inspect it. The parser never coerces an invalid enum or out-of-range
// number into a default.
func ParseDocument(src string) (*Document, *Report, error) {
	p := &parser{
		dec:   xml.NewDecoder(strings.NewReader(src)),
		rep:   &Report{},
		lines: lineOffsets(src),
	}
	doc, err := p.parse()
	if err != nil {
		return nil, p.rep, err
	}
	return doc, p.rep, nil
}

type parser struct {
	dec   *xml.Decoder
	rep   *Report
	lines []int
}

func lineOffsets(src string) []int {
	offs := []int{0}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			offs = append(offs, i+1)
		}
	}
	return offs
}

// pos converts a decoder byte offset to a 1-based line/column pair.
func (p *parser) pos(off int64) (int, int) {
	line := 0
	for line+1 < len(p.lines) && int64(p.lines[line+1]) <= off {
		line++
	}
	return line + 1, int(off-int64(p.lines[line])) + 1
}

func (p *parser) parseErr(off int64, format string, args ...any) *ParseError {
	line, col := p.pos(off)
	return &ParseError{Line: line, Column: col, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) parse() (*Document, error) {
	root, err := p.nextStart()
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, p.parseErr(p.dec.InputOffset(), "no root element")
	}
	if root.Name.Local != "spa" {
		return nil, p.parseErr(p.dec.InputOffset(), "root element must be <spa>, found <%s>", root.Name.Local)
	}
	doc := &Document{
		Envelopes: map[string]Envelope{},
		Filters:   map[string]Filter{},
	}
	a := p.attrsOf(*root)
	doc.Version, _ = a.get("version")
	switch doc.Version {
	case "":
		p.rep.addError(Issue{Code: CodeRequired, Message: "missing required attribute version", Element: "spa", Attr: "version", Line: a.line, Column: a.col})
	case SchemaVersion:
	default:
		p.rep.addError(Issue{
			Code:    CodeVersion,
			Message: fmt.Sprintf("unsupported version %q (supported: %s)", doc.Version, SchemaVersion),
			Element: "spa", Attr: "version", Line: a.line, Column: a.col,
		})
	}
	a.warnUnknown()

	for {
		tok, err := p.dec.Token()
		if err == io.EOF {
			return nil, p.parseErr(p.dec.InputOffset(), "unexpected end of document")
		}
		if err != nil {
			return nil, &ParseError{Msg: "malformed XML", Err: err}
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "defs":
				if err := p.parseDefs(doc); err != nil {
					return nil, err
				}
			case "tone", "noise", "group", "sequence":
				n, _, err := p.parseNode(t, false)
				if err != nil {
					return nil, err
				}
				doc.Sounds = append(doc.Sounds, n)
			default:
				line, col := p.pos(p.dec.InputOffset())
				p.rep.addWarning(Issue{Code: CodeUnknown, Message: fmt.Sprintf("unknown element <%s> ignored", t.Name.Local), Element: t.Name.Local, Line: line, Column: col})
				if err := p.dec.Skip(); err != nil {
					return nil, &ParseError{Msg: "malformed XML", Err: err}
				}
			}
		case xml.EndElement:
			// </spa>: trailing tokens after the root are the decoder's problem.
			return doc, nil
		}
	}
}

// nextStart scans to the first StartElement, failing on malformed markup.
func (p *parser) nextStart() (*xml.StartElement, error) {
	for {
		tok, err := p.dec.Token()
		if err == io.EOF {
			return nil, nil
		}
		if err != nil {
			return nil, &ParseError{Msg: "malformed XML", Err: err}
		}
		if se, ok := tok.(xml.StartElement); ok {
			return &se, nil
		}
	}
}

func (p *parser) parseDefs(doc *Document) error {
	for {
		tok, err := p.dec.Token()
		if err != nil {
			return &ParseError{Msg: "malformed XML", Err: err}
		}
		switch t := tok.(type) {
		case xml.StartElement:
			a := p.attrsOf(t)
			switch t.Name.Local {
			case "envelope":
				name, ok := a.get("name")
				if !ok {
					a.requireErr("name")
				}
				env := p.parseEnvelopeAttrs(a)
				a.warnUnknown()
				if ok {
					if _, dup := doc.Envelopes[name]; dup {
						p.rep.addError(Issue{Code: CodeUnknown, Message: fmt.Sprintf("duplicate envelope definition %q", name), Element: "envelope", Attr: "name", Line: a.line, Column: a.col})
					}
					doc.Envelopes[name] = env
				}
			case "filter":
				name, ok := a.get("name")
				if !ok {
					a.requireErr("name")
				}
				f := p.parseFilterAttrs(a)
				a.warnUnknown()
				if ok {
					if _, dup := doc.Filters[name]; dup {
						p.rep.addError(Issue{Code: CodeUnknown, Message: fmt.Sprintf("duplicate filter definition %q", name), Element: "filter", Attr: "name", Line: a.line, Column: a.col})
					}
					doc.Filters[name] = f
				}
			default:
				p.rep.addWarning(Issue{Code: CodeUnknown, Message: fmt.Sprintf("unknown definition <%s> ignored", t.Name.Local), Element: t.Name.Local, Line: a.line, Column: a.col})
			}
			if err := p.dec.Skip(); err != nil {
				return &ParseError{Msg: "malformed XML", Err: err}
			}
		case xml.EndElement:
			return nil
		}
	}
}

// parseNode parses one sound element. The second return is the element's
// `at` offset when it sits directly inside a sequence.
func (p *parser) parseNode(se xml.StartElement, inSequence bool) (Node, float64, error) {
	a := p.attrsOf(se)
	var n Node
	switch se.Name.Local {
	case "tone":
		n = p.parseToneAttrs(a)
	case "noise":
		n = p.parseNoiseAttrs(a)
	case "group":
		n = Node{Kind: KindGroup, Amp: Param{Value: 1}}
		n.Amp = p.parseParam(a, "amp", 1)
		p.checkParamRange(a, "amp", n.Amp, 0, 1)
		if pan, ok := p.parseOptionalParam(a, "pan"); ok {
			p.checkParamRange(a, "pan", pan, -1, 1)
			n.Pan = &pan
		}
	case "sequence":
		n = Node{Kind: KindSequence}
		if raw, ok := a.get("loop"); ok {
			b, err := strconv.ParseBool(raw)
			if err != nil {
				a.syntaxErr("loop", raw)
			} else {
				n.Loop = b
			}
		}
		if tempo, ok := a.float("tempo"); ok {
			if tempo <= 0 {
				a.rangeErr("tempo", "must be > 0")
			} else {
				n.Tempo = tempo
				p.rep.addWarning(Issue{Code: CodeNoEffect, Message: "tempo is reserved for beat-relative offsets and has no effect", Element: "sequence", Attr: "tempo", Line: a.line, Column: a.col})
			}
		}
	}
	n.ID, _ = a.get("id")
	n.Repeat = p.parseRepeat(a, n.Kind)
	var at float64
	if inSequence {
		v, ok := a.float("at")
		if !ok {
			p.rep.addWarning(Issue{Code: CodeRequired, Message: "sequence element without at offset, assuming 0", Element: a.el, Attr: "at", Line: a.line, Column: a.col})
		} else if v < 0 {
			a.rangeErr("at", "must be >= 0")
		} else {
			at = v
		}
	}
	a.warnUnknown()

	// Children.
	for {
		tok, err := p.dec.Token()
		if err != nil {
			return n, at, &ParseError{Msg: "malformed XML", Err: err}
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case n.Kind == KindGroup || n.Kind == KindSequence:
				switch t.Name.Local {
				case "tone", "noise", "group":
					child, childAt, err := p.parseNode(t, n.Kind == KindSequence)
					if err != nil {
						return n, at, err
					}
					if n.Kind == KindSequence {
						n.Elements = append(n.Elements, Element{At: childAt, Sound: child})
					} else {
						n.Children = append(n.Children, child)
					}
				case "sequence":
					if n.Kind == KindGroup {
						child, _, err := p.parseNode(t, false)
						if err != nil {
							return n, at, err
						}
						n.Children = append(n.Children, child)
						break
					}
					// Sequences nest groups, not other sequences.
					line, col := p.pos(p.dec.InputOffset())
					p.rep.addError(Issue{Code: CodeUnknown, Message: "sequence elements must be tone, noise or group", Element: "sequence", Line: line, Column: col})
					if err := p.dec.Skip(); err != nil {
						return n, at, &ParseError{Msg: "malformed XML", Err: err}
					}
				default:
					line, col := p.pos(p.dec.InputOffset())
					p.rep.addWarning(Issue{Code: CodeUnknown, Message: fmt.Sprintf("unknown element <%s> ignored", t.Name.Local), Element: t.Name.Local, Line: line, Column: col})
					if err := p.dec.Skip(); err != nil {
						return n, at, &ParseError{Msg: "malformed XML", Err: err}
					}
				}
			case t.Name.Local == "envelope" && (n.Kind == KindTone || n.Kind == KindNoise):
				ea := p.attrsOf(t)
				env := p.parseEnvelopeAttrs(ea)
				ea.warnUnknown()
				n.Envelope = &EnvelopeRef{Env: &env}
				if err := p.dec.Skip(); err != nil {
					return n, at, &ParseError{Msg: "malformed XML", Err: err}
				}
			case t.Name.Local == "filter" && (n.Kind == KindTone || n.Kind == KindNoise):
				fa := p.attrsOf(t)
				f := p.parseFilterAttrs(fa)
				fa.warnUnknown()
				n.Filter = &FilterRef{Filter: &f}
				if err := p.dec.Skip(); err != nil {
					return n, at, &ParseError{Msg: "malformed XML", Err: err}
				}
			default:
				line, col := p.pos(p.dec.InputOffset())
				p.rep.addWarning(Issue{Code: CodeUnknown, Message: fmt.Sprintf("unexpected child <%s> ignored", t.Name.Local), Element: t.Name.Local, Line: line, Column: col})
				if err := p.dec.Skip(); err != nil {
					return n, at, &ParseError{Msg: "malformed XML", Err: err}
				}
			}
		case xml.EndElement:
			return n, at, nil
		}
	}
}

func (p *parser) parseToneAttrs(a *attrs) Node {
	n := Node{Kind: KindTone, Amp: Param{Value: 1}}
	if raw, ok := a.get("wave"); ok {
		w, valid := ParseWave(raw)
		if !valid {
			a.enumErr("wave", raw, "sine|square|triangle|saw|pulse|custom")
		} else {
			n.Wave = w
		}
	} else {
		a.requireErr("wave")
	}
	if freq, ok := p.parseRequiredParam(a, "freq"); ok {
		n.Freq = freq
		p.checkFreqRange(a, "freq", freq)
	}
	n.Dur = p.parseDur(a)
	n.Amp = p.parseParam(a, "amp", 1)
	p.checkParamRange(a, "amp", n.Amp, 0, 1)
	if pan, ok := p.parseOptionalParam(a, "pan"); ok {
		p.checkParamRange(a, "pan", pan, -1, 1)
		n.Pan = &pan
	}
	n.Phase, _ = a.float("phase")
	n.Envelope = p.parseEnvelopeShorthand(a)
	n.Filter = p.parseFilterRef(a)
	n.FreqMod = p.parseModulator(a)
	return n
}

func (p *parser) parseNoiseAttrs(a *attrs) Node {
	n := Node{Kind: KindNoise, Amp: Param{Value: 1}}
	if raw, ok := a.get("color"); ok {
		c, valid := ParseColor(raw)
		if !valid {
			msg := "white|pink|brown|blue"
			if raw == "violet" || raw == "grey" || raw == "gray" {
				msg += " (violet/grey are reserved, not implemented)"
			}
			a.enumErr("color", raw, msg)
		} else {
			n.Color = c
		}
	} else {
		a.requireErr("color")
	}
	n.Dur = p.parseDur(a)
	n.Amp = p.parseParam(a, "amp", 1)
	p.checkParamRange(a, "amp", n.Amp, 0, 1)
	if pan, ok := p.parseOptionalParam(a, "pan"); ok {
		p.checkParamRange(a, "pan", pan, -1, 1)
		n.Pan = &pan
	}
	n.Envelope = p.parseEnvelopeShorthand(a)
	n.Filter = p.parseFilterRef(a)
	return n
}

func (p *parser) parseDur(a *attrs) float64 {
	v, ok := a.float("dur")
	if !ok {
		if !a.has("dur") {
			a.requireErr("dur")
		}
		return 0
	}
	if v <= 0 {
		a.rangeErr("dur", "must be > 0")
		return 0
	}
	return v
}

// parseParam reads a base attribute plus its dotted automation companions
// (name.start, name.end, name.curve, name.dur) into a Param.
func (p *parser) parseParam(a *attrs, name string, def float64) Param {
	pr, ok := p.parseOptionalParam(a, name)
	if !ok {
		return Param{Value: def}
	}
	return pr
}

func (p *parser) parseRequiredParam(a *attrs, name string) (Param, bool) {
	pr, ok := p.parseOptionalParam(a, name)
	if !ok && !a.hasDotted(name) && !a.has(name) {
		a.requireErr(name)
	}
	return pr, ok
}

func (p *parser) parseOptionalParam(a *attrs, name string) (Param, bool) {
	base, hasBase := a.float(name)
	start, hasStart := a.float(name + ".start")
	end, hasEnd := a.float(name + ".end")
	if !hasStart && !hasEnd {
		if !hasBase {
			return Param{}, false
		}
		return Param{Value: base}, true
	}
	c := &Curve{Shape: CurveLinear}
	switch {
	case hasStart:
		c.Start = start
	case hasBase:
		c.Start = base
	default:
		a.requireErr(name + ".start")
	}
	if hasEnd {
		c.End = end
	} else {
		a.requireErr(name + ".end")
	}
	if raw, ok := a.get(name + ".curve"); ok {
		shape, exact, valid := ParseCurveShape(raw)
		if !valid {
			a.enumErr(name+".curve", raw, "linear|exponential|step")
		} else {
			c.Shape = shape
			if !exact {
				p.rep.addWarning(Issue{Code: CodeNoEffect, Message: fmt.Sprintf("curve %q degrades to linear", raw), Element: a.el, Attr: name + ".curve", Line: a.line, Column: a.col})
			}
		}
	}
	if d, ok := a.float(name + ".dur"); ok {
		if d <= 0 {
			a.rangeErr(name+".dur", "must be > 0")
		} else {
			c.Duration = d
		}
	}
	return Param{Curve: c}, true
}

func (p *parser) parseModulator(a *attrs) *Modulator {
	rate, hasRate := a.float("freq.mod.rate")
	depth, hasDepth := a.float("freq.mod.depth")
	if !hasRate && !hasDepth {
		return nil
	}
	m := &Modulator{Wave: WaveSine}
	if !hasRate || rate <= 0 {
		a.rangeErr("freq.mod.rate", "must be > 0")
		return nil
	}
	if !hasDepth || depth < 0 {
		a.rangeErr("freq.mod.depth", "must be >= 0")
		return nil
	}
	m.RateHz, m.Depth = rate, depth
	if raw, ok := a.get("freq.mod.wave"); ok {
		w, valid := ParseWave(raw)
		if !valid || w == WaveCustom {
			a.enumErr("freq.mod.wave", raw, "sine|square|triangle|saw|pulse")
		} else {
			m.Wave = w
		}
	}
	return m
}

// parseEnvelopeShorthand handles envelope="name" references and the
// comma-joined envelope="attack,decay,sustain,release" inline form.
func (p *parser) parseEnvelopeShorthand(a *attrs) *EnvelopeRef {
	raw, ok := a.get("envelope")
	if !ok {
		return nil
	}
	if !strings.Contains(raw, ",") {
		return &EnvelopeRef{Name: raw}
	}
	parts := strings.Split(raw, ",")
	if len(parts) != 4 {
		a.syntaxErr("envelope", raw)
		return nil
	}
	vals := make([]float64, 4)
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			a.syntaxErr("envelope", raw)
			return nil
		}
		vals[i] = v
	}
	env := Envelope{Attack: vals[0], Decay: vals[1], Sustain: vals[2], Release: vals[3]}
	p.checkEnvelope(a, "envelope", env)
	return &EnvelopeRef{Env: &env}
}

func (p *parser) parseFilterRef(a *attrs) *FilterRef {
	raw, ok := a.get("filter")
	if !ok {
		return nil
	}
	return &FilterRef{Name: raw}
}

func (p *parser) parseEnvelopeAttrs(a *attrs) Envelope {
	env := Envelope{Sustain: 1}
	if v, ok := a.float("attack"); ok {
		env.Attack = v
	}
	if v, ok := a.float("decay"); ok {
		env.Decay = v
	}
	if v, ok := a.float("sustain"); ok {
		env.Sustain = v
	}
	if v, ok := a.float("release"); ok {
		env.Release = v
	}
	p.checkEnvelope(a, "", env)
	return env
}

func (p *parser) checkEnvelope(a *attrs, attr string, env Envelope) {
	bad := func(field, msg string) {
		name := field
		if attr != "" {
			name = attr
		}
		a.rangeErr(name, msg)
	}
	if env.Attack < 0 {
		bad("attack", "must be >= 0")
	}
	if env.Decay < 0 {
		bad("decay", "must be >= 0")
	}
	if env.Release < 0 {
		bad("release", "must be >= 0")
	}
	if env.Sustain < 0 || env.Sustain > 1 {
		bad("sustain", "must be in 0..1")
	}
}

func (p *parser) parseFilterAttrs(a *attrs) Filter {
	f := Filter{Cutoff: Param{Value: 1000}, Resonance: Param{Value: 1}}
	if raw, ok := a.get("type"); ok {
		t, valid := ParseFilterType(raw)
		if !valid {
			a.enumErr("type", raw, "lowpass|highpass|bandpass|bandstop|notch|allpass|peaking|lowshelf|highshelf")
		} else {
			f.Type = t
		}
	} else {
		a.requireErr("type")
	}
	if cutoff, ok := p.parseOptionalParam(a, "cutoff"); ok {
		p.checkFreqRange(a, "cutoff", cutoff)
		f.Cutoff = cutoff
	}
	if q, ok := p.parseOptionalParam(a, "resonance"); ok {
		f.Resonance = q
	}
	f.Gain, _ = a.float("gain")
	f.Detune, _ = a.float("detune")
	return f
}

func (p *parser) parseRepeat(a *attrs, kind NodeKind) *Repeat {
	raw, hasCount := a.get("repeat")
	hasAny := hasCount || a.has("repeat.interval") || a.has("repeat.delay") || a.has("repeat.decay") || a.has("repeat.pitchShift")
	if !hasAny {
		return nil
	}
	if kind == KindGroup || kind == KindSequence {
		p.rep.addWarning(Issue{Code: CodeNoEffect, Message: "repeat applies to tone and noise only", Element: a.el, Attr: "repeat", Line: a.line, Column: a.col})
		a.markUsed("repeat", "repeat.interval", "repeat.delay", "repeat.decay", "repeat.pitchShift")
		return nil
	}
	r := &Repeat{Count: 1}
	if hasCount {
		if raw == "infinite" {
			r.Infinite = true
		} else {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				a.rangeErr("repeat", "must be a positive integer or \"infinite\"")
				return nil
			}
			r.Count = n
		}
	}
	if v, ok := a.float("repeat.interval"); ok {
		if v < 0 {
			a.rangeErr("repeat.interval", "must be >= 0")
		} else {
			r.Interval = v
		}
	} else if r.Infinite || r.Count > 1 {
		p.rep.addWarning(Issue{Code: CodeRequired, Message: "repeat without interval, repetitions start together", Element: a.el, Attr: "repeat.interval", Line: a.line, Column: a.col})
	}
	if v, ok := a.float("repeat.delay"); ok {
		if v < 0 {
			a.rangeErr("repeat.delay", "must be >= 0")
		} else {
			r.Delay = v
		}
	}
	if v, ok := a.float("repeat.decay"); ok {
		if v < 0 || v > 1 {
			a.rangeErr("repeat.decay", "must be in 0..1")
		} else {
			r.Decay = v
		}
	}
	if v, ok := a.float("repeat.pitchShift"); ok {
		if kind != KindTone {
			p.rep.addWarning(Issue{Code: CodeNoEffect, Message: "repeat.pitchShift only applies to tones", Element: a.el, Attr: "repeat.pitchShift", Line: a.line, Column: a.col})
		} else {
			r.PitchShift = v
		}
	}
	return r
}

// checkFreqRange warns (informationally) when a frequency parameter leaves
// the audible band.
func (p *parser) checkFreqRange(a *attrs, name string, pr Param) {
	check := func(v float64) {
		if v < 20 || v > 20000 {
			p.rep.addWarning(Issue{Code: CodeRange, Message: fmt.Sprintf("%s %g Hz is outside the audible 20-20000 Hz band", name, v), Element: a.el, Attr: name, Line: a.line, Column: a.col})
		}
	}
	if pr.Curve != nil {
		check(pr.Curve.Start)
		check(pr.Curve.End)
		return
	}
	check(pr.Value)
}

func (p *parser) checkParamRange(a *attrs, name string, pr Param, lo, hi float64) {
	check := func(v float64) {
		if v < lo || v > hi {
			a.rangeErr(name, fmt.Sprintf("must be in %g..%g", lo, hi))
		}
	}
	if pr.Curve != nil {
		check(pr.Curve.Start)
		check(pr.Curve.End)
		return
	}
	check(pr.Value)
}

// attrs wraps an element's attribute list with consumption tracking so
// anything left unread can be reported as unknown.
type attrs struct {
	el   string
	line int
	col  int
	rep  *Report
	list []xml.Attr
	used map[string]bool
}

func (p *parser) attrsOf(se xml.StartElement) *attrs {
	line, col := p.pos(p.dec.InputOffset())
	return &attrs{
		el:   se.Name.Local,
		line: line,
		col:  col,
		rep:  p.rep,
		list: se.Attr,
		used: map[string]bool{},
	}
}

func (a *attrs) has(name string) bool {
	for _, at := range a.list {
		if at.Name.Local == name {
			return true
		}
	}
	return false
}

func (a *attrs) hasDotted(name string) bool {
	return a.has(name+".start") || a.has(name+".end")
}

func (a *attrs) get(name string) (string, bool) {
	for _, at := range a.list {
		if at.Name.Local == name {
			a.used[name] = true
			return at.Value, true
		}
	}
	return "", false
}

// float reads a numeric attribute. A present-but-unparsable value records a
// syntax error and reports absence.
func (a *attrs) float(name string) (float64, bool) {
	raw, ok := a.get(name)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		a.syntaxErr(name, raw)
		return 0, false
	}
	return v, true
}

// markUsed consumes attributes without reading them, keeping warnUnknown
// quiet about attributes that were seen and deliberately ignored.
func (a *attrs) markUsed(names ...string) {
	for _, name := range names {
		a.used[name] = true
	}
}

func (a *attrs) issue(code, attr, msg string) Issue {
	return Issue{Code: code, Message: msg, Element: a.el, Attr: attr, Line: a.line, Column: a.col}
}

func (a *attrs) requireErr(name string) {
	a.rep.addError(a.issue(CodeRequired, name, fmt.Sprintf("missing required attribute %s", name)))
}

func (a *attrs) enumErr(name, got, allowed string) {
	a.rep.addError(a.issue(CodeEnum, name, fmt.Sprintf("invalid %s %q (allowed: %s)", name, got, allowed)))
}

func (a *attrs) rangeErr(name, msg string) {
	a.rep.addError(a.issue(CodeRange, name, fmt.Sprintf("%s %s", name, msg)))
}

func (a *attrs) syntaxErr(name, got string) {
	a.rep.addError(a.issue(CodeSyntax, name, fmt.Sprintf("cannot parse %s value %q", name, got)))
}

func (a *attrs) warnUnknown() {
	for _, at := range a.list {
		name := at.Name.Local
		if a.used[name] || name == "xmlns" || at.Name.Space != "" {
			continue
		}
		a.rep.addWarning(a.issue(CodeUnknown, name, fmt.Sprintf("unknown attribute %s ignored", name)))
	}
}
