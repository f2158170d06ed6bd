// Package spa compiles declarative XML sound-effect documents into
// deterministic, time-stamped schedules of primitive audio render events.
// The compiler is pure: parsing, validation, reference resolution, repeat
// expansion and scheduling never touch an audio device. Playback and
// offline rendering against the reference backend live in Player and
// RenderSamples.
package spa

import (
	"errors"
	"time"

	"github.com/cbegin/spa-go/internal/sched"
	"github.com/cbegin/spa-go/internal/sound"
)

// SchemaVersion is the sound-document schema version this module accepts.
const SchemaVersion = sound.SchemaVersion

// Re-exported model, report and schedule types. The aliases keep the heavy
// lifting in internal packages while giving callers real names for the
// values Parse and Compile hand them.
type (
	Document                 = sound.Document
	Node                     = sound.Node
	Issue                    = sound.Issue
	Report                   = sound.Report
	ParseError               = sound.ParseError
	ValidationError          = sound.ValidationError
	UnresolvedReferenceError = sound.UnresolvedReferenceError
	SchedulingError          = sched.SchedulingError
	Event                    = sched.Event
	CompileOptions           = sched.Options
)

// Parse parses and validates a sound document. It fails with a *ParseError
// on malformed XML and a *ValidationError when the markup is well-formed
// but violates the schema; the ValidationError carries the full report.
func Parse(xmlText string) (*Document, error) {
	doc, report, err := sound.ParseDocument(xmlText)
	if err != nil {
		return nil, err
	}
	if err := report.Err(); err != nil {
		return nil, err
	}
	return doc, nil
}

// ValidationResult is the never-fails report form of parsing, suitable for
// editor tooling.
type ValidationResult struct {
	Valid    bool
	Errors   []Issue
	Warnings []Issue
}

// Validate checks a document and always returns a report; malformed XML
// becomes the report's first error rather than a failure.
func Validate(xmlText string) ValidationResult {
	_, report, err := sound.ParseDocument(xmlText)
	var res ValidationResult
	if report != nil {
		res.Errors = report.Errors
		res.Warnings = report.Warnings
	}
	if err != nil {
		issue := Issue{Code: "parse", Message: err.Error()}
		var pe *ParseError
		if errors.As(err, &pe) {
			issue.Line, issue.Column = pe.Line, pe.Column
		}
		res.Errors = append([]Issue{issue}, res.Errors...)
	}
	res.Valid = len(res.Errors) == 0
	return res
}

// Compile flattens a document into a time-ordered schedule starting at the
// given offset (seconds into the document; see CompileOptions.Offset).
// Noise events get a fresh seed base per call, so noise sample content
// varies run to run while event count, timing and every other parameter
// stay deterministic. Use CompileWithOptions to pin the seed.
func Compile(doc *Document, offset float64) ([]Event, error) {
	return CompileWithOptions(doc, CompileOptions{
		Offset:    offset,
		NoiseSeed: uint32(time.Now().UnixNano()),
	})
}

// CompileWithOptions is Compile with full control. It is fully
// deterministic: the same document and options always yield the same
// schedule, noise seeds included.
func CompileWithOptions(doc *Document, opts CompileOptions) ([]Event, error) {
	return sched.Compile(doc, opts)
}

// Duration reports the total wall-clock time the document occupies. A
// document with an infinite repeat has +Inf duration.
func Duration(doc *Document) float64 {
	var max float64
	for _, n := range doc.Sounds {
		if d := sched.Duration(n); d > max {
			max = d
		}
	}
	return max
}
