// Package diag provides a structured diagnostic channel for recoverable
// conditions. Diagnostics carry a stable code so callers and tests can
// assert on them without matching log text; they are also mirrored to the
// zap logger when one is attached.
package diag

import "go.uber.org/zap"

// Severity classifies a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns the severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	}
	return "unknown"
}

// Code identifies a diagnostic condition.
type Code string

const (
	CodeMultipleCameras       Code = "multiple_cameras"
	CodeMultipleAxes          Code = "multiple_axes"
	CodeMultipleLights        Code = "multiple_lights"
	CodeNoBackgroundDir       Code = "no_background_dir"
	CodeEmptyBackgroundDir    Code = "empty_background_dir"
	CodeBackgroundLoadFailed  Code = "background_load_failed"
	CodeAnnotatedFrameMissing Code = "annotated_frame_missing"
	CodeFrameSkipped          Code = "frame_skipped"
)

// Diagnostic is one recorded condition.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
}

// Recorder accumulates diagnostics for one run.
// The zero value is usable; attach a logger with New to mirror entries.
type Recorder struct {
	log     *zap.Logger
	entries []Diagnostic
}

// New returns a Recorder that mirrors diagnostics to the given logger.
// log may be nil.
func New(log *zap.Logger) *Recorder {
	return &Recorder{log: log}
}

// Record appends a diagnostic and mirrors it to the logger.
func (r *Recorder) Record(sev Severity, code Code, msg string, fields ...zap.Field) {
	r.entries = append(r.entries, Diagnostic{Severity: sev, Code: code, Message: msg})
	if r.log == nil {
		return
	}
	fields = append(fields, zap.String("code", string(code)))
	switch sev {
	case SeverityWarning:
		r.log.Warn(msg, fields...)
	case SeverityError:
		r.log.Error(msg, fields...)
	default:
		r.log.Info(msg, fields...)
	}
}

// Warn records a warning-level diagnostic.
func (r *Recorder) Warn(code Code, msg string, fields ...zap.Field) {
	r.Record(SeverityWarning, code, msg, fields...)
}

// Info records an info-level diagnostic.
func (r *Recorder) Info(code Code, msg string, fields ...zap.Field) {
	r.Record(SeverityInfo, code, msg, fields...)
}

// Entries returns all recorded diagnostics in order.
func (r *Recorder) Entries() []Diagnostic {
	return r.entries
}

// Has reports whether a diagnostic with the given code was recorded.
func (r *Recorder) Has(code Code) bool {
	for _, d := range r.entries {
		if d.Code == code {
			return true
		}
	}
	return false
}

// Count returns the number of diagnostics recorded with the given code.
func (r *Recorder) Count(code Code) int {
	n := 0
	for _, d := range r.entries {
		if d.Code == code {
			n++
		}
	}
	return n
}
