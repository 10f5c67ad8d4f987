package ical

import (
	"log/slog"
)

// Severity classifies a diagnostic raised while parsing a recurrence rule or
// expanding occurrences.
type Severity int

const (
	// SeverityWarning marks a recoverable value error: the offending field
	// is cleared and processing continues.
	SeverityWarning Severity = iota
	// SeverityFatal marks a structural rule error: the rule never produces
	// occurrences, but the surrounding parse continues.
	SeverityFatal
	// SeverityAbort marks an expansion safety ceiling being hit. This is an
	// unexpected input shape rather than a known-invalid one and should be
	// treated as a bug-report signal.
	SeverityAbort
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityFatal:
		return "fatal"
	case SeverityAbort:
		return "abort"
	}
	return "unknown"
}

// Diagnostic is one reported condition. Field names the RRULE part or
// property the condition relates to, when there is one.
type Diagnostic struct {
	Severity Severity
	Field    string
	Message  string
}

// DiagnosticSink receives diagnostics from parsing and expansion. Sinks must
// not assume they are called from a single goroutine unless the caller
// guarantees it.
type DiagnosticSink interface {
	Report(d Diagnostic)
}

// LogSink forwards diagnostics to a slog logger. Warnings map to Warn,
// everything else to Error.
type LogSink struct {
	Logger *slog.Logger
}

func (s *LogSink) Report(d Diagnostic) {
	l := s.Logger
	if l == nil {
		l = slog.Default()
	}
	switch d.Severity {
	case SeverityWarning:
		l.Warn(d.Message, "field", d.Field)
	default:
		l.Error(d.Message, "field", d.Field, "severity", d.Severity.String())
	}
}

// CollectSink accumulates diagnostics in memory for callers that want
// programmatic access, such as tests.
type CollectSink struct {
	Diagnostics []Diagnostic
}

func (s *CollectSink) Report(d Diagnostic) {
	s.Diagnostics = append(s.Diagnostics, d)
}

// HasFatal reports whether any collected diagnostic is fatal or an abort.
func (s *CollectSink) HasFatal() bool {
	for _, d := range s.Diagnostics {
		if d.Severity != SeverityWarning {
			return true
		}
	}
	return false
}

func sinkOrDefault(sink DiagnosticSink) DiagnosticSink {
	if sink != nil {
		return sink
	}
	return &LogSink{}
}
