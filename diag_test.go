package ical

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "fatal", SeverityFatal.String())
	assert.Equal(t, "abort", SeverityAbort.String())
	assert.Equal(t, "unknown", Severity(42).String())
}

func TestLogSink(t *testing.T) {
	buf := &bytes.Buffer{}
	sink := &LogSink{Logger: slog.New(slog.NewTextHandler(buf, nil))}
	sink.Report(Diagnostic{Severity: SeverityWarning, Field: "BYHOUR", Message: "value out of range"})
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "BYHOUR")

	buf.Reset()
	sink.Report(Diagnostic{Severity: SeverityFatal, Field: "RRULE", Message: "missing FREQ"})
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "severity=fatal")
}

func TestCollectSinkHasFatal(t *testing.T) {
	sink := &CollectSink{}
	assert.False(t, sink.HasFatal())
	sink.Report(Diagnostic{Severity: SeverityWarning})
	assert.False(t, sink.HasFatal())
	sink.Report(Diagnostic{Severity: SeverityAbort})
	assert.True(t, sink.HasFatal())
}
