//go:build windows

package ical

// NewLine is the default newline on Windows systems.
const (
	NewLine = WithNewLineWindows
)
