//go:build !windows

package ical

// NewLine is the default newline on non-Windows systems.
const (
	NewLine = WithNewLineUnix
)
