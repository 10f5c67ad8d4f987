package ical

// Newline styles for serialization. RFC 5545 section 3.1 requires CRLF
// delimited lines, but LF output is common on Unix systems and widely
// accepted.
const (
	// WithNewLineUnix selects LF line endings.
	WithNewLineUnix WithNewLine = "\n"
	// WithNewLineWindows selects the CRLF line endings RFC 5545 section 3.1 requires.
	WithNewLineWindows WithNewLine = "\r\n"
)
