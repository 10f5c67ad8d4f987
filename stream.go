package ical

import (
	"bufio"
	"io"
)

// CalendarStream reads logical content lines from an iCalendar stream,
// undoing the line folding of RFC 5545 section 3.1: a CRLF (or bare LF)
// followed by a single space or horizontal tab continues the previous line,
// and the break plus the marker byte are removed. The stream is lazy; lines
// are only consumed as ReadLine is called.
type CalendarStream struct {
	r io.Reader
	b *bufio.Reader
}

// NewCalendarStream wraps r in a buffered unfolding reader.
func NewCalendarStream(r io.Reader) *CalendarStream {
	return &CalendarStream{
		r: r,
		b: bufio.NewReader(r),
	}
}

// ReadLine returns the next unfolded content line without its terminating
// newline sequence. At end of input it returns io.EOF, possibly alongside a
// final unterminated line.
func (cs *CalendarStream) ReadLine() (*ContentLine, error) {
	r := []byte{}
	c := true
	var err error
	for c {
		var b []byte
		b, err = cs.b.ReadBytes('\n')
		switch {
		case len(b) == 0:
			if err == nil {
				continue
			}
			c = false
		case b[len(b)-1] == '\n':
			o := 1
			if len(b) > 1 && b[len(b)-2] == '\r' {
				o = 2
			}
			var p []byte
			p, err = cs.b.Peek(1)
			r = append(r, b[:len(b)-o]...)
			switch {
			case len(p) == 0:
				c = false
			case p[0] == ' ' || p[0] == '\t':
				// Folded continuation; drop the marker and keep reading.
				_, _ = cs.b.Discard(1)
			default:
				c = false
			}
		default:
			// Final line without a newline.
			r = append(r, b...)
		}
		switch err {
		case nil:
			if len(r) == 0 {
				c = true
			}
		case io.EOF:
			c = false
		default:
			return nil, err
		}
	}
	if len(r) == 0 && err != nil {
		return nil, err
	}
	cl := ContentLine(r)
	return &cl, err
}
