package ical

import (
	"fmt"
	"strings"
	"time"

	duration "github.com/ChannelMeter/iso8601duration"
)

// ParseICalDuration decodes an RFC 5545 DURATION value (section 3.3.6). The
// grammar is the ISO 8601 duration form restricted to weeks, days and time
// designators, with an optional leading sign; year and month designators are
// not valid in iCalendar and are rejected.
func ParseICalDuration(s string) (time.Duration, error) {
	body := strings.TrimSpace(s)
	negative := false
	switch {
	case strings.HasPrefix(body, "-"):
		negative = true
		body = body[1:]
	case strings.HasPrefix(body, "+"):
		body = body[1:]
	}
	if !strings.HasPrefix(body, "P") {
		return 0, fmt.Errorf("%w: %q", ErrMalformedDuration, s)
	}
	if strings.Contains(body, "Y") {
		return 0, fmt.Errorf("%w: year designator in %q", ErrMalformedDuration, s)
	}
	// M before the T separator would be a month designator.
	if datePart, _, _ := strings.Cut(body, "T"); strings.Contains(datePart, "M") {
		return 0, fmt.Errorf("%w: month designator in %q", ErrMalformedDuration, s)
	}
	d, err := duration.FromString(body)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedDuration, s)
	}
	out := d.ToDuration()
	if negative {
		out = -out
	}
	return out, nil
}

// FormatICalDuration renders d as an RFC 5545 DURATION value. Durations that
// are a whole number of weeks use the week form; everything else uses days
// plus a time part. The zero duration renders as PT0S.
func FormatICalDuration(d time.Duration) string {
	b := &strings.Builder{}
	if d < 0 {
		b.WriteString("-")
		d = -d
	}
	b.WriteString("P")
	const week = 7 * 24 * time.Hour
	if d != 0 && d%week == 0 {
		fmt.Fprintf(b, "%dW", d/week)
		return b.String()
	}
	if days := d / (24 * time.Hour); days > 0 {
		fmt.Fprintf(b, "%dD", days)
		d -= days * 24 * time.Hour
	}
	if d > 0 || b.String() == "P" || b.String() == "-P" {
		b.WriteString("T")
		if h := d / time.Hour; h > 0 {
			fmt.Fprintf(b, "%dH", h)
			d -= h * time.Hour
		}
		if m := d / time.Minute; m > 0 {
			fmt.Fprintf(b, "%dM", m)
			d -= m * time.Minute
		}
		s := d / time.Second
		if s > 0 || b.String() == "PT" || b.String() == "-PT" {
			fmt.Fprintf(b, "%dS", s)
		}
	}
	return b.String()
}
