package ical

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	icalTimestampFormatUtc   = "20060102T150405Z"
	icalTimestampFormatLocal = "20060102T150405"
	icalDateFormatUtc        = "20060102Z"
	icalDateFormatLocal      = "20060102"
)

// ParseICalDateTime decodes a DATE or DATE-TIME property value per RFC 5545
// sections 3.3.4 and 3.3.5. The reported isDate is true when the value (or a
// VALUE=DATE parameter) carries no time part. The zone is resolved in order:
// trailing Z means UTC, a TZID parameter names an IANA zone, and a value with
// neither is read as UTC.
func ParseICalDateTime(value string, params map[string][]string) (t time.Time, isDate bool, err error) {
	value = strings.TrimSpace(value)
	if vs, ok := params[string(ParameterValue)]; ok && len(vs) > 0 && vs[0] == string(ValueDataTypeDate) {
		isDate = true
	}
	if !isDate && !strings.Contains(value, "T") {
		isDate = true
	}

	loc := time.UTC
	if tzs, ok := params[string(ParameterTzid)]; ok && len(tzs) > 0 {
		loc, err = time.LoadLocation(tzs[0])
		if err != nil {
			return time.Time{}, false, fmt.Errorf("loading TZID %q: %w", tzs[0], err)
		}
	}

	switch {
	case isDate && strings.HasSuffix(value, "Z"):
		t, err = time.ParseInLocation(icalDateFormatUtc, value, time.UTC)
	case isDate:
		t, err = time.ParseInLocation(icalDateFormatLocal, value, loc)
	case strings.HasSuffix(value, "Z"):
		t, err = time.ParseInLocation(icalTimestampFormatUtc, value, time.UTC)
	default:
		t, err = time.ParseInLocation(icalTimestampFormatLocal, value, loc)
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parsing date-time %q: %w", value, err)
	}
	return t, isDate, nil
}

// FormatICalDateTime renders t as an RFC 5545 DATE-TIME in UTC.
func FormatICalDateTime(t time.Time) string {
	return t.UTC().Format(icalTimestampFormatUtc)
}

// FormatICalDate renders t as an RFC 5545 DATE.
func FormatICalDate(t time.Time) string {
	return t.Format(icalDateFormatLocal)
}

// ParseUTCOffset decodes a UTC-OFFSET value (RFC 5545 section 3.3.14):
// a sign, two digit hours, two digit minutes and optional two digit seconds.
// The result is seconds east of UTC.
func ParseUTCOffset(s string) (int, error) {
	s = strings.TrimSpace(s)
	if len(s) != 5 && len(s) != 7 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedUtcOffset, s)
	}
	sign := 1
	switch s[0] {
	case '+':
	case '-':
		sign = -1
	default:
		return 0, fmt.Errorf("%w: %q", ErrMalformedUtcOffset, s)
	}
	hh, err := strconv.Atoi(s[1:3])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedUtcOffset, s)
	}
	mm, err := strconv.Atoi(s[3:5])
	if err != nil || mm > 59 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedUtcOffset, s)
	}
	ss := 0
	if len(s) == 7 {
		ss, err = strconv.Atoi(s[5:7])
		if err != nil || ss > 59 {
			return 0, fmt.Errorf("%w: %q", ErrMalformedUtcOffset, s)
		}
	}
	return sign * (hh*3600 + mm*60 + ss), nil
}

// FormatUTCOffset renders seconds east of UTC as ±HHMM, with a seconds field
// only when the offset is not a whole minute.
func FormatUTCOffset(seconds int) string {
	sign := "+"
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	hh := seconds / 3600
	mm := seconds % 3600 / 60
	ss := seconds % 60
	if ss != 0 {
		return fmt.Sprintf("%s%02d%02d%02d", sign, hh, mm, ss)
	}
	return fmt.Sprintf("%s%02d%02d", sign, hh, mm)
}
