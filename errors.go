package ical

import (
	"errors"
)

var (
	ErrStartAndEndDateNotDefined = errors.New("start time and end time not defined")
	// ErrorPropertyNotFound is the error returned if the requested valid
	// property is not set.
	ErrorPropertyNotFound = errors.New("property not found")
	// ErrMissingFrequency is returned when an RRULE has no FREQ part.
	ErrMissingFrequency = errors.New("recurrence rule missing FREQ")
	// ErrUnknownFrequency is returned when the FREQ value is not one of the
	// RFC 5545 frequencies.
	ErrUnknownFrequency = errors.New("recurrence rule has unknown FREQ")
	// ErrUntilAndCount is returned when an RRULE carries both UNTIL and
	// COUNT, which RFC 5545 section 3.3.10 forbids.
	ErrUntilAndCount = errors.New("recurrence rule has both UNTIL and COUNT")
	// ErrByWeekNoRequiresYearly is returned when BYWEEKNO appears with a
	// frequency other than YEARLY.
	ErrByWeekNoRequiresYearly = errors.New("BYWEEKNO is only valid with FREQ=YEARLY")
	ErrMalformedUtcOffset     = errors.New("malformed UTC offset")
	ErrMalformedDuration      = errors.New("malformed duration")
	ErrTimezoneNotFound       = errors.New("timezone not found")
)
