package ical

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalendarSerialize(t *testing.T) {
	cal := NewCalendar()
	event := cal.AddEvent("serialize-1")
	event.SetDtStampTime(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	event.SetStartAt(time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC))
	event.SetEndAt(time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC))
	event.SetSummary("Team sync")

	expected := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//Stefanius67//ICal",
		"BEGIN:VEVENT",
		"UID:serialize-1",
		"DTSTAMP:20240101T000000Z",
		"DTSTART:20240102T090000Z",
		"DTEND:20240102T100000Z",
		"SUMMARY:Team sync",
		"END:VEVENT",
		"END:VCALENDAR",
		"",
	}, "\n")
	assert.Equal(t, expected, cal.Serialize(WithNewLine("\n")))
}

func TestCalendarParseRoundTrip(t *testing.T) {
	cal := NewCalendar()
	event := cal.AddEvent("round-trip-1")
	event.SetDtStampTime(time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC))
	event.SetStartAt(time.Date(2024, 5, 2, 9, 30, 0, 0, time.UTC))
	event.SetSummary("A summary long enough to be folded onto a continuation line when serialized with the default length")

	serialized := cal.Serialize(WithNewLine("\r\n"))
	parsed, err := ParseCalendar(strings.NewReader(serialized))
	require.NoError(t, err)

	events := parsed.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "round-trip-1", events[0].Id())
	start, err := events[0].GetStartAt()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 2, 9, 30, 0, 0, time.UTC), start)

	assert.Equal(t, serialized, parsed.Serialize(WithNewLine("\r\n")))
}

func TestCalendarSerializeLineLengthOption(t *testing.T) {
	cal := NewCalendar()
	event := cal.AddEvent("line-length-1")
	event.SetDescription(strings.Repeat("words ", 30))
	out := cal.Serialize(WithLineLength(40), WithNewLine("\n"))
	for _, physical := range strings.Split(strings.TrimSuffix(out, "\n"), "\n") {
		assert.LessOrEqual(t, len(physical), 40)
	}
}

func TestParseCalendarSkipsMalformedLines(t *testing.T) {
	input := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"THIS LINE HAS NO COLON",
		"BEGIN:VEVENT",
		"UID:skip-1",
		"ANOTHER BAD LINE",
		"DTSTART:20240102T090000Z",
		"END:VEVENT",
		"END:VCALENDAR",
		"",
	}, "\r\n")
	cal, err := ParseCalendar(strings.NewReader(input))
	require.NoError(t, err)
	events := cal.Events()
	require.Len(t, events, 1)
	assert.True(t, events[0].HasProperty(ComponentPropertyDtStart))
}

func TestParseCalendarUnbalanced(t *testing.T) {
	t.Run("wrong end", func(t *testing.T) {
		input := "BEGIN:VCALENDAR\r\nBEGIN:VEVENT\r\nEND:VTODO\r\nEND:VCALENDAR\r\n"
		_, err := ParseCalendar(strings.NewReader(input))
		require.Error(t, err)
	})
	t.Run("truncated", func(t *testing.T) {
		input := "BEGIN:VCALENDAR\r\nBEGIN:VEVENT\r\nUID:x\r\n"
		_, err := ParseCalendar(strings.NewReader(input))
		require.Error(t, err)
	})
	t.Run("nested vcalendar", func(t *testing.T) {
		input := "BEGIN:VCALENDAR\r\nBEGIN:VCALENDAR\r\nEND:VCALENDAR\r\nEND:VCALENDAR\r\n"
		_, err := ParseCalendar(strings.NewReader(input))
		require.Error(t, err)
	})
}

func TestParseCalendarUnknownComponent(t *testing.T) {
	input := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"BEGIN:X-HOMEGROWN",
		"X-FIELD:value",
		"END:X-HOMEGROWN",
		"END:VCALENDAR",
		"",
	}, "\r\n")
	cal, err := ParseCalendar(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, cal.Components, 1)
	general, ok := cal.Components[0].(*GeneralComponent)
	require.True(t, ok)
	assert.Equal(t, "X-HOMEGROWN", general.Token)
	assert.True(t, general.HasProperty("X-FIELD"))
}

func TestCalendarTypedComponents(t *testing.T) {
	cal := NewCalendar()
	cal.AddEvent("e1")
	cal.AddTodo("t1")
	cal.AddJournal("j1")
	assert.Len(t, cal.Events(), 1)
	assert.Len(t, cal.Todos(), 1)
	assert.Len(t, cal.Components, 3)
}

func TestCalendarRemoveEvent(t *testing.T) {
	cal := NewCalendar()
	cal.AddEvent("keep")
	cal.AddEvent("drop")
	cal.RemoveEvent("drop")
	events := cal.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "keep", events[0].Id())
}

func TestCalendarProperties(t *testing.T) {
	cal := NewCalendar()
	cal.SetMethod(MethodRequest)
	cal.SetName("Work")
	cal.SetDescription("Office calendar")
	out := cal.Serialize(WithNewLine("\n"))
	assert.Contains(t, out, "METHOD:REQUEST\n")
	assert.Contains(t, out, "NAME:Work\n")
	assert.Contains(t, out, "DESCRIPTION:Office calendar\n")
}

func TestParseCalendarEmbeddedTimezoneAndEvent(t *testing.T) {
	input := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//Test//Test//EN",
		"BEGIN:VTIMEZONE",
		"TZID:America/New_York",
		"BEGIN:DAYLIGHT",
		"TZOFFSETFROM:-0500",
		"TZOFFSETTO:-0400",
		"TZNAME:EDT",
		"DTSTART:20070311T030000",
		"RRULE:FREQ=YEARLY;BYMONTH=3;BYDAY=2SU",
		"END:DAYLIGHT",
		"BEGIN:STANDARD",
		"TZOFFSETFROM:-0400",
		"TZOFFSETTO:-0500",
		"TZNAME:EST",
		"DTSTART:20071104T010000",
		"RRULE:FREQ=YEARLY;BYMONTH=11;BYDAY=1SU",
		"END:STANDARD",
		"END:VTIMEZONE",
		"BEGIN:VEVENT",
		"UID:tz-event-1",
		"DTSTART:20241101T130000Z",
		"RRULE:FREQ=DAILY;INTERVAL=2;COUNT=3",
		"END:VEVENT",
		"END:VCALENDAR",
		"",
	}, "\r\n")
	cal, err := ParseCalendar(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, cal.Timezones(), 1)

	tz, err := cal.Timezone("America/New_York")
	require.NoError(t, err)
	assert.Equal(t, -4*3600, tz.OffsetAt(time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)))

	events := cal.Events()
	require.Len(t, events, 1)
	// 2024-11-01T13:00Z is 09:00 EDT; the zone falls back on Nov 3, so the
	// wall time holds and the UTC instant shifts.
	got, err := events[0].Occurrences(time.Time{}, tz, &CollectSink{})
	require.NoError(t, err)
	assert.Equal(t, []string{"20241101T130000Z", "20241103T140000Z", "20241105T140000Z"}, utcStamps(got))
}
