package ical

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const berlinTimezoneSource = `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//Test//Test//EN
BEGIN:VTIMEZONE
TZID:Europe/Berlin
BEGIN:DAYLIGHT
TZOFFSETFROM:+0100
TZOFFSETTO:+0200
TZNAME:CEST
DTSTART:19810329T020000
RRULE:FREQ=YEARLY;BYMONTH=3;BYDAY=-1SU
END:DAYLIGHT
BEGIN:STANDARD
TZOFFSETFROM:+0200
TZOFFSETTO:+0100
TZNAME:CET
DTSTART:19961027T030000
RRULE:FREQ=YEARLY;BYMONTH=10;BYDAY=-1SU
END:STANDARD
END:VTIMEZONE
END:VCALENDAR
`

func TestTransitionKindMatchesComponentType(t *testing.T) {
	assert.Equal(t, TransitionKind("STANDARD"), TransitionStandard)
	assert.Equal(t, TransitionKind("DAYLIGHT"), TransitionDaylight)
	assert.Equal(t, string(ComponentStandard), string(TransitionStandard))
	assert.Equal(t, string(ComponentDaylight), string(TransitionDaylight))
}

func TestOffsetTableStrictlyBefore(t *testing.T) {
	cut := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	tz := &Timezone{
		ID: "Test/Zone",
		Transitions: []*TimezoneTransition{{
			Kind:        TransitionDaylight,
			Name:        "TST",
			OffsetFrom:  3600,
			OffsetTo:    7200,
			AnchorStart: cut,
		}},
	}
	// Before any transition the sentinel supplies the earliest offset-from.
	assert.Equal(t, 3600, tz.OffsetAt(cut.Add(-time.Second)))
	assert.Equal(t, 3600, tz.OffsetAt(time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)))
	// The transition instant itself still reports the previous offset.
	assert.Equal(t, 3600, tz.OffsetAt(cut))
	assert.Equal(t, 7200, tz.OffsetAt(cut.Add(time.Second)))
}

func TestNilTimezoneIsUTC(t *testing.T) {
	var tz *Timezone
	assert.Zero(t, tz.OffsetAt(time.Now()))
	inst := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	assert.True(t, instantFromWall(wallClock(inst, tz), tz).Equal(inst))
}

func TestNewTimezoneFromComponent(t *testing.T) {
	cal, err := ParseCalendar(strings.NewReader(berlinTimezoneSource))
	require.NoError(t, err)
	tz, err := cal.Timezone("Europe/Berlin")
	require.NoError(t, err)
	require.Equal(t, "Europe/Berlin", tz.ID)
	require.Len(t, tz.Transitions, 2)

	assert.Equal(t, 7200, tz.OffsetAt(time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 3600, tz.OffsetAt(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 3600, tz.OffsetAt(time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "+0200", tz.OffsetStringAt(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)))

	// 2024 spring change: last Sunday of March, recurrence-generated.
	assert.Equal(t, 3600, tz.OffsetAt(time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 7200, tz.OffsetAt(time.Date(2024, 3, 31, 1, 0, 0, 0, time.UTC)))

	// Before the first observance the earliest offset-from applies.
	assert.Equal(t, 3600, tz.OffsetAt(time.Date(1970, 6, 1, 0, 0, 0, 0, time.UTC)))
}

func TestNewTimezoneFromComponentMissingParts(t *testing.T) {
	v := NewTimezone("Broken/Zone")
	std := &Standard{}
	std.SetProperty(ComponentPropertyTzoffsetfrom, "+0100")
	v.Components = append(v.Components, std)
	_, err := NewTimezoneFromComponent(v, &CollectSink{})
	require.Error(t, err)
}

func TestNewTimezoneFromComponentRdate(t *testing.T) {
	v := NewTimezone("Test/Rdate")
	std := &Standard{}
	std.SetProperty(ComponentPropertyTzoffsetfrom, "+0200")
	std.SetProperty(ComponentPropertyTzoffsetto, "+0100")
	std.SetProperty(ComponentPropertyDtStart, "20200101T030000")
	std.SetProperty(ComponentPropertyRdate, "20200101T030000,20221106T030000")
	v.Components = append(v.Components, std)

	tz, err := NewTimezoneFromComponent(v, &CollectSink{})
	require.NoError(t, err)
	require.Len(t, tz.Transitions, 1)
	// The RDATE equal to DTSTART is folded into the anchor.
	assert.Len(t, tz.Transitions[0].Dates, 1)
	assert.Equal(t, 3600, tz.OffsetAt(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestTimezoneVTimezoneRoundTrip(t *testing.T) {
	cal, err := ParseCalendar(strings.NewReader(berlinTimezoneSource))
	require.NoError(t, err)
	tz, err := cal.Timezone("Europe/Berlin")
	require.NoError(t, err)

	again, err := NewTimezoneFromComponent(tz.VTimezone(), &CollectSink{})
	require.NoError(t, err)
	for _, probe := range []time.Time{
		time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2030, 4, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2030, 11, 10, 0, 0, 0, 0, time.UTC),
	} {
		assert.Equal(t, tz.OffsetAt(probe), again.OffsetAt(probe), "offset mismatch at %s", probe)
	}
}

func TestNewTimezoneFromLocation(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)
	span := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tz := NewTimezoneFromLocation("Europe/Berlin", loc, span, span.AddDate(1, 0, 0))

	// Repeating transitions collapse into one daylight and one standard rule.
	require.Len(t, tz.Transitions, 2)
	assert.Equal(t, 7200, tz.OffsetAt(time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 3600, tz.OffsetAt(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)))

	kinds := map[TransitionKind]bool{}
	for _, tr := range tz.Transitions {
		kinds[tr.Kind] = true
	}
	assert.True(t, kinds[TransitionDaylight])
	assert.True(t, kinds[TransitionStandard])
}

func TestNewTimezoneFromLocationFixedZone(t *testing.T) {
	loc := time.FixedZone("TST", 3*3600)
	span := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tz := NewTimezoneFromLocation("TST", loc, span, span.AddDate(1, 0, 0))
	require.Len(t, tz.Transitions, 1)
	assert.Equal(t, 3*3600, tz.OffsetAt(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 3*3600, tz.OffsetAt(time.Date(1990, 6, 1, 0, 0, 0, 0, time.UTC)))
}

func TestTimezoneAddDate(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)
	span := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tz := NewTimezoneFromLocation("Europe/Berlin", loc, span, span.AddDate(1, 0, 0))

	t.Run("fall back keeps wall clock", func(t *testing.T) {
		t0 := time.Date(2024, 10, 26, 8, 0, 0, 0, loc)
		got := tz.AddDate(t0, 0, 0, 1)
		assert.True(t, got.Equal(time.Date(2024, 10, 27, 8, 0, 0, 0, loc)))
		assert.Equal(t, 25*time.Hour, got.Sub(t0))
	})
	t.Run("spring forward keeps wall clock", func(t *testing.T) {
		t0 := time.Date(2024, 3, 30, 8, 0, 0, 0, loc)
		got := tz.AddDate(t0, 0, 0, 1)
		assert.True(t, got.Equal(time.Date(2024, 3, 31, 8, 0, 0, 0, loc)))
		assert.Equal(t, 23*time.Hour, got.Sub(t0))
	})
	t.Run("month step", func(t *testing.T) {
		t0 := time.Date(2024, 10, 15, 9, 30, 0, 0, loc)
		got := tz.AddDate(t0, 0, 1, 0)
		assert.True(t, got.Equal(time.Date(2024, 11, 15, 9, 30, 0, 0, loc)))
	})
}

func TestCalendarTimezoneSystemFallback(t *testing.T) {
	cal := NewCalendar()
	tz, err := cal.Timezone("America/New_York")
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", tz.ID)
	assert.Equal(t, -5*3600, tz.OffsetAt(time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, -4*3600, tz.OffsetAt(time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC)))
}

func TestCalendarTimezoneNotFound(t *testing.T) {
	cal := NewCalendar()
	_, err := cal.Timezone("Nowhere/At All")
	require.ErrorIs(t, err, ErrTimezoneNotFound)
}
