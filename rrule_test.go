package ical

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecurrenceRuleDefaults(t *testing.T) {
	rule, err := ParseRecurrenceRule("FREQ=DAILY", nil)
	require.NoError(t, err)
	assert.Equal(t, FreqDaily, rule.Frequency)
	assert.Equal(t, 1, rule.Interval)
	assert.Zero(t, rule.Count)
	assert.True(t, rule.Until.IsZero())
	assert.Equal(t, time.Sunday, rule.WeekStart)
}

func TestParseRecurrenceRuleParts(t *testing.T) {
	sink := &CollectSink{}
	rule, err := ParseRecurrenceRule("FREQ=WEEKLY;INTERVAL=2;BYDAY=MO,WE,-1FR;WKST=MO;UNTIL=20251231T000000Z", sink)
	require.NoError(t, err)
	assert.Empty(t, sink.Diagnostics)
	assert.Equal(t, FreqWeekly, rule.Frequency)
	assert.Equal(t, 2, rule.Interval)
	assert.Equal(t, time.Monday, rule.WeekStart)
	assert.Equal(t, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), rule.Until)
	require.Len(t, rule.ByDay, 3)
	assert.Equal(t, ByDay{Day: time.Monday}, rule.ByDay[0])
	assert.Equal(t, ByDay{Ordinal: -1, Day: time.Friday}, rule.ByDay[2])
}

func TestParseRecurrenceRuleCaseAndWhitespace(t *testing.T) {
	rule, err := ParseRecurrenceRule("freq=monthly; byday=2tu ;bymonthday=15", nil)
	require.NoError(t, err)
	assert.Equal(t, FreqMonthly, rule.Frequency)
	require.Len(t, rule.ByDay, 1)
	assert.Equal(t, ByDay{Ordinal: 2, Day: time.Tuesday}, rule.ByDay[0])
	assert.Equal(t, []int{15}, rule.ByMonthDay)
}

func TestParseRecurrenceRuleWarnings(t *testing.T) {
	t.Run("out of range clears whole list", func(t *testing.T) {
		sink := &CollectSink{}
		rule, err := ParseRecurrenceRule("FREQ=DAILY;BYHOUR=7,99;BYMINUTE=30", sink)
		require.NoError(t, err)
		assert.Nil(t, rule.ByHour)
		assert.Equal(t, []int{30}, rule.ByMinute)
		require.Len(t, sink.Diagnostics, 1)
		assert.Equal(t, SeverityWarning, sink.Diagnostics[0].Severity)
		assert.Equal(t, "BYHOUR", sink.Diagnostics[0].Field)
		assert.False(t, sink.HasFatal())
	})
	t.Run("second sixty out of range", func(t *testing.T) {
		sink := &CollectSink{}
		rule, err := ParseRecurrenceRule("FREQ=MINUTELY;BYSECOND=0,60", sink)
		require.NoError(t, err)
		assert.Nil(t, rule.BySecond)
		require.Len(t, sink.Diagnostics, 1)
		assert.Equal(t, "BYSECOND", sink.Diagnostics[0].Field)
	})
	t.Run("negative where unsigned", func(t *testing.T) {
		sink := &CollectSink{}
		rule, err := ParseRecurrenceRule("FREQ=YEARLY;BYMONTH=-2", sink)
		require.NoError(t, err)
		assert.Nil(t, rule.ByMonth)
		require.Len(t, sink.Diagnostics, 1)
	})
	t.Run("bad interval keeps default", func(t *testing.T) {
		sink := &CollectSink{}
		rule, err := ParseRecurrenceRule("FREQ=DAILY;INTERVAL=0", sink)
		require.NoError(t, err)
		assert.Equal(t, 1, rule.Interval)
		require.Len(t, sink.Diagnostics, 1)
	})
	t.Run("bad until ignored", func(t *testing.T) {
		sink := &CollectSink{}
		rule, err := ParseRecurrenceRule("FREQ=DAILY;UNTIL=someday", sink)
		require.NoError(t, err)
		assert.True(t, rule.Until.IsZero())
		require.Len(t, sink.Diagnostics, 1)
	})
	t.Run("bad byday ordinal clears list", func(t *testing.T) {
		sink := &CollectSink{}
		rule, err := ParseRecurrenceRule("FREQ=MONTHLY;BYDAY=99MO,TU", sink)
		require.NoError(t, err)
		assert.Nil(t, rule.ByDay)
	})
	t.Run("unknown part tolerated", func(t *testing.T) {
		sink := &CollectSink{}
		_, err := ParseRecurrenceRule("FREQ=DAILY;X-EXTENSION=YES", sink)
		require.NoError(t, err)
		assert.Empty(t, sink.Diagnostics)
	})
}

func TestParseRecurrenceRuleFatal(t *testing.T) {
	tests := []struct {
		name string
		text string
		want error
	}{
		{name: "missing freq", text: "COUNT=3", want: ErrMissingFrequency},
		{name: "unknown freq", text: "FREQ=FORTNIGHTLY", want: ErrUnknownFrequency},
		{name: "until and count", text: "FREQ=DAILY;UNTIL=20250101T000000Z;COUNT=3", want: ErrUntilAndCount},
		{name: "byweekno outside yearly", text: "FREQ=MONTHLY;BYWEEKNO=2", want: ErrByWeekNoRequiresYearly},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sink := &CollectSink{}
			rule, err := ParseRecurrenceRule(tc.text, sink)
			require.ErrorIs(t, err, tc.want)
			assert.True(t, sink.HasFatal())
			// The crippled rule must stay quiet.
			start := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
			assert.Nil(t, rule.Generate(start, time.Time{}, nil))
		})
	}
}

func TestParseRecurrenceRuleByWeekNoYearlyAllowed(t *testing.T) {
	rule, err := ParseRecurrenceRule("FREQ=YEARLY;BYWEEKNO=20", nil)
	require.NoError(t, err)
	assert.Equal(t, []int{20}, rule.ByWeekNo)
}

func TestRecurrenceRuleString(t *testing.T) {
	tests := []string{
		"FREQ=DAILY",
		"FREQ=DAILY;INTERVAL=2;COUNT=10",
		"FREQ=WEEKLY;BYDAY=MO,WE,FR;WKST=MO",
		"FREQ=MONTHLY;BYMONTHDAY=-1",
		"FREQ=MONTHLY;BYDAY=MO,TU,WE,TH,FR;BYSETPOS=-1",
		"FREQ=YEARLY;BYMONTH=3;BYDAY=-1SU",
		"FREQ=YEARLY;BYWEEKNO=20;BYDAY=MO",
		"FREQ=YEARLY;UNTIL=20301231T000000Z;BYYEARDAY=1,100,-1",
		"FREQ=HOURLY;BYHOUR=9,17;BYMINUTE=0,30;BYSECOND=15",
	}
	for _, text := range tests {
		t.Run(text, func(t *testing.T) {
			rule, err := ParseRecurrenceRule(text, nil)
			require.NoError(t, err)
			assert.Equal(t, text, rule.String())

			again, err := ParseRecurrenceRule(rule.String(), nil)
			require.NoError(t, err)
			assert.Equal(t, rule.String(), again.String())
		})
	}
}

func TestContainsIntNegativeIndex(t *testing.T) {
	// -1 against length 31 resolves to 31, -31 to 1.
	assert.True(t, containsInt([]int{-1}, 31, 31))
	assert.True(t, containsInt([]int{-31}, 1, 31))
	assert.False(t, containsInt([]int{-1}, 30, 31))
	assert.True(t, containsInt([]int{15}, 15, 28))
}
