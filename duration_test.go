package ical

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseICalDuration(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
	}{
		{"PT15M", 15 * time.Minute},
		{"-PT15M", -15 * time.Minute},
		{"+PT1H", time.Hour},
		{"P1W", 7 * 24 * time.Hour},
		{"P1DT12H", 36 * time.Hour},
		{"P15DT5H0M20S", 15*24*time.Hour + 5*time.Hour + 20*time.Second},
		{"PT0S", 0},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseICalDuration(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseICalDurationRejects(t *testing.T) {
	// Year and month designators are ISO 8601 but not iCalendar.
	for _, input := range []string{"P1Y", "P2M", "P1Y2M3D", "15M", ""} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseICalDuration(input)
			require.ErrorIs(t, err, ErrMalformedDuration)
		})
	}
	t.Run("minutes after T still valid", func(t *testing.T) {
		got, err := ParseICalDuration("PT2M")
		require.NoError(t, err)
		assert.Equal(t, 2*time.Minute, got)
	})
}

func TestFormatICalDuration(t *testing.T) {
	tests := []struct {
		input time.Duration
		want  string
	}{
		{15 * time.Minute, "PT15M"},
		{-15 * time.Minute, "-PT15M"},
		{90 * time.Minute, "PT1H30M"},
		{7 * 24 * time.Hour, "P1W"},
		{14 * 24 * time.Hour, "P2W"},
		{36 * time.Hour, "P1DT12H"},
		{24 * time.Hour, "P1D"},
		{0, "PT0S"},
		{45 * time.Second, "PT45S"},
	}
	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatICalDuration(tc.input))
		})
	}
}

func TestDurationRoundTrip(t *testing.T) {
	for _, d := range []time.Duration{
		0, time.Second, 90 * time.Minute, 36 * time.Hour, 7 * 24 * time.Hour, -2 * time.Hour,
	} {
		got, err := ParseICalDuration(FormatICalDuration(d))
		require.NoError(t, err)
		assert.Equal(t, d, got)
	}
}
