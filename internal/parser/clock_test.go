package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		input string
		want  int
		ok    bool
	}{
		{"00:00", 0, true},
		{"09:00", 540, true},
		{"9:00", 540, true},
		{"23:59", 1439, true},
		{"12:30", 750, true},
		{"24:00", 0, false},
		{"09:60", 0, false},
		{"09:5", 0, false},
		{"0900", 0, false},
		{"", 0, false},
		{"ab:cd", 0, false},
	}

	for _, tt := range tests {
		got, err := ParseClock(tt.input)
		if tt.ok {
			require.NoError(t, err, "input %q", tt.input)
			assert.Equal(t, tt.want, got, "input %q", tt.input)
		} else {
			assert.Error(t, err, "input %q", tt.input)
		}
	}
}

func TestNormalizeClock(t *testing.T) {
	got, err := NormalizeClock("9:05")
	require.NoError(t, err)
	assert.Equal(t, "09:05", got)

	_, err = NormalizeClock("25:00")
	assert.Error(t, err)
}

func TestMinutesOfDay(t *testing.T) {
	at := time.Date(2026, 8, 29, 9, 1, 30, 0, time.Local)
	assert.Equal(t, 541, MinutesOfDay(at))
}

func TestClockString(t *testing.T) {
	assert.Equal(t, "09:00", ClockString(540))
	assert.Equal(t, "23:59", ClockString(1439))
	assert.Equal(t, "00:05", ClockString(5))
}

func TestFormatClock12(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"00:15", "12:15 AM"},
		{"09:00", "9:00 AM"},
		{"12:00", "12:00 PM"},
		{"21:05", "9:05 PM"},
		{"not-a-time", "not-a-time"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatClock12(tt.input))
	}
}

func TestParseDate(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.Local)

	got, err := ParseDate("2026-09-01", now)
	require.NoError(t, err)
	assert.Equal(t, "2026-09-01", got)

	got, err = ParseDate("", now)
	require.NoError(t, err)
	assert.Equal(t, "2026-08-29", got)

	got, err = ParseDate("today", now)
	require.NoError(t, err)
	assert.Equal(t, "2026-08-29", got)

	_, err = ParseDate("definitely not a date at all xyzzy", now)
	assert.Error(t, err)
}
