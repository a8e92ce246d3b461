// Package parser provides parsing for clock times and schedule dates.
package parser

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ClockLayout is the storage format for times of day.
const ClockLayout = "15:04"

// ParseClock parses an "HH:MM" clock string into minutes since midnight.
// A single-digit hour is accepted ("9:00").
func ParseClock(s string) (int, error) {
	hours, minutes, err := splitClock(s)
	if err != nil {
		return 0, err
	}
	return hours*60 + minutes, nil
}

// NormalizeClock returns the canonical zero-padded "HH:MM" form.
func NormalizeClock(s string) (string, error) {
	hours, minutes, err := splitClock(s)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%02d:%02d", hours, minutes), nil
}

func splitClock(s string) (int, int, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid clock time %q: want HH:MM", s)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, 0, fmt.Errorf("invalid hour in clock time %q", s)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || len(parts[1]) != 2 || minutes < 0 || minutes > 59 {
		return 0, 0, fmt.Errorf("invalid minute in clock time %q", s)
	}
	return hours, minutes, nil
}

// MinutesOfDay returns the minutes since midnight for a wall-clock instant.
func MinutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// ClockString formats minutes since midnight as "HH:MM".
func ClockString(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// FormatClock12 renders an "HH:MM" clock string in 12-hour display form,
// e.g. "21:05" -> "9:05 PM". Invalid input is returned unchanged.
func FormatClock12(s string) string {
	hours, minutes, err := splitClock(s)
	if err != nil {
		return s
	}
	period := "AM"
	if hours >= 12 {
		period = "PM"
	}
	display := hours % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, minutes, period)
}
