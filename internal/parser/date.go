package parser

import (
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"
)

// DateLayout is the storage format for schedule dates.
const DateLayout = "2006-01-02"

// Today returns the current date as a storage-format string.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}

// ParseDate parses a schedule date. Strict "YYYY-MM-DD" input is taken as
// is; anything else goes through natural-language parsing ("today",
// "next monday", "in 2 weeks").
func ParseDate(input string, now time.Time) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return Today(now), nil
	}

	if t, err := time.ParseInLocation(DateLayout, input, now.Location()); err == nil {
		return t.Format(DateLayout), nil
	}

	cfg := &dateparser.Configuration{
		CurrentTime: now,
	}
	result, err := dateparser.Parse(cfg, input)
	if err != nil {
		return "", err
	}
	return result.Time.Format(DateLayout), nil
}
