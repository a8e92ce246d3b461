// Package validate provides input validation helpers for the Dosewatch CLI.
package validate

import (
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dosewatch/dosewatch/internal/errors"
	"github.com/dosewatch/dosewatch/internal/model"
	"github.com/dosewatch/dosewatch/internal/parser"
)

// timeNow is swapped in tests.
var timeNow = time.Now

const (
	// MaxNameLength is the maximum length for a medicine or patient name.
	MaxNameLength = 128
	// MaxDosageLength is the maximum length for a dosage description.
	MaxDosageLength = 128
	// MaxInstructionsLength is the maximum length for instructions.
	MaxInstructionsLength = 1024
	// MaxURLLength is the maximum length for a webhook URL.
	MaxURLLength = 2048
	// MaxWebhookNameLength is the maximum length for a webhook name.
	MaxWebhookNameLength = 50
)

// colorRegex validates hex display colors like "#3B82F6".
var colorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// webhookNameRegex validates webhook names (alphanumeric, dashes, underscores).
var webhookNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]*$`)

// MedicineName validates a medicine name.
func MedicineName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.NewUserError("Medicine name cannot be empty", "Provide a medicine name")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return errors.NewUserErrorWithField("name", name,
			"Medicine name too long",
			"Medicine names must be 128 characters or fewer")
	}
	return nil
}

// Dosage validates a dosage description.
func Dosage(dosage string) error {
	if strings.TrimSpace(dosage) == "" {
		return errors.NewUserError("Dosage cannot be empty", "Provide a dosage, e.g. '100mg'")
	}
	if utf8.RuneCountInString(dosage) > MaxDosageLength {
		return errors.NewUserErrorWithField("dosage", dosage,
			"Dosage too long",
			"Dosage must be 128 characters or fewer")
	}
	return nil
}

// Instructions validates optional instructions text.
func Instructions(text string) error {
	if utf8.RuneCountInString(text) > MaxInstructionsLength {
		return errors.NewUserError(
			"Instructions too long",
			"Instructions must be 1024 characters or fewer")
	}
	return nil
}

// ClockTime validates an "HH:MM" time of day.
func ClockTime(clock string) error {
	if _, err := parser.ParseClock(clock); err != nil {
		return errors.NewUserErrorWithField("time", clock,
			"Invalid time of day",
			"Times must be HH:MM between 00:00 and 23:59")
	}
	return nil
}

// ClockTimes validates a schedule time list: every entry well-formed and
// unique within the medicine.
func ClockTimes(times []string) error {
	if len(times) == 0 {
		return errors.NewUserError("At least one dose time is required",
			"Provide times with --times, e.g. --times 09:00,21:00")
	}
	seen := make(map[string]bool, len(times))
	for _, clock := range times {
		if err := ClockTime(clock); err != nil {
			return err
		}
		normalized, _ := parser.NormalizeClock(clock)
		if seen[normalized] {
			return errors.NewUserErrorWithField("times", clock,
				"Duplicate dose time",
				"Each time may appear only once per medicine")
		}
		seen[normalized] = true
	}
	return nil
}

// Date validates a "YYYY-MM-DD" date string.
func Date(date string) error {
	if date == "" {
		return nil
	}
	if _, err := parser.ParseDate(date, timeNow()); err != nil {
		return errors.NewUserErrorWithField("date", date,
			"Invalid date",
			"Dates must be YYYY-MM-DD or a phrase like 'next monday'")
	}
	return nil
}

// HexColor validates a display color.
func HexColor(color string) error {
	if color == "" {
		return nil
	}
	if !colorRegex.MatchString(color) {
		return errors.NewUserErrorWithField("color", color,
			"Invalid color format",
			"Colors must be hex like #3B82F6")
	}
	return nil
}

// Frequency validates a frequency tag.
func Frequency(freq string) error {
	if !model.IsValidFrequency(model.Frequency(freq)) {
		return errors.NewUserErrorWithField("frequency", freq,
			"Invalid frequency",
			"Use daily, twice-daily, three-times-daily, or weekly")
	}
	return nil
}

// Gender validates a gender tag.
func Gender(g string) error {
	if !model.IsValidGender(model.Gender(g)) {
		return errors.NewUserErrorWithField("gender", g,
			"Invalid gender",
			"Use male, female, or other")
	}
	return nil
}

// WebhookName validates a webhook channel name.
func WebhookName(name string) error {
	if name == "" {
		return errors.NewUserError("Webhook name cannot be empty", "Provide a webhook name")
	}
	if len(name) > MaxWebhookNameLength {
		return errors.NewUserErrorWithField("name", name,
			"Webhook name too long",
			"Webhook names must be 50 characters or fewer")
	}
	if !webhookNameRegex.MatchString(name) {
		return errors.NewUserErrorWithField("name", name,
			"Invalid webhook name",
			"Webhook names must start with a letter or number and contain only letters, numbers, dashes, or underscores")
	}
	return nil
}

// URL validates a webhook URL.
func URL(raw string) error {
	if raw == "" {
		return errors.NewUserError("URL cannot be empty", "Provide a webhook URL")
	}
	if len(raw) > MaxURLLength {
		return errors.NewUserError("URL too long", "URLs must be 2048 characters or fewer")
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.NewUserErrorWithField("url", raw,
			"Invalid URL",
			"URLs must start with http:// or https://")
	}
	return nil
}
