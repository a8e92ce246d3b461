package model

import (
	"fmt"
	"sort"
	"time"
)

// Frequency is an informational tag describing how often a medicine is
// taken. Scheduling is driven by the Times list, never by this tag.
type Frequency string

// Valid frequency tags.
const (
	FreqDaily           Frequency = "daily"
	FreqTwiceDaily      Frequency = "twice-daily"
	FreqThreeTimesDaily Frequency = "three-times-daily"
	FreqWeekly          Frequency = "weekly"
)

// Medicine represents a medicine with its dose schedule.
type Medicine struct {
	Key          string    `json:"key"`
	Name         string    `json:"name" validate:"required,max=128"`
	Dosage       string    `json:"dosage" validate:"required,max=128"`
	Frequency    Frequency `json:"frequency"`
	Times        []string  `json:"times"` // "HH:MM", sorted, unique
	StartDate    string    `json:"start_date"`              // "YYYY-MM-DD"
	EndDate      string    `json:"end_date,omitempty"`      // "YYYY-MM-DD"
	Instructions string    `json:"instructions,omitempty"`
	Color        string    `json:"color"` // hex, e.g. "#3B82F6"
	CreatedAt    time.Time `json:"created_at"`
}

// SetKey sets the database key for this medicine.
func (m *Medicine) SetKey(key string) {
	m.Key = key
}

// GetKey returns the database key for this medicine.
func (m *Medicine) GetKey() string {
	return m.Key
}

// ShortID returns the first 6 characters of the UUID for display.
func (m *Medicine) ShortID() string {
	// Key format: "medicine:uuid"
	if len(m.Key) > 15 {
		return m.Key[9:15] // Skip "medicine:" prefix
	}
	return m.Key
}

// HasTime returns true if the given clock time is on the schedule.
func (m *Medicine) HasTime(clock string) bool {
	for _, t := range m.Times {
		if t == clock {
			return true
		}
	}
	return false
}

// AddTime inserts a clock time into the schedule, keeping the list sorted
// and unique. Returns false if the time was already present.
func (m *Medicine) AddTime(clock string) bool {
	if m.HasTime(clock) {
		return false
	}
	m.Times = append(m.Times, clock)
	sort.Strings(m.Times)
	return true
}

// RemoveTime drops a clock time from the schedule. Returns false if the
// time was not present.
func (m *Medicine) RemoveTime(clock string) bool {
	for i, t := range m.Times {
		if t == clock {
			m.Times = append(m.Times[:i], m.Times[i+1:]...)
			return true
		}
	}
	return false
}

// ActiveOn returns true if the medicine's schedule covers the given date.
// ISO dates compare correctly as strings.
func (m *Medicine) ActiveOn(date string) bool {
	if m.StartDate != "" && date < m.StartDate {
		return false
	}
	if m.EndDate != "" && date > m.EndDate {
		return false
	}
	return true
}

// GenerateMedicineKey generates a database key for a medicine using UUID.
func GenerateMedicineKey(uuid string) string {
	return fmt.Sprintf("%s:%s", PrefixMedicine, uuid)
}

// NewMedicine creates a new medicine. When no times are given, the
// frequency's default slots are used.
func NewMedicine(name, dosage string, freq Frequency, times []string) *Medicine {
	if len(times) == 0 {
		times = DefaultTimes(freq)
	} else {
		times = append([]string(nil), times...)
		sort.Strings(times)
	}
	return &Medicine{
		Name:      name,
		Dosage:    dosage,
		Frequency: freq,
		Times:     times,
		Color:     DefaultColor,
		CreatedAt: time.Now(),
	}
}

// DefaultColor is used when no display color is chosen.
const DefaultColor = "#3B82F6"

// DefaultTimes returns the preset dose slots for a frequency tag.
func DefaultTimes(freq Frequency) []string {
	switch freq {
	case FreqTwiceDaily:
		return []string{"09:00", "21:00"}
	case FreqThreeTimesDaily:
		return []string{"08:00", "14:00", "20:00"}
	default:
		return []string{"09:00"}
	}
}

// ValidFrequencies returns the valid frequency tags.
func ValidFrequencies() []Frequency {
	return []Frequency{FreqDaily, FreqTwiceDaily, FreqThreeTimesDaily, FreqWeekly}
}

// IsValidFrequency checks if a frequency tag is valid.
func IsValidFrequency(freq Frequency) bool {
	for _, valid := range ValidFrequencies() {
		if freq == valid {
			return true
		}
	}
	return false
}

// FrequencyLabel returns a human-readable label for a frequency tag.
func FrequencyLabel(freq Frequency) string {
	switch freq {
	case FreqDaily:
		return "Once daily"
	case FreqTwiceDaily:
		return "Twice daily"
	case FreqThreeTimesDaily:
		return "Three times daily"
	case FreqWeekly:
		return "Weekly"
	default:
		return string(freq)
	}
}
