package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DoseLog records the user's response to one scheduled dose on one date.
// At most one log exists per (medicine, date, time) triple; writing a new
// one replaces the prior entry. The deterministic key makes the replace a
// plain upsert, while ID and Timestamp are fresh on every write.
type DoseLog struct {
	Key         string    `json:"key"`
	ID          string    `json:"id"`
	MedicineKey string    `json:"medicine_key" validate:"required"`
	Date        string    `json:"date"` // "YYYY-MM-DD"
	Time        string    `json:"time"` // "HH:MM"
	Taken       bool      `json:"taken"`
	Timestamp   time.Time `json:"timestamp"`
}

// SetKey sets the database key for this log entry.
func (l *DoseLog) SetKey(key string) {
	l.Key = key
}

// GetKey returns the database key for this log entry.
func (l *DoseLog) GetKey() string {
	return l.Key
}

// GenerateDoseLogKey generates the database key for a dose log. The key is
// a function of the (medicine, date, time) triple so a rewrite of the same
// dose lands on the same key.
func GenerateDoseLogKey(medicineKey, date, clock string) string {
	return fmt.Sprintf("%s:%s:%s:%s", PrefixDoseLog, medicineKey, date, clock)
}

// NewDoseLog creates a log entry for the given dose with a fresh identity
// and timestamp.
func NewDoseLog(medicineKey, date, clock string, taken bool) *DoseLog {
	return &DoseLog{
		Key:         GenerateDoseLogKey(medicineKey, date, clock),
		ID:          uuid.New().String(),
		MedicineKey: medicineKey,
		Date:        date,
		Time:        clock,
		Taken:       taken,
		Timestamp:   time.Now(),
	}
}
