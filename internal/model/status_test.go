package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveStatusWithoutLog(t *testing.T) {
	scheduled := 9 * 60 // 09:00

	tests := []struct {
		name    string
		current int
		want    Status
	}{
		{"long before", 8 * 60, StatusPending},
		{"just before lead window", scheduled - 16, StatusPending},
		{"lead boundary is due", scheduled - 15, StatusDue},
		{"exactly on time", scheduled, StatusDue},
		{"twenty past", scheduled + 20, StatusDue},
		{"grace boundary is still due", scheduled + 30, StatusDue},
		{"one past grace", scheduled + 31, StatusOverdue},
		{"end of day", 23*60 + 59, StatusOverdue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveStatus(scheduled, tt.current, false, false)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeriveStatusLogIsTerminal(t *testing.T) {
	scheduled := 9 * 60

	// A log wins regardless of the clock.
	for _, current := range []int{0, scheduled - 60, scheduled, scheduled + 31, 23*60 + 59} {
		assert.Equal(t, StatusTaken, DeriveStatus(scheduled, current, true, true))
		assert.Equal(t, StatusSkipped, DeriveStatus(scheduled, current, true, false))
	}
}

func TestDeriveStatusAspirinExample(t *testing.T) {
	// Aspirin at 09:00, clock at 09:20, no log: 20 minutes late is within
	// the 30-minute grace, so the dose is due, not overdue.
	scheduled := 9 * 60
	assert.Equal(t, StatusDue, DeriveStatus(scheduled, 9*60+20, false, false))

	// Once taken it stays taken even at 23:59.
	assert.Equal(t, StatusTaken, DeriveStatus(scheduled, 23*60+59, true, true))
}

func TestStatusHelpers(t *testing.T) {
	assert.True(t, StatusTaken.IsLogged())
	assert.True(t, StatusSkipped.IsLogged())
	assert.False(t, StatusDue.IsLogged())
	assert.False(t, StatusOverdue.IsLogged())
	assert.False(t, StatusPending.IsLogged())

	assert.Equal(t, "Taken", StatusTaken.Label())
	assert.Equal(t, "Due now", StatusDue.Label())
}
