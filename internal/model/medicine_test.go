package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMedicineDefaultTimes(t *testing.T) {
	tests := []struct {
		freq Frequency
		want []string
	}{
		{FreqDaily, []string{"09:00"}},
		{FreqTwiceDaily, []string{"09:00", "21:00"}},
		{FreqThreeTimesDaily, []string{"08:00", "14:00", "20:00"}},
		{FreqWeekly, []string{"09:00"}},
	}

	for _, tt := range tests {
		m := NewMedicine("Aspirin", "100mg", tt.freq, nil)
		assert.Equal(t, tt.want, m.Times, "frequency %s", tt.freq)
	}
}

func TestNewMedicineSortsTimes(t *testing.T) {
	m := NewMedicine("Aspirin", "100mg", FreqTwiceDaily, []string{"21:00", "09:00"})
	assert.Equal(t, []string{"09:00", "21:00"}, m.Times)
}

func TestMedicineAddRemoveTime(t *testing.T) {
	m := NewMedicine("Aspirin", "100mg", FreqDaily, []string{"09:00"})

	require.True(t, m.AddTime("08:00"))
	assert.Equal(t, []string{"08:00", "09:00"}, m.Times)

	// Duplicate insert is a no-op.
	assert.False(t, m.AddTime("09:00"))
	assert.Len(t, m.Times, 2)

	require.True(t, m.RemoveTime("08:00"))
	assert.Equal(t, []string{"09:00"}, m.Times)
	assert.False(t, m.RemoveTime("08:00"))
}

func TestMedicineActiveOn(t *testing.T) {
	m := NewMedicine("Aspirin", "100mg", FreqDaily, nil)
	m.StartDate = "2026-08-10"

	assert.False(t, m.ActiveOn("2026-08-09"))
	assert.True(t, m.ActiveOn("2026-08-10"))
	assert.True(t, m.ActiveOn("2026-12-31"))

	m.EndDate = "2026-08-20"
	assert.True(t, m.ActiveOn("2026-08-20"))
	assert.False(t, m.ActiveOn("2026-08-21"))
}

func TestMedicineShortID(t *testing.T) {
	m := &Medicine{}
	m.SetKey(GenerateMedicineKey("f47ac10b-58cc-4372-a567-0e02b2c3d479"))
	assert.Equal(t, "f47ac1", m.ShortID())
}

func TestDoseLogKeyDeterministic(t *testing.T) {
	medKey := GenerateMedicineKey("f47ac10b-58cc-4372-a567-0e02b2c3d479")

	first := NewDoseLog(medKey, "2026-08-29", "09:00", true)
	second := NewDoseLog(medKey, "2026-08-29", "09:00", false)

	// Same triple, same storage key, fresh identity.
	assert.Equal(t, first.Key, second.Key)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestIsValidFrequency(t *testing.T) {
	for _, f := range ValidFrequencies() {
		assert.True(t, IsValidFrequency(f))
	}
	assert.False(t, IsValidFrequency("hourly"))
}
