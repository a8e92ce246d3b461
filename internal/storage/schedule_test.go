package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dosewatch/dosewatch/internal/model"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, 8, 29, hour, minute, 0, 0, time.Local)
}

func TestBuildDaySchedule(t *testing.T) {
	db := setupTestDB(t)
	medicines := NewMedicineRepo(db)
	logs := NewDoseLogRepo(db)

	aspirin := createMedicine(t, medicines, "Aspirin", "09:00", "21:00")
	createMedicine(t, medicines, "Ibuprofen", "12:00")

	_, err := logs.Log(aspirin.Key, "2026-08-29", "09:00", true)
	require.NoError(t, err)

	meds, err := medicines.List()
	require.NoError(t, err)
	entries, err := logs.ListByDate("2026-08-29")
	require.NoError(t, err)

	doses := BuildDaySchedule(meds, entries, "2026-08-29", at(11, 50))
	require.Len(t, doses, 3)

	// Medicine-list then time-list order.
	assert.Equal(t, "09:00", doses[0].Time)
	assert.Equal(t, model.StatusTaken, doses[0].Status)
	require.NotNil(t, doses[0].Log)

	assert.Equal(t, "21:00", doses[1].Time)
	assert.Equal(t, model.StatusPending, doses[1].Status)

	// 11:50 is within the 15-minute lead of 12:00.
	assert.Equal(t, "12:00", doses[2].Time)
	assert.Equal(t, model.StatusDue, doses[2].Status)
}

func TestBuildDayScheduleExcludesInactive(t *testing.T) {
	db := setupTestDB(t)
	medicines := NewMedicineRepo(db)

	m := createMedicine(t, medicines, "Aspirin", "09:00")
	m.StartDate = "2026-09-01"
	require.NoError(t, medicines.Update(m))

	meds, err := medicines.List()
	require.NoError(t, err)

	doses := BuildDaySchedule(meds, nil, "2026-08-29", at(9, 0))
	assert.Empty(t, doses)

	doses = BuildDaySchedule(meds, nil, "2026-09-01", at(9, 0))
	assert.Len(t, doses, 1)
}

func TestAdherence(t *testing.T) {
	logs := []*model.DoseLog{
		{MedicineKey: "medicine:a", Taken: true},
		{MedicineKey: "medicine:a", Taken: true},
		{MedicineKey: "medicine:a", Taken: false},
		{MedicineKey: "medicine:b", Taken: true},
	}

	overall := Adherence(logs)
	assert.Equal(t, 4, overall.Logged)
	assert.Equal(t, 3, overall.Taken)
	assert.Equal(t, 1, overall.Skipped)
	assert.InDelta(t, 0.75, overall.Rate(), 1e-9)

	byMedicine := AdherenceByMedicine(logs)
	assert.InDelta(t, 2.0/3.0, byMedicine["medicine:a"].Rate(), 1e-9)
	assert.InDelta(t, 1.0, byMedicine["medicine:b"].Rate(), 1e-9)

	assert.Zero(t, Adherence(nil).Rate())
}
