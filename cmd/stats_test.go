package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dosewatch/dosewatch/internal/model"
	"github.com/dosewatch/dosewatch/internal/storage"
)

func TestAdherenceRowsSortedByName(t *testing.T) {
	c := setupTestContext(t)

	zyrtec := model.NewMedicine("Zyrtec", "10mg", model.FreqDaily, []string{"09:00"})
	aspirin := model.NewMedicine("Aspirin", "100mg", model.FreqDaily, []string{"09:00"})
	require.NoError(t, c.MedicineRepo.Create(zyrtec))
	require.NoError(t, c.MedicineRepo.Create(aspirin))

	byMedicine := map[string]storage.AdherenceSummary{
		zyrtec.Key:  {Logged: 2, Taken: 2},
		aspirin.Key: {Logged: 2, Taken: 1, Skipped: 1},
	}

	rows := adherenceRows(byMedicine, c.MedicineRepo)
	require.Len(t, rows, 2)
	assert.Equal(t, "Aspirin", rows[0].name)
	assert.Equal(t, "Zyrtec", rows[1].name)
}

func TestAdherenceRowsFallBackToKey(t *testing.T) {
	c := setupTestContext(t)

	byMedicine := map[string]storage.AdherenceSummary{
		"medicine:gone": {Logged: 1, Taken: 1},
	}

	rows := adherenceRows(byMedicine, c.MedicineRepo)
	require.Len(t, rows, 1)
	assert.Equal(t, "medicine:gone", rows[0].name)
}
