package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/dosewatch/dosewatch/internal/errors"
	"github.com/dosewatch/dosewatch/internal/model"
)

func writeBackup(t *testing.T, backup backupFile) string {
	t.Helper()
	data, err := json.Marshal(backup)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "backup.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestImportReplaceRequiresForce(t *testing.T) {
	c := setupTestContext(t)
	require.NoError(t, c.MedicineRepo.Create(
		model.NewMedicine("Aspirin", "100mg", model.FreqDaily, []string{"09:00"})))

	path := writeBackup(t, backupFile{Version: "1"})

	importFlagMerge = false
	importFlagForce = false

	err := runImport(importCmd, []string{path})
	require.Error(t, err)
	assert.True(t, apperrors.IsUserError(err))

	// Nothing was touched without the confirmation.
	kept, err := c.MedicineRepo.List()
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}

func TestImportReplaceClearsExistingData(t *testing.T) {
	c := setupTestContext(t)
	require.NoError(t, c.PatientRepo.Save(&model.Patient{FirstName: "Ada", LastName: "Lovelace"}))
	require.NoError(t, c.MedicineRepo.Create(
		model.NewMedicine("Aspirin", "100mg", model.FreqDaily, []string{"09:00"})))

	path := writeBackup(t, backupFile{
		Version: "1",
		Medicines: []*model.Medicine{
			model.NewMedicine("Ibuprofen", "200mg", model.FreqDaily, []string{"12:00"}),
		},
	})

	importFlagMerge = false
	importFlagForce = true
	t.Cleanup(func() { importFlagForce = false })

	require.NoError(t, runImport(importCmd, []string{path}))

	medicines, err := c.MedicineRepo.List()
	require.NoError(t, err)
	require.Len(t, medicines, 1)
	assert.Equal(t, "Ibuprofen", medicines[0].Name)

	// The backup carried no patient, so replace mode leaves none behind.
	patient, err := c.PatientRepo.Get()
	require.NoError(t, err)
	assert.Nil(t, patient)
}

func TestImportMergeKeepsExistingData(t *testing.T) {
	c := setupTestContext(t)
	require.NoError(t, c.MedicineRepo.Create(
		model.NewMedicine("Aspirin", "100mg", model.FreqDaily, []string{"09:00"})))

	path := writeBackup(t, backupFile{
		Version: "1",
		Medicines: []*model.Medicine{
			model.NewMedicine("Ibuprofen", "200mg", model.FreqDaily, []string{"12:00"}),
		},
	})

	importFlagMerge = true
	importFlagForce = false
	t.Cleanup(func() { importFlagMerge = false })

	require.NoError(t, runImport(importCmd, []string{path}))

	medicines, err := c.MedicineRepo.List()
	require.NoError(t, err)
	assert.Len(t, medicines, 2)
}
