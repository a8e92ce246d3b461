package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/dosewatch/dosewatch/internal/errors"
	"github.com/dosewatch/dosewatch/internal/model"
)

func setupTestContext(t *testing.T) *Context {
	t.Helper()
	opts := DefaultOptions()
	opts.InMemory = true
	c, err := New(opts)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestRequirePatient(t *testing.T) {
	c := setupTestContext(t)

	_, err := c.RequirePatient()
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNoPatient)
	assert.NotEmpty(t, apperrors.Suggestion(err))

	require.NoError(t, c.PatientRepo.Save(&model.Patient{FirstName: "Ada", LastName: "Lovelace"}))

	patient, err := c.RequirePatient()
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", patient.FullName())
}
