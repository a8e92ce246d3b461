package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetPatientRegisterFlags() {
	patientRegisterFlagFirst = ""
	patientRegisterFlagLast = ""
	patientRegisterFlagEmail = ""
	patientRegisterFlagPhone = ""
	patientRegisterFlagDOB = ""
	patientRegisterFlagGender = ""
	patientRegisterFlagConditions = nil
	patientRegisterFlagAllergies = nil
	patientRegisterFlagECName = ""
	patientRegisterFlagECPhone = ""
	patientRegisterFlagECRelation = ""
}

func TestPatientRegisterStoresEmergencyContact(t *testing.T) {
	c := setupTestContext(t)

	patientRegisterFlagFirst = "Ada"
	patientRegisterFlagLast = "Lovelace"
	patientRegisterFlagECName = "Charles Babbage"
	patientRegisterFlagECPhone = "555-0100"
	patientRegisterFlagECRelation = "friend"
	t.Cleanup(resetPatientRegisterFlags)

	require.NoError(t, runPatientRegister(patientRegisterCmd, nil))

	patient, err := c.PatientRepo.Get()
	require.NoError(t, err)
	require.NotNil(t, patient)
	assert.Equal(t, "Charles Babbage", patient.EmergencyContact.Name)
	assert.Equal(t, "555-0100", patient.EmergencyContact.Phone)
	assert.Equal(t, "friend", patient.EmergencyContact.Relationship)
}
