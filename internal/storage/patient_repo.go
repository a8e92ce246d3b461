package storage

import (
	"time"

	"github.com/google/uuid"

	"github.com/dosewatch/dosewatch/internal/model"
)

// PatientRepo provides operations for the Patient singleton.
type PatientRepo struct {
	db *DB
}

// NewPatientRepo creates a new patient repository.
func NewPatientRepo(db *DB) *PatientRepo {
	return &PatientRepo{db: db}
}

// Get retrieves the registered patient, or nil when none is registered.
// A corrupt stored record reads as absent.
func (r *PatientRepo) Get() (*model.Patient, error) {
	patient := &model.Patient{}
	err := r.db.Get(model.KeyPatient, patient)
	if err != nil {
		if IsErrKeyNotFound(err) || IsErrCorruptRecord(err) {
			return nil, nil
		}
		return nil, err
	}
	return patient, nil
}

// Save registers a patient, replacing any existing one.
func (r *PatientRepo) Save(patient *model.Patient) error {
	patient.Key = model.KeyPatient
	if patient.ID == "" {
		patient.ID = uuid.New().String()
	}
	if patient.CreatedAt.IsZero() {
		patient.CreatedAt = time.Now()
	}
	return r.db.Set(patient)
}

// Clear removes the registered patient.
func (r *PatientRepo) Clear() error {
	return r.db.Delete(model.KeyPatient)
}

// Logout clears the patient and all session data: medicines and dose logs
// go with the profile.
func (r *PatientRepo) Logout(medicines *MedicineRepo, logs *DoseLogRepo) error {
	if err := r.Clear(); err != nil {
		return err
	}
	if _, err := medicines.DeleteAll(); err != nil {
		return err
	}
	_, err := logs.DeleteAll()
	return err
}
