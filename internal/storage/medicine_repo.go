package storage

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/dosewatch/dosewatch/internal/errors"
	"github.com/dosewatch/dosewatch/internal/model"
)

// MedicineRepo provides operations for Medicine entities.
type MedicineRepo struct {
	db *DB
}

// NewMedicineRepo creates a new medicine repository.
func NewMedicineRepo(db *DB) *MedicineRepo {
	return &MedicineRepo{db: db}
}

// Create creates a new medicine with a generated key.
func (r *MedicineRepo) Create(medicine *model.Medicine) error {
	if medicine.Key == "" {
		medicine.Key = model.GenerateMedicineKey(uuid.New().String())
	}
	if medicine.CreatedAt.IsZero() {
		medicine.CreatedAt = time.Now()
	}
	if medicine.Color == "" {
		medicine.Color = model.DefaultColor
	}
	return r.db.Set(medicine)
}

// Get retrieves a medicine by key.
func (r *MedicineRepo) Get(key string) (*model.Medicine, error) {
	medicine := &model.Medicine{}
	if err := r.db.Get(key, medicine); err != nil {
		return nil, err
	}
	return medicine, nil
}

// GetByShortID retrieves a medicine by short ID prefix match.
func (r *MedicineRepo) GetByShortID(shortID string) (*model.Medicine, error) {
	medicines, err := r.List()
	if err != nil {
		return nil, err
	}

	var matches []*model.Medicine
	for _, m := range medicines {
		id := m.Key[len(model.PrefixMedicine)+1:]
		if strings.HasPrefix(id, shortID) {
			matches = append(matches, m)
		}
	}

	if len(matches) == 0 {
		return nil, ErrKeyNotFound
	}
	if len(matches) > 1 {
		return nil, &AmbiguousMatchError{Matches: len(matches)}
	}
	return matches[0], nil
}

// AmbiguousMatchError is returned when multiple medicines match a short ID.
type AmbiguousMatchError struct {
	Matches int
}

func (e *AmbiguousMatchError) Error() string {
	return "multiple medicines match the given ID"
}

// GetByName retrieves a medicine by case-insensitive name match.
func (r *MedicineRepo) GetByName(name string) (*model.Medicine, error) {
	medicines, err := r.List()
	if err != nil {
		return nil, err
	}

	for _, m := range medicines {
		if strings.EqualFold(m.Name, name) {
			return m, nil
		}
	}
	return nil, ErrKeyNotFound
}

// Resolve looks a medicine up by short ID first, then by name.
func (r *MedicineRepo) Resolve(ref string) (*model.Medicine, error) {
	m, err := r.GetByShortID(ref)
	if err == nil {
		return m, nil
	}
	if !IsErrKeyNotFound(err) {
		return nil, err
	}
	m, err = r.GetByName(ref)
	if IsErrKeyNotFound(err) {
		ue := apperrors.NewUserErrorWithField(
			"medicine", ref,
			"medicine not found",
			"Use 'dosewatch medicine list' to see tracked medicines.",
		)
		ue.Err = apperrors.ErrMedicineNotFound
		return nil, ue
	}
	return m, err
}

// List retrieves all medicines ordered by creation time.
func (r *MedicineRepo) List() ([]*model.Medicine, error) {
	medicines, err := GetAllByPrefix(r.db, model.PrefixMedicine+":", func() *model.Medicine {
		return &model.Medicine{}
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(medicines, func(i, j int) bool {
		return medicines[i].CreatedAt.Before(medicines[j].CreatedAt)
	})
	return medicines, nil
}

// ListActiveOn retrieves medicines whose schedule covers the given date, in
// creation order.
func (r *MedicineRepo) ListActiveOn(date string) ([]*model.Medicine, error) {
	all, err := r.List()
	if err != nil {
		return nil, err
	}

	var active []*model.Medicine
	for _, m := range all {
		if m.ActiveOn(date) {
			active = append(active, m)
		}
	}
	return active, nil
}

// Update updates an existing medicine.
func (r *MedicineRepo) Update(medicine *model.Medicine) error {
	return r.db.Set(medicine)
}

// Delete removes a medicine by key. Dose logs are not touched here; use
// DeleteCascade to honor the ownership rule.
func (r *MedicineRepo) Delete(key string) error {
	return r.db.Delete(key)
}

// DeleteCascade removes a medicine and every dose log that references it,
// regardless of date.
func (r *MedicineRepo) DeleteCascade(key string, logs *DoseLogRepo) error {
	if err := r.db.Delete(key); err != nil {
		return err
	}
	_, err := logs.DeleteByMedicine(key)
	return err
}

// DeleteAll removes every medicine. Returns the number deleted.
func (r *MedicineRepo) DeleteAll() (int, error) {
	return r.db.DeleteByPrefix(model.PrefixMedicine + ":")
}

// Exists checks if a medicine exists.
func (r *MedicineRepo) Exists(key string) (bool, error) {
	return r.db.Exists(key)
}
