package storage

import (
	"sort"

	"github.com/dosewatch/dosewatch/internal/model"
)

// DoseLogRepo provides operations for DoseLog entities. It maintains the
// one-log-per-dose rule: the storage key is derived from the
// (medicine, date, time) triple, so writing a dose that was already logged
// replaces the prior entry.
type DoseLogRepo struct {
	db *DB
}

// NewDoseLogRepo creates a new dose log repository.
func NewDoseLogRepo(db *DB) *DoseLogRepo {
	return &DoseLogRepo{db: db}
}

// Log records the user's response to a dose. Any prior entry for the same
// (medicine, date, time) triple is replaced; the new entry carries a fresh
// ID and timestamp either way.
func (r *DoseLogRepo) Log(medicineKey, date, clock string, taken bool) (*model.DoseLog, error) {
	entry := model.NewDoseLog(medicineKey, date, clock, taken)
	if err := r.db.Set(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Find retrieves the log for a dose, or nil if the dose has not been
// logged.
func (r *DoseLogRepo) Find(medicineKey, date, clock string) (*model.DoseLog, error) {
	entry := &model.DoseLog{}
	err := r.db.Get(model.GenerateDoseLogKey(medicineKey, date, clock), entry)
	if err != nil {
		if IsErrKeyNotFound(err) || IsErrCorruptRecord(err) {
			return nil, nil
		}
		return nil, err
	}
	return entry, nil
}

// Has reports whether a dose has been logged.
func (r *DoseLogRepo) Has(medicineKey, date, clock string) (bool, error) {
	return r.db.Exists(model.GenerateDoseLogKey(medicineKey, date, clock))
}

// List retrieves all dose logs ordered by log timestamp.
func (r *DoseLogRepo) List() ([]*model.DoseLog, error) {
	logs, err := GetAllByPrefix(r.db, model.PrefixDoseLog+":", func() *model.DoseLog {
		return &model.DoseLog{}
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].Timestamp.Before(logs[j].Timestamp)
	})
	return logs, nil
}

// ListByMedicine retrieves all logs for a medicine, any date.
func (r *DoseLogRepo) ListByMedicine(medicineKey string) ([]*model.DoseLog, error) {
	return GetAllByPrefix(r.db, medicinePrefix(medicineKey), func() *model.DoseLog {
		return &model.DoseLog{}
	})
}

// ListByDate retrieves all logs for a date, any medicine.
func (r *DoseLogRepo) ListByDate(date string) ([]*model.DoseLog, error) {
	all, err := r.List()
	if err != nil {
		return nil, err
	}

	var logs []*model.DoseLog
	for _, l := range all {
		if l.Date == date {
			logs = append(logs, l)
		}
	}
	return logs, nil
}

// ListBetween retrieves logs with from <= date <= to. ISO dates compare
// correctly as strings.
func (r *DoseLogRepo) ListBetween(from, to string) ([]*model.DoseLog, error) {
	all, err := r.List()
	if err != nil {
		return nil, err
	}

	var logs []*model.DoseLog
	for _, l := range all {
		if l.Date >= from && l.Date <= to {
			logs = append(logs, l)
		}
	}
	return logs, nil
}

// Delete removes the log for a dose.
func (r *DoseLogRepo) Delete(medicineKey, date, clock string) error {
	return r.db.Delete(model.GenerateDoseLogKey(medicineKey, date, clock))
}

// DeleteByMedicine removes every log for a medicine, regardless of date.
// Returns the number deleted.
func (r *DoseLogRepo) DeleteByMedicine(medicineKey string) (int, error) {
	return r.db.DeleteByPrefix(medicinePrefix(medicineKey))
}

// DeleteAll removes every dose log. Returns the number deleted.
func (r *DoseLogRepo) DeleteAll() (int, error) {
	return r.db.DeleteByPrefix(model.PrefixDoseLog + ":")
}

func medicinePrefix(medicineKey string) string {
	return model.PrefixDoseLog + ":" + medicineKey + ":"
}
