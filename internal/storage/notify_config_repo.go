package storage

import (
	"github.com/dosewatch/dosewatch/internal/model"
)

// NotifyConfigRepo provides operations for the NotifyConfig singleton.
type NotifyConfigRepo struct {
	db *DB
}

// NewNotifyConfigRepo creates a new notify config repository.
func NewNotifyConfigRepo(db *DB) *NotifyConfigRepo {
	return &NotifyConfigRepo{db: db}
}

// Get retrieves the notify config, returning defaults if not set or
// unreadable.
func (r *NotifyConfigRepo) Get() (*model.NotifyConfig, error) {
	config := &model.NotifyConfig{}
	err := r.db.GetRaw(model.KeyNotifyConfig, config)
	if err == nil {
		if config.Validate() != nil {
			return model.DefaultNotifyConfig(), nil
		}
		return config, nil
	}

	if !IsErrKeyNotFound(err) && !IsErrCorruptRecord(err) {
		return nil, err
	}

	// Default config is not persisted until explicitly set.
	return model.DefaultNotifyConfig(), nil
}

// Set stores the notify config.
func (r *NotifyConfigRepo) Set(config *model.NotifyConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}
	return r.db.SetRaw(model.KeyNotifyConfig, config)
}
