package storage

import (
	"time"

	"github.com/dosewatch/dosewatch/internal/model"
)

// WebhookRepo provides operations for Webhook entities.
type WebhookRepo struct {
	db *DB
}

// NewWebhookRepo creates a new webhook repository.
func NewWebhookRepo(db *DB) *WebhookRepo {
	return &WebhookRepo{db: db}
}

// Create creates a new webhook.
func (r *WebhookRepo) Create(webhook *model.Webhook) error {
	if webhook.Key == "" {
		webhook.Key = model.GenerateWebhookKey(webhook.Name)
	}
	if webhook.CreatedAt.IsZero() {
		webhook.CreatedAt = time.Now()
	}
	return r.db.Set(webhook)
}

// Get retrieves a webhook by name.
func (r *WebhookRepo) Get(name string) (*model.Webhook, error) {
	webhook := &model.Webhook{}
	if err := r.db.Get(model.GenerateWebhookKey(name), webhook); err != nil {
		return nil, err
	}
	return webhook, nil
}

// List retrieves all webhooks.
func (r *WebhookRepo) List() ([]*model.Webhook, error) {
	return GetAllByPrefix(r.db, model.PrefixWebhook+":", func() *model.Webhook {
		return &model.Webhook{}
	})
}

// ListEnabled retrieves all enabled webhooks.
func (r *WebhookRepo) ListEnabled() ([]*model.Webhook, error) {
	all, err := r.List()
	if err != nil {
		return nil, err
	}

	var enabled []*model.Webhook
	for _, w := range all {
		if w.IsEnabled() {
			enabled = append(enabled, w)
		}
	}
	return enabled, nil
}

// SetEnabled toggles a webhook.
func (r *WebhookRepo) SetEnabled(name string, enabled bool) error {
	webhook, err := r.Get(name)
	if err != nil {
		return err
	}
	webhook.Enabled = enabled
	return r.db.Set(webhook)
}

// UpdateLastUsed records the outcome of the most recent send.
func (r *WebhookRepo) UpdateLastUsed(name string, sendErr error) error {
	webhook, err := r.Get(name)
	if err != nil {
		return err
	}
	webhook.LastUsed = time.Now()
	if sendErr != nil {
		webhook.LastError = sendErr.Error()
	} else {
		webhook.LastError = ""
	}
	return r.db.Set(webhook)
}

// Delete removes a webhook by name.
func (r *WebhookRepo) Delete(name string) error {
	return r.db.Delete(model.GenerateWebhookKey(name))
}

// Exists checks if a webhook exists.
func (r *WebhookRepo) Exists(name string) (bool, error) {
	return r.db.Exists(model.GenerateWebhookKey(name))
}
