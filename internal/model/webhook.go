package model

import (
	"fmt"
	"time"
)

// Webhook type constants.
const (
	WebhookTypeDiscord = "discord"
	WebhookTypeSlack   = "slack"
	WebhookTypeGeneric = "generic"
)

// Webhook represents a notification channel configuration. Webhooks are
// the platform side of the reminder engine's notification requests.
type Webhook struct {
	Key       string    `json:"key"`
	Name      string    `json:"name" validate:"required,max=50"`
	Type      string    `json:"type" validate:"required,oneof=discord slack generic"`
	URL       string    `json:"url" validate:"required,url"`
	Enabled   bool      `json:"enabled"`
	Template  string    `json:"template,omitempty"` // For generic webhooks
	CreatedAt time.Time `json:"created_at"`
	LastUsed  time.Time `json:"last_used,omitempty"`
	LastError string    `json:"last_error,omitempty"`
}

// SetKey sets the database key for this webhook.
func (w *Webhook) SetKey(key string) {
	w.Key = key
}

// GetKey returns the database key for this webhook.
func (w *Webhook) GetKey() string {
	return w.Key
}

// IsEnabled returns true if the webhook is enabled.
func (w *Webhook) IsEnabled() bool {
	return w.Enabled
}

// MaskedURL returns the URL with sensitive parts masked.
func (w *Webhook) MaskedURL() string {
	if len(w.URL) > 40 {
		return w.URL[:30] + "***"
	}
	return w.URL
}

// GenerateWebhookKey generates a database key for a webhook.
func GenerateWebhookKey(name string) string {
	return fmt.Sprintf("%s:%s", PrefixWebhook, name)
}

// NewWebhook creates a new enabled webhook.
func NewWebhook(name, webhookType, url string) *Webhook {
	return &Webhook{
		Key:       GenerateWebhookKey(name),
		Name:      name,
		Type:      webhookType,
		URL:       url,
		Enabled:   true,
		CreatedAt: time.Now(),
	}
}

// ValidWebhookTypes returns the list of valid webhook types.
func ValidWebhookTypes() []string {
	return []string{WebhookTypeDiscord, WebhookTypeSlack, WebhookTypeGeneric}
}

// IsValidWebhookType checks if a type is valid.
func IsValidWebhookType(t string) bool {
	for _, valid := range ValidWebhookTypes() {
		if t == valid {
			return true
		}
	}
	return false
}
