package model

import (
	"fmt"
	"time"
)

// KeyNotifyConfig is the database key for notification configuration.
const KeyNotifyConfig = "config:notify"

// Permission is the tri-state notification permission. It belongs to the
// notification collaborator; the reminder engine only reads it and requests
// it once at startup when still undetermined.
type Permission string

// Permission states.
const (
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
	PermissionDefault Permission = "default"
)

// NotifyConfig holds notification preferences.
type NotifyConfig struct {
	Permission  Permission    `json:"permission"`
	SnoozeDelay time.Duration `json:"snooze_delay"` // Default: 5m
}

// DefaultNotifyConfig returns the default notification configuration.
func DefaultNotifyConfig() *NotifyConfig {
	return &NotifyConfig{
		Permission:  PermissionDefault,
		SnoozeDelay: 5 * time.Minute,
	}
}

// Validate checks the config for nonsense values.
func (c *NotifyConfig) Validate() error {
	switch c.Permission {
	case PermissionGranted, PermissionDenied, PermissionDefault:
	default:
		return fmt.Errorf("invalid notification permission: %q", c.Permission)
	}
	if c.SnoozeDelay <= 0 {
		return fmt.Errorf("snooze delay must be positive, got %v", c.SnoozeDelay)
	}
	return nil
}
