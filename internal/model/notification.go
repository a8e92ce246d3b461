package model

import (
	"time"
)

// NotificationType defines the type of notification.
type NotificationType string

// Notification types.
const (
	NotifyDose    NotificationType = "dose"
	NotifySummary NotificationType = "summary"
	NotifyTest    NotificationType = "test"
)

// Notification represents a notification to be sent to the configured
// channels.
type Notification struct {
	Type      NotificationType  `json:"type"`
	Title     string            `json:"title"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
	Color     int               `json:"color,omitempty"` // Hex color for embeds
}

// NewNotification creates a new notification.
func NewNotification(t NotificationType, title, message string) *Notification {
	return &Notification{
		Type:      t,
		Title:     title,
		Message:   message,
		Fields:    make(map[string]string),
		Timestamp: time.Now(),
	}
}

// WithField adds a field to the notification.
func (n *Notification) WithField(key, value string) *Notification {
	if n.Fields == nil {
		n.Fields = make(map[string]string)
	}
	n.Fields[key] = value
	return n
}

// WithColor sets the embed color.
func (n *Notification) WithColor(color int) *Notification {
	n.Color = color
	return n
}

// Notification colors (Discord-compatible hex values).
const (
	ColorSuccess = 0x57F287 // Green
	ColorWarning = 0xFEE75C // Yellow
	ColorInfo    = 0x5865F2 // Blurple
	ColorError   = 0xED4245 // Red
)

// DefaultColorForType returns the default color for a notification type.
func DefaultColorForType(t NotificationType) int {
	switch t {
	case NotifyDose:
		return ColorWarning
	case NotifySummary:
		return ColorInfo
	case NotifyTest:
		return ColorSuccess
	default:
		return ColorInfo
	}
}

// TypeLabel returns a human-readable label for the notification type.
func (n *Notification) TypeLabel() string {
	switch n.Type {
	case NotifyDose:
		return "Dose Reminder"
	case NotifySummary:
		return "Daily Summary"
	case NotifyTest:
		return "Test Notification"
	default:
		return "Notification"
	}
}
