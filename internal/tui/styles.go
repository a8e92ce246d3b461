// Package tui provides the terminal user interface components for Dosewatch.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/dosewatch/dosewatch/internal/model"
)

// Color palette for the TUI dashboard.
var (
	ColorPrimary = lipgloss.Color("#3B82F6") // Blue
	ColorMuted   = lipgloss.Color("#6B7280") // Gray
	ColorWarning = lipgloss.Color("#F59E0B") // Yellow
	ColorError   = lipgloss.Color("#EF4444") // Red
	ColorSuccess = lipgloss.Color("#10B981") // Green
	ColorBorder  = lipgloss.Color("#4B5563") // Dark gray
)

// Base styles for the TUI.
var (
	// StyleTitle is used for section titles.
	StyleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	// StyleSubtitle is used for subtitles and secondary information.
	StyleSubtitle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// StyleMedicine is used for medicine names.
	StyleMedicine = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// StyleTaken is used for doses already taken.
	StyleTaken = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// StyleSkipped is used for skipped doses.
	StyleSkipped = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// StyleDue is used for doses due now.
	StyleDue = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWarning)

	// StyleOverdue is used for overdue doses.
	StyleOverdue = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	// StylePending is used for upcoming doses.
	StylePending = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// StyleWarning is used for warning messages.
	StyleWarning = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// StyleError is used for error messages.
	StyleError = lipgloss.NewStyle().
			Foreground(ColorError)

	// StyleSuccess is used for success messages.
	StyleSuccess = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// StyleHelp is used for help text at the bottom.
	StyleHelp = lipgloss.NewStyle().
			Foreground(ColorMuted).
			MarginTop(1)

	// StyleHelpKey is used for keyboard shortcut keys.
	StyleHelpKey = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSuccess)

	// StyleHelpDesc is used for keyboard shortcut descriptions.
	StyleHelpDesc = lipgloss.NewStyle().
			Foreground(ColorMuted)
)

// Box styles for different sections.
var (
	// StyleScheduleBox is used for the day schedule section.
	StyleScheduleBox = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorder).
				Padding(1, 2).
				MarginBottom(1)

	// StyleReminderBox is used when a reminder is pending.
	StyleReminderBox = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorWarning).
				Padding(1, 2).
				MarginBottom(1)
)

// StyleForStatus returns the style used to render a dose status.
func StyleForStatus(s model.Status) lipgloss.Style {
	switch s {
	case model.StatusTaken:
		return StyleTaken
	case model.StatusSkipped:
		return StyleSkipped
	case model.StatusDue:
		return StyleDue
	case model.StatusOverdue:
		return StyleOverdue
	default:
		return StylePending
	}
}

// HelpBar renders the keyboard shortcut bar.
func HelpBar() string {
	entries := []struct {
		key  string
		desc string
	}{
		{"t", "take"},
		{"s", "skip"},
		{"z", "snooze"},
		{"d", "dismiss"},
		{"r", "refresh"},
		{"q", "quit"},
	}

	bar := ""
	for i, e := range entries {
		if i > 0 {
			bar += "  "
		}
		bar += StyleHelpKey.Render(e.key) + " " + StyleHelpDesc.Render(e.desc)
	}
	return StyleHelp.Render(bar)
}
