package model

// Status describes where a scheduled dose stands right now.
type Status string

// Dose statuses, mutually exclusive.
const (
	StatusTaken   Status = "taken"
	StatusSkipped Status = "skipped"
	StatusOverdue Status = "overdue"
	StatusDue     Status = "due"
	StatusPending Status = "pending"
)

// Status thresholds in minutes relative to the scheduled time.
const (
	// DueLeadMinutes is how early a dose becomes due.
	DueLeadMinutes = 15
	// OverdueGraceMinutes is how late a dose stays due before turning overdue.
	OverdueGraceMinutes = 30
)

// DeriveStatus computes the display status of a dose from its scheduled
// time, the current time (both as minutes since midnight), and whether a
// log entry exists for it today. A log is terminal: once a dose is taken
// or skipped its status never changes for the rest of the day.
//
// Without a log the thresholds are inclusive on the due side: a dose is
// due from scheduled-15 through scheduled+30, overdue strictly after
// scheduled+30, and pending before scheduled-15. Comparisons are same-day
// only; schedules are not interpreted across midnight.
func DeriveStatus(scheduledMinutes, currentMinutes int, hasLog, wasTaken bool) Status {
	if hasLog {
		if wasTaken {
			return StatusTaken
		}
		return StatusSkipped
	}

	switch {
	case currentMinutes > scheduledMinutes+OverdueGraceMinutes:
		return StatusOverdue
	case currentMinutes >= scheduledMinutes-DueLeadMinutes:
		return StatusDue
	default:
		return StatusPending
	}
}

// IsLogged returns true for the two terminal statuses.
func (s Status) IsLogged() bool {
	return s == StatusTaken || s == StatusSkipped
}

// Label returns a human-readable label for the status.
func (s Status) Label() string {
	switch s {
	case StatusTaken:
		return "Taken"
	case StatusSkipped:
		return "Skipped"
	case StatusOverdue:
		return "Overdue"
	case StatusDue:
		return "Due now"
	case StatusPending:
		return "Upcoming"
	default:
		return string(s)
	}
}

// Icon returns a single-character marker for CLI lists.
func (s Status) Icon() string {
	switch s {
	case StatusTaken:
		return "✓"
	case StatusSkipped:
		return "✗"
	case StatusOverdue:
		return "!"
	case StatusDue:
		return "●"
	default:
		return "○"
	}
}
