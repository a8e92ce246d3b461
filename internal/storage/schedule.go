package storage

import (
	"time"

	"github.com/dosewatch/dosewatch/internal/model"
	"github.com/dosewatch/dosewatch/internal/parser"
)

// ScheduledDose is one row of a day's schedule: a medicine, one of its
// times, and the status derived for that date. It is a projection,
// recomputed on every query and never persisted.
type ScheduledDose struct {
	Medicine *model.Medicine
	Time     string
	Status   model.Status
	Log      *model.DoseLog // nil unless logged
}

// BuildDaySchedule projects medicines, logs, and a wall-clock instant into
// the day's dose rows. Medicines inactive on the date are excluded; rows
// follow medicine-list then time-list order.
func BuildDaySchedule(medicines []*model.Medicine, logs []*model.DoseLog, date string, now time.Time) []ScheduledDose {
	logByKey := make(map[string]*model.DoseLog, len(logs))
	for _, l := range logs {
		if l.Date == date {
			logByKey[model.GenerateDoseLogKey(l.MedicineKey, l.Date, l.Time)] = l
		}
	}

	currentMinutes := parser.MinutesOfDay(now)

	var doses []ScheduledDose
	for _, m := range medicines {
		if !m.ActiveOn(date) {
			continue
		}
		for _, clock := range m.Times {
			scheduledMinutes, err := parser.ParseClock(clock)
			if err != nil {
				continue
			}

			entry := logByKey[model.GenerateDoseLogKey(m.Key, date, clock)]
			hasLog := entry != nil
			wasTaken := hasLog && entry.Taken

			doses = append(doses, ScheduledDose{
				Medicine: m,
				Time:     clock,
				Status:   model.DeriveStatus(scheduledMinutes, currentMinutes, hasLog, wasTaken),
				Log:      entry,
			})
		}
	}
	return doses
}

// AdherenceSummary aggregates logged doses over a window.
type AdherenceSummary struct {
	Logged  int
	Taken   int
	Skipped int
}

// Rate returns the fraction of logged doses marked taken, or 0 when
// nothing was logged. Display only; never drives control logic.
func (s AdherenceSummary) Rate() float64 {
	if s.Logged == 0 {
		return 0
	}
	return float64(s.Taken) / float64(s.Logged)
}

// Adherence computes the overall summary for a set of logs.
func Adherence(logs []*model.DoseLog) AdherenceSummary {
	var summary AdherenceSummary
	for _, l := range logs {
		summary.Logged++
		if l.Taken {
			summary.Taken++
		} else {
			summary.Skipped++
		}
	}
	return summary
}

// AdherenceByMedicine computes per-medicine summaries keyed by medicine
// key.
func AdherenceByMedicine(logs []*model.DoseLog) map[string]AdherenceSummary {
	byMedicine := make(map[string]AdherenceSummary)
	for _, l := range logs {
		summary := byMedicine[l.MedicineKey]
		summary.Logged++
		if l.Taken {
			summary.Taken++
		} else {
			summary.Skipped++
		}
		byMedicine[l.MedicineKey] = summary
	}
	return byMedicine
}
