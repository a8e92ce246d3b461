package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dosewatch/dosewatch/internal/logging"
	"github.com/dosewatch/dosewatch/internal/model"
	"github.com/dosewatch/dosewatch/internal/notify"
	"github.com/dosewatch/dosewatch/internal/parser"
	"github.com/dosewatch/dosewatch/internal/storage"
)

// ReminderWindowMinutes is how far a scan instant may drift from a
// scheduled time and still raise the reminder. One minute on either side
// covers a tick that fires slightly early or late.
const ReminderWindowMinutes = 1

// PendingReminder is the single reminder slot the checker exposes to its
// consumers. A new reminder replaces the previous one; last wins.
type PendingReminder struct {
	MedicineKey  string
	MedicineName string
	Dosage       string
	Date         string
	Time         string
	RaisedAt     time.Time
}

// DoseChecker scans active medicines for doses whose scheduled time is
// within the reminder window and have no log yet, raising reminders and
// dispatching notifications. It also owns snooze timers: a snoozed
// reminder re-raises after the configured delay unless the dose was
// logged or the snooze was cancelled in the meantime.
type DoseChecker struct {
	medicines  *storage.MedicineRepo
	logs       *storage.DoseLogRepo
	configRepo *storage.NotifyConfigRepo
	dispatcher *notify.Dispatcher

	mu           sync.Mutex
	pending      *PendingReminder
	snoozeTimers map[string]*time.Timer
	snoozeDelay  time.Duration
	permission   model.Permission

	// nowFunc is swappable for tests.
	nowFunc func() time.Time
}

// NewDoseChecker creates a dose checker. Snooze delay and notification
// permission are loaded from the stored config.
func NewDoseChecker(medicines *storage.MedicineRepo, logs *storage.DoseLogRepo, configRepo *storage.NotifyConfigRepo, dispatcher *notify.Dispatcher) *DoseChecker {
	config, err := configRepo.Get()
	if err != nil {
		config = model.DefaultNotifyConfig()
	}

	return &DoseChecker{
		medicines:    medicines,
		logs:         logs,
		configRepo:   configRepo,
		dispatcher:   dispatcher,
		snoozeTimers: make(map[string]*time.Timer),
		snoozeDelay:  config.SnoozeDelay,
		permission:   config.Permission,
		nowFunc:      time.Now,
	}
}

// Start resolves an undetermined notification permission. The answer is
// asked exactly once: whatever the platform says is persisted, so later
// runs skip the request. Having at least one enabled channel counts as a
// grant.
func (c *DoseChecker) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.permission != model.PermissionDefault {
		return
	}

	if c.dispatcher != nil && c.dispatcher.HasEnabledChannels() {
		c.permission = model.PermissionGranted
	} else {
		c.permission = model.PermissionDenied
	}

	config, err := c.configRepo.Get()
	if err != nil {
		config = model.DefaultNotifyConfig()
	}
	config.Permission = c.permission
	if err := c.configRepo.Set(config); err != nil {
		logging.Warn("failed to persist notification permission", logging.KeyError, err)
	}

	logging.Info("notification permission resolved", "permission", string(c.permission))
}

// Check scans every dose of every active medicine. A dose raises a
// reminder when the current time is within the window of its scheduled
// time and no log exists for it today. Reminders for doses the user
// already responded to are never raised, even inside the window.
func (c *DoseChecker) Check() {
	now := c.nowFunc()
	date := parser.Today(now)
	nowMinutes := parser.MinutesOfDay(now)

	medicines, err := c.medicines.ListActiveOn(date)
	if err != nil {
		logging.Error("dose check failed to list medicines", logging.KeyError, err)
		return
	}

	for _, medicine := range medicines {
		for _, clock := range medicine.Times {
			scheduled, err := parser.ParseClock(clock)
			if err != nil {
				logging.Warn("skipping unparseable dose time",
					logging.KeyMedicine, medicine.Name, logging.KeyTime, clock)
				continue
			}

			diff := nowMinutes - scheduled
			if diff < -ReminderWindowMinutes || diff > ReminderWindowMinutes {
				continue
			}

			logged, err := c.logs.Has(medicine.Key, date, clock)
			if err != nil {
				logging.Error("dose check failed to read log",
					logging.KeyMedicine, medicine.Name, logging.KeyError, err)
				continue
			}
			if logged {
				continue
			}

			c.raise(medicine, date, clock, now)
		}
	}
}

// raise installs the reminder in the pending slot and, if permitted,
// notifies the configured channels.
func (c *DoseChecker) raise(medicine *model.Medicine, date, clock string, now time.Time) {
	c.mu.Lock()
	c.pending = &PendingReminder{
		MedicineKey:  medicine.Key,
		MedicineName: medicine.Name,
		Dosage:       medicine.Dosage,
		Date:         date,
		Time:         clock,
		RaisedAt:     now,
	}
	granted := c.permission == model.PermissionGranted
	c.mu.Unlock()

	logging.Info("dose reminder raised",
		logging.KeyMedicine, medicine.Name,
		logging.KeyTime, clock,
		logging.KeyDate, date)

	if !granted || c.dispatcher == nil {
		return
	}

	notification := model.NewNotification(
		model.NotifyDose,
		"Time for your medicine",
		fmt.Sprintf("%s is due now.", medicine.Name),
	).WithField("Time", parser.FormatClock12(clock))
	if medicine.Dosage != "" {
		notification.WithField("Dosage", medicine.Dosage)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	for _, result := range c.dispatcher.Send(ctx, notification) {
		if !result.Success {
			logging.Warn("reminder notification failed",
				logging.KeyWebhook, result.WebhookName, logging.KeyError, result.Error)
		}
	}
}

// Pending returns a copy of the current pending reminder, or nil.
func (c *DoseChecker) Pending() *PendingReminder {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		return nil
	}
	copied := *c.pending
	return &copied
}

// Dismiss clears the pending reminder without logging anything.
func (c *DoseChecker) Dismiss() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = nil
}

// Snooze clears the pending reminder and schedules it to re-raise after
// the snooze delay. The timer is cancelled if the dose gets logged or the
// medicine is deleted before it fires; a fired timer re-checks the log
// before re-raising, so a stale snooze never resurfaces an answered dose.
func (c *DoseChecker) Snooze() {
	c.mu.Lock()
	reminder := c.pending
	c.pending = nil
	if reminder == nil {
		c.mu.Unlock()
		return
	}

	key := snoozeKey(reminder.MedicineKey, reminder.Time)
	if timer, ok := c.snoozeTimers[key]; ok {
		timer.Stop()
	}
	c.snoozeTimers[key] = time.AfterFunc(c.snoozeDelay, func() {
		c.reraise(reminder)
	})
	c.mu.Unlock()

	logging.Info("dose reminder snoozed",
		logging.KeyMedicine, reminder.MedicineName,
		logging.KeyTime, reminder.Time,
		"delay", c.snoozeDelay.String())
}

// reraise runs when a snooze timer fires.
func (c *DoseChecker) reraise(reminder *PendingReminder) {
	c.mu.Lock()
	delete(c.snoozeTimers, snoozeKey(reminder.MedicineKey, reminder.Time))
	c.mu.Unlock()

	logged, err := c.logs.Has(reminder.MedicineKey, reminder.Date, reminder.Time)
	if err != nil {
		logging.Error("snooze re-check failed", logging.KeyError, err)
		return
	}
	if logged {
		return
	}

	medicine, err := c.medicines.Get(reminder.MedicineKey)
	if err != nil {
		// Medicine was deleted while snoozed.
		return
	}

	c.raise(medicine, reminder.Date, reminder.Time, c.nowFunc())
}

// Take logs a dose as taken and settles any reminder state for it.
func (c *DoseChecker) Take(medicineKey, date, clock string) (*model.DoseLog, error) {
	return c.respond(medicineKey, date, clock, true)
}

// Skip logs a dose as skipped and settles any reminder state for it.
func (c *DoseChecker) Skip(medicineKey, date, clock string) (*model.DoseLog, error) {
	return c.respond(medicineKey, date, clock, false)
}

func (c *DoseChecker) respond(medicineKey, date, clock string, taken bool) (*model.DoseLog, error) {
	entry, err := c.logs.Log(medicineKey, date, clock, taken)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.pending != nil && c.pending.MedicineKey == medicineKey && c.pending.Time == clock {
		c.pending = nil
	}
	key := snoozeKey(medicineKey, clock)
	if timer, ok := c.snoozeTimers[key]; ok {
		timer.Stop()
		delete(c.snoozeTimers, key)
	}
	c.mu.Unlock()

	return entry, nil
}

// CancelSnooze cancels the snooze timer for one dose, if any.
func (c *DoseChecker) CancelSnooze(medicineKey, clock string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := snoozeKey(medicineKey, clock)
	if timer, ok := c.snoozeTimers[key]; ok {
		timer.Stop()
		delete(c.snoozeTimers, key)
	}
}

// CancelAllSnoozes cancels every outstanding snooze timer.
func (c *DoseChecker) CancelAllSnoozes() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, timer := range c.snoozeTimers {
		timer.Stop()
		delete(c.snoozeTimers, key)
	}
}

func snoozeKey(medicineKey, clock string) string {
	return medicineKey + "|" + clock
}
