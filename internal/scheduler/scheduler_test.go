package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dosewatch/dosewatch/internal/model"
)

func TestSchedulerStartStop(t *testing.T) {
	f := setupChecker(t)

	s := New(f.checker)
	require.NoError(t, s.Start())
	s.Stop()
}

func TestSchedulerImmediateCheck(t *testing.T) {
	f := setupChecker(t)
	medicine := model.NewMedicine("Aspirin", "100mg", model.FreqDaily, []string{"09:00"})
	require.NoError(t, f.medicines.Create(medicine))

	f.at("09:00")

	// Start runs a scan right away; the due dose is picked up without
	// waiting for the first minute tick.
	s := New(f.checker)
	require.NoError(t, s.Start())
	defer s.Stop()

	require.Eventually(t, func() bool {
		pending := f.checker.Pending()
		return pending != nil && pending.MedicineKey == medicine.Key
	}, time.Second, 10*time.Millisecond)
}

func TestSchedulerStopCancelsSnoozes(t *testing.T) {
	f := setupChecker(t)
	require.NoError(t, f.medicines.Create(
		model.NewMedicine("Aspirin", "100mg", model.FreqDaily, []string{"09:00"})))
	f.checker.snoozeDelay = time.Hour

	f.at("09:00")
	f.checker.Check()
	f.checker.Snooze()

	s := New(f.checker)
	require.NoError(t, s.Start())
	s.Stop()

	f.checker.mu.Lock()
	timers := len(f.checker.snoozeTimers)
	f.checker.mu.Unlock()
	require.Zero(t, timers)
}
