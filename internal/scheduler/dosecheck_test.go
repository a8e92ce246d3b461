package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dosewatch/dosewatch/internal/model"
	"github.com/dosewatch/dosewatch/internal/storage"
)

type checkerFixture struct {
	db        *storage.DB
	medicines *storage.MedicineRepo
	logs      *storage.DoseLogRepo
	checker   *DoseChecker
}

func setupChecker(t *testing.T) *checkerFixture {
	t.Helper()

	db, err := storage.Open(storage.Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	f := &checkerFixture{
		db:        db,
		medicines: storage.NewMedicineRepo(db),
		logs:      storage.NewDoseLogRepo(db),
	}
	f.checker = NewDoseChecker(f.medicines, f.logs, storage.NewNotifyConfigRepo(db), nil)
	t.Cleanup(f.checker.CancelAllSnoozes)
	return f
}

func (f *checkerFixture) addMedicine(t *testing.T, name string, times ...string) *model.Medicine {
	t.Helper()
	medicine := model.NewMedicine(name, "100mg", model.FreqDaily, times)
	require.NoError(t, f.medicines.Create(medicine))
	return medicine
}

// at pins the checker's clock to a fixed wall-clock instant.
func (f *checkerFixture) at(clock string) time.Time {
	now, _ := time.Parse("2006-01-02 15:04", "2026-03-10 "+clock)
	f.checker.nowFunc = func() time.Time { return now }
	return now
}

func TestCheckRaisesWithinWindow(t *testing.T) {
	f := setupChecker(t)
	medicine := f.addMedicine(t, "Aspirin", "09:00")

	f.at("09:01")
	f.checker.Check()

	pending := f.checker.Pending()
	require.NotNil(t, pending)
	assert.Equal(t, medicine.Key, pending.MedicineKey)
	assert.Equal(t, "Aspirin", pending.MedicineName)
	assert.Equal(t, "09:00", pending.Time)
	assert.Equal(t, "2026-03-10", pending.Date)
}

func TestCheckOutsideWindowDoesNotRaise(t *testing.T) {
	f := setupChecker(t)
	f.addMedicine(t, "Aspirin", "09:00")

	f.at("09:03")
	f.checker.Check()
	assert.Nil(t, f.checker.Pending())

	f.at("08:58")
	f.checker.Check()
	assert.Nil(t, f.checker.Pending())
}

func TestCheckWindowEdges(t *testing.T) {
	f := setupChecker(t)
	f.addMedicine(t, "Aspirin", "09:00")

	f.at("08:59")
	f.checker.Check()
	assert.NotNil(t, f.checker.Pending(), "one minute early is inside the window")

	f.checker.Dismiss()
	f.at("09:01")
	f.checker.Check()
	assert.NotNil(t, f.checker.Pending(), "one minute late is inside the window")
}

func TestCheckSkipsLoggedDose(t *testing.T) {
	f := setupChecker(t)
	medicine := f.addMedicine(t, "Aspirin", "09:00")

	f.at("09:00")
	_, err := f.logs.Log(medicine.Key, "2026-03-10", "09:00", true)
	require.NoError(t, err)

	f.checker.Check()
	assert.Nil(t, f.checker.Pending())
}

func TestCheckSkipsInactiveMedicine(t *testing.T) {
	f := setupChecker(t)
	medicine := model.NewMedicine("Old Med", "50mg", model.FreqDaily, []string{"09:00"})
	medicine.EndDate = "2026-01-01"
	require.NoError(t, f.medicines.Create(medicine))

	f.at("09:00")
	f.checker.Check()
	assert.Nil(t, f.checker.Pending())
}

func TestPendingSlotLastWins(t *testing.T) {
	f := setupChecker(t)
	f.addMedicine(t, "Alpha", "09:00")
	second := f.addMedicine(t, "Beta", "09:02")

	f.at("09:01")
	f.checker.Check()

	// Both doses are in the window; only one slot exists. The scan order
	// is creation order, so the later-created medicine wins.
	pending := f.checker.Pending()
	require.NotNil(t, pending)
	assert.Equal(t, second.Key, pending.MedicineKey)
}

func TestTakeLogsAndClearsPending(t *testing.T) {
	f := setupChecker(t)
	medicine := f.addMedicine(t, "Aspirin", "09:00")

	f.at("09:00")
	f.checker.Check()
	require.NotNil(t, f.checker.Pending())

	entry, err := f.checker.Take(medicine.Key, "2026-03-10", "09:00")
	require.NoError(t, err)
	assert.True(t, entry.Taken)
	assert.Nil(t, f.checker.Pending())

	// Subsequent scans in the window stay quiet.
	f.at("09:01")
	f.checker.Check()
	assert.Nil(t, f.checker.Pending())
}

func TestSkipLogsSkipped(t *testing.T) {
	f := setupChecker(t)
	medicine := f.addMedicine(t, "Aspirin", "09:00")

	f.at("09:00")
	entry, err := f.checker.Skip(medicine.Key, "2026-03-10", "09:00")
	require.NoError(t, err)
	assert.False(t, entry.Taken)

	found, err := f.logs.Find(medicine.Key, "2026-03-10", "09:00")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.False(t, found.Taken)
}

func TestSnoozeClearsAndReraises(t *testing.T) {
	f := setupChecker(t)
	medicine := f.addMedicine(t, "Aspirin", "09:00")
	f.checker.snoozeDelay = 20 * time.Millisecond

	f.at("09:00")
	f.checker.Check()
	require.NotNil(t, f.checker.Pending())

	f.checker.Snooze()
	assert.Nil(t, f.checker.Pending())

	require.Eventually(t, func() bool {
		pending := f.checker.Pending()
		return pending != nil && pending.MedicineKey == medicine.Key
	}, time.Second, 5*time.Millisecond, "snoozed reminder should re-raise")
}

func TestSnoozeCancelledByLogging(t *testing.T) {
	f := setupChecker(t)
	medicine := f.addMedicine(t, "Aspirin", "09:00")
	f.checker.snoozeDelay = 20 * time.Millisecond

	f.at("09:00")
	f.checker.Check()
	f.checker.Snooze()

	_, err := f.checker.Take(medicine.Key, "2026-03-10", "09:00")
	require.NoError(t, err)

	time.Sleep(60 * time.Millisecond)
	assert.Nil(t, f.checker.Pending(), "answered dose must not resurface")
}

func TestSnoozeDoesNotReraiseLoggedDose(t *testing.T) {
	f := setupChecker(t)
	medicine := f.addMedicine(t, "Aspirin", "09:00")
	f.checker.snoozeDelay = 20 * time.Millisecond

	f.at("09:00")
	f.checker.Check()
	f.checker.Snooze()

	// The dose gets logged outside the checker while the snooze timer is
	// pending. The fired timer re-checks the log and stays quiet.
	_, err := f.logs.Log(medicine.Key, "2026-03-10", "09:00", true)
	require.NoError(t, err)

	time.Sleep(60 * time.Millisecond)
	assert.Nil(t, f.checker.Pending())
}

func TestSnoozeDoesNotReraiseDeletedMedicine(t *testing.T) {
	f := setupChecker(t)
	medicine := f.addMedicine(t, "Aspirin", "09:00")
	f.checker.snoozeDelay = 20 * time.Millisecond

	f.at("09:00")
	f.checker.Check()
	f.checker.Snooze()

	require.NoError(t, f.medicines.DeleteCascade(medicine.Key, f.logs))

	time.Sleep(60 * time.Millisecond)
	assert.Nil(t, f.checker.Pending())
}

func TestDismissClearsWithoutLogging(t *testing.T) {
	f := setupChecker(t)
	medicine := f.addMedicine(t, "Aspirin", "09:00")

	f.at("09:00")
	f.checker.Check()
	f.checker.Dismiss()
	assert.Nil(t, f.checker.Pending())

	has, err := f.logs.Has(medicine.Key, "2026-03-10", "09:00")
	require.NoError(t, err)
	assert.False(t, has, "dismiss must not write a log")
}

func TestStartResolvesPermissionOnce(t *testing.T) {
	f := setupChecker(t)
	configRepo := storage.NewNotifyConfigRepo(f.db)

	// No channels configured: the single permission request resolves to
	// denied and is persisted.
	f.checker.Start()
	assert.Equal(t, model.PermissionDenied, f.checker.permission)

	config, err := configRepo.Get()
	require.NoError(t, err)
	assert.Equal(t, model.PermissionDenied, config.Permission)

	// A later grant is not overwritten by Start.
	config.Permission = model.PermissionGranted
	require.NoError(t, configRepo.Set(config))

	fresh := NewDoseChecker(f.medicines, f.logs, configRepo, nil)
	fresh.Start()
	assert.Equal(t, model.PermissionGranted, fresh.permission)
}

func TestDeniedPermissionStillTracksPending(t *testing.T) {
	f := setupChecker(t)
	f.addMedicine(t, "Aspirin", "09:00")
	f.checker.permission = model.PermissionDenied

	f.at("09:00")
	f.checker.Check()

	// The slot is maintained regardless of permission; only outbound
	// notifications are gated.
	assert.NotNil(t, f.checker.Pending())
}
