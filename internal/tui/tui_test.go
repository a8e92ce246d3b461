package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dosewatch/dosewatch/internal/model"
	"github.com/dosewatch/dosewatch/internal/notify"
	"github.com/dosewatch/dosewatch/internal/scheduler"
	"github.com/dosewatch/dosewatch/internal/storage"
)

func setupDashboard(t *testing.T) (*DashboardModel, *storage.MedicineRepo, *storage.DoseLogRepo) {
	t.Helper()

	db, err := storage.Open(storage.Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	medicines := storage.NewMedicineRepo(db)
	logs := storage.NewDoseLogRepo(db)
	checker := scheduler.NewDoseChecker(medicines, logs, storage.NewNotifyConfigRepo(db),
		notify.NewDispatcher(storage.NewWebhookRepo(db)))
	t.Cleanup(checker.CancelAllSnoozes)

	m := NewDashboardModel(DashboardConfig{
		MedicineRepo: medicines,
		DoseLogRepo:  logs,
		Checker:      checker,
	})
	return m, medicines, logs
}

func TestStyleForStatus(t *testing.T) {
	assert.Equal(t, StyleTaken, StyleForStatus(model.StatusTaken))
	assert.Equal(t, StyleSkipped, StyleForStatus(model.StatusSkipped))
	assert.Equal(t, StyleDue, StyleForStatus(model.StatusDue))
	assert.Equal(t, StyleOverdue, StyleForStatus(model.StatusOverdue))
	assert.Equal(t, StylePending, StyleForStatus(model.StatusPending))
}

func TestHelpBar(t *testing.T) {
	bar := HelpBar()
	assert.Contains(t, bar, "take")
	assert.Contains(t, bar, "snooze")
	assert.Contains(t, bar, "quit")
}

func TestNewDashboardModel(t *testing.T) {
	m, _, _ := setupDashboard(t)
	assert.NotNil(t, m)
	assert.Equal(t, time.Second, m.refreshInterval)
}

func TestDashboardViewLoading(t *testing.T) {
	m, _, _ := setupDashboard(t)
	// No window size received yet
	assert.Equal(t, "Loading...", m.View())
}

func TestDashboardWindowSize(t *testing.T) {
	m, _, _ := setupDashboard(t)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	dm := updated.(*DashboardModel)
	assert.Equal(t, 100, dm.width)
	assert.Equal(t, 40, dm.height)
}

func TestDashboardViewShowsSchedule(t *testing.T) {
	m, medicines, _ := setupDashboard(t)

	medicine := model.NewMedicine("Aspirin", "100mg", model.FreqDaily, []string{"09:00"})
	require.NoError(t, medicines.Create(medicine))

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m.loadData()

	view := m.View()
	assert.Contains(t, view, "Dosewatch")
	assert.Contains(t, view, "Aspirin")
	assert.Contains(t, view, "9:00 AM")
}

func TestDashboardViewEmptySchedule(t *testing.T) {
	m, _, _ := setupDashboard(t)

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m.loadData()

	assert.Contains(t, m.View(), "Nothing scheduled today")
}

func TestDashboardQuitKey(t *testing.T) {
	m, _, _ := setupDashboard(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestDashboardTakeWithoutDueDose(t *testing.T) {
	m, _, _ := setupDashboard(t)
	m.loadData()

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})
	assert.Equal(t, "No dose due right now", m.message)
}

func TestDashboardSnoozeWithoutReminder(t *testing.T) {
	m, _, _ := setupDashboard(t)
	m.loadData()

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'z'}})
	assert.Equal(t, "No reminder to snooze", m.message)
}

func TestDashboardRespondToDueDose(t *testing.T) {
	m, medicines, logs := setupDashboard(t)

	// A dose scheduled right now is due
	clock := time.Now().Format("15:04")
	medicine := model.NewMedicine("Aspirin", "100mg", model.FreqDaily, []string{clock})
	require.NoError(t, medicines.Create(medicine))
	m.loadData()

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})

	entry, err := logs.Find(medicine.Key, m.date, clock)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.True(t, entry.Taken)
	assert.Contains(t, m.message, "taken")
}
