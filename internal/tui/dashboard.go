package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dosewatch/dosewatch/internal/model"
	"github.com/dosewatch/dosewatch/internal/parser"
	"github.com/dosewatch/dosewatch/internal/scheduler"
	"github.com/dosewatch/dosewatch/internal/storage"
)

// tickMsg is sent when the clock ticks.
type tickMsg time.Time

// refreshMsg is sent when data needs to be refreshed.
type refreshMsg struct{}

// DashboardModel is the main bubbletea model for the dashboard.
type DashboardModel struct {
	// Data
	date      string
	doses     []storage.ScheduledDose
	adherence storage.AdherenceSummary
	pending   *scheduler.PendingReminder

	// Collaborators
	medicineRepo *storage.MedicineRepo
	doseLogRepo  *storage.DoseLogRepo
	checker      *scheduler.DoseChecker

	// UI state
	width      int
	height     int
	err        error
	message    string
	messageExp time.Time
	lastScan   time.Time

	// Configuration
	refreshInterval time.Duration
}

// DashboardConfig holds configuration for the dashboard.
type DashboardConfig struct {
	MedicineRepo    *storage.MedicineRepo
	DoseLogRepo     *storage.DoseLogRepo
	Checker         *scheduler.DoseChecker
	RefreshInterval time.Duration
}

// NewDashboardModel creates a new dashboard model.
func NewDashboardModel(config DashboardConfig) *DashboardModel {
	if config.RefreshInterval == 0 {
		config.RefreshInterval = time.Second
	}

	return &DashboardModel{
		medicineRepo:    config.MedicineRepo,
		doseLogRepo:     config.DoseLogRepo,
		checker:         config.Checker,
		refreshInterval: config.RefreshInterval,
	}
}

// Init initializes the model.
func (m *DashboardModel) Init() tea.Cmd {
	return tea.Batch(
		m.tickCmd(),
		m.refreshCmd(),
	)
}

// Update handles messages and updates the model.
func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		// Clear expired messages
		if !m.messageExp.IsZero() && time.Now().After(m.messageExp) {
			m.message = ""
			m.messageExp = time.Time{}
		}
		// Scan for due doses once per minute
		now := time.Time(msg)
		if now.Truncate(time.Minute) != m.lastScan {
			m.lastScan = now.Truncate(time.Minute)
			m.checker.Check()
		}
		m.loadData()
		return m, m.tickCmd()

	case refreshMsg:
		m.checker.Check()
		m.loadData()
		return m, nil
	}

	return m, nil
}

// handleKeyPress handles keyboard input.
func (m *DashboardModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "t":
		m.respond(true)
		return m, nil

	case "s":
		m.respond(false)
		return m, nil

	case "z":
		if m.pending != nil {
			name := m.pending.MedicineName
			m.checker.Snooze()
			m.loadData()
			m.setMessage(fmt.Sprintf("%s snoozed", name), 2*time.Second)
		} else {
			m.setMessage("No reminder to snooze", 2*time.Second)
		}
		return m, nil

	case "d":
		if m.pending != nil {
			m.checker.Dismiss()
			m.loadData()
			m.setMessage("Reminder dismissed", 2*time.Second)
		} else {
			m.setMessage("No reminder to dismiss", 2*time.Second)
		}
		return m, nil

	case "r":
		m.checker.Check()
		m.loadData()
		m.setMessage("Refreshed", time.Second)
		return m, nil
	}

	return m, nil
}

// respond records a take or skip. The pending reminder takes priority;
// otherwise the first due or overdue unlogged dose of the day is used.
func (m *DashboardModel) respond(taken bool) {
	verb := "skipped"
	if taken {
		verb = "taken"
	}

	if m.pending != nil {
		name := m.pending.MedicineName
		var err error
		if taken {
			_, err = m.checker.Take(m.pending.MedicineKey, m.pending.Date, m.pending.Time)
		} else {
			_, err = m.checker.Skip(m.pending.MedicineKey, m.pending.Date, m.pending.Time)
		}
		if err != nil {
			m.err = err
			return
		}
		m.loadData()
		m.setMessage(fmt.Sprintf("%s marked %s", name, verb), 2*time.Second)
		return
	}

	for _, d := range m.doses {
		if d.Status != model.StatusDue && d.Status != model.StatusOverdue {
			continue
		}
		var err error
		if taken {
			_, err = m.checker.Take(d.Medicine.Key, m.date, d.Time)
		} else {
			_, err = m.checker.Skip(d.Medicine.Key, m.date, d.Time)
		}
		if err != nil {
			m.err = err
			return
		}
		m.loadData()
		m.setMessage(fmt.Sprintf("%s marked %s", d.Medicine.Name, verb), 2*time.Second)
		return
	}

	m.setMessage("No dose due right now", 2*time.Second)
}

// View renders the dashboard.
func (m *DashboardModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var sections []string

	sections = append(sections, m.renderHeader())

	if m.err != nil {
		sections = append(sections, StyleError.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	if m.message != "" {
		sections = append(sections, StyleWarning.Render(m.message))
	}

	if m.pending != nil {
		sections = append(sections, m.renderReminder())
	}

	sections = append(sections, m.renderSchedule())
	sections = append(sections, HelpBar())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders the dashboard header.
func (m *DashboardModel) renderHeader() string {
	title := StyleTitle.Render("Dosewatch")
	now := time.Now().Format("Mon Jan 2, 15:04:05")
	timeStr := StyleSubtitle.Render(now)

	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", timeStr) + "\n"
}

// renderReminder renders the pending reminder box.
func (m *DashboardModel) renderReminder() string {
	line := StyleDue.Render("⏰ " + m.pending.MedicineName)
	if m.pending.Dosage != "" {
		line += " " + m.pending.Dosage
	}
	line += StyleSubtitle.Render("  due at " + parser.FormatClock12(m.pending.Time))
	line += "\n" + StyleSubtitle.Render("t take · s skip · z snooze · d dismiss")
	return StyleReminderBox.Render(line)
}

// renderSchedule renders today's dose list.
func (m *DashboardModel) renderSchedule() string {
	header := StyleSubtitle.Render("Today's doses")

	if len(m.doses) == 0 {
		return StyleScheduleBox.Render(header + "\n\n" + StyleSubtitle.Render("Nothing scheduled today."))
	}

	body := header + "\n"
	for _, d := range m.doses {
		style := StyleForStatus(d.Status)
		body += fmt.Sprintf("\n%s  %s %s  %s",
			parser.FormatClock12(d.Time),
			StyleMedicine.Render(d.Medicine.Name),
			d.Medicine.Dosage,
			style.Render(d.Status.Icon()+" "+d.Status.Label()))
	}

	if m.adherence.Logged > 0 {
		body += "\n\n" + StyleSubtitle.Render(fmt.Sprintf(
			"%d of %d logged · %d taken · %d skipped",
			m.adherence.Logged, len(m.doses), m.adherence.Taken, m.adherence.Skipped))
	}

	return StyleScheduleBox.Render(body)
}

// loadData loads today's schedule and the pending reminder.
func (m *DashboardModel) loadData() {
	now := time.Now()
	m.date = parser.Today(now)

	medicines, err := m.medicineRepo.ListActiveOn(m.date)
	if err != nil {
		m.err = err
		return
	}

	logs, err := m.doseLogRepo.ListByDate(m.date)
	if err != nil {
		m.err = err
		return
	}

	m.doses = storage.BuildDaySchedule(medicines, logs, m.date, now)
	m.adherence = storage.Adherence(logs)
	m.pending = m.checker.Pending()
	m.err = nil
}

// setMessage sets a temporary message.
func (m *DashboardModel) setMessage(msg string, duration time.Duration) {
	m.message = msg
	m.messageExp = time.Now().Add(duration)
}

// tickCmd returns a command that sends a tick message.
func (m *DashboardModel) tickCmd() tea.Cmd {
	return tea.Tick(m.refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refreshCmd returns a command that sends a refresh message.
func (m *DashboardModel) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		return refreshMsg{}
	}
}

// Run starts the dashboard TUI.
func Run(config DashboardConfig) error {
	model := NewDashboardModel(config)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
