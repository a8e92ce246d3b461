package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dosewatch/dosewatch/internal/model"
	"github.com/dosewatch/dosewatch/internal/parser"
	"github.com/dosewatch/dosewatch/internal/storage"
)

// Styles for CLI output.
var (
	// Colors
	colorPrimary = lipgloss.Color("#3B82F6") // Blue
	colorMuted   = lipgloss.Color("#6B7280") // Gray
	colorWarning = lipgloss.Color("#F59E0B") // Yellow
	colorError   = lipgloss.Color("#EF4444") // Red
	colorSuccess = lipgloss.Color("#10B981") // Green

	// Styles
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorSuccess)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorWarning)

	styleError = lipgloss.NewStyle().
			Foreground(colorError)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleBold = lipgloss.NewStyle().
			Bold(true)

	styleMedicine = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleDue = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWarning)

	styleOverdue = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorError)
)

// CLIFormatter provides CLI-specific formatting.
type CLIFormatter struct {
	*Formatter
}

// NewCLIFormatter creates a new CLI formatter.
func NewCLIFormatter(f *Formatter) *CLIFormatter {
	return &CLIFormatter{Formatter: f}
}

// Title prints a title.
func (c *CLIFormatter) Title(text string) {
	if c.IsColorEnabled() {
		c.Println(styleTitle.Render(text))
	} else {
		c.Println(text)
	}
}

// Success prints a success message.
func (c *CLIFormatter) Success(text string) {
	if c.IsColorEnabled() {
		c.Println(styleSuccess.Render("✓ " + text))
	} else {
		c.Println("✓ " + text)
	}
}

// Warning prints a warning message.
func (c *CLIFormatter) Warning(text string) {
	if c.IsColorEnabled() {
		c.Println(styleWarning.Render("⚠ " + text))
	} else {
		c.Println("⚠ " + text)
	}
}

// Error prints an error message.
func (c *CLIFormatter) Error(text string) {
	if c.IsColorEnabled() {
		c.Println(styleError.Render("✗ " + text))
	} else {
		c.Println("✗ " + text)
	}
}

// Muted prints muted text.
func (c *CLIFormatter) Muted(text string) {
	if c.IsColorEnabled() {
		c.Println(styleMuted.Render(text))
	} else {
		c.Println(text)
	}
}

// MedicineName formats a medicine name.
func (c *CLIFormatter) MedicineName(name string) string {
	if c.IsColorEnabled() {
		return styleMedicine.Render(name)
	}
	return name
}

// StatusLabel formats a dose status with its color.
func (c *CLIFormatter) StatusLabel(s model.Status) string {
	label := s.Icon() + " " + s.Label()
	if !c.IsColorEnabled() {
		return label
	}
	switch s {
	case model.StatusTaken:
		return styleSuccess.Render(label)
	case model.StatusSkipped:
		return styleMuted.Render(label)
	case model.StatusDue:
		return styleDue.Render(label)
	case model.StatusOverdue:
		return styleOverdue.Render(label)
	default:
		return styleMuted.Render(label)
	}
}

// PrintMedicine prints a medicine's details.
func (c *CLIFormatter) PrintMedicine(m *model.Medicine) {
	c.Printf("%s  %s\n", c.MedicineName(m.Name), styleOrPlain(c, styleMuted, "["+m.ShortID()+"]"))
	if m.Dosage != "" {
		c.Printf("  Dosage: %s\n", m.Dosage)
	}
	c.Printf("  Frequency: %s\n", model.FrequencyLabel(m.Frequency))
	c.Printf("  Times: %s\n", formatTimes(m.Times))
	if m.StartDate != "" {
		c.Printf("  Start: %s\n", m.StartDate)
	}
	if m.EndDate != "" {
		c.Printf("  End: %s\n", m.EndDate)
	}
	if m.Instructions != "" {
		c.Printf("  Instructions: %s\n", m.Instructions)
	}
}

// PrintMedicineList prints medicines as a table.
func (c *CLIFormatter) PrintMedicineList(medicines []*model.Medicine) {
	if len(medicines) == 0 {
		c.Muted("No medicines yet.")
		c.Muted("Use 'dosewatch medicine add <name>' to add one.")
		return
	}

	rows := make([]TableRow, len(medicines))
	for i, m := range medicines {
		rows[i] = TableRow{Columns: []string{
			m.ShortID(),
			m.Name,
			m.Dosage,
			model.FrequencyLabel(m.Frequency),
			formatTimes(m.Times),
		}}
	}
	c.PrintTable([]string{"ID", "NAME", "DOSAGE", "FREQUENCY", "TIMES"}, rows)
}

// PrintSchedule prints a day's dose schedule.
func (c *CLIFormatter) PrintSchedule(date string, doses []storage.ScheduledDose) {
	c.Title("Schedule for " + date)
	if len(doses) == 0 {
		c.Muted("No doses scheduled.")
		return
	}

	for _, d := range doses {
		c.Printf("  %s  %s %s  %s\n",
			parser.FormatClock12(d.Time),
			c.MedicineName(d.Medicine.Name),
			d.Medicine.Dosage,
			c.StatusLabel(d.Status))
	}
}

// PrintDoseLogged prints confirmation that a dose was recorded.
func (c *CLIFormatter) PrintDoseLogged(m *model.Medicine, entry *model.DoseLog) {
	verb := "skipped"
	if entry.Taken {
		verb = "taken"
	}
	c.Success(fmt.Sprintf("%s %s dose marked %s", m.Name, parser.FormatClock12(entry.Time), verb))
}

// PrintAdherence prints an adherence summary.
func (c *CLIFormatter) PrintAdherence(label string, summary storage.AdherenceSummary) {
	if summary.Logged == 0 {
		c.Printf("  %s: no doses logged\n", label)
		return
	}
	c.Printf("  %s: %s adherence (%d taken, %d skipped)\n",
		label, FormatPercent(summary.Rate()), summary.Taken, summary.Skipped)
}

// PrintPendingReminder prints the active reminder, if any.
func (c *CLIFormatter) PrintPendingReminder(name, dosage, clock string) {
	text := fmt.Sprintf("Reminder: %s", name)
	if dosage != "" {
		text += " " + dosage
	}
	text += " at " + parser.FormatClock12(clock)
	c.Warning(text)
}

func styleOrPlain(c *CLIFormatter, style lipgloss.Style, text string) string {
	if c.IsColorEnabled() {
		return style.Render(text)
	}
	return text
}

func formatTimes(times []string) string {
	display := make([]string, len(times))
	for i, t := range times {
		display[i] = parser.FormatClock12(t)
	}
	return strings.Join(display, ", ")
}

// Table helpers for CLI output.
type TableRow struct {
	Columns []string
}

// PrintTable prints a simple table.
func (c *CLIFormatter) PrintTable(headers []string, rows []TableRow) {
	if len(rows) == 0 {
		return
	}

	// Calculate column widths
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, col := range row.Columns {
			if i < len(widths) && len(col) > widths[i] {
				widths[i] = len(col)
			}
		}
	}

	// Print headers
	var headerLine strings.Builder
	for i, h := range headers {
		headerLine.WriteString(fmt.Sprintf("%-*s  ", widths[i], h))
	}
	if c.IsColorEnabled() {
		c.Println(styleBold.Render(headerLine.String()))
	} else {
		c.Println(headerLine.String())
	}

	// Print separator
	var sep strings.Builder
	for _, w := range widths {
		sep.WriteString(strings.Repeat("─", w) + "  ")
	}
	c.Println(sep.String())

	// Print rows
	for _, row := range rows {
		var rowLine strings.Builder
		for i, col := range row.Columns {
			if i < len(widths) {
				rowLine.WriteString(fmt.Sprintf("%-*s  ", widths[i], col))
			}
		}
		c.Println(rowLine.String())
	}
}
