package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mselene/cyclefast/internal/engine"
	"github.com/mselene/cyclefast/internal/models"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	weekdayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	periodStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))

	fastingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("63"))

	restStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("70"))

	todayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Bold(true)
)

// Model renders one month of cycle and fasting markers.
type Model struct {
	viewport viewport.Model
	settings models.Settings
	month    time.Time
	width    int
	height   int
}

func New(width, height int) Model {
	vp := viewport.New(width, height)
	now := time.Now()
	return Model{
		viewport: vp,
		month:    time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

func (m *Model) SetSettings(s models.Settings) {
	m.settings = s
	m.Render()
}

// Month returns the first day of the displayed month.
func (m Model) Month() time.Time {
	return m.month
}

// ShiftMonth moves the displayed month forward or backward.
func (m *Model) ShiftMonth(months int) {
	m.month = m.month.AddDate(0, months, 0)
	m.Render()
}

func (m *Model) Render() {
	var b strings.Builder

	b.WriteString(headerStyle.Render(m.month.Format("January 2006")))
	b.WriteString("\n\n")
	b.WriteString(weekdayStyle.Render("Su  Mo  Tu  We  Th  Fr  Sa"))
	b.WriteString("\n")

	today := models.DateOnly(time.Now())
	line := strings.Repeat("    ", int(m.month.Weekday()))

	for day := m.month; day.Month() == m.month.Month(); day = day.AddDate(0, 0, 1) {
		marker := " "
		style := lipgloss.NewStyle()
		if status := engine.Status(m.settings, day); status != nil {
			switch {
			case status.IsPeriodDay:
				marker, style = "●", periodStyle
			case status.Rule != nil && status.Rule.TypeID == models.TypeNoFasting:
				marker, style = "/", restStyle
			case status.Rule != nil && len(status.Slots) > 0:
				marker, style = "*", fastingStyle
			}
		}
		if day.Equal(today) {
			style = todayStyle
		}

		line += style.Render(fmt.Sprintf("%2d%s", day.Day(), marker)) + " "
		if day.Weekday() == time.Saturday {
			b.WriteString(strings.TrimRight(line, " "))
			b.WriteString("\n")
			line = ""
		}
	}
	if line != "" {
		b.WriteString(strings.TrimRight(line, " "))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(weekdayStyle.Render("● period   * fasting   / no fasting"))

	m.viewport.SetContent(b.String())
}
