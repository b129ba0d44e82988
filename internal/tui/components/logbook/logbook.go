package logbook

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mselene/cyclefast/internal/models"
)

var (
	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true).
			Width(12)

	ongoingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Italic(true)

	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Model renders the cycle history, newest first.
type Model struct {
	viewport viewport.Model
	entries  []models.CycleEntry
	width    int
	height   int
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
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
	if len(m.entries) == 0 {
		return "No history yet. Press 's' to log a period start."
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

func (m *Model) SetEntries(entries []models.CycleEntry) {
	m.entries = entries
	m.Render()
}

func (m *Model) Render() {
	var b strings.Builder
	for _, entry := range m.entries {
		b.WriteString(dateStyle.Render(entry.StartDate))

		if entry.EndDate == nil {
			b.WriteString(ongoingStyle.Render(" ongoing"))
		} else {
			detail := " ended " + *entry.EndDate
			start, err1 := models.ParseDate(entry.StartDate)
			end, err2 := models.ParseDate(*entry.EndDate)
			if err1 == nil && err2 == nil {
				detail += fmt.Sprintf(" (%d days)", models.DaysBetween(start, end)+1)
			}
			b.WriteString(detailStyle.Render(detail))
		}

		if entry.PlanSnapshot != nil {
			b.WriteString(detailStyle.Render("  plan: " + entry.PlanSnapshot.Name))
		}
		b.WriteString("\n")
	}
	m.viewport.SetContent(b.String())
}
