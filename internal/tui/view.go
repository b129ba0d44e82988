package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/mselene/cyclefast/internal/engine"
	"github.com/mselene/cyclefast/internal/ledger"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateDashboard:
		content = docStyle.Render(m.viewDashboard())
	case StateCalendar:
		content = docStyle.Render(m.calendar.View())
	case StateLogbook:
		content = docStyle.Render(m.logbook.View())
	case StateLogPeriod, StateAddType:
		content = docStyle.Render(m.viewForm())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Today", "Calendar", "Logbook"} {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewDashboard() string {
	status := engine.Status(m.settings, time.Now())
	if status == nil {
		return "No cycle history yet.\n\nPress 's' to log your first period start."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Cycle day %d of %d", status.CycleDay, m.settings.CycleLength)))
	b.WriteString(subtleStyle.Render(fmt.Sprintf("  %s", status.PlanName)))
	b.WriteString("\n")
	if status.IsPeriodDay {
		b.WriteString(subtleStyle.Render("Period day."))
		b.WriteString("\n")
	}
	if ledger.PeriodOngoing(m.settings) {
		b.WriteString(subtleStyle.Render("Period ongoing, press 'e' to log its end."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(adviceStyle.Render(status.AdviceTitle))
	b.WriteString("\n")
	b.WriteString(status.AdviceDetail)
	b.WriteString("\n")

	if status.Rule != nil && status.TypeDef != nil && m.settings.IsFastingEnabled {
		b.WriteString("\n")
		if len(status.Slots) == 0 {
			b.WriteString(subtleStyle.Render("No scheduled fasting."))
		} else {
			b.WriteString(titleStyle.Render("Fasting windows"))
			b.WriteString("\n")
			for _, slot := range status.Slots {
				b.WriteString("  " + slot + "\n")
			}
			if status.TypeDef.WindowDays() > 1 {
				idx := engine.WindowDayIndex(*status.TypeDef, status.CycleDay, status.Rule.DayStart)
				b.WriteString(subtleStyle.Render(
					fmt.Sprintf("Day %d of the %d-day window.", idx+1, status.TypeDef.WindowDays())))
			}
		}
		b.WriteString("\n")
	}

	if m.formError != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.formError))
	}

	return b.String()
}

func (m Model) viewForm() string {
	if m.form == nil {
		return ""
	}
	view := m.form.View()
	if m.formError != "" {
		view += "\n" + errorStyle.Render(m.formError)
	}
	return view
}
