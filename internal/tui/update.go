package tui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/mselene/cyclefast/internal/catalog"
	"github.com/mselene/cyclefast/internal/ledger"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
		m.help.Width = size.Width
		m.calendar.SetSize(size.Width-4, size.Height-6)
		m.logbook.SetSize(size.Width-4, size.Height-6)
		return m, nil
	}

	// Forms consume every message while active, key or not.
	if m.state == StateLogPeriod || m.state == StateAddType {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab), key.Matches(msg, m.keys.Right):
			m.state = (m.state + 1) % 3
		case key.Matches(msg, m.keys.ShiftTab), key.Matches(msg, m.keys.Left):
			m.state = (m.state + 2) % 3
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.LogStart):
			m.logForm = &LogFormModel{}
			m.form = newLogForm(m.logForm)
			m.formError = ""
			m.state = StateLogPeriod
			return m, m.form.Init()
		case key.Matches(msg, m.keys.LogEnd):
			m.logForm = &LogFormModel{End: true}
			m.form = newLogForm(m.logForm)
			m.formError = ""
			m.state = StateLogPeriod
			return m, m.form.Init()
		case key.Matches(msg, m.keys.AddType):
			m.typeForm = &TypeFormModel{}
			m.form = newTypeForm(m.typeForm)
			m.formError = ""
			m.state = StateAddType
			return m, m.form.Init()
		case m.state == StateCalendar && key.Matches(msg, m.keys.PrevMonth):
			m.calendar.ShiftMonth(-1)
		case m.state == StateCalendar && key.Matches(msg, m.keys.NextMonth):
			m.calendar.ShiftMonth(1)
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateCalendar:
		m.calendar, cmd = m.calendar.Update(msg)
	case StateLogbook:
		m.logbook, cmd = m.logbook.Update(msg)
	}
	return m, cmd
}

// updateForm forwards messages to the active huh form and commits the result
// when the form completes.
func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = StateDashboard
		m.form = nil
		return m, nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		var err error
		if m.state == StateLogPeriod {
			err = m.commitLogForm()
		} else {
			err = m.commitTypeForm()
		}
		if err != nil {
			// Keep the user in the form to correct the value.
			m.formError = err.Error()
			m.form.State = huh.StateNormal
			return m, tea.Batch(cmds...)
		}
		m.formError = ""
		m.refresh()
		m.state = StateDashboard
		m.form = nil
	case huh.StateAborted:
		m.formError = ""
		m.state = StateDashboard
		m.form = nil
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) commitLogForm() error {
	settings := m.settings
	var err error
	if m.logForm.End {
		err = ledger.LogPeriodEnd(&settings, m.logForm.Date, time.Now())
	} else {
		err = ledger.LogPeriodStart(&settings, m.logForm.Date, time.Now())
	}
	if err != nil {
		return err
	}
	if err := m.store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save: %w", err)
	}
	return nil
}

func (m *Model) commitTypeForm() error {
	hours, err := strconv.Atoi(m.typeForm.Hours)
	if err != nil {
		return fmt.Errorf("invalid hours: %w", err)
	}

	settings := m.settings
	if _, err := catalog.AddFastingType(&settings, m.typeForm.Name, hours); err != nil {
		return err
	}
	if err := m.store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save: %w", err)
	}
	return nil
}
