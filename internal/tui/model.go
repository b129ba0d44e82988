package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/mselene/cyclefast/internal/models"
	"github.com/mselene/cyclefast/internal/storage"
	"github.com/mselene/cyclefast/internal/tui/components/calendar"
	"github.com/mselene/cyclefast/internal/tui/components/logbook"
)

type SessionState int

const (
	StateDashboard SessionState = iota
	StateCalendar
	StateLogbook
	StateLogPeriod
	StateAddType
)

// LogFormModel backs the period logging form.
type LogFormModel struct {
	Date string
	End  bool
}

// TypeFormModel backs the custom fasting type form.
type TypeFormModel struct {
	Name  string
	Hours string
}

type Model struct {
	store     storage.Provider
	settings  models.Settings
	state     SessionState
	keys      KeyMap
	help      help.Model
	calendar  calendar.Model
	logbook   logbook.Model
	form      *huh.Form
	logForm   *LogFormModel
	typeForm  *TypeFormModel
	formError string
	quitting  bool
	width     int
	height    int
}

func NewModel(store storage.Provider) Model {
	settings, err := store.GetSettings()
	if err != nil {
		settings = models.DefaultSettings()
	}

	cal := calendar.New(0, 0)
	cal.SetSettings(settings)
	lb := logbook.New(0, 0)
	lb.SetEntries(settings.CycleHistory)

	return Model{
		store:    store,
		settings: settings,
		state:    StateDashboard,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		calendar: cal,
		logbook:  lb,
	}
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateDashboard:
		keys = append(keys, m.keys.LogStart, m.keys.LogEnd, m.keys.AddType)
	case StateCalendar:
		keys = append(keys, m.keys.PrevMonth, m.keys.NextMonth)
	case StateLogbook:
		keys = append(keys, m.keys.LogStart, m.keys.LogEnd)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right}

	var actions []key.Binding
	switch m.state {
	case StateDashboard, StateLogbook:
		actions = []key.Binding{m.keys.LogStart, m.keys.LogEnd, m.keys.AddType}
	case StateCalendar:
		actions = []key.Binding{m.keys.PrevMonth, m.keys.NextMonth}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// refresh re-reads the aggregate and pushes it into the components.
func (m *Model) refresh() {
	settings, err := m.store.GetSettings()
	if err != nil {
		m.formError = fmt.Sprintf("failed to reload settings: %v", err)
		return
	}
	m.settings = settings
	m.calendar.SetSettings(settings)
	m.logbook.SetEntries(settings.CycleHistory)
}

// newLogForm builds the period logging form, pre-filled with today.
func newLogForm(fm *LogFormModel) *huh.Form {
	fm.Date = time.Now().Format(models.DateLayout)
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[bool]().
				Title("Event").
				Options(
					huh.NewOption("Period started", false),
					huh.NewOption("Period ended", true),
				).
				Value(&fm.End),
			huh.NewInput().
				Title("Date (YYYY-MM-DD)").
				Value(&fm.Date).
				Validate(func(s string) error {
					if _, err := models.ParseDate(s); err != nil {
						return fmt.Errorf("invalid date format, use YYYY-MM-DD")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

// newTypeForm builds the custom fasting type form.
func newTypeForm(fm *TypeFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Daily fasting hours (1-23)").
				Value(&fm.Hours).
				Validate(func(s string) error {
					i, err := strconv.Atoi(s)
					if err != nil {
						return err
					}
					if i < 1 || i > 23 {
						return fmt.Errorf("hours must be 1-23")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}
