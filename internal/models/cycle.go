package models

import "time"

const (
	// DateLayout is the calendar-date format used everywhere in storage and on the CLI.
	DateLayout = "2006-01-02"
	// ClockLayout is the wall-clock format for fasting slot boundaries.
	ClockLayout = "15:04"

	DefaultCycleLength  = 28
	DefaultPeriodLength = 5

	// MaxHistoryEntries caps the ledger to the most recent period records.
	MaxHistoryEntries = 24
)

// PlanSnapshot records which plan was active when a period was logged,
// so the logbook stays meaningful after the plan is edited or deleted.
type PlanSnapshot struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CycleEntry is one observed period. EndDate is nil while the period is ongoing.
type CycleEntry struct {
	StartDate    string        `json:"startDate"`
	EndDate      *string       `json:"endDate,omitempty"`
	PlanSnapshot *PlanSnapshot `json:"planSnapshot,omitempty"`
}

// Ongoing reports whether the period has been started but not yet ended.
func (e CycleEntry) Ongoing() bool {
	return e.EndDate == nil
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// DateOnly truncates a timestamp to midnight in its own location.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysBetween returns the number of calendar days from 'from' to 'to'
// (negative when 'to' is earlier). Only the date components count: both
// endpoints are rebuilt as UTC midnights, so mixing locations (stored dates
// parse as UTC, "today" is local) or DST shifts cannot skew the result.
func DaysBetween(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	f := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	t := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}

// ParseClock converts an HH:MM string to minutes from midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}
