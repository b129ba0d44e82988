// Package ledger maintains the recorded period history and the cycle model
// derived from it. Mutations are read-modify-write over the settings
// aggregate; derived lengths are recomputed from the full history on every
// change, never incrementally.
package ledger

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/mselene/cyclefast/internal/catalog"
	"github.com/mselene/cyclefast/internal/models"
)

var (
	// ErrFutureDate rejects log entries dated after today.
	ErrFutureDate = errors.New("date is in the future")
	// ErrNoMatchingStart means a period end was logged with no start on or
	// before it.
	ErrNoMatchingStart = errors.New("no period start on or before that date")
)

// Qualifying bounds for the derived statistics. Gaps and durations outside
// these are treated as logging noise and excluded from the averages.
const (
	minCycleGap  = 15 // days, exclusive
	maxCycleGap  = 60 // days, exclusive
	minPeriodLen = 1  // days, exclusive
	maxPeriodLen = 15 // days, exclusive
)

// LogPeriodStart records a new period beginning on date (YYYY-MM-DD). The
// entry is merged into the history (deduplicated by start date, newest first,
// capped to models.MaxHistoryEntries) and the average cycle length is
// recomputed. A snapshot of the active plan is attached for the logbook.
func LogPeriodStart(s *models.Settings, date string, now time.Time) error {
	if _, err := parseNotFuture(date, now); err != nil {
		return err
	}

	active := catalog.ActivePlan(*s)
	entry := models.CycleEntry{
		StartDate:    date,
		PlanSnapshot: &models.PlanSnapshot{ID: active.ID, Name: active.Name},
	}

	s.CycleHistory = merge(s.CycleHistory, entry)
	s.LastPeriodStart = s.CycleHistory[0].StartDate
	s.CycleLength = averageCycleLength(s.CycleHistory)
	return nil
}

// LogPeriodEnd attaches an end date to the most recent entry whose start is
// on or before date, overwriting any prior end, then recomputes the average
// period length.
func LogPeriodEnd(s *models.Settings, date string, now time.Time) error {
	if _, err := parseNotFuture(date, now); err != nil {
		return err
	}

	for i := range s.CycleHistory {
		if s.CycleHistory[i].StartDate <= date {
			end := date
			s.CycleHistory[i].EndDate = &end
			s.PeriodLength = averagePeriodLength(s.CycleHistory)
			return nil
		}
	}
	return ErrNoMatchingStart
}

// PeriodOngoing reports whether the newest history entry is still open,
// i.e. a period has been started but not ended.
func PeriodOngoing(s models.Settings) bool {
	return len(s.CycleHistory) > 0 && s.CycleHistory[0].Ongoing()
}

func parseNotFuture(date string, now time.Time) (time.Time, error) {
	day, err := models.ParseDate(date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD: %w", date, err)
	}
	if models.DaysBetween(models.DateOnly(now), day) > 0 {
		return time.Time{}, fmt.Errorf("%w: %s", ErrFutureDate, date)
	}
	return day, nil
}

// merge inserts the entry, deduplicates by exact start date, sorts newest
// first and caps the history. Re-logging a recorded start keeps the old
// entry's end date and snapshot where the new entry carries none, so a
// duplicate "log start" cannot erase an already-ended period.
func merge(history []models.CycleEntry, entry models.CycleEntry) []models.CycleEntry {
	merged := make([]models.CycleEntry, 0, len(history)+1)
	for _, e := range history {
		if e.StartDate != entry.StartDate {
			merged = append(merged, e)
			continue
		}
		if entry.EndDate == nil {
			entry.EndDate = e.EndDate
		}
		if entry.PlanSnapshot == nil {
			entry.PlanSnapshot = e.PlanSnapshot
		}
	}
	merged = append(merged, entry)

	// ISO dates sort lexicographically, so string comparison is enough.
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].StartDate > merged[j].StartDate
	})

	if len(merged) > models.MaxHistoryEntries {
		merged = merged[:models.MaxHistoryEntries]
	}
	return merged
}

// averageCycleLength is the rounded mean of gaps between consecutive start
// dates, outliers excluded. Defaults when fewer than two qualifying starts.
func averageCycleLength(history []models.CycleEntry) int {
	var gaps []int
	for i := 0; i+1 < len(history); i++ {
		newer, err1 := models.ParseDate(history[i].StartDate)
		older, err2 := models.ParseDate(history[i+1].StartDate)
		if err1 != nil || err2 != nil {
			continue
		}
		gap := models.DaysBetween(older, newer)
		if gap > minCycleGap && gap < maxCycleGap {
			gaps = append(gaps, gap)
		}
	}
	if len(gaps) == 0 {
		return models.DefaultCycleLength
	}
	return roundedMean(gaps)
}

// averagePeriodLength is the rounded mean of (end - start + 1) across ended
// entries, filtered to plausible durations.
func averagePeriodLength(history []models.CycleEntry) int {
	var durations []int
	for _, e := range history {
		if e.EndDate == nil {
			continue
		}
		start, err1 := models.ParseDate(e.StartDate)
		end, err2 := models.ParseDate(*e.EndDate)
		if err1 != nil || err2 != nil {
			continue
		}
		d := models.DaysBetween(start, end) + 1
		if d > minPeriodLen && d < maxPeriodLen {
			durations = append(durations, d)
		}
	}
	if len(durations) == 0 {
		return models.DefaultPeriodLength
	}
	return roundedMean(durations)
}

func roundedMean(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return int(float64(total)/float64(len(values)) + 0.5)
}
