// Package editor maintains the structural invariants of a plan's rule list
// while it is being edited: ranges stay contiguous from day 1, clamped to the
// editing horizon, and every non-terminal range's duration is a multiple of
// its fasting type's step size. All functions are pure; they return the new
// rule list and never touch storage or rendering.
package editor

import (
	"errors"
	"math"

	"github.com/mselene/cyclefast/internal/models"
)

// ErrNoSpace is returned when the horizon has no room for another rule and
// the last rule has no slack to give up.
var ErrNoSpace = errors.New("no room for another rule within the editing horizon")

// TypeLookup resolves a fasting type id; the editor only needs the window
// duration, so a miss falls back to step size 1.
type TypeLookup func(id string) (models.FastingTypeDef, bool)

// StepSize is the granularity a rule of the given type must be sized in:
// one step per window day, never less than one.
func StepSize(lookup TypeLookup, typeID string) int {
	def, ok := lookup(typeID)
	if !ok {
		return 1
	}
	step := int(math.Round(float64(def.WindowHours) / 24))
	if step < 1 {
		step = 1
	}
	return step
}

// Normalize repairs a rule list after any structural edit. Rule i's start is
// forced to one past rule i-1's resolved end (the first rule starts at day 1),
// each requested end is clamped into the horizon while reserving one day for
// every rule still to come, and the resulting duration snaps to the nearest
// positive multiple of the rule's step size. A terminal EndOfCycle sentinel
// is preserved as-is; a sentinel anywhere else (possible via import) is
// resolved against the horizon and made concrete. Running Normalize twice is
// the same as running it once.
func Normalize(rules []models.FastingRule, horizon int, lookup TypeLookup) []models.FastingRule {
	if horizon < 1 {
		horizon = models.EditHorizonDays
	}
	out := make([]models.FastingRule, len(rules))
	copy(out, rules)

	dayStart := 1
	for i := range out {
		out[i].DayStart = dayStart

		if i == len(out)-1 && out[i].DayEnd.IsEnd() {
			break
		}

		step := StepSize(lookup, out[i].TypeID)
		remaining := len(out) - i - 1
		maxEnd := horizon - remaining

		requested := out[i].DayEnd.Resolve(horizon)
		if requested < dayStart {
			requested = dayStart
		}
		if requested > maxEnd {
			requested = maxEnd
		}

		duration := snapDuration(requested-dayStart+1, step)
		if avail := maxEnd - dayStart + 1; duration > avail {
			duration = avail / step * step
			if duration < step {
				// No consistent size fits; force the minimum valid duration.
				duration = step
			}
		}

		out[i].DayEnd = models.DayEnd(dayStart + duration - 1)
		dayStart += duration
	}
	return out
}

// snapDuration rounds to the nearest positive multiple of step.
func snapDuration(duration, step int) int {
	snapped := int(math.Round(float64(duration)/float64(step))) * step
	if snapped < step {
		snapped = step
	}
	return snapped
}

// SetEnd applies a direct edit of rule i's end day, snapping the boundary and
// rippling the change through the rest of the list. Editing the end of a rule
// holding the sentinel replaces the sentinel with the literal day.
func SetEnd(rules []models.FastingRule, i, day, horizon int, lookup TypeLookup) []models.FastingRule {
	if i < 0 || i >= len(rules) {
		return Normalize(rules, horizon, lookup)
	}
	out := make([]models.FastingRule, len(rules))
	copy(out, rules)
	out[i].DayEnd = models.DayEnd(day)
	return Normalize(out, horizon, lookup)
}

// SetStart translates "change the start of rule i" into "change the end of
// rule i-1", since starts are derived. The first rule is pinned at day 1.
func SetStart(rules []models.FastingRule, i, day, horizon int, lookup TypeLookup) []models.FastingRule {
	if i <= 0 || i >= len(rules) {
		return Normalize(rules, horizon, lookup)
	}
	return SetEnd(rules, i-1, day-1, horizon, lookup)
}

// SetType changes rule i's fasting type and re-normalizes so the range snaps
// to the new type's step size.
func SetType(rules []models.FastingRule, i int, typeID string, horizon int, lookup TypeLookup) []models.FastingRule {
	if i < 0 || i >= len(rules) {
		return Normalize(rules, horizon, lookup)
	}
	out := make([]models.FastingRule, len(rules))
	copy(out, rules)
	out[i].TypeID = typeID
	return Normalize(out, horizon, lookup)
}

// Add appends a default rule starting the day after the current last rule's
// resolved end. When the horizon is full, the last rule gives up exactly one
// step if it has more than one step of slack; otherwise the add fails with
// ErrNoSpace and nothing changes.
func Add(rules []models.FastingRule, horizon int, lookup TypeLookup) ([]models.FastingRule, error) {
	if horizon < 1 {
		horizon = models.EditHorizonDays
	}
	if len(rules) == 0 {
		return Normalize([]models.FastingRule{
			{DayStart: 1, DayEnd: 5, TypeID: models.TypeStandard},
		}, horizon, lookup), nil
	}

	out := Normalize(rules, horizon, lookup)
	last := len(out) - 1
	lastEnd := out[last].DayEnd.Resolve(horizon)
	start := lastEnd + 1

	if start > horizon {
		step := StepSize(lookup, out[last].TypeID)
		span := lastEnd - out[last].DayStart + 1
		if span <= step {
			return nil, ErrNoSpace
		}
		out[last].DayEnd = models.DayEnd(lastEnd - step)
		start = lastEnd - step + 1
	}

	end := start + 4
	if end > horizon {
		end = horizon
	}
	out = append(out, models.FastingRule{
		DayStart: start,
		DayEnd:   models.DayEnd(end),
		TypeID:   models.TypeStandard,
	})
	return Normalize(out, horizon, lookup), nil
}

// Remove deletes rule i and closes the gap.
func Remove(rules []models.FastingRule, i, horizon int, lookup TypeLookup) []models.FastingRule {
	if i < 0 || i >= len(rules) {
		return Normalize(rules, horizon, lookup)
	}
	out := make([]models.FastingRule, 0, len(rules)-1)
	out = append(out, rules[:i]...)
	out = append(out, rules[i+1:]...)
	return Normalize(out, horizon, lookup)
}

// ToggleEnd flips the terminal rule between the EndOfCycle sentinel and a
// concrete end. Turning the sentinel off substitutes the horizon's last day
// as the placeholder.
func ToggleEnd(rules []models.FastingRule, horizon int, lookup TypeLookup) []models.FastingRule {
	if len(rules) == 0 {
		return rules
	}
	if horizon < 1 {
		horizon = models.EditHorizonDays
	}
	out := make([]models.FastingRule, len(rules))
	copy(out, rules)
	last := len(out) - 1
	if out[last].DayEnd.IsEnd() {
		out[last].DayEnd = models.DayEnd(horizon)
	} else {
		out[last].DayEnd = models.EndOfCycle
	}
	return Normalize(out, horizon, lookup)
}
