// Package engine is the pure cycle-to-schedule resolution core: given the
// settings aggregate and a calendar date it derives the cycle day, the active
// rule, the fasting type in effect and the projected fasting windows. It
// never mutates state and recomputes everything from the aggregate on each
// call.
package engine

import (
	"time"

	"github.com/mselene/cyclefast/internal/catalog"
	"github.com/mselene/cyclefast/internal/models"
)

// CycleDay maps a day difference since the last period start onto a
// 1-indexed cycle day in [1, cycleLength]. Works for negative differences
// too: the adjustment below gives the mathematical modulus.
func CycleDay(daysSinceStart, cycleLength int) int {
	if cycleLength < 1 {
		cycleLength = models.DefaultCycleLength
	}
	day := daysSinceStart%cycleLength + 1
	if day <= 0 {
		day += cycleLength
	}
	return day
}

// MatchRule returns the first rule covering the cycle day, or nil when no
// rule matches. Normalized plans cannot overlap, but first-match-wins is the
// contract so hand-edited or imported plans stay deterministic.
func MatchRule(rules []models.FastingRule, day, cycleLength int) *models.FastingRule {
	for i := range rules {
		if rules[i].Contains(day, cycleLength) {
			return &rules[i]
		}
	}
	return nil
}

// DayStatus is everything a renderer needs for one calendar date.
type DayStatus struct {
	Date         time.Time
	CycleDay     int
	IsPeriodDay  bool
	PlanName     string
	Rule         *models.FastingRule
	TypeDef      *models.FastingTypeDef // nil on lookup miss (stale type id)
	Slots        []string               // projected fasting windows, empty means no scheduled fasting
	AdviceTitle  string
	AdviceDetail string
}

// Status resolves the full day status for a date. Returns nil when there is
// no cycle history yet; that is the uninitialized signal, not an error.
func Status(s models.Settings, on time.Time) *DayStatus {
	if len(s.CycleHistory) == 0 || s.CycleHistory[0].StartDate == "" {
		return nil
	}
	start, err := models.ParseDate(s.CycleHistory[0].StartDate)
	if err != nil {
		return nil
	}

	day := CycleDay(models.DaysBetween(start, on), s.CycleLength)
	plan := catalog.ActivePlan(s)
	st := &DayStatus{
		Date:        models.DateOnly(on),
		CycleDay:    day,
		IsPeriodDay: day >= 1 && day <= s.PeriodLength,
		PlanName:    plan.Name,
		Rule:        MatchRule(plan.Rules, day, s.CycleLength),
	}

	if st.Rule != nil {
		if def, ok := catalog.ResolveFastingType(s, st.Rule.TypeID); ok {
			st.TypeDef = &def
			st.Slots = ProjectSlots(def, day, st.Rule.DayStart)
		}
	}

	st.AdviceTitle, st.AdviceDetail = advice(s, st.Rule, st.TypeDef)
	return st
}

// advice maps the active rule onto the dashboard guidance strings. A type
// lookup miss degrades to the generic "Flow" label rather than an error.
func advice(s models.Settings, rule *models.FastingRule, def *models.FastingTypeDef) (string, string) {
	if rule == nil {
		return "Rest", "No specific rule for today."
	}
	switch rule.TypeID {
	case models.TypeNoFasting:
		return "Nourish", "Focus on nutrient-dense foods. No fasting recommended."
	case models.TypeLimitHours:
		return "Gentle Fast", "Keep the fast short today: stop eating at 20:00, eat again at 08:00."
	case models.TypeStandard:
		return "Power Fast", "Standard fasting window: stop eating at " +
			s.FastingWindowStart + ", eat again at " + s.FastingWindowEnd + "."
	default:
		detail := rule.Description
		if def != nil && def.Description != "" {
			detail = def.Description
		}
		return "Flow", detail
	}
}
