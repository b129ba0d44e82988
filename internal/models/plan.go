package models

import (
	"encoding/json"
	"fmt"
)

// DefaultPlanID is the built-in plan every install ships with and the id
// selection reverts to when the active plan is deleted.
const DefaultPlanID = "hormonal-harmony"

// EditHorizonDays is the fixed canvas the rule editor normalizes against.
// Stored plans still stretch to the live cycle length through the END sentinel.
const EditHorizonDays = 28

// EndOfCycle marks a rule that runs through the end of whatever cycle length
// is in effect when the plan is evaluated. Serialized as the string "END".
const EndOfCycle DayEnd = -1

// DayEnd is either a literal 1-indexed cycle day or the EndOfCycle sentinel.
type DayEnd int

// IsEnd reports whether the bound is the open-ended sentinel.
func (e DayEnd) IsEnd() bool {
	return e == EndOfCycle
}

// Resolve substitutes the given cycle length for the sentinel.
func (e DayEnd) Resolve(cycleLength int) int {
	if e.IsEnd() {
		return cycleLength
	}
	return int(e)
}

func (e DayEnd) MarshalJSON() ([]byte, error) {
	if e.IsEnd() {
		return json.Marshal("END")
	}
	return json.Marshal(int(e))
}

func (e *DayEnd) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*e = DayEnd(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "END" {
			*e = EndOfCycle
			return nil
		}
		return fmt.Errorf("invalid day end %q", s)
	}
	return fmt.Errorf("invalid day end: %s", string(data))
}

// FastingRule maps a cycle-day range onto a fasting type. Within a plan,
// rules are ordered by DayStart, contiguous and non-overlapping; only the
// last rule may carry the EndOfCycle sentinel.
type FastingRule struct {
	DayStart    int    `json:"dayStart"`
	DayEnd      DayEnd `json:"dayEnd"`
	TypeID      string `json:"type"`
	Description string `json:"description,omitempty"`
}

// Contains reports whether the rule covers the given cycle day under the
// given cycle length.
func (r FastingRule) Contains(day, cycleLength int) bool {
	return day >= r.DayStart && day <= r.DayEnd.Resolve(cycleLength)
}

type Plan struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Rules       []FastingRule `json:"rules"`
}

// DefaultPlans returns the built-in plans. A fresh slice each call, same as
// BuiltInFastingTypes.
func DefaultPlans() []Plan {
	return []Plan{
		{
			ID:          DefaultPlanID,
			Name:        "Hormonal Harmony",
			Description: "Aligns fasting intensity with your menstrual cycle hormones.",
			Rules: []FastingRule{
				{
					DayStart:    1,
					DayEnd:      10,
					TypeID:      TypeStandard,
					Description: "Follicular phase: high resilience. Standard fasting allowed.",
				},
				{
					DayStart:    11,
					DayEnd:      15,
					TypeID:      TypeLimitHours,
					Description: "Ovulation: limit fasting stress.",
				},
				{
					DayStart:    16,
					DayEnd:      19,
					TypeID:      TypeStandard,
					Description: "Early luteal: resilience returns. Standard fasting allowed.",
				},
				{
					DayStart:    20,
					DayEnd:      EndOfCycle,
					TypeID:      TypeNoFasting,
					Description: "Late luteal: prepare for menstruation. No fasting recommended.",
				},
			},
		},
	}
}
