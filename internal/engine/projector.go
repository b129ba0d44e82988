package engine

import (
	"fmt"

	"github.com/mselene/cyclefast/internal/models"
)

// WindowDayIndex identifies which day of a (possibly multi-day) recurring
// window the current cycle day corresponds to: 0 for the window's first day.
// ruleStart is the cycle day the active rule began on, so daysIntoRule is
// never negative while the rule is active.
func WindowDayIndex(def models.FastingTypeDef, cycleDay, ruleStart int) int {
	daysIntoRule := cycleDay - ruleStart
	if daysIntoRule < 0 {
		daysIntoRule = 0
	}
	return daysIntoRule % def.WindowDays()
}

// ProjectSlots renders the fasting slots of a type as display strings.
// Multi-day windows carry "Day N" labels (1-indexed day offsets); single-day
// windows show only the clock range. An empty result means no scheduled
// fasting.
func ProjectSlots(def models.FastingTypeDef, cycleDay, ruleStart int) []string {
	if len(def.Slots) == 0 {
		return nil
	}

	multiDay := def.WindowDays() > 1
	out := make([]string, 0, len(def.Slots))
	for _, slot := range def.Slots {
		if multiDay {
			out = append(out, fmt.Sprintf("Day %d %s – Day %d %s",
				slot.StartDayOffset+1, slot.StartTime, slot.EndDayOffset+1, slot.EndTime))
		} else {
			out = append(out, fmt.Sprintf("%s – %s", slot.StartTime, slot.EndTime))
		}
	}
	return out
}

// SlotValid checks the slot invariant: the end instant is strictly after the
// start instant on the continuous window timeline.
func SlotValid(slot models.FastingSlot) bool {
	start, err := models.ParseClock(slot.StartTime)
	if err != nil {
		return false
	}
	end, err := models.ParseClock(slot.EndTime)
	if err != nil {
		return false
	}
	return slot.EndDayOffset*24*60+end > slot.StartDayOffset*24*60+start
}
