package cli

import (
	"fmt"

	"github.com/mselene/cyclefast/internal/models"
)

type HistoryCmd struct{}

func (c *HistoryCmd) Run(ctx *Context) error {
	settings, err := ctx.loadSettings()
	if err != nil {
		return err
	}

	if len(settings.CycleHistory) == 0 {
		fmt.Println("No history yet. Your cycles will appear here once logged.")
		return nil
	}

	for _, entry := range settings.CycleHistory {
		status := "ongoing"
		duration := ""
		if entry.EndDate != nil {
			status = "completed"
			start, err1 := models.ParseDate(entry.StartDate)
			end, err2 := models.ParseDate(*entry.EndDate)
			if err1 == nil && err2 == nil {
				duration = fmt.Sprintf(", %d days", models.DaysBetween(start, end)+1)
			}
		}

		planName := "unknown plan"
		if entry.PlanSnapshot != nil {
			planName = entry.PlanSnapshot.Name
		}

		fmt.Printf("%s  [%s%s]  plan: %s\n", entry.StartDate, status, duration, planName)
	}

	return nil
}
