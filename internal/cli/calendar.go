package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/mselene/cyclefast/internal/catalog"
	"github.com/mselene/cyclefast/internal/engine"
	"github.com/mselene/cyclefast/internal/models"
)

type CalendarCmd struct {
	Month string `arg:"" optional:"" help:"Month to show (YYYY-MM, default current)."`
}

func (c *CalendarCmd) Run(ctx *Context) error {
	settings, err := ctx.loadSettings()
	if err != nil {
		return err
	}

	month := models.DateOnly(time.Now())
	if c.Month != "" {
		month, err = time.Parse("2006-01", c.Month)
		if err != nil {
			return fmt.Errorf("invalid month format, use YYYY-MM: %w", err)
		}
	}
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())

	fmt.Printf("%s\n\n", first.Format("January 2006"))
	fmt.Println("Su Mo Tu We Th Fr Sa")

	// Leading blanks up to the first weekday.
	line := strings.Repeat("   ", int(first.Weekday()))

	for day := first; day.Month() == first.Month(); day = day.AddDate(0, 0, 1) {
		marker := " "
		if status := engine.Status(settings, day); status != nil {
			switch {
			case status.IsPeriodDay:
				marker = "●"
			case status.Rule != nil && status.Rule.TypeID == models.TypeNoFasting:
				marker = "/"
			case status.Rule != nil && len(status.Slots) > 0:
				marker = "*"
			}
		}
		line += fmt.Sprintf("%2d%s", day.Day(), marker)
		if day.Weekday() == time.Saturday {
			fmt.Println(strings.TrimRight(line, " "))
			line = ""
		}
	}
	if line != "" {
		fmt.Println(strings.TrimRight(line, " "))
	}

	fmt.Println("\n● period   * fasting scheduled   / no fasting")

	// Legend of the active plan's fasting types.
	plan := catalog.ActivePlan(settings)
	seen := map[string]bool{}
	for _, rule := range plan.Rules {
		if seen[rule.TypeID] {
			continue
		}
		seen[rule.TypeID] = true
		if def, ok := catalog.ResolveFastingType(settings, rule.TypeID); ok {
			fmt.Printf("%s: %s\n", def.Name, def.Description)
		}
	}

	return nil
}
