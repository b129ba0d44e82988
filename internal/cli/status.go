package cli

import (
	"fmt"

	"github.com/mselene/cyclefast/internal/engine"
)

type StatusCmd struct {
	Date string `arg:"" help:"Date to resolve (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *StatusCmd) Run(ctx *Context) error {
	settings, err := ctx.loadSettings()
	if err != nil {
		return err
	}

	on, err := resolveDate(c.Date)
	if err != nil {
		return err
	}

	status := engine.Status(settings, on)
	if status == nil {
		fmt.Println("No cycle history yet. Log your first period with 'cyclefast log start'.")
		return nil
	}

	fmt.Printf("%s — cycle day %d of %d (%s)\n",
		status.Date.Format("Mon, Jan 2 2006"), status.CycleDay, settings.CycleLength, status.PlanName)
	if status.IsPeriodDay {
		fmt.Println("Period day.")
	}
	fmt.Printf("\n%s\n%s\n", status.AdviceTitle, status.AdviceDetail)

	if status.Rule == nil {
		return nil
	}

	fmt.Printf("\nRule: %s\n", formatRule(*status.Rule))
	if status.TypeDef == nil {
		fmt.Printf("Fasting type %s is no longer defined; following the generic guidance above.\n", status.Rule.TypeID)
		return nil
	}

	if !settings.IsFastingEnabled {
		fmt.Println("Fasting is currently disabled in settings.")
		return nil
	}

	if len(status.Slots) == 0 {
		fmt.Println("No scheduled fasting.")
	} else {
		fmt.Println("Fasting windows:")
		for _, slot := range status.Slots {
			fmt.Printf("  %s\n", slot)
		}
		if status.TypeDef.WindowDays() > 1 {
			idx := engine.WindowDayIndex(*status.TypeDef, status.CycleDay, status.Rule.DayStart)
			fmt.Printf("Today is day %d of the %d-day window.\n", idx+1, status.TypeDef.WindowDays())
		}
	}

	return nil
}
