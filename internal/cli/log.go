package cli

import (
	"fmt"
	"time"

	"github.com/mselene/cyclefast/internal/ledger"
	"github.com/mselene/cyclefast/internal/models"
)

type LogCmd struct {
	Start LogStartCmd `cmd:"" help:"Log a period start."`
	End   LogEndCmd   `cmd:"" help:"Log a period end."`
}

type LogStartCmd struct {
	Date string `arg:"" help:"Start date (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *LogStartCmd) Run(ctx *Context) error {
	settings, err := ctx.loadSettings()
	if err != nil {
		return err
	}

	day, err := resolveDate(c.Date)
	if err != nil {
		return err
	}
	date := day.Format(models.DateLayout)

	if err := ledger.LogPeriodStart(&settings, date, time.Now()); err != nil {
		return err
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return err
	}

	fmt.Printf("Logged period start on %s.\n", date)
	fmt.Printf("Average cycle length is now %d days (%d cycles on record).\n",
		settings.CycleLength, len(settings.CycleHistory))
	return nil
}

type LogEndCmd struct {
	Date string `arg:"" help:"End date (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *LogEndCmd) Run(ctx *Context) error {
	settings, err := ctx.loadSettings()
	if err != nil {
		return err
	}

	day, err := resolveDate(c.Date)
	if err != nil {
		return err
	}
	date := day.Format(models.DateLayout)

	if err := ledger.LogPeriodEnd(&settings, date, time.Now()); err != nil {
		return err
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return err
	}

	fmt.Printf("Logged period end on %s.\n", date)
	fmt.Printf("Average period length is now %d days.\n", settings.PeriodLength)
	return nil
}
