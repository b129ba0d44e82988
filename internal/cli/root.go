package cli

import (
	"fmt"
	"time"

	"github.com/mselene/cyclefast/internal/catalog"
	"github.com/mselene/cyclefast/internal/editor"
	"github.com/mselene/cyclefast/internal/models"
	"github.com/mselene/cyclefast/internal/storage"
)

type Context struct {
	Store storage.Provider
}

// loadSettings loads the store and returns the aggregate.
func (c *Context) loadSettings() (models.Settings, error) {
	if err := c.Store.Load(); err != nil {
		return models.Settings{}, err
	}
	return c.Store.GetSettings()
}

// resolveDate parses a date argument, accepting "today" as a shortcut.
func resolveDate(arg string) (time.Time, error) {
	if arg == "" || arg == "today" {
		return models.DateOnly(time.Now()), nil
	}
	d, err := models.ParseDate(arg)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format, use YYYY-MM-DD or 'today': %w", err)
	}
	return d, nil
}

// typeLookup adapts the catalog resolution into the editor's lookup shape.
func typeLookup(s models.Settings) editor.TypeLookup {
	return func(id string) (models.FastingTypeDef, bool) {
		return catalog.ResolveFastingType(s, id)
	}
}

// formatRule renders a rule range for listings, keeping the END sentinel
// visible since it resolves dynamically.
func formatRule(r models.FastingRule) string {
	if r.DayEnd.IsEnd() {
		return fmt.Sprintf("days %d–END  %s", r.DayStart, r.TypeID)
	}
	return fmt.Sprintf("days %d–%d  %s", r.DayStart, int(r.DayEnd), r.TypeID)
}
