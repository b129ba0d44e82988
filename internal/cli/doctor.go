package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/mselene/cyclefast/internal/backup"
	"github.com/mselene/cyclefast/internal/catalog"
	"github.com/mselene/cyclefast/internal/engine"
	"github.com/mselene/cyclefast/internal/models"
	"github.com/mselene/cyclefast/internal/storage"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	storeReachable := false

	// Check 1: store reachable
	if err := checkStoreReachable(ctx); err != nil {
		fmt.Printf("❌ Store reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Store reachable: OK\n")
		storeReachable = true
	}

	// Check 2: schema sanity (SQLite stores only)
	if err := checkSchema(ctx); err != nil {
		fmt.Printf("❌ Schema: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Schema: OK\n")
	}

	// Check 3: backups present (warning only)
	if err := checkBackupsPresent(ctx); err != nil {
		fmt.Printf("⚠ Backups present: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Backups present: OK\n")
	}

	// Check 4: data validation (only if the store is reachable)
	if storeReachable {
		if err := checkValidation(ctx); err != nil {
			fmt.Printf("❌ Data validation: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Data validation: OK\n")
		}
	} else {
		fmt.Printf("⊘ Data validation: SKIPPED (store not reachable)\n")
	}

	// Check 5: no concurrent writer (warning only, the store assumes a
	// single writer)
	if err := checkConcurrentProcess(); err != nil {
		fmt.Printf("⚠ Single process: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Single process: OK\n")
	}

	// Check 6: clock/timezone sanity
	if err := checkClockTimezone(); err != nil {
		fmt.Printf("❌ Clock/timezone: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock/timezone: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkStoreReachable(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load store: %w", err)
	}

	if sqliteStore, ok := ctx.Store.(*storage.SQLiteStore); ok {
		db := sqliteStore.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}

	return nil
}

func checkSchema(ctx *Context) error {
	sqliteStore, ok := ctx.Store.(*storage.SQLiteStore)
	if !ok {
		// JSON stores have no schema to check.
		return nil
	}

	db := sqliteStore.GetDB()
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	for _, table := range []string{"settings", "cycle_history", "plans", "fasting_types"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			return fmt.Errorf("missing table %s: %w", table, err)
		}
	}

	return nil
}

func checkBackupsPresent(ctx *Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'cyclefast backup create'")
	}

	return nil
}

func checkValidation(ctx *Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if settings.CycleLength < 1 {
		return fmt.Errorf("cycle length %d is not positive", settings.CycleLength)
	}
	if settings.PeriodLength < 1 {
		return fmt.Errorf("period length %d is not positive", settings.PeriodLength)
	}

	// History entries must be unique by start date and sorted newest first.
	seen := make(map[string]bool)
	prev := ""
	for _, entry := range settings.CycleHistory {
		if _, err := models.ParseDate(entry.StartDate); err != nil {
			return fmt.Errorf("invalid history start date %q: %w", entry.StartDate, err)
		}
		if seen[entry.StartDate] {
			return fmt.Errorf("duplicate history entry for %s", entry.StartDate)
		}
		seen[entry.StartDate] = true
		if prev != "" && entry.StartDate > prev {
			return fmt.Errorf("history is not sorted newest first at %s", entry.StartDate)
		}
		prev = entry.StartDate
	}

	// The selection must resolve; stale rule type references are tolerated at
	// render time but worth surfacing here.
	if _, ok := catalog.FindPlan(settings, settings.SelectedPlanID); !ok {
		return fmt.Errorf("selected plan %s does not exist", settings.SelectedPlanID)
	}
	for _, plan := range catalog.AllPlans(settings) {
		for _, rule := range plan.Rules {
			if _, ok := catalog.ResolveFastingType(settings, rule.TypeID); !ok {
				return fmt.Errorf("plan %s references unknown fasting type %s", plan.ID, rule.TypeID)
			}
		}
	}

	for _, def := range settings.CustomFastingTypes {
		for _, slot := range def.Slots {
			if !engine.SlotValid(slot) {
				return fmt.Errorf("fasting type %s has an invalid slot (%s to %s)",
					def.ID, slot.StartTime, slot.EndTime)
			}
		}
	}

	return nil
}

// checkConcurrentProcess scans the process table for another running
// cyclefast. Two writers on the same store file can clobber each other.
func checkConcurrentProcess() error {
	procs, err := ps.Processes()
	if err != nil {
		return fmt.Errorf("failed to list processes: %w", err)
	}

	self := os.Getpid()
	for _, p := range procs {
		if p.Pid() == self {
			continue
		}
		name := strings.TrimSuffix(p.Executable(), ".exe")
		if name == "cyclefast" {
			return fmt.Errorf("another cyclefast process is running (pid %d)", p.Pid())
		}
	}

	return nil
}

func checkClockTimezone() error {
	now := time.Now()

	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	_, offset := now.Zone()
	if offset == 0 && now.Location() == time.UTC {
		// Might be intentional, so just note it.
		fmt.Printf("   Note: timezone is UTC\n")
	}

	return nil
}
