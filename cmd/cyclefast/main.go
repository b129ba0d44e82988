package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/mselene/cyclefast/internal/cli"
	"github.com/mselene/cyclefast/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Store file path." type:"path" default:"~/.config/cyclefast/cyclefast.db"`

	Init     cli.InitCmd     `cmd:"" help:"Initialize cyclefast storage."`
	Tui      cli.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Status   cli.StatusCmd   `cmd:"" help:"Show the cycle day and fasting guidance for a date."`
	Log      cli.LogCmd      `cmd:"" help:"Log period starts and ends."`
	Calendar cli.CalendarCmd `cmd:"" help:"Show a month of cycle and fasting markers."`
	History  cli.HistoryCmd  `cmd:"" help:"Show the cycle history."`
	Plan     cli.PlanCmd     `cmd:"" help:"Manage fasting plans."`
	Type     cli.TypeCmd     `cmd:"" help:"Manage fasting types."`
	Export   cli.ExportCmd   `cmd:"" help:"Export settings to a JSON document."`
	Import   cli.ImportCmd   `cmd:"" help:"Import settings from an exported document."`
	Reset    cli.ResetCmd    `cmd:"" help:"Reset all data to defaults."`
	Backup   cli.BackupCmd   `cmd:"" help:"Manage store backups."`
	Doctor   cli.DoctorCmd   `cmd:"" help:"Run health checks on the store."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("cyclefast"),
		kong.Description("Cycle-aware intermittent fasting planner"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	// Determine storage type based on extension
	var store storage.Provider
	if len(CLI.Config) > 5 && CLI.Config[len(CLI.Config)-5:] == ".json" {
		store = storage.NewJSONStore(CLI.Config)
	} else {
		store = storage.NewSQLiteStore(CLI.Config)
	}

	appCtx := &cli.Context{Store: store}

	err := ctx.Run(appCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
