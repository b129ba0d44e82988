package cli

import (
	"fmt"

	"github.com/mselene/cyclefast/internal/storage"
)

type ExportCmd struct {
	Path string `arg:"" help:"Destination file for the exported JSON document."`
}

func (c *ExportCmd) Run(ctx *Context) error {
	settings, err := ctx.loadSettings()
	if err != nil {
		return err
	}

	if err := storage.Export(settings, c.Path); err != nil {
		return err
	}
	fmt.Printf("Exported settings to %s.\n", c.Path)
	return nil
}

type ImportCmd struct {
	Path string `arg:"" help:"Exported JSON document to import."`
}

func (c *ImportCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	settings, err := storage.Import(c.Path)
	if err != nil {
		return err
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return err
	}

	fmt.Printf("Imported settings from %s.\n", c.Path)
	fmt.Printf("Cycle length %d, %d history entries, %d custom plan(s).\n",
		settings.CycleLength, len(settings.CycleHistory), len(settings.CustomPlans))
	return nil
}
