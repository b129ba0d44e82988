package cli

import (
	"fmt"

	"github.com/mselene/cyclefast/internal/catalog"
)

type TypeCmd struct {
	List   TypeListCmd   `cmd:"" help:"List all fasting types." default:"1"`
	Add    TypeAddCmd    `cmd:"" help:"Create a custom fasting type."`
	Rename TypeRenameCmd `cmd:"" help:"Rename a custom fasting type."`
	Delete TypeDeleteCmd `cmd:"" help:"Delete a custom fasting type."`
}

type TypeListCmd struct{}

func (c *TypeListCmd) Run(ctx *Context) error {
	settings, err := ctx.loadSettings()
	if err != nil {
		return err
	}

	for _, def := range catalog.AllFastingTypes(settings) {
		kind := "custom"
		if def.IsSystem {
			kind = "system"
		}
		fmt.Printf("%-40s %-20s %s (%dh window)\n", def.ID, def.Name, kind, def.WindowHours)
		if def.Description != "" {
			fmt.Printf("  %s\n", def.Description)
		}
		for _, slot := range def.Slots {
			fmt.Printf("  fast day %d %s to day %d %s\n",
				slot.StartDayOffset+1, slot.StartTime, slot.EndDayOffset+1, slot.EndTime)
		}
	}
	return nil
}

type TypeAddCmd struct {
	Name  string `arg:"" help:"Fasting type name."`
	Hours int    `arg:"" help:"Daily fasting hours (1-23)."`
}

func (c *TypeAddCmd) Run(ctx *Context) error {
	settings, err := ctx.loadSettings()
	if err != nil {
		return err
	}

	def, err := catalog.AddFastingType(&settings, c.Name, c.Hours)
	if err != nil {
		return err
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return err
	}

	fmt.Printf("Created fasting type %s (%s): %s.\n", def.Name, def.ID, def.Description)
	return nil
}

type TypeRenameCmd struct {
	ID   string `arg:"" help:"Fasting type id to rename."`
	Name string `arg:"" help:"New name."`
}

func (c *TypeRenameCmd) Run(ctx *Context) error {
	settings, err := ctx.loadSettings()
	if err != nil {
		return err
	}

	def, ok := catalog.ResolveFastingType(settings, c.ID)
	if !ok {
		return fmt.Errorf("fasting type not found: %s", c.ID)
	}
	def.Name = c.Name
	if err := catalog.UpdateFastingType(&settings, def); err != nil {
		return err
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return err
	}

	fmt.Printf("Renamed fasting type %s to %s.\n", c.ID, c.Name)
	return nil
}

type TypeDeleteCmd struct {
	ID string `arg:"" help:"Fasting type id to delete."`
}

func (c *TypeDeleteCmd) Run(ctx *Context) error {
	settings, err := ctx.loadSettings()
	if err != nil {
		return err
	}

	if err := catalog.DeleteFastingType(&settings, c.ID); err != nil {
		return err
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return err
	}

	fmt.Printf("Deleted fasting type %s.\n", c.ID)
	fmt.Println("Plan rules still referencing it will show generic guidance until reassigned.")
	return nil
}
