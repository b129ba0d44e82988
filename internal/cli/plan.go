package cli

import (
	"fmt"

	"github.com/mselene/cyclefast/internal/catalog"
	"github.com/mselene/cyclefast/internal/editor"
	"github.com/mselene/cyclefast/internal/models"
)

type PlanCmd struct {
	List   PlanListCmd   `cmd:"" help:"List all plans." default:"1"`
	Show   PlanShowCmd   `cmd:"" help:"Show a plan's rules."`
	Select PlanSelectCmd `cmd:"" help:"Select the active plan."`
	Add    PlanAddCmd    `cmd:"" help:"Create a new custom plan."`
	Delete PlanDeleteCmd `cmd:"" help:"Delete a custom plan."`
	Rename PlanRenameCmd `cmd:"" help:"Rename a custom plan."`
	Rule   RuleCmd       `cmd:"" help:"Edit a custom plan's rules."`
}

type PlanListCmd struct{}

func (c *PlanListCmd) Run(ctx *Context) error {
	settings, err := ctx.loadSettings()
	if err != nil {
		return err
	}

	for _, plan := range catalog.AllPlans(settings) {
		active := " "
		if plan.ID == settings.SelectedPlanID {
			active = "*"
		}
		fmt.Printf("%s %-40s %s\n", active, plan.ID, plan.Name)
	}
	return nil
}

type PlanShowCmd struct {
	ID string `arg:"" optional:"" help:"Plan id (defaults to the active plan)."`
}

func (c *PlanShowCmd) Run(ctx *Context) error {
	settings, err := ctx.loadSettings()
	if err != nil {
		return err
	}

	plan := catalog.ActivePlan(settings)
	if c.ID != "" {
		var ok bool
		plan, ok = catalog.FindPlan(settings, c.ID)
		if !ok {
			return fmt.Errorf("plan not found: %s", c.ID)
		}
	}

	fmt.Printf("%s (%s)\n", plan.Name, plan.ID)
	if plan.Description != "" {
		fmt.Println(plan.Description)
	}
	fmt.Println()
	for i, rule := range plan.Rules {
		name := rule.TypeID
		if def, ok := catalog.ResolveFastingType(settings, rule.TypeID); ok {
			name = def.Name
		}
		fmt.Printf("%d. %s  (%s)\n", i+1, formatRule(rule), name)
		if rule.Description != "" {
			fmt.Printf("   %s\n", rule.Description)
		}
	}
	return nil
}

type PlanSelectCmd struct {
	ID string `arg:"" help:"Plan id to activate."`
}

func (c *PlanSelectCmd) Run(ctx *Context) error {
	settings, err := ctx.loadSettings()
	if err != nil {
		return err
	}

	if err := catalog.SelectPlan(&settings, c.ID); err != nil {
		return err
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return err
	}

	fmt.Printf("Active plan is now %s.\n", catalog.ActivePlan(settings).Name)
	return nil
}

type PlanAddCmd struct {
	Name        string `arg:"" help:"Plan name."`
	Description string `help:"Plan description." default:""`
}

func (c *PlanAddCmd) Run(ctx *Context) error {
	settings, err := ctx.loadSettings()
	if err != nil {
		return err
	}

	// New plans start with a single full-cycle rule; build from there with
	// 'plan rule add'.
	rules := []models.FastingRule{
		{DayStart: 1, DayEnd: models.EndOfCycle, TypeID: models.TypeStandard},
	}
	plan, err := catalog.AddPlan(&settings, c.Name, c.Description, rules)
	if err != nil {
		return err
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return err
	}

	fmt.Printf("Created plan %s (%s).\n", plan.Name, plan.ID)
	return nil
}

type PlanDeleteCmd struct {
	ID string `arg:"" help:"Plan id to delete."`
}

func (c *PlanDeleteCmd) Run(ctx *Context) error {
	settings, err := ctx.loadSettings()
	if err != nil {
		return err
	}

	wasActive := settings.SelectedPlanID == c.ID
	if err := catalog.DeletePlan(&settings, c.ID); err != nil {
		return err
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return err
	}

	fmt.Printf("Deleted plan %s.\n", c.ID)
	if wasActive {
		fmt.Printf("Selection reverted to %s.\n", models.DefaultPlanID)
	}
	return nil
}

type PlanRenameCmd struct {
	ID   string `arg:"" help:"Plan id to rename."`
	Name string `arg:"" help:"New plan name."`
}

func (c *PlanRenameCmd) Run(ctx *Context) error {
	settings, err := ctx.loadSettings()
	if err != nil {
		return err
	}

	plan, ok := catalog.FindPlan(settings, c.ID)
	if !ok {
		return fmt.Errorf("plan not found: %s", c.ID)
	}
	plan.Name = c.Name
	if err := catalog.UpdatePlan(&settings, plan); err != nil {
		return err
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return err
	}

	fmt.Printf("Renamed plan %s to %q.\n", c.ID, c.Name)
	return nil
}

// customPlan fetches an editable plan, rejecting built-ins up front so rule
// edits fail before any normalization runs.
func customPlan(settings models.Settings, id string) (models.Plan, error) {
	for _, p := range settings.CustomPlans {
		if p.ID == id {
			return p, nil
		}
	}
	if _, ok := catalog.FindPlan(settings, id); ok {
		return models.Plan{}, fmt.Errorf("plan %s is built in and cannot be edited", id)
	}
	return models.Plan{}, fmt.Errorf("plan not found: %s", id)
}

// saveRules normalizes and persists an edited rule list.
func saveRules(ctx *Context, settings models.Settings, plan models.Plan, rules []models.FastingRule) error {
	plan.Rules = editor.Normalize(rules, models.EditHorizonDays, typeLookup(settings))
	if err := catalog.UpdatePlan(&settings, plan); err != nil {
		return err
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return err
	}

	fmt.Printf("%s now has %d rule(s):\n", plan.Name, len(plan.Rules))
	for i, rule := range plan.Rules {
		fmt.Printf("%d. %s\n", i+1, formatRule(rule))
	}
	return nil
}
