package cli

import (
	"fmt"

	"github.com/mselene/cyclefast/internal/catalog"
	"github.com/mselene/cyclefast/internal/editor"
	"github.com/mselene/cyclefast/internal/models"
)

type RuleCmd struct {
	Add       RuleAddCmd       `cmd:"" help:"Append a rule to a plan."`
	Remove    RuleRemoveCmd    `cmd:"" help:"Remove a rule from a plan."`
	SetEnd    RuleSetEndCmd    `cmd:"" name:"set-end" help:"Set the end day of a rule."`
	SetStart  RuleSetStartCmd  `cmd:"" name:"set-start" help:"Set the start day of a rule."`
	SetType   RuleSetTypeCmd   `cmd:"" name:"set-type" help:"Change a rule's fasting type."`
	ToggleEnd RuleToggleEndCmd `cmd:"" name:"toggle-end" help:"Toggle the last rule between a fixed end day and end of cycle."`
}

// ruleIndex converts a 1-based rule position to a slice index.
func ruleIndex(plan models.Plan, position int) (int, error) {
	if position < 1 || position > len(plan.Rules) {
		return 0, fmt.Errorf("rule %d out of range, plan has %d rule(s)", position, len(plan.Rules))
	}
	return position - 1, nil
}

type RuleAddCmd struct {
	Plan string `arg:"" help:"Custom plan id."`
}

func (c *RuleAddCmd) Run(ctx *Context) error {
	settings, err := ctx.loadSettings()
	if err != nil {
		return err
	}
	plan, err := customPlan(settings, c.Plan)
	if err != nil {
		return err
	}

	rules, err := editor.Add(plan.Rules, models.EditHorizonDays, typeLookup(settings))
	if err != nil {
		return err
	}
	return saveRules(ctx, settings, plan, rules)
}

type RuleRemoveCmd struct {
	Plan string `arg:"" help:"Custom plan id."`
	Rule int    `arg:"" help:"Rule position (1-based)."`
}

func (c *RuleRemoveCmd) Run(ctx *Context) error {
	settings, err := ctx.loadSettings()
	if err != nil {
		return err
	}
	plan, err := customPlan(settings, c.Plan)
	if err != nil {
		return err
	}
	i, err := ruleIndex(plan, c.Rule)
	if err != nil {
		return err
	}
	if len(plan.Rules) == 1 {
		return fmt.Errorf("cannot remove the last rule, plans need at least one")
	}

	rules := editor.Remove(plan.Rules, i, models.EditHorizonDays, typeLookup(settings))
	return saveRules(ctx, settings, plan, rules)
}

type RuleSetEndCmd struct {
	Plan string `arg:"" help:"Custom plan id."`
	Rule int    `arg:"" help:"Rule position (1-based)."`
	Day  int    `arg:"" help:"New end day."`
}

func (c *RuleSetEndCmd) Run(ctx *Context) error {
	settings, err := ctx.loadSettings()
	if err != nil {
		return err
	}
	plan, err := customPlan(settings, c.Plan)
	if err != nil {
		return err
	}
	i, err := ruleIndex(plan, c.Rule)
	if err != nil {
		return err
	}

	rules := editor.SetEnd(plan.Rules, i, c.Day, models.EditHorizonDays, typeLookup(settings))
	return saveRules(ctx, settings, plan, rules)
}

type RuleSetStartCmd struct {
	Plan string `arg:"" help:"Custom plan id."`
	Rule int    `arg:"" help:"Rule position (1-based)."`
	Day  int    `arg:"" help:"New start day."`
}

func (c *RuleSetStartCmd) Run(ctx *Context) error {
	settings, err := ctx.loadSettings()
	if err != nil {
		return err
	}
	plan, err := customPlan(settings, c.Plan)
	if err != nil {
		return err
	}
	i, err := ruleIndex(plan, c.Rule)
	if err != nil {
		return err
	}

	rules := editor.SetStart(plan.Rules, i, c.Day, models.EditHorizonDays, typeLookup(settings))
	return saveRules(ctx, settings, plan, rules)
}

type RuleSetTypeCmd struct {
	Plan string `arg:"" help:"Custom plan id."`
	Rule int    `arg:"" help:"Rule position (1-based)."`
	Type string `arg:"" help:"Fasting type id."`
}

func (c *RuleSetTypeCmd) Run(ctx *Context) error {
	settings, err := ctx.loadSettings()
	if err != nil {
		return err
	}
	plan, err := customPlan(settings, c.Plan)
	if err != nil {
		return err
	}
	i, err := ruleIndex(plan, c.Rule)
	if err != nil {
		return err
	}
	if _, ok := catalog.ResolveFastingType(settings, c.Type); !ok {
		return fmt.Errorf("fasting type not found: %s", c.Type)
	}

	rules := editor.SetType(plan.Rules, i, c.Type, models.EditHorizonDays, typeLookup(settings))
	return saveRules(ctx, settings, plan, rules)
}

type RuleToggleEndCmd struct {
	Plan string `arg:"" help:"Custom plan id."`
}

func (c *RuleToggleEndCmd) Run(ctx *Context) error {
	settings, err := ctx.loadSettings()
	if err != nil {
		return err
	}
	plan, err := customPlan(settings, c.Plan)
	if err != nil {
		return err
	}

	rules := editor.ToggleEnd(plan.Rules, models.EditHorizonDays, typeLookup(settings))
	return saveRules(ctx, settings, plan, rules)
}
