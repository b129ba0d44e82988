// Package catalog holds the plan and fasting-type collections: id resolution
// with built-in fallback, and the CRUD operations the CLI and TUI drive.
// All mutations operate on the settings aggregate passed in; persistence is
// the caller's concern.
package catalog

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mselene/cyclefast/internal/models"
)

// AllPlans returns the built-in plans followed by the user's custom plans.
func AllPlans(s models.Settings) []models.Plan {
	plans := models.DefaultPlans()
	return append(plans, s.CustomPlans...)
}

// FindPlan looks a plan up by id across built-ins and custom plans.
func FindPlan(s models.Settings, id string) (models.Plan, bool) {
	for _, p := range AllPlans(s) {
		if p.ID == id {
			return p, true
		}
	}
	return models.Plan{}, false
}

// ActivePlan resolves the selected plan, falling back to the built-in default
// when the selection points at a plan that no longer exists.
func ActivePlan(s models.Settings) models.Plan {
	if p, ok := FindPlan(s, s.SelectedPlanID); ok {
		return p
	}
	return models.DefaultPlans()[0]
}

// ResolveFastingType looks a fasting type up by id, custom types first, then
// the built-in definitions. A miss indicates stale data (a rule referencing a
// deleted type); callers degrade to a generic rendering rather than fail.
func ResolveFastingType(s models.Settings, id string) (models.FastingTypeDef, bool) {
	for _, t := range s.CustomFastingTypes {
		if t.ID == id {
			return t, true
		}
	}
	for _, t := range models.BuiltInFastingTypes() {
		if t.ID == id {
			return t, true
		}
	}
	return models.FastingTypeDef{}, false
}

// AllFastingTypes returns custom types followed by the built-ins, in lookup
// precedence order.
func AllFastingTypes(s models.Settings) []models.FastingTypeDef {
	types := make([]models.FastingTypeDef, 0, len(s.CustomFastingTypes)+3)
	types = append(types, s.CustomFastingTypes...)
	return append(types, models.BuiltInFastingTypes()...)
}

// AddPlan creates a custom plan with a fresh id and returns it.
func AddPlan(s *models.Settings, name, description string, rules []models.FastingRule) (models.Plan, error) {
	if strings.TrimSpace(name) == "" {
		return models.Plan{}, fmt.Errorf("plan name must not be empty")
	}
	plan := models.Plan{
		ID:          "custom-" + uuid.NewString(),
		Name:        strings.TrimSpace(name),
		Description: description,
		Rules:       rules,
	}
	s.CustomPlans = append(s.CustomPlans, plan)
	return plan, nil
}

// UpdatePlan replaces a custom plan by id. Built-in plans are read-only.
func UpdatePlan(s *models.Settings, plan models.Plan) error {
	if strings.TrimSpace(plan.Name) == "" {
		return fmt.Errorf("plan name must not be empty")
	}
	for i, p := range s.CustomPlans {
		if p.ID == plan.ID {
			s.CustomPlans[i] = plan
			return nil
		}
	}
	if _, ok := FindPlan(*s, plan.ID); ok {
		return fmt.Errorf("plan %s is built in and cannot be edited", plan.ID)
	}
	return fmt.Errorf("plan not found: %s", plan.ID)
}

// DeletePlan removes a custom plan. Deleting the active plan reverts the
// selection to the built-in default.
func DeletePlan(s *models.Settings, id string) error {
	for i, p := range s.CustomPlans {
		if p.ID == id {
			s.CustomPlans = append(s.CustomPlans[:i], s.CustomPlans[i+1:]...)
			if s.SelectedPlanID == id {
				s.SelectedPlanID = models.DefaultPlanID
			}
			return nil
		}
	}
	if _, ok := FindPlan(*s, id); ok {
		return fmt.Errorf("plan %s is built in and cannot be deleted", id)
	}
	return fmt.Errorf("plan not found: %s", id)
}

// SelectPlan sets the active plan by id.
func SelectPlan(s *models.Settings, id string) error {
	if _, ok := FindPlan(*s, id); !ok {
		return fmt.Errorf("plan not found: %s", id)
	}
	s.SelectedPlanID = id
	return nil
}

// AddFastingType creates a single-day custom type from a daily fasting-hours
// count: one slot starting at 20:00 and ending fastingHours later, rolling
// into the next day when it crosses midnight.
func AddFastingType(s *models.Settings, name string, fastingHours int) (models.FastingTypeDef, error) {
	if strings.TrimSpace(name) == "" {
		return models.FastingTypeDef{}, fmt.Errorf("fasting type name must not be empty")
	}
	if fastingHours < 1 || fastingHours > 23 {
		return models.FastingTypeDef{}, fmt.Errorf("fasting hours must be between 1 and 23, got %d", fastingHours)
	}

	endHour := (20 + fastingHours) % 24
	endOffset := 0
	if 20+fastingHours >= 24 {
		endOffset = 1
	}
	def := models.FastingTypeDef{
		ID:          "type-" + uuid.NewString(),
		Name:        strings.TrimSpace(name),
		WindowHours: 24,
		Slots: []models.FastingSlot{
			{StartDayOffset: 0, StartTime: "20:00", EndDayOffset: endOffset, EndTime: fmt.Sprintf("%02d:00", endHour)},
		},
		Description: fmt.Sprintf("%dh fasting / %dh eating", fastingHours, 24-fastingHours),
	}
	s.CustomFastingTypes = append(s.CustomFastingTypes, def)
	return def, nil
}

// AddFastingTypeDef stores a fully specified custom type (multi-day windows,
// explicit slots). The definition must carry at least one slot; a type with
// no scheduled fasting already exists as the built-in NO_FASTING.
func AddFastingTypeDef(s *models.Settings, def models.FastingTypeDef) (models.FastingTypeDef, error) {
	if strings.TrimSpace(def.Name) == "" {
		return models.FastingTypeDef{}, fmt.Errorf("fasting type name must not be empty")
	}
	if len(def.Slots) == 0 {
		return models.FastingTypeDef{}, fmt.Errorf("fasting type must define at least one slot")
	}
	if def.WindowHours < 24 {
		def.WindowHours = 24
	}
	def.ID = "type-" + uuid.NewString()
	def.IsSystem = false
	s.CustomFastingTypes = append(s.CustomFastingTypes, def)
	return def, nil
}

// UpdateFastingType replaces a custom type by id. System types are read-only.
func UpdateFastingType(s *models.Settings, def models.FastingTypeDef) error {
	def.Name = strings.TrimSpace(def.Name)
	if def.Name == "" {
		return fmt.Errorf("fasting type name must not be empty")
	}
	for i, t := range s.CustomFastingTypes {
		if t.ID == def.ID {
			def.IsSystem = false
			s.CustomFastingTypes[i] = def
			return nil
		}
	}
	if _, ok := ResolveFastingType(*s, def.ID); ok {
		return fmt.Errorf("fasting type %s is built in and cannot be edited", def.ID)
	}
	return fmt.Errorf("fasting type not found: %s", def.ID)
}

// DeleteFastingType removes a custom type. System types are never deletable.
func DeleteFastingType(s *models.Settings, id string) error {
	for i, t := range s.CustomFastingTypes {
		if t.ID == id {
			s.CustomFastingTypes = append(s.CustomFastingTypes[:i], s.CustomFastingTypes[i+1:]...)
			return nil
		}
	}
	if _, ok := ResolveFastingType(*s, id); ok {
		return fmt.Errorf("fasting type %s is built in and cannot be deleted", id)
	}
	return fmt.Errorf("fasting type not found: %s", id)
}
