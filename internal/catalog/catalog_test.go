package catalog

import (
	"strings"
	"testing"

	"github.com/mselene/cyclefast/internal/models"
)

func TestActivePlanFallsBackToDefault(t *testing.T) {
	s := models.DefaultSettings()
	s.SelectedPlanID = "does-not-exist"
	plan := ActivePlan(s)
	if plan.ID != models.DefaultPlanID {
		t.Errorf("active plan = %s, want default", plan.ID)
	}
}

func TestAddAndSelectPlan(t *testing.T) {
	s := models.DefaultSettings()
	rules := []models.FastingRule{
		{DayStart: 1, DayEnd: models.EndOfCycle, TypeID: models.TypeStandard},
	}

	plan, err := AddPlan(&s, "  My Plan  ", "desc", rules)
	if err != nil {
		t.Fatalf("AddPlan failed: %v", err)
	}
	if plan.Name != "My Plan" {
		t.Errorf("name not trimmed: %q", plan.Name)
	}
	if !strings.HasPrefix(plan.ID, "custom-") {
		t.Errorf("custom plan id %q missing custom- prefix", plan.ID)
	}

	if err := SelectPlan(&s, plan.ID); err != nil {
		t.Fatalf("SelectPlan failed: %v", err)
	}
	if ActivePlan(s).ID != plan.ID {
		t.Errorf("active plan = %s, want %s", ActivePlan(s).ID, plan.ID)
	}
}

func TestAddPlanRejectsEmptyName(t *testing.T) {
	s := models.DefaultSettings()
	if _, err := AddPlan(&s, "   ", "", nil); err == nil {
		t.Error("expected an error for a blank name")
	}
}

func TestDeleteActivePlanRevertsSelection(t *testing.T) {
	s := models.DefaultSettings()
	plan, err := AddPlan(&s, "Temp", "", []models.FastingRule{
		{DayStart: 1, DayEnd: models.EndOfCycle, TypeID: models.TypeStandard},
	})
	if err != nil {
		t.Fatalf("AddPlan failed: %v", err)
	}
	if err := SelectPlan(&s, plan.ID); err != nil {
		t.Fatalf("SelectPlan failed: %v", err)
	}

	if err := DeletePlan(&s, plan.ID); err != nil {
		t.Fatalf("DeletePlan failed: %v", err)
	}
	if s.SelectedPlanID != models.DefaultPlanID {
		t.Errorf("selection = %s, want reverted to default", s.SelectedPlanID)
	}
	if len(s.CustomPlans) != 0 {
		t.Errorf("plan not removed: %+v", s.CustomPlans)
	}
}

func TestBuiltInPlanIsProtected(t *testing.T) {
	s := models.DefaultSettings()
	if err := DeletePlan(&s, models.DefaultPlanID); err == nil {
		t.Error("deleting a built-in plan must fail")
	}
	if err := UpdatePlan(&s, models.DefaultPlans()[0]); err == nil {
		t.Error("editing a built-in plan must fail")
	}
}

func TestResolveFastingTypeCustomShadowsNothing(t *testing.T) {
	s := models.DefaultSettings()
	def, ok := ResolveFastingType(s, models.TypeStandard)
	if !ok {
		t.Fatal("built-in STANDARD should always resolve")
	}
	if !def.IsSystem {
		t.Error("built-in type should be marked system")
	}

	if _, ok := ResolveFastingType(s, "gone"); ok {
		t.Error("unknown id should not resolve")
	}
}

func TestAddFastingTypeSlotMath(t *testing.T) {
	tests := []struct {
		hours      int
		wantEnd    string
		wantOffset int
	}{
		{16, "12:00", 1},
		{12, "08:00", 1},
		{4, "00:00", 1},
		{3, "23:00", 0},
		{23, "19:00", 1},
	}
	for _, tt := range tests {
		s := models.DefaultSettings()
		def, err := AddFastingType(&s, "t", tt.hours)
		if err != nil {
			t.Fatalf("AddFastingType(%d) failed: %v", tt.hours, err)
		}
		if len(def.Slots) != 1 {
			t.Fatalf("expected 1 slot, got %d", len(def.Slots))
		}
		slot := def.Slots[0]
		if slot.StartTime != "20:00" {
			t.Errorf("hours %d: start = %s, want 20:00", tt.hours, slot.StartTime)
		}
		if slot.EndTime != tt.wantEnd || slot.EndDayOffset != tt.wantOffset {
			t.Errorf("hours %d: end = day %d %s, want day %d %s",
				tt.hours, slot.EndDayOffset, slot.EndTime, tt.wantOffset, tt.wantEnd)
		}
	}
}

func TestAddFastingTypeBounds(t *testing.T) {
	s := models.DefaultSettings()
	if _, err := AddFastingType(&s, "t", 0); err == nil {
		t.Error("0 hours must be rejected")
	}
	if _, err := AddFastingType(&s, "t", 24); err == nil {
		t.Error("24 hours must be rejected")
	}
	if _, err := AddFastingType(&s, " ", 16); err == nil {
		t.Error("blank name must be rejected")
	}
}

func TestAddFastingTypeDefRequiresSlots(t *testing.T) {
	s := models.DefaultSettings()
	_, err := AddFastingTypeDef(&s, models.FastingTypeDef{Name: "x", WindowHours: 48})
	if err == nil {
		t.Error("a definition without slots must be rejected")
	}
}

func TestDeleteFastingType(t *testing.T) {
	s := models.DefaultSettings()
	def, err := AddFastingType(&s, "t", 16)
	if err != nil {
		t.Fatalf("AddFastingType failed: %v", err)
	}

	if err := DeleteFastingType(&s, def.ID); err != nil {
		t.Fatalf("DeleteFastingType failed: %v", err)
	}
	if _, ok := ResolveFastingType(s, def.ID); ok {
		t.Error("deleted type should not resolve")
	}
}

func TestUpdateFastingType(t *testing.T) {
	s := models.DefaultSettings()
	def, err := AddFastingType(&s, "t", 16)
	if err != nil {
		t.Fatalf("AddFastingType failed: %v", err)
	}

	def.Name = "Renamed"
	def.IsSystem = true // must not stick
	if err := UpdateFastingType(&s, def); err != nil {
		t.Fatalf("UpdateFastingType failed: %v", err)
	}

	got, ok := ResolveFastingType(s, def.ID)
	if !ok {
		t.Fatal("updated type should resolve")
	}
	if got.Name != "Renamed" {
		t.Errorf("name = %q, want Renamed", got.Name)
	}
	if got.IsSystem {
		t.Error("custom types can never become system types")
	}

	def.Name = "   "
	if err := UpdateFastingType(&s, def); err == nil {
		t.Error("blank name must be rejected")
	}

	var builtin models.FastingTypeDef
	builtin.ID = models.TypeStandard
	builtin.Name = "x"
	if err := UpdateFastingType(&s, builtin); err == nil {
		t.Error("editing a built-in type must fail")
	}
}

func TestSystemTypesAreUndeletable(t *testing.T) {
	s := models.DefaultSettings()
	for _, id := range []string{models.TypeStandard, models.TypeLimitHours, models.TypeNoFasting} {
		if err := DeleteFastingType(&s, id); err == nil {
			t.Errorf("deleting system type %s must fail", id)
		}
	}
}
