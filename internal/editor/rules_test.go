package editor

import (
	"errors"
	"reflect"
	"testing"

	"github.com/mselene/cyclefast/internal/models"
)

// lookup resolves the built-ins plus a two-day window type for step tests.
func lookup(id string) (models.FastingTypeDef, bool) {
	if id == "two-day" {
		return models.FastingTypeDef{ID: "two-day", WindowHours: 48}, true
	}
	for _, t := range models.BuiltInFastingTypes() {
		if t.ID == id {
			return t, true
		}
	}
	return models.FastingTypeDef{}, false
}

func defaultRules() []models.FastingRule {
	return []models.FastingRule{
		{DayStart: 1, DayEnd: 10, TypeID: models.TypeStandard},
		{DayStart: 11, DayEnd: 15, TypeID: models.TypeLimitHours},
		{DayStart: 16, DayEnd: 19, TypeID: models.TypeStandard},
		{DayStart: 20, DayEnd: models.EndOfCycle, TypeID: models.TypeNoFasting},
	}
}

func TestStepSize(t *testing.T) {
	if got := StepSize(lookup, models.TypeStandard); got != 1 {
		t.Errorf("24h window step = %d, want 1", got)
	}
	if got := StepSize(lookup, "two-day"); got != 2 {
		t.Errorf("48h window step = %d, want 2", got)
	}
	if got := StepSize(lookup, "missing"); got != 1 {
		t.Errorf("unknown type step = %d, want 1", got)
	}
}

func TestNormalizePreservesWellFormedPlan(t *testing.T) {
	got := Normalize(defaultRules(), models.EditHorizonDays, lookup)
	if !reflect.DeepEqual(got, defaultRules()) {
		t.Errorf("normalize changed a well-formed plan: %+v", got)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	ragged := []models.FastingRule{
		{DayStart: 3, DayEnd: 9, TypeID: models.TypeStandard},
		{DayStart: 8, DayEnd: 40, TypeID: "two-day"},
		{DayStart: 12, DayEnd: models.EndOfCycle, TypeID: models.TypeNoFasting},
	}
	once := Normalize(ragged, models.EditHorizonDays, lookup)
	twice := Normalize(once, models.EditHorizonDays, lookup)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("normalize not idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestNormalizeForcesContiguityFromDayOne(t *testing.T) {
	rules := []models.FastingRule{
		{DayStart: 5, DayEnd: 10, TypeID: models.TypeStandard},
		{DayStart: 14, DayEnd: 20, TypeID: models.TypeLimitHours},
	}
	got := Normalize(rules, models.EditHorizonDays, lookup)
	if got[0].DayStart != 1 {
		t.Errorf("first rule start = %d, want 1", got[0].DayStart)
	}
	if got[1].DayStart != int(got[0].DayEnd)+1 {
		t.Errorf("rules not contiguous: %+v", got)
	}
}

func TestNormalizeSnapsToStep(t *testing.T) {
	// A 3-day range on a 2-day-window type snaps to the nearest even size.
	rules := []models.FastingRule{
		{DayStart: 1, DayEnd: 3, TypeID: "two-day"},
		{DayStart: 4, DayEnd: models.EndOfCycle, TypeID: models.TypeStandard},
	}
	got := Normalize(rules, models.EditHorizonDays, lookup)
	duration := int(got[0].DayEnd) - got[0].DayStart + 1
	if duration%2 != 0 {
		t.Errorf("duration %d is not a multiple of step 2: %+v", duration, got[0])
	}
	if duration != 4 {
		t.Errorf("3-day range should snap to 4 (round half up), got %d", duration)
	}
}

func TestNormalizeReservesRoomForLaterRules(t *testing.T) {
	rules := []models.FastingRule{
		{DayStart: 1, DayEnd: 40, TypeID: models.TypeStandard},
		{DayStart: 41, DayEnd: 45, TypeID: models.TypeLimitHours},
		{DayStart: 46, DayEnd: models.EndOfCycle, TypeID: models.TypeNoFasting},
	}
	got := Normalize(rules, models.EditHorizonDays, lookup)
	if int(got[0].DayEnd) > models.EditHorizonDays-2 {
		t.Errorf("first rule end %d leaves no room for 2 later rules", int(got[0].DayEnd))
	}
	if !got[2].DayEnd.IsEnd() {
		t.Errorf("terminal sentinel should be preserved, got %v", got[2].DayEnd)
	}
	if got[2].DayStart > models.EditHorizonDays {
		t.Errorf("last rule starts past the horizon: %+v", got[2])
	}
}

func TestSetEndRipples(t *testing.T) {
	got := SetEnd(defaultRules(), 0, 12, models.EditHorizonDays, lookup)
	if int(got[0].DayEnd) != 12 {
		t.Errorf("rule 0 end = %d, want 12", int(got[0].DayEnd))
	}
	if got[1].DayStart != 13 {
		t.Errorf("rule 1 start = %d, want 13", got[1].DayStart)
	}
	if !got[3].DayEnd.IsEnd() {
		t.Errorf("terminal sentinel lost: %+v", got[3])
	}
}

func TestSetStartMovesPreviousBoundary(t *testing.T) {
	got := SetStart(defaultRules(), 1, 12, models.EditHorizonDays, lookup)
	if int(got[0].DayEnd) != 11 {
		t.Errorf("rule 0 end = %d, want 11", int(got[0].DayEnd))
	}
	if got[1].DayStart != 12 {
		t.Errorf("rule 1 start = %d, want 12", got[1].DayStart)
	}
}

func TestSetStartFirstRuleIsPinned(t *testing.T) {
	got := SetStart(defaultRules(), 0, 5, models.EditHorizonDays, lookup)
	if got[0].DayStart != 1 {
		t.Errorf("first rule start = %d, want 1", got[0].DayStart)
	}
}

func TestSetTypeResnaps(t *testing.T) {
	rules := []models.FastingRule{
		{DayStart: 1, DayEnd: 5, TypeID: models.TypeStandard},
		{DayStart: 6, DayEnd: models.EndOfCycle, TypeID: models.TypeNoFasting},
	}
	got := SetType(rules, 0, "two-day", models.EditHorizonDays, lookup)
	if got[0].TypeID != "two-day" {
		t.Errorf("type not changed: %+v", got[0])
	}
	duration := int(got[0].DayEnd) - got[0].DayStart + 1
	if duration%2 != 0 {
		t.Errorf("duration %d not re-snapped to the new step", duration)
	}
}

func TestAddAppendsAfterLastRule(t *testing.T) {
	rules := []models.FastingRule{
		{DayStart: 1, DayEnd: 10, TypeID: models.TypeStandard},
	}
	got, err := Add(rules, models.EditHorizonDays, lookup)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(got))
	}
	if got[1].DayStart != 11 {
		t.Errorf("new rule start = %d, want 11", got[1].DayStart)
	}
}

func TestAddToEmptyList(t *testing.T) {
	got, err := Add(nil, models.EditHorizonDays, lookup)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if len(got) != 1 || got[0].DayStart != 1 {
		t.Errorf("expected a single rule from day 1, got %+v", got)
	}
}

func TestAddShrinksFullLastRule(t *testing.T) {
	rules := []models.FastingRule{
		{DayStart: 1, DayEnd: 28, TypeID: models.TypeStandard},
	}
	got, err := Add(rules, models.EditHorizonDays, lookup)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(got))
	}
	if int(got[0].DayEnd) != 27 || got[1].DayStart != 28 {
		t.Errorf("expected 1-27 / 28-28 split, got %+v", got)
	}
}

func TestAddNoSpace(t *testing.T) {
	rules := []models.FastingRule{
		{DayStart: 1, DayEnd: 27, TypeID: models.TypeStandard},
		{DayStart: 28, DayEnd: 28, TypeID: models.TypeLimitHours},
	}
	if _, err := Add(rules, models.EditHorizonDays, lookup); !errors.Is(err, ErrNoSpace) {
		t.Errorf("expected ErrNoSpace, got %v", err)
	}
}

func TestRemoveClosesGap(t *testing.T) {
	got := Remove(defaultRules(), 1, models.EditHorizonDays, lookup)
	if len(got) != 3 {
		t.Fatalf("expected 3 rules, got %d", len(got))
	}
	if got[1].DayStart != int(got[0].DayEnd)+1 {
		t.Errorf("gap not closed: %+v", got)
	}
	if !got[2].DayEnd.IsEnd() {
		t.Errorf("terminal sentinel lost: %+v", got[2])
	}
}

func TestToggleEnd(t *testing.T) {
	rules := []models.FastingRule{
		{DayStart: 1, DayEnd: 10, TypeID: models.TypeStandard},
		{DayStart: 11, DayEnd: models.EndOfCycle, TypeID: models.TypeNoFasting},
	}
	off := ToggleEnd(rules, models.EditHorizonDays, lookup)
	if off[1].DayEnd.IsEnd() {
		t.Errorf("sentinel should be replaced by a concrete day, got %+v", off[1])
	}
	if int(off[1].DayEnd) != models.EditHorizonDays {
		t.Errorf("placeholder end = %d, want %d", int(off[1].DayEnd), models.EditHorizonDays)
	}

	on := ToggleEnd(off, models.EditHorizonDays, lookup)
	if !on[1].DayEnd.IsEnd() {
		t.Errorf("expected the sentinel back, got %+v", on[1])
	}
}

func TestInputSlicesAreNotMutated(t *testing.T) {
	rules := defaultRules()
	Normalize(rules, models.EditHorizonDays, lookup)
	SetEnd(rules, 0, 3, models.EditHorizonDays, lookup)
	if !reflect.DeepEqual(rules, defaultRules()) {
		t.Errorf("editor mutated its input: %+v", rules)
	}
}
