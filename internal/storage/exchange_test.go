package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mselene/cyclefast/internal/models"
)

func TestExportImportRoundTrip(t *testing.T) {
	end := "2024-03-06"
	settings := models.DefaultSettings()
	settings.CycleLength = 30
	settings.CycleHistory = []models.CycleEntry{
		{StartDate: "2024-03-01", EndDate: &end, PlanSnapshot: &models.PlanSnapshot{ID: "p", Name: "P"}},
	}
	settings.CustomPlans = []models.Plan{{
		ID:   "custom-1",
		Name: "Custom",
		Rules: []models.FastingRule{
			{DayStart: 1, DayEnd: 10, TypeID: models.TypeStandard},
			{DayStart: 11, DayEnd: models.EndOfCycle, TypeID: models.TypeNoFasting},
		},
	}}

	path := filepath.Join(t.TempDir(), "export.json")
	if err := Export(settings, path); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	got, err := Import(path)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if got.CycleLength != 30 {
		t.Errorf("cycle length = %d, want 30", got.CycleLength)
	}
	if len(got.CycleHistory) != 1 || got.CycleHistory[0].EndDate == nil {
		t.Errorf("history lost: %+v", got.CycleHistory)
	}
	if got.CycleHistory[0].PlanSnapshot == nil || got.CycleHistory[0].PlanSnapshot.Name != "P" {
		t.Errorf("plan snapshot lost: %+v", got.CycleHistory[0])
	}
	rules := got.CustomPlans[0].Rules
	if !rules[1].DayEnd.IsEnd() {
		t.Errorf("END sentinel lost in round trip: %+v", rules[1])
	}
}

func TestExportUsesEndSentinelString(t *testing.T) {
	settings := models.DefaultSettings()
	settings.CustomPlans = []models.Plan{{
		ID:   "custom-1",
		Name: "Custom",
		Rules: []models.FastingRule{
			{DayStart: 1, DayEnd: models.EndOfCycle, TypeID: models.TypeStandard},
		},
	}}

	path := filepath.Join(t.TempDir(), "export.json")
	if err := Export(settings, path); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if want := `"dayEnd": "END"`; !strings.Contains(string(data), want) {
		t.Errorf("export should serialize the sentinel as %s", want)
	}
}

func writeImportFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "import.json")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	return path
}

func TestImportRejectsMissingCycleLength(t *testing.T) {
	path := writeImportFile(t, `{"periodLength": 5}`)
	if _, err := Import(path); !errors.Is(err, ErrInvalidImport) {
		t.Errorf("expected ErrInvalidImport, got %v", err)
	}
}

func TestImportRejectsNonNumericCycleLength(t *testing.T) {
	path := writeImportFile(t, `{"cycleLength": "28"}`)
	if _, err := Import(path); !errors.Is(err, ErrInvalidImport) {
		t.Errorf("expected ErrInvalidImport, got %v", err)
	}
}

func TestImportRejectsNonArrayHistory(t *testing.T) {
	path := writeImportFile(t, `{"cycleLength": 28, "cycleHistory": {}}`)
	if _, err := Import(path); !errors.Is(err, ErrInvalidImport) {
		t.Errorf("expected ErrInvalidImport, got %v", err)
	}
}

func TestImportRejectsNonObject(t *testing.T) {
	path := writeImportFile(t, `[1, 2, 3]`)
	if _, err := Import(path); !errors.Is(err, ErrInvalidImport) {
		t.Errorf("expected ErrInvalidImport, got %v", err)
	}
}

func TestImportFillsAbsentCollections(t *testing.T) {
	path := writeImportFile(t, `{"cycleLength": 28}`)
	got, err := Import(path)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if got.CycleHistory == nil || got.CustomPlans == nil || got.CustomFastingTypes == nil {
		t.Error("absent collections should become empty slices")
	}
	if got.SelectedPlanID != models.DefaultPlanID {
		t.Errorf("selection = %q, want default", got.SelectedPlanID)
	}
	if got.PeriodLength != models.DefaultPeriodLength {
		t.Errorf("period length = %d, want default", got.PeriodLength)
	}
}
