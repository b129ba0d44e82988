package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mselene/cyclefast/internal/models"
)

func newTestStore(t *testing.T) *JSONStore {
	t.Helper()
	store := NewJSONStore(filepath.Join(t.TempDir(), "cyclefast.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := store.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return store
}

func TestInitCreatesDefaults(t *testing.T) {
	store := newTestStore(t)
	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if settings.CycleLength != models.DefaultCycleLength {
		t.Errorf("cycle length = %d, want default", settings.CycleLength)
	}
	if settings.SelectedPlanID != models.DefaultPlanID {
		t.Errorf("selected plan = %q, want default", settings.SelectedPlanID)
	}
}

func TestInitFailsIfAlreadyInitialized(t *testing.T) {
	store := newTestStore(t)
	if err := store.Init(); err == nil {
		t.Error("second Init should fail")
	}
}

func TestLoadWithoutInit(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "missing.json"))
	if err := store.Load(); err == nil {
		t.Error("Load on a missing file should fail")
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cyclefast.json")
	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := store.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	settings, _ := store.GetSettings()
	settings.CycleLength = 31
	settings.CycleHistory = []models.CycleEntry{{StartDate: "2024-03-01"}}
	if err := store.SaveSettings(settings); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	fresh := NewJSONStore(path)
	if err := fresh.Load(); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	got, err := fresh.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if got.CycleLength != 31 {
		t.Errorf("cycle length = %d, want 31", got.CycleLength)
	}
	if len(got.CycleHistory) != 1 || got.CycleHistory[0].StartDate != "2024-03-01" {
		t.Errorf("history not persisted: %+v", got.CycleHistory)
	}
}

func TestLoadRepairsTrimmedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cyclefast.json")
	content := `{"version":1,"settings":{"cycleLength":30,"periodLength":4}}`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	store := NewJSONStore(path)
	if err := store.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if settings.CycleHistory == nil || settings.CustomPlans == nil || settings.CustomFastingTypes == nil {
		t.Error("absent collections should be repaired to empty slices")
	}
	if settings.SelectedPlanID != models.DefaultPlanID {
		t.Errorf("empty selection should fall back to default, got %q", settings.SelectedPlanID)
	}
	if settings.CycleLength != 30 {
		t.Errorf("present values must survive the repair, got %d", settings.CycleLength)
	}
}

func TestReset(t *testing.T) {
	store := newTestStore(t)

	settings, _ := store.GetSettings()
	settings.CycleLength = 35
	settings.CycleHistory = []models.CycleEntry{{StartDate: "2024-03-01"}}
	if err := store.SaveSettings(settings); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	if err := store.Reset(); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	got, _ := store.GetSettings()
	if got.CycleLength != models.DefaultCycleLength {
		t.Errorf("cycle length after reset = %d, want default", got.CycleLength)
	}
	if len(got.CycleHistory) != 0 {
		t.Errorf("history after reset: %+v", got.CycleHistory)
	}
}

func TestGetSettingsBeforeLoad(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "cyclefast.json"))
	if _, err := store.GetSettings(); err == nil {
		t.Error("GetSettings before Load should fail")
	}
}
