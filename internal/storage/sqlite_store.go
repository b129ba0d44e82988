package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "modernc.org/sqlite"

	"github.com/mselene/cyclefast/internal/models"
)

type SQLiteStore struct {
	path     string
	db       *sql.DB
	settings *models.Settings
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

const schema = `
CREATE TABLE IF NOT EXISTS settings (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS cycle_history (
	start_date    TEXT PRIMARY KEY,
	end_date      TEXT,
	plan_snapshot TEXT
);
CREATE TABLE IF NOT EXISTS plans (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	rules       TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS fasting_types (
	id           TEXT PRIMARY KEY,
	name         TEXT NOT NULL,
	window_hours INTEGER NOT NULL,
	slots        TEXT NOT NULL,
	color        TEXT NOT NULL DEFAULT '',
	description  TEXT NOT NULL DEFAULT ''
);
`

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	// Seed defaults only on a fresh database.
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM settings").Scan(&count); err != nil {
		return fmt.Errorf("failed to inspect settings: %w", err)
	}
	if count == 0 {
		if err := s.writeSettings(models.DefaultSettings()); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}

	return s.loadAggregate()
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'cyclefast init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	// The schema is small and fixed; make sure all tables exist even when
	// opening a database created by an older build.
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	return s.loadAggregate()
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) GetSettings() (models.Settings, error) {
	if s.settings == nil {
		return models.Settings{}, fmt.Errorf("storage not loaded")
	}
	return *s.settings, nil
}

func (s *SQLiteStore) SaveSettings(settings models.Settings) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	if err := s.writeSettings(settings); err != nil {
		return err
	}
	s.settings = &settings
	return nil
}

func (s *SQLiteStore) Reset() error {
	return s.SaveSettings(models.DefaultSettings())
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

func (s *SQLiteStore) GetDB() *sql.DB {
	return s.db
}

// loadAggregate reads the whole aggregate into memory. Every read afterwards
// is served from the in-memory copy; the single-writer model makes that safe.
func (s *SQLiteStore) loadAggregate() error {
	settings := models.Settings{}

	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return fmt.Errorf("failed to scan setting: %w", err)
		}
		switch key {
		case "cycle_length":
			settings.CycleLength, _ = strconv.Atoi(value)
		case "period_length":
			settings.PeriodLength, _ = strconv.Atoi(value)
		case "last_period_start":
			settings.LastPeriodStart = value
		case "selected_plan_id":
			settings.SelectedPlanID = value
		case "is_fasting_enabled":
			settings.IsFastingEnabled = value == "true"
		case "fasting_window_start":
			settings.FastingWindowStart = value
		case "fasting_window_end":
			settings.FastingWindowEnd = value
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}

	history, err := s.loadHistory()
	if err != nil {
		return err
	}
	settings.CycleHistory = history

	plans, err := s.loadPlans()
	if err != nil {
		return err
	}
	settings.CustomPlans = plans

	types, err := s.loadTypes()
	if err != nil {
		return err
	}
	settings.CustomFastingTypes = types

	settings.FillDefaults()
	s.settings = &settings
	return nil
}

func (s *SQLiteStore) loadHistory() ([]models.CycleEntry, error) {
	rows, err := s.db.Query("SELECT start_date, end_date, plan_snapshot FROM cycle_history ORDER BY start_date DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to read cycle history: %w", err)
	}
	defer rows.Close()

	var history []models.CycleEntry
	for rows.Next() {
		var entry models.CycleEntry
		var endDate, snapshot sql.NullString
		if err := rows.Scan(&entry.StartDate, &endDate, &snapshot); err != nil {
			return nil, fmt.Errorf("failed to scan cycle entry: %w", err)
		}
		if endDate.Valid {
			entry.EndDate = &endDate.String
		}
		if snapshot.Valid && snapshot.String != "" {
			var ps models.PlanSnapshot
			if err := json.Unmarshal([]byte(snapshot.String), &ps); err == nil {
				entry.PlanSnapshot = &ps
			}
		}
		history = append(history, entry)
	}
	return history, rows.Err()
}

func (s *SQLiteStore) loadPlans() ([]models.Plan, error) {
	rows, err := s.db.Query("SELECT id, name, description, rules FROM plans")
	if err != nil {
		return nil, fmt.Errorf("failed to read plans: %w", err)
	}
	defer rows.Close()

	var plans []models.Plan
	for rows.Next() {
		var p models.Plan
		var rulesJSON string
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &rulesJSON); err != nil {
			return nil, fmt.Errorf("failed to scan plan: %w", err)
		}
		if err := json.Unmarshal([]byte(rulesJSON), &p.Rules); err != nil {
			return nil, fmt.Errorf("failed to parse rules for plan %s: %w", p.ID, err)
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

func (s *SQLiteStore) loadTypes() ([]models.FastingTypeDef, error) {
	rows, err := s.db.Query("SELECT id, name, window_hours, slots, color, description FROM fasting_types")
	if err != nil {
		return nil, fmt.Errorf("failed to read fasting types: %w", err)
	}
	defer rows.Close()

	var types []models.FastingTypeDef
	for rows.Next() {
		var t models.FastingTypeDef
		var slotsJSON string
		if err := rows.Scan(&t.ID, &t.Name, &t.WindowHours, &slotsJSON, &t.Color, &t.Description); err != nil {
			return nil, fmt.Errorf("failed to scan fasting type: %w", err)
		}
		if err := json.Unmarshal([]byte(slotsJSON), &t.Slots); err != nil {
			return nil, fmt.Errorf("failed to parse slots for type %s: %w", t.ID, err)
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

// writeSettings replaces the whole aggregate in one transaction. The
// aggregate is small and every mutation rewrites derived fields, so a full
// overwrite is simpler and safer than row-level diffing.
func (s *SQLiteStore) writeSettings(settings models.Settings) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	kv := map[string]string{
		"cycle_length":         strconv.Itoa(settings.CycleLength),
		"period_length":        strconv.Itoa(settings.PeriodLength),
		"last_period_start":    settings.LastPeriodStart,
		"selected_plan_id":     settings.SelectedPlanID,
		"is_fasting_enabled":   strconv.FormatBool(settings.IsFastingEnabled),
		"fasting_window_start": settings.FastingWindowStart,
		"fasting_window_end":   settings.FastingWindowEnd,
	}
	for key, value := range kv {
		if _, err := stmt.Exec(key, value); err != nil {
			return err
		}
	}

	if _, err := tx.Exec("DELETE FROM cycle_history"); err != nil {
		return err
	}
	for _, entry := range settings.CycleHistory {
		var endDate sql.NullString
		if entry.EndDate != nil {
			endDate = sql.NullString{String: *entry.EndDate, Valid: true}
		}
		var snapshot sql.NullString
		if entry.PlanSnapshot != nil {
			data, err := json.Marshal(entry.PlanSnapshot)
			if err != nil {
				return fmt.Errorf("failed to marshal plan snapshot: %w", err)
			}
			snapshot = sql.NullString{String: string(data), Valid: true}
		}
		if _, err := tx.Exec(
			"INSERT OR REPLACE INTO cycle_history (start_date, end_date, plan_snapshot) VALUES (?, ?, ?)",
			entry.StartDate, endDate, snapshot,
		); err != nil {
			return err
		}
	}

	if _, err := tx.Exec("DELETE FROM plans"); err != nil {
		return err
	}
	for _, plan := range settings.CustomPlans {
		rulesJSON, err := json.Marshal(plan.Rules)
		if err != nil {
			return fmt.Errorf("failed to marshal rules for plan %s: %w", plan.ID, err)
		}
		if _, err := tx.Exec(
			"INSERT INTO plans (id, name, description, rules) VALUES (?, ?, ?, ?)",
			plan.ID, plan.Name, plan.Description, string(rulesJSON),
		); err != nil {
			return err
		}
	}

	if _, err := tx.Exec("DELETE FROM fasting_types"); err != nil {
		return err
	}
	for _, def := range settings.CustomFastingTypes {
		slotsJSON, err := json.Marshal(def.Slots)
		if err != nil {
			return fmt.Errorf("failed to marshal slots for type %s: %w", def.ID, err)
		}
		if _, err := tx.Exec(
			"INSERT INTO fasting_types (id, name, window_hours, slots, color, description) VALUES (?, ?, ?, ?, ?, ?)",
			def.ID, def.Name, def.WindowHours, string(slotsJSON), def.Color, def.Description,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}
