package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/mselene/cyclefast/internal/models"
)

// ErrInvalidImport marks a document that fails the import shape checks.
var ErrInvalidImport = errors.New("invalid import document")

// Export writes the settings aggregate as a standalone JSON document.
func Export(settings models.Settings, path string) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

// Import reads an exported document and returns the aggregate it contains.
// Validation is deliberately minimal: cycleLength must be numeric and
// cycleHistory, when present, must be an array. On success the caller
// replaces the whole aggregate; there is no merging.
func Import(path string) (models.Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to read import file: %w", err)
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return models.Settings{}, fmt.Errorf("%w: not a JSON object: %v", ErrInvalidImport, err)
	}

	raw, ok := probe["cycleLength"]
	if !ok {
		return models.Settings{}, fmt.Errorf("%w: missing cycleLength", ErrInvalidImport)
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err != nil {
		return models.Settings{}, fmt.Errorf("%w: cycleLength is not numeric", ErrInvalidImport)
	}

	if raw, ok := probe["cycleHistory"]; ok {
		var entries []json.RawMessage
		if err := json.Unmarshal(raw, &entries); err != nil {
			return models.Settings{}, fmt.Errorf("%w: cycleHistory is not an array", ErrInvalidImport)
		}
	}

	var settings models.Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return models.Settings{}, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}
	settings.FillDefaults()
	return settings, nil
}
