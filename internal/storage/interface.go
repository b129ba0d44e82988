package storage

import "github.com/mselene/cyclefast/internal/models"

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings aggregate
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Reset restores the aggregate to factory defaults.
	Reset() error

	// Utils
	GetConfigPath() string
}
