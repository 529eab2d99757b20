// Package settings provides database operations for user preferences.
//
// The preferences live in a single row so they survive restarts and stay
// the single source of truth; first-run reads fall back to defaults
// without persisting them.
//
// # Usage
//
//	repo := settings.NewRepository(db)
//	current, err := repo.GetSettings()
package settings

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/dkasyanov/shoebox/internal/entities"
)

// Repository handles all settings database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new settings repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// SettingsUpdate describes a partial settings update. Nil fields keep
// their current value; last write wins.
type SettingsUpdate struct {
	CaptionOpen *bool
	Lang        *string
	Theme       *string
}

// GetSettings returns the settings row, or the defaults when no row has
// been written yet.
func (r *Repository) GetSettings() (*entities.Settings, error) {
	var current entities.Settings
	err := r.db.First(&current, "id = ?", entities.SettingsRowID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		defaults := entities.DefaultSettings()
		return &defaults, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	return &current, nil
}

// UpdateSettings merges the given fields into the settings row, creating
// it from the defaults when it does not exist yet.
func (r *Repository) UpdateSettings(upd SettingsUpdate) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var current entities.Settings
		err := tx.First(&current, "id = ?", entities.SettingsRowID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			current = entities.DefaultSettings()
		} else if err != nil {
			return fmt.Errorf("failed to read settings: %w", err)
		}

		if upd.CaptionOpen != nil {
			current.CaptionOpen = *upd.CaptionOpen
		}
		if upd.Lang != nil {
			current.Lang = *upd.Lang
		}
		if upd.Theme != nil {
			current.Theme = *upd.Theme
		}

		return tx.Save(&current).Error
	})
}
