package entities

import (
	"time"
)

// SettingsRowID is the fixed primary key of the single settings row.
const SettingsRowID = uint(1)

// Settings holds the user preferences as a single row. Last write wins,
// no history is kept.
type Settings struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	CaptionOpen bool      `json:"caption_open"`
	Lang        string    `gorm:"size:10" json:"lang"`
	Theme       string    `gorm:"size:20" json:"theme"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Settings) TableName() string {
	return "settings"
}

// DefaultSettings returns the first-run values used before the row exists.
func DefaultSettings() Settings {
	return Settings{
		ID:          SettingsRowID,
		CaptionOpen: true,
		Lang:        "en",
		Theme:       "system",
	}
}
