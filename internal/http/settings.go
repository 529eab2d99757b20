package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dkasyanov/shoebox/internal/database/settings"
	"github.com/dkasyanov/shoebox/internal/entities"
)

// SettingsStore defines database operations for user preferences.
type SettingsStore interface {
	GetSettings() (*entities.Settings, error)
	UpdateSettings(upd settings.SettingsUpdate) error
}

type SettingsController struct {
	store SettingsStore
}

func NewSettingsController(store SettingsStore) *SettingsController {
	return &SettingsController{store: store}
}

type updateSettingsRequest struct {
	CaptionOpen *bool   `json:"caption_open"`
	Lang        *string `json:"lang"`
	Theme       *string `json:"theme"`
}

// GetSettings returns the current preferences (defaults on first run).
// GET /api/settings
func (sc *SettingsController) GetSettings(c *gin.Context) {
	current, err := sc.store.GetSettings()
	if err != nil {
		respondInternalError(c, err, "fetch settings")
		return
	}

	c.JSON(http.StatusOK, current)
}

// UpdateSettings merges partial preference changes into the settings row.
// PATCH /api/settings
func (sc *SettingsController) UpdateSettings(c *gin.Context) {
	var req updateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	upd := settings.SettingsUpdate{
		CaptionOpen: req.CaptionOpen,
		Lang:        req.Lang,
		Theme:       req.Theme,
	}
	if err := sc.store.UpdateSettings(upd); err != nil {
		respondStoreError(c, err, "update settings")
		return
	}

	current, err := sc.store.GetSettings()
	if err != nil {
		c.JSON(http.StatusOK, SuccessResponse{Message: "settings updated"})
		return
	}

	c.JSON(http.StatusOK, current)
}
