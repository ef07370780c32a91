package handlers

import (
	"errors"
	"net/http"

	"food_delivery_backend/internal/services"
	"food_delivery_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// SettingsHandler holds the settings service.
type SettingsHandler struct {
	settingsService services.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(ss services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: ss}
}

// GetPublicSettings returns the active billing settings for the order page.
func (h *SettingsHandler) GetPublicSettings(c *gin.Context) {
	settings, err := h.settingsService.GetPublicSettings()
	if err != nil {
		utils.LogError(err, "GetPublicSettings: Error from settingsService.GetPublicSettings")
		if errors.Is(err, services.ErrSettingsNotConfigured) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Payment settings not configured.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch settings.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, settings)
}

// GetActiveSettings returns the full active settings record (admin).
func (h *SettingsHandler) GetActiveSettings(c *gin.Context) {
	settings, err := h.settingsService.GetActiveSettings()
	if err != nil {
		utils.LogError(err, "GetActiveSettings: Error from settingsService.GetActiveSettings")
		if errors.Is(err, services.ErrSettingsNotConfigured) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Payment settings not configured.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch settings.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, settings)
}

// SetActiveSettings activates a new billing configuration (admin).
func (h *SettingsHandler) SetActiveSettings(c *gin.Context) {
	var req services.SetSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "SetActiveSettings: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	settings, err := h.settingsService.SetActiveSettings(req)
	if err != nil {
		utils.LogError(err, "SetActiveSettings: Error from settingsService.SetActiveSettings")
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid settings data.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update settings.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, settings)
}

// GetSettingsHistory lists all settings records, newest first (admin).
func (h *SettingsHandler) GetSettingsHistory(c *gin.Context) {
	history, err := h.settingsService.GetSettingsHistory()
	if err != nil {
		utils.LogError(err, "GetSettingsHistory: Error from settingsService.GetSettingsHistory")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch settings history.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": history, "count": len(history)})
}
