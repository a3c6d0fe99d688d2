package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/daycast/daycast/app/database"
	"github.com/gin-gonic/gin"
)

func (h *Handler) GetChannelSettings(c *gin.Context) {
	settings, err := h.settings.ListChannelSettings(clientID(c))
	if err != nil {
		slog.Error("Database error", "operation", "list_channel_settings", "error", err)
		respondError(c, 500, "Internal error")
		return
	}

	resp := make([]ChannelSettingItem, 0, len(settings))
	for _, cs := range settings {
		resp = append(resp, ChannelSettingItem{
			ChannelID:       cs.ChannelID,
			IsActive:        cs.IsActive,
			DefaultStyle:    cs.DefaultStyle,
			DefaultLanguage: cs.DefaultLanguage,
			DefaultLength:   cs.DefaultLength,
		})
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) SaveChannelSettings(c *gin.Context) {
	var req ChannelSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, 400, "Invalid request body")
		return
	}

	for _, item := range req.Channels {
		if _, ok := h.catalog.Channels[item.ChannelID]; !ok {
			respondError(c, 400, fmt.Sprintf("Unknown channel: %s", item.ChannelID))
			return
		}
	}

	settings := make([]database.ChannelSetting, 0, len(req.Channels))
	for _, item := range req.Channels {
		settings = append(settings, database.ChannelSetting{
			ChannelID:       item.ChannelID,
			IsActive:        item.IsActive,
			DefaultStyle:    item.DefaultStyle,
			DefaultLanguage: item.DefaultLanguage,
			DefaultLength:   item.DefaultLength,
		})
	}

	if err := h.settings.UpsertChannelSettings(clientID(c), settings); err != nil {
		slog.Error("Database error", "operation", "upsert_channel_settings", "error", err)
		respondError(c, 500, "Internal error")
		return
	}

	h.GetChannelSettings(c)
}

func (h *Handler) GetGenerationSettings(c *gin.Context) {
	settings, err := h.settings.GetGenerationSettings(clientID(c))
	if err != nil {
		slog.Error("Database error", "operation", "get_generation_settings", "error", err)
		respondError(c, 500, "Internal error")
		return
	}

	if settings == nil {
		c.JSON(http.StatusOK, GenerationSettingsResponse{})
		return
	}

	c.JSON(http.StatusOK, GenerationSettingsResponse{
		CustomInstruction:        settings.CustomInstruction,
		SeparateBusinessPersonal: settings.SeparateBusinessPersonal,
	})
}

func (h *Handler) SaveGenerationSettings(c *gin.Context) {
	var req GenerationSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, 400, "Invalid request body")
		return
	}

	settings := database.GenerationSettings{
		ClientID:                 clientID(c),
		CustomInstruction:        req.CustomInstruction,
		SeparateBusinessPersonal: req.SeparateBusinessPersonal,
	}
	if err := h.settings.SaveGenerationSettings(&settings); err != nil {
		slog.Error("Database error", "operation", "save_generation_settings", "error", err)
		respondError(c, 500, "Internal error")
		return
	}

	c.JSON(http.StatusOK, GenerationSettingsResponse{
		CustomInstruction:        settings.CustomInstruction,
		SeparateBusinessPersonal: settings.SeparateBusinessPersonal,
	})
}
