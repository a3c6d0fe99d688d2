package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/daycast/daycast/app/generation"
	"github.com/gin-gonic/gin"
)

func generationResponse(rec *generation.Record) GenerationResponse {
	resp := GenerationResponse{
		ID:            rec.Generation.ID,
		Date:          rec.Generation.Date,
		PromptVersion: rec.Generation.PromptVersion,
		CreatedAt:     rec.Generation.CreatedAt,
		Results:       make([]GenerationResultResponse, 0, len(rec.Results)),
	}
	for _, r := range rec.Results {
		resp.Results = append(resp.Results, GenerationResultResponse{
			ID:        r.ID,
			ChannelID: r.ChannelID,
			Style:     r.Style,
			Language:  r.Language,
			Text:      r.Text,
			Model:     r.Model,
			LatencyMs: r.LatencyMs,
			CreatedAt: r.CreatedAt,
		})
	}
	return resp
}

// checkGenerationLimit enforces the per-day AI generation budget.
func (h *Handler) checkGenerationLimit(c *gin.Context) bool {
	limit := h.catalog.RateLimits.AIGenerationsPerDay
	today := time.Now().Format("2006-01-02")

	count, err := h.generations.CountByDate(clientID(c), today)
	if err != nil {
		slog.Error("Database error", "operation", "count_generations", "error", err)
		respondError(c, 500, "Internal error")
		return false
	}
	if count >= limit {
		respondError(c, 429, fmt.Sprintf("Generation limit exceeded (%d/day)", limit))
		return false
	}
	return true
}

func respondGenerationError(c *gin.Context, err error) {
	var unknownCh *generation.UnknownChannelError
	var providerErr *generation.ProviderError
	var invalidResp *generation.InvalidResponseError

	switch {
	case errors.Is(err, generation.ErrNoInputItems):
		respondError(c, 400, "No input items for this date")
	case errors.Is(err, generation.ErrNoChannels):
		respondError(c, 400, "No active channels")
	case errors.As(err, &unknownCh):
		respondError(c, 400, unknownCh.Error())
	case errors.Is(err, generation.ErrGenerationNotFound):
		respondError(c, 404, "Generation not found")
	case errors.As(err, &providerErr):
		respondError(c, 502, "AI provider error")
	case errors.As(err, &invalidResp):
		respondError(c, 502, invalidResp.Error())
	default:
		slog.Error("Generation failed", "error", err)
		respondError(c, 500, "Internal error")
	}
}

func (h *Handler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, 400, "Invalid request body")
		return
	}
	if !validDate(req.Date) {
		respondError(c, 400, "Invalid date, expected YYYY-MM-DD")
		return
	}

	if !h.checkGenerationLimit(c) {
		return
	}

	rec, err := h.orchestrator.Generate(c.Request.Context(), generation.GenerateRequest{
		ClientID:         clientID(c),
		Date:             req.Date,
		ChannelIDs:       req.Channels,
		StyleOverride:    req.StyleOverride,
		LanguageOverride: req.LanguageOverride,
	})
	if err != nil {
		respondGenerationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, generationResponse(rec))
}

func (h *Handler) Regenerate(c *gin.Context) {
	var req RegenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, 400, "Invalid request body")
		return
	}

	if !h.checkGenerationLimit(c) {
		return
	}

	rec, err := h.orchestrator.Regenerate(c.Request.Context(), generation.RegenerateRequest{
		ClientID:     clientID(c),
		GenerationID: c.Param("id"),
		ChannelIDs:   req.Channels,
	})
	if err != nil {
		respondGenerationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, generationResponse(rec))
}
