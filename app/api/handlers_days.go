package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListDays(c *gin.Context) {
	limit := 30
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 100 {
			respondError(c, 400, "Invalid limit, expected 1-100")
			return
		}
		limit = n
	}

	cursor := c.Query("cursor")
	search := c.Query("search")

	// Fetch one extra row to know whether a next page exists
	days, err := h.items.ListDays(clientID(c), limit+1, cursor, search)
	if err != nil {
		slog.Error("Database error", "operation", "list_days", "error", err)
		respondError(c, 500, "Internal error")
		return
	}

	hasMore := len(days) > limit
	if hasMore {
		days = days[:limit]
	}

	resp := DayListResponse{Items: make([]DaySummaryResponse, 0, len(days))}
	for _, d := range days {
		resp.Items = append(resp.Items, DaySummaryResponse{
			Date:            d.Date,
			InputCount:      d.InputCount,
			GenerationCount: d.GenerationCount,
		})
	}
	if hasMore && len(days) > 0 {
		next := days[len(days)-1].Date
		resp.Cursor = &next
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetDay(c *gin.Context) {
	date := c.Param("date")
	if !validDate(date) {
		respondError(c, 400, "Invalid date, expected YYYY-MM-DD")
		return
	}

	// Full day view includes cleared items with their edit history
	items, err := h.items.ListByDate(clientID(c), date, true)
	if err != nil {
		slog.Error("Database error", "operation", "list_items", "error", err)
		respondError(c, 500, "Internal error")
		return
	}

	itemResponses := make([]InputItemResponse, 0, len(items))
	for _, item := range items {
		edits, err := h.items.ListEdits(item.ID)
		if err != nil {
			slog.Error("Database error", "operation", "list_edits", "error", err)
			respondError(c, 500, "Internal error")
			return
		}
		itemResponses = append(itemResponses, itemResponse(item, edits))
	}

	gens, err := h.generations.ListByDate(clientID(c), date)
	if err != nil {
		slog.Error("Database error", "operation", "list_generations", "error", err)
		respondError(c, 500, "Internal error")
		return
	}

	genResponses := make([]GenerationResponse, 0, len(gens))
	for _, gen := range gens {
		results, err := h.generations.ListResults(gen.ID)
		if err != nil {
			slog.Error("Database error", "operation", "list_results", "error", err)
			respondError(c, 500, "Internal error")
			return
		}

		gr := GenerationResponse{
			ID:            gen.ID,
			Date:          gen.Date,
			PromptVersion: gen.PromptVersion,
			CreatedAt:     gen.CreatedAt,
			Results:       make([]GenerationResultResponse, 0, len(results)),
		}
		for _, r := range results {
			gr.Results = append(gr.Results, GenerationResultResponse{
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
		genResponses = append(genResponses, gr)
	}

	c.JSON(http.StatusOK, DayResponse{
		Date:        date,
		InputItems:  itemResponses,
		Generations: genResponses,
	})
}

func (h *Handler) DeleteDay(c *gin.Context) {
	date := c.Param("date")
	if !validDate(date) {
		respondError(c, 400, "Invalid date, expected YYYY-MM-DD")
		return
	}

	// Generations first, results cascade via FK
	if err := h.generations.DeleteDay(clientID(c), date); err != nil {
		slog.Error("Database error", "operation", "delete_day_generations", "error", err)
		respondError(c, 500, "Internal error")
		return
	}
	if err := h.items.DeleteDay(clientID(c), date); err != nil {
		slog.Error("Database error", "operation", "delete_day_items", "error", err)
		respondError(c, 500, "Internal error")
		return
	}

	c.Status(http.StatusNoContent)
}
