package api

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/daycast/daycast/app/database"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// inputItemsPreview returns up to five truncated item contents for the date.
func (h *Handler) inputItemsPreview(ownerID, date string) []string {
	items, err := h.items.ListByDate(ownerID, date, false)
	if err != nil {
		slog.Error("Database error", "operation", "list_items", "error", err)
		return []string{}
	}

	preview := make([]string, 0, 5)
	for _, item := range items {
		if len(preview) == 5 {
			break
		}
		preview = append(preview, truncate(item.Content, 80))
	}
	return preview
}

func (h *Handler) publishedPostResponse(post database.PublishedPost, result database.GenerationResult, gen database.Generation) PublishedPostResponse {
	return PublishedPostResponse{
		ID:                post.ID,
		Slug:              post.Slug,
		ChannelID:         result.ChannelID,
		Style:             result.Style,
		Language:          result.Language,
		Text:              result.Text,
		Date:              gen.Date,
		PublishedAt:       post.PublishedAt,
		InputItemsPreview: h.inputItemsPreview(gen.ClientID, gen.Date),
	}
}

func (h *Handler) Publish(c *gin.Context) {
	var req PublishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, 400, "Invalid request body")
		return
	}

	result, gen, err := h.generations.GetOwnedResult(clientID(c), req.GenerationResultID)
	if err != nil {
		slog.Error("Database error", "operation", "get_result", "error", err)
		respondError(c, 500, "Internal error")
		return
	}
	if result == nil {
		respondError(c, 404, "Generation result not found")
		return
	}

	existing, err := h.posts.GetByResultID(result.ID)
	if err != nil {
		slog.Error("Database error", "operation", "get_published", "error", err)
		respondError(c, 500, "Internal error")
		return
	}
	if existing != nil {
		respondError(c, 409, "Already published")
		return
	}

	post := database.PublishedPost{
		GenerationResultID: result.ID,
		ClientID:           clientID(c),
		Slug:               fmt.Sprintf("%s-%s-%s", gen.Date, result.ChannelID, uuid.NewString()[:4]),
	}
	if err := h.posts.Create(&post); err != nil {
		slog.Error("Database error", "operation", "create_published", "error", err)
		respondError(c, 500, "Internal error")
		return
	}

	c.JSON(http.StatusCreated, h.publishedPostResponse(post, *result, *gen))
}

func (h *Handler) Unpublish(c *gin.Context) {
	err := h.posts.Delete(clientID(c), c.Param("id"))
	if errors.Is(err, sql.ErrNoRows) {
		respondError(c, 404, "Published post not found")
		return
	}
	if err != nil {
		slog.Error("Database error", "operation", "delete_published", "error", err)
		respondError(c, 500, "Internal error")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) GetPublishStatus(c *gin.Context) {
	raw := c.Query("result_ids")

	var ids []string
	for _, id := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}

	posts, err := h.posts.ListByResultIDs(clientID(c), ids)
	if err != nil {
		slog.Error("Database error", "operation", "list_published", "error", err)
		respondError(c, 500, "Internal error")
		return
	}

	postByResult := make(map[string]string, len(posts))
	for _, p := range posts {
		postByResult[p.GenerationResultID] = p.ID
	}

	statuses := make(map[string]*string, len(ids))
	for _, id := range ids {
		if postID, ok := postByResult[id]; ok {
			v := postID
			statuses[id] = &v
		} else {
			statuses[id] = nil
		}
	}

	c.JSON(http.StatusOK, PublishStatusResponse{Statuses: statuses})
}
