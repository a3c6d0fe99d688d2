package api

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/daycast/daycast/app/database"
	"github.com/daycast/daycast/app/uploads"
	"github.com/gin-gonic/gin"
)

func validDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func itemResponse(item database.InputItem, edits []database.InputItemEdit) InputItemResponse {
	resp := InputItemResponse{
		ID:                  item.ID,
		Date:                item.Date,
		Type:                item.Type,
		Content:             item.Content,
		ExtractedText:       item.ExtractedText,
		ExtractError:        item.ExtractError,
		Cleared:             item.Cleared,
		Importance:          item.Importance,
		IncludeInGeneration: item.IncludeInGeneration,
		CreatedAt:           item.CreatedAt,
		UpdatedAt:           item.UpdatedAt,
	}
	for _, e := range edits {
		resp.Edits = append(resp.Edits, InputItemEditResponse{
			ID:         e.ID,
			OldContent: e.OldContent,
			EditedAt:   e.EditedAt,
		})
	}
	return resp
}

func (h *Handler) CreateInputItem(c *gin.Context) {
	var req InputItemCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, 400, "Invalid request body")
		return
	}
	if !validDate(req.Date) {
		respondError(c, 400, "Invalid date, expected YYYY-MM-DD")
		return
	}

	item := database.InputItem{
		ClientID:            clientID(c),
		Date:                req.Date,
		Type:                req.Type,
		Content:             req.Content,
		Importance:          req.Importance,
		IncludeInGeneration: true,
	}
	if req.IncludeInGeneration != nil {
		item.IncludeInGeneration = *req.IncludeInGeneration
	}

	// URL items run extraction inline at ingestion
	if req.Type == database.ItemTypeURL {
		text, errMsg := h.extractor.Run(req.Content)
		if errMsg != "" {
			item.ExtractError = &errMsg
		} else {
			item.ExtractedText = &text
		}
	}

	if err := h.items.Create(&item); err != nil {
		slog.Error("Database error", "operation", "create_item", "error", err)
		respondError(c, 500, "Internal error")
		return
	}

	c.JSON(http.StatusCreated, itemResponse(item, nil))
}

func (h *Handler) UploadImage(c *gin.Context) {
	date := c.PostForm("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	if !validDate(date) {
		respondError(c, 400, "Invalid date, expected YYYY-MM-DD")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, 400, "Missing file")
		return
	}

	src, err := file.Open()
	if err != nil {
		respondError(c, 400, "Unreadable file")
		return
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, uploads.MaxImageSize+1))
	if err != nil {
		respondError(c, 400, "Unreadable file")
		return
	}

	contentType := file.Header.Get("Content-Type")
	path, err := h.storage.Save(clientID(c), date, contentType, data)
	if err != nil {
		switch err {
		case uploads.ErrUnsupportedType:
			respondError(c, 400, fmt.Sprintf("Unsupported file type: %s. Allowed: jpg, png, webp", contentType))
		case uploads.ErrTooLarge:
			respondError(c, 413, "Image exceeds 5 MB limit")
		default:
			slog.Error("Upload storage error", "error", err)
			respondError(c, 500, "Internal error")
		}
		return
	}

	item := database.InputItem{
		ClientID:            clientID(c),
		Date:                date,
		Type:                database.ItemTypeImage,
		Content:             path,
		IncludeInGeneration: true,
	}
	if err := h.items.Create(&item); err != nil {
		slog.Error("Database error", "operation", "create_item", "error", err)
		respondError(c, 500, "Internal error")
		return
	}

	c.JSON(http.StatusCreated, itemResponse(item, nil))
}

func (h *Handler) ListInputItems(c *gin.Context) {
	date := c.Query("date")
	if !validDate(date) {
		respondError(c, 400, "Invalid date, expected YYYY-MM-DD")
		return
	}

	items, err := h.items.ListByDate(clientID(c), date, false)
	if err != nil {
		slog.Error("Database error", "operation", "list_items", "error", err)
		respondError(c, 500, "Internal error")
		return
	}

	resp := make([]InputItemResponse, 0, len(items))
	for _, item := range items {
		edits, err := h.items.ListEdits(item.ID)
		if err != nil {
			slog.Error("Database error", "operation", "list_edits", "error", err)
			respondError(c, 500, "Internal error")
			return
		}
		resp = append(resp, itemResponse(item, edits))
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetInputItem(c *gin.Context) {
	item, err := h.items.GetByID(clientID(c), c.Param("id"))
	if err != nil {
		slog.Error("Database error", "operation", "get_item", "error", err)
		respondError(c, 500, "Internal error")
		return
	}
	if item == nil {
		respondError(c, 404, "Item not found")
		return
	}

	edits, err := h.items.ListEdits(item.ID)
	if err != nil {
		slog.Error("Database error", "operation", "list_edits", "error", err)
		respondError(c, 500, "Internal error")
		return
	}

	c.JSON(http.StatusOK, itemResponse(*item, edits))
}

func (h *Handler) UpdateInputItem(c *gin.Context) {
	var req InputItemUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, 400, "Invalid request body")
		return
	}

	item, err := h.items.GetByID(clientID(c), c.Param("id"))
	if err != nil {
		slog.Error("Database error", "operation", "get_item", "error", err)
		respondError(c, 500, "Internal error")
		return
	}
	if item == nil {
		respondError(c, 404, "Item not found")
		return
	}

	// Content change records the old content as edit history
	if req.Content != nil && *req.Content != item.Content {
		if err := h.items.UpdateContent(item.ID, item.Content, *req.Content); err != nil {
			slog.Error("Database error", "operation", "update_content", "error", err)
			respondError(c, 500, "Internal error")
			return
		}
	}

	if req.Importance != nil || req.IncludeInGeneration != nil {
		if err := h.items.UpdateFlags(item.ID, req.Importance, req.IncludeInGeneration); err != nil {
			slog.Error("Database error", "operation", "update_flags", "error", err)
			respondError(c, 500, "Internal error")
			return
		}
	}

	updated, err := h.items.GetByID(clientID(c), item.ID)
	if err != nil || updated == nil {
		slog.Error("Database error", "operation", "get_item", "error", err)
		respondError(c, 500, "Internal error")
		return
	}
	edits, err := h.items.ListEdits(item.ID)
	if err != nil {
		slog.Error("Database error", "operation", "list_edits", "error", err)
		respondError(c, 500, "Internal error")
		return
	}

	c.JSON(http.StatusOK, itemResponse(*updated, edits))
}

func (h *Handler) DeleteInputItem(c *gin.Context) {
	item, err := h.items.GetByID(clientID(c), c.Param("id"))
	if err != nil {
		slog.Error("Database error", "operation", "get_item", "error", err)
		respondError(c, 500, "Internal error")
		return
	}
	if item == nil {
		respondError(c, 404, "Item not found")
		return
	}

	// Soft delete, the item stays for edit history
	if err := h.items.Clear(item.ID); err != nil {
		slog.Error("Database error", "operation", "clear_item", "error", err)
		respondError(c, 500, "Internal error")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) ClearDay(c *gin.Context) {
	date := c.Query("date")
	if !validDate(date) {
		respondError(c, 400, "Invalid date, expected YYYY-MM-DD")
		return
	}

	if err := h.items.ClearDay(clientID(c), date); err != nil {
		slog.Error("Database error", "operation", "clear_day", "error", err)
		respondError(c, 500, "Internal error")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) ExportDay(c *gin.Context) {
	date := c.Query("date")
	if !validDate(date) {
		respondError(c, 400, "Invalid date, expected YYYY-MM-DD")
		return
	}

	items, err := h.items.ListByDate(clientID(c), date, false)
	if err != nil {
		slog.Error("Database error", "operation", "list_items", "error", err)
		respondError(c, 500, "Internal error")
		return
	}

	var lines []string
	for _, item := range items {
		ts := item.CreatedAt.Format("15:04")
		switch item.Type {
		case database.ItemTypeText:
			lines = append(lines, fmt.Sprintf("[%s] %s", ts, item.Content))
		case database.ItemTypeURL:
			lines = append(lines, fmt.Sprintf("[%s] %s", ts, item.Content))
			if item.ExtractedText != nil && *item.ExtractedText != "" {
				lines = append(lines, "  > "+truncate(*item.ExtractedText, 200))
			}
		case database.ItemTypeImage:
			lines = append(lines, fmt.Sprintf("[%s] [Image]", ts))
		}
	}

	c.JSON(http.StatusOK, ExportResponse{
		Text:  strings.Join(lines, "\n"),
		Date:  date,
		Count: len(items),
	})
}

func (h *Handler) ServeUpload(c *gin.Context) {
	path := strings.TrimPrefix(c.Param("path"), "/")

	full, err := h.storage.AbsPath(path)
	if err != nil {
		respondError(c, 403, "Forbidden")
		return
	}

	c.File(full)
}
