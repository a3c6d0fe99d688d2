package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListPublicPosts(c *gin.Context) {
	limit := 10
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 50 {
			respondError(c, 400, "Invalid limit, expected 1-50")
			return
		}
		limit = n
	}

	var before *time.Time
	if cursor := c.Query("cursor"); cursor != "" {
		t, err := time.Parse(time.RFC3339, cursor)
		if err != nil {
			respondError(c, 400, "Invalid cursor")
			return
		}
		before = &t
	}

	if date := c.Query("date"); date != "" && !validDate(date) {
		respondError(c, 400, "Invalid date, expected YYYY-MM-DD")
		return
	}

	// Fetch one extra row to know whether a next page exists
	rows, err := h.posts.List(limit+1, before, c.Query("channel"), c.Query("language"), c.Query("date"))
	if err != nil {
		slog.Error("Database error", "operation", "list_published", "error", err)
		respondError(c, 500, "Internal error")
		return
	}

	hasMore := len(rows) > limit
	if hasMore {
		rows = rows[:limit]
	}

	resp := PublishedPostListResponse{
		Items:   make([]PublishedPostResponse, 0, len(rows)),
		HasMore: hasMore,
	}
	for _, row := range rows {
		resp.Items = append(resp.Items, h.publishedPostResponse(row.Post, row.Result, row.Generation))
	}
	if hasMore && len(rows) > 0 {
		cursor := rows[len(rows)-1].Post.PublishedAt.Format(time.RFC3339)
		resp.Cursor = &cursor
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetPublicPost(c *gin.Context) {
	row, err := h.posts.GetRowBySlug(c.Param("slug"))
	if err != nil {
		slog.Error("Database error", "operation", "get_post", "error", err)
		respondError(c, 500, "Internal error")
		return
	}
	if row == nil {
		respondError(c, 404, "Post not found")
		return
	}

	c.JSON(http.StatusOK, h.publishedPostResponse(row.Post, row.Result, row.Generation))
}

func (h *Handler) GetCalendar(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 1970 || year > 9999 {
		respondError(c, 400, "Invalid year")
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		respondError(c, 400, "Invalid month")
		return
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	days, err := h.posts.Calendar(from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		slog.Error("Database error", "operation", "calendar", "error", err)
		respondError(c, 500, "Internal error")
		return
	}

	resp := CalendarResponse{Dates: make([]CalendarDateResponse, 0, len(days))}
	for _, d := range days {
		resp.Dates = append(resp.Dates, CalendarDateResponse{Date: d.Date, PostCount: d.PostCount})
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetArchive(c *gin.Context) {
	months, err := h.posts.Archive()
	if err != nil {
		slog.Error("Database error", "operation", "archive", "error", err)
		respondError(c, 500, "Internal error")
		return
	}

	resp := ArchiveResponse{Months: make([]ArchiveMonthResponse, 0, len(months))}
	for _, m := range months {
		resp.Months = append(resp.Months, ArchiveMonthResponse{
			Month:     m.Month,
			Label:     monthLabel(m.Month),
			PostCount: m.PostCount,
		})
	}

	c.JSON(http.StatusOK, resp)
}

// monthLabel turns "2026-08" into "August 2026".
func monthLabel(key string) string {
	parts := strings.SplitN(key, "-", 2)
	if len(parts) != 2 {
		return key
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 1 || m > 12 {
		return key
	}
	return fmt.Sprintf("%s %s", time.Month(m).String(), parts[0])
}

func (h *Handler) GetStats(c *gin.Context) {
	totalPosts, totalDays, channels, err := h.posts.Stats()
	if err != nil {
		slog.Error("Database error", "operation", "stats", "error", err)
		respondError(c, 500, "Internal error")
		return
	}

	if channels == nil {
		channels = []string{}
	}

	c.JSON(http.StatusOK, StatsResponse{
		TotalPosts:   totalPosts,
		TotalDays:    totalDays,
		ChannelsUsed: channels,
	})
}

func (h *Handler) GetRSS(c *gin.Context) {
	rows, err := h.posts.List(50, nil, "", "", "")
	if err != nil {
		slog.Error("Database error", "operation", "list_published", "error", err)
		respondError(c, 500, "Internal error")
		return
	}

	rss := NewRSSGenerator().Run(rows)

	c.Header("Content-Type", "application/rss+xml; charset=utf-8")
	c.String(http.StatusOK, rss)
}
