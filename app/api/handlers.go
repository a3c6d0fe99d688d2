package api

import (
	"net/http"
	"time"

	"github.com/daycast/daycast/app/catalog"
	"github.com/daycast/daycast/app/database"
	"github.com/daycast/daycast/app/generation"
	"github.com/daycast/daycast/app/uploads"
	"github.com/gin-gonic/gin"
)

func NewHandler(
	cat *catalog.Catalog,
	orchestrator *generation.Orchestrator,
	items database.InputItemRepository,
	generations database.GenerationRepository,
	settings database.SettingsRepository,
	posts database.PublishedPostRepository,
	users database.UserRepository,
	extractor URLExtractor,
	storage *uploads.Storage,
	db *database.DB,
) *Handler {
	return &Handler{
		catalog:      cat,
		orchestrator: orchestrator,
		items:        items,
		generations:  generations,
		settings:     settings,
		posts:        posts,
		users:        users,
		extractor:    extractor,
		storage:      storage,
		limiter:      NewRateLimiter(cat.RateLimits.APIRequestsPerMinute),
		db:           db,
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if total, days, _, err := h.posts.Stats(); err == nil {
		health["published_posts"] = total
		health["published_days"] = days
	}

	health["channels"] = len(h.catalog.Channels)

	if err := h.db.Ping(); err != nil {
		health["database"] = "unreachable"
		c.JSON(http.StatusServiceUnavailable, health)
		return
	}
	health["database"] = "ok"

	c.JSON(http.StatusOK, health)
}

func (h *Handler) ListChannels(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Channels)
}

func (h *Handler) ListStyles(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Styles)
}

func (h *Handler) ListLanguages(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Languages)
}

func (h *Handler) ListLengths(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Lengths)
}
