package api

import (
	"time"
	"unicode/utf8"

	"github.com/daycast/daycast/app/catalog"
	"github.com/daycast/daycast/app/database"
	"github.com/daycast/daycast/app/generation"
	"github.com/daycast/daycast/app/uploads"
	"github.com/gin-gonic/gin"
)

// Handler holds the dependencies for all HTTP handlers
type Handler struct {
	catalog      *catalog.Catalog
	orchestrator *generation.Orchestrator
	items        database.InputItemRepository
	generations  database.GenerationRepository
	settings     database.SettingsRepository
	posts        database.PublishedPostRepository
	users        database.UserRepository
	extractor    URLExtractor
	storage      *uploads.Storage
	limiter      *RateLimiter
	db           *database.DB
}

// URLExtractor pulls main text out of a URL at item ingestion time.
type URLExtractor interface {
	Run(url string) (text string, errMsg string)
}

// ErrorResponse is the JSON error envelope returned by every endpoint.
type ErrorResponse struct {
	Error  string  `json:"error"`
	Code   string  `json:"code"`
	Detail *string `json:"detail"`
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

type InputItemCreateRequest struct {
	Date                string `json:"date" binding:"required"`
	Type                string `json:"type" binding:"required,oneof=text url"`
	Content             string `json:"content" binding:"required,max=4000"`
	Importance          *int   `json:"importance" binding:"omitempty,min=1,max=5"`
	IncludeInGeneration *bool  `json:"include_in_generation"`
}

type InputItemUpdateRequest struct {
	Content             *string `json:"content" binding:"omitempty,max=4000"`
	Importance          *int    `json:"importance" binding:"omitempty,min=1,max=5"`
	IncludeInGeneration *bool   `json:"include_in_generation"`
}

type InputItemEditResponse struct {
	ID         string    `json:"id"`
	OldContent string    `json:"old_content"`
	EditedAt   time.Time `json:"edited_at"`
}

type InputItemResponse struct {
	ID                  string                  `json:"id"`
	Date                string                  `json:"date"`
	Type                string                  `json:"type"`
	Content             string                  `json:"content"`
	ExtractedText       *string                 `json:"extracted_text"`
	ExtractError        *string                 `json:"extract_error"`
	Cleared             bool                    `json:"cleared"`
	Importance          *int                    `json:"importance"`
	IncludeInGeneration bool                    `json:"include_in_generation"`
	CreatedAt           time.Time               `json:"created_at"`
	UpdatedAt           time.Time               `json:"updated_at"`
	Edits               []InputItemEditResponse `json:"edits,omitempty"`
}

type ExportResponse struct {
	Text  string `json:"text"`
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type GenerateRequest struct {
	Date             string   `json:"date" binding:"required"`
	Channels         []string `json:"channels"`
	StyleOverride    string   `json:"style_override"`
	LanguageOverride string   `json:"language_override"`
}

type RegenerateRequest struct {
	Channels []string `json:"channels"`
}

type GenerationResultResponse struct {
	ID        string    `json:"id"`
	ChannelID string    `json:"channel_id"`
	Style     string    `json:"style"`
	Language  string    `json:"language"`
	Text      string    `json:"text"`
	Model     string    `json:"model"`
	LatencyMs int       `json:"latency_ms"`
	CreatedAt time.Time `json:"created_at"`
}

type GenerationResponse struct {
	ID            string                     `json:"id"`
	Date          string                     `json:"date"`
	PromptVersion string                     `json:"prompt_version"`
	CreatedAt     time.Time                  `json:"created_at"`
	Results       []GenerationResultResponse `json:"results"`
}

type DaySummaryResponse struct {
	Date            string `json:"date"`
	InputCount      int    `json:"input_count"`
	GenerationCount int    `json:"generation_count"`
}

type DayListResponse struct {
	Items  []DaySummaryResponse `json:"items"`
	Cursor *string              `json:"cursor"`
}

type DayResponse struct {
	Date        string               `json:"date"`
	InputItems  []InputItemResponse  `json:"input_items"`
	Generations []GenerationResponse `json:"generations"`
}

type ChannelSettingItem struct {
	ChannelID       string `json:"channel_id" binding:"required"`
	IsActive        bool   `json:"is_active"`
	DefaultStyle    string `json:"default_style"`
	DefaultLanguage string `json:"default_language"`
	DefaultLength   string `json:"default_length"`
}

type ChannelSettingsRequest struct {
	Channels []ChannelSettingItem `json:"channels" binding:"required"`
}

type GenerationSettingsRequest struct {
	CustomInstruction        *string `json:"custom_instruction"`
	SeparateBusinessPersonal bool    `json:"separate_business_personal"`
}

type GenerationSettingsResponse struct {
	CustomInstruction        *string `json:"custom_instruction"`
	SeparateBusinessPersonal bool    `json:"separate_business_personal"`
}

type PublishRequest struct {
	GenerationResultID string `json:"generation_result_id" binding:"required"`
}

type PublishedPostResponse struct {
	ID                string    `json:"id"`
	Slug              string    `json:"slug"`
	ChannelID         string    `json:"channel_id"`
	Style             string    `json:"style"`
	Language          string    `json:"language"`
	Text              string    `json:"text"`
	Date              string    `json:"date"`
	PublishedAt       time.Time `json:"published_at"`
	InputItemsPreview []string  `json:"input_items_preview"`
}

type PublishStatusResponse struct {
	Statuses map[string]*string `json:"statuses"`
}

type PublishedPostListResponse struct {
	Items   []PublishedPostResponse `json:"items"`
	Cursor  *string                 `json:"cursor"`
	HasMore bool                    `json:"has_more"`
}

type CalendarDateResponse struct {
	Date      string `json:"date"`
	PostCount int    `json:"post_count"`
}

type CalendarResponse struct {
	Dates []CalendarDateResponse `json:"dates"`
}

type ArchiveMonthResponse struct {
	Month     string `json:"month"`
	Label     string `json:"label"`
	PostCount int    `json:"post_count"`
}

type ArchiveResponse struct {
	Months []ArchiveMonthResponse `json:"months"`
}

type StatsResponse struct {
	TotalPosts   int      `json:"total_posts"`
	TotalDays    int      `json:"total_days"`
	ChannelsUsed []string `json:"channels_used"`
}

func clientID(c *gin.Context) string {
	return c.GetString("client_id")
}

// truncate caps s at max characters without splitting a multibyte rune.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
