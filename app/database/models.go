package database

import (
	"time"
)

// Input item kinds
const (
	ItemTypeText  = "text"
	ItemTypeURL   = "url"
	ItemTypeImage = "image"
)

// Client is the tenant owning input items, generations and settings.
// Maps 1:1 to an authenticated user.
type Client struct {
	ID        string
	CreatedAt time.Time
}

// User is an authentication account. The user id doubles as the client id.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// InputItem is one user-captured fact for a given date.
// Cleared items are soft-deleted: excluded from listings and generation
// input sets but kept while edit history may reference them.
type InputItem struct {
	ID                  string
	ClientID            string
	Date                string // YYYY-MM-DD
	Type                string // text | url | image
	Content             string
	ExtractedText       *string
	ExtractError        *string
	Cleared             bool
	Importance          *int
	IncludeInGeneration bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// InputItemEdit records the previous content of an edited input item.
type InputItemEdit struct {
	ID         string
	ItemID     string
	OldContent string
	EditedAt   time.Time
}

// Generation is one invocation of the generation workflow for a client and
// date. Immutable once created; regeneration always creates a new one.
type Generation struct {
	ID            string
	ClientID      string
	Date          string // YYYY-MM-DD
	PromptVersion string
	CreatedAt     time.Time
}

// GenerationResult is one channel's output within a generation.
type GenerationResult struct {
	ID           string
	GenerationID string
	ChannelID    string
	Style        string
	Language     string
	Text         string
	Model        string
	LatencyMs    int
	CreatedAt    time.Time
}

// ChannelSetting holds per-client per-channel defaults, uniquely keyed by
// (client, channel).
type ChannelSetting struct {
	ID              string
	ClientID        string
	ChannelID       string
	IsActive        bool
	DefaultStyle    string
	DefaultLanguage string
	DefaultLength   string
}

// GenerationSettings holds per-client generation preferences.
type GenerationSettings struct {
	ID                       string
	ClientID                 string
	CustomInstruction        *string
	SeparateBusinessPersonal bool
}

// PublishedPost maps one generation result to the public read surface.
type PublishedPost struct {
	ID                 string
	GenerationResultID string
	ClientID           string
	Slug               string
	PublishedAt        time.Time
}

// PublishedPostRow is a published post joined with its generation result and
// parent generation, as served by the public read surface.
type PublishedPostRow struct {
	Post       PublishedPost
	Result     GenerationResult
	Generation Generation
}

// DaySummary aggregates one day's activity for the day listing.
type DaySummary struct {
	Date            string
	InputCount      int
	GenerationCount int
}

// CalendarDay is one date with its published post count.
type CalendarDay struct {
	Date      string
	PostCount int
}

// ArchiveMonth is one month key (YYYY-MM) with its published post count.
type ArchiveMonth struct {
	Month     string
	PostCount int
}
