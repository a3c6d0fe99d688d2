package database

import "time"

type InputItemRepository interface {
	Create(item *InputItem) error
	GetByID(clientID, itemID string) (*InputItem, error)
	// ListByDate returns the date's items ordered by creation time.
	// Cleared items are included only when includeCleared is set.
	ListByDate(clientID, date string, includeCleared bool) ([]InputItem, error)
	ListEdits(itemID string) ([]InputItemEdit, error)
	// UpdateContent replaces the item content, recording the old content as
	// an edit history entry in the same transaction.
	UpdateContent(itemID, oldContent, newContent string) error
	UpdateFlags(itemID string, importance *int, includeInGeneration *bool) error
	Clear(itemID string) error
	ClearDay(clientID, date string) error
	DeleteDay(clientID, date string) error
	ListDays(clientID string, limit int, cursor, search string) ([]DaySummary, error)
}

type GenerationRepository interface {
	// CreateWithResults persists a generation and its results atomically.
	CreateWithResults(gen *Generation, results []GenerationResult) error
	GetByID(clientID, generationID string) (*Generation, error)
	ListResults(generationID string) ([]GenerationResult, error)
	ListByDate(clientID, date string) ([]Generation, error)
	CountByDate(clientID, date string) (int, error)
	DeleteDay(clientID, date string) error
	// GetOwnedResult returns a generation result together with its parent
	// generation, scoped to the owning client.
	GetOwnedResult(clientID, resultID string) (*GenerationResult, *Generation, error)
}

type SettingsRepository interface {
	ListChannelSettings(clientID string) ([]ChannelSetting, error)
	UpsertChannelSettings(clientID string, settings []ChannelSetting) error
	GetGenerationSettings(clientID string) (*GenerationSettings, error)
	SaveGenerationSettings(settings *GenerationSettings) error
}

type PublishedPostRepository interface {
	Create(post *PublishedPost) error
	GetByResultID(resultID string) (*PublishedPost, error)
	GetRowBySlug(slug string) (*PublishedPostRow, error)
	Delete(clientID, postID string) error
	// List returns published posts newest first. Zero-value filters are
	// ignored; before bounds the page for cursor pagination.
	List(limit int, before *time.Time, channel, language, date string) ([]PublishedPostRow, error)
	ListByResultIDs(clientID string, resultIDs []string) ([]PublishedPost, error)
	Calendar(from, to string) ([]CalendarDay, error)
	Archive() ([]ArchiveMonth, error)
	Stats() (totalPosts, totalDays int, channelsUsed []string, err error)
}

type UserRepository interface {
	Create(user *User) error
	GetByUsername(username string) (*User, error)
	// EnsureClient creates the client row if it does not exist yet.
	EnsureClient(clientID string) error
}
