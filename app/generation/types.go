package generation

// Item is one generation input, already loaded from storage.
type Item struct {
	Type          string
	Content       string
	ExtractedText *string
}

// ChannelSettingData carries the per-channel defaults the resolver consumes.
type ChannelSettingData struct {
	DefaultStyle    string
	DefaultLanguage string
	DefaultLength   string
}

// PreviousResult is one prior channel draft forwarded on regeneration.
type PreviousResult struct {
	ChannelID string
	Text      string
}

// ChannelResult is one channel's generated draft with its resolved
// presentation parameters.
type ChannelResult struct {
	ChannelID string
	Style     string
	Language  string
	Text      string
}

// Outcome is the product of one successful generation round trip.
type Outcome struct {
	Results       []ChannelResult
	Model         string
	LatencyMs     int
	PromptVersion string
}
