package generation

import (
	"encoding/json"
	"fmt"
	"strings"
)

type resultEntry struct {
	ChannelID string `json:"channel_id"`
	Text      string `json:"text"`
}

// parseResults validates a raw provider payload. One surrounding markdown
// code fence is tolerated; the payload inside must be the results envelope
// with channel_id and text present on every entry.
func parseResults(raw string) ([]resultEntry, error) {
	text := stripCodeFence(raw)

	var envelope struct {
		Results []resultEntry `json:"results"`
	}
	if err := json.Unmarshal([]byte(text), &envelope); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if envelope.Results == nil {
		return nil, fmt.Errorf("missing results array")
	}
	for i, r := range envelope.Results {
		if r.ChannelID == "" || r.Text == "" {
			return nil, fmt.Errorf("result %d: missing channel_id or text", i)
		}
	}

	return envelope.Results, nil
}

func stripCodeFence(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	if idx := strings.Index(text, "\n"); idx >= 0 {
		text = text[idx+1:]
	} else {
		text = text[3:]
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")

	return strings.TrimSpace(text)
}
