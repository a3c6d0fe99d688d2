package generation

import (
	"strings"
	"testing"
)

func TestParseResults_ValidPayload(t *testing.T) {
	raw := `{"results": [{"channel_id": "blog", "text": "Draft one"}, {"channel_id": "twitter", "text": "Draft two"}]}`

	results, err := parseResults(raw)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results[0].ChannelID != "blog" || results[0].Text != "Draft one" {
		t.Errorf("Unexpected first result: %+v", results[0])
	}
}

func TestParseResults_StripsCodeFence(t *testing.T) {
	raw := "```json\n{\"results\": [{\"channel_id\": \"blog\", \"text\": \"Draft\"}]}\n```"

	results, err := parseResults(raw)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(results) != 1 || results[0].ChannelID != "blog" {
		t.Errorf("Unexpected results: %+v", results)
	}
}

func TestParseResults_InvalidJSON(t *testing.T) {
	if _, err := parseResults("not json at all"); err == nil {
		t.Error("Expected error for invalid JSON")
	}
}

func TestParseResults_MissingResultsArray(t *testing.T) {
	_, err := parseResults(`{"posts": []}`)
	if err == nil {
		t.Fatal("Expected error for missing results array")
	}
	if !strings.Contains(err.Error(), "missing results") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestParseResults_EmptyResultsArrayIsValid(t *testing.T) {
	results, err := parseResults(`{"results": []}`)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Expected empty results, got %d", len(results))
	}
}

func TestParseResults_MissingFields(t *testing.T) {
	cases := map[string]string{
		"missing text":       `{"results": [{"channel_id": "blog"}]}`,
		"missing channel_id": `{"results": [{"text": "Draft"}]}`,
		"empty text":         `{"results": [{"channel_id": "blog", "text": ""}]}`,
	}

	for name, raw := range cases {
		if _, err := parseResults(raw); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestStripCodeFence_NoFence(t *testing.T) {
	if got := stripCodeFence("  {\"a\": 1}  "); got != `{"a": 1}` {
		t.Errorf("Unexpected result: %q", got)
	}
}
