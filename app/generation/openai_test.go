package generation

import (
	"testing"
	"time"
)

func TestBuildCompletionParams(t *testing.T) {
	req := Request{
		Prompt: "Write something nice.",
		Images: []Attachment{
			{DataURL: "data:image/png;base64,aGVsbG8="},
		},
		Model:       "gpt-4o",
		Temperature: 0.8,
		MaxTokens:   2000,
		Timeout:     60 * time.Second,
	}

	params := buildCompletionParams(req)

	if string(params.Model) != "gpt-4o" {
		t.Errorf("Expected model gpt-4o, got %s", params.Model)
	}
	if params.Temperature.Value != 0.8 {
		t.Errorf("Expected temperature 0.8, got %v", params.Temperature.Value)
	}
	if params.MaxCompletionTokens.Value != 2000 {
		t.Errorf("Expected max tokens 2000, got %v", params.MaxCompletionTokens.Value)
	}

	if len(params.Messages) != 1 {
		t.Fatalf("Expected a single message, got %d", len(params.Messages))
	}
	user := params.Messages[0].OfUser
	if user == nil {
		t.Fatal("Expected a user message")
	}

	parts := user.Content.OfArrayOfContentParts
	if len(parts) != 2 {
		t.Fatalf("Expected 2 content parts, got %d", len(parts))
	}
	if parts[0].OfText == nil || parts[0].OfText.Text != req.Prompt {
		t.Error("Expected first part to carry the prompt text")
	}
	if parts[1].OfImageURL == nil || parts[1].OfImageURL.ImageURL.URL != req.Images[0].DataURL {
		t.Error("Expected second part to carry the image data URL")
	}
}

func TestBuildCompletionParams_TextOnly(t *testing.T) {
	params := buildCompletionParams(Request{Prompt: "Just text.", Model: "gpt-4o"})

	parts := params.Messages[0].OfUser.Content.OfArrayOfContentParts
	if len(parts) != 1 {
		t.Fatalf("Expected 1 content part, got %d", len(parts))
	}
	if parts[0].OfText == nil {
		t.Error("Expected a text part")
	}
}
