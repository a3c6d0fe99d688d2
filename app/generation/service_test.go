package generation

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type mockProvider struct {
	responses []string
	err       error
	calls     int
	requests  []Request
}

func (m *mockProvider) Complete(ctx context.Context, req Request) (*Response, error) {
	m.calls++
	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}

	idx := m.calls - 1
	if idx >= len(m.responses) {
		idx = len(m.responses) - 1
	}
	return &Response{Raw: m.responses[idx], Model: "gpt-5.2", LatencyMs: 120}, nil
}

const goodPayload = `{"results": [{"channel_id": "blog", "text": "Fresh draft"}]}`

func TestService_Generate_Success(t *testing.T) {
	provider := &mockProvider{responses: []string{goodPayload}}
	svc := NewService(testCatalog(), provider, &fakeBlobs{})

	outcome, err := svc.Generate(context.Background(), GenerateParams{
		Items:      []Item{{Type: "text", Content: "Today's note"}},
		ChannelIDs: []string{"blog"},
		Settings:   map[string]ChannelSettingData{},
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if provider.calls != 1 {
		t.Errorf("Expected 1 provider call, got %d", provider.calls)
	}
	if outcome.Model != "gpt-5.2" {
		t.Errorf("Expected provider-reported model, got %s", outcome.Model)
	}
	if outcome.PromptVersion != PromptVersionGenerate {
		t.Errorf("Expected generate_v1, got %s", outcome.PromptVersion)
	}
	if len(outcome.Results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(outcome.Results))
	}

	r := outcome.Results[0]
	if r.ChannelID != "blog" || r.Text != "Fresh draft" {
		t.Errorf("Unexpected result: %+v", r)
	}
	if r.Style != "casual" || r.Language != "ru" {
		t.Errorf("Expected default style/language on result, got %s/%s", r.Style, r.Language)
	}
}

func TestService_Generate_RetriesInvalidPayload(t *testing.T) {
	provider := &mockProvider{responses: []string{"garbage", "```\nstill garbage\n```", goodPayload}}
	svc := NewService(testCatalog(), provider, &fakeBlobs{})

	outcome, err := svc.Generate(context.Background(), GenerateParams{
		Items:      []Item{{Type: "text", Content: "Note"}},
		ChannelIDs: []string{"blog"},
		Settings:   map[string]ChannelSettingData{},
	})
	if err != nil {
		t.Fatalf("Expected success on third attempt, got %v", err)
	}

	if provider.calls != 3 {
		t.Errorf("Expected 3 provider calls, got %d", provider.calls)
	}
	if outcome.Results[0].Text != "Fresh draft" {
		t.Errorf("Unexpected text: %s", outcome.Results[0].Text)
	}
}

func TestService_Generate_ExhaustedRetries(t *testing.T) {
	provider := &mockProvider{responses: []string{"garbage"}}
	svc := NewService(testCatalog(), provider, &fakeBlobs{})

	_, err := svc.Generate(context.Background(), GenerateParams{
		Items:      []Item{{Type: "text", Content: "Note"}},
		ChannelIDs: []string{"blog"},
		Settings:   map[string]ChannelSettingData{},
	})

	if provider.calls != 3 {
		t.Errorf("Expected 3 provider calls, got %d", provider.calls)
	}

	var ire *InvalidResponseError
	if !errors.As(err, &ire) {
		t.Fatalf("Expected InvalidResponseError, got %v", err)
	}
	if ire.Attempts != 3 {
		t.Errorf("Expected 3 attempts recorded, got %d", ire.Attempts)
	}
}

func TestService_Generate_ProviderErrorNotRetried(t *testing.T) {
	provider := &mockProvider{err: &ProviderError{Err: errors.New("connection refused")}}
	svc := NewService(testCatalog(), provider, &fakeBlobs{})

	_, err := svc.Generate(context.Background(), GenerateParams{
		Items:      []Item{{Type: "text", Content: "Note"}},
		ChannelIDs: []string{"blog"},
		Settings:   map[string]ChannelSettingData{},
	})

	if provider.calls != 1 {
		t.Errorf("Expected 1 provider call, got %d", provider.calls)
	}
	var pe *ProviderError
	if !errors.As(err, &pe) {
		t.Errorf("Expected ProviderError, got %v", err)
	}
}

func TestService_Generate_OverridesReachResults(t *testing.T) {
	provider := &mockProvider{responses: []string{goodPayload}}
	svc := NewService(testCatalog(), provider, &fakeBlobs{})

	outcome, err := svc.Generate(context.Background(), GenerateParams{
		Items:            []Item{{Type: "text", Content: "Note"}},
		ChannelIDs:       []string{"blog"},
		StyleOverride:    "poetic",
		LanguageOverride: "en",
		Settings: map[string]ChannelSettingData{
			"blog": {DefaultStyle: "formal", DefaultLanguage: "ru"},
		},
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	r := outcome.Results[0]
	if r.Style != "poetic" || r.Language != "en" {
		t.Errorf("Expected overrides on result, got %s/%s", r.Style, r.Language)
	}

	prompt := provider.requests[0].Prompt
	if !strings.Contains(prompt, "Style: poetic | Language: en") {
		t.Errorf("Overrides missing from prompt:\n%s", prompt)
	}
}

func TestService_Generate_RequestCarriesCatalogParams(t *testing.T) {
	provider := &mockProvider{responses: []string{goodPayload}}
	svc := NewService(testCatalog(), provider, &fakeBlobs{})

	_, err := svc.Generate(context.Background(), GenerateParams{
		Items:      []Item{{Type: "text", Content: "Note"}},
		ChannelIDs: []string{"blog"},
		Settings:   map[string]ChannelSettingData{},
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	req := provider.requests[0]
	if req.Model != "gpt-4o" {
		t.Errorf("Expected catalog model, got %s", req.Model)
	}
	if req.Temperature != 0.8 || req.MaxTokens != 2000 {
		t.Errorf("Unexpected sampling parameters: %v/%d", req.Temperature, req.MaxTokens)
	}
}

func TestService_Regenerate_ForwardsPreviousDrafts(t *testing.T) {
	provider := &mockProvider{responses: []string{goodPayload}}
	svc := NewService(testCatalog(), provider, &fakeBlobs{})

	outcome, err := svc.Regenerate(context.Background(), RegenerateParams{
		GenerateParams: GenerateParams{
			Items:      []Item{{Type: "text", Content: "Note"}},
			ChannelIDs: []string{"blog"},
			Settings:   map[string]ChannelSettingData{},
		},
		Previous: []PreviousResult{{ChannelID: "blog", Text: "The rejected draft"}},
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if outcome.PromptVersion != PromptVersionRegenerate {
		t.Errorf("Expected regenerate_v1, got %s", outcome.PromptVersion)
	}
	if !strings.Contains(provider.requests[0].Prompt, "- blog: The rejected draft") {
		t.Error("Previous draft missing from regeneration prompt")
	}
}
