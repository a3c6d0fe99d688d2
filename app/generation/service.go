package generation

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/daycast/daycast/app/catalog"
)

// GenerateParams carries everything one generation round trip needs,
// already loaded from storage.
type GenerateParams struct {
	Items            []Item
	ChannelIDs       []string
	StyleOverride    string
	LanguageOverride string
	Settings         map[string]ChannelSettingData
}

// RegenerateParams additionally forwards the prior drafts to revise.
type RegenerateParams struct {
	GenerateParams
	Previous []PreviousResult
}

// Service runs the generation workflow end to end: resolve channel
// configuration, assemble the prompt, call the provider and validate the
// payload under the bounded retry policy. It holds no storage.
type Service struct {
	catalog   *catalog.Catalog
	provider  Provider
	assembler *Assembler
}

// NewService creates a new generation service
func NewService(cat *catalog.Catalog, provider Provider, blobs BlobReader) *Service {
	return &Service{
		catalog:   cat,
		provider:  provider,
		assembler: NewAssembler(cat, blobs),
	}
}

// Generate produces fresh drafts for the given channels.
func (s *Service) Generate(ctx context.Context, p GenerateParams) (*Outcome, error) {
	return s.run(ctx, PromptVersionGenerate, p, nil)
}

// Regenerate produces replacement drafts, steering the provider away from
// the previous ones.
func (s *Service) Regenerate(ctx context.Context, p RegenerateParams) (*Outcome, error) {
	return s.run(ctx, PromptVersionRegenerate, p.GenerateParams, p.Previous)
}

type roundTrip struct {
	entries   []resultEntry
	model     string
	latencyMs int
}

func (s *Service) run(ctx context.Context, version string, p GenerateParams, previous []PreviousResult) (*Outcome, error) {
	resolved := make(map[string]Resolved, len(p.ChannelIDs))
	for _, id := range p.ChannelIDs {
		resolved[id] = Resolve(id, p.StyleOverride, p.LanguageOverride, p.Settings)
	}

	prompt, images, err := s.assembler.Build(version, p.Items, p.ChannelIDs, resolved, previous)
	if err != nil {
		return nil, err
	}

	ai := s.catalog.AI
	req := Request{
		Prompt:      prompt,
		Images:      images,
		Model:       ai.Model,
		Temperature: ai.Temperature,
		MaxTokens:   ai.MaxTokens,
		Timeout:     time.Duration(ai.TimeoutSeconds) * time.Second,
	}

	rt, err := attempt(ai.Retries, func(attemptNo int) (roundTrip, error) {
		resp, err := s.provider.Complete(ctx, req)
		if err != nil {
			return roundTrip{}, err
		}

		entries, err := parseResults(resp.Raw)
		if err != nil {
			return roundTrip{}, err
		}

		slog.Info("Generation round trip succeeded",
			"prompt_version", version,
			"attempt", attemptNo,
			"latency_ms", resp.LatencyMs,
			"channels", len(entries))

		return roundTrip{entries: entries, model: resp.Model, latencyMs: resp.LatencyMs}, nil
	})
	if err != nil {
		var pe *ProviderError
		if errors.As(err, &pe) {
			return nil, err
		}
		return nil, &InvalidResponseError{Attempts: ai.Retries, LastErr: err}
	}

	results := make([]ChannelResult, 0, len(rt.entries))
	for _, e := range rt.entries {
		r, ok := resolved[e.ChannelID]
		if !ok {
			// Provider may answer for a channel we did not ask about.
			r = Resolve(e.ChannelID, p.StyleOverride, p.LanguageOverride, p.Settings)
		}
		results = append(results, ChannelResult{
			ChannelID: e.ChannelID,
			Style:     r.Style,
			Language:  r.Language,
			Text:      e.Text,
		})
	}

	return &Outcome{
		Results:       results,
		Model:         rt.model,
		LatencyMs:     rt.latencyMs,
		PromptVersion: version,
	}, nil
}
