package generation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/daycast/daycast/app/catalog"
	"github.com/daycast/daycast/app/database"
)

// GenerateRequest is the inbound generate operation.
type GenerateRequest struct {
	ClientID         string
	Date             string
	ChannelIDs       []string
	StyleOverride    string
	LanguageOverride string
}

// RegenerateRequest is the inbound regenerate operation. Channels default to
// the prior generation's own when not given.
type RegenerateRequest struct {
	ClientID     string
	GenerationID string
	ChannelIDs   []string
}

// Record is a persisted generation with its results.
type Record struct {
	Generation database.Generation
	Results    []database.GenerationResult
}

// Orchestrator drives the full generation state machine for the HTTP flows:
// load inputs and settings, resolve target channels, run the service, then
// persist one new generation with its results atomically.
type Orchestrator struct {
	catalog  *catalog.Catalog
	service  *Service
	items    database.InputItemRepository
	gens     database.GenerationRepository
	settings database.SettingsRepository
}

// NewOrchestrator creates a new generation orchestrator
func NewOrchestrator(
	cat *catalog.Catalog,
	service *Service,
	items database.InputItemRepository,
	gens database.GenerationRepository,
	settings database.SettingsRepository,
) *Orchestrator {
	return &Orchestrator{
		catalog:  cat,
		service:  service,
		items:    items,
		gens:     gens,
		settings: settings,
	}
}

// Generate runs the full generate flow for one client and date.
func (o *Orchestrator) Generate(ctx context.Context, req GenerateRequest) (*Record, error) {
	items, err := o.loadItems(req.ClientID, req.Date)
	if err != nil {
		return nil, err
	}

	stored, settingsMap, err := o.loadSettings(req.ClientID)
	if err != nil {
		return nil, err
	}

	channelIDs, err := o.resolveTargetChannels(req.ChannelIDs, stored)
	if err != nil {
		return nil, err
	}

	outcome, err := o.service.Generate(ctx, GenerateParams{
		Items:            items,
		ChannelIDs:       channelIDs,
		StyleOverride:    req.StyleOverride,
		LanguageOverride: req.LanguageOverride,
		Settings:         settingsMap,
	})
	if err != nil {
		return nil, err
	}

	return o.persist(req.ClientID, req.Date, outcome)
}

// Regenerate runs the regenerate flow against a prior generation. The prior
// generation is never mutated; a new one is always created.
func (o *Orchestrator) Regenerate(ctx context.Context, req RegenerateRequest) (*Record, error) {
	prior, err := o.gens.GetByID(req.ClientID, req.GenerationID)
	if err != nil {
		return nil, err
	}
	if prior == nil {
		return nil, ErrGenerationNotFound
	}

	priorResults, err := o.gens.ListResults(prior.ID)
	if err != nil {
		return nil, err
	}

	items, err := o.loadItems(req.ClientID, prior.Date)
	if err != nil {
		return nil, err
	}

	channelIDs := req.ChannelIDs
	if len(channelIDs) > 0 {
		for _, id := range channelIDs {
			if _, ok := o.catalog.Channels[id]; !ok {
				return nil, &UnknownChannelError{ChannelID: id}
			}
		}
	} else {
		for _, r := range priorResults {
			channelIDs = append(channelIDs, r.ChannelID)
		}
	}

	selected := make(map[string]bool, len(channelIDs))
	for _, id := range channelIDs {
		selected[id] = true
	}
	var previous []PreviousResult
	for _, r := range priorResults {
		if selected[r.ChannelID] {
			previous = append(previous, PreviousResult{ChannelID: r.ChannelID, Text: r.Text})
		}
	}

	_, settingsMap, err := o.loadSettings(req.ClientID)
	if err != nil {
		return nil, err
	}

	outcome, err := o.service.Regenerate(ctx, RegenerateParams{
		GenerateParams: GenerateParams{
			Items:      items,
			ChannelIDs: channelIDs,
			Settings:   settingsMap,
		},
		Previous: previous,
	})
	if err != nil {
		return nil, err
	}

	return o.persist(req.ClientID, prior.Date, outcome)
}

func (o *Orchestrator) loadItems(clientID, date string) ([]Item, error) {
	stored, err := o.items.ListByDate(clientID, date, false)
	if err != nil {
		return nil, fmt.Errorf("failed to load input items: %w", err)
	}
	if len(stored) == 0 {
		return nil, ErrNoInputItems
	}

	items := make([]Item, 0, len(stored))
	for _, it := range stored {
		items = append(items, Item{
			Type:          it.Type,
			Content:       it.Content,
			ExtractedText: it.ExtractedText,
		})
	}
	return items, nil
}

func (o *Orchestrator) loadSettings(clientID string) ([]database.ChannelSetting, map[string]ChannelSettingData, error) {
	stored, err := o.settings.ListChannelSettings(clientID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load channel settings: %w", err)
	}

	settingsMap := make(map[string]ChannelSettingData, len(stored))
	for _, cs := range stored {
		settingsMap[cs.ChannelID] = ChannelSettingData{
			DefaultStyle:    cs.DefaultStyle,
			DefaultLanguage: cs.DefaultLanguage,
			DefaultLength:   cs.DefaultLength,
		}
	}
	return stored, settingsMap, nil
}

// resolveTargetChannels picks the channels to generate for: an explicit list
// validated against the catalog, else the client's active channels, else the
// whole catalog when no settings exist.
func (o *Orchestrator) resolveTargetChannels(explicit []string, stored []database.ChannelSetting) ([]string, error) {
	if len(explicit) > 0 {
		for _, id := range explicit {
			if _, ok := o.catalog.Channels[id]; !ok {
				return nil, &UnknownChannelError{ChannelID: id}
			}
		}
		return explicit, nil
	}

	if len(stored) > 0 {
		var active []string
		for _, cs := range stored {
			if cs.IsActive {
				active = append(active, cs.ChannelID)
			}
		}
		if len(active) == 0 {
			return nil, ErrNoChannels
		}
		return active, nil
	}

	return o.catalog.ChannelIDs(), nil
}

func (o *Orchestrator) persist(clientID, date string, outcome *Outcome) (*Record, error) {
	gen := database.Generation{
		ClientID:      clientID,
		Date:          date,
		PromptVersion: outcome.PromptVersion,
	}

	results := make([]database.GenerationResult, 0, len(outcome.Results))
	for _, r := range outcome.Results {
		results = append(results, database.GenerationResult{
			ChannelID: r.ChannelID,
			Style:     r.Style,
			Language:  r.Language,
			Text:      r.Text,
			Model:     outcome.Model,
			LatencyMs: outcome.LatencyMs,
		})
	}

	if err := o.gens.CreateWithResults(&gen, results); err != nil {
		return nil, err
	}

	slog.Info("Generation persisted",
		"generation_id", gen.ID,
		"date", date,
		"prompt_version", outcome.PromptVersion,
		"results", len(results))

	return &Record{Generation: gen, Results: results}, nil
}
