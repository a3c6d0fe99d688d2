package catalog

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Loader handles loading and validation of the product catalog
type Loader struct {
	path string
}

// NewLoader creates a new catalog loader
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load reads and validates the product catalog file
func (l *Loader) Load() (*Catalog, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
	}

	l.setDefaults(&c)

	if err := l.validate(&c); err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", l.path, err)
	}

	return &c, nil
}

// setDefaults applies default values to the catalog
func (l *Loader) setDefaults(c *Catalog) {
	if c.AI.Temperature == 0 {
		c.AI.Temperature = 0.8
	}
	if c.AI.MaxTokens == 0 {
		c.AI.MaxTokens = 2000
	}
	if c.AI.TimeoutSeconds == 0 {
		c.AI.TimeoutSeconds = 60
	}
	if c.AI.Retries == 0 {
		c.AI.Retries = 3
	}
	if c.RateLimits.APIRequestsPerMinute == 0 {
		c.RateLimits.APIRequestsPerMinute = 60
	}
	if c.RateLimits.AIGenerationsPerDay == 0 {
		c.RateLimits.AIGenerationsPerDay = 20
	}
	if c.Lengths == nil {
		c.Lengths = map[string]Length{}
	}
}

// validate validates the catalog
func (l *Loader) validate(c *Catalog) error {
	if len(c.Channels) == 0 {
		return fmt.Errorf("at least one channel is required")
	}
	for id, ch := range c.Channels {
		if ch.Name == "" {
			return fmt.Errorf("channel %q: name is required", id)
		}
		if ch.MaxLength <= 0 {
			return fmt.Errorf("channel %q: max_length must be positive", id)
		}
	}
	if c.AI.Model == "" {
		return fmt.Errorf("ai.model is required")
	}
	if c.AI.Retries < 1 {
		return fmt.Errorf("ai.retries must be at least 1")
	}
	return nil
}

// LengthDescription returns the human-readable descriptor for a length id,
// falling back to the "medium" default when the id is unknown.
func (c *Catalog) LengthDescription(lengthID string) string {
	if l, ok := c.Lengths[lengthID]; ok && l.Description != "" {
		return l.Description
	}
	return "1-2 paragraphs, balanced"
}

// ChannelIDs returns all channel ids in the catalog, sorted so that prompts
// built from the full catalog are stable between runs.
func (c *Catalog) ChannelIDs() []string {
	ids := make([]string, 0, len(c.Channels))
	for id := range c.Channels {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
