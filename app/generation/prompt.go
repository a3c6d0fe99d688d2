package generation

import (
	"embed"
	"encoding/base64"
	"fmt"
	"log/slog"
	"mime"
	"path/filepath"
	"strings"

	"github.com/daycast/daycast/app/catalog"
)

//go:embed prompts/*.md
var promptFS embed.FS

// Prompt template versions, recorded on every persisted generation.
const (
	PromptVersionGenerate   = "generate_v1"
	PromptVersionRegenerate = "regenerate_v1"
)

// BlobReader loads stored image binaries referenced by image items.
type BlobReader interface {
	ReadBlob(path string) ([]byte, error)
}

// Attachment is one image forwarded to the provider as a data URL.
type Attachment struct {
	DataURL string
}

// Assembler renders prompt templates from input items and channel
// configuration.
type Assembler struct {
	catalog *catalog.Catalog
	blobs   BlobReader
}

// NewAssembler creates a new prompt assembler
func NewAssembler(cat *catalog.Catalog, blobs BlobReader) *Assembler {
	return &Assembler{catalog: cat, blobs: blobs}
}

// Build renders the prompt for the given template version and collects image
// attachments. Previous results are only substituted by the regeneration
// template.
func (a *Assembler) Build(version string, items []Item, channelIDs []string, resolved map[string]Resolved, previous []PreviousResult) (string, []Attachment, error) {
	raw, err := promptFS.ReadFile("prompts/" + version + ".md")
	if err != nil {
		return "", nil, fmt.Errorf("failed to load prompt template %s: %w", version, err)
	}

	prompt := string(raw)
	prompt = strings.ReplaceAll(prompt, "{items_block}", buildItemsBlock(items))
	prompt = strings.ReplaceAll(prompt, "{channels_block}", a.buildChannelsBlock(channelIDs, resolved))
	prompt = strings.ReplaceAll(prompt, "{previous_block}", buildPreviousBlock(previous))

	return prompt, a.collectAttachments(items), nil
}

// buildItemsBlock renders the numbered input item listing. Image items are
// referenced positionally; their binaries travel separately as attachments.
func buildItemsBlock(items []Item) string {
	var parts []string
	for i, item := range items {
		n := i + 1
		switch item.Type {
		case "text":
			parts = append(parts, fmt.Sprintf("[%d] Text: %s", n, item.Content))
		case "url":
			extracted := "(extraction failed)"
			if item.ExtractedText != nil && *item.ExtractedText != "" {
				extracted = *item.ExtractedText
			}
			parts = append(parts, fmt.Sprintf("[%d] URL: %s\nExtracted content: %s", n, item.Content, extracted))
		case "image":
			parts = append(parts, fmt.Sprintf("[%d] [Image - see attached]", n))
		}
	}
	return strings.Join(parts, "\n\n")
}

func (a *Assembler) buildChannelsBlock(channelIDs []string, resolved map[string]Resolved) string {
	var parts []string
	for _, id := range channelIDs {
		ch, ok := a.catalog.Channels[id]
		if !ok {
			continue
		}
		r := resolved[id]
		parts = append(parts, fmt.Sprintf(
			"- %s: %s: %s\n  Style: %s | Language: %s | Length: %s | Max length: %d chars",
			id, ch.Name, ch.Description,
			r.Style, r.Language, a.catalog.LengthDescription(r.Length), ch.MaxLength,
		))
	}
	return strings.Join(parts, "\n")
}

func buildPreviousBlock(previous []PreviousResult) string {
	var parts []string
	for _, p := range previous {
		parts = append(parts, fmt.Sprintf("- %s: %s", p.ChannelID, p.Text))
	}
	return strings.Join(parts, "\n")
}

// collectAttachments loads image item binaries as base64 data URLs. A missing
// blob is logged and skipped; the item stays in the text listing.
func (a *Assembler) collectAttachments(items []Item) []Attachment {
	var attachments []Attachment
	for _, item := range items {
		if item.Type != "image" {
			continue
		}

		data, err := a.blobs.ReadBlob(item.Content)
		if err != nil {
			slog.Warn("Image blob not readable", "path", item.Content, "error", err)
			continue
		}

		mimeType := mime.TypeByExtension(filepath.Ext(item.Content))
		if mimeType == "" {
			mimeType = "image/jpeg"
		}

		attachments = append(attachments, Attachment{
			DataURL: fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data)),
		})
	}
	return attachments
}
