package generation

import (
	"errors"
	"strings"
	"testing"

	"github.com/daycast/daycast/app/catalog"
)

type fakeBlobs struct {
	blobs map[string][]byte
}

func (f *fakeBlobs) ReadBlob(path string) ([]byte, error) {
	data, ok := f.blobs[path]
	if !ok {
		return nil, errors.New("not found")
	}
	return data, nil
}

func testCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		Channels: map[string]catalog.Channel{
			"blog":    {Name: "Blog", Description: "Long-form personal blog", MaxLength: 6000},
			"twitter": {Name: "Twitter", Description: "Short takes", MaxLength: 280},
		},
		Styles:    map[string]string{"casual": "Casual", "formal": "Formal"},
		Languages: map[string]string{"ru": "Russian", "en": "English"},
		Lengths: map[string]catalog.Length{
			"short":  {Description: "2-3 sentences"},
			"medium": {Description: "1-2 paragraphs, balanced"},
		},
		AI: catalog.AIParams{
			Model:          "gpt-4o",
			Temperature:    0.8,
			MaxTokens:      2000,
			TimeoutSeconds: 60,
			Retries:        3,
		},
	}
}

func strptr(s string) *string { return &s }

func TestBuildItemsBlock_AllTypes(t *testing.T) {
	items := []Item{
		{Type: "text", Content: "Shipped the release"},
		{Type: "url", Content: "https://example.com/post", ExtractedText: strptr("Article body")},
		{Type: "url", Content: "https://example.com/broken"},
		{Type: "image", Content: "client/2026-08-28/pic.jpg"},
	}

	block := buildItemsBlock(items)

	if !strings.Contains(block, "[1] Text: Shipped the release") {
		t.Errorf("Missing text item in block:\n%s", block)
	}
	if !strings.Contains(block, "[2] URL: https://example.com/post\nExtracted content: Article body") {
		t.Errorf("Missing extracted URL item in block:\n%s", block)
	}
	if !strings.Contains(block, "[3] URL: https://example.com/broken\nExtracted content: (extraction failed)") {
		t.Errorf("Missing failed extraction marker in block:\n%s", block)
	}
	if !strings.Contains(block, "[4] [Image - see attached]") {
		t.Errorf("Missing image reference in block:\n%s", block)
	}
}

func TestBuildChannelsBlock_ResolvedParameters(t *testing.T) {
	a := NewAssembler(testCatalog(), &fakeBlobs{})

	resolved := map[string]Resolved{
		"blog":    {Style: "formal", Language: "en", Length: "short"},
		"twitter": {Style: "casual", Language: "ru", Length: "medium"},
	}

	block := a.buildChannelsBlock([]string{"blog", "twitter"}, resolved)

	if !strings.Contains(block, "- blog: Blog: Long-form personal blog") {
		t.Errorf("Missing blog channel line:\n%s", block)
	}
	if !strings.Contains(block, "Style: formal | Language: en | Length: 2-3 sentences | Max length: 6000 chars") {
		t.Errorf("Missing resolved blog parameters:\n%s", block)
	}
	if !strings.Contains(block, "Style: casual | Language: ru | Length: 1-2 paragraphs, balanced | Max length: 280 chars") {
		t.Errorf("Missing resolved twitter parameters:\n%s", block)
	}
}

func TestAssembler_Build_SubstitutesBlocks(t *testing.T) {
	a := NewAssembler(testCatalog(), &fakeBlobs{})

	items := []Item{{Type: "text", Content: "Note for today"}}
	resolved := map[string]Resolved{"blog": {Style: "casual", Language: "ru", Length: "medium"}}

	prompt, attachments, err := a.Build(PromptVersionGenerate, items, []string{"blog"}, resolved, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if strings.Contains(prompt, "{items_block}") || strings.Contains(prompt, "{channels_block}") {
		t.Error("Placeholders were not substituted")
	}
	if !strings.Contains(prompt, "Note for today") {
		t.Error("Items block missing from rendered prompt")
	}
	if len(attachments) != 0 {
		t.Errorf("Expected no attachments, got %d", len(attachments))
	}
}

func TestAssembler_Build_RegenerateIncludesPrevious(t *testing.T) {
	a := NewAssembler(testCatalog(), &fakeBlobs{})

	items := []Item{{Type: "text", Content: "Note"}}
	resolved := map[string]Resolved{"blog": {Style: "casual", Language: "ru", Length: "medium"}}
	previous := []PreviousResult{{ChannelID: "blog", Text: "Old draft text"}}

	prompt, _, err := a.Build(PromptVersionRegenerate, items, []string{"blog"}, resolved, previous)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !strings.Contains(prompt, "- blog: Old draft text") {
		t.Errorf("Previous block missing from rendered prompt:\n%s", prompt)
	}
}

func TestCollectAttachments_DataURLAndMissingBlob(t *testing.T) {
	blobs := &fakeBlobs{blobs: map[string][]byte{
		"client/2026-08-28/pic.png": []byte("pngdata"),
	}}
	a := NewAssembler(testCatalog(), blobs)

	items := []Item{
		{Type: "image", Content: "client/2026-08-28/pic.png"},
		{Type: "image", Content: "client/2026-08-28/gone.jpg"},
		{Type: "text", Content: "Not an image"},
	}

	attachments := a.collectAttachments(items)

	if len(attachments) != 1 {
		t.Fatalf("Expected 1 attachment, got %d", len(attachments))
	}
	if !strings.HasPrefix(attachments[0].DataURL, "data:image/png;base64,") {
		t.Errorf("Unexpected data URL prefix: %s", attachments[0].DataURL)
	}
}
