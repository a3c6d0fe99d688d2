package extractor

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	nurl "net/url"
	"time"
	"unicode/utf8"

	"github.com/go-shiori/go-readability"
)

const (
	maxExtractedLength = 2000
	fetchTimeout       = 15 * time.Second
	maxBodySize        = 5 * 1024 * 1024
)

// Extractor fetches a URL and pulls out its main text content for use as
// generation input.
type Extractor struct {
	client *http.Client
}

// NewExtractor creates a new URL content extractor
func NewExtractor() *Extractor {
	return &Extractor{
		client: &http.Client{Timeout: fetchTimeout},
	}
}

// Run fetches the URL and extracts readable text, capped at 2000 characters.
// Exactly one of the return values is set: text on success, an error message
// suitable for storing alongside the item on failure.
func (e *Extractor) Run(url string) (text string, errMsg string) {
	resp, err := e.client.Get(url)
	if err != nil {
		return "", fmt.Sprintf("Fetch failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Sprintf("Fetch failed: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", fmt.Sprintf("Fetch failed: %v", err)
	}

	parsed, _ := nurl.Parse(url)
	article, err := readability.FromReader(bytes.NewReader(body), parsed)
	if err != nil {
		return "", "No content extracted"
	}
	if article.TextContent == "" {
		return "", "No content extracted"
	}

	extracted := article.TextContent
	if utf8.RuneCountInString(extracted) > maxExtractedLength {
		// Cap by characters, not bytes, so Cyrillic text is not cut
		// mid-rune.
		extracted = string([]rune(extracted)[:maxExtractedLength])
	}

	slog.Debug("Content extracted successfully",
		"url", url,
		"title", article.Title,
		"content_length", len(extracted))

	return extracted, ""
}
