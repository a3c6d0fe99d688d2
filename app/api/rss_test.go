package api

import (
	"strings"
	"testing"
	"time"

	"github.com/daycast/daycast/app/cfg"
	"github.com/daycast/daycast/app/database"
)

func TestRSSGenerator_Run(t *testing.T) {
	cfg.Set(&cfg.Cfg{BaseUrl: "https://daycast.example.com", Port: "8080", Version: "test"})

	publishedAt := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	rows := []database.PublishedPostRow{
		{
			Post: database.PublishedPost{
				ID:          "post-1",
				Slug:        "2026-08-28-blog-ab12",
				PublishedAt: publishedAt,
			},
			Result: database.GenerationResult{
				ChannelID: "blog",
				Language:  "en",
				Text:      "A day of **shipping** things.",
			},
			Generation: database.Generation{Date: "2026-08-28"},
		},
	}

	rss := NewRSSGenerator().Run(rows)

	if !strings.HasPrefix(rss, `<?xml version="1.0" encoding="UTF-8"?>`) {
		t.Error("Missing XML declaration")
	}
	if !strings.Contains(rss, "<title>DayCast</title>") {
		t.Error("Missing channel title")
	}
	if !strings.Contains(rss, "<title>blog - 2026-08-28</title>") {
		t.Errorf("Missing item title:\n%s", rss)
	}
	if !strings.Contains(rss, "<link>https://daycast.example.com/post/2026-08-28-blog-ab12</link>") {
		t.Errorf("Missing item link:\n%s", rss)
	}
	if !strings.Contains(rss, `<guid isPermaLink="false">post-1</guid>`) {
		t.Error("Missing item guid")
	}
	// Markdown is rendered to HTML inside content:encoded
	if !strings.Contains(rss, "<content:encoded><![CDATA[") || !strings.Contains(rss, "<strong>shipping</strong>") {
		t.Errorf("Missing rendered HTML content:\n%s", rss)
	}
	if !strings.Contains(rss, publishedAt.Format(time.RFC1123Z)) {
		t.Error("Missing pubDate")
	}
}

func TestRSSGenerator_Run_EmptyFeed(t *testing.T) {
	cfg.Set(&cfg.Cfg{BaseUrl: "", Port: "8080", Version: "test"})

	rss := NewRSSGenerator().Run(nil)

	if !strings.Contains(rss, "<link>http://localhost:8080</link>") {
		t.Errorf("Expected localhost fallback link:\n%s", rss)
	}
	if strings.Contains(rss, "<item>") {
		t.Error("Empty feed must not contain items")
	}
}

func TestMonthLabel(t *testing.T) {
	if got := monthLabel("2026-08"); got != "August 2026" {
		t.Errorf("Expected August 2026, got %s", got)
	}
	if got := monthLabel("garbage"); got != "garbage" {
		t.Errorf("Expected passthrough for malformed key, got %s", got)
	}
}
