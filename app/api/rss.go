package api

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"html"
	"log/slog"
	"time"

	"github.com/daycast/daycast/app/cfg"
	"github.com/daycast/daycast/app/database"
	"github.com/yuin/goldmark"
)

// RSSGenerator renders the public feed of published posts as RSS 2.0.
type RSSGenerator struct {
	markdown goldmark.Markdown
}

func NewRSSGenerator() *RSSGenerator {
	return &RSSGenerator{markdown: goldmark.New()}
}

func (g *RSSGenerator) Run(rows []database.PublishedPostRow) string {
	var buf bytes.Buffer

	baseURL := cfg.Get().BaseUrl
	if baseURL == "" {
		baseURL = fmt.Sprintf("http://localhost:%s", cfg.Get().Port)
	}

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n")
	buf.WriteString(`<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/" xmlns:atom="http://www.w3.org/2005/Atom">`)
	buf.WriteString("\n  <channel>\n")

	g.writeElement(&buf, "title", "DayCast", 4)
	g.writeElement(&buf, "link", baseURL, 4)
	g.writeElement(&buf, "description", "Generated posts from daily notes", 4)
	buf.WriteString(fmt.Sprintf("    <atom:link href=\"%s\" rel=\"self\" type=\"application/rss+xml\" />\n",
		html.EscapeString(baseURL+"/api/v1/public/rss")))

	lastBuildDate := time.Now().UTC()
	if len(rows) > 0 {
		lastBuildDate = rows[0].Post.PublishedAt
	}
	g.writeElement(&buf, "lastBuildDate", lastBuildDate.Format(time.RFC1123Z), 4)
	g.writeElement(&buf, "generator", fmt.Sprintf("DayCast/%s", cfg.Get().Version), 4)

	for _, row := range rows {
		g.writeItem(&buf, baseURL, row)
	}

	buf.WriteString("  </channel>\n</rss>")

	return buf.String()
}

func (g *RSSGenerator) writeItem(buf *bytes.Buffer, baseURL string, row database.PublishedPostRow) {
	buf.WriteString("    <item>\n")

	buf.WriteString(`      <guid isPermaLink="false">`)
	xml.EscapeText(buf, []byte(row.Post.ID))
	buf.WriteString("</guid>\n")

	g.writeElement(buf, "title", fmt.Sprintf("%s - %s", row.Result.ChannelID, row.Generation.Date), 6)
	g.writeElement(buf, "link", fmt.Sprintf("%s/post/%s", baseURL, row.Post.Slug), 6)

	g.writeElement(buf, "description", truncate(row.Result.Text, 500), 6)

	var rendered bytes.Buffer
	if err := g.markdown.Convert([]byte(row.Result.Text), &rendered); err != nil {
		slog.Error("Markdown rendering failed", "post", row.Post.ID, "error", err)
	} else {
		buf.WriteString("      <content:encoded><![CDATA[")
		buf.Write(rendered.Bytes())
		buf.WriteString("]]></content:encoded>\n")
	}

	g.writeElement(buf, "pubDate", row.Post.PublishedAt.Format(time.RFC1123Z), 6)
	g.writeElement(buf, "category", row.Result.ChannelID, 6)

	buf.WriteString("    </item>\n")
}

func (g *RSSGenerator) writeElement(buf *bytes.Buffer, tag, value string, indent int) {
	for i := 0; i < indent; i++ {
		buf.WriteByte(' ')
	}
	buf.WriteString("<" + tag + ">")
	xml.EscapeText(buf, []byte(value))
	buf.WriteString("</" + tag + ">\n")
}
