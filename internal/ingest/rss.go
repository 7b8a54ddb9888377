// Package ingest turns RSS/Atom feeds into RawArticle records: markup
// stripped, summaries length-capped, source name resolved. The core
// pipeline consumes its output as-is and does not re-sanitize.
package ingest

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"

	"github.com/agenthands/newsbrief/internal/core/model"
)

// maxSummaryLen caps feed summaries, in runes, before they reach the
// core.
const maxSummaryLen = 500

type Fetcher struct {
	parser *gofeed.Parser
	logger *zap.Logger
}

func NewFetcher(client *http.Client, logger *zap.Logger) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	parser := gofeed.NewParser()
	parser.Client = client
	return &Fetcher{parser: parser, logger: logger}
}

// FetchAll collects articles from every feed URL in order. A feed that
// fails to fetch or parse is logged and skipped; the rest still
// contribute.
func (f *Fetcher) FetchAll(ctx context.Context, feedURLs []string) []model.RawArticle {
	var all []model.RawArticle
	for _, feedURL := range feedURLs {
		articles, err := f.Fetch(ctx, feedURL)
		if err != nil {
			f.logger.Error("failed to fetch feed",
				zap.String("url", feedURL), zap.Error(err))
			continue
		}
		all = append(all, articles...)
	}
	f.logger.Info("feeds collected", zap.Int("articles", len(all)))
	return all
}

// Fetch parses one feed. Entries missing a title or link are dropped.
func (f *Fetcher) Fetch(ctx context.Context, feedURL string) ([]model.RawArticle, error) {
	feed, err := f.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, err
	}

	source := sourceName(feed, feedURL)
	articles := make([]model.RawArticle, 0, len(feed.Items))
	for _, item := range feed.Items {
		title := strings.TrimSpace(item.Title)
		link := strings.TrimSpace(item.Link)
		if title == "" || link == "" {
			continue
		}

		articles = append(articles, model.RawArticle{
			Title:   title,
			Link:    link,
			Summary: cleanSummary(itemSummary(item)),
			Source:  source,
		})
	}

	f.logger.Debug("feed parsed",
		zap.String("source", source), zap.Int("entries", len(articles)))
	return articles, nil
}

// itemSummary picks the first populated body field, preferring the
// short description over full content.
func itemSummary(item *gofeed.Item) string {
	if item.Description != "" {
		return item.Description
	}
	return item.Content
}

// cleanSummary strips markup and caps length at maxSummaryLen runes.
// Truncation happens on rune boundaries so multi-byte text stays valid
// UTF-8.
func cleanSummary(raw string) string {
	text := raw
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw)); err == nil {
		text = doc.Text()
	}
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) > maxSummaryLen {
		runes := []rune(text)
		text = string(runes[:maxSummaryLen-3]) + "..."
	}
	return text
}

// sourceName resolves a readable source: feed title, then feed link
// host, then the feed URL host.
func sourceName(feed *gofeed.Feed, feedURL string) string {
	if title := strings.TrimSpace(feed.Title); title != "" {
		return title
	}
	if feed.Link != "" {
		if u, err := url.Parse(feed.Link); err == nil && u.Host != "" {
			return u.Host
		}
	}
	if u, err := url.Parse(feedURL); err == nil && u.Host != "" {
		return u.Host
	}
	return "Unknown Source"
}
