package feed

import (
	"context"
	"fmt"
	"time"

	"newsdesk/types"

	"github.com/mmcdole/gofeed"
)

// RSSSource adapts an RSS/Atom feed into the pool's Source interface so a
// market can be backed by a wire feed instead of the JSON endpoint.
type RSSSource struct {
	market string
	url    string
	parser *gofeed.Parser
}

// NewRSSSource builds a source that tags every item with the given market.
func NewRSSSource(market, feedURL string) *RSSSource {
	return &RSSSource{
		market: market,
		url:    feedURL,
		parser: gofeed.NewParser(),
	}
}

func (s *RSSSource) Name() string { return "rss:" + s.market }

// Fetch retrieves and parses the feed, returning item metadata.
func (s *RSSSource) Fetch(ctx context.Context) ([]*types.SourceItem, error) {
	parsed, err := s.parser.ParseURLWithContext(s.url, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch rss for %s: %w", s.market, err)
	}

	items := make([]*types.SourceItem, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		var publishedAt time.Time
		if item.PublishedParsed != nil {
			publishedAt = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			publishedAt = *item.UpdatedParsed
		}

		source := ""
		if item.Author != nil {
			source = item.Author.Name
		}

		summary := item.Description
		if summary == "" {
			summary = item.Content
		}

		si := &types.SourceItem{
			ID:          types.ItemID(item.Link, item.Title),
			Title:       item.Title,
			Content:     item.Content,
			Summary:     summary,
			Source:      source,
			Market:      s.market,
			Link:        item.Link,
			PublishedAt: publishedAt,
		}
		if item.Image != nil {
			si.Thumbnail = item.Image.URL
		}

		items = append(items, si)
	}

	return items, nil
}
