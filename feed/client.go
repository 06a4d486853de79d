package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"newsdesk/config"
	"newsdesk/types"
)

// Source yields the current item set for one upstream partition.
type Source interface {
	Fetch(ctx context.Context) ([]*types.SourceItem, error)
	Name() string
}

// Client talks to the JSON market-feed endpoint (GET <base>?market=<code>).
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a feed client with the standard call timeout.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: config.HTTPTimeout,
		},
	}
}

// MarketSource returns a Source bound to one market code.
func (c *Client) MarketSource(market string) Source {
	return &marketSource{client: c, market: market}
}

type marketSource struct {
	client *Client
	market string
}

func (s *marketSource) Name() string { return "feed:" + s.market }

func (s *marketSource) Fetch(ctx context.Context) ([]*types.SourceItem, error) {
	return s.client.FetchMarket(ctx, s.market)
}

// feedItem mirrors the upstream wire shape. Field pairs (link/id,
// source/author, time/publishedAt) vary between feed deployments, so both
// spellings are accepted.
type feedItem struct {
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Summary     string   `json:"summary"`
	Link        string   `json:"link"`
	ID          string   `json:"id"`
	Source      string   `json:"source"`
	Author      string   `json:"author"`
	Market      string   `json:"market"`
	Thumbnail   string   `json:"thumbnail"`
	Time        flexTime `json:"time"`
	PublishedAt flexTime `json:"publishedAt"`
}

// FetchMarket retrieves the current item set for one market. An empty body
// decodes to an empty list; transport and decode failures are returned so
// the pool can keep its previous snapshot.
func (c *Client) FetchMarket(ctx context.Context, market string) ([]*types.SourceItem, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("feed endpoint not configured")
	}

	endpoint := c.baseURL
	if market != "" {
		endpoint = fmt.Sprintf("%s?market=%s", c.baseURL, url.QueryEscape(market))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed for %s: %w", market, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("feed for %s returned %s", market, resp.Status)
	}

	var raw []feedItem
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode feed for %s: %w", market, err)
	}

	items := make([]*types.SourceItem, 0, len(raw))
	for _, fi := range raw {
		link := fi.Link
		if link == "" {
			link = fi.ID
		}
		source := fi.Source
		if source == "" {
			source = fi.Author
		}
		published := fi.PublishedAt.t
		if published.IsZero() {
			published = fi.Time.t
		}
		itemMarket := fi.Market
		if itemMarket == "" {
			itemMarket = market
		}

		items = append(items, &types.SourceItem{
			ID:          types.ItemID(link, fi.Title),
			Title:       fi.Title,
			Content:     fi.Content,
			Summary:     fi.Summary,
			Source:      source,
			Market:      itemMarket,
			Link:        link,
			Thumbnail:   fi.Thumbnail,
			PublishedAt: published,
		})
	}

	return items, nil
}

// flexTime accepts RFC3339/RFC1123 strings as well as unix seconds or
// milliseconds, since feed deployments disagree on the timestamp encoding.
type flexTime struct {
	t time.Time
}

func (f *flexTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}

	for _, layout := range []string{time.RFC3339, time.RFC1123Z, time.RFC1123} {
		if t, err := time.Parse(layout, s); err == nil {
			f.t = t
			return nil
		}
	}

	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n > 1_000_000_000_000 {
			f.t = time.UnixMilli(n)
		} else {
			f.t = time.Unix(n, 0)
		}
	}

	// Unparsable timestamps stay zero; the recency filter treats those
	// items as out of window rather than failing the whole fetch.
	return nil
}
