package persist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"newsdesk/config"
	"newsdesk/types"
)

// Gateway durably stores an accepted article in the content-management API.
type Gateway interface {
	Create(ctx context.Context, article types.Article) (*types.Article, error)
}

// Sink receives a copy of every stored article. Sinks are best-effort:
// a sink failure is logged by the caller and never affects the cycle.
type Sink interface {
	Store(ctx context.Context, article *types.Article) error
	Name() string
}

// HTTPGateway posts articles to the content-management API.
type HTTPGateway struct {
	endpoint   string
	httpClient *http.Client
}

// NewHTTPGateway builds a gateway with the standard call timeout.
func NewHTTPGateway(endpoint string) *HTTPGateway {
	return &HTTPGateway{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: config.HTTPTimeout,
		},
	}
}

// Create stores the article and returns the stored record with its assigned
// identifier.
func (g *HTTPGateway) Create(ctx context.Context, article types.Article) (*types.Article, error) {
	body, err := json.Marshal(article)
	if err != nil {
		return nil, fmt.Errorf("marshal article: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("persistence call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("persistence returned %s: %s", resp.Status, strings.TrimSpace(string(msg)))
	}

	stored := article
	if err := json.NewDecoder(resp.Body).Decode(&stored); err != nil {
		// The record was accepted; a malformed echo only costs the ID.
		return &article, nil
	}
	return &stored, nil
}
