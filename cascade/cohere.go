package cascade

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"time"

	"newsdesk/types"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"
)

// CohereRewriter implements the primary strategy on the Cohere Chat API.
// SDK: github.com/cohere-ai/cohere-go/v2
type CohereRewriter struct {
	client *cohereclient.Client
	model  string
}

// NewCohereRewriter builds a rewriter for the given API key and model.
func NewCohereRewriter(apiKey, model string) *CohereRewriter {
	if model == "" {
		model = "command-r"
	}
	// Custom HTTP client forcing HTTP/1.1 to avoid HTTP/2 protocol errors
	httpClient := &http.Client{
		Timeout: 60 * time.Second,
		Transport: &http.Transport{
			TLSNextProto:      make(map[string]func(authority string, c *tls.Conn) http.RoundTripper),
			ForceAttemptHTTP2: false,
		},
	}
	client := cohereclient.NewClient(
		cohereclient.WithToken(apiKey),
		cohereclient.WithHTTPClient(httpClient),
	)
	return &CohereRewriter{client: client, model: model}
}

// Rewrite sends the editorial prompt through Cohere chat and runs the same
// defensive extraction as the HTTP provider.
func (c *CohereRewriter) Rewrite(ctx context.Context, item *types.SourceItem, payload string) (*types.Draft, error) {
	resp, err := c.client.Chat(ctx, &cohere.ChatRequest{
		Message: BuildPrompt(item, payload),
		Model:   &c.model,
	})
	if err != nil {
		return nil, fmt.Errorf("cohere chat error: %w", err)
	}
	if resp == nil {
		return nil, errors.New("cohere chat returned empty response")
	}

	return DraftFromResponse(item, resp.Text), nil
}

// SelectRewriter picks the configured rewrite provider: Cohere when an API
// key is present, the generic HTTP endpoint otherwise, nil when neither is
// configured (the cascade then degrades straight to translation).
func SelectRewriter(cohereKey, cohereModel, endpoint string) Rewriter {
	if cohereKey != "" {
		return NewCohereRewriter(cohereKey, cohereModel)
	}
	if endpoint != "" {
		return NewHTTPRewriter(endpoint)
	}
	return nil
}
