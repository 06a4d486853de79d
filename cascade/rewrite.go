package cascade

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

// Rewriter is the primary transformation strategy. A nil draft with a nil
// error means the provider produced no usable result; the cascade advances
// without treating that as a failure.
type Rewriter interface {
	Rewrite(ctx context.Context, item *types.SourceItem, payload string) (*types.Draft, error)
}

// HTTPRewriter calls a generic AI endpoint speaking
// POST {"message": <prompt>} -> {"response": <text>}.
type HTTPRewriter struct {
	endpoint   string
	httpClient *http.Client
}

// NewHTTPRewriter builds a rewriter with the standard call timeout.
func NewHTTPRewriter(endpoint string) *HTTPRewriter {
	return &HTTPRewriter{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: config.HTTPTimeout,
		},
	}
}

type rewriteRequest struct {
	Message string `json:"message"`
}

type rewriteResponse struct {
	Response string `json:"response"`
}

// Rewrite sends the editorial prompt and extracts a draft from the reply.
func (r *HTTPRewriter) Rewrite(ctx context.Context, item *types.SourceItem, payload string) (*types.Draft, error) {
	body, err := json.Marshal(rewriteRequest{Message: BuildPrompt(item, payload)})
	if err != nil {
		return nil, fmt.Errorf("marshal rewrite request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rewrite call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("rewrite endpoint returned %s: %s", resp.Status, strings.TrimSpace(string(msg)))
	}

	// A non-JSON reply is "no result", not an error to propagate.
	if !strings.Contains(resp.Header.Get("Content-Type"), "json") {
		return nil, nil
	}

	var parsed rewriteResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode rewrite response: %w", err)
	}

	return DraftFromResponse(item, parsed.Response), nil
}

// DraftFromResponse turns free-form model output into a draft. It locates
// the first balanced {...} block and parses it; when that fails the whole
// raw text becomes the content, the original title is kept, and the draft
// is flagged as a fallback. Empty output yields no draft.
func DraftFromResponse(item *types.SourceItem, raw string) *types.Draft {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	if block, ok := ExtractJSONBlock(raw); ok {
		var parsed struct {
			Title   string `json:"title"`
			Content string `json:"content"`
			Summary string `json:"summary"`
		}
		if err := json.Unmarshal([]byte(block), &parsed); err == nil && parsed.Content != "" {
			return &types.Draft{
				Title:   parsed.Title,
				Content: parsed.Content,
				Summary: parsed.Summary,
				Market:  item.Market,
			}
		}
	}

	return &types.Draft{
		Title:    item.Title,
		Content:  raw,
		Market:   item.Market,
		Fallback: true,
	}
}

// ExtractJSONBlock returns the first balanced {...} block in s, skipping
// braces inside string literals.
func ExtractJSONBlock(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return s[start : i+1], true
				}
			}
		}
	}
	return "", false
}
