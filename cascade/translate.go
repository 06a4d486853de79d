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
)

// Translator is the secondary transformation strategy.
type Translator interface {
	Translate(ctx context.Context, text, targetLang string) (string, error)
}

// HTTPTranslator calls a translation endpoint speaking
// POST {"text": ..., "targetLang": ...} -> {"translatedText": ...}.
type HTTPTranslator struct {
	endpoint   string
	httpClient *http.Client
}

// NewHTTPTranslator builds a translator with the standard call timeout.
func NewHTTPTranslator(endpoint string) *HTTPTranslator {
	return &HTTPTranslator{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: config.HTTPTimeout,
		},
	}
}

type translateRequest struct {
	Text       string `json:"text"`
	TargetLang string `json:"targetLang"`
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
}

// Translate sends text for translation and returns the translated string.
func (t *HTTPTranslator) Translate(ctx context.Context, text, targetLang string) (string, error) {
	body, err := json.Marshal(translateRequest{Text: text, TargetLang: targetLang})
	if err != nil {
		return "", fmt.Errorf("marshal translate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("translate call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("translate endpoint returned %s: %s", resp.Status, strings.TrimSpace(string(msg)))
	}

	var parsed translateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode translate response: %w", err)
	}

	return parsed.TranslatedText, nil
}
