package cascade

import (
	"fmt"
	"strings"

	"newsdesk/config"
	"newsdesk/types"
)

const editorialRules = `You are a financial news editor rewriting a source article for a mobile market app.

Strict rules:
- Preserve ALL numeric facts, tickers, prices and quotes verbatim. Never alter a figure.
- Never give buy or sell recommendations.
- Match the tone expected by readers in the %s market.
- Structure: a strong lead paragraph, then 2-6 short paragraphs, mobile-friendly length.

Respond with a single JSON object and nothing else:
{"title": "...", "content": "...", "summary": "..."}

Source article follows.
Title: %s
Body:
%s`

// BuildPrompt assembles the rewrite prompt for one source item. The body is
// truncated to the prompt budget so oversized articles cannot blow up the
// request.
func BuildPrompt(item *types.SourceItem, payload string) string {
	market := item.Market
	if market == "" {
		market = "default"
	}
	return fmt.Sprintf(editorialRules, market, item.Title, payload)
}

// BuildPayload selects the cascade input text for an item: body when
// present, else summary, truncated to the prompt budget.
func BuildPayload(item *types.SourceItem) string {
	text := item.Content
	if strings.TrimSpace(text) == "" {
		text = item.Summary
	}
	return Truncate(text, config.PromptBudget)
}

// Truncate cuts s to at most limit runes.
func Truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
