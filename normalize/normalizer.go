package normalize

import (
	"strings"
	"time"

	"newsdesk/config"
	"newsdesk/types"
)

// Fallback literals used when a draft arrives with missing fields. Every
// output field has a default so persistence never receives a structurally
// invalid record.
const (
	DefaultTitle   = "Untitled"
	DefaultContent = "No content"
	DefaultSummary = "Draft"
)

// Normalizer coerces raw cascade drafts into well-formed article records.
type Normalizer struct {
	markets       map[string]bool
	defaultMarket string
	now           func() time.Time
}

// New builds a normalizer for the configured market codes. A source market
// outside that set maps to defaultMarket.
func New(markets []string, defaultMarket string) *Normalizer {
	known := make(map[string]bool, len(markets))
	for _, m := range markets {
		known[m] = true
	}
	return &Normalizer{
		markets:       known,
		defaultMarket: defaultMarket,
		now:           time.Now,
	}
}

// WithClock overrides the timestamp source, for tests.
func (n *Normalizer) WithClock(now func() time.Time) *Normalizer {
	n.now = now
	return n
}

// Normalize turns a draft (possibly nil or arbitrarily incomplete) into an
// article with no empty title or body, a capped summary, a recognized
// market, and a provenance tag. Articles always start unpublished and
// unfeatured.
func (n *Normalizer) Normalize(item *types.SourceItem, draft *types.Draft, payload string) types.Article {
	if draft == nil {
		draft = &types.Draft{Fallback: true}
	}

	title := firstNonEmpty(draft.Title, item.Title, DefaultTitle)
	content := firstNonEmpty(draft.Content, payload, DefaultContent)

	summary := strings.TrimSpace(draft.Summary)
	if summary == "" {
		summary = DefaultSummary
	} else if len([]rune(summary)) > config.SummaryLimit {
		summary = string([]rune(summary)[:config.SummaryLimit])
	}

	author := types.AuthorPrimary
	if draft.Fallback {
		author = types.AuthorDegraded
	}

	return types.Article{
		Title:     title,
		Content:   content,
		Summary:   summary,
		Market:    n.market(draft.Market, item.Market),
		Author:    author,
		SourceID:  item.ID,
		Published: false,
		Featured:  false,
		CreatedAt: n.now(),
	}
}

func (n *Normalizer) market(draftMarket, itemMarket string) string {
	if draftMarket != "" {
		return draftMarket
	}
	if n.markets[itemMarket] {
		return itemMarket
	}
	return n.defaultMarket
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
