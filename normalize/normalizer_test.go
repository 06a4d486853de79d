package normalize

import (
	"strings"
	"testing"
	"time"

	"newsdesk/types"
)

func testNormalizer() *Normalizer {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return New([]string{"SA", "US"}, "SA").WithClock(func() time.Time { return fixed })
}

func TestNormalizeCompleteDraft(t *testing.T) {
	n := testNormalizer()
	item := &types.SourceItem{ID: "abc123", Title: "Original", Market: "US"}
	draft := &types.Draft{
		Title:   "Rewritten title",
		Content: "Rewritten body",
		Summary: "Short summary",
	}

	article := n.Normalize(item, draft, "payload text")

	if article.Title != "Rewritten title" {
		t.Fatalf("expected draft title, got %q", article.Title)
	}
	if article.Content != "Rewritten body" {
		t.Fatalf("expected draft content, got %q", article.Content)
	}
	if article.Summary != "Short summary" {
		t.Fatalf("expected draft summary, got %q", article.Summary)
	}
	if article.Author != types.AuthorPrimary {
		t.Fatalf("expected primary provenance, got %q", article.Author)
	}
	if article.Market != "US" {
		t.Fatalf("expected item market, got %q", article.Market)
	}
	if article.SourceID != "abc123" {
		t.Fatalf("expected source id, got %q", article.SourceID)
	}
	if article.Published || article.Featured {
		t.Fatal("articles must start unpublished and unfeatured")
	}
	if article.CreatedAt.IsZero() {
		t.Fatal("expected a creation timestamp")
	}
}

func TestNormalizeNilDraftGetsDefaults(t *testing.T) {
	n := testNormalizer()
	item := &types.SourceItem{ID: "abc123"}

	article := n.Normalize(item, nil, "")

	if article.Title != DefaultTitle {
		t.Fatalf("expected %q, got %q", DefaultTitle, article.Title)
	}
	if article.Content != DefaultContent {
		t.Fatalf("expected %q, got %q", DefaultContent, article.Content)
	}
	if article.Summary != DefaultSummary {
		t.Fatalf("expected %q, got %q", DefaultSummary, article.Summary)
	}
	if article.Author != types.AuthorDegraded {
		t.Fatalf("nil draft must carry degraded provenance, got %q", article.Author)
	}
	if article.Market != "SA" {
		t.Fatalf("expected default market, got %q", article.Market)
	}
}

func TestNormalizeFallbackChain(t *testing.T) {
	n := testNormalizer()

	tests := []struct {
		name        string
		item        *types.SourceItem
		draft       *types.Draft
		payload     string
		wantTitle   string
		wantContent string
	}{
		{
			name:        "item title fills empty draft title",
			item:        &types.SourceItem{Title: "From item"},
			draft:       &types.Draft{Content: "body"},
			wantTitle:   "From item",
			wantContent: "body",
		},
		{
			name:        "payload fills empty draft content",
			item:        &types.SourceItem{Title: "t"},
			draft:       &types.Draft{Title: "t"},
			payload:     "payload body",
			wantTitle:   "t",
			wantContent: "payload body",
		},
		{
			name:        "whitespace counts as empty",
			item:        &types.SourceItem{Title: "   "},
			draft:       &types.Draft{Title: " ", Content: "\t"},
			wantTitle:   DefaultTitle,
			wantContent: DefaultContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			article := n.Normalize(tt.item, tt.draft, tt.payload)
			if article.Title != tt.wantTitle {
				t.Fatalf("title: expected %q, got %q", tt.wantTitle, article.Title)
			}
			if article.Content != tt.wantContent {
				t.Fatalf("content: expected %q, got %q", tt.wantContent, article.Content)
			}
		})
	}
}

func TestNormalizeCapsSummary(t *testing.T) {
	n := testNormalizer()
	item := &types.SourceItem{Title: "t"}
	draft := &types.Draft{Title: "t", Content: "c", Summary: strings.Repeat("x", 450)}

	article := n.Normalize(item, draft, "")

	if got := len([]rune(article.Summary)); got != 200 {
		t.Fatalf("expected summary capped at 200 runes, got %d", got)
	}
}

func TestNormalizeCapsSummaryByRunes(t *testing.T) {
	n := testNormalizer()
	item := &types.SourceItem{Title: "t"}
	draft := &types.Draft{Title: "t", Content: "c", Summary: strings.Repeat("س", 300)}

	article := n.Normalize(item, draft, "")

	if got := len([]rune(article.Summary)); got != 200 {
		t.Fatalf("expected 200 runes for multibyte summary, got %d", got)
	}
}

func TestNormalizeMarketResolution(t *testing.T) {
	n := testNormalizer()

	tests := []struct {
		name        string
		draftMarket string
		itemMarket  string
		want        string
	}{
		{"draft market wins", "US", "SA", "US"},
		{"recognized item market", "", "US", "US"},
		{"unknown item market falls back", "", "XX", "SA"},
		{"no market at all", "", "", "SA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := &types.SourceItem{Title: "t", Market: tt.itemMarket}
			draft := &types.Draft{Title: "t", Content: "c", Market: tt.draftMarket}
			article := n.Normalize(item, draft, "")
			if article.Market != tt.want {
				t.Fatalf("expected market %q, got %q", tt.want, article.Market)
			}
		})
	}
}

func TestNormalizeFallbackDraftProvenance(t *testing.T) {
	n := testNormalizer()
	item := &types.SourceItem{Title: "t"}
	draft := &types.Draft{Title: "t", Content: "c", Fallback: true}

	article := n.Normalize(item, draft, "")

	if article.Author != types.AuthorDegraded {
		t.Fatalf("fallback draft must carry degraded provenance, got %q", article.Author)
	}
}
