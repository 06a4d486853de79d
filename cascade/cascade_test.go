package cascade

import (
	"context"
	"errors"
	"testing"

	"newsdesk/types"
)

type fakeRewriter struct {
	draft *types.Draft
	err   error
	calls int
}

func (f *fakeRewriter) Rewrite(ctx context.Context, item *types.SourceItem, payload string) (*types.Draft, error) {
	f.calls++
	return f.draft, f.err
}

type fakeTranslator struct {
	text  string
	err   error
	calls int
	sent  string
}

func (f *fakeTranslator) Translate(ctx context.Context, text, targetLang string) (string, error) {
	f.calls++
	f.sent = text
	return f.text, f.err
}

func testItem() *types.SourceItem {
	return &types.SourceItem{
		ID:      "id1",
		Title:   "Oil prices climb",
		Content: "Brent crude rose 2% on Monday.",
		Summary: "Crude gains.",
		Market:  "SA",
	}
}

func TestTransformPrimaryStrategy(t *testing.T) {
	rewriter := &fakeRewriter{draft: &types.Draft{Title: "Rewritten", Content: "Body"}}
	translator := &fakeTranslator{}
	c := New(rewriter, translator, "ar")

	result := c.Transform(context.Background(), testItem())

	if result.Strategy != StrategyRewrite {
		t.Fatalf("expected rewrite strategy, got %q", result.Strategy)
	}
	if result.Draft == nil || result.Draft.Title != "Rewritten" {
		t.Fatalf("unexpected draft: %+v", result.Draft)
	}
	if result.Draft.Language != "ar" {
		t.Fatalf("expected target language on the draft, got %q", result.Draft.Language)
	}
	if translator.calls != 0 {
		t.Fatal("translation must not run when the rewrite succeeds")
	}
	if result.Payload == "" {
		t.Fatal("result must carry the payload for the normalizer")
	}
}

func TestTransformFallsBackToTranslation(t *testing.T) {
	rewriter := &fakeRewriter{err: errors.New("provider down")}
	translator := &fakeTranslator{text: "عنوان مترجم\nنص مترجم"}
	c := New(rewriter, translator, "ar")

	result := c.Transform(context.Background(), testItem())

	if result.Strategy != StrategyTranslate {
		t.Fatalf("expected translate strategy, got %q", result.Strategy)
	}
	if result.Draft.Title != "عنوان مترجم" {
		t.Fatalf("expected first line as title, got %q", result.Draft.Title)
	}
	if result.Draft.Content != "نص مترجم" {
		t.Fatalf("expected remainder as body, got %q", result.Draft.Content)
	}
	if !result.Draft.Fallback {
		t.Fatal("translated drafts must be flagged as fallback")
	}
}

func TestTransformTranslationSeesTitleAndBody(t *testing.T) {
	translator := &fakeTranslator{text: "line"}
	c := New(&fakeRewriter{}, translator, "ar")

	c.Transform(context.Background(), testItem())

	if translator.sent == "" {
		t.Fatal("translator was not called")
	}
	if translator.sent[:len("Oil prices climb\n")] != "Oil prices climb\n" {
		t.Fatalf("translation input must start with the title, got %q", translator.sent)
	}
}

func TestTransformPassthroughWhenAllElseFails(t *testing.T) {
	rewriter := &fakeRewriter{err: errors.New("down")}
	translator := &fakeTranslator{err: errors.New("also down")}
	c := New(rewriter, translator, "ar")

	result := c.Transform(context.Background(), testItem())

	if result.Strategy != StrategyPassthrough {
		t.Fatalf("expected passthrough strategy, got %q", result.Strategy)
	}
	if result.Draft.Title != "Oil prices climb" {
		t.Fatalf("passthrough must keep the original title, got %q", result.Draft.Title)
	}
	if result.Draft.Content != "Brent crude rose 2% on Monday." {
		t.Fatalf("passthrough must keep the original body, got %q", result.Draft.Content)
	}
	if !result.Draft.Fallback || !result.Draft.Raw {
		t.Fatal("passthrough drafts must be flagged fallback and raw")
	}
}

func TestTransformNilCollaborators(t *testing.T) {
	c := New(nil, nil, "ar")

	result := c.Transform(context.Background(), testItem())

	if result.Strategy != StrategyPassthrough {
		t.Fatalf("expected passthrough with no providers, got %q", result.Strategy)
	}
	if result.Draft == nil {
		t.Fatal("the cascade must always yield a draft")
	}
}

func TestTransformNoResultAdvances(t *testing.T) {
	// nil draft with nil error means the provider produced nothing usable.
	rewriter := &fakeRewriter{}
	c := New(rewriter, nil, "ar")

	result := c.Transform(context.Background(), testItem())

	if rewriter.calls != 1 {
		t.Fatalf("expected one rewrite attempt, got %d", rewriter.calls)
	}
	if result.Strategy != StrategyPassthrough {
		t.Fatalf("expected passthrough after empty rewrite, got %q", result.Strategy)
	}
}

func TestPassthroughContentOrder(t *testing.T) {
	tests := []struct {
		name string
		item *types.SourceItem
		want string
	}{
		{
			name: "body preferred",
			item: &types.SourceItem{Title: "t", Content: "body", Summary: "sum"},
			want: "body",
		},
		{
			name: "summary when no body",
			item: &types.SourceItem{Title: "t", Summary: "sum"},
			want: "sum",
		},
		{
			name: "title as last resort",
			item: &types.SourceItem{Title: "t"},
			want: "t",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := passthrough(tt.item)
			if draft.Content != tt.want {
				t.Fatalf("expected content %q, got %q", tt.want, draft.Content)
			}
		})
	}
}
