package feed

import (
	"context"
	"errors"
	"testing"
	"time"

	"newsdesk/types"
)

type fakeSource struct {
	items []*types.SourceItem
	err   error
	calls int
}

func (f *fakeSource) Fetch(ctx context.Context) ([]*types.SourceItem, error) {
	f.calls++
	return f.items, f.err
}

func (f *fakeSource) Name() string { return "fake" }

func itemAt(title string, published time.Time) *types.SourceItem {
	return &types.SourceItem{
		ID:          types.ItemID("", title),
		Title:       title,
		Market:      "SA",
		PublishedAt: published,
	}
}

func TestPoolRecencyWindow(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	source := &fakeSource{items: []*types.SourceItem{
		itemAt("an hour ago", now.Add(-time.Hour)),
		itemAt("two days ago", now.Add(-2*24*time.Hour)),
		itemAt("ten days ago", now.Add(-10*24*time.Hour)),
		itemAt("forty days ago", now.Add(-40*24*time.Hour)),
	}}

	pool := NewPool(PoolOptions{
		Sources: []Source{source},
		Window:  types.WindowWeek,
		Now:     func() time.Time { return now },
	})
	pool.Refresh(context.Background())

	if got := len(pool.Snapshot()); got != 2 {
		t.Fatalf("expected 2 items inside the 7d window, got %d", got)
	}
	if pool.Size() != 4 {
		t.Fatalf("expected 4 unfiltered items, got %d", pool.Size())
	}

	// Narrowing the window applies at read time, without a refresh.
	pool.SetWindow(types.WindowDay)
	if got := len(pool.Snapshot()); got != 1 {
		t.Fatalf("expected 1 item inside the 24h window, got %d", got)
	}

	pool.SetWindow(types.WindowAll)
	if got := len(pool.Snapshot()); got != 4 {
		t.Fatalf("expected all items with the unbounded window, got %d", got)
	}
}

func TestPoolUnboundedWindowKeepsUndatedItems(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	source := &fakeSource{items: []*types.SourceItem{
		itemAt("undated", time.Time{}),
	}}

	pool := NewPool(PoolOptions{
		Sources: []Source{source},
		Window:  types.WindowAll,
		Now:     func() time.Time { return now },
	})
	pool.Refresh(context.Background())

	if got := len(pool.Snapshot()); got != 1 {
		t.Fatalf("expected undated item with unbounded window, got %d items", got)
	}

	// A bounded window treats a zero timestamp as out of range.
	pool.SetWindow(types.WindowMonth)
	if got := len(pool.Snapshot()); got != 0 {
		t.Fatalf("expected undated item filtered by bounded window, got %d items", got)
	}
}

func TestPoolFiltersIneligibleItems(t *testing.T) {
	now := time.Now()
	source := &fakeSource{items: []*types.SourceItem{
		itemAt("kept", now),
		{ID: "x1", Title: "   ", Market: "SA", PublishedAt: now},
		{ID: "x2", Title: "own output", Source: types.AuthorPrimary, Market: "SA", PublishedAt: now},
		{ID: "x3", Title: "own translation", Source: types.AuthorDegraded, Market: "SA", PublishedAt: now},
		{ID: "x4", Title: "tagged", Source: "AI Market Watcher", Market: "SA", PublishedAt: now},
	}}

	pool := NewPool(PoolOptions{Sources: []Source{source}, Window: types.WindowAll})
	pool.Refresh(context.Background())

	snapshot := pool.Snapshot()
	if len(snapshot) != 1 {
		t.Fatalf("expected 1 eligible item, got %d", len(snapshot))
	}
	if snapshot[0].Title != "kept" {
		t.Fatalf("unexpected surviving item: %q", snapshot[0].Title)
	}
}

func TestPoolKeepsSnapshotWhenRefreshFails(t *testing.T) {
	source := &fakeSource{items: []*types.SourceItem{itemAt("first", time.Now())}}
	pool := NewPool(PoolOptions{Sources: []Source{source}, Window: types.WindowAll})

	pool.Refresh(context.Background())
	if pool.Size() != 1 {
		t.Fatalf("expected 1 item after the first refresh, got %d", pool.Size())
	}

	source.items = nil
	source.err = errors.New("upstream down")
	pool.Refresh(context.Background())

	if pool.Size() != 1 {
		t.Fatalf("failed refresh must keep the previous snapshot, got %d items", pool.Size())
	}
}

func TestPoolReplacesSnapshotWholesale(t *testing.T) {
	source := &fakeSource{items: []*types.SourceItem{
		itemAt("first", time.Now()),
		itemAt("second", time.Now()),
	}}
	pool := NewPool(PoolOptions{Sources: []Source{source}, Window: types.WindowAll})
	pool.Refresh(context.Background())

	source.items = []*types.SourceItem{itemAt("third", time.Now())}
	pool.Refresh(context.Background())

	snapshot := pool.Snapshot()
	if len(snapshot) != 1 || snapshot[0].Title != "third" {
		t.Fatalf("expected the snapshot replaced wholesale, got %+v", snapshot)
	}
}

func TestPoolMergesMultipleSources(t *testing.T) {
	okSource := &fakeSource{items: []*types.SourceItem{itemAt("alive", time.Now())}}
	badSource := &fakeSource{err: errors.New("down")}

	pool := NewPool(PoolOptions{Sources: []Source{badSource, okSource}, Window: types.WindowAll})
	pool.Refresh(context.Background())

	if pool.Size() != 1 {
		t.Fatalf("expected items from the surviving source, got %d", pool.Size())
	}
}
