package feed

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"newsdesk/config"
	"newsdesk/types"
)

// Pool maintains the most recent snapshot of eligible source items. The
// refresh routine is the only writer and always replaces the snapshot
// wholesale; readers get the current slice and must not mutate it.
type Pool struct {
	mu          sync.RWMutex
	items       []*types.SourceItem
	window      types.Window
	lastRefresh time.Time

	sources []Source
	extract bool
	now     func() time.Time
}

// PoolOptions configures a Pool.
type PoolOptions struct {
	Sources []Source
	Window  types.Window
	// ExtractContent enables readability enrichment for body-less items.
	ExtractContent bool
	// Now overrides the clock; nil means time.Now.
	Now func() time.Time
}

// NewPool builds an empty pool; call Refresh or Run to populate it.
func NewPool(opts PoolOptions) *Pool {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	window := opts.Window
	if window == "" {
		window = types.WindowAll
	}
	return &Pool{
		sources: opts.Sources,
		window:  window,
		extract: opts.ExtractContent,
		now:     now,
	}
}

// Refresh fetches all sources, merges and filters their items, and replaces
// the snapshot. If every source fails the previous snapshot stays in place;
// the pool is never cleared on error.
func (p *Pool) Refresh(ctx context.Context) {
	var merged []*types.SourceItem
	succeeded := 0

	for _, src := range p.sources {
		items, err := src.Fetch(ctx)
		if err != nil {
			log.Printf("pool: refresh %s failed: %v (keeping previous items)", src.Name(), err)
			continue
		}
		succeeded++
		merged = append(merged, items...)
	}

	if succeeded == 0 {
		return
	}

	merged = filterEligible(merged)
	if p.extract {
		ExtractMissingContent(merged)
	}

	p.mu.Lock()
	p.items = merged
	p.lastRefresh = p.now()
	p.mu.Unlock()

	log.Printf("pool: refreshed, %d eligible item(s) from %d source(s)", len(merged), succeeded)
}

// Run refreshes immediately and then on a fixed interval until ctx ends.
// This timer is independent of the generation cycle's own timer.
func (p *Pool) Run(ctx context.Context) {
	p.Refresh(ctx)

	ticker := time.NewTicker(config.PoolRefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Refresh(ctx)
		}
	}
}

// Snapshot returns the current items that fall inside the recency window.
// The window is applied at read time so an operator change narrows the
// visible snapshot without waiting for the next refresh.
func (p *Pool) Snapshot() []*types.SourceItem {
	p.mu.RLock()
	items := p.items
	window := p.window
	p.mu.RUnlock()

	cutoff := window.Duration()
	if cutoff == 0 {
		return items
	}

	oldest := p.now().Add(-cutoff)
	out := make([]*types.SourceItem, 0, len(items))
	for _, item := range items {
		if item.PublishedAt.After(oldest) {
			out = append(out, item)
		}
	}
	return out
}

// Size reports the unfiltered snapshot size, for operator diagnostics.
func (p *Pool) Size() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.items)
}

// SetWindow updates the recency window selector.
func (p *Pool) SetWindow(w types.Window) {
	p.mu.Lock()
	p.window = w
	p.mu.Unlock()
}

// Window returns the current recency window selector.
func (p *Pool) Window() types.Window {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.window
}

// filterEligible drops items with no title and items that are themselves
// pipeline output, so generated articles never become candidates again.
func filterEligible(items []*types.SourceItem) []*types.SourceItem {
	out := make([]*types.SourceItem, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item.Title) == "" {
			continue
		}
		if isGenerated(item.Source) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func isGenerated(source string) bool {
	switch source {
	case types.AuthorPrimary, types.AuthorDegraded:
		return true
	}
	return strings.HasPrefix(source, "AI ")
}
