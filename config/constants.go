package config

import "time"

// Pipeline Timing Constants
const (
	// PoolRefreshInterval is how often the source pool re-fetches feeds,
	// independent of the generation cycle's own timer.
	PoolRefreshInterval = 5 * time.Minute

	// ScanCooldown is the fixed wait after a scan that found no candidate.
	ScanCooldown = 15 * time.Second

	// CycleCooldownMin and CycleCooldownMax bound the randomized wait
	// after a completed cycle, regardless of outcome.
	CycleCooldownMin = 5 * time.Second
	CycleCooldownMax = 10 * time.Second
)

// External Call Constants
const (
	// HTTPTimeout bounds every feed, AI, translation and persistence call.
	HTTPTimeout = 15 * time.Second

	// RedisTimeout bounds each dedup store operation.
	RedisTimeout = 5 * time.Second

	// ExtractTimeout bounds a single readability extraction.
	ExtractTimeout = 30 * time.Second

	// ExtractWorkers is the size of the content-extraction worker pool.
	ExtractWorkers = 5
)

// Content Constants
const (
	// PromptBudget caps how many source characters are embedded in the
	// rewrite prompt.
	PromptBudget = 3000

	// SummaryLimit caps the normalized article summary.
	SummaryLimit = 200

	// MaxLogEntries caps the operator activity log ring buffer.
	MaxLogEntries = 50
)
