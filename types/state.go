package types

import (
	"fmt"
	"time"
)

// State represents the current scheduler state
type State string

const (
	StateIdle       State = "idle"
	StateScanning   State = "scanning"
	StateProcessing State = "processing"
	StateCooldown   State = "cooldown"
)

// OutcomeKind tags how a generation cycle ended.
type OutcomeKind string

const (
	// OutcomeGenerated means the primary rewrite produced the article.
	OutcomeGenerated OutcomeKind = "generated"
	// OutcomeDegraded means a fallback strategy produced the article.
	OutcomeDegraded OutcomeKind = "degraded"
	// OutcomeSkipped means no eligible candidate was found.
	OutcomeSkipped OutcomeKind = "skipped"
	// OutcomeFailed means the cycle ran but nothing was stored.
	OutcomeFailed OutcomeKind = "failed"
)

// CycleOutcome is the ephemeral record of one generation cycle. It is never
// persisted; it exists so callers and tests can assert on outcome kind
// instead of relying on swallowed errors.
type CycleOutcome struct {
	CycleID   string      `json:"cycle_id"`
	Kind      OutcomeKind `json:"kind"`
	ItemID    string      `json:"item_id,omitempty"`
	Message   string      `json:"message,omitempty"`
	StartedAt time.Time   `json:"started_at"`
}

// Severity levels for activity log entries
const (
	SeverityInfo    = "info"
	SeverityWarning = "warning"
)

// LogEntry is one operator-visible activity line.
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
	Severity  string    `json:"severity"`
}

// Window bounds how old a source item may be before the pool filters it out.
type Window string

const (
	WindowDay   Window = "24h"
	WindowWeek  Window = "7d"
	WindowMonth Window = "30d"
	WindowAll   Window = "all"
)

// Duration returns the window length, or zero for the unbounded window.
func (w Window) Duration() time.Duration {
	switch w {
	case WindowDay:
		return 24 * time.Hour
	case WindowWeek:
		return 7 * 24 * time.Hour
	case WindowMonth:
		return 30 * 24 * time.Hour
	default:
		return 0
	}
}

// ParseWindow validates an operator-supplied window selector.
func ParseWindow(s string) (Window, error) {
	switch Window(s) {
	case WindowDay, WindowWeek, WindowMonth, WindowAll:
		return Window(s), nil
	}
	return "", fmt.Errorf("unknown recency window %q (want 24h, 7d, 30d or all)", s)
}

// StatusResponse is the snapshot returned by GET /api/generation/status.
type StatusResponse struct {
	State          State         `json:"state"`
	Window         Window        `json:"window"`
	PoolSize       int           `json:"pool_size"`
	AttemptedCount int           `json:"attempted_count"`
	Cycles         int           `json:"cycles"`
	Generated      int           `json:"generated"`
	Degraded       int           `json:"degraded"`
	Skipped        int           `json:"skipped"`
	Failed         int           `json:"failed"`
	LastOutcome    *CycleOutcome `json:"last_outcome,omitempty"`
	Logs           []LogEntry    `json:"logs"`
}
