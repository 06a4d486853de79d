package scheduler

import (
	"fmt"
	"log"
	"sync"
	"time"

	"newsdesk/types"
)

// ActivityLog is an append-only, capped, newest-first buffer of operator
// visible events. It is pure observability; nothing consults it for control
// decisions.
type ActivityLog struct {
	mu      sync.Mutex
	entries []types.LogEntry
	max     int
}

// NewActivityLog creates a log keeping at most max entries.
func NewActivityLog(max int) *ActivityLog {
	return &ActivityLog{max: max}
}

// Info appends an informational entry.
func (l *ActivityLog) Info(format string, args ...interface{}) {
	l.add(types.SeverityInfo, format, args...)
}

// Warn appends a warning entry. Per the zero-hard-failure contract nothing
// in the pipeline logs above warning.
func (l *ActivityLog) Warn(format string, args ...interface{}) {
	l.add(types.SeverityWarning, format, args...)
}

func (l *ActivityLog) add(severity, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	log.Printf("[%s] %s", severity, message)

	l.mu.Lock()
	defer l.mu.Unlock()

	entry := types.LogEntry{
		Timestamp: time.Now(),
		Message:   message,
		Severity:  severity,
	}

	// Newest first
	l.entries = append([]types.LogEntry{entry}, l.entries...)
	if len(l.entries) > l.max {
		l.entries = l.entries[:l.max]
	}
}

// Entries returns a copy of the buffer, newest first.
func (l *ActivityLog) Entries() []types.LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]types.LogEntry{}, l.entries...)
}
