package scheduler

import (
	"fmt"
	"testing"

	"newsdesk/types"
)

func TestActivityLogNewestFirst(t *testing.T) {
	activity := NewActivityLog(10)

	activity.Info("first")
	activity.Warn("second")
	activity.Info("third")

	entries := activity.Entries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Message != "third" {
		t.Fatalf("expected newest entry first, got %q", entries[0].Message)
	}
	if entries[2].Message != "first" {
		t.Fatalf("expected oldest entry last, got %q", entries[2].Message)
	}
	if entries[1].Severity != types.SeverityWarning {
		t.Fatalf("expected warning severity, got %q", entries[1].Severity)
	}
	if entries[0].Timestamp.IsZero() {
		t.Fatal("entries must carry a timestamp")
	}
}

func TestActivityLogDropsOldestAtCapacity(t *testing.T) {
	activity := NewActivityLog(50)

	for i := 0; i < 60; i++ {
		activity.Info("event %d", i)
	}

	entries := activity.Entries()
	if len(entries) != 50 {
		t.Fatalf("expected cap of 50 entries, got %d", len(entries))
	}
	if entries[0].Message != "event 59" {
		t.Fatalf("expected newest entry first, got %q", entries[0].Message)
	}
	if entries[49].Message != "event 10" {
		t.Fatalf("expected oldest surviving entry to be event 10, got %q", entries[49].Message)
	}
}

func TestActivityLogFormatsArguments(t *testing.T) {
	activity := NewActivityLog(5)

	activity.Warn("failed for %q: %v", "title", fmt.Errorf("boom"))

	entries := activity.Entries()
	if entries[0].Message != `failed for "title": boom` {
		t.Fatalf("unexpected formatted message: %q", entries[0].Message)
	}
}
