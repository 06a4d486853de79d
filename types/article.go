package types

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// SourceItem is one candidate news item from an upstream feed.
// Items are immutable once built; a refresh replaces the whole snapshot.
type SourceItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content,omitempty"`
	Summary     string    `json:"summary,omitempty"`
	Source      string    `json:"source,omitempty"`
	Market      string    `json:"market"`
	Link        string    `json:"link,omitempty"`
	Thumbnail   string    `json:"thumbnail,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}

// GenerateID creates a short, stable ID by hashing the provided string input
func GenerateID(input string) string {
	hash := sha256.Sum256([]byte(input))
	return hex.EncodeToString(hash[:])[:16]
}

// ItemID derives a stable identifier for an item: the link when present,
// otherwise the title. Two items with the same identifier are the same
// candidate even across feed refreshes.
func ItemID(link, title string) string {
	if link != "" {
		return GenerateID(link)
	}
	return GenerateID(title)
}

// Provenance tags recorded on persisted articles. The pool also uses them
// to keep the pipeline's own output from re-entering the candidate set.
const (
	AuthorPrimary  = "AI Neural Scanner"
	AuthorDegraded = "AI Auto-Translator"
)

// Draft is the raw output of one cascade strategy, before normalization.
// A nil *Draft means the strategy produced no result at all, which is
// distinct from a degraded (Fallback) result.
type Draft struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Summary  string `json:"summary"`
	Market   string `json:"market,omitempty"`
	Language string `json:"language,omitempty"`
	// Fallback marks output from a lower-priority strategy (translation
	// or passthrough) rather than the primary rewrite.
	Fallback bool `json:"fallback"`
	// Raw marks the verbatim passthrough strategy.
	Raw bool `json:"raw"`
}

// Article is a normalized draft ready for the content-management API.
// Every field is guaranteed non-empty by the normalizer; persistence never
// receives a structurally invalid record.
type Article struct {
	ID        string    `json:"id,omitempty"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Summary   string    `json:"summary"`
	Market    string    `json:"market"`
	Author    string    `json:"author"`
	SourceID  string    `json:"source_id,omitempty"`
	Published bool      `json:"published"`
	Featured  bool      `json:"featured"`
	CreatedAt time.Time `json:"created_at"`
}
