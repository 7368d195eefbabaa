package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities. Article IDs are assigned
// from a database sequence on first persistence and are never reused.
type ID uint64

// FingerprintURL derives a deterministic 64-bit ID from an article URL using
// BLAKE2b hashing. The storage layer uses it as the key of the URL uniqueness
// index, so identical URLs always map to the same key. Distinct URLs colliding
// on the fingerprint is theoretically possible; callers that need certainty
// must compare the stored URL after lookup.
func FingerprintURL(url string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(url))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// ArticleStatus tracks an article through the editorial lifecycle.
type ArticleStatus string

const (
	// StatusDraft is the status of every freshly ingested article.
	StatusDraft ArticleStatus = "draft"
	// StatusPublished marks an article approved by a curator.
	StatusPublished ArticleStatus = "published"
	// StatusArchived marks an article removed from circulation.
	StatusArchived ArticleStatus = "archived"
)

// Article is a rewritten news item persisted by the article store and
// referenced by the semantic index through its Id.
type Article struct {
	Id              ID     // assigned by the store on insert; 0 means not yet persisted
	URL             string // canonical source link, globally unique
	Title           string
	Content         string
	Summary         string // short display summary derived from Content
	OriginalContent string // the pre-generation source text, kept for audit
	Tags            string // comma-joined tag list
	Source          string // human-readable name of the feed source
	Status          ArticleStatus
	PublishedAt     time.Time // zero when the feed provided no publish time
	CreatedAt       time.Time // set once by the store on insert
}
