package semindex

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/gacetalabs/gaceta/ai"
	"github.com/gacetalabs/gaceta/core"
)

const (
	// DefaultDim is the embedding dimension the index is opened with when
	// the caller does not specify one.
	DefaultDim = 384

	// snippetLen is the number of runes of indexed text kept in metadata
	// for search result display.
	snippetLen = 200

	vectorsFile  = "vectors.mus"
	metadataFile = "metadata.mus"
)

// Metadata is the display payload stored alongside each vector slot.
type Metadata struct {
	ArticleID   core.ID
	Title       string
	URL         string
	Source      string
	PublishedAt string // RFC 3339, empty when the article has no publish time
	Snippet     string
}

// Match is a single semantic search result. Distance is squared L2, so
// lower values are closer matches.
type Match struct {
	ArticleID core.ID
	Distance  float32
	Metadata  Metadata
}

// Option configures an Index.
type Option func(*Index) error

// WithLogger sets the logger used by the index.
func WithLogger(logger *slog.Logger) Option {
	return func(idx *Index) error {
		if logger == nil {
			return fmt.Errorf("nil logger")
		}
		idx.logger = logger
		return nil
	}
}

// Index is a flat squared-L2 vector index over article embeddings with
// slot-keyed metadata, persisted as two snapshot files in its directory.
// All methods are safe for concurrent use.
type Index struct {
	mu       sync.RWMutex
	dir      string
	dim      int
	embedder ai.Embedder
	vectors  [][]float32
	metadata map[int]*Metadata
	logger   *slog.Logger
}

// Open loads or creates a semantic index in dir. A dim of 0 selects
// DefaultDim. Existing snapshots are loaded when both files are present;
// when only one is present the index starts empty.
func Open(dir string, dim int, embedder ai.Embedder, opts ...Option) (*Index, error) {
	if dim == 0 {
		dim = DefaultDim
	}
	if dim < 0 {
		return nil, ErrInvalidDimension
	}
	if embedder == nil {
		return nil, ErrNilEmbedder
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	idx := &Index{
		dir:      dir,
		dim:      dim,
		embedder: embedder,
		metadata: make(map[int]*Metadata),
		logger:   slog.Default().With("component", "semindex"),
	}
	for _, opt := range opts {
		if err := opt(idx); err != nil {
			return nil, err
		}
	}

	if err := idx.load(); err != nil {
		return nil, err
	}
	return idx, nil
}

// Dim returns the embedding dimension of the index.
func (idx *Index) Dim() int {
	return idx.dim
}

// Len returns the number of indexed vectors.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.vectors)
}

// AddArticle embeds an article's title and summary and appends the vector
// to the index. Articles that are nil or not yet persisted (Id 0) are
// ignored. Both snapshot files are rewritten before AddArticle returns; on
// persist failure the in-memory append is rolled back.
func (idx *Index) AddArticle(ctx context.Context, article *core.Article) error {
	if article == nil || article.Id == 0 {
		return nil
	}

	text := indexText(article)
	vector, err := idx.embedder.EmbedText(ctx, text)
	if err != nil {
		return fmt.Errorf("embed article %d: %w", article.Id, err)
	}
	if len(vector) != idx.dim {
		return fmt.Errorf("%w: got %d, index dimension %d", ErrDimensionMismatch, len(vector), idx.dim)
	}

	publishedAt := ""
	if !article.PublishedAt.IsZero() {
		publishedAt = article.PublishedAt.UTC().Format(time.RFC3339)
	}
	meta := &Metadata{
		ArticleID:   article.Id,
		Title:       article.Title,
		URL:         article.URL,
		Source:      article.Source,
		PublishedAt: publishedAt,
		Snippet:     core.TruncateRunes(text, snippetLen),
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	slot := len(idx.vectors)
	idx.vectors = append(idx.vectors, vector)
	idx.metadata[slot] = meta

	if err := idx.persistLocked(); err != nil {
		idx.vectors = idx.vectors[:slot]
		delete(idx.metadata, slot)
		return fmt.Errorf("persist index: %w", err)
	}

	idx.logger.Debug("indexed article", "id", article.Id, "slot", slot)
	return nil
}

// Search embeds the query and returns up to limit matches ordered by
// ascending distance. An empty index yields an empty, non-nil slice without
// consulting the embedder. Slots missing metadata are dropped after the
// top-limit cut, so a search can return fewer matches than limit even when
// more vectors exist.
func (idx *Index) Search(ctx context.Context, query string, limit int) ([]Match, error) {
	if limit <= 0 {
		return []Match{}, nil
	}

	idx.mu.RLock()
	empty := len(idx.vectors) == 0
	idx.mu.RUnlock()
	if empty {
		return []Match{}, nil
	}

	vector, err := idx.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(vector) != idx.dim {
		return nil, fmt.Errorf("%w: got %d, index dimension %d", ErrDimensionMismatch, len(vector), idx.dim)
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if len(idx.vectors) == 0 {
		return []Match{}, nil
	}

	type slotDistance struct {
		slot     int
		distance float32
	}
	distances := make([]slotDistance, len(idx.vectors))
	for slot, v := range idx.vectors {
		distances[slot] = slotDistance{slot: slot, distance: squaredL2(vector, v)}
	}
	sort.Slice(distances, func(i, j int) bool {
		if distances[i].distance != distances[j].distance {
			return distances[i].distance < distances[j].distance
		}
		return distances[i].slot < distances[j].slot
	})

	if len(distances) > limit {
		distances = distances[:limit]
	}

	matches := make([]Match, 0, len(distances))
	for _, d := range distances {
		meta, ok := idx.metadata[d.slot]
		if !ok {
			idx.logger.Warn("vector slot has no metadata", "slot", d.slot)
			continue
		}
		matches = append(matches, Match{
			ArticleID: meta.ArticleID,
			Distance:  d.distance,
			Metadata:  *meta,
		})
	}
	return matches, nil
}

// Reset drops all vectors and metadata and persists the empty snapshots.
// Used by full reindexing.
func (idx *Index) Reset() error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	oldVectors, oldMetadata := idx.vectors, idx.metadata
	idx.vectors = nil
	idx.metadata = make(map[int]*Metadata)

	if err := idx.persistLocked(); err != nil {
		idx.vectors, idx.metadata = oldVectors, oldMetadata
		return fmt.Errorf("persist index: %w", err)
	}
	return nil
}

// indexText is the canonical text representation an article is embedded
// under.
func indexText(article *core.Article) string {
	return article.Title + ". " + article.Summary
}

func squaredL2(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

func (idx *Index) vectorsPath() string {
	return filepath.Join(idx.dir, vectorsFile)
}

func (idx *Index) metadataPath() string {
	return filepath.Join(idx.dir, metadataFile)
}

func (idx *Index) persistLocked() error {
	if err := os.WriteFile(idx.vectorsPath(), marshalVectors(idx.dim, idx.vectors), 0644); err != nil {
		return err
	}
	return os.WriteFile(idx.metadataPath(), marshalMetadata(idx.metadata), 0644)
}

func (idx *Index) load() error {
	vectorData, vectorsErr := os.ReadFile(idx.vectorsPath())
	metadataData, metadataErr := os.ReadFile(idx.metadataPath())

	vectorsExist := vectorsErr == nil
	metadataExists := metadataErr == nil

	if !vectorsExist && !metadataExists {
		return nil
	}
	if vectorsExist != metadataExists {
		// A lone snapshot file means an interrupted write; rebuild from
		// storage via reindexing.
		idx.logger.Warn("incomplete index snapshot, starting empty",
			"vectors", vectorsExist, "metadata", metadataExists)
		return nil
	}

	dim, vectors, err := unmarshalVectors(vectorData)
	if err != nil {
		return err
	}
	if dim != idx.dim {
		return fmt.Errorf("%w: snapshot dimension %d, index dimension %d", ErrDimensionMismatch, dim, idx.dim)
	}
	metadata, err := unmarshalMetadata(metadataData)
	if err != nil {
		return err
	}

	idx.vectors = vectors
	idx.metadata = metadata
	idx.logger.Debug("loaded index snapshot", "vectors", len(vectors), "metadata", len(metadata))
	return nil
}
