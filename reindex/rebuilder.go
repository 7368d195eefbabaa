// Copyright 2025 Gaceta Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package reindex

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/gacetalabs/gaceta/core"
	"github.com/gacetalabs/gaceta/storage"
)

// Indexer is the subset of the semantic index the rebuilder drives.
type Indexer interface {
	// Reset drops all indexed vectors and metadata.
	Reset() error
	// AddArticle embeds and appends one article.
	AddArticle(ctx context.Context, article *core.Article) error
}

// Config holds configuration for the reindexing operation.
type Config struct {
	// BatchSize is the number of articles fetched per progress step
	BatchSize int

	// ReportInterval is how often to report progress (number of articles)
	ReportInterval int

	// MaxRetries is the maximum number of retry attempts for failed embeddings
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      100,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Rebuilder rebuilds the semantic index from stored articles. A rebuild
// resets the index, so slots left dangling by crashes or embedding-model
// changes are discarded rather than patched.
type Rebuilder struct {
	repo     storage.ArticleRepository
	index    Indexer
	config   *Config
	progress io.Writer
	logger   *slog.Logger
}

// NewRebuilder creates a new rebuilder.
// progress: where to write progress output (typically os.Stderr)
func NewRebuilder(repo storage.ArticleRepository, index Indexer, config *Config, progress io.Writer) (*Rebuilder, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}
	if index == nil {
		return nil, ErrIndexerRequired
	}
	if config == nil {
		config = DefaultConfig()
	}

	return &Rebuilder{
		repo:     repo,
		index:    index,
		config:   config,
		progress: progress,
		logger:   slog.Default().With("component", "reindex"),
	}, nil
}

// Run executes the rebuild. Every stored article is re-embedded and
// re-added in ID order. Articles whose embedding keeps failing after
// retries are skipped and reported; a skip does not abort the rebuild.
func (r *Rebuilder) Run(ctx context.Context) error {
	articles, err := r.repo.GetAllArticles(ctx)
	if err != nil {
		return fmt.Errorf("failed to query articles: %w", err)
	}

	if err := r.index.Reset(); err != nil {
		return fmt.Errorf("failed to reset index: %w", err)
	}

	total := len(articles)
	if total == 0 {
		fmt.Fprintf(r.progress, "No articles found in database (0 articles)\n")
		return nil
	}

	fmt.Fprintf(r.progress, "Starting reindex of %d articles (batch size: %d)\n",
		total, r.config.BatchSize)

	tracker := NewProgressTracker(r.progress, total, r.config.ReportInterval)
	tracker.Start()

	processed := 0
	skipped := 0

	for start := 0; start < total; start += r.config.BatchSize {
		end := start + r.config.BatchSize
		if end > total {
			end = total
		}

		for _, article := range articles[start:end] {
			article := article
			err := RetryWithBackoff(ctx, func() error {
				return r.index.AddArticle(ctx, article)
			}, r.config.MaxRetries, r.config.RetryDelay)

			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				r.logger.Warn("skipping article after repeated failures", "id", article.Id, "err", err)
				skipped++
			}
			processed++
		}
		tracker.Update(processed)
	}

	tracker.Finish()

	elapsed := tracker.Elapsed()
	fmt.Fprintf(r.progress, "Reindex complete. Processed %d articles in %v (%.1f articles/sec), %d skipped\n",
		total, elapsed.Round(time.Second), float64(total)/elapsed.Seconds(), skipped)

	return nil
}
