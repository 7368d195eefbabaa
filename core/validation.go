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


package core

import (
	"fmt"
	"time"
)

// ValidateArticle validates an Article according to domain rules.
//
// Validation rules:
//   - URL must not be empty (it is the deduplication key)
//   - Title must not be empty
//   - Status must be a known ArticleStatus
//   - PublishedAt, when set, must not be in the future
//
// NOT validated (populated by the store or collaborators):
//   - Id (0 is valid before the store assigns one)
//   - CreatedAt (set by the store on insert)
//   - Content, Summary, Tags (may legitimately be empty on the
//     translation-fallback path)
func ValidateArticle(article *Article) error {
	if article == nil {
		return fmt.Errorf("%w: article is nil", ErrInvalidArticle)
	}

	if article.URL == "" {
		return fmt.Errorf("%w: %w", ErrInvalidArticle, ErrEmptyURL)
	}

	if article.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidArticle, ErrEmptyTitle)
	}

	if err := ValidateStatus(article.Status); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArticle, err)
	}

	if !article.PublishedAt.IsZero() && !IsValidTimestamp(article.PublishedAt) {
		return fmt.Errorf("%w: %w", ErrInvalidArticle, ErrInvalidTimestamp)
	}

	return nil
}

// ValidateStatus validates that an ArticleStatus has a known value.
func ValidateStatus(status ArticleStatus) error {
	switch status {
	case StatusDraft, StatusPublished, StatusArchived:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
