package reindex

import "errors"

var (
	// ErrInvalidMaxAttempts is returned when maxAttempts is <= 0
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrRepositoryRequired indicates the article repository was not provided.
	ErrRepositoryRequired = errors.New("article repository is required")

	// ErrIndexerRequired indicates the index was not provided.
	ErrIndexerRequired = errors.New("indexer is required")
)
