// Package reindex rebuilds the semantic search index from the article store.
//
// A rebuild is the recovery path for lost or stale index snapshots and the
// migration path when the embedding model changes. It resets the index and
// re-adds every stored article in ID order, with progress tracking and
// retry logic with exponential backoff around embedding calls.
package reindex
