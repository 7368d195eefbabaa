// Package ingestion fetches syndicated news feeds and turns their entries
// into stored, indexed draft articles.
//
// Each entry flows through URL deduplication, AI rewriting into the target
// language, persistence and semantic indexing. Rewriting degrades
// gracefully: when the generator cannot produce an original article it
// echoes its input, and the orchestrator falls back to translating the
// entry instead. Feeds are processed concurrently on a bounded worker
// pool; entries within one feed are processed in feed order.
package ingestion
