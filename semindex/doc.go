// Package semindex provides the on-disk semantic search index for articles.
//
// The index is a flat squared-L2 nearest-neighbor structure: every indexed
// article occupies one vector slot, and a slot-keyed metadata table carries
// the display fields search results are built from. Both structures are
// snapshotted to disk after every mutation, so a crash loses at most the
// mutation in flight.
//
// The index stores article IDs, not articles. Callers resolve matches
// against the article repository when they need full records, and rebuild
// the index from the repository (see the reindex package) when snapshots
// are lost or the embedding model changes.
package semindex
