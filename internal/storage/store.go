// Package storage persists the processed-item dedup set and the per-run
// analysis archive.
package storage

// Store is the deduplication set of delivered item ids. Ids are append-only;
// once added they are never removed. Appending an id that is already present
// is a harmless no-op for membership purposes.
type Store interface {
	Load() error
	Contains(id string) bool
	Append(ids []string) error
}
