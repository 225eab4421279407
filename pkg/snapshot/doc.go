// Package snapshot stores whole serialized collections under string keys.
//
// It is the persistence layer behind the content stores: a collection is read once at
// startup and rewritten in full after every change. Backends only move bytes; encoding
// is the caller's business.
//
// Available backends:
//   - [Memory]: process-local, for tests and throwaway runs
//   - [File]: one <key>.json file per collection in a directory
//   - [Redis]: one string key per collection
//   - [Postgres]: one row per collection in the snapshots table
//
// Load returns [ErrNotFound] for a key that was never saved. Callers use that to seed
// defaults.
package snapshot
