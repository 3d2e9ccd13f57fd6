// Package store persists record definitions and instances in SQLite.
//
// Both are content-addressed: a definition row is keyed by the hash of its
// canonical JSON form, a record row by the hash of its definition and
// values. Writes are idempotent (ON CONFLICT DO NOTHING) and reads order
// deterministically, so the same inputs always produce the same database.
package store
