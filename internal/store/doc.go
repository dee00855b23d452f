// Package store provides SQLite-backed storage for saved views.
//
// A saved view is a named pair of documents: the fetch XML and its
// companion layout (grid) XML. Views are what the builder UI loads and
// saves; the store keeps them durable between sessions.
//
// Ordering uses a seq INTEGER assigned at first save, with id as the
// tiebreaker, so listings are deterministic regardless of wall time.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity
package store
