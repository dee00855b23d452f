package fetch

import (
	"strconv"
	"sync"

	"github.com/google/uuid"
)

// IDSource generates node identifiers. Identifiers are opaque strings,
// stable for a node's lifetime, never reused, and meaningful only for
// equality.
//
// The process-wide default is a Sequence (see DefaultIDs). Parsers accept
// an explicit IDSource so tests can inject a fresh Sequence for
// deterministic fixtures instead of resetting shared state.
type IDSource interface {
	Next() string
}

// Sequence is a monotonically increasing counter IDSource.
//
// The counter is a simple mutable value guarded by a mutex, so a shared
// Sequence is safe under concurrent parses. Reset exists for
// deterministic test fixtures; do not reset a source that has already
// issued identifiers to live trees, since reuse breaks the never-reused
// guarantee.
type Sequence struct {
	mu sync.Mutex
	n  uint64
}

// Next returns the next identifier in the sequence ("1", "2", ...).
func (s *Sequence) Next() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return strconv.FormatUint(s.n, 10)
}

// Reset rewinds the counter to zero.
func (s *Sequence) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n = 0
}

// defaultIDs is the process-wide identifier source.
var defaultIDs = &Sequence{}

// DefaultIDs returns the process-wide Sequence used when no explicit
// IDSource is supplied.
func DefaultIDs() *Sequence {
	return defaultIDs
}

// uuidSource generates RFC 4122 UUIDv7 identifiers. Time-ordered, so
// identifiers still sort by creation like Sequence output does.
type uuidSource struct{}

func (uuidSource) Next() string {
	return uuid.Must(uuid.NewV7()).String()
}

// NewUUIDSource returns an IDSource producing UUIDv7 identifiers, for
// callers that need identifiers unique across processes (saved views,
// exported trees) rather than merely process-unique.
func NewUUIDSource() IDSource {
	return uuidSource{}
}
