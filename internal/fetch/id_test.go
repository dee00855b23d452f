package fetch

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequence_MonotonicAndResettable(t *testing.T) {
	var s Sequence

	assert.Equal(t, "1", s.Next())
	assert.Equal(t, "2", s.Next())
	assert.Equal(t, "3", s.Next())

	s.Reset()
	assert.Equal(t, "1", s.Next())
}

func TestSequence_ConcurrentNextIsUnique(t *testing.T) {
	var s Sequence
	const n = 100

	ids := make(chan string, n)
	for i := 0; i < n; i++ {
		go func() { ids <- s.Next() }()
	}

	seen := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		id := <-ids
		assert.False(t, seen[id], "duplicate identifier %s", id)
		seen[id] = true
	}
}

func TestUUIDSource_ProducesValidV7(t *testing.T) {
	src := NewUUIDSource()

	a := src.Next()
	b := src.Next()
	assert.NotEqual(t, a, b)

	parsed, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}

func TestDefaultIDs_SharedInstance(t *testing.T) {
	assert.Same(t, DefaultIDs(), DefaultIDs())
}
