package idgen_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/campaign/internal/idgen"
)

func TestUUIDGenerator_Prefixed(t *testing.T) {
	id := idgen.NewUUID("char").Generate()
	require.True(t, strings.HasPrefix(id, "char_"))
	_, err := uuid.Parse(strings.TrimPrefix(id, "char_"))
	assert.NoError(t, err)
}

func TestUUIDGenerator_Bare(t *testing.T) {
	id := idgen.NewUUID("").Generate()
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
}

func TestUUIDGenerator_Unique(t *testing.T) {
	gen := idgen.NewUUID("cbt")
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := gen.Generate()
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestSequentialGenerator(t *testing.T) {
	gen := idgen.NewSequential("c")
	assert.Equal(t, "c_1", gen.Generate())
	assert.Equal(t, "c_2", gen.Generate())

	bare := idgen.NewSequential("")
	assert.Equal(t, "1", bare.Generate())
}

func TestSequentialGenerator_Concurrent(t *testing.T) {
	gen := idgen.NewSequential("x")
	var wg sync.WaitGroup
	var mu sync.Mutex
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := gen.Generate()
			mu.Lock()
			seen[id] = true
			mu.Unlock()
		}()
	}
	wg.Wait()
	assert.Len(t, seen, 50)
}
