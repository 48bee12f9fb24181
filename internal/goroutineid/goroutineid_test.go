package goroutineid

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentNonZero(t *testing.T) {
	id := Current()
	assert.NotZero(t, id)
}

func TestCurrentDistinctAcrossGoroutines(t *testing.T) {
	const n = 8

	ids := make([]uint64, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			ids[i] = Current()
		}(i)
	}
	wg.Wait()

	seen := make(map[uint64]bool, n)
	for _, id := range ids {
		require.False(t, seen[id], "goroutine id %d observed twice", id)
		seen[id] = true
	}
}

func TestParse(t *testing.T) {
	id := parse([]byte("goroutine 42 [running]:\nmain.main()\n"))
	assert.Equal(t, uint64(42), id)
}

func TestParseMalformed(t *testing.T) {
	assert.Zero(t, parse([]byte("not a stack trace")))
}
