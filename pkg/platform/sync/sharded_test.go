package sync

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShardedMutex_SameKeySerializes(t *testing.T) {
	m := NewShardedMutex()
	counter := 0
	var wg sync.WaitGroup

	for range 100 {
		wg.Go(func() {
			_ = m.Do("session-1", func() error {
				counter++
				return nil
			})
		})
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
}

func TestShardedMutex_DoReturnsError(t *testing.T) {
	m := NewShardedMutex()
	want := errors.New("boom")

	err := m.Do("session-1", func() error { return want })

	assert.ErrorIs(t, err, want)
	// lock is released after fn returns
	m.Lock("session-1")
	m.Unlock("session-1")
}

func TestShardedMutex_ShardDistribution(t *testing.T) {
	m := NewShardedMutex()
	shards := make(map[int]bool)
	for i := range 16 {
		shards[m.shardFor(fmt.Sprintf("session-%d", i))] = true
	}

	assert.GreaterOrEqual(t, len(shards), 4)
	assert.Equal(t, 0, m.shardFor(""))
	assert.Equal(t, m.shardFor("abc"), m.shardFor("abc"))
}
