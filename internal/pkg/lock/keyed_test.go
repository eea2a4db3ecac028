package lock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyedSerializesSameKey(t *testing.T) {
	k := NewKeyed()

	const goroutines = 50
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			k.Lock("property-1")
			defer k.Unlock("property-1")
			// Not atomic on purpose; only safe if the lock works.
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, goroutines, counter)
}

func TestKeyedIndependentKeys(t *testing.T) {
	k := NewKeyed()

	k.Lock("a")
	done := make(chan struct{})
	go func() {
		// Must not block on a different key.
		k.Lock("b")
		k.Unlock("b")
		close(done)
	}()
	<-done
	k.Unlock("a")
}

func TestKeyedEntriesAreReleased(t *testing.T) {
	k := NewKeyed()

	k.Lock("x")
	k.Unlock("x")
	k.Lock("y")
	k.Unlock("y")

	k.mu.Lock()
	defer k.mu.Unlock()
	require.Empty(t, k.locks)
}
