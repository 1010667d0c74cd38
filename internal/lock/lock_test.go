package lock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoSerializesSameKey(t *testing.T) {
	k := NewKeyed()

	const goroutines = 50
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = k.Do("player-1", func() error {
				counter++
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, goroutines, counter)
}

func TestDoIndependentKeys(t *testing.T) {
	k := NewKeyed()

	release := make(chan struct{})
	holding := make(chan struct{})

	go func() {
		_ = k.Do("a", func() error {
			close(holding)
			<-release
			return nil
		})
	}()

	<-holding

	// A different key must not block behind "a"
	ran := false
	err := k.Do("b", func() error {
		ran = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, ran)

	close(release)
}

func TestEntriesCleanedUp(t *testing.T) {
	k := NewKeyed()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = k.Do("player-1", func() error { return nil })
			_ = k.Do("player-2", func() error { return nil })
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, k.Len())
}
