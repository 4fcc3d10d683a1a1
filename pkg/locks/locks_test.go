package locks

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManager_Acquire(t *testing.T) {
	m := NewManager()

	assert.True(t, m.Acquire("ABC123", "p1"))
	assert.False(t, m.Acquire("ABC123", "p2"))
	// A holder does not stack acquires on the same room.
	assert.False(t, m.Acquire("ABC123", "p1"))
	// Other rooms are independent.
	assert.True(t, m.Acquire("XYZ789", "p2"))
}

func TestManager_Release(t *testing.T) {
	m := NewManager()
	m.Acquire("ABC123", "p1")

	// Releasing someone else's lock is a no-op.
	m.Release("ABC123", "p2")
	holder, held := m.Holder("ABC123")
	assert.True(t, held)
	assert.Equal(t, "p1", holder)

	m.Release("ABC123", "p1")
	_, held = m.Holder("ABC123")
	assert.False(t, held)

	// Releasing an unheld lock is a no-op.
	m.Release("ABC123", "p1")
	assert.True(t, m.Acquire("ABC123", "p2"))
}

func TestManager_ReleaseAll(t *testing.T) {
	m := NewManager()
	m.Acquire("ABC123", "p1")
	m.Acquire("XYZ789", "p1")
	m.Acquire("QRS456", "p2")

	m.ReleaseAll("p1")

	_, held := m.Holder("ABC123")
	assert.False(t, held)
	_, held = m.Holder("XYZ789")
	assert.False(t, held)
	holder, held := m.Holder("QRS456")
	assert.True(t, held)
	assert.Equal(t, "p2", holder)
}

func TestManager_concurrentAcquire(t *testing.T) {
	m := NewManager()

	const attempts = 100
	wins := make(chan string, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		holder := "p1"
		if i%2 == 0 {
			holder = "p2"
		}
		go func() {
			defer wg.Done()
			if m.Acquire("ABC123", holder) {
				wins <- holder
			}
		}()
	}
	wg.Wait()
	close(wins)

	var winners []string
	for w := range wins {
		winners = append(winners, w)
	}
	assert.Len(t, winners, 1)
	holder, held := m.Holder("ABC123")
	assert.True(t, held)
	assert.Equal(t, winners[0], holder)
}
