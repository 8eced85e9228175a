package qualys

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRefLocks_SerializesSameRef(t *testing.T) {
	locks := newRefLocks()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		inside  int
		maxSeen int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock("scan/1")
			defer unlock()

			mu.Lock()
			inside++
			if inside > maxSeen {
				maxSeen = inside
			}
			mu.Unlock()

			mu.Lock()
			inside--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
	assert.Equal(t, 0, locks.Held("scan/1"))
}

func TestRefLocks_IndependentRefs(t *testing.T) {
	locks := newRefLocks()

	unlockA := locks.Lock("scan/a")
	unlockB := locks.Lock("scan/b")
	assert.Equal(t, 1, locks.Held("scan/a"))
	assert.Equal(t, 1, locks.Held("scan/b"))

	unlockA()
	unlockB()
	assert.Equal(t, 0, locks.Held("scan/a"))
}
