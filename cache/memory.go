package cache

import (
	"context"
	"sync"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"

	"github.com/domino14/trailbot/move"
)

// Rough size of one entry: key string, its header and the map slot.
const entrySize = 96

const minEntries = 1 << 10

// MemoryStore is a process-local store bounded to a fraction of system
// memory. When full, an arbitrary entry makes room for the new one.
type MemoryStore struct {
	sync.Mutex
	objects    map[string]move.Direction
	maxEntries int
}

func NewMemoryStore(fractionOfMemory float64) *MemoryStore {
	totalMem := memory.TotalMemory()
	n := max(int(fractionOfMemory*float64(totalMem)/entrySize), minEntries)
	log.Info().Int("max-entries", n).
		Uint64("total-system-memory-bytes", totalMem).
		Msg("decision-cache-size")
	return newMemoryStore(n)
}

func newMemoryStore(maxEntries int) *MemoryStore {
	return &MemoryStore{
		objects:    make(map[string]move.Direction),
		maxEntries: maxEntries,
	}
}

func (c *MemoryStore) Get(_ context.Context, key string) (move.Direction, bool, error) {
	c.Lock()
	defer c.Unlock()
	d, ok := c.objects[key]
	return d, ok, nil
}

func (c *MemoryStore) Put(_ context.Context, key string, d move.Direction) error {
	c.Lock()
	defer c.Unlock()
	if _, ok := c.objects[key]; !ok && len(c.objects) >= c.maxEntries {
		for k := range c.objects {
			delete(c.objects, k)
			break
		}
	}
	c.objects[key] = d
	return nil
}

func (c *MemoryStore) Len() int {
	c.Lock()
	defer c.Unlock()
	return len(c.objects)
}

func (c *MemoryStore) Close() error { return nil }
