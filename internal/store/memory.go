// internal/store/memory.go
//
// In-memory store for hosted games.
//
// Characteristics:
//   - Holds one *engine.Engine per game id.
//   - The map is guarded by an RWMutex; each entry has its own mutex so that
//     requests for different games never wait on each other, while requests
//     for the same game are serialized (an Engine is single-writer).
//   - Entries idle for longer than a TTL are removed by Sweep.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/develordle/internal/engine"
)

// ErrNotFound is returned for unknown or expired game ids.
var ErrNotFound = errors.New("game not found")

// Store hosts running games.
type Store interface {
	// Save adds or replaces the engine for id.
	Save(ctx context.Context, id string, e *engine.Engine) error

	// Update runs fn with exclusive access to the engine for id.
	Update(ctx context.Context, id string, fn func(*engine.Engine) error) error

	// Delete drops id, or returns ErrNotFound.
	Delete(ctx context.Context, id string) error

	// Sweep removes entries not touched within ttl and returns how many went.
	Sweep(ctx context.Context, ttl time.Duration) int

	// Len is the number of hosted games.
	Len() int
}

type entry struct {
	mu         sync.Mutex
	eng        *engine.Engine
	lastAccess time.Time
}

type memory struct {
	mu    sync.RWMutex // guards games
	games map[string]*entry
	now   func() time.Time
}

// NewMemoryStore constructs an empty in-memory Store.
func NewMemoryStore() Store {
	return newMemory(time.Now)
}

func newMemory(now func() time.Time) *memory {
	return &memory{games: make(map[string]*entry), now: now}
}

func (m *memory) Save(ctx context.Context, id string, e *engine.Engine) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[id] = &entry{eng: e, lastAccess: m.now()}
	return nil
}

func (m *memory) Update(ctx context.Context, id string, fn func(*engine.Engine) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.RLock()
	en, ok := m.games[id]
	m.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}
	en.mu.Lock()
	defer en.mu.Unlock()
	en.lastAccess = m.now()
	return fn(en.eng)
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[id]; !ok {
		return ErrNotFound
	}
	delete(m.games, id)
	return nil
}

func (m *memory) Sweep(ctx context.Context, ttl time.Duration) int {
	cutoff := m.now().Add(-ttl)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, en := range m.games {
		en.mu.Lock()
		stale := en.lastAccess.Before(cutoff)
		en.mu.Unlock()
		if stale {
			delete(m.games, id)
			n++
		}
	}
	return n
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}

// RunSweeper calls Sweep every interval until ctx is done.
func RunSweeper(ctx context.Context, s Store, ttl, interval time.Duration, onSweep func(removed int)) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := s.Sweep(ctx, ttl); n > 0 && onSweep != nil {
				onSweep(n)
			}
		}
	}
}
