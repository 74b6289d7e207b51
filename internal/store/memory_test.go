package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/robalobadob/develordle/internal/engine"
	"github.com/robalobadob/develordle/internal/input"
)

type fixed string

func (f fixed) Pick() string { return string(f) }

func newEngine() *engine.Engine {
	return engine.New(fixed("STACK"), engine.WithLogger(zerolog.Nop()), engine.WithAutoSettle())
}

func TestSaveUpdateDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	if err := s.Save(ctx, "g1", newEngine()); err != nil {
		t.Fatal(err)
	}
	if s.Len() != 1 {
		t.Fatalf("Len = %d", s.Len())
	}
	err := s.Update(ctx, "g1", func(e *engine.Engine) error {
		_, err := e.Route(input.Letter('S'))
		return err
	})
	if err != nil {
		t.Fatal(err)
	}
	_ = s.Update(ctx, "g1", func(e *engine.Engine) error {
		if got := e.Snapshot().Rows[0]; got != "S" {
			t.Errorf("row = %q", got)
		}
		return nil
	})

	if err := s.Update(ctx, "nope", func(*engine.Engine) error { return nil }); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, "g1"); err != nil || s.Len() != 0 {
		t.Errorf("delete: %v len=%d", err, s.Len())
	}
	if err := s.Delete(ctx, "g1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestUpdatePropagatesError(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	_ = s.Save(ctx, "g1", newEngine())
	boom := errors.New("boom")
	if err := s.Update(ctx, "g1", func(*engine.Engine) error { return boom }); !errors.Is(err, boom) {
		t.Errorf("err = %v", err)
	}
}

func TestSweep(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1_700_000_000, 0)
	m := newMemory(func() time.Time { return now })

	_ = m.Save(ctx, "old", newEngine())
	now = now.Add(30 * time.Minute)
	_ = m.Save(ctx, "new", newEngine())
	now = now.Add(45 * time.Minute)

	if n := m.Sweep(ctx, time.Hour); n != 1 {
		t.Fatalf("swept %d, want 1", n)
	}
	if err := m.Update(ctx, "old", func(*engine.Engine) error { return nil }); !errors.Is(err, ErrNotFound) {
		t.Error("old game should be gone")
	}
	// touching keeps an entry alive
	_ = m.Update(ctx, "new", func(*engine.Engine) error { return nil })
	now = now.Add(50 * time.Minute)
	if n := m.Sweep(ctx, time.Hour); n != 0 {
		t.Errorf("swept %d, want 0", n)
	}
}

func TestConcurrentUpdates(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	_ = s.Save(ctx, "g1", newEngine())
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Update(ctx, "g1", func(e *engine.Engine) error {
				_, err := e.Route(input.Letter('A'))
				if err == nil {
					_, err = e.Route(input.Delete())
				}
				return err
			})
		}()
	}
	wg.Wait()
	_ = s.Update(ctx, "g1", func(e *engine.Engine) error {
		if c := e.Snapshot().Cursor; c != 0 {
			t.Errorf("cursor = %d, want 0", c)
		}
		return nil
	})
}
