package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Elgenzay/kava.elg.gg/internal/biz/domain"
	"github.com/Elgenzay/kava.elg.gg/internal/biz/repo"
)

// StateCache owns the process-wide BotState snapshot. Snapshots are never
// mutated; a reset swaps in a new one under the write lock.
type StateCache struct {
	configRepo repo.ConfigRepo
	tracker    *DayTracker

	mu    sync.RWMutex
	state *domain.BotState
}

// NewStateCache creates an uninitialized cache
func NewStateCache(configRepo repo.ConfigRepo, tracker *DayTracker) *StateCache {
	return &StateCache{
		configRepo: configRepo,
		tracker:    tracker,
		state:      &domain.BotState{},
	}
}

// Get returns the cached snapshot, loading it on first use.
// Two concurrent first reads may both load; both store equivalent snapshots.
func (c *StateCache) Get(ctx context.Context) (*domain.BotState, error) {
	c.mu.RLock()
	state := c.state
	c.mu.RUnlock()

	if state.Initialized {
		return state, nil
	}
	return c.Reset(ctx)
}

// Peek returns the current snapshot without loading it
func (c *StateCache) Peek() *domain.BotState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Reset recomputes the logical day, reloads the configuration document and
// replaces the snapshot. On error the previous snapshot is kept and the error
// wraps domain.ErrInvalidConfig when the document is missing or malformed.
// Only the tick scheduler and lazy init may advance the day; other callers
// use Reload.
func (c *StateCache) Reset(ctx context.Context) (*domain.BotState, error) {
	return c.load(ctx, func(*domain.BotState) time.Weekday {
		return c.tracker.Today()
	})
}

// Reload reloads the configuration document but keeps the cached day, so a
// pending day crossing is still seen by the next tick. An uninitialized
// cache is loaded as by Reset.
func (c *StateCache) Reload(ctx context.Context) (*domain.BotState, error) {
	return c.load(ctx, func(prev *domain.BotState) time.Weekday {
		if prev.Initialized {
			return prev.Day
		}
		return c.tracker.Today()
	})
}

func (c *StateCache) load(ctx context.Context, dayOf func(prev *domain.BotState) time.Weekday) (*domain.BotState, error) {
	cfg, err := c.configRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("reset state: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	state := &domain.BotState{
		Initialized: true,
		Config:      cfg,
		Day:         dayOf(c.state),
		LoadedAt:    c.tracker.Now(),
	}
	c.state = state

	return state, nil
}
