package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Elgenzay/kava.elg.gg/internal/biz/domain"
)

// fixedClock returns a settable time source
type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fixedClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// saturdayNoon is a Saturday at UTC-3
var saturdayNoon = time.Date(2024, time.June, 1, 15, 0, 0, 0, time.UTC)

func e2eDoc() domain.ConfigDocument {
	return domain.ConfigDocument{ReactRoleGroups: []domain.ReactionRoleGroup{
		{
			MessageID:         42,
			MutuallyExclusive: true,
			Roles: []domain.ReactionRole{
				{Emoji: "✅", RoleID: 1},
				{Emoji: "❎", RoleID: 2},
			},
		},
	}}
}

func TestStateCache_LazyInit(t *testing.T) {
	configRepo := &mockConfigRepo{doc: e2eDoc()}
	clock := &fixedClock{now: saturdayNoon}
	cache := NewStateCache(configRepo, NewDayTracker(-3, clock.Now))

	if cache.Peek().Initialized {
		t.Fatal("Expected cache to start uninitialized")
	}

	state, err := cache.Get(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !state.Initialized {
		t.Error("Expected initialized state")
	}
	if state.Day != time.Saturday {
		t.Errorf("Expected Saturday, got %s", state.Day)
	}
	if _, ok := state.Config.Group(42); !ok {
		t.Error("Expected group 42 to be loaded")
	}

	if _, err := cache.Get(context.Background()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if configRepo.loadCount() != 1 {
		t.Errorf("Expected 1 load, got %d", configRepo.loadCount())
	}
}

func TestStateCache_ResetReplacesSnapshot(t *testing.T) {
	configRepo := &mockConfigRepo{doc: e2eDoc()}
	clock := &fixedClock{now: saturdayNoon}
	cache := NewStateCache(configRepo, NewDayTracker(-3, clock.Now))

	before, err := cache.Get(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	clock.Set(saturdayNoon.Add(24 * time.Hour))
	after, err := cache.Reset(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if after.Day != time.Sunday {
		t.Errorf("Expected Sunday after reset, got %s", after.Day)
	}
	if before.Day != time.Saturday {
		t.Error("Expected earlier snapshot to stay unchanged")
	}
	if cache.Peek() != after {
		t.Error("Expected Peek to return the new snapshot")
	}
}

func TestStateCache_ReloadKeepsDay(t *testing.T) {
	configRepo := &mockConfigRepo{doc: e2eDoc()}
	clock := &fixedClock{now: saturdayNoon}
	cache := NewStateCache(configRepo, NewDayTracker(-3, clock.Now))

	if _, err := cache.Get(context.Background()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	clock.Set(saturdayNoon.Add(24 * time.Hour))
	reloaded, err := cache.Reload(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if reloaded.Day != time.Saturday {
		t.Errorf("Expected Saturday kept after reload, got %s", reloaded.Day)
	}
	if !reloaded.LoadedAt.Equal(saturdayNoon.Add(24 * time.Hour)) {
		t.Errorf("Expected fresh load time, got %v", reloaded.LoadedAt)
	}
}

func TestStateCache_ReloadUninitialized(t *testing.T) {
	configRepo := &mockConfigRepo{doc: e2eDoc()}
	clock := &fixedClock{now: saturdayNoon}
	cache := NewStateCache(configRepo, NewDayTracker(-3, clock.Now))

	state, err := cache.Reload(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !state.Initialized || state.Day != time.Saturday {
		t.Errorf("Expected initialized Saturday snapshot, got %+v", state)
	}
}

func TestStateCache_ResetErrorKeepsSnapshot(t *testing.T) {
	configRepo := &mockConfigRepo{doc: e2eDoc()}
	cache := NewStateCache(configRepo, NewDayTracker(-3, nil))

	good, err := cache.Get(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	configRepo.mu.Lock()
	configRepo.err = fmt.Errorf("%w: parse BotConfig.json", domain.ErrInvalidConfig)
	configRepo.mu.Unlock()

	_, err = cache.Reset(context.Background())
	if !errors.Is(err, domain.ErrInvalidConfig) {
		t.Fatalf("Expected ErrInvalidConfig, got %v", err)
	}
	if cache.Peek() != good {
		t.Error("Expected previous snapshot to be kept")
	}
}

func TestStateCache_GetUninitializedError(t *testing.T) {
	configRepo := &mockConfigRepo{err: fmt.Errorf("%w: missing", domain.ErrInvalidConfig)}
	cache := NewStateCache(configRepo, NewDayTracker(0, nil))

	if _, err := cache.Get(context.Background()); !errors.Is(err, domain.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
	if cache.Peek().Initialized {
		t.Error("Expected cache to stay uninitialized")
	}
}

func TestStateCache_ConcurrentFirstReadsConverge(t *testing.T) {
	configRepo := &mockConfigRepo{doc: e2eDoc()}
	clock := &fixedClock{now: saturdayNoon}
	cache := NewStateCache(configRepo, NewDayTracker(-3, clock.Now))

	var wg sync.WaitGroup
	states := make([]*domain.BotState, 16)
	for i := range states {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			st, err := cache.Get(context.Background())
			if err != nil {
				t.Errorf("Unexpected error: %v", err)
				return
			}
			states[i] = st
		}(i)
	}
	wg.Wait()

	for i, st := range states {
		if st == nil || !st.Initialized || st.Day != time.Saturday || len(st.Config.Groups) != 1 {
			t.Errorf("state %d did not converge: %+v", i, st)
		}
	}
	if n := configRepo.loadCount(); n < 1 || n > len(states) {
		t.Errorf("Unexpected load count %d", n)
	}
}
