package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Elgenzay/kava.elg.gg/internal/biz/domain"
	"github.com/Elgenzay/kava.elg.gg/internal/biz/repo"
	"github.com/Elgenzay/kava.elg.gg/internal/biz/usecase"
)

// TickReport summarizes one tick
type TickReport struct {
	Skipped bool // database unreachable
	Crossed bool // logical day changed
	Weekly  bool // weekly cycle ran
	Drain   usecase.DrainOutcome
}

// TickScheduler is the periodic driver: day boundary checks, then one drain
type TickScheduler struct {
	queueRepo  repo.QueueRepo
	stateCache *usecase.StateCache
	tracker    *usecase.DayTracker
	cycleUC    *usecase.CycleUsecase
	drainUC    *usecase.DrainUsecase
	reporter   Reporter

	interval time.Duration
	cycleDay time.Weekday

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewTickScheduler creates a new tick scheduler
func NewTickScheduler(
	queueRepo repo.QueueRepo,
	stateCache *usecase.StateCache,
	tracker *usecase.DayTracker,
	cycleUC *usecase.CycleUsecase,
	drainUC *usecase.DrainUsecase,
	reporter Reporter,
	interval time.Duration,
	cycleDay time.Weekday,
) *TickScheduler {
	return &TickScheduler{
		queueRepo:  queueRepo,
		stateCache: stateCache,
		tracker:    tracker,
		cycleUC:    cycleUC,
		drainUC:    drainUC,
		reporter:   reporter,
		interval:   interval,
		cycleDay:   cycleDay,
	}
}

// Start starts the tick loop
func (s *TickScheduler) Start(ctx context.Context) {
	s.ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go s.loop()

	fmt.Printf("[Tick] Started with interval %v, weekly cycle on %s\n", s.interval, s.cycleDay)
}

// Stop stops the tick loop and waits for the current tick to finish
func (s *TickScheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	fmt.Println("[Tick] Stopped")
}

// loop runs one tick per interval. A tick that overruns the interval causes
// the missed ticks to be dropped, never run concurrently.
func (s *TickScheduler) loop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.runTick(s.ctx)
		}
	}
}

func (s *TickScheduler) runTick(ctx context.Context) {
	if _, err := s.Tick(ctx); err != nil {
		if errors.Is(err, domain.ErrInvalidConfig) {
			s.reporter.Fatal(ctx, fmt.Sprintf("Error loading bot config: %v", err))
			return
		}
		s.reporter.LogError(ctx, fmt.Sprintf("Tick error: %v", err))
	}
}

// Tick runs one scheduler step. Errors from the cycle side effects and the
// drain are joined; none of them stop the remaining steps.
func (s *TickScheduler) Tick(ctx context.Context) (TickReport, error) {
	var report TickReport

	if err := s.queueRepo.Ping(ctx); err != nil {
		report.Skipped = true
		return report, nil
	}

	state, err := s.stateCache.Get(ctx)
	if err != nil {
		return report, err
	}

	var errs []error
	today := s.tracker.Today()
	if domain.HasCrossedDay(state.Day, today) {
		report.Crossed = true
		fmt.Printf("[Tick] Logical day changed: %s -> %s\n", state.Day, today)

		if err := s.cycleUC.Daily(ctx, today); err != nil {
			errs = append(errs, err)
		}

		fresh, err := s.stateCache.Reset(ctx)
		if err != nil {
			errs = append(errs, err)
		} else if fresh.Day == s.cycleDay {
			report.Weekly = true
			if err := s.cycleUC.Weekly(ctx); err != nil {
				errs = append(errs, err)
			}
		}
	}

	report.Drain, err = s.drainUC.DrainOne(ctx)
	if err != nil {
		errs = append(errs, err)
	}

	return report, errors.Join(errs...)
}
