package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Elgenzay/kava.elg.gg/internal/biz/domain"
	"github.com/Elgenzay/kava.elg.gg/internal/biz/repo"
)

// NotifyTemplates renders cycle notifications
type NotifyTemplates interface {
	FormatDaily(day time.Weekday) string
	FormatWeekly(locations int) string
}

// CycleUsecase runs the daily and weekly day-boundary side effects.
// Notifications are queued, not sent directly, so they reach the channel
// through the regular drain.
type CycleUsecase struct {
	scheduleUC *ScheduleUsecase
	queueRepo  repo.QueueRepo
	templates  NotifyTemplates
	guildID    domain.Snowflake
	channelID  domain.Snowflake
}

// NewCycleUsecase creates a new cycle usecase
func NewCycleUsecase(
	scheduleUC *ScheduleUsecase,
	queueRepo repo.QueueRepo,
	templates NotifyTemplates,
	guildID, channelID domain.Snowflake,
) *CycleUsecase {
	return &CycleUsecase{
		scheduleUC: scheduleUC,
		queueRepo:  queueRepo,
		templates:  templates,
		guildID:    guildID,
		channelID:  channelID,
	}
}

// Daily queues the start-of-day notification for day
func (uc *CycleUsecase) Daily(ctx context.Context, day time.Weekday) error {
	if err := uc.notify(ctx, uc.templates.FormatDaily(day)); err != nil {
		return fmt.Errorf("daily cycle: %w", err)
	}
	return nil
}

// Weekly rotates the schedule and queues the weekly notification
func (uc *CycleUsecase) Weekly(ctx context.Context) error {
	n, err := uc.scheduleUC.RotateWeek(ctx)
	if err != nil {
		return fmt.Errorf("weekly cycle: %w", err)
	}
	fmt.Printf("[Cycle] Week cycled successfully (%d locations)\n", n)

	if err := uc.notify(ctx, uc.templates.FormatWeekly(n)); err != nil {
		return fmt.Errorf("weekly cycle: %w", err)
	}
	return nil
}

func (uc *CycleUsecase) notify(ctx context.Context, text string) error {
	if text == "" {
		return nil
	}
	_, err := uc.queueRepo.Enqueue(ctx, &domain.QueuedMessage{
		GuildID:   uc.guildID,
		ChannelID: uc.channelID,
		Body:      text,
	})
	return err
}
