package usecase

import (
	"context"
	"fmt"

	"github.com/Elgenzay/kava.elg.gg/internal/biz/repo"
)

// DrainOutcome describes what one drain did with the queue
type DrainOutcome int

const (
	// DrainFailed means the queue could not be read or the row could not be
	// deleted; nothing was sent and the row (if any) stays queued
	DrainFailed DrainOutcome = iota
	// DrainEmpty means there was nothing to send
	DrainEmpty
	// DrainLost means the row was deleted but could not be delivered
	DrainLost
	// DrainDelivered means the message was sent (reactions may be incomplete)
	DrainDelivered
)

func (o DrainOutcome) String() string {
	switch o {
	case DrainEmpty:
		return "empty"
	case DrainLost:
		return "lost"
	case DrainDelivered:
		return "delivered"
	default:
		return "failed"
	}
}

// DrainUsecase relays queued messages into channels, one per call
type DrainUsecase struct {
	queueRepo   repo.QueueRepo
	messageRepo repo.MessageRepo
}

// NewDrainUsecase creates a new drain usecase
func NewDrainUsecase(queueRepo repo.QueueRepo, messageRepo repo.MessageRepo) *DrainUsecase {
	return &DrainUsecase{
		queueRepo:   queueRepo,
		messageRepo: messageRepo,
	}
}

// DrainOne sends the oldest queued message.
// The row is deleted before sending, so delivery is at-most-once: a crash or
// send failure after the delete loses the message rather than duplicating it.
func (uc *DrainUsecase) DrainOne(ctx context.Context) (DrainOutcome, error) {
	msg, err := uc.queueRepo.Oldest(ctx)
	if err != nil {
		return DrainFailed, fmt.Errorf("fetch queued message: %w", err)
	}
	if msg == nil {
		return DrainEmpty, nil
	}

	if err := uc.queueRepo.Delete(ctx, msg.ID); err != nil {
		return DrainFailed, fmt.Errorf("delete queued message %d: %w", msg.ID, err)
	}

	channel, err := uc.messageRepo.ResolveChannel(ctx, msg.GuildID, msg.ChannelID)
	if err != nil {
		return DrainLost, fmt.Errorf("find guild channel %d for queued message %d: %w", msg.ChannelID, msg.ID, err)
	}

	sentID, err := uc.messageRepo.SendText(ctx, channel.ID, msg.Body)
	if err != nil {
		return DrainLost, fmt.Errorf("send queued message %d: %w", msg.ID, err)
	}

	for _, glyph := range msg.Reactions {
		if err := uc.messageRepo.AddReaction(ctx, channel.ID, sentID, glyph); err != nil {
			return DrainDelivered, fmt.Errorf("react %q to message %d: %w", glyph, sentID, err)
		}
	}

	return DrainDelivered, nil
}
