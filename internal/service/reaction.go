package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Elgenzay/kava.elg.gg/internal/biz/domain"
	"github.com/Elgenzay/kava.elg.gg/internal/biz/usecase"
)

// ReactionService is the event-handler boundary for reaction-role updates
type ReactionService struct {
	reactionUC *usecase.ReactionUsecase
	reporter   Reporter
}

// NewReactionService creates a new reaction service
func NewReactionService(reactionUC *usecase.ReactionUsecase, reporter Reporter) *ReactionService {
	return &ReactionService{
		reactionUC: reactionUC,
		reporter:   reporter,
	}
}

// HandleReaction applies a reaction add (adding=true) or remove event.
// Failures are reported, never returned.
func (s *ReactionService) HandleReaction(ctx context.Context, ev domain.ReactionEvent, adding bool) usecase.ReactionOutcome {
	outcome, err := s.reactionUC.OnReactionChanged(ctx, ev, adding)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidConfig) {
			s.reporter.Fatal(ctx, fmt.Sprintf("Error loading bot config: %v", err))
			return outcome
		}
		s.reporter.LogError(ctx, fmt.Sprintf("Error on reaction update: %v", err))
	}
	return outcome
}
