package usecase

import (
	"context"
	"fmt"

	"github.com/Elgenzay/kava.elg.gg/internal/biz/domain"
	"github.com/Elgenzay/kava.elg.gg/internal/biz/repo"
)

// ReactionOutcome describes how a reaction event was handled
type ReactionOutcome int

const (
	// ReactionFailed: config load or a member/role call failed
	ReactionFailed ReactionOutcome = iota
	// ReactionNotTrigger: the message has no reaction-role group
	ReactionNotTrigger
	// ReactionCustomEmoji: custom or animated emoji are ignored
	ReactionCustomEmoji
	// ReactionUnknownEmoji: the glyph is not part of the group
	ReactionUnknownEmoji
	// ReactionNoUser: the event carries no user
	ReactionNoUser
	// ReactionApplied: role mutations were issued
	ReactionApplied
)

func (o ReactionOutcome) String() string {
	switch o {
	case ReactionNotTrigger:
		return "not_trigger"
	case ReactionCustomEmoji:
		return "custom_emoji"
	case ReactionUnknownEmoji:
		return "unknown_emoji"
	case ReactionNoUser:
		return "no_user"
	case ReactionApplied:
		return "applied"
	default:
		return "failed"
	}
}

// ReactionUsecase maps reactions on trigger messages to role changes
type ReactionUsecase struct {
	stateCache *StateCache
	memberRepo repo.MemberRepo
}

// NewReactionUsecase creates a new reaction usecase
func NewReactionUsecase(stateCache *StateCache, memberRepo repo.MemberRepo) *ReactionUsecase {
	return &ReactionUsecase{
		stateCache: stateCache,
		memberRepo: memberRepo,
	}
}

// OnReactionChanged applies one reaction add (adding=true) or remove event.
//
// In a mutually exclusive group the member is first removed from every other
// role of the group, in configuration order, then the target role is added or
// removed. The first failing call aborts the rest; removals already done are
// not rolled back.
func (uc *ReactionUsecase) OnReactionChanged(ctx context.Context, ev domain.ReactionEvent, adding bool) (ReactionOutcome, error) {
	state, err := uc.stateCache.Get(ctx)
	if err != nil {
		return ReactionFailed, err
	}

	group, ok := state.Config.Group(ev.MessageID)
	if !ok {
		return ReactionNotTrigger, nil
	}
	if !ev.Emoji.IsUnicode() {
		return ReactionCustomEmoji, nil
	}

	target, others, ok := group.Partition(ev.Emoji.Name)
	if !ok {
		return ReactionUnknownEmoji, nil
	}
	if ev.UserID.IsZero() {
		return ReactionNoUser, nil
	}

	member, err := uc.memberRepo.ResolveMember(ctx, ev.GuildID, ev.UserID)
	if err != nil {
		return ReactionFailed, fmt.Errorf("resolve member %d: %w", ev.UserID, err)
	}

	if group.MutuallyExclusive {
		for _, other := range others {
			if err := uc.memberRepo.RemoveRole(ctx, ev.GuildID, member.UserID, other.RoleID); err != nil {
				return ReactionFailed, fmt.Errorf("remove role %d from %d: %w", other.RoleID, member.UserID, err)
			}
		}
	}

	if adding {
		if err := uc.memberRepo.AddRole(ctx, ev.GuildID, member.UserID, target.RoleID); err != nil {
			return ReactionFailed, fmt.Errorf("add role %d to %d: %w", target.RoleID, member.UserID, err)
		}
	} else {
		if err := uc.memberRepo.RemoveRole(ctx, ev.GuildID, member.UserID, target.RoleID); err != nil {
			return ReactionFailed, fmt.Errorf("remove role %d from %d: %w", target.RoleID, member.UserID, err)
		}
	}

	return ReactionApplied, nil
}
