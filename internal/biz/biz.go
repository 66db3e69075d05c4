package biz

import (
	"github.com/Elgenzay/kava.elg.gg/internal/biz/domain"
	"github.com/Elgenzay/kava.elg.gg/internal/biz/repo"
	"github.com/Elgenzay/kava.elg.gg/internal/biz/usecase"
)

// Usecases contains all usecases
type Usecases struct {
	Tracker  *usecase.DayTracker
	State    *usecase.StateCache
	Logger   *usecase.QueueLogger
	Schedule *usecase.ScheduleUsecase
	Cycle    *usecase.CycleUsecase
	Drain    *usecase.DrainUsecase
	Reaction *usecase.ReactionUsecase
}

// Options carries the settings the usecases need
type Options struct {
	OffsetHours    int
	GuildID        domain.Snowflake
	ErrorChannelID domain.Snowflake
	LogChannelID   domain.Snowflake // daily/weekly notifications go here too
	Templates      usecase.NotifyTemplates
}

// NewUsecases wires all usecases over the repositories. message and member
// may be nil for tools that never talk to Discord; Drain and Reaction are
// then nil as well.
func NewUsecases(
	queueRepo repo.QueueRepo,
	configRepo repo.ConfigRepo,
	scheduleRepo repo.ScheduleRepo,
	messageRepo repo.MessageRepo,
	memberRepo repo.MemberRepo,
	opts Options,
) *Usecases {
	tracker := usecase.NewDayTracker(opts.OffsetHours, nil)
	state := usecase.NewStateCache(configRepo, tracker)
	schedule := usecase.NewScheduleUsecase(scheduleRepo)

	uc := &Usecases{
		Tracker:  tracker,
		State:    state,
		Logger:   usecase.NewQueueLogger(queueRepo, opts.GuildID, opts.ErrorChannelID, opts.LogChannelID),
		Schedule: schedule,
		Cycle:    usecase.NewCycleUsecase(schedule, queueRepo, opts.Templates, opts.GuildID, opts.LogChannelID),
	}
	if messageRepo != nil {
		uc.Drain = usecase.NewDrainUsecase(queueRepo, messageRepo)
	}
	if memberRepo != nil {
		uc.Reaction = usecase.NewReactionUsecase(state, memberRepo)
	}
	return uc
}
