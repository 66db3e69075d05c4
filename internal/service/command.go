package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/Elgenzay/kava.elg.gg/internal/biz/domain"
	"github.com/Elgenzay/kava.elg.gg/internal/biz/repo"
	"github.com/Elgenzay/kava.elg.gg/internal/biz/usecase"
)

// CommandPrefix starts text commands
const CommandPrefix = "k!"

// DebugFormatter renders the /debug reply
type DebugFormatter interface {
	FormatDebug(day time.Weekday, groups int, loaded string, queued int64) string
}

// CommandDef is a slash command exposed to users
type CommandDef struct {
	Name        string
	Description string
}

// SlashCommands lists the global slash commands
var SlashCommands = []CommandDef{
	{Name: "ping", Description: "A ping command"},
	{Name: "debug", Description: "Show bot state"},
}

// CommandService answers slash and text commands
type CommandService struct {
	stateCache *usecase.StateCache
	queueRepo  repo.QueueRepo
	cycleUC    *usecase.CycleUsecase
	formatter  DebugFormatter
	reporter   Reporter
	operatorID domain.Snowflake
	now        func() time.Time
}

// NewCommandService creates a new command service
func NewCommandService(
	stateCache *usecase.StateCache,
	queueRepo repo.QueueRepo,
	cycleUC *usecase.CycleUsecase,
	formatter DebugFormatter,
	reporter Reporter,
	operatorID domain.Snowflake,
) *CommandService {
	return &CommandService{
		stateCache: stateCache,
		queueRepo:  queueRepo,
		cycleUC:    cycleUC,
		formatter:  formatter,
		reporter:   reporter,
		operatorID: operatorID,
		now:        time.Now,
	}
}

// HandleSlash returns the reply for a slash command; unknown commands get ""
func (s *CommandService) HandleSlash(ctx context.Context, name string) string {
	switch name {
	case "ping":
		return "Pong!"
	case "debug":
		return s.Debug(ctx)
	default:
		return ""
	}
}

// Debug describes the cached state and queue depth
func (s *CommandService) Debug(ctx context.Context) string {
	state := s.stateCache.Peek()

	loaded := "never"
	groups := 0
	if state.Initialized {
		loaded = humanize.RelTime(state.LoadedAt, s.now(), "ago", "from now")
		groups = len(state.Config.Groups)
	}

	queued, err := s.queueRepo.Depth(ctx)
	if err != nil {
		queued = -1
	}
	return s.formatter.FormatDebug(state.Day, groups, loaded, queued)
}

// HandleText runs a k! text command. ok is false when content is not a
// command this user may run; the reply may be empty.
func (s *CommandService) HandleText(ctx context.Context, authorID domain.Snowflake, content string) (reply string, ok bool) {
	name, found := strings.CutPrefix(strings.TrimSpace(content), CommandPrefix)
	if !found {
		return "", false
	}

	switch name {
	case "ping":
		return "Pong!", true
	case "cycle":
		if authorID != s.operatorID {
			return "", false
		}
		return s.Cycle(ctx), true
	case "reset":
		if authorID != s.operatorID {
			return "", false
		}
		return s.Reset(ctx), true
	default:
		return "", false
	}
}

// Cycle forces the weekly cycle
func (s *CommandService) Cycle(ctx context.Context) string {
	if err := s.cycleUC.Weekly(ctx); err != nil {
		s.reporter.LogError(ctx, fmt.Sprintf("Manual cycle failed: %v", err))
		return "Cycle failed"
	}
	return "Week cycled"
}

// Reset forces a config reload. A broken document keeps the previous snapshot.
func (s *CommandService) Reset(ctx context.Context) string {
	state, err := s.stateCache.Reload(ctx)
	if err != nil {
		s.reporter.LogError(ctx, fmt.Sprintf("Manual reset failed: %v", err))
		return "Reset failed"
	}
	return fmt.Sprintf("State reset (%d groups, %s)", len(state.Config.Groups), state.Day)
}
