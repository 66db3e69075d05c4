package server

import (
	"context"
	"fmt"
	"sync"

	"github.com/Elgenzay/kava.elg.gg/internal/biz/domain"
	"github.com/Elgenzay/kava.elg.gg/internal/biz/repo"
	"github.com/Elgenzay/kava.elg.gg/internal/biz/usecase"
	"github.com/Elgenzay/kava.elg.gg/internal/infra/discord"
	"github.com/Elgenzay/kava.elg.gg/internal/service"
)

// Gateway is the platform event source. *discord.Client implements it.
type Gateway interface {
	OnReaction(h discord.ReactionHandler)
	OnMessage(h discord.MessageHandler)
	OnCommand(h discord.CommandHandler)
	OnReady(h discord.ReadyHandler)
	OnError(h discord.ErrorHandler)
	RegisterCommands(ctx context.Context, defs []discord.CommandDef) error
	Start() error
	Stop() error
}

// DiscordServer routes gateway events into the services and starts the
// tick scheduler once the session is ready
type DiscordServer struct {
	gateway     Gateway
	messageRepo repo.MessageRepo
	reactionSvc *service.ReactionService
	commandSvc  *service.CommandService
	scheduler   *service.TickScheduler
	reporter    service.Reporter

	ctx       context.Context
	startOnce sync.Once
}

// NewDiscordServer creates a new Discord server
func NewDiscordServer(
	gateway Gateway,
	messageRepo repo.MessageRepo,
	reactionSvc *service.ReactionService,
	commandSvc *service.CommandService,
	scheduler *service.TickScheduler,
	reporter service.Reporter,
) *DiscordServer {
	return &DiscordServer{
		gateway:     gateway,
		messageRepo: messageRepo,
		reactionSvc: reactionSvc,
		commandSvc:  commandSvc,
		scheduler:   scheduler,
		reporter:    reporter,
		ctx:         context.Background(),
	}
}

// Start registers handlers and opens the gateway
func (s *DiscordServer) Start(ctx context.Context) error {
	s.ctx = ctx

	s.gateway.OnReady(s.handleReady)
	s.gateway.OnReaction(s.handleReaction)
	s.gateway.OnMessage(s.handleMessage)
	s.gateway.OnCommand(s.handleCommand)
	s.gateway.OnError(func(msg string) {
		s.reporter.LogError(s.ctx, msg)
	})
	return s.gateway.Start()
}

// Stop stops the scheduler and closes the gateway
func (s *DiscordServer) Stop() {
	s.scheduler.Stop()
	if err := s.gateway.Stop(); err != nil {
		fmt.Printf("[Server] Error closing gateway: %v\n", err)
	}
}

// handleReady registers slash commands, then starts ticking. Reconnects fire
// Ready again; the scheduler is started only once.
func (s *DiscordServer) handleReady(botName string) {
	defs := make([]discord.CommandDef, 0, len(service.SlashCommands))
	for _, c := range service.SlashCommands {
		defs = append(defs, discord.CommandDef{Name: c.Name, Description: c.Description})
	}
	if err := s.gateway.RegisterCommands(s.ctx, defs); err != nil {
		s.reporter.Fatal(s.ctx, fmt.Sprintf("Error registering commands: %v", err))
		return
	}

	s.startOnce.Do(func() {
		s.scheduler.Start(s.ctx)
	})
}

func (s *DiscordServer) handleReaction(ev domain.ReactionEvent, adding bool) {
	outcome := s.reactionSvc.HandleReaction(s.ctx, ev, adding)
	if outcome == usecase.ReactionApplied {
		fmt.Printf("[Server] Reaction %s on %d by %d (adding=%v)\n", ev.Emoji.Name, ev.MessageID, ev.UserID, adding)
	}
}

func (s *DiscordServer) handleMessage(msg *discord.Message) {
	if msg.AuthorBot {
		return
	}
	reply, ok := s.commandSvc.HandleText(s.ctx, msg.AuthorID, msg.Content)
	if !ok || reply == "" {
		return
	}
	if _, err := s.messageRepo.SendText(s.ctx, msg.ChannelID, reply); err != nil {
		s.reporter.LogError(s.ctx, fmt.Sprintf("Error replying to %s: %v", msg.Content, err))
	}
}

func (s *DiscordServer) handleCommand(cmd *discord.Command) string {
	fmt.Printf("[Server] /%s from %d\n", cmd.Name, cmd.UserID)
	return s.commandSvc.HandleSlash(s.ctx, cmd.Name)
}
