package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Elgenzay/kava.elg.gg/internal/api"
	"github.com/Elgenzay/kava.elg.gg/internal/biz"
	"github.com/Elgenzay/kava.elg.gg/internal/conf"
	"github.com/Elgenzay/kava.elg.gg/internal/data"
	"github.com/Elgenzay/kava.elg.gg/internal/infra/discord"
	"github.com/Elgenzay/kava.elg.gg/internal/server"
	"github.com/Elgenzay/kava.elg.gg/internal/service"
)

// NewRunCmd creates the run command
func NewRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Connect to Discord and start the tick loop",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := conf.LoadFromEnv()
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runBot(ctx, cfg)
		},
	}
}

func runBot(ctx context.Context, cfg *conf.Config) error {
	db, err := data.OpenDB(ctx, cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return err
	}
	defer db.Close()
	fmt.Printf("[Kava] Database: %s\n", cfg.Database.Driver)

	client, err := discord.NewClient(cfg.Discord.Token)
	if err != nil {
		return err
	}

	repos := data.NewRepositories(db, client.Session(), cfg.Bot.ConfigPath, cfg.Bot.PublicDataPath)

	// Usecase layer
	uc := biz.NewUsecases(repos.Queue, repos.Config, repos.Schedule, repos.Message, repos.Member, biz.Options{
		OffsetHours:    cfg.Bot.OffsetHours,
		GuildID:        cfg.Discord.GuildID,
		ErrorChannelID: cfg.Discord.ErrorChannelID,
		LogChannelID:   cfg.Discord.LogChannelID,
		Templates:      cfg.Templates,
	})
	logger := uc.Logger

	if _, err := uc.State.Get(ctx); err != nil {
		logger.Fatal(ctx, fmt.Sprintf("Error loading bot config: %v", err))
	}

	// Service layer
	scheduler := service.NewTickScheduler(
		repos.Queue, uc.State, uc.Tracker, uc.Cycle, uc.Drain, logger,
		cfg.Bot.TickInterval, cfg.Bot.CycleDay,
	)
	reactionSvc := service.NewReactionService(uc.Reaction, logger)
	commandSvc := service.NewCommandService(uc.State, repos.Queue, uc.Cycle, cfg.Templates, logger, cfg.Discord.OperatorID)

	// Server layer
	srv := server.NewDiscordServer(client, repos.Message, reactionSvc, commandSvc, scheduler, logger)
	apiServer := api.NewServer(uc.State, repos.Queue, uc.Cycle, uc.Tracker, cfg.Discord.GuildID, cfg.API.Port)
	watcher := server.NewConfigWatcher(cfg.Bot.ConfigPath, uc.State, logger)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		fmt.Println("[Kava] Starting Discord session...")
		if err := srv.Start(gctx); err != nil {
			return fmt.Errorf("start discord: %w", err)
		}
		<-gctx.Done()
		fmt.Println("\n[Kava] Shutting down...")
		srv.Stop()
		return nil
	})

	g.Go(func() error {
		if err := apiServer.Start(); err != nil {
			fmt.Printf("[Kava] API server error: %v\n", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		return apiServer.Stop()
	})

	g.Go(func() error {
		if err := watcher.Run(gctx); err != nil {
			fmt.Printf("[Kava] Config watcher disabled: %v\n", err)
		}
		return nil
	})

	return g.Wait()
}
