package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Elgenzay/kava.elg.gg/internal/biz/usecase"
	"github.com/Elgenzay/kava.elg.gg/internal/conf"
	"github.com/Elgenzay/kava.elg.gg/internal/data"
)

// NewWeeklyCmd creates the weekly command
func NewWeeklyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "weekly",
		Short: "Rotate the staff schedule without notifying Discord",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := conf.LoadFromEnv()
			if err := cfg.ValidateDatabase(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}

			db, err := data.OpenDB(cmd.Context(), cfg.Database.Driver, cfg.Database.DSN)
			if err != nil {
				return err
			}
			defer db.Close()

			repos := data.NewRepositories(db, nil, cfg.Bot.ConfigPath, cfg.Bot.PublicDataPath)
			n, err := usecase.NewScheduleUsecase(repos.Schedule).RotateWeek(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Week cycled successfully (%d locations)\n", n)
			return nil
		},
	}
}
