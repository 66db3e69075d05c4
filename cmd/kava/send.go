package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Elgenzay/kava.elg.gg/internal/biz/domain"
	"github.com/Elgenzay/kava.elg.gg/internal/conf"
	"github.com/Elgenzay/kava.elg.gg/internal/data"
)

// NewSendCmd creates the send command
func NewSendCmd() *cobra.Command {
	var guild, channel snowflakeFlag

	cmd := &cobra.Command{
		Use:   "send <message...>",
		Short: "Queue a message for a channel",
		Long:  "Queue a message; the running bot sends it on a later tick, oldest first.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := conf.LoadFromEnv()
			if err := cfg.ValidateDatabase(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}

			if channel.id.IsZero() {
				return fmt.Errorf("--channel is required")
			}
			guildID := guild.id
			if guildID.IsZero() {
				guildID = cfg.Discord.GuildID
			}
			if guildID.IsZero() {
				return fmt.Errorf("--guild is required when DISCORD_GUILD_ID is unset")
			}
			reactions, _ := cmd.Flags().GetStringSlice("react")

			db, err := data.OpenDB(cmd.Context(), cfg.Database.Driver, cfg.Database.DSN)
			if err != nil {
				return err
			}
			defer db.Close()

			id, err := data.NewQueueRepo(db).Enqueue(cmd.Context(), &domain.QueuedMessage{
				GuildID:   guildID,
				ChannelID: channel.id,
				Body:      strings.Join(args, " "),
				Reactions: reactions,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Queued message %d\n", id)
			return nil
		},
	}

	cmd.Flags().Var(&guild, "guild", "guild ID (defaults to DISCORD_GUILD_ID)")
	cmd.Flags().Var(&channel, "channel", "channel ID")
	cmd.Flags().StringSlice("react", nil, "unicode emoji to react with, in order")
	return cmd
}
