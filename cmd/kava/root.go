package main

import (
	"os"

	"github.com/spf13/cobra"
)

const appName = "kava"

// Version is overwritten at build time using -ldflags.
var Version = "dev"

// NewRootCmd creates the kava command tree
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Kava bar Discord bot",
		Long:          "Discord bot for reaction roles, queued channel messages and the weekly staff schedule.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.Version = Version
	cmd.SetVersionTemplate(appName + " version {{.Version}}\n")
	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.AddCommand(
		NewRunCmd(),
		NewWeeklyCmd(),
		NewSendCmd(),
		NewMCPCmd(),
	)
	return cmd
}
