package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Elgenzay/kava.elg.gg/internal/conf"
	"github.com/Elgenzay/kava.elg.gg/internal/mcp"
)

// NewMCPCmd creates the mcp command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the admin API as MCP tools over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			apiURL, _ := cmd.Flags().GetString("api-url")
			if apiURL == "" {
				apiURL = conf.APIURLFromEnv()
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			// stdout carries the protocol
			fmt.Fprintf(os.Stderr, "[MCP] Using admin API at %s\n", apiURL)
			return mcp.Run(ctx, mcp.NewClient(apiURL))
		},
	}
	cmd.Flags().String("api-url", "", "admin API base URL (defaults to KAVA_API_URL or 127.0.0.1:ADMIN_API_PORT)")
	return cmd
}
