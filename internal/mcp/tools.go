package mcp

import (
	"context"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer creates the MCP server exposing the admin API as tools
func NewServer(client *Client) *sdk.Server {
	server := sdk.NewServer(&sdk.Implementation{
		Name:    "kava-tools",
		Version: "v1.0.0",
	}, nil)

	h := NewHandler(client)

	sdk.AddTool(server, &sdk.Tool{
		Name:        "kava_get_state",
		Description: "Get the bot's cached state: logical day, when the reaction-role config was loaded, and the reaction-role groups.",
	}, h.GetState)

	sdk.AddTool(server, &sdk.Tool{
		Name:        "kava_reset_state",
		Description: "Reload BotConfig.json and recompute the logical day. A broken document is rejected and the running config kept.",
	}, h.ResetState)

	sdk.AddTool(server, &sdk.Tool{
		Name:        "kava_cycle_daily",
		Description: "Queue the daily notification for the current logical day.",
	}, h.CycleDaily)

	sdk.AddTool(server, &sdk.Tool{
		Name:        "kava_cycle_weekly",
		Description: "Rotate the staff schedule: next week becomes this week and an empty next week is opened.",
	}, h.CycleWeekly)

	sdk.AddTool(server, &sdk.Tool{
		Name:        "kava_enqueue_message",
		Description: "Queue a message for a Discord channel. The bot sends one queued message per tick, oldest first.",
	}, h.EnqueueMessage)

	sdk.AddTool(server, &sdk.Tool{
		Name:        "kava_queue_depth",
		Description: "Count messages waiting in the outbound queue.",
	}, h.QueueDepth)

	return server
}

// Run serves the tools over stdio until ctx is cancelled or stdin closes
func Run(ctx context.Context, client *Client) error {
	return NewServer(client).Run(ctx, &sdk.StdioTransport{})
}
