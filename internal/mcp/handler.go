package mcp

import (
	"context"

	"github.com/Elgenzay/kava.elg.gg/internal/biz/domain"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Handler implements the MCP tools on top of the admin API client.
// Tool failures are reported in the output, not as protocol errors.
type Handler struct {
	client *Client
}

// NewHandler creates a new tool handler
func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

// EmptyInput is the input for tools without arguments
type EmptyInput struct{}

// StateOutput is the output for the state tools
type StateOutput struct {
	State *State `json:"state,omitempty"`
	Error string `json:"error,omitempty"`
}

// GetState implements kava_get_state
func (h *Handler) GetState(ctx context.Context, req *sdk.CallToolRequest, input EmptyInput) (*sdk.CallToolResult, StateOutput, error) {
	state, err := h.client.GetState()
	if err != nil {
		return nil, StateOutput{Error: err.Error()}, nil
	}
	return nil, StateOutput{State: state}, nil
}

// ResetState implements kava_reset_state
func (h *Handler) ResetState(ctx context.Context, req *sdk.CallToolRequest, input EmptyInput) (*sdk.CallToolResult, StateOutput, error) {
	state, err := h.client.ResetState()
	if err != nil {
		return nil, StateOutput{Error: err.Error()}, nil
	}
	return nil, StateOutput{State: state}, nil
}

// CycleOutput is the output for the cycle tools
type CycleOutput struct {
	Success bool   `json:"success"`
	Day     string `json:"day,omitempty"`
	Error   string `json:"error,omitempty"`
}

// CycleDaily implements kava_cycle_daily
func (h *Handler) CycleDaily(ctx context.Context, req *sdk.CallToolRequest, input EmptyInput) (*sdk.CallToolResult, CycleOutput, error) {
	day, err := h.client.CycleDaily()
	if err != nil {
		return nil, CycleOutput{Error: err.Error()}, nil
	}
	return nil, CycleOutput{Success: true, Day: day}, nil
}

// CycleWeekly implements kava_cycle_weekly
func (h *Handler) CycleWeekly(ctx context.Context, req *sdk.CallToolRequest, input EmptyInput) (*sdk.CallToolResult, CycleOutput, error) {
	if err := h.client.CycleWeekly(); err != nil {
		return nil, CycleOutput{Error: err.Error()}, nil
	}
	return nil, CycleOutput{Success: true}, nil
}

// EnqueueInput is the input for kava_enqueue_message
type EnqueueInput struct {
	ChannelID string   `json:"channel_id" jsonschema:"the Discord channel ID to send to"`
	GuildID   string   `json:"guild_id,omitempty" jsonschema:"the guild ID; defaults to the bot's guild"`
	Message   string   `json:"message" jsonschema:"the message text"`
	Reactions []string `json:"reactions,omitempty" jsonschema:"unicode emoji to react with after sending, in order"`
}

// EnqueueOutput is the output for kava_enqueue_message
type EnqueueOutput struct {
	Success bool   `json:"success"`
	ID      int64  `json:"id,omitempty"`
	Error   string `json:"error,omitempty"`
}

// EnqueueMessage implements kava_enqueue_message
func (h *Handler) EnqueueMessage(ctx context.Context, req *sdk.CallToolRequest, input EnqueueInput) (*sdk.CallToolResult, EnqueueOutput, error) {
	channelID, err := domain.ParseSnowflake(input.ChannelID)
	if err != nil || channelID.IsZero() {
		return nil, EnqueueOutput{Error: "channel_id must be a numeric ID"}, nil
	}
	guildID, err := domain.ParseSnowflake(input.GuildID)
	if err != nil {
		return nil, EnqueueOutput{Error: "guild_id must be a numeric ID"}, nil
	}
	if input.Message == "" {
		return nil, EnqueueOutput{Error: "message is required"}, nil
	}

	id, err := h.client.Enqueue(uint64(guildID), uint64(channelID), input.Message, input.Reactions)
	if err != nil {
		return nil, EnqueueOutput{Error: err.Error()}, nil
	}
	return nil, EnqueueOutput{Success: true, ID: id}, nil
}

// QueueDepthOutput is the output for kava_queue_depth
type QueueDepthOutput struct {
	Depth int64  `json:"depth"`
	Error string `json:"error,omitempty"`
}

// QueueDepth implements kava_queue_depth
func (h *Handler) QueueDepth(ctx context.Context, req *sdk.CallToolRequest, input EmptyInput) (*sdk.CallToolResult, QueueDepthOutput, error) {
	depth, err := h.client.QueueDepth()
	if err != nil {
		return nil, QueueDepthOutput{Error: err.Error()}, nil
	}
	return nil, QueueDepthOutput{Depth: depth}, nil
}
