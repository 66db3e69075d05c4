package repo

import (
	"context"

	"github.com/Elgenzay/kava.elg.gg/internal/biz/domain"
)

// MessageRepo is the channel/message repository interface
// Responsible for talking to the Discord API
type MessageRepo interface {
	// ResolveChannel looks up a text channel and checks it belongs to guildID
	ResolveChannel(ctx context.Context, guildID, channelID domain.Snowflake) (*domain.Channel, error)

	// SendText sends a text message and returns the new message ID
	SendText(ctx context.Context, channelID domain.Snowflake, text string) (domain.Snowflake, error)

	// AddReaction attaches a unicode glyph reaction to a message
	AddReaction(ctx context.Context, channelID, msgID domain.Snowflake, glyph string) error
}
