package domain

// QueuedMessage is one pending outbound message in the durable queue
type QueuedMessage struct {
	ID        int64
	GuildID   Snowflake
	ChannelID Snowflake
	Body      string
	Reactions []string // unicode glyphs, attached in order after sending
}
