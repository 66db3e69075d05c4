package domain

// Emoji is a reaction emoji. Unicode glyphs have no ID; custom and animated
// emoji carry a platform ID.
type Emoji struct {
	ID   Snowflake
	Name string
}

// IsUnicode reports whether this is a plain unicode glyph
func (e Emoji) IsUnicode() bool {
	return e.ID.IsZero() && e.Name != ""
}

// ReactionEvent is a reaction added to or removed from a message
type ReactionEvent struct {
	GuildID   Snowflake
	ChannelID Snowflake
	MessageID Snowflake
	UserID    Snowflake
	Emoji     Emoji
}

// Channel is a resolved guild text channel
type Channel struct {
	GuildID Snowflake
	ID      Snowflake
	Name    string
}
