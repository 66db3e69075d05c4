package domain

// Member is a resolved guild member (value object)
type Member struct {
	GuildID Snowflake
	UserID  Snowflake
	Name    string
	Roles   []Snowflake
}
