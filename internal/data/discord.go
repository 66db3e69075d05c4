package data

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/Elgenzay/kava.elg.gg/internal/biz/domain"
	"github.com/Elgenzay/kava.elg.gg/internal/biz/repo"
)

// discordRepo implements the message and member repositories over the
// Discord REST API
type discordRepo struct {
	session *discordgo.Session
}

// newDiscordRepo creates a new Discord repository
func newDiscordRepo(session *discordgo.Session) *discordRepo {
	return &discordRepo{session: session}
}

var (
	_ repo.MessageRepo = (*discordRepo)(nil)
	_ repo.MemberRepo  = (*discordRepo)(nil)
)

// ResolveChannel fetches a channel and checks it belongs to guildID
func (r *discordRepo) ResolveChannel(ctx context.Context, guildID, channelID domain.Snowflake) (*domain.Channel, error) {
	ch, err := r.session.Channel(channelID.String(), discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	if ch.GuildID != guildID.String() {
		return nil, fmt.Errorf("channel %d is not in guild %d", channelID, guildID)
	}
	return &domain.Channel{GuildID: guildID, ID: channelID, Name: ch.Name}, nil
}

// SendText sends a plain text message
func (r *discordRepo) SendText(ctx context.Context, channelID domain.Snowflake, text string) (domain.Snowflake, error) {
	msg, err := r.session.ChannelMessageSend(channelID.String(), text, discordgo.WithContext(ctx))
	if err != nil {
		return 0, err
	}
	return domain.ParseSnowflake(msg.ID)
}

// AddReaction reacts to a message with a unicode glyph
func (r *discordRepo) AddReaction(ctx context.Context, channelID, msgID domain.Snowflake, glyph string) error {
	return r.session.MessageReactionAdd(channelID.String(), msgID.String(), glyph, discordgo.WithContext(ctx))
}

// ResolveMember fetches a guild member
func (r *discordRepo) ResolveMember(ctx context.Context, guildID, userID domain.Snowflake) (*domain.Member, error) {
	m, err := r.session.GuildMember(guildID.String(), userID.String(), discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	return convertMember(guildID, userID, m), nil
}

// AddRole grants a role
func (r *discordRepo) AddRole(ctx context.Context, guildID, userID, roleID domain.Snowflake) error {
	return r.session.GuildMemberRoleAdd(guildID.String(), userID.String(), roleID.String(), discordgo.WithContext(ctx))
}

// RemoveRole revokes a role
func (r *discordRepo) RemoveRole(ctx context.Context, guildID, userID, roleID domain.Snowflake) error {
	return r.session.GuildMemberRoleRemove(guildID.String(), userID.String(), roleID.String(), discordgo.WithContext(ctx))
}

func convertMember(guildID, userID domain.Snowflake, m *discordgo.Member) *domain.Member {
	member := &domain.Member{GuildID: guildID, UserID: userID, Name: m.Nick}
	if m.User != nil && member.Name == "" {
		member.Name = m.User.Username
	}
	for _, id := range m.Roles {
		if role, err := domain.ParseSnowflake(id); err == nil && !role.IsZero() {
			member.Roles = append(member.Roles, role)
		}
	}
	return member
}
