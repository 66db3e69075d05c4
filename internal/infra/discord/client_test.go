package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/Elgenzay/kava.elg.gg/internal/biz/domain"
)

func TestReactionEvent_Unicode(t *testing.T) {
	ev := ReactionEvent(&discordgo.MessageReaction{
		UserID:    "500",
		MessageID: "42",
		ChannelID: "300",
		GuildID:   "100",
		Emoji:     discordgo.Emoji{Name: "✅"},
	})

	want := domain.ReactionEvent{
		GuildID: 100, ChannelID: 300, MessageID: 42, UserID: 500,
		Emoji: domain.Emoji{Name: "✅"},
	}
	if ev != want {
		t.Errorf("Expected %+v, got %+v", want, ev)
	}
	if !ev.Emoji.IsUnicode() {
		t.Error("Expected unicode emoji")
	}
}

func TestReactionEvent_CustomEmoji(t *testing.T) {
	ev := ReactionEvent(&discordgo.MessageReaction{
		MessageID: "42",
		Emoji:     discordgo.Emoji{ID: "998877", Name: "kava", Animated: true},
	})

	if ev.Emoji.IsUnicode() {
		t.Error("Expected custom emoji not to be unicode")
	}
	if ev.UserID != 0 {
		t.Errorf("Expected zero user, got %d", ev.UserID)
	}
}

func TestConvertMessage(t *testing.T) {
	msg := ConvertMessage(&discordgo.Message{
		ID:        "1",
		ChannelID: "2",
		GuildID:   "3",
		Content:   "k!cycle",
		Author:    &discordgo.User{ID: "97802694302896128"},
	})

	if msg.AuthorID != 97802694302896128 {
		t.Errorf("Unexpected author %d", msg.AuthorID)
	}
	if msg.Content != "k!cycle" || msg.ChannelID != 2 || msg.GuildID != 3 {
		t.Errorf("Unexpected message %+v", msg)
	}
}

func TestConvertCommand_MemberOrUser(t *testing.T) {
	guildCmd := ConvertCommand(&discordgo.Interaction{
		Type:      discordgo.InteractionApplicationCommand,
		GuildID:   "100",
		ChannelID: "300",
		Member:    &discordgo.Member{User: &discordgo.User{ID: "500"}},
		Data:      discordgo.ApplicationCommandInteractionData{Name: "ping"},
	})
	if guildCmd.Name != "ping" || guildCmd.UserID != 500 {
		t.Errorf("Unexpected guild command %+v", guildCmd)
	}

	dmCmd := ConvertCommand(&discordgo.Interaction{
		Type: discordgo.InteractionApplicationCommand,
		User: &discordgo.User{ID: "501"},
		Data: discordgo.ApplicationCommandInteractionData{Name: "debug"},
	})
	if dmCmd.Name != "debug" || dmCmd.UserID != 501 {
		t.Errorf("Unexpected DM command %+v", dmCmd)
	}
}
