package discord

import (
	"context"
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/Elgenzay/kava.elg.gg/internal/biz/domain"
)

// Intents the bot needs: reactions for role assignment, message content for
// prefix commands
const Intents = discordgo.IntentGuilds |
	discordgo.IntentGuildMessages |
	discordgo.IntentGuildMessageReactions |
	discordgo.IntentMessageContent

// Message represents a received guild message
type Message struct {
	GuildID   domain.Snowflake
	ChannelID domain.Snowflake
	MessageID domain.Snowflake
	AuthorID  domain.Snowflake
	AuthorBot bool
	Content   string
}

// Command represents a received slash command
type Command struct {
	Name      string
	GuildID   domain.Snowflake
	ChannelID domain.Snowflake
	UserID    domain.Snowflake
}

// CommandDef describes a slash command to register
type CommandDef struct {
	Name        string
	Description string
}

// ReactionHandler is the callback for reaction add (adding=true) and remove events
type ReactionHandler func(ev domain.ReactionEvent, adding bool)

// MessageHandler is the callback for received messages
type MessageHandler func(msg *Message)

// CommandHandler is the callback for slash commands; it returns the reply text
type CommandHandler func(cmd *Command) string

// ReadyHandler is called once the gateway session is ready
type ReadyHandler func(botName string)

// ErrorHandler receives errors raised inside event dispatch
type ErrorHandler func(msg string)

// Client is the Discord gateway + REST client
type Client struct {
	session *discordgo.Session

	mu         sync.RWMutex
	onReaction ReactionHandler
	onMessage  MessageHandler
	onCommand  CommandHandler
	onReady    ReadyHandler
	onError    ErrorHandler
}

// NewClient creates a new Discord client for a bot token
func NewClient(token string) (*Client, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	session.Identify.Intents = Intents

	c := &Client{session: session}
	session.AddHandler(c.handleReady)
	session.AddHandler(c.handleReactionAdd)
	session.AddHandler(c.handleReactionRemove)
	session.AddHandler(c.handleMessageCreate)
	session.AddHandler(c.handleInteraction)
	return c, nil
}

// Session returns the underlying discordgo session for REST calls
func (c *Client) Session() *discordgo.Session {
	return c.session
}

// OnReaction sets the reaction handler
func (c *Client) OnReaction(h ReactionHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onReaction = h
}

// OnMessage sets the message handler
func (c *Client) OnMessage(h MessageHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onMessage = h
}

// OnCommand sets the slash command handler
func (c *Client) OnCommand(h CommandHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onCommand = h
}

// OnReady sets the ready handler
func (c *Client) OnReady(h ReadyHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onReady = h
}

// OnError sets the error handler
func (c *Client) OnError(h ErrorHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onError = h
}

// Start opens the gateway connection. Events are dispatched on their own
// goroutines by discordgo.
func (c *Client) Start() error {
	fmt.Println("[Discord] Opening gateway connection...")
	if err := c.session.Open(); err != nil {
		return fmt.Errorf("open gateway: %w", err)
	}
	return nil
}

// Stop closes the gateway connection
func (c *Client) Stop() error {
	return c.session.Close()
}

// RegisterCommands replaces the bot's global slash commands with defs
func (c *Client) RegisterCommands(ctx context.Context, defs []CommandDef) error {
	if c.session.State == nil || c.session.State.User == nil {
		return fmt.Errorf("register commands: session not ready")
	}
	cmds := make([]*discordgo.ApplicationCommand, 0, len(defs))
	for _, d := range defs {
		cmds = append(cmds, &discordgo.ApplicationCommand{Name: d.Name, Description: d.Description})
	}
	_, err := c.session.ApplicationCommandBulkOverwrite(c.session.State.User.ID, "", cmds, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("register commands: %w", err)
	}
	return nil
}

func (c *Client) handleReady(s *discordgo.Session, r *discordgo.Ready) {
	name := ""
	if r.User != nil {
		name = r.User.Username
	}
	fmt.Printf("[Discord] %s is connected!\n", name)

	c.mu.RLock()
	h := c.onReady
	c.mu.RUnlock()
	if h != nil {
		h(name)
	}
}

func (c *Client) handleReactionAdd(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	c.dispatchReaction(r.MessageReaction, true)
}

func (c *Client) handleReactionRemove(s *discordgo.Session, r *discordgo.MessageReactionRemove) {
	c.dispatchReaction(r.MessageReaction, false)
}

func (c *Client) dispatchReaction(r *discordgo.MessageReaction, adding bool) {
	if r == nil {
		return
	}
	c.mu.RLock()
	h := c.onReaction
	c.mu.RUnlock()
	if h != nil {
		h(ReactionEvent(r), adding)
	}
}

func (c *Client) handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Message == nil {
		return
	}
	msg := ConvertMessage(m.Message)
	if s.State != nil && s.State.User != nil && m.Author != nil && m.Author.ID == s.State.User.ID {
		return
	}

	c.mu.RLock()
	h := c.onMessage
	c.mu.RUnlock()
	if h != nil {
		h(msg)
	}
}

func (c *Client) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	c.mu.RLock()
	h := c.onCommand
	c.mu.RUnlock()
	if h == nil {
		return
	}

	cmd := ConvertCommand(i.Interaction)
	content := h(cmd)

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content},
	})
	if err != nil {
		msg := fmt.Sprintf("Error responding to command /%s: %v", cmd.Name, err)
		fmt.Printf("[Discord] %s\n", msg)

		c.mu.RLock()
		onErr := c.onError
		c.mu.RUnlock()
		if onErr != nil {
			onErr(msg)
		}
	}
}

// ReactionEvent converts a gateway reaction payload
func ReactionEvent(r *discordgo.MessageReaction) domain.ReactionEvent {
	ev := domain.ReactionEvent{
		GuildID:   snowflake(r.GuildID),
		ChannelID: snowflake(r.ChannelID),
		MessageID: snowflake(r.MessageID),
		UserID:    snowflake(r.UserID),
		Emoji:     domain.Emoji{Name: r.Emoji.Name},
	}
	ev.Emoji.ID = snowflake(r.Emoji.ID)
	return ev
}

// ConvertMessage converts a gateway message payload
func ConvertMessage(m *discordgo.Message) *Message {
	msg := &Message{
		GuildID:   snowflake(m.GuildID),
		ChannelID: snowflake(m.ChannelID),
		MessageID: snowflake(m.ID),
		Content:   m.Content,
	}
	if m.Author != nil {
		msg.AuthorID = snowflake(m.Author.ID)
		msg.AuthorBot = m.Author.Bot
	}
	return msg
}

// ConvertCommand converts an application command interaction
func ConvertCommand(i *discordgo.Interaction) *Command {
	cmd := &Command{
		Name:      i.ApplicationCommandData().Name,
		GuildID:   snowflake(i.GuildID),
		ChannelID: snowflake(i.ChannelID),
	}
	switch {
	case i.Member != nil && i.Member.User != nil:
		cmd.UserID = snowflake(i.Member.User.ID)
	case i.User != nil:
		cmd.UserID = snowflake(i.User.ID)
	}
	return cmd
}

// snowflake parses an API ID; malformed IDs map to zero
func snowflake(s string) domain.Snowflake {
	id, err := domain.ParseSnowflake(s)
	if err != nil {
		return 0
	}
	return id
}
