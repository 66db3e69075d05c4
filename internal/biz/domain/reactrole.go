package domain

import "fmt"

// ReactionRole maps one unicode glyph to one role
type ReactionRole struct {
	Emoji  string    `json:"emoji"`
	RoleID Snowflake `json:"role_id"`
}

// ReactionRoleGroup is the set of role mappings attached to a trigger message
type ReactionRoleGroup struct {
	MessageID         Snowflake      `json:"message_id"`
	MutuallyExclusive bool           `json:"mutually_exclusive"`
	Roles             []ReactionRole `json:"roles"`

	byEmoji map[string]int
}

// index builds the emoji lookup and checks per-group uniqueness
func (g *ReactionRoleGroup) index() error {
	g.byEmoji = make(map[string]int, len(g.Roles))
	seenRoles := make(map[Snowflake]bool, len(g.Roles))
	for i, r := range g.Roles {
		if r.Emoji == "" {
			return fmt.Errorf("%w: group %d: role %d has empty emoji", ErrInvalidConfig, g.MessageID, r.RoleID)
		}
		if _, dup := g.byEmoji[r.Emoji]; dup {
			return fmt.Errorf("%w: group %d: duplicate emoji %q", ErrInvalidConfig, g.MessageID, r.Emoji)
		}
		if seenRoles[r.RoleID] {
			return fmt.Errorf("%w: group %d: duplicate role %d", ErrInvalidConfig, g.MessageID, r.RoleID)
		}
		g.byEmoji[r.Emoji] = i
		seenRoles[r.RoleID] = true
	}
	return nil
}

// Partition splits the group's roles into the role bound to glyph and the
// remaining roles in configuration order. ok is false when no role uses glyph.
func (g *ReactionRoleGroup) Partition(glyph string) (target ReactionRole, others []ReactionRole, ok bool) {
	idx, ok := g.lookup(glyph)
	if !ok {
		return ReactionRole{}, nil, false
	}
	others = make([]ReactionRole, 0, len(g.Roles)-1)
	for i, r := range g.Roles {
		if i != idx {
			others = append(others, r)
		}
	}
	return g.Roles[idx], others, true
}

func (g *ReactionRoleGroup) lookup(glyph string) (int, bool) {
	if g.byEmoji != nil {
		idx, ok := g.byEmoji[glyph]
		return idx, ok
	}
	// groups built outside NewBotConfig are not indexed
	for i, r := range g.Roles {
		if r.Emoji == glyph {
			return i, true
		}
	}
	return -1, false
}

// ConfigDocument is the on-disk shape of the configuration document
type ConfigDocument struct {
	ReactRoleGroups []ReactionRoleGroup `json:"react_role_groups"`
}

// BotConfig is the loaded configuration, keyed by trigger message
type BotConfig struct {
	Groups map[Snowflake]*ReactionRoleGroup
}

// NewBotConfig validates doc and indexes it by trigger message ID
func NewBotConfig(doc ConfigDocument) (*BotConfig, error) {
	cfg := &BotConfig{Groups: make(map[Snowflake]*ReactionRoleGroup, len(doc.ReactRoleGroups))}
	for i := range doc.ReactRoleGroups {
		g := doc.ReactRoleGroups[i]
		if g.MessageID.IsZero() {
			return nil, fmt.Errorf("%w: group %d has no message_id", ErrInvalidConfig, i)
		}
		if _, dup := cfg.Groups[g.MessageID]; dup {
			return nil, fmt.Errorf("%w: duplicate message_id %d", ErrInvalidConfig, g.MessageID)
		}
		if err := g.index(); err != nil {
			return nil, err
		}
		cfg.Groups[g.MessageID] = &g
	}
	return cfg, nil
}

// Group returns the group triggered by msgID, if any
func (c *BotConfig) Group(msgID Snowflake) (*ReactionRoleGroup, bool) {
	if c == nil {
		return nil, false
	}
	g, ok := c.Groups[msgID]
	return g, ok
}
