package repo

import (
	"context"

	"github.com/Elgenzay/kava.elg.gg/internal/biz/domain"
)

// MemberRepo resolves guild members and mutates their roles.
// Adding a role the member already holds is a no-op, not an error.
type MemberRepo interface {
	ResolveMember(ctx context.Context, guildID, userID domain.Snowflake) (*domain.Member, error)
	AddRole(ctx context.Context, guildID, userID, roleID domain.Snowflake) error
	RemoveRole(ctx context.Context, guildID, userID, roleID domain.Snowflake) error
}
