package repo

import (
	"context"

	"github.com/Elgenzay/kava.elg.gg/internal/biz/domain"
)

// ConfigRepo loads the reaction-role configuration document.
// Errors wrap domain.ErrInvalidConfig.
type ConfigRepo interface {
	Load(ctx context.Context) (*domain.BotConfig, error)

	// Path returns the document location, for watchers
	Path() string
}
