package repo

import (
	"context"

	"github.com/Elgenzay/kava.elg.gg/internal/biz/domain"
)

// ScheduleRepo is the two-week staff schedule table plus the public data
// document that lists its shifts and locations
type ScheduleRepo interface {
	PublicData(ctx context.Context) (*domain.PublicData, error)

	// ListRows returns all rows ordered by id
	ListRows(ctx context.Context) ([]domain.ScheduleRow, error)

	// ReplaceRows atomically swaps the table contents for rows
	ReplaceRows(ctx context.Context, rows []domain.ScheduleRow) error
}
