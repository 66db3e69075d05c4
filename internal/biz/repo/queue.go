package repo

import (
	"context"

	"github.com/Elgenzay/kava.elg.gg/internal/biz/domain"
)

// QueueRepo is the durable outbound message queue (log_queue table)
type QueueRepo interface {
	// Ping checks the backing database is reachable
	Ping(ctx context.Context) error

	// Oldest returns the pending row with the lowest id, or nil if the queue is empty
	Oldest(ctx context.Context) (*domain.QueuedMessage, error)

	// Delete removes a row by id
	Delete(ctx context.Context, id int64) error

	// Enqueue appends a row and returns its id
	Enqueue(ctx context.Context, msg *domain.QueuedMessage) (int64, error)

	// Depth counts pending rows
	Depth(ctx context.Context) (int64, error)

	Close() error
}
