package biz

import (
	"context"
	"testing"
	"time"

	"github.com/Elgenzay/kava.elg.gg/internal/biz/domain"
)

type nopQueue struct{}

func (nopQueue) Ping(ctx context.Context) error                                      { return nil }
func (nopQueue) Oldest(ctx context.Context) (*domain.QueuedMessage, error)           { return nil, nil }
func (nopQueue) Delete(ctx context.Context, id int64) error                          { return nil }
func (nopQueue) Enqueue(ctx context.Context, m *domain.QueuedMessage) (int64, error) { return 1, nil }
func (nopQueue) Depth(ctx context.Context) (int64, error)                            { return 0, nil }
func (nopQueue) Close() error                                                        { return nil }

type nopTemplates struct{}

func (nopTemplates) FormatDaily(day time.Weekday) string { return "" }
func (nopTemplates) FormatWeekly(locations int) string   { return "" }

func TestNewUsecases_WithoutDiscord(t *testing.T) {
	uc := NewUsecases(nopQueue{}, nil, nil, nil, nil, Options{OffsetHours: -3, Templates: nopTemplates{}})

	if uc.State == nil || uc.Cycle == nil || uc.Logger == nil || uc.Tracker == nil {
		t.Errorf("Expected core usecases, got %+v", uc)
	}
	if uc.Drain != nil || uc.Reaction != nil {
		t.Error("Expected Discord-backed usecases to be nil without repositories")
	}
}
