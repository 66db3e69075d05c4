package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Elgenzay/kava.elg.gg/internal/biz/domain"
	"github.com/Elgenzay/kava.elg.gg/internal/biz/repo"
)

// ScheduleUsecase rotates the two-week staff schedule
type ScheduleUsecase struct {
	scheduleRepo repo.ScheduleRepo
}

// NewScheduleUsecase creates a new schedule usecase
func NewScheduleUsecase(scheduleRepo repo.ScheduleRepo) *ScheduleUsecase {
	return &ScheduleUsecase{scheduleRepo: scheduleRepo}
}

// RotateWeek promotes next week to this week and opens an empty next week.
// Returns the number of rows written.
func (uc *ScheduleUsecase) RotateWeek(ctx context.Context) (int, error) {
	pub, err := uc.scheduleRepo.PublicData(ctx)
	if err != nil {
		return 0, fmt.Errorf("load public data: %w", err)
	}

	rows, err := uc.scheduleRepo.ListRows(ctx)
	if err != nil {
		return 0, fmt.Errorf("list schedule: %w", err)
	}

	emptyDay, err := EmptyDayCell(pub.Shifts)
	if err != nil {
		return 0, err
	}

	next := domain.RotateSchedule(rows, pub.Locations, emptyDay)
	if err := uc.scheduleRepo.ReplaceRows(ctx, next); err != nil {
		return 0, fmt.Errorf("write schedule: %w", err)
	}
	return len(next), nil
}

// EmptyDayCell encodes a day cell listing every shift with no bartender
func EmptyDayCell(shifts []domain.PublicShift) (string, error) {
	cell := make([]domain.ScheduleShift, 0, len(shifts))
	for _, s := range shifts {
		cell = append(cell, domain.ScheduleShift{Name: s.Name})
	}
	b, err := json.Marshal(cell)
	if err != nil {
		return "", fmt.Errorf("encode day cell: %w", err)
	}
	return string(b), nil
}
