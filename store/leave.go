package store

import (
	"context"
	"fmt"

	"worktime/models"
)

// LeaveInput describes a leave record. Start must already be the local
// midnight of the day taken.
type LeaveInput struct {
	Type          models.LeaveType
	Start         int64
	Hours         float64
	Note          string
	PublicHoliday bool
}

func (in LeaveInput) validate() error {
	if !in.Type.Valid() {
		return fmt.Errorf("%w: unknown leave type %q", ErrInvalidLeave, in.Type)
	}
	if in.Hours <= 0 || in.Hours > 24 {
		return fmt.Errorf("%w: hours must be between 0 and 24", ErrInvalidLeave)
	}
	return nil
}

func (s *Store) GetLeave(ctx context.Context, userID, id uint) (*models.Leave, error) {
	var leave models.Leave
	if err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&leave).Error; err != nil {
		return nil, notFound(err)
	}
	return &leave, nil
}

func (s *Store) CreateLeave(ctx context.Context, userID uint, in LeaveInput) (*models.Leave, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	leave := models.Leave{
		UserID:        userID,
		LeaveType:     in.Type,
		Start:         in.Start,
		Hours:         in.Hours,
		Note:          in.Note,
		PublicHoliday: in.PublicHoliday,
	}
	if err := s.db.WithContext(ctx).Create(&leave).Error; err != nil {
		return nil, fmt.Errorf("create leave: %w", err)
	}
	return &leave, nil
}

func (s *Store) UpdateLeave(ctx context.Context, userID, id uint, in LeaveInput) (*models.Leave, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	leave, err := s.GetLeave(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	leave.LeaveType = in.Type
	leave.Start = in.Start
	leave.Hours = in.Hours
	leave.Note = in.Note
	leave.PublicHoliday = in.PublicHoliday

	if err := s.db.WithContext(ctx).Save(leave).Error; err != nil {
		return nil, fmt.Errorf("update leave: %w", err)
	}
	return leave, nil
}

func (s *Store) DeleteLeave(ctx context.Context, userID, id uint) error {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Leave{})
	if res.Error != nil {
		return fmt.Errorf("delete leave: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
