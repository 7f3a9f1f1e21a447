package store

import (
	"context"
	"fmt"

	"worktime/models"
	"worktime/schedule"
)

// Settings returns the user's schedule, creating it with the defaults on first
// access.
func (s *Store) Settings(ctx context.Context, userID uint) (models.Settings, error) {
	db := s.db.WithContext(ctx)

	var settings models.Settings
	err := db.Where(models.Settings{UserID: userID}).
		Attrs(models.DefaultSettings(userID)).
		FirstOrCreate(&settings).Error
	if err != nil {
		// A concurrent first access may have inserted the row first.
		if retry := db.Where("user_id = ?", userID).First(&settings).Error; retry != nil {
			return models.Settings{}, fmt.Errorf("get or create settings: %w", err)
		}
	}
	return settings, nil
}

// SettingsUpdate changes only the fields that are set. WorkDayNames, when
// non-nil, replaces WorkDays with a mask built from the named days.
type SettingsUpdate struct {
	Timezone     *string  `json:"timezone"`
	WeekStart    *int     `json:"week_start"`
	HoursPerDay  *float64 `json:"hours_per_day"`
	WorkDays     *string  `json:"work_days"`
	WorkDayNames []string `json:"work_day_names"`
}

func (u SettingsUpdate) apply(s *models.Settings) error {
	if u.Timezone != nil {
		s.Timezone = *u.Timezone
	}
	if u.WeekStart != nil {
		s.WeekStart = *u.WeekStart
	}
	if u.HoursPerDay != nil {
		if *u.HoursPerDay < 0 || *u.HoursPerDay > 24 {
			return fmt.Errorf("%w: hours per day must be between 0 and 24", ErrInvalidSettings)
		}
		s.HoursPerDay = *u.HoursPerDay
	}
	if u.WorkDays != nil {
		s.WorkDays = *u.WorkDays
	}
	if u.WorkDayNames != nil {
		s.WorkDays = models.WorkDayMask(u.WorkDayNames)
	}
	if len(s.WorkDays) != 7 {
		return fmt.Errorf("%w: work days must have exactly 7 characters", ErrInvalidSettings)
	}
	if _, err := schedule.New(*s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	return nil
}

func (s *Store) UpdateSettings(ctx context.Context, userID uint, u SettingsUpdate) (models.Settings, error) {
	settings, err := s.Settings(ctx, userID)
	if err != nil {
		return models.Settings{}, err
	}
	if err := u.apply(&settings); err != nil {
		return models.Settings{}, err
	}
	if err := s.db.WithContext(ctx).Save(&settings).Error; err != nil {
		return models.Settings{}, fmt.Errorf("save settings: %w", err)
	}
	return settings, nil
}
