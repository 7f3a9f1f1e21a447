package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"worktime/models"
)

// Status is what the user is doing right now.
type Status struct {
	Entry *models.TimeEntry `json:"entry"`
	Break *models.Break     `json:"break"`
}

func (s Status) ClockedIn() bool { return s.Entry != nil }
func (s Status) OnBreak() bool   { return s.Break != nil }

func openEntry(tx *gorm.DB, userID uint) (*models.TimeEntry, error) {
	var entry models.TimeEntry
	err := tx.Where("user_id = ? AND end_time IS NULL", userID).
		Order("start_time desc").First(&entry).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &entry, nil
}

func openBreak(tx *gorm.DB, entryID uint) (*models.Break, error) {
	var b models.Break
	err := tx.Where("time_entry_id = ? AND end_time IS NULL", entryID).
		Order("start_time desc").First(&b).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

func (s *Store) Status(ctx context.Context, userID uint) (Status, error) {
	var st Status
	db := s.db.WithContext(ctx)

	entry, err := openEntry(db, userID)
	if errors.Is(err, ErrNotFound) {
		return st, nil
	}
	if err != nil {
		return st, fmt.Errorf("get open entry: %w", err)
	}
	st.Entry = entry

	b, err := openBreak(db, entry.ID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return st, fmt.Errorf("get open break: %w", err)
	}
	st.Break = b
	return st, nil
}

// ClockIn opens a new session starting at at.
func (s *Store) ClockIn(ctx context.Context, userID uint, at int64, note string) (*models.TimeEntry, error) {
	entry := models.TimeEntry{UserID: userID, Start: at, Note: note}
	err := s.withUserLock(ctx, userID, func(tx *gorm.DB) error {
		if _, err := openEntry(tx, userID); err == nil {
			return ErrAlreadyClockedIn
		} else if !errors.Is(err, ErrNotFound) {
			return fmt.Errorf("get open entry: %w", err)
		}
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("create time entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// ClockOut ends the open session at at, ending any open break with it. A time
// before the session or its open break started is ErrInvalidInterval.
func (s *Store) ClockOut(ctx context.Context, userID uint, at int64) (*models.TimeEntry, error) {
	var entry *models.TimeEntry
	err := s.withUserLock(ctx, userID, func(tx *gorm.DB) error {
		var err error
		entry, err = openEntry(tx, userID)
		if errors.Is(err, ErrNotFound) {
			return ErrNotClockedIn
		}
		if err != nil {
			return fmt.Errorf("get open entry: %w", err)
		}
		if at < entry.Start {
			return ErrInvalidInterval
		}

		if b, err := openBreak(tx, entry.ID); err == nil {
			if at < b.Start {
				return ErrInvalidInterval
			}
			if err := tx.Model(b).Update("end_time", at).Error; err != nil {
				return fmt.Errorf("end break: %w", err)
			}
		} else if !errors.Is(err, ErrNotFound) {
			return fmt.Errorf("get open break: %w", err)
		}

		entry.End = &at
		if err := tx.Model(entry).Update("end_time", at).Error; err != nil {
			return fmt.Errorf("end time entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// StartBreak opens a break on the current session.
func (s *Store) StartBreak(ctx context.Context, userID uint, at int64) (*models.Break, error) {
	var b models.Break
	err := s.withUserLock(ctx, userID, func(tx *gorm.DB) error {
		entry, err := openEntry(tx, userID)
		if errors.Is(err, ErrNotFound) {
			return ErrNotClockedIn
		}
		if err != nil {
			return fmt.Errorf("get open entry: %w", err)
		}
		if _, err := openBreak(tx, entry.ID); err == nil {
			return ErrAlreadyOnBreak
		} else if !errors.Is(err, ErrNotFound) {
			return fmt.Errorf("get open break: %w", err)
		}

		b = models.Break{TimeEntryID: entry.ID, UserID: userID, Start: at}
		if err := tx.Create(&b).Error; err != nil {
			return fmt.Errorf("create break: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// EndBreak ends the open break on the current session.
func (s *Store) EndBreak(ctx context.Context, userID uint, at int64) (*models.Break, error) {
	var b *models.Break
	err := s.withUserLock(ctx, userID, func(tx *gorm.DB) error {
		entry, err := openEntry(tx, userID)
		if errors.Is(err, ErrNotFound) {
			return ErrNotClockedIn
		}
		if err != nil {
			return fmt.Errorf("get open entry: %w", err)
		}
		b, err = openBreak(tx, entry.ID)
		if errors.Is(err, ErrNotFound) {
			return ErrNotOnBreak
		}
		if err != nil {
			return fmt.Errorf("get open break: %w", err)
		}
		if at < b.Start {
			return ErrInvalidInterval
		}

		b.End = &at
		if err := tx.Model(b).Update("end_time", at).Error; err != nil {
			return fmt.Errorf("end break: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Store) GetTimeEntry(ctx context.Context, userID, id uint) (*models.TimeEntry, error) {
	var entry models.TimeEntry
	err := s.db.WithContext(ctx).Preload("Breaks", func(db *gorm.DB) *gorm.DB {
		return db.Order("start_time asc, id asc")
	}).Where("id = ? AND user_id = ?", id, userID).First(&entry).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &entry, nil
}

// CreateTimeEntry records a session by hand. A session without an end counts
// as clocking in.
func (s *Store) CreateTimeEntry(ctx context.Context, userID uint, start int64, end *int64, note string) (*models.TimeEntry, error) {
	if err := validInterval(start, end); err != nil {
		return nil, err
	}

	entry := models.TimeEntry{UserID: userID, Start: start, End: end, Note: note}
	err := s.withUserLock(ctx, userID, func(tx *gorm.DB) error {
		if end == nil {
			if _, err := openEntry(tx, userID); err == nil {
				return ErrAlreadyClockedIn
			} else if !errors.Is(err, ErrNotFound) {
				return fmt.Errorf("get open entry: %w", err)
			}
		}
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("create time entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *Store) UpdateTimeEntry(ctx context.Context, userID, id uint, start int64, end *int64, note string) (*models.TimeEntry, error) {
	if err := validInterval(start, end); err != nil {
		return nil, err
	}

	err := s.withUserLock(ctx, userID, func(tx *gorm.DB) error {
		var entry models.TimeEntry
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&entry).Error; err != nil {
			return notFound(err)
		}
		if end == nil {
			if open, err := openEntry(tx, userID); err == nil && open.ID != entry.ID {
				return ErrAlreadyClockedIn
			} else if err != nil && !errors.Is(err, ErrNotFound) {
				return fmt.Errorf("get open entry: %w", err)
			}
		}
		err := tx.Model(&entry).Select("start_time", "end_time", "note").Updates(models.TimeEntry{
			Start: start,
			End:   end,
			Note:  note,
		}).Error
		if err != nil {
			return fmt.Errorf("update time entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetTimeEntry(ctx, userID, id)
}

// DeleteTimeEntry removes a session together with its breaks.
func (s *Store) DeleteTimeEntry(ctx context.Context, userID, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var entry models.TimeEntry
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&entry).Error; err != nil {
			return notFound(err)
		}
		if err := tx.Where("time_entry_id = ?", entry.ID).Delete(&models.Break{}).Error; err != nil {
			return fmt.Errorf("delete breaks: %w", err)
		}
		if err := tx.Delete(&entry).Error; err != nil {
			return fmt.Errorf("delete time entry: %w", err)
		}
		return nil
	})
}

// AddBreak records a break on one of the user's sessions. The break is not
// checked against the session's bounds.
func (s *Store) AddBreak(ctx context.Context, userID, entryID uint, start int64, end *int64, note string) (*models.Break, error) {
	if err := validInterval(start, end); err != nil {
		return nil, err
	}

	b := models.Break{TimeEntryID: entryID, UserID: userID, Start: start, End: end, Note: note}
	err := s.withUserLock(ctx, userID, func(tx *gorm.DB) error {
		var entry models.TimeEntry
		if err := tx.Where("id = ? AND user_id = ?", entryID, userID).First(&entry).Error; err != nil {
			return notFound(err)
		}
		if end == nil {
			if _, err := openBreak(tx, entry.ID); err == nil {
				return ErrAlreadyOnBreak
			} else if !errors.Is(err, ErrNotFound) {
				return fmt.Errorf("get open break: %w", err)
			}
		}
		if err := tx.Create(&b).Error; err != nil {
			return fmt.Errorf("create break: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *Store) UpdateBreak(ctx context.Context, userID, id uint, start int64, end *int64, note string) (*models.Break, error) {
	if err := validInterval(start, end); err != nil {
		return nil, err
	}

	var b models.Break
	err := s.withUserLock(ctx, userID, func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&b).Error; err != nil {
			return notFound(err)
		}
		if end == nil {
			if open, err := openBreak(tx, b.TimeEntryID); err == nil && open.ID != b.ID {
				return ErrAlreadyOnBreak
			} else if err != nil && !errors.Is(err, ErrNotFound) {
				return fmt.Errorf("get open break: %w", err)
			}
		}
		b.Start, b.End, b.Note = start, end, note
		if err := tx.Model(&b).Select("start_time", "end_time", "note").Updates(&b).Error; err != nil {
			return fmt.Errorf("update break: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *Store) DeleteBreak(ctx context.Context, userID, id uint) error {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Break{})
	if res.Error != nil {
		return fmt.Errorf("delete break: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
