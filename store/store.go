// Package store persists time records and schedules in PostgreSQL. Every query
// is scoped to a single user; records belonging to someone else behave as if
// they did not exist.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"worktime/accounting"
	"worktime/models"
)

var (
	ErrNotFound           = errors.New("record not found")
	ErrAlreadyClockedIn   = errors.New("already clocked in")
	ErrNotClockedIn       = errors.New("not clocked in")
	ErrAlreadyOnBreak     = errors.New("already on a break")
	ErrNotOnBreak         = errors.New("not on a break")
	ErrInvalidInterval    = errors.New("end is before start")
	ErrInvalidLeave       = errors.New("invalid leave")
	ErrInvalidSettings    = errors.New("invalid settings")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func validInterval(start int64, end *int64) error {
	if end != nil && *end < start {
		return ErrInvalidInterval
	}
	return nil
}

// withUserLock runs fn in a transaction holding a row lock on the user, which
// serialises clock and break changes for that user.
func (s *Store) withUserLock(ctx context.Context, userID uint, fn func(tx *gorm.DB) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Select("id").First(&user, userID).Error
		if err != nil {
			return fmt.Errorf("lock user: %w", notFound(err))
		}
		return fn(tx)
	})
}

// Snapshot runs fn in a read-only repeatable-read transaction so that every
// query it makes sees the same state.
func (s *Store) Snapshot(ctx context.Context, userID uint, fn func(accounting.Reader) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&reader{tx: tx, userID: userID})
	}, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
}

type reader struct {
	tx     *gorm.DB
	userID uint
}

func (r *reader) TimeEntries(w models.Window) ([]models.TimeEntry, error) {
	var entries []models.TimeEntry
	err := r.tx.Preload("Breaks").
		Where("user_id = ? AND start_time >= ? AND start_time <= ?", r.userID, w.From, w.To).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("query time entries: %w", err)
	}
	return entries, nil
}

func (r *reader) Leave(w models.Window) ([]models.Leave, error) {
	var leave []models.Leave
	err := r.tx.Where("user_id = ? AND start_time >= ? AND start_time <= ?", r.userID, w.From, w.To).
		Find(&leave).Error
	if err != nil {
		return nil, fmt.Errorf("query leave: %w", err)
	}
	return leave, nil
}

func (r *reader) Breaks(w models.Window) ([]models.Break, error) {
	var breaks []models.Break
	err := r.tx.Where("user_id = ? AND start_time >= ? AND start_time <= ?", r.userID, w.From, w.To).
		Find(&breaks).Error
	if err != nil {
		return nil, fmt.Errorf("query breaks: %w", err)
	}
	return breaks, nil
}

func (r *reader) FirstRecordStart() (int64, bool, error) {
	var first sql.NullInt64
	row := r.tx.Raw(`SELECT MIN(s) FROM (
		SELECT MIN(start_time) AS s FROM time_entries WHERE user_id = ?
		UNION ALL
		SELECT MIN(start_time) AS s FROM leave_entries WHERE user_id = ?
	) AS firsts`, r.userID, r.userID).Row()
	if err := row.Scan(&first); err != nil {
		return 0, false, fmt.Errorf("query first record: %w", err)
	}
	return first.Int64, first.Valid, nil
}
