package models

import "time"

type Break struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	TimeEntryID uint      `gorm:"not null;index" json:"time_entry_id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Start       int64     `gorm:"column:start_time;not null;index" json:"start"`
	End         *int64    `gorm:"column:end_time" json:"end"`
	Note        string    `gorm:"size:500" json:"note"`
}

func (b *Break) IsOpen() bool {
	return b.End == nil
}

// Duration is the break length in seconds, measuring an open break up to now.
func (b *Break) Duration(now int64) int64 {
	end := now
	if b.End != nil {
		end = *b.End
	}
	return end - b.Start
}
