package models

import (
	"math"
	"time"
)

type LeaveType string

const (
	LeaveVacation LeaveType = "vacation"
	LeaveSick     LeaveType = "sick"
	LeaveOther    LeaveType = "other"
)

func (lt LeaveType) Valid() bool {
	switch lt {
	case LeaveVacation, LeaveSick, LeaveOther:
		return true
	}
	return false
}

// Leave counts toward logged time by its stated duration rather than by its
// start and end. Start is the local midnight of the day taken.
type Leave struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	LeaveType     LeaveType `gorm:"not null;size:20" json:"leave_type"`
	Start         int64     `gorm:"column:start_time;not null;index" json:"start"`
	Hours         float64   `gorm:"not null" json:"hours"`
	Note          string    `gorm:"size:500" json:"note"`
	PublicHoliday bool      `gorm:"default:false" json:"public_holiday"`
}

func (Leave) TableName() string {
	return "leave_entries"
}

func (l *Leave) Logged() int64 {
	return int64(math.Round(l.Hours * 3600))
}
