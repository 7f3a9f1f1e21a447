package models

import "time"

// TimeEntry is a continuous work session. A nil End means the user is still
// clocked in.
type TimeEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Start     int64     `gorm:"column:start_time;not null;index" json:"start"`
	End       *int64    `gorm:"column:end_time" json:"end"`
	Note      string    `gorm:"size:500" json:"note"`
	Breaks    []Break   `gorm:"foreignKey:TimeEntryID;constraint:OnDelete:CASCADE" json:"breaks,omitempty"`
}

func (TimeEntry) TableName() string {
	return "time_entries"
}

func (t *TimeEntry) IsOpen() bool {
	return t.End == nil
}

// Logged returns the seconds worked in the session with every break removed.
// Open sessions and open breaks are measured up to now. Breaks are not
// clipped to the session, so a break that overruns its session can push the
// result below zero.
func (t *TimeEntry) Logged(now int64) int64 {
	end := now
	if t.End != nil {
		end = *t.End
	}
	logged := end - t.Start
	for i := range t.Breaks {
		logged -= t.Breaks[i].Duration(now)
	}
	return logged
}
