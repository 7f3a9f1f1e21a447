package models

import (
	"strings"
	"time"
)

const (
	DefaultTimezone    = "Europe/London"
	DefaultWeekStart   = 0
	DefaultHoursPerDay = 7.5
	DefaultWorkDays    = "MTWTF--"
)

// DayNames is indexed the same way as WorkDays and WeekStart: Monday first.
var DayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Settings is a user's expected work schedule. WorkDays holds one character per
// weekday starting Monday; a hyphen marks a day off.
type Settings struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"updated_at"`
	UserID      uint      `gorm:"not null;uniqueIndex" json:"-"`
	Timezone    string    `gorm:"not null;size:64" json:"timezone"`
	WeekStart   int       `gorm:"not null" json:"week_start"`
	HoursPerDay float64   `gorm:"not null" json:"hours_per_day"`
	WorkDays    string    `gorm:"not null;size:7" json:"work_days"`
}

func DefaultSettings(userID uint) Settings {
	return Settings{
		UserID:      userID,
		Timezone:    DefaultTimezone,
		WeekStart:   DefaultWeekStart,
		HoursPerDay: DefaultHoursPerDay,
		WorkDays:    DefaultWorkDays,
	}
}

func (s *Settings) Location() (*time.Location, error) {
	return time.LoadLocation(s.Timezone)
}

// WorkDayNames lists the configured work days by name, Monday first.
func (s *Settings) WorkDayNames() []string {
	var names []string
	for i, c := range s.WorkDays {
		if i < len(DayNames) && c != '-' {
			names = append(names, DayNames[i])
		}
	}
	return names
}

// WorkDayMask builds a mask from day names, using each day's initial for work
// days and a hyphen otherwise. Unknown names are ignored.
func WorkDayMask(days []string) string {
	var b strings.Builder
	for _, name := range DayNames {
		mark := byte('-')
		for _, d := range days {
			if strings.EqualFold(strings.TrimSpace(d), name) {
				mark = name[0]
				break
			}
		}
		b.WriteByte(mark)
	}
	return b.String()
}
