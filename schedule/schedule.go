// Package schedule answers calendar questions about a user's configured work
// week. All day and week boundaries are civil times in the user's timezone.
package schedule

import (
	"errors"
	"fmt"
	"math"
	"time"

	"worktime/models"
)

var ErrInvalidWeek = errors.New("invalid week identifier")

type Schedule struct {
	loc         *time.Location
	weekStart   int
	hoursPerDay float64
	workDays    string
}

func New(s models.Settings) (*Schedule, error) {
	loc, err := s.Location()
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", s.Timezone, err)
	}
	if s.WeekStart < 0 || s.WeekStart > 6 {
		return nil, fmt.Errorf("week start %d out of range", s.WeekStart)
	}
	return &Schedule{
		loc:         loc,
		weekStart:   s.WeekStart,
		hoursPerDay: s.HoursPerDay,
		workDays:    s.WorkDays,
	}, nil
}

func (s *Schedule) Location() *time.Location {
	return s.loc
}

// In converts t to the schedule's timezone.
func (s *Schedule) In(t time.Time) time.Time {
	return t.In(s.loc)
}

// DayIndex returns the Monday-first weekday index (0-6) of t.
func DayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

func (s *Schedule) IsWorkDay(t time.Time) bool {
	return s.isWorkDayIndex(DayIndex(s.In(t)))
}

func (s *Schedule) isWorkDayIndex(i int) bool {
	return i < len(s.workDays) && s.workDays[i] != '-'
}

// WorkDayCount is the number of work days in a week.
func (s *Schedule) WorkDayCount() int {
	n := 0
	for i := 0; i < 7; i++ {
		if s.isWorkDayIndex(i) {
			n++
		}
	}
	return n
}

// SecondsPerDay is the expected work on a single work day.
func (s *Schedule) SecondsPerDay() int64 {
	return int64(math.Round(s.hoursPerDay * 3600))
}

// StartOfDay returns local midnight of the day containing t.
func (s *Schedule) StartOfDay(t time.Time) time.Time {
	l := s.In(t)
	return time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, s.loc)
}

// EndOfDay returns 23:59:59 local time of the day containing t.
func (s *Schedule) EndOfDay(t time.Time) time.Time {
	l := s.In(t)
	return time.Date(l.Year(), l.Month(), l.Day(), 23, 59, 59, 0, s.loc)
}

// StartOfWeek returns local midnight of the most recent configured week-start
// day on or before t.
func (s *Schedule) StartOfWeek(t time.Time) time.Time {
	l := s.In(t)
	back := (DayIndex(l) - s.weekStart + 7) % 7
	return time.Date(l.Year(), l.Month(), l.Day()-back, 0, 0, 0, 0, s.loc)
}

// ExpectedSeconds is the scheduled work between the day containing from and the
// day containing to, both inclusive.
func (s *Schedule) ExpectedSeconds(from, to time.Time) int64 {
	day := s.StartOfDay(from)
	last := s.StartOfDay(to)
	perDay := s.SecondsPerDay()

	var total int64
	for !day.After(last) {
		if s.isWorkDayIndex(DayIndex(day)) {
			total += perDay
		}
		day = time.Date(day.Year(), day.Month(), day.Day()+1, 0, 0, 0, 0, s.loc)
	}
	return total
}

// WeekID labels t with its ISO year and week, like "2026-W09".
func WeekID(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// ParseWeek returns the start of the configured week labelled id. The label of a
// configured week is the ISO week of its first day, so the start is the day in
// that ISO week falling on the configured week-start weekday.
func (s *Schedule) ParseWeek(id string) (time.Time, error) {
	var year, week int
	if n, err := fmt.Sscanf(id, "%4d-W%2d", &year, &week); err != nil || n != 2 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidWeek, id)
	}
	if week < 1 || week > 53 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidWeek, id)
	}

	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, s.loc)
	monday := time.Date(year, time.January, 4-DayIndex(jan4)+(week-1)*7, 0, 0, 0, 0, s.loc)
	if y, w := monday.ISOWeek(); y != year || w != week {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidWeek, id)
	}
	return time.Date(monday.Year(), monday.Month(), monday.Day()+s.weekStart, 0, 0, 0, 0, s.loc), nil
}

// EndOfWeek is the start of the week following the one beginning at start.
func (s *Schedule) EndOfWeek(start time.Time) time.Time {
	l := s.In(start)
	return time.Date(l.Year(), l.Month(), l.Day()+7, 0, 0, 0, 0, s.loc)
}
