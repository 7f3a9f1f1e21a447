package accounting

import (
	"context"
	"testing"
	"time"

	"worktime/models"
	"worktime/schedule"
)

func ptr(v int64) *int64 { return &v }

var zero time.Time

// at returns a UTC instant on the given October 2026 day. 2026-10-19 is a Monday.
func at(day, hour, minute int) time.Time {
	return time.Date(2026, 10, day, hour, minute, 0, 0, time.UTC)
}

func entry(id uint, start, end time.Time, breaks ...models.Break) models.TimeEntry {
	e := models.TimeEntry{ID: id, UserID: 1, Start: start.Unix(), Breaks: breaks}
	if !end.IsZero() {
		e.End = ptr(end.Unix())
	}
	return e
}

func brk(id uint, entryID uint, start, end time.Time) models.Break {
	b := models.Break{ID: id, TimeEntryID: entryID, UserID: 1, Start: start.Unix()}
	if !end.IsZero() {
		b.End = ptr(end.Unix())
	}
	return b
}

func utcSettings() models.Settings {
	return models.Settings{UserID: 1, Timezone: "UTC", WeekStart: 0, HoursPerDay: 8, WorkDays: "MTWTF--"}
}

func mustSchedule(t *testing.T, s models.Settings) *schedule.Schedule {
	t.Helper()
	sched, err := schedule.New(s)
	if err != nil {
		t.Fatalf("new schedule: %v", err)
	}
	return sched
}

// withBreaks fills rec.Breaks from the breaks attached to each entry.
func withBreaks(rec Records) Records {
	for _, e := range rec.Entries {
		rec.Breaks = append(rec.Breaks, e.Breaks...)
	}
	return rec
}

type memStore struct {
	settings    models.Settings
	settingsErr error
	rec         Records
	snapshots   int
}

func (m *memStore) Settings(ctx context.Context, userID uint) (models.Settings, error) {
	return m.settings, m.settingsErr
}

func (m *memStore) Snapshot(ctx context.Context, userID uint, fn func(Reader) error) error {
	m.snapshots++
	return fn(memReader{rec: m.rec})
}

type memReader struct {
	rec Records
}

func (r memReader) TimeEntries(w models.Window) ([]models.TimeEntry, error) {
	var out []models.TimeEntry
	for _, e := range r.rec.Entries {
		if w.Contains(e.Start) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r memReader) Leave(w models.Window) ([]models.Leave, error) {
	var out []models.Leave
	for _, l := range r.rec.Leave {
		if w.Contains(l.Start) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r memReader) Breaks(w models.Window) ([]models.Break, error) {
	var out []models.Break
	for _, e := range r.rec.Entries {
		for _, b := range e.Breaks {
			if w.Contains(b.Start) {
				out = append(out, b)
			}
		}
	}
	return out, nil
}

func (r memReader) FirstRecordStart() (int64, bool, error) {
	first, ok := FirstStart(r.rec)
	return first, ok, nil
}
