package accounting

import (
	"context"
	"errors"
	"testing"
	"time"

	"worktime/models"
	"worktime/schedule"
)

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func TestEngineComputeStats(t *testing.T) {
	store := &memStore{
		settings: utcSettings(),
		rec: Records{Entries: []models.TimeEntry{
			entry(1, at(19, 9, 0), zero, brk(1, 1, at(19, 12, 0), at(19, 12, 30))),
		}},
	}
	engine := NewEngine(store, fixedClock(at(19, 13, 0)), 0, nil)

	view, err := engine.ComputeStats(context.Background(), 1)
	if err != nil {
		t.Fatalf("ComputeStats: %v", err)
	}
	if view.LoggedToday != "3h 30m" {
		t.Errorf("LoggedToday = %q, want %q", view.LoggedToday, "3h 30m")
	}
	if view.RemainingToday != "4h 30m" {
		t.Errorf("RemainingToday = %q, want %q", view.RemainingToday, "4h 30m")
	}
	if view.EstimatedFinishTime != "17:30" {
		t.Errorf("EstimatedFinishTime = %q, want %q", view.EstimatedFinishTime, "17:30")
	}
	if store.snapshots != 1 {
		t.Errorf("snapshots = %d, want 1", store.snapshots)
	}
}

func TestEngineComputeStatsNoHistory(t *testing.T) {
	store := &memStore{settings: utcSettings()}
	engine := NewEngine(store, fixedClock(at(24, 10, 0)), 5, nil)

	view, err := engine.ComputeStats(context.Background(), 1)
	if err != nil {
		t.Fatalf("ComputeStats: %v", err)
	}
	want := StatsView{
		LoggedToday:         "0s",
		LoggedThisWeek:      "0s",
		TodoToday:           "0s",
		TodoThisWeek:        "40h 0m",
		RemainingToday:      "0s",
		RemainingThisWeek:   "40h 0m",
		Overtime:            "0s",
		EstimatedFinishTime: "N/A",
	}
	if view != want {
		t.Errorf("view = %+v, want %+v", view, want)
	}
}

func TestEngineSettingsError(t *testing.T) {
	boom := errors.New("boom")
	store := &memStore{settingsErr: boom}
	engine := NewEngine(store, fixedClock(at(19, 10, 0)), 5, nil)

	if _, err := engine.ComputeStats(context.Background(), 1); !errors.Is(err, boom) {
		t.Errorf("ComputeStats error = %v, want %v", err, boom)
	}
	if _, err := engine.ListWeeks(context.Background(), 1); !errors.Is(err, boom) {
		t.Errorf("ListWeeks error = %v, want %v", err, boom)
	}
}

func TestEngineBadTimezone(t *testing.T) {
	settings := utcSettings()
	settings.Timezone = "Mars/Olympus_Mons"
	engine := NewEngine(&memStore{settings: settings}, fixedClock(at(19, 10, 0)), 5, nil)

	if _, err := engine.ComputeStats(context.Background(), 1); err == nil {
		t.Fatal("expected error for unknown timezone")
	}
}

func TestEngineListWeeks(t *testing.T) {
	store := &memStore{
		settings: utcSettings(),
		rec: Records{Entries: []models.TimeEntry{
			entry(1, at(5, 9, 0), at(5, 17, 0)),
			entry(2, at(14, 9, 0), at(14, 17, 0)),
		}},
	}
	engine := NewEngine(store, fixedClock(at(21, 10, 0)), 5, nil)

	weeks, err := engine.ListWeeks(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListWeeks: %v", err)
	}
	want := []string{"2026-W43", "2026-W42", "2026-W41"}
	if len(weeks) != len(want) {
		t.Fatalf("ListWeeks = %v, want %v", weeks, want)
	}
	for i := range want {
		if weeks[i] != want[i] {
			t.Errorf("weeks[%d] = %q, want %q", i, weeks[i], want[i])
		}
	}
}

func TestEngineListWeeksEmpty(t *testing.T) {
	engine := NewEngine(&memStore{settings: utcSettings()}, fixedClock(at(21, 10, 0)), 5, nil)

	weeks, err := engine.ListWeeks(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListWeeks: %v", err)
	}
	if weeks == nil || len(weeks) != 0 {
		t.Errorf("ListWeeks = %#v, want empty", weeks)
	}
}

func TestEngineWeek(t *testing.T) {
	store := &memStore{
		settings: utcSettings(),
		rec: Records{
			Entries: []models.TimeEntry{
				entry(1, at(12, 9, 0), at(12, 17, 0)),
				entry(2, at(19, 9, 0), at(19, 12, 0)),
				entry(3, at(20, 9, 0), at(20, 10, 0)),
			},
			Leave: []models.Leave{{ID: 1, Start: at(21, 0, 0).Unix(), Hours: 7.5}},
		},
	}
	engine := NewEngine(store, fixedClock(at(21, 10, 0)), 5, nil)

	wk, err := engine.Week(context.Background(), 1, "")
	if err != nil {
		t.Fatalf("Week: %v", err)
	}
	if wk.ID != "2026-W43" {
		t.Errorf("ID = %q, want %q", wk.ID, "2026-W43")
	}
	if len(wk.Entries) != 2 || wk.Entries[0].ID != 3 || wk.Entries[1].ID != 2 {
		t.Errorf("Entries = %+v, want ids [3 2]", wk.Entries)
	}
	if len(wk.Leave) != 1 {
		t.Errorf("Leave = %+v, want one record", wk.Leave)
	}
	if wk.Logged != 4*hour+7*hour+1800 {
		t.Errorf("Logged = %d, want %d", wk.Logged, 4*hour+7*hour+1800)
	}

	prev, err := engine.Week(context.Background(), 1, "2026-W42")
	if err != nil {
		t.Fatalf("Week(W42): %v", err)
	}
	if len(prev.Entries) != 1 || prev.Entries[0].ID != 1 {
		t.Errorf("W42 entries = %+v, want id 1", prev.Entries)
	}
	if !prev.End.Equal(at(19, 0, 0)) {
		t.Errorf("W42 end = %v, want %v", prev.End, at(19, 0, 0))
	}
}

func TestEngineWeekInvalid(t *testing.T) {
	engine := NewEngine(&memStore{settings: utcSettings()}, fixedClock(at(21, 10, 0)), 5, nil)
	if _, err := engine.Week(context.Background(), 1, "last-week"); !errors.Is(err, schedule.ErrInvalidWeek) {
		t.Errorf("Week error = %v, want ErrInvalidWeek", err)
	}
}
