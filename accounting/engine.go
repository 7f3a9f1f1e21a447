package accounting

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"worktime/models"
	"worktime/schedule"
)

// Reader queries one user's records. Every method sees the same snapshot.
type Reader interface {
	TimeEntries(w models.Window) ([]models.TimeEntry, error)
	Leave(w models.Window) ([]models.Leave, error)
	Breaks(w models.Window) ([]models.Break, error)
	FirstRecordStart() (int64, bool, error)
}

type Store interface {
	// Settings returns the user's schedule, creating the defaults on first use.
	Settings(ctx context.Context, userID uint) (models.Settings, error)
	// Snapshot runs fn against a consistent read-only view of the user's records.
	Snapshot(ctx context.Context, userID uint, fn func(Reader) error) error
}

type Clock func() time.Time

// Engine computes statistics for a user from the store and the clock.
type Engine struct {
	store         Store
	clock         Clock
	lookbackWeeks int
	logger        *slog.Logger
}

func NewEngine(store Store, clock Clock, lookbackWeeks int, logger *slog.Logger) *Engine {
	if clock == nil {
		clock = time.Now
	}
	if lookbackWeeks <= 0 {
		lookbackWeeks = DefaultLookbackWeeks
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{store: store, clock: clock, lookbackWeeks: lookbackWeeks, logger: logger}
}

func (e *Engine) schedule(ctx context.Context, userID uint) (*schedule.Schedule, error) {
	settings, err := e.store.Settings(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	sched, err := schedule.New(settings)
	if err != nil {
		return nil, fmt.Errorf("build schedule: %w", err)
	}
	return sched, nil
}

// Stats computes the raw statistics for userID.
func (e *Engine) Stats(ctx context.Context, userID uint) (Stats, error) {
	sched, err := e.schedule(ctx, userID)
	if err != nil {
		return Stats{}, err
	}

	var st Stats
	err = e.store.Snapshot(ctx, userID, func(r Reader) error {
		now := sched.In(e.clock())
		lookback := sched.StartOfDay(now).AddDate(0, 0, -7*(e.lookbackWeeks+1))

		var rec Records
		var err error
		if rec.Entries, err = r.TimeEntries(models.Since(0)); err != nil {
			return fmt.Errorf("load time entries: %w", err)
		}
		if rec.Leave, err = r.Leave(models.Since(0)); err != nil {
			return fmt.Errorf("load leave: %w", err)
		}
		if rec.Breaks, err = r.Breaks(models.Since(lookback.Unix())); err != nil {
			return fmt.Errorf("load breaks: %w", err)
		}

		st = Compute(now, sched, rec, e.lookbackWeeks)
		return nil
	})
	if err != nil {
		return Stats{}, err
	}

	e.logger.Debug("computed stats",
		slog.Uint64("user_id", uint64(userID)),
		slog.Int64("logged_today", st.LoggedToday),
		slog.Int64("overtime", st.Overtime),
	)
	return st, nil
}

// ComputeStats is Stats rendered for display.
func (e *Engine) ComputeStats(ctx context.Context, userID uint) (StatsView, error) {
	st, err := e.Stats(ctx, userID)
	if err != nil {
		return StatsView{}, err
	}
	return st.View(), nil
}

// ListWeeks returns the week identifiers from the user's first record until
// now, newest first.
func (e *Engine) ListWeeks(ctx context.Context, userID uint) ([]string, error) {
	sched, err := e.schedule(ctx, userID)
	if err != nil {
		return nil, err
	}

	weeks := []string{}
	err = e.store.Snapshot(ctx, userID, func(r Reader) error {
		first, ok, err := r.FirstRecordStart()
		if err != nil {
			return fmt.Errorf("first record: %w", err)
		}
		if ok {
			weeks = ListWeeks(time.Unix(first, 0), sched, sched.In(e.clock()))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return weeks, nil
}

// Week is one configured week of records, newest first.
type Week struct {
	ID      string             `json:"id"`
	Start   time.Time          `json:"start"`
	End     time.Time          `json:"end"`
	Logged  int64              `json:"logged"`
	Entries []models.TimeEntry `json:"entries"`
	Leave   []models.Leave     `json:"leave"`
}

// Week loads the records of the week labelled id, or of the current week when
// id is empty. An unparseable id wraps schedule.ErrInvalidWeek.
func (e *Engine) Week(ctx context.Context, userID uint, id string) (Week, error) {
	sched, err := e.schedule(ctx, userID)
	if err != nil {
		return Week{}, err
	}

	now := sched.In(e.clock())
	var start time.Time
	if id == "" {
		start = sched.StartOfWeek(now)
		id = schedule.WeekID(start)
	} else if start, err = sched.ParseWeek(id); err != nil {
		return Week{}, err
	}
	end := sched.EndOfWeek(start)

	wk := Week{ID: id, Start: start, End: end}
	err = e.store.Snapshot(ctx, userID, func(r Reader) error {
		w := models.Between(start.Unix(), end.Unix()-1)
		var err error
		if wk.Entries, err = r.TimeEntries(w); err != nil {
			return fmt.Errorf("load time entries: %w", err)
		}
		if wk.Leave, err = r.Leave(w); err != nil {
			return fmt.Errorf("load leave: %w", err)
		}
		return nil
	})
	if err != nil {
		return Week{}, err
	}

	SortEntries(wk.Entries)
	SortLeave(wk.Leave)
	wk.Logged = NetDuration(Records{Entries: wk.Entries, Leave: wk.Leave}, models.Since(start.Unix()), now.Unix())
	return wk, nil
}
