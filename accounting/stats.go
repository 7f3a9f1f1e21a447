package accounting

import (
	"time"

	"worktime/models"
	"worktime/schedule"
	"worktime/timefmt"
)

const (
	FinishNow           = "Now"
	FinishNotApplicable = "N/A"
)

type FinishKind int

const (
	FinishKindNotApplicable FinishKind = iota
	FinishKindNow
	FinishKindAt
)

// Finish is the estimated time the user can stop working today. At is only
// meaningful for FinishKindAt and is in the user's timezone.
type Finish struct {
	Kind FinishKind
	At   time.Time
}

func (f Finish) String() string {
	switch f.Kind {
	case FinishKindNow:
		return FinishNow
	case FinishKindAt:
		return f.At.Format("15:04")
	default:
		return FinishNotApplicable
	}
}

// Stats holds every figure in seconds. Remaining values never go below zero;
// any surplus shows up in Overtime instead.
type Stats struct {
	LoggedToday       int64
	LoggedThisWeek    int64
	TodoToday         int64
	TodoThisWeek      int64
	RemainingToday    int64
	RemainingThisWeek int64
	Overtime          int64
	BreaksToday       int64
	ExpectedBreak     int64
	Finish            Finish
}

type StatsView struct {
	LoggedToday         string `json:"logged_today"`
	LoggedThisWeek      string `json:"logged_this_week"`
	TodoToday           string `json:"todo_today"`
	TodoThisWeek        string `json:"todo_this_week"`
	RemainingToday      string `json:"remaining_today"`
	RemainingThisWeek   string `json:"remaining_this_week"`
	Overtime            string `json:"overtime"`
	EstimatedFinishTime string `json:"estimated_finish_time"`
}

func (s Stats) View() StatsView {
	return StatsView{
		LoggedToday:         timefmt.Duration(s.LoggedToday),
		LoggedThisWeek:      timefmt.Duration(s.LoggedThisWeek),
		TodoToday:           timefmt.Duration(s.TodoToday),
		TodoThisWeek:        timefmt.Duration(s.TodoThisWeek),
		RemainingToday:      timefmt.Duration(s.RemainingToday),
		RemainingThisWeek:   timefmt.Duration(s.RemainingThisWeek),
		Overtime:            timefmt.Duration(s.Overtime),
		EstimatedFinishTime: s.Finish.String(),
	}
}

// Compute derives the user's statistics at now from their complete record
// history. It is a pure function of its arguments.
func Compute(now time.Time, sched *schedule.Schedule, rec Records, lookbackWeeks int) Stats {
	now = sched.In(now)
	nowUnix := now.Unix()
	todayStart := sched.StartOfDay(now)
	todayEnd := sched.EndOfDay(now)
	weekStart := sched.StartOfWeek(now)
	today := models.Between(todayStart.Unix(), todayEnd.Unix())

	var st Stats
	st.LoggedToday = NetDuration(rec, today, nowUnix)
	st.LoggedThisWeek = NetDuration(rec, models.Since(weekStart.Unix()), nowUnix)

	workDay := sched.IsWorkDay(now)
	if workDay {
		st.TodoToday = sched.SecondsPerDay()
	}
	st.TodoThisWeek = sched.SecondsPerDay() * int64(sched.WorkDayCount())

	st.RemainingToday = max(st.TodoToday-st.LoggedToday, 0)
	st.RemainingThisWeek = max(st.TodoThisWeek-st.LoggedThisWeek, 0)

	st.Overtime = Overtime(rec, sched, todayEnd, nowUnix)

	if !workDay {
		return st
	}

	st.BreaksToday, _ = BreakTime(rec.Breaks, today, nowUnix)
	avg := AverageBreak(rec.Breaks, sched, schedule.DayIndex(now), now, lookbackWeeks, nowUnix)
	st.ExpectedBreak = max(avg-st.BreaksToday, 0)

	left := st.RemainingToday + st.ExpectedBreak
	if left <= 0 {
		st.Finish = Finish{Kind: FinishKindNow}
	} else {
		st.Finish = Finish{Kind: FinishKindAt, At: now.Add(time.Duration(left) * time.Second)}
	}
	return st
}

// Overtime is everything logged up to the end of today minus the schedule's
// expectation from the day of the first record through today. It is zero for a
// user with no records.
func Overtime(rec Records, sched *schedule.Schedule, todayEnd time.Time, now int64) int64 {
	first, ok := FirstStart(rec)
	if !ok {
		return 0
	}
	expected := sched.ExpectedSeconds(time.Unix(first, 0), todayEnd)
	return NetDuration(rec, models.Between(0, todayEnd.Unix()), now) - expected
}
