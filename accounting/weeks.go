package accounting

import (
	"time"

	"worktime/schedule"
)

// ListWeeks labels every configured week from the one containing first up to
// the one containing now, newest first.
func ListWeeks(first time.Time, sched *schedule.Schedule, now time.Time) []string {
	weeks := []string{}
	for w := sched.StartOfWeek(first); !w.After(now); w = sched.EndOfWeek(w) {
		weeks = append(weeks, schedule.WeekID(w))
	}
	for i, j := 0, len(weeks)-1; i < j; i, j = i+1, j-1 {
		weeks[i], weeks[j] = weeks[j], weeks[i]
	}
	return weeks
}

// ListRecordWeeks is ListWeeks starting from the earliest record in rec. It is
// empty when there are no records.
func ListRecordWeeks(rec Records, sched *schedule.Schedule, now time.Time) []string {
	first, ok := FirstStart(rec)
	if !ok {
		return []string{}
	}
	return ListWeeks(time.Unix(first, 0), sched, now)
}
