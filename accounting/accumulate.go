package accounting

import (
	"sort"

	"worktime/models"
)

// Records is the raw material for every calculation: a user's work sessions
// (with their breaks loaded), leave, and breaks selected independently of their
// sessions for break history.
type Records struct {
	Entries []models.TimeEntry
	Leave   []models.Leave
	Breaks  []models.Break
}

// NetDuration sums the logged seconds of every session and leave record that
// starts inside w. Open sessions and breaks run until now.
func NetDuration(rec Records, w models.Window, now int64) int64 {
	var total int64
	for i := range rec.Entries {
		if w.Contains(rec.Entries[i].Start) {
			total += rec.Entries[i].Logged(now)
		}
	}
	for i := range rec.Leave {
		if w.Contains(rec.Leave[i].Start) {
			total += rec.Leave[i].Logged()
		}
	}
	return total
}

// BreakTime sums the length of every break starting inside w.
func BreakTime(breaks []models.Break, w models.Window, now int64) (total int64, count int) {
	for i := range breaks {
		if w.Contains(breaks[i].Start) {
			total += breaks[i].Duration(now)
			count++
		}
	}
	return total, count
}

// FirstStart returns the earliest start among sessions and leave.
func FirstStart(rec Records) (int64, bool) {
	var first int64
	found := false
	for i := range rec.Entries {
		if !found || rec.Entries[i].Start < first {
			first, found = rec.Entries[i].Start, true
		}
	}
	for i := range rec.Leave {
		if !found || rec.Leave[i].Start < first {
			first, found = rec.Leave[i].Start, true
		}
	}
	return first, found
}

// SortEntries orders sessions newest first, breaking ties on id.
func SortEntries(entries []models.TimeEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Start != entries[j].Start {
			return entries[i].Start > entries[j].Start
		}
		return entries[i].ID > entries[j].ID
	})
}

// SortLeave orders leave newest first, breaking ties on id.
func SortLeave(leave []models.Leave) {
	sort.Slice(leave, func(i, j int) bool {
		if leave[i].Start != leave[j].Start {
			return leave[i].Start > leave[j].Start
		}
		return leave[i].ID > leave[j].ID
	})
}
