package accounting

import (
	"time"

	"worktime/models"
	"worktime/schedule"
)

const DefaultLookbackWeeks = 5

// AverageBreak estimates how long the user breaks on the given weekday
// (Monday = 0) from the same weekday in each of the lookbackWeeks weeks before
// ref. Days without any break are left out of the average rather than counted
// as zero. The result is whole seconds, rounded down.
func AverageBreak(breaks []models.Break, sched *schedule.Schedule, weekday int, ref time.Time, lookbackWeeks int, now int64) int64 {
	local := sched.In(ref)
	back := (schedule.DayIndex(local) - weekday + 7) % 7
	loc := sched.Location()

	var total int64
	var samples int64
	for i := 1; i <= lookbackWeeks; i++ {
		day := time.Date(local.Year(), local.Month(), local.Day()-back-7*i, 12, 0, 0, 0, loc)
		w := models.Between(sched.StartOfDay(day).Unix(), sched.EndOfDay(day).Unix())
		sum, n := BreakTime(breaks, w, now)
		if n == 0 {
			continue
		}
		total += sum
		samples++
	}
	if samples == 0 {
		return 0
	}
	return floorDiv(total, samples)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
