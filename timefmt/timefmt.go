package timefmt

import (
	"fmt"
	"time"
)

// Duration formats seconds as a short human string like "2h 30m", "45m" or
// "30s". Negative values carry a leading minus sign.
func Duration(seconds int64) string {
	sign := ""
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%s%dh %dm", sign, h, m)
	}
	if m > 0 {
		return fmt.Sprintf("%s%dm", sign, m)
	}
	return fmt.Sprintf("%s%ds", sign, s)
}

// Clock formats t as a 24-hour HH:MM time in loc.
func Clock(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("15:04")
}
