package models

import "math"

// Window selects records by start timestamp, inclusive at both ends.
type Window struct {
	From int64
	To   int64
}

// Since selects records starting at or after ts.
func Since(ts int64) Window {
	return Window{From: ts, To: math.MaxInt64}
}

// Between selects records with lo <= start <= hi.
func Between(lo, hi int64) Window {
	return Window{From: lo, To: hi}
}

func (w Window) Contains(start int64) bool {
	return start >= w.From && start <= w.To
}
