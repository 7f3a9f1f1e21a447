package handlers

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"worktime/accounting"
	"worktime/middleware"
	"worktime/timefmt"
)

type StatsHandler struct {
	engine *accounting.Engine
	clock  Clock
	log    *slog.Logger
}

func NewStatsHandler(engine *accounting.Engine, clock Clock, log *slog.Logger) *StatsHandler {
	if clock == nil {
		clock = time.Now
	}
	return &StatsHandler{engine: engine, clock: clock, log: log}
}

func (h *StatsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	view, err := h.engine.ComputeStats(r.Context(), user.ID)
	if err != nil {
		writeStoreError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *StatsHandler) Weeks(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	weeks, err := h.engine.ListWeeks(r.Context(), user.ID)
	if err != nil {
		writeStoreError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"weeks": weeks})
}

func weekParam(r *http.Request) string {
	id := chi.URLParam(r, "week")
	if id == "current" {
		return ""
	}
	return id
}

func (h *StatsHandler) Week(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	wk, err := h.engine.Week(r.Context(), user.ID, weekParam(r))
	if err != nil {
		writeStoreError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, wk)
}

func (h *StatsHandler) ExportWeek(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	wk, err := h.engine.Week(r.Context(), user.ID, weekParam(r))
	if err != nil {
		writeStoreError(w, r, h.log, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=worktime_%s.csv", wk.ID))
	if err := writeWeekCSV(w, wk, h.clock().Unix()); err != nil {
		h.log.ErrorContext(r.Context(), "write csv", slog.String("week", wk.ID), slog.Any("error", err))
	}
}

// writeWeekCSV writes one row per time entry and leave record, in the week's
// order. Times are shown in the week's timezone; open entries have no end and
// are measured up to now.
func writeWeekCSV(out io.Writer, wk accounting.Week, now int64) error {
	loc := wk.Start.Location()
	writer := csv.NewWriter(out)

	writer.Write([]string{"Kind", "Date", "Start", "End", "Hours", "Logged", "Note"})

	for i := range wk.Entries {
		entry := &wk.Entries[i]
		start := time.Unix(entry.Start, 0).In(loc)
		end := ""
		if entry.End != nil {
			end = timefmt.Clock(time.Unix(*entry.End, 0), loc)
		}
		logged := entry.Logged(now)
		writer.Write([]string{
			"work",
			start.Format("2006-01-02"),
			timefmt.Clock(start, loc),
			end,
			fmt.Sprintf("%.2f", float64(logged)/3600),
			timefmt.Duration(logged),
			entry.Note,
		})
	}

	for i := range wk.Leave {
		leave := &wk.Leave[i]
		writer.Write([]string{
			string(leave.LeaveType),
			time.Unix(leave.Start, 0).In(loc).Format("2006-01-02"),
			"",
			"",
			fmt.Sprintf("%.2f", leave.Hours),
			timefmt.Duration(leave.Logged()),
			leave.Note,
		})
	}

	writer.Flush()
	return writer.Error()
}
