package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"worktime/middleware"
	"worktime/models"
	"worktime/store"
)

type LeaveHandler struct {
	store *store.Store
	log   *slog.Logger
}

func NewLeaveHandler(s *store.Store, log *slog.Logger) *LeaveHandler {
	return &LeaveHandler{store: s, log: log}
}

type leaveRequest struct {
	Type          models.LeaveType `json:"type"`
	Date          string           `json:"date"`
	Hours         float64          `json:"hours"`
	Note          string           `json:"note"`
	PublicHoliday bool             `json:"public_holiday"`
}

// leaveDay resolves a YYYY-MM-DD date to the local midnight starting that day.
func leaveDay(date string, loc *time.Location) (int64, error) {
	day, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(date), loc)
	if err != nil {
		return 0, fmt.Errorf("%w: date must be YYYY-MM-DD", store.ErrInvalidLeave)
	}
	return day.Unix(), nil
}

func (h *LeaveHandler) decode(w http.ResponseWriter, r *http.Request, userID uint) (store.LeaveInput, bool) {
	var req leaveRequest
	if !decodeJSON(w, r, &req) {
		return store.LeaveInput{}, false
	}

	settings, err := h.store.Settings(r.Context(), userID)
	if err != nil {
		writeStoreError(w, r, h.log, err)
		return store.LeaveInput{}, false
	}
	loc, err := settings.Location()
	if err != nil {
		writeStoreError(w, r, h.log, fmt.Errorf("load timezone: %w", err))
		return store.LeaveInput{}, false
	}
	start, err := leaveDay(req.Date, loc)
	if err != nil {
		writeStoreError(w, r, h.log, err)
		return store.LeaveInput{}, false
	}

	return store.LeaveInput{
		Type:          req.Type,
		Start:         start,
		Hours:         req.Hours,
		Note:          strings.TrimSpace(req.Note),
		PublicHoliday: req.PublicHoliday,
	}, true
}

func (h *LeaveHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	in, ok := h.decode(w, r, user.ID)
	if !ok {
		return
	}

	leave, err := h.store.CreateLeave(r.Context(), user.ID, in)
	if err != nil {
		writeStoreError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, leave)
}

func (h *LeaveHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	leave, err := h.store.GetLeave(r.Context(), user.ID, id)
	if err != nil {
		writeStoreError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, leave)
}

func (h *LeaveHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	in, ok := h.decode(w, r, user.ID)
	if !ok {
		return
	}

	leave, err := h.store.UpdateLeave(r.Context(), user.ID, id, in)
	if err != nil {
		writeStoreError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, leave)
}

func (h *LeaveHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.store.DeleteLeave(r.Context(), user.ID, id); err != nil {
		writeStoreError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
