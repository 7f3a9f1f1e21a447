package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"worktime/schedule"
	"worktime/store"
)

// Clock returns the current instant. Handlers use it for clock and break
// actions sent without an explicit time.
type Clock func() time.Time

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// statusFor maps a store or engine error onto an HTTP status. Missing records
// answer 403 because a record owned by someone else looks exactly the same.
func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusForbidden
	case errors.Is(err, store.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, store.ErrAlreadyClockedIn),
		errors.Is(err, store.ErrNotClockedIn),
		errors.Is(err, store.ErrAlreadyOnBreak),
		errors.Is(err, store.ErrNotOnBreak),
		errors.Is(err, store.ErrUsernameTaken):
		return http.StatusConflict
	case errors.Is(err, store.ErrInvalidInterval),
		errors.Is(err, store.ErrInvalidLeave),
		errors.Is(err, store.ErrInvalidSettings),
		errors.Is(err, schedule.ErrInvalidWeek):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeStoreError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.ErrorContext(r.Context(), "request failed", slog.String("path", r.URL.Path), slog.Any("error", err))
		writeError(w, status, "internal error")
		return
	}
	if status == http.StatusForbidden {
		writeError(w, status, "access denied")
		return
	}
	writeError(w, status, err.Error())
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return false
	}
	return true
}

// decodeOptionalJSON accepts an empty body and leaves v untouched.
func decodeOptionalJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.ContentLength == 0 {
		return true
	}
	return decodeJSON(w, r, v)
}

func parseIDParam(r *http.Request, name string) (uint, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
