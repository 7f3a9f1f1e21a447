package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"worktime/middleware"
	"worktime/models"
	"worktime/store"
)

type TimeHandler struct {
	store *store.Store
	clock Clock
	log   *slog.Logger
}

func NewTimeHandler(s *store.Store, clock Clock, log *slog.Logger) *TimeHandler {
	if clock == nil {
		clock = time.Now
	}
	return &TimeHandler{store: s, clock: clock, log: log}
}

type statusResponse struct {
	ClockedIn bool              `json:"clocked_in"`
	OnBreak   bool              `json:"on_break"`
	Entry     *models.TimeEntry `json:"entry"`
	Break     *models.Break     `json:"break"`
}

func (h *TimeHandler) Status(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	st, err := h.store.Status(r.Context(), user.ID)
	if err != nil {
		writeStoreError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{
		ClockedIn: st.ClockedIn(),
		OnBreak:   st.OnBreak(),
		Entry:     st.Entry,
		Break:     st.Break,
	})
}

// clockRequest is the body of clock and break actions. Both fields are
// optional; a missing time means now.
type clockRequest struct {
	At   *int64 `json:"at"`
	Note string `json:"note"`
}

func (h *TimeHandler) at(req clockRequest) int64 {
	if req.At != nil {
		return *req.At
	}
	return h.clock().Unix()
}

func (h *TimeHandler) ClockIn(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	var req clockRequest
	if !decodeOptionalJSON(w, r, &req) {
		return
	}

	entry, err := h.store.ClockIn(r.Context(), user.ID, h.at(req), strings.TrimSpace(req.Note))
	if err != nil {
		writeStoreError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (h *TimeHandler) ClockOut(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	var req clockRequest
	if !decodeOptionalJSON(w, r, &req) {
		return
	}

	entry, err := h.store.ClockOut(r.Context(), user.ID, h.at(req))
	if err != nil {
		writeStoreError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (h *TimeHandler) StartBreak(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	var req clockRequest
	if !decodeOptionalJSON(w, r, &req) {
		return
	}

	b, err := h.store.StartBreak(r.Context(), user.ID, h.at(req))
	if err != nil {
		writeStoreError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (h *TimeHandler) EndBreak(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	var req clockRequest
	if !decodeOptionalJSON(w, r, &req) {
		return
	}

	b, err := h.store.EndBreak(r.Context(), user.ID, h.at(req))
	if err != nil {
		writeStoreError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

type intervalRequest struct {
	Start *int64 `json:"start"`
	End   *int64 `json:"end"`
	Note  string `json:"note"`
}

func (h *TimeHandler) decodeInterval(w http.ResponseWriter, r *http.Request) (intervalRequest, bool) {
	var req intervalRequest
	if !decodeJSON(w, r, &req) {
		return req, false
	}
	if req.Start == nil {
		writeError(w, http.StatusBadRequest, "start is required")
		return req, false
	}
	req.Note = strings.TrimSpace(req.Note)
	return req, true
}

func (h *TimeHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	req, ok := h.decodeInterval(w, r)
	if !ok {
		return
	}

	entry, err := h.store.CreateTimeEntry(r.Context(), user.ID, *req.Start, req.End, req.Note)
	if err != nil {
		writeStoreError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (h *TimeHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	entry, err := h.store.GetTimeEntry(r.Context(), user.ID, id)
	if err != nil {
		writeStoreError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (h *TimeHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	req, ok := h.decodeInterval(w, r)
	if !ok {
		return
	}

	entry, err := h.store.UpdateTimeEntry(r.Context(), user.ID, id, *req.Start, req.End, req.Note)
	if err != nil {
		writeStoreError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (h *TimeHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.store.DeleteTimeEntry(r.Context(), user.ID, id); err != nil {
		writeStoreError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TimeHandler) AddBreak(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	entryID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	req, ok := h.decodeInterval(w, r)
	if !ok {
		return
	}

	b, err := h.store.AddBreak(r.Context(), user.ID, entryID, *req.Start, req.End, req.Note)
	if err != nil {
		writeStoreError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (h *TimeHandler) UpdateBreak(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	req, ok := h.decodeInterval(w, r)
	if !ok {
		return
	}

	b, err := h.store.UpdateBreak(r.Context(), user.ID, id, *req.Start, req.End, req.Note)
	if err != nil {
		writeStoreError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *TimeHandler) DeleteBreak(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.store.DeleteBreak(r.Context(), user.ID, id); err != nil {
		writeStoreError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
