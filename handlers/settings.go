package handlers

import (
	"log/slog"
	"net/http"

	"worktime/middleware"
	"worktime/models"
	"worktime/store"
)

type SettingsHandler struct {
	store *store.Store
	log   *slog.Logger
}

func NewSettingsHandler(s *store.Store, log *slog.Logger) *SettingsHandler {
	return &SettingsHandler{store: s, log: log}
}

type settingsResponse struct {
	models.Settings
	WorkDayNames []string `json:"work_day_names"`
}

func newSettingsResponse(s models.Settings) settingsResponse {
	names := s.WorkDayNames()
	if names == nil {
		names = []string{}
	}
	return settingsResponse{Settings: s, WorkDayNames: names}
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	settings, err := h.store.Settings(r.Context(), user.ID)
	if err != nil {
		writeStoreError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, newSettingsResponse(settings))
}

func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	var req store.SettingsUpdate
	if !decodeJSON(w, r, &req) {
		return
	}

	settings, err := h.store.UpdateSettings(r.Context(), user.ID, req)
	if err != nil {
		writeStoreError(w, r, h.log, err)
		return
	}
	h.log.InfoContext(r.Context(), "settings updated", slog.Uint64("user_id", uint64(user.ID)))
	writeJSON(w, http.StatusOK, newSettingsResponse(settings))
}
