package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"worktime/middleware"
	"worktime/models"
	"worktime/store"
)

type AuthHandler struct {
	store *store.Store
	auth  *middleware.Auth
	log   *slog.Logger
}

func NewAuthHandler(s *store.Store, auth *middleware.Auth, log *slog.Logger) *AuthHandler {
	return &AuthHandler{store: s, auth: auth, log: log}
}

type credentialsRequest struct {
	Username string      `json:"username"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
}

type sessionResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

func validateCredentials(username, password string) string {
	if len(username) < 3 {
		return "username must be at least 3 characters"
	}
	if len(password) < 5 {
		return "password must be at least 5 characters"
	}
	return ""
}

func (h *AuthHandler) startSession(w http.ResponseWriter, r *http.Request, user *models.User, status int) {
	token, err := h.auth.SetTokenCookie(w, user)
	if err != nil {
		h.log.ErrorContext(r.Context(), "generate token", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}
	writeJSON(w, status, sessionResponse{User: user, Token: token})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if msg := validateCredentials(req.Username, req.Password); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	user, err := h.store.CreateUser(r.Context(), req.Username, req.Password, models.RoleUser)
	if err != nil {
		writeStoreError(w, r, h.log, err)
		return
	}
	h.log.InfoContext(r.Context(), "user registered", slog.String("username", user.Username))
	h.startSession(w, r, user, http.StatusCreated)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.store.Authenticate(r.Context(), strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		writeStoreError(w, r, h.log, err)
		return
	}
	h.startSession(w, r, user, http.StatusOK)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearTokenCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var req changePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.NewPassword) < 5 {
		writeError(w, http.StatusBadRequest, "password must be at least 5 characters")
		return
	}

	if err := h.store.ChangePassword(r.Context(), user, req.CurrentPassword, req.NewPassword); err != nil {
		writeStoreError(w, r, h.log, err)
		return
	}
	// Reissue so the session outlives the password change.
	h.startSession(w, r, user, http.StatusOK)
}

// CreateUser lets an administrator add an account directly.
func (h *AuthHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if msg := validateCredentials(req.Username, req.Password); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if req.Role == "" {
		req.Role = models.RoleUser
	}
	if req.Role != models.RoleUser && req.Role != models.RoleAdmin {
		writeError(w, http.StatusBadRequest, "invalid role")
		return
	}

	user, err := h.store.CreateUser(r.Context(), req.Username, req.Password, req.Role)
	if err != nil {
		writeStoreError(w, r, h.log, err)
		return
	}
	h.log.InfoContext(r.Context(), "user created",
		slog.String("username", user.Username),
		slog.String("role", string(user.Role)),
		slog.String("by", middleware.GetUserFromContext(r.Context()).Username))
	writeJSON(w, http.StatusCreated, user)
}
