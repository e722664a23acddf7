package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/vpopov/authgate/internal/api/http/middleware"
	"github.com/vpopov/authgate/internal/logger"
	"github.com/vpopov/authgate/internal/model"
)

// AuthService defines registration, login and promotion operations.
type AuthService interface {
	Register(ctx context.Context, username, password string) (model.User, error)
	Login(ctx context.Context, username, password string) (string, error)
	Promote(ctx context.Context, caller model.User, targetPublicID uuid.UUID) error
}

// TokenService defines token revocation.
type TokenService interface {
	Revoke(ctx context.Context, token string) error
}

// Auth handles the HTTP endpoints of the authentication service.
type Auth struct {
	authService    AuthService
	tokenService   TokenService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, tokenService TokenService, contextManager model.ContextManager, logger *logger.Logger) *Auth {
	return &Auth{
		authService:    authService,
		tokenService:   tokenService,
		contextManager: contextManager,
		logger:         logger,
	}
}

type registerRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// Register creates a new user from a JSON body.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request")
		return
	}

	_, err := h.authService.Register(r.Context(), req.Name, req.Password)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeMessage(w, http.StatusCreated, "new user registered")
}

// Login authenticates Basic credentials and returns a session token.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	username, pass, ok := r.BasicAuth()
	if !ok || username == "" || pass == "" {
		w.Header().Set("WWW-Authenticate", `Basic realm="authentication required"`)
		writeMessage(w, http.StatusBadRequest, "credentials missing")
		return
	}

	tokenString, err := h.authService.Login(r.Context(), username, pass)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": tokenString})
}

// Logout revokes the presented token. The authenticate middleware has
// already validated it, so the blacklist insert is the only transition left;
// revoking an already-revoked token would be a no-op anyway.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.contextManager.GetUserFromContext(r.Context()); !ok {
		writeMessage(w, http.StatusUnauthorized, "access token is invalid")
		return
	}

	tokenString := r.Header.Get(middleware.TokenHeader)
	if err := h.tokenService.Revoke(r.Context(), tokenString); err != nil {
		h.handleError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "access token has been revoked")
}

// Dashboard is the protected echo endpoint: any resource gated purely by
// authentication looks like this.
func (h *Auth) Dashboard(w http.ResponseWriter, r *http.Request) {
	user, ok := h.contextManager.GetUserFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "access token is invalid")
		return
	}

	h.logger.Debug("dashboard accessed", "public_id", user.PublicID)
	writeMessage(w, http.StatusOK, "dashboard accessed successfully")
}

// Promote grants the admin role to the user named in the path.
func (h *Auth) Promote(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.contextManager.GetUserFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "access token is invalid")
		return
	}

	// A malformed public ID can never match a user.
	targetPublicID, err := uuid.Parse(r.PathValue("public_id"))
	if err != nil {
		writeMessage(w, http.StatusNotFound, "user not found")
		return
	}

	if err := h.authService.Promote(r.Context(), caller, targetPublicID); err != nil {
		h.handleError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "user has been promoted to admin")
}
