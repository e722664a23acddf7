package handler

import (
	"errors"
	"net/http"

	"github.com/vpopov/authgate/internal/model"
)

// handleError maps domain errors to contractual status codes. Responses use
// generic wording; the precise failure reason stays in the server logs.
func (h *Auth) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidInput):
		writeMessage(w, http.StatusBadRequest, "invalid request")
	case errors.Is(err, model.ErrConflict):
		writeMessage(w, http.StatusConflict, "user already exists")
	case errors.Is(err, model.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "user not found")
	case errors.Is(err, model.ErrInvalidCredentials):
		writeMessage(w, http.StatusForbidden, "invalid credentials")
	case errors.Is(err, model.ErrPermissionDenied):
		writeMessage(w, http.StatusForbidden, "insufficient permissions")
	case errors.Is(err, model.ErrMissingToken),
		errors.Is(err, model.ErrInvalidToken),
		errors.Is(err, model.ErrTokenRevoked):
		writeMessage(w, http.StatusUnauthorized, "access token is invalid")
	default:
		h.logger.Error("internal error", "error", err.Error())
		writeMessage(w, http.StatusInternalServerError, "internal server error")
	}
}
