package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vpopov/authgate/internal/logger"
	"github.com/vpopov/authgate/internal/model"
)

// TokenHeader is the request header carrying the session token.
const TokenHeader = "x-access-token"

// TokenAuthorizer resolves users from presented session tokens.
type TokenAuthorizer interface {
	Authorize(ctx context.Context, token string) (model.User, error)
}

// Authenticate validates session tokens and injects the resolved user into
// the request context. Every failure collapses to a uniform 401: expired,
// revoked and malformed tokens are indistinguishable to the caller.
type Authenticate struct {
	tokenService   TokenAuthorizer
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokenService TokenAuthorizer, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokenService: tokenService, contextManager: contextManager, logger: logger}
}

// Handle wraps next with token authentication.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := r.Header.Get(TokenHeader)

		user, err := m.tokenService.Authorize(r.Context(), tokenString)
		if err != nil {
			m.logger.Info("authentication failed",
				"path", r.URL.Path,
				"error", err.Error())
			m.writeUnauthorized(w, err)
			return
		}

		ctx := m.contextManager.SetUserToContext(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Authenticate) writeUnauthorized(w http.ResponseWriter, err error) {
	message := "access token is invalid"
	if errors.Is(err, model.ErrMissingToken) {
		message = "access token is missing"
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}
