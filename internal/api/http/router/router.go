package router

import (
	"net/http"

	"github.com/vpopov/authgate/internal/api/http/handler"
	"github.com/vpopov/authgate/internal/api/http/middleware"
	"github.com/vpopov/authgate/internal/logger"
	"github.com/vpopov/authgate/internal/model"
	"github.com/vpopov/authgate/internal/service"
)

// Router builds the HTTP route table for the authentication service.
type Router struct {
	authService    *service.Auth
	tokenService   *service.TokenService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// New creates a new Router instance.
func New(
	authService *service.Auth,
	tokenService *service.TokenService,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		tokenService:   tokenService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Handler registers all routes and middleware and returns the root handler.
// Protected routes go through the authenticate middleware; everything goes
// through request logging.
func (r *Router) Handler() http.Handler {
	h := handler.NewAuth(r.authService, r.tokenService, r.contextManager, r.logger)
	authenticate := middleware.NewAuthenticate(r.tokenService, r.contextManager, r.logger)
	logging := middleware.NewLogging(r.logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	mux.HandleFunc("POST /user", h.Register)
	mux.HandleFunc("GET /login", h.Login)

	mux.Handle("POST /logout", authenticate.Handle(http.HandlerFunc(h.Logout)))
	mux.Handle("GET /dashboard", authenticate.Handle(http.HandlerFunc(h.Dashboard)))
	mux.Handle("PUT /promote/{public_id}", authenticate.Handle(http.HandlerFunc(h.Promote)))

	return logging.Handle(mux)
}
