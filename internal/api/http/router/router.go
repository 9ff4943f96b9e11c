package router

import (
	"net/http"

	"github.com/idforge/identity-server/internal/api/http/handler"
	"github.com/idforge/identity-server/internal/api/http/middleware"
	"github.com/idforge/identity-server/internal/logger"
	"github.com/idforge/identity-server/internal/model"
	"github.com/idforge/identity-server/internal/service"
)

// Router wires the users endpoints and middleware onto an http.ServeMux.
type Router struct {
	registrationService *service.Registration
	sessionService      *service.Session
	authService         *service.Auth
	tokenIssuer         model.TokenIssuer
	contextManager      model.ContextManager
	logger              *logger.Logger
}

// New creates a new Router instance.
func New(
	registrationService *service.Registration,
	sessionService *service.Session,
	authService *service.Auth,
	tokenIssuer model.TokenIssuer,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		registrationService: registrationService,
		sessionService:      sessionService,
		authService:         authService,
		tokenIssuer:         tokenIssuer,
		contextManager:      contextManager,
		logger:              logger,
	}
}

// Register builds the HTTP handler: request logging on every route, bearer
// authentication on the profile route only.
func (r *Router) Register() http.Handler {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokenIssuer, r.authService, r.contextManager, r.logger)

	userHandler := handler.NewUser(r.registrationService, r.sessionService, r.contextManager, r.logger)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/users/signup", userHandler.SignUp)
	mux.HandleFunc("POST /v1/users/signin", userHandler.SignIn)
	mux.Handle("GET /v1/users/me", authenticate.Handle(http.HandlerFunc(userHandler.Me)))

	return logging.Handle(mux)
}
