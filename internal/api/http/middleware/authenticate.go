package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/idforge/identity-server/internal/apierrors"
	"github.com/idforge/identity-server/internal/api/http/handler"
	"github.com/idforge/identity-server/internal/logger"
	"github.com/idforge/identity-server/internal/model"
)

// AuthService resolves decoded token claims into a live principal.
type AuthService interface {
	Resolve(ctx context.Context, claims model.TokenClaims) (model.Principal, error)
}

// Authenticate validates bearer tokens and injects the resolved principal
// into the request context.
type Authenticate struct {
	tokenIssuer    model.TokenIssuer
	authService    AuthService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(
	tokenIssuer model.TokenIssuer,
	authService AuthService,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Authenticate {
	return &Authenticate{
		tokenIssuer:    tokenIssuer,
		authService:    authService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Handle parses the Authorization header, validates the token, resolves
// the principal and passes the request on with the principal in context.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, err := m.authenticate(r.Context(), bearerToken(r))
		if err != nil {
			handler.WriteError(w, err)
			return
		}

		ctx := m.contextManager.SetPrincipalToContext(r.Context(), principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Authenticate) authenticate(ctx context.Context, tokenString string) (model.Principal, error) {
	if tokenString == "" {
		return model.Principal{}, apierrors.NewErrMissingAuthorizationToken()
	}

	claims, err := m.tokenIssuer.Decode(tokenString)
	if err != nil {
		// The decode error kind (malformed, expired, bad signature) is
		// for logs only; the caller sees a uniform rejection.
		m.logger.Info("Authenticate middleware: token rejected",
			"error", err.Error())
		return model.Principal{}, apierrors.NewErrInvalidAuthorizationToken()
	}

	principal, err := m.authService.Resolve(ctx, claims)
	if err != nil {
		return model.Principal{}, err
	}

	return principal, nil
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	return strings.TrimPrefix(authHeader, "Bearer ")
}
