package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/idforge/identity-server/internal/apierrors"
	"github.com/idforge/identity-server/internal/logger"
	"github.com/idforge/identity-server/internal/model"
	"github.com/idforge/identity-server/internal/validation"
)

// Session orchestrates signin: identity lookup, password verification,
// token issuance.
type Session struct {
	identityStore model.IdentityStore
	hasher        model.PasswordHasher
	auth          *Auth
	logger        *logger.Logger
}

// NewSession creates a new Session service.
func NewSession(identityStore model.IdentityStore, hasher model.PasswordHasher, auth *Auth, logger *logger.Logger) *Session {
	return &Session{
		identityStore: identityStore,
		hasher:        hasher,
		auth:          auth,
		logger:        logger,
	}
}

// SignIn authenticates an identity by email and password and returns a
// freshly issued token. Unknown emails and wrong passwords produce the
// identical error so responses cannot reveal which emails are registered.
func (s *Session) SignIn(ctx context.Context, req model.SignInRequest) (model.SignInResult, error) {
	s.logger.Debug("Session service: starting signin",
		"email", req.Email)

	if fields := validation.ValidateSignIn(req); len(fields) > 0 {
		return model.SignInResult{}, apierrors.NewErrValidation(fields)
	}

	identity, err := s.identityStore.GetByEmail(ctx, req.Email)
	if errors.Is(err, model.ErrNotFound) {
		s.logger.Info("Session service: unknown email",
			"email", req.Email)
		return model.SignInResult{}, apierrors.NewErrInvalidCredentials()
	}
	if err != nil {
		s.logger.Error("Session service: failed to get identity by email",
			"email", req.Email,
			"error", err.Error())
		return model.SignInResult{}, fmt.Errorf("failed to get identity by email: %w", err)
	}

	if !s.hasher.Verify(req.Password, identity.PasswordSalt, identity.PasswordHash) {
		s.logger.Info("Session service: password verification failed",
			"email", req.Email)
		return model.SignInResult{}, apierrors.NewErrInvalidCredentials()
	}

	accessToken, err := s.auth.IssueFor(identity)
	if err != nil {
		s.logger.Error("Session service: failed to issue token",
			"email", req.Email,
			"error", err.Error())
		return model.SignInResult{}, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("Session service: signin completed",
		"id", identity.ID)

	return model.SignInResult{AccessToken: accessToken}, nil
}
