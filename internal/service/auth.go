package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/idforge/identity-server/internal/apierrors"
	"github.com/idforge/identity-server/internal/logger"
	"github.com/idforge/identity-server/internal/model"
)

// Auth issues tokens for identities and resolves decoded token claims back
// into live identities. It is stateless: every call depends only on the
// current store contents.
type Auth struct {
	identityStore model.IdentityStore
	tokenIssuer   model.TokenIssuer
	logger        *logger.Logger
}

// NewAuth creates a new Auth service.
func NewAuth(identityStore model.IdentityStore, tokenIssuer model.TokenIssuer, logger *logger.Logger) *Auth {
	return &Auth{
		identityStore: identityStore,
		tokenIssuer:   tokenIssuer,
		logger:        logger,
	}
}

// IssueFor builds claims from the identity's current profile and signs them.
func (a *Auth) IssueFor(identity model.Identity) (string, error) {
	tokenString, err := a.tokenIssuer.Issue(model.TokenClaims{
		Subject: identity.ID,
		Name:    identity.Name,
		Email:   identity.Email,
	})
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	return tokenString, nil
}

// Resolve maps decoded token claims to the identity they were minted for.
// A token whose subject no longer exists is rejected: tokens for deleted
// accounts keep circulating until they expire and must not authenticate.
func (a *Auth) Resolve(ctx context.Context, claims model.TokenClaims) (model.Principal, error) {
	identity, err := a.identityStore.GetByID(ctx, claims.Subject)
	if errors.Is(err, model.ErrNotFound) {
		a.logger.Info("Auth service: token subject has no identity",
			"subject", claims.Subject)
		return model.Principal{}, apierrors.NewErrUnauthenticated()
	}
	if err != nil {
		a.logger.Error("Auth service: failed to get identity by id",
			"subject", claims.Subject,
			"error", err.Error())
		return model.Principal{}, fmt.Errorf("failed to get identity by id: %w", err)
	}

	return model.Principal{
		ID:    identity.ID,
		Name:  identity.Name,
		Email: identity.Email,
	}, nil
}
