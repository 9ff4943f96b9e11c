package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/idforge/identity-server/internal/apierrors"
	"github.com/idforge/identity-server/internal/logger"
	"github.com/idforge/identity-server/internal/model"
	"github.com/idforge/identity-server/internal/validation"
)

// Registration orchestrates signup: uniqueness check, password
// confirmation, hashing, persistence, token issuance, and the registration
// event.
type Registration struct {
	identityStore model.IdentityStore
	hasher        model.PasswordHasher
	auth          *Auth
	publisher     model.EventPublisher
	topic         string
	logger        *logger.Logger
}

// NewRegistration creates a new Registration service.
func NewRegistration(
	identityStore model.IdentityStore,
	hasher model.PasswordHasher,
	auth *Auth,
	publisher model.EventPublisher,
	topic string,
	logger *logger.Logger,
) *Registration {
	return &Registration{
		identityStore: identityStore,
		hasher:        hasher,
		auth:          auth,
		publisher:     publisher,
		topic:         topic,
		logger:        logger,
	}
}

// SignUp registers a new identity and returns its public fields with a
// freshly issued token.
func (s *Registration) SignUp(ctx context.Context, req model.SignUpRequest) (model.SignUpResult, error) {
	s.logger.Debug("Registration service: starting signup",
		"email", req.Email)

	if fields := validation.ValidateSignUp(req); len(fields) > 0 {
		return model.SignUpResult{}, apierrors.NewErrValidation(fields)
	}

	// The duplicate-email lookup runs before the confirmation check. The
	// order is observable through which error a doubly-bad request gets
	// and is pinned by tests.
	existing, err := s.identityStore.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		s.logger.Error("Registration service: failed to get identity by email",
			"email", req.Email,
			"error", err.Error())
		return model.SignUpResult{}, fmt.Errorf("failed to get identity by email: %w", err)
	}
	if existing.ID != uuid.Nil {
		s.logger.Info("Registration service: email already taken",
			"email", req.Email)
		return model.SignUpResult{}, apierrors.NewErrEmailIsTaken(req.Email)
	}

	if req.Password != req.PasswordConfirmation {
		return model.SignUpResult{}, apierrors.NewErrPasswordMismatch()
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		s.logger.Error("Registration service: failed to generate salt",
			"email", req.Email,
			"error", err.Error())
		return model.SignUpResult{}, fmt.Errorf("failed to generate salt: %w", err)
	}

	hash, err := s.hasher.Hash(req.Password, salt)
	if err != nil {
		s.logger.Error("Registration service: failed to hash password",
			"email", req.Email,
			"error", err.Error())
		return model.SignUpResult{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	identity := model.Identity{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		PasswordSalt: salt,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.identityStore.Create(ctx, identity)
	if errors.Is(err, model.ErrEmailTaken) {
		// Lost the race against a concurrent signup for the same email;
		// the store's unique constraint is the arbiter.
		s.logger.Info("Registration service: email taken by concurrent signup",
			"email", req.Email)
		return model.SignUpResult{}, apierrors.NewErrEmailIsTaken(req.Email)
	}
	if err != nil {
		s.logger.Error("Registration service: failed to create identity",
			"email", req.Email,
			"error", err.Error())
		return model.SignUpResult{}, fmt.Errorf("failed to create identity: %w", err)
	}

	accessToken, err := s.auth.IssueFor(created)
	if err != nil {
		s.logger.Error("Registration service: failed to issue token",
			"email", req.Email,
			"error", err.Error())
		return model.SignUpResult{}, fmt.Errorf("failed to issue token: %w", err)
	}

	s.publish(ctx, created)

	s.logger.Info("Registration service: signup completed",
		"id", created.ID,
		"email", created.Email)

	return model.SignUpResult{
		ID:          created.ID,
		Name:        created.Name,
		Email:       created.Email,
		AccessToken: accessToken,
		CreatedAt:   created.CreatedAt,
		UpdatedAt:   created.UpdatedAt,
	}, nil
}

// publish emits the registration event after the identity is committed.
// Delivery is at-most-once: a failed publish is logged and never turns a
// successful signup into an error response.
func (s *Registration) publish(ctx context.Context, identity model.Identity) {
	event := model.IdentityCreated{
		ID:    identity.ID,
		Name:  identity.Name,
		Email: identity.Email,
	}

	if err := s.publisher.Publish(ctx, s.topic, event); err != nil {
		s.logger.Error("Registration service: failed to publish registration event",
			"id", identity.ID,
			"topic", s.topic,
			"error", err.Error())
	}
}
