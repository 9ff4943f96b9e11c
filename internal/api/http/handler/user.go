package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/idforge/identity-server/internal/apierrors"
	"github.com/idforge/identity-server/internal/logger"
	"github.com/idforge/identity-server/internal/model"
)

// RegistrationService defines the signup operation.
type RegistrationService interface {
	SignUp(ctx context.Context, req model.SignUpRequest) (model.SignUpResult, error)
}

// SessionService defines the signin operation.
type SessionService interface {
	SignIn(ctx context.Context, req model.SignInRequest) (model.SignInResult, error)
}

// User handles HTTP endpoints for the users resource.
type User struct {
	registrationService RegistrationService
	sessionService      SessionService
	contextManager      model.ContextManager
	logger              *logger.Logger
}

// NewUser creates a new User handler.
func NewUser(
	registrationService RegistrationService,
	sessionService SessionService,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *User {
	return &User{
		registrationService: registrationService,
		sessionService:      sessionService,
		contextManager:      contextManager,
		logger:              logger,
	}
}

type signUpRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"passwordConfirmation"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// signUpResponse structurally omits credential material; there is no
// field a serializer could leak.
type signUpResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	AccessToken string    `json:"access_token"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type signInResponse struct {
	AccessToken string `json:"access_token"`
}

type profileResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SignUp registers a new user.
func (h *User) SignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, apierrors.NewErrInvalidRequestBody())
		return
	}

	result, err := h.registrationService.SignUp(r.Context(), model.SignUpRequest{
		Name:                 req.Name,
		Email:                req.Email,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
	})
	if err != nil {
		h.logger.Error("User handler: signup failed",
			"email", req.Email,
			"error", err.Error())
		WriteError(w, err)
		return
	}

	h.logger.Info("User handler: signup completed",
		"id", result.ID)

	WriteJSON(w, http.StatusCreated, signUpResponse{
		ID:          result.ID.String(),
		Name:        result.Name,
		Email:       result.Email,
		AccessToken: result.AccessToken,
		CreatedAt:   result.CreatedAt,
		UpdatedAt:   result.UpdatedAt,
	})
}

// SignIn performs user login.
func (h *User) SignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, apierrors.NewErrInvalidRequestBody())
		return
	}

	result, err := h.sessionService.SignIn(r.Context(), model.SignInRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.logger.Error("User handler: signin failed",
			"email", req.Email,
			"error", err.Error())
		WriteError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, signInResponse{AccessToken: result.AccessToken})
}

// Me returns the profile resolved from the caller's token.
func (h *User) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.contextManager.GetPrincipalFromContext(r.Context())
	if !ok {
		WriteError(w, apierrors.NewErrUnauthenticated())
		return
	}

	WriteJSON(w, http.StatusOK, profileResponse{
		ID:    principal.ID.String(),
		Name:  principal.Name,
		Email: principal.Email,
	})
}
