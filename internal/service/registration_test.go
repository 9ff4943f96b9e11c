package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/idforge/identity-server/internal/apierrors"
	"github.com/idforge/identity-server/internal/mocks"
	"github.com/idforge/identity-server/internal/model"
	"github.com/idforge/identity-server/internal/testutil"
)

const testTopic = "identity.created"

func validSignUpRequest() model.SignUpRequest {
	return model.SignUpRequest{
		Name:                 "Ana",
		Email:                "ana@x.com",
		Password:             "secret1",
		PasswordConfirmation: "secret1",
	}
}

func newRegistration(
	identityStore *mocks.IdentityStore,
	hasher *mocks.PasswordHasher,
	tokenIssuer *mocks.TokenIssuer,
	publisher *mocks.EventPublisher,
) *Registration {
	log := testutil.MakeNoopLogger()
	auth := NewAuth(identityStore, tokenIssuer, log)
	return NewRegistration(identityStore, hasher, auth, publisher, testTopic, log)
}

func TestRegistration_SignUp(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		identityStore := new(mocks.IdentityStore)
		hasher := new(mocks.PasswordHasher)
		tokenIssuer := new(mocks.TokenIssuer)
		publisher := new(mocks.EventPublisher)

		salt := []byte("salt-bytes")
		hash := []byte("hash-bytes")
		id := uuid.New()
		now := time.Now().UTC().Truncate(time.Microsecond)
		created := model.Identity{
			ID:           id,
			Name:         "Ana",
			Email:        "ana@x.com",
			PasswordHash: hash,
			PasswordSalt: salt,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		identityStore.On("GetByEmail", ctx, "ana@x.com").Return(model.Identity{}, model.ErrNotFound)
		hasher.On("GenerateSalt").Return(salt, nil)
		hasher.On("Hash", "secret1", salt).Return(hash, nil)
		identityStore.On("Create", ctx, mock.MatchedBy(func(i model.Identity) bool {
			return i.ID != uuid.Nil &&
				i.Name == "Ana" &&
				i.Email == "ana@x.com" &&
				string(i.PasswordHash) == string(hash) &&
				string(i.PasswordSalt) == string(salt) &&
				i.CreatedAt.Equal(i.UpdatedAt)
		})).Return(created, nil)
		tokenIssuer.On("Issue", model.TokenClaims{Subject: id, Name: "Ana", Email: "ana@x.com"}).
			Return("access-token", nil)
		publisher.On("Publish", ctx, testTopic, model.IdentityCreated{
			ID:    id,
			Name:  "Ana",
			Email: "ana@x.com",
		}).Return(nil)

		s := newRegistration(identityStore, hasher, tokenIssuer, publisher)

		result, err := s.SignUp(ctx, validSignUpRequest())
		require.NoError(t, err)

		assert.Equal(t, model.SignUpResult{
			ID:          id,
			Name:        "Ana",
			Email:       "ana@x.com",
			AccessToken: "access-token",
			CreatedAt:   now,
			UpdatedAt:   now,
		}, result)

		identityStore.AssertExpectations(t)
		hasher.AssertExpectations(t)
		tokenIssuer.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		identityStore := new(mocks.IdentityStore)
		identityStore.On("GetByEmail", ctx, "ana@x.com").Return(model.Identity{
			ID:    uuid.New(),
			Email: "ana@x.com",
		}, nil)

		s := newRegistration(identityStore, new(mocks.PasswordHasher), new(mocks.TokenIssuer), new(mocks.EventPublisher))

		_, err := s.SignUp(ctx, validSignUpRequest())
		require.Error(t, err)

		var apiErr *apierrors.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "EMAIL_TAKEN", apiErr.Code)

		identityStore.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("password mismatch", func(t *testing.T) {
		identityStore := new(mocks.IdentityStore)
		hasher := new(mocks.PasswordHasher)
		identityStore.On("GetByEmail", ctx, "ana@x.com").Return(model.Identity{}, model.ErrNotFound)

		s := newRegistration(identityStore, hasher, new(mocks.TokenIssuer), new(mocks.EventPublisher))

		req := validSignUpRequest()
		req.PasswordConfirmation = "secret2"

		_, err := s.SignUp(ctx, req)
		require.Error(t, err)

		var apiErr *apierrors.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "PASSWORD_MISMATCH", apiErr.Code)

		hasher.AssertNotCalled(t, "GenerateSalt")
		identityStore.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("validation failure skips store", func(t *testing.T) {
		identityStore := new(mocks.IdentityStore)

		s := newRegistration(identityStore, new(mocks.PasswordHasher), new(mocks.TokenIssuer), new(mocks.EventPublisher))

		_, err := s.SignUp(ctx, model.SignUpRequest{Email: "ana@x.com"})
		require.Error(t, err)

		var apiErr *apierrors.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "VALIDATION_FAILED", apiErr.Code)
		assert.NotEmpty(t, apiErr.Fields)

		identityStore.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
	})

	t.Run("concurrent signup loses race on create", func(t *testing.T) {
		identityStore := new(mocks.IdentityStore)
		hasher := new(mocks.PasswordHasher)

		identityStore.On("GetByEmail", ctx, "ana@x.com").Return(model.Identity{}, model.ErrNotFound)
		hasher.On("GenerateSalt").Return([]byte("salt"), nil)
		hasher.On("Hash", "secret1", []byte("salt")).Return([]byte("hash"), nil)
		identityStore.On("Create", ctx, mock.Anything).Return(model.Identity{}, model.ErrEmailTaken)

		s := newRegistration(identityStore, hasher, new(mocks.TokenIssuer), new(mocks.EventPublisher))

		_, err := s.SignUp(ctx, validSignUpRequest())
		require.Error(t, err)

		var apiErr *apierrors.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "EMAIL_TAKEN", apiErr.Code)
	})

	t.Run("publish failure does not fail signup", func(t *testing.T) {
		identityStore := new(mocks.IdentityStore)
		hasher := new(mocks.PasswordHasher)
		tokenIssuer := new(mocks.TokenIssuer)
		publisher := new(mocks.EventPublisher)

		created := model.Identity{ID: uuid.New(), Name: "Ana", Email: "ana@x.com"}

		identityStore.On("GetByEmail", ctx, "ana@x.com").Return(model.Identity{}, model.ErrNotFound)
		hasher.On("GenerateSalt").Return([]byte("salt"), nil)
		hasher.On("Hash", "secret1", []byte("salt")).Return([]byte("hash"), nil)
		identityStore.On("Create", ctx, mock.Anything).Return(created, nil)
		tokenIssuer.On("Issue", mock.Anything).Return("access-token", nil)
		publisher.On("Publish", ctx, testTopic, mock.Anything).Return(assert.AnError)

		s := newRegistration(identityStore, hasher, tokenIssuer, publisher)

		result, err := s.SignUp(ctx, validSignUpRequest())
		require.NoError(t, err)
		assert.Equal(t, "access-token", result.AccessToken)

		publisher.AssertExpectations(t)
	})
}

func TestRegistration_SignUp_DuplicateEmailCheckedBeforeMismatch(t *testing.T) {
	ctx := context.Background()

	identityStore := new(mocks.IdentityStore)
	identityStore.On("GetByEmail", ctx, "ana@x.com").Return(model.Identity{
		ID:    uuid.New(),
		Email: "ana@x.com",
	}, nil)

	s := newRegistration(identityStore, new(mocks.PasswordHasher), new(mocks.TokenIssuer), new(mocks.EventPublisher))

	req := validSignUpRequest()
	req.PasswordConfirmation = "secret2"

	_, err := s.SignUp(ctx, req)
	require.Error(t, err)

	var apiErr *apierrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "EMAIL_TAKEN", apiErr.Code)
}

func TestRegistration_SignUp_EmailCaseSensitive(t *testing.T) {
	ctx := context.Background()

	identityStore := new(mocks.IdentityStore)
	hasher := new(mocks.PasswordHasher)
	tokenIssuer := new(mocks.TokenIssuer)
	publisher := new(mocks.EventPublisher)

	created := model.Identity{ID: uuid.New(), Name: "Ana", Email: "Ana@X.com"}

	// The lookup must carry the email exactly as submitted, no folding.
	identityStore.On("GetByEmail", ctx, "Ana@X.com").Return(model.Identity{}, model.ErrNotFound)
	hasher.On("GenerateSalt").Return([]byte("salt"), nil)
	hasher.On("Hash", "secret1", []byte("salt")).Return([]byte("hash"), nil)
	identityStore.On("Create", ctx, mock.MatchedBy(func(i model.Identity) bool {
		return i.Email == "Ana@X.com"
	})).Return(created, nil)
	tokenIssuer.On("Issue", mock.Anything).Return("access-token", nil)
	publisher.On("Publish", ctx, testTopic, mock.Anything).Return(nil)

	s := newRegistration(identityStore, hasher, tokenIssuer, publisher)

	req := validSignUpRequest()
	req.Email = "Ana@X.com"

	_, err := s.SignUp(ctx, req)
	require.NoError(t, err)

	identityStore.AssertExpectations(t)
}
