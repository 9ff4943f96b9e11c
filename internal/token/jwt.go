package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/idforge/identity-server/internal/model"
)

// Claims represents JWT claims carrying the identity's public profile.
// The registered subject claim holds the identity ID.
type Claims struct {
	jwt.RegisteredClaims
	Name  string `json:"name"`
	Email string `json:"email"`
}

// JWT implements model.TokenIssuer backed by symmetric HMAC.
type JWT struct {
	secretKey string
	accessTTL time.Duration
}

// NewJWT creates a new JWT token issuer with the provided secret key and
// token lifetime.
func NewJWT(secretKey string, accessTTL time.Duration) *JWT {
	return &JWT{secretKey: secretKey, accessTTL: accessTTL}
}

// Issue signs the claims into a bearer token. iat and exp are set at issue
// time, so two tokens for identical claims differ once the clock advances.
func (j *JWT) Issue(claims model.TokenClaims) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.Subject.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.accessTTL)),
		},
		Name:  claims.Name,
		Email: claims.Email,
	})

	tokenString, err := t.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenString, nil
}

// Decode verifies signature and expiry and extracts the claims. Failures
// carry the model token error kinds so malformed, expired, and tampered
// tokens stay distinguishable in logs and tests.
func (j *JWT) Decode(tokenString string) (model.TokenClaims, error) {
	claims := &Claims{}
	t, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return model.TokenClaims{}, fmt.Errorf("failed to parse access token: %w", decodeError(err))
	}
	if !t.Valid {
		return model.TokenClaims{}, model.ErrTokenSignatureInvalid
	}

	subject, err := uuid.Parse(claims.Subject)
	if err != nil {
		return model.TokenClaims{}, fmt.Errorf("failed to parse token subject: %w", model.ErrTokenMalformed)
	}

	return model.TokenClaims{
		Subject: subject,
		Name:    claims.Name,
		Email:   claims.Email,
	}, nil
}

func decodeError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return model.ErrTokenMalformed
	case errors.Is(err, jwt.ErrTokenExpired):
		return model.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return model.ErrTokenSignatureInvalid
	default:
		return err
	}
}
