package model

import "github.com/google/uuid"

// TokenClaims is the payload embedded in a bearer token.
type TokenClaims struct {
	Subject uuid.UUID
	Name    string
	Email   string
}

// TokenIssuer signs and decodes bearer tokens.
type TokenIssuer interface {
	Issue(claims TokenClaims) (string, error)
	Decode(tokenString string) (TokenClaims, error)
}
