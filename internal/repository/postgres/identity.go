package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/idforge/identity-server/internal/model"
)

var _ model.IdentityStore = (*IdentityRepository)(nil)

type IdentityRepository struct {
	db DB
}

func NewIdentityRepository(db DB) *IdentityRepository {
	return &IdentityRepository{
		db: db,
	}
}

// GetByEmail looks an identity up by exact email match. Lookups are
// case-sensitive; the stored value is compared as submitted.
func (r *IdentityRepository) GetByEmail(ctx context.Context, email string) (model.Identity, error) {
	var identity model.Identity
	query := `SELECT id, name, email, password_hash, password_salt, created_at, updated_at
			  FROM identities WHERE email = $1`

	err := r.db.QueryRow(ctx, query, email).Scan(
		&identity.ID, &identity.Name, &identity.Email, &identity.PasswordHash, &identity.PasswordSalt,
		&identity.CreatedAt, &identity.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Identity{}, model.ErrNotFound
		}
		return model.Identity{}, fmt.Errorf("failed to get identity by email: %w", err)
	}

	return identity, nil
}

func (r *IdentityRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Identity, error) {
	var identity model.Identity
	query := `SELECT id, name, email, password_hash, password_salt, created_at, updated_at
			  FROM identities WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&identity.ID, &identity.Name, &identity.Email, &identity.PasswordHash, &identity.PasswordSalt,
		&identity.CreatedAt, &identity.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Identity{}, model.ErrNotFound
		}
		return model.Identity{}, fmt.Errorf("failed to get identity by id: %w", err)
	}

	return identity, nil
}

// Create inserts a new identity. The unique index on email is the arbiter
// for concurrent signups; a violation surfaces as model.ErrEmailTaken.
func (r *IdentityRepository) Create(ctx context.Context, identity model.Identity) (model.Identity, error) {
	query := `INSERT INTO identities (id, name, email, password_hash, password_salt, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id, name, email, password_hash, password_salt, created_at, updated_at`

	var saved model.Identity
	err := r.db.QueryRow(ctx, query,
		identity.ID, identity.Name, identity.Email, identity.PasswordHash, identity.PasswordSalt,
		identity.CreatedAt, identity.UpdatedAt,
	).Scan(
		&saved.ID, &saved.Name, &saved.Email, &saved.PasswordHash, &saved.PasswordSalt,
		&saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return model.Identity{}, model.ErrEmailTaken
		}
		return model.Identity{}, fmt.Errorf("failed to create identity: %w", err)
	}

	return saved, nil
}
