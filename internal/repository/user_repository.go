package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/nationsapi/nations-service/internal/domain"
)

// UserRepository defines persistence access for API principals.
type UserRepository interface {
	Create(ctx context.Context, principal *domain.Principal) error
	GetByEmail(ctx context.Context, email string) (*domain.Principal, error)
}

type userRepository struct {
	db Querier
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(db Querier) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, principal *domain.Principal) error {
	const query = `
        INSERT INTO users (email, password_hash, authorities)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query,
		principal.Email,
		principal.PasswordHash,
		principal.Authorities,
	).Scan(&principal.ID, &principal.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return dataLayer("create user", err)
	}
	return nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.Principal, error) {
	const query = `
        SELECT id, email, password_hash, authorities, created_at
        FROM users WHERE email=$1`

	var principal domain.Principal
	if err := r.db.QueryRow(ctx, query, email).Scan(
		&principal.ID,
		&principal.Email,
		&principal.PasswordHash,
		&principal.Authorities,
		&principal.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, dataLayer("get user by email", err)
	}
	return &principal, nil
}
