package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/Prabhugems/AMASI-management-sub013/internal/domain"
	"github.com/Prabhugems/AMASI-management-sub013/internal/domain/vo"
)

type AuthLoginRepository struct {
	db *sqlx.DB
}

type staffAuthRow struct {
	ID           string `db:"id"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	Role         string `db:"role"`
	Status       string `db:"status"`
}

func NewAuthLoginRepository(db *sqlx.DB) *AuthLoginRepository {
	return &AuthLoginRepository{db: db}
}

// GetUserAuthByEmail looks up an active staff account. A missing or
// suspended account reports ErrInvalidCredentials so callers cannot
// distinguish the two.
func (r *AuthLoginRepository) GetUserAuthByEmail(ctx context.Context, email string) (domain.UserAuth, error) {
	normalizedEmail := strings.TrimSpace(strings.ToLower(email))
	if normalizedEmail == "" {
		return domain.UserAuth{}, vo.ErrInvalidCredentials
	}

	const query = `
		SELECT id::text AS id, email, password_hash, role, status
		FROM staff_users
		WHERE lower(email) = $1
		LIMIT 1
	`

	var row staffAuthRow
	if err := r.db.GetContext(ctx, &row, query, normalizedEmail); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.UserAuth{}, vo.ErrInvalidCredentials
		}
		return domain.UserAuth{}, fmt.Errorf("repository: get staff auth by email failed: %w", err)
	}

	if row.Status != "active" {
		return domain.UserAuth{}, vo.ErrInvalidCredentials
	}

	return domain.UserAuth(row), nil
}
