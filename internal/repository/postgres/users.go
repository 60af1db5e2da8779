package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/clickwork/clickwork/internal/apperrors"
	"github.com/clickwork/clickwork/internal/domain"
	"github.com/jmoiron/sqlx"
)

type UserRepository struct {
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewUserRepository(log *slog.Logger) *UserRepository {
	return &UserRepository{log: log, sq: builder()}
}

func (r *UserRepository) GetUser(ctx context.Context, ext sqlx.ExtContext, userID string) (*domain.User, error) {
	const op = "internal.repository.postgres.users.GetUser"

	return r.getUser(ctx, ext, op, userID, "")
}

func (r *UserRepository) LockUser(ctx context.Context, tx *sqlx.Tx, userID string) (*domain.User, error) {
	const op = "internal.repository.postgres.users.LockUser"

	return r.getUser(ctx, tx, op, userID, "FOR UPDATE")
}

func (r *UserRepository) getUser(ctx context.Context, ext sqlx.ExtContext, op, userID, suffix string) (*domain.User, error) {
	qb := r.sq.Select("id", "username", "is_superuser", "is_active").
		From("users").
		Where(sq.Eq{"id": userID})

	if suffix != "" {
		qb = qb.Suffix(suffix)
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var user domain.User
	if err := sqlx.GetContext(ctx, ext, &user, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: user with id '%s'", op, apperrors.ErrNotFound, userID)
		}

		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return &user, nil
}
