package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/clickwork/clickwork/internal/apperrors"
	"github.com/clickwork/clickwork/internal/domain"
	"github.com/jmoiron/sqlx"
)

type ClaimRepository struct {
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewClaimRepository(log *slog.Logger) *ClaimRepository {
	return &ClaimRepository{log: log, sq: builder()}
}

func (r *ClaimRepository) GetClaimByUser(ctx context.Context, ext sqlx.ExtContext, userID string) (*domain.WorkInProgress, error) {
	const op = "internal.repository.postgres.claims.GetClaimByUser"

	query, args, err := r.sq.Select("id", "task_id", "user_id", "start_time").
		From("work_in_progress").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var claim domain.WorkInProgress
	if err := sqlx.GetContext(ctx, ext, &claim, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: claim of '%s'", op, apperrors.ErrNotFound, userID)
		}

		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return &claim, nil
}

func (r *ClaimRepository) CreateClaim(ctx context.Context, tx *sqlx.Tx, taskID int64, userID string, start time.Time) (*domain.WorkInProgress, error) {
	const op = "internal.repository.postgres.claims.CreateClaim"

	query, args, err := r.sq.Insert("work_in_progress").
		Columns("task_id", "user_id", "start_time").
		Values(taskID, userID, start).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	claim := &domain.WorkInProgress{TaskID: taskID, UserID: userID, StartTime: start}
	if err := tx.QueryRowxContext(ctx, query, args...).Scan(&claim.ID); err != nil {
		switch pqCode(err) {
		case uniqueViolation:
			return nil, fmt.Errorf("%s: %w: task %d for '%s'", op, apperrors.ErrConcurrencyConflict, taskID, userID)
		case foreignKeyViolation:
			return nil, fmt.Errorf("%s: %w: task %d or user '%s'", op, apperrors.ErrNotFound, taskID, userID)
		}

		return nil, fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return claim, nil
}

func (r *ClaimRepository) RefreshClaim(ctx context.Context, tx *sqlx.Tx, claimID int64, start time.Time) error {
	const op = "internal.repository.postgres.claims.RefreshClaim"

	query, args, err := r.sq.Update("work_in_progress").
		Set("start_time", start).
		Where(sq.Eq{"id": claimID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	return nil
}

func (r *ClaimRepository) DeleteClaim(ctx context.Context, tx *sqlx.Tx, claimID int64) error {
	const op = "internal.repository.postgres.claims.DeleteClaim"

	query, args, err := r.sq.Delete("work_in_progress").
		Where(sq.Eq{"id": claimID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build delete query: %w", op, err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: failed to execute delete: %w", op, err)
	}

	return nil
}

func (r *ClaimRepository) DeleteClaimByUser(ctx context.Context, tx *sqlx.Tx, userID string) (bool, error) {
	const op = "internal.repository.postgres.claims.DeleteClaimByUser"

	query, args, err := r.sq.Delete("work_in_progress").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%s: failed to build delete query: %w", op, err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%s: failed to execute delete: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: failed to get affected rows: %w", op, err)
	}

	return n > 0, nil
}

func (r *ClaimRepository) ListClaimants(ctx context.Context, ext sqlx.ExtContext, taskID int64) ([]string, error) {
	const op = "internal.repository.postgres.claims.ListClaimants"

	query, args, err := r.sq.Select("user_id").
		From("work_in_progress").
		Where(sq.Eq{"task_id": taskID}).
		OrderBy("user_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	claimants := []string{}
	if err := sqlx.SelectContext(ctx, ext, &claimants, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return claimants, nil
}

func (r *ClaimRepository) ListClaimOwners(ctx context.Context, ext sqlx.ExtContext, taskID int64) ([]string, error) {
	const op = "internal.repository.postgres.claims.ListClaimOwners"

	query, args, err := r.sq.Select("u.username").
		From("work_in_progress w").
		Join("users u ON u.id = w.user_id").
		Where(sq.Eq{"w.task_id": taskID}).
		OrderBy("w.start_time", "w.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	owners := []string{}
	if err := sqlx.SelectContext(ctx, ext, &owners, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return owners, nil
}

func (r *ClaimRepository) ListClaims(ctx context.Context, ext sqlx.ExtContext, adminID string) ([]domain.ClaimInfo, error) {
	const op = "internal.repository.postgres.claims.ListClaims"

	qb := r.sq.Select(
		"w.id", "w.task_id", "w.user_id", "u.username", "t.project_id",
		"p.title AS project_title", "w.start_time",
	).
		From("work_in_progress w").
		Join("users u ON u.id = w.user_id").
		Join("tasks t ON t.id = w.task_id").
		Join("projects p ON p.id = t.project_id").
		OrderBy("w.start_time DESC", "w.id DESC")

	if adminID != "" {
		qb = qb.Where(sq.Eq{"p.admin_id": adminID})
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	claims := []domain.ClaimInfo{}
	if err := sqlx.SelectContext(ctx, ext, &claims, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return claims, nil
}

func (r *ClaimRepository) DeleteClaims(ctx context.Context, tx *sqlx.Tx, claimIDs []int64, adminID string) (int, error) {
	const op = "internal.repository.postgres.claims.DeleteClaims"

	if len(claimIDs) == 0 {
		return 0, nil
	}

	qb := r.sq.Delete("work_in_progress w").
		Where(sq.Eq{"w.id": claimIDs})

	if adminID != "" {
		qb = qb.Where(sq.Expr(`EXISTS (SELECT 1 FROM tasks t JOIN projects p ON p.id = t.project_id
			WHERE t.id = w.task_id AND p.admin_id = ?)`, adminID))
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: failed to build delete query: %w", op, err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%s: failed to execute delete: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: failed to get affected rows: %w", op, err)
	}

	r.log.Debug("claims deleted", slog.String("op", op), slog.Int64("count", n))

	return int(n), nil
}
