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

type ReviewRepository struct {
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewReviewRepository(log *slog.Logger) *ReviewRepository {
	return &ReviewRepository{log: log, sq: builder()}
}

func (r *ReviewRepository) openFor(userID string, columns ...string) sq.SelectBuilder {
	return r.sq.Select(columns...).
		From("reviews rv").
		Join("responses r ON r.id = rv.response_id").
		Where(sq.Eq{"r.user_id": userID, "rv.complete": false})
}

func (r *ReviewRepository) NextOpenReview(ctx context.Context, ext sqlx.ExtContext, userID string) (*domain.Review, error) {
	const op = "internal.repository.postgres.reviews.NextOpenReview"

	query, args, err := r.openFor(userID, "rv.id", "rv.response_id", "rv.comment", "rv.created_at", "rv.complete").
		OrderBy("rv.created_at", "rv.id").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var review domain.Review
	if err := sqlx.GetContext(ctx, ext, &review, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: open review for '%s'", op, apperrors.ErrNotFound, userID)
		}

		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return &review, nil
}

func (r *ReviewRepository) CountOpenReviews(ctx context.Context, ext sqlx.ExtContext, userID string) (int, error) {
	const op = "internal.repository.postgres.reviews.CountOpenReviews"

	query, args, err := r.openFor(userID, "COUNT(*)").ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var n int
	if err := sqlx.GetContext(ctx, ext, &n, query, args...); err != nil {
		return 0, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return n, nil
}

func (r *ReviewRepository) GetReview(ctx context.Context, ext sqlx.ExtContext, reviewID int64) (*domain.ReviewDetail, error) {
	const op = "internal.repository.postgres.reviews.GetReview"

	query, args, err := r.sq.Select(
		"rv.id", "rv.response_id", "rv.comment", "rv.created_at", "rv.complete",
		"r.task_id", "r.user_id AS response_user_id",
	).
		From("reviews rv").
		Join("responses r ON r.id = rv.response_id").
		Where(sq.Eq{"rv.id": reviewID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var review domain.ReviewDetail
	if err := sqlx.GetContext(ctx, ext, &review, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: review %d", op, apperrors.ErrNotFound, reviewID)
		}

		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return &review, nil
}

func (r *ReviewRepository) CreateReview(ctx context.Context, tx *sqlx.Tx, responseID int64, comment string) (*domain.Review, error) {
	const op = "internal.repository.postgres.reviews.CreateReview"

	query, args, err := r.sq.Insert("reviews").
		Columns("response_id", "comment").
		Values(responseID, comment).
		Suffix(`ON CONFLICT (response_id) DO UPDATE
			SET comment = EXCLUDED.comment, created_at = NOW(), complete = FALSE
			RETURNING id, response_id, comment, created_at, complete`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	var review domain.Review
	if err := tx.QueryRowxContext(ctx, query, args...).StructScan(&review); err != nil {
		if pqCode(err) == foreignKeyViolation {
			return nil, fmt.Errorf("%s: %w: response %d", op, apperrors.ErrNotFound, responseID)
		}

		return nil, fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return &review, nil
}

func (r *ReviewRepository) CompleteReview(ctx context.Context, tx *sqlx.Tx, reviewID int64) error {
	const op = "internal.repository.postgres.reviews.CompleteReview"

	query, args, err := r.sq.Update("reviews").
		Set("complete", true).
		Where(sq.Eq{"id": reviewID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w: review %d", op, apperrors.ErrNotFound, reviewID)
	}

	return nil
}
