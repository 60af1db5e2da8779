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

type AutoReviewRepository struct {
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewAutoReviewRepository(log *slog.Logger) *AutoReviewRepository {
	return &AutoReviewRepository{log: log, sq: builder()}
}

var autoReviewColumns = []string{"ar.id", "ar.task_id", "ar.user_id", "ar.start_time", "ar.end_time"}

func (r *AutoReviewRepository) get(ctx context.Context, ext sqlx.ExtContext, op string, qb sq.SelectBuilder, what string) (*domain.AutoReview, error) {
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var ar domain.AutoReview
	if err := sqlx.GetContext(ctx, ext, &ar, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: %s", op, apperrors.ErrNotFound, what)
		}

		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return &ar, nil
}

func (r *AutoReviewRepository) GetForUser(ctx context.Context, ext sqlx.ExtContext, taskID int64, userID string) (*domain.AutoReview, error) {
	const op = "internal.repository.postgres.auto_reviews.GetForUser"

	qb := r.sq.Select(autoReviewColumns...).
		From("auto_reviews ar").
		Where(sq.Eq{"ar.task_id": taskID, "ar.user_id": userID})

	return r.get(ctx, ext, op, qb, fmt.Sprintf("auto-review of task %d for '%s'", taskID, userID))
}

func (r *AutoReviewRepository) GetShown(ctx context.Context, ext sqlx.ExtContext, userID string) (*domain.AutoReview, error) {
	const op = "internal.repository.postgres.auto_reviews.GetShown"

	qb := r.sq.Select(autoReviewColumns...).
		From("auto_reviews ar").
		Where(sq.Eq{"ar.user_id": userID}).
		Where(sq.NotEq{"ar.start_time": nil}).
		Where(sq.Eq{"ar.end_time": nil}).
		OrderBy("ar.start_time", "ar.id").
		Limit(1)

	return r.get(ctx, ext, op, qb, fmt.Sprintf("shown auto-review for '%s'", userID))
}

func (r *AutoReviewRepository) NextUnseen(ctx context.Context, tx *sqlx.Tx, userID string) (*domain.AutoReview, error) {
	const op = "internal.repository.postgres.auto_reviews.NextUnseen"

	qb := r.sq.Select(autoReviewColumns...).
		From("auto_reviews ar").
		Join("tasks t ON t.id = ar.task_id").
		Join("projects p ON p.id = t.project_id").
		Where(sq.Eq{"ar.user_id": userID, "ar.start_time": nil}).
		Where(sq.GtOrEq{"p.priority": 0}).
		OrderBy("p.priority DESC", "p.id", "ar.task_id").
		Limit(1).
		Suffix("FOR UPDATE OF ar")

	return r.get(ctx, tx, op, qb, fmt.Sprintf("unseen auto-review for '%s'", userID))
}

func (r *AutoReviewRepository) Save(ctx context.Context, tx *sqlx.Tx, ar *domain.AutoReview) error {
	const op = "internal.repository.postgres.auto_reviews.Save"

	query, args, err := r.sq.Update("auto_reviews").
		Set("start_time", ar.StartTime).
		Set("end_time", ar.EndTime).
		Where(sq.Eq{"id": ar.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		if pqCode(err) == checkViolation {
			return apperrors.NewValidationError("auto-review cannot be acknowledged before it is shown")
		}

		return fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w: auto-review %d", op, apperrors.ErrNotFound, ar.ID)
	}

	return nil
}

func (r *AutoReviewRepository) EnsureAll(ctx context.Context, tx *sqlx.Tx) (int64, error) {
	const op = "internal.repository.postgres.auto_reviews.EnsureAll"

	missing := sq.Select("DISTINCT t.id", "gm.user_id").
		From("tasks t").
		Join("projects p ON p.id = t.project_id").
		Join("project_annotators pa ON pa.project_id = p.id").
		Join("group_members gm ON gm.group_id = pa.group_id").
		Where("p.auto_review").
		Where(sq.GtOrEq{"p.priority": 0})

	query, args, err := r.sq.Insert("auto_reviews").
		Columns("task_id", "user_id").
		Select(missing).
		Suffix("ON CONFLICT (task_id, user_id) DO NOTHING").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: failed to get affected rows: %w", op, err)
	}

	return n, nil
}
