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

type ProjectRepository struct {
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewProjectRepository(log *slog.Logger) *ProjectRepository {
	return &ProjectRepository{log: log, sq: builder()}
}

var projectColumns = []string{
	"id", "title", "type", "admin_id", "priority",
	"annotator_count", "needs_fresh_eyes", "auto_review",
}

func (r *ProjectRepository) GetProject(ctx context.Context, ext sqlx.ExtContext, projectID int64) (*domain.Project, error) {
	const op = "internal.repository.postgres.projects.GetProject"

	query, args, err := r.sq.Select(projectColumns...).
		From("projects").
		Where(sq.Eq{"id": projectID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var p domain.Project
	if err := sqlx.GetContext(ctx, ext, &p, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: project %d", op, apperrors.ErrNotFound, projectID)
		}

		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return &p, nil
}

func (r *ProjectRepository) CountAdministered(ctx context.Context, ext sqlx.ExtContext, userID string) (int, error) {
	const op = "internal.repository.postgres.projects.CountAdministered"

	query, args, err := r.sq.Select("COUNT(*)").
		From("projects").
		Where(sq.Eq{"admin_id": userID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var n int
	if err := sqlx.GetContext(ctx, ext, &n, query, args...); err != nil {
		return 0, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return n, nil
}

func (r *ProjectRepository) GetProgress(ctx context.Context, ext sqlx.ExtContext, projectID int64) (*domain.ProjectProgress, error) {
	const op = "internal.repository.postgres.projects.GetProgress"

	hasResult := "EXISTS (SELECT 1 FROM results res WHERE res.task_id = t.id)"

	query, args, err := r.sq.Select("t.completed_assignments", "COUNT(*) AS howmany").
		From("tasks t").
		Where(sq.Eq{"t.project_id": projectID}).
		Where("NOT " + hasResult).
		GroupBy("t.completed_assignments").
		OrderBy("t.completed_assignments").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build histogram query: %w", op, err)
	}

	progress := &domain.ProjectProgress{Buckets: []domain.AssignmentBucket{}}
	if err := sqlx.SelectContext(ctx, ext, &progress.Buckets, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to select histogram: %w", op, err)
	}

	query, args, err = r.sq.Select(
		"COUNT(*) FILTER (WHERE t.completed AND NOT "+hasResult+") AS needs_merging",
		"COUNT(*) FILTER (WHERE "+hasResult+") AS finished",
	).
		From("tasks t").
		Where(sq.Eq{"t.project_id": projectID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build totals query: %w", op, err)
	}

	var totals struct {
		NeedsMerging int `db:"needs_merging"`
		Finished     int `db:"finished"`
	}
	if err := sqlx.GetContext(ctx, ext, &totals, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to select totals: %w", op, err)
	}

	progress.NeedsMerging = totals.NeedsMerging
	progress.Finished = totals.Finished

	return progress, nil
}
