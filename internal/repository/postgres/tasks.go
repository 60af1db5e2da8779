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

type TaskRepository struct {
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewTaskRepository(log *slog.Logger) *TaskRepository {
	return &TaskRepository{log: log, sq: builder()}
}

var taskColumns = []string{"id", "project_id", "completed_assignments", "completed", "payload"}

func (r *TaskRepository) GetTask(ctx context.Context, ext sqlx.ExtContext, taskID int64) (*domain.Task, error) {
	const op = "internal.repository.postgres.tasks.GetTask"

	return r.getTask(ctx, ext, op, taskID, "")
}

func (r *TaskRepository) GetTaskWithLock(ctx context.Context, tx *sqlx.Tx, taskID int64) (*domain.Task, error) {
	const op = "internal.repository.postgres.tasks.GetTaskWithLock"

	return r.getTask(ctx, tx, op, taskID, "FOR UPDATE")
}

func (r *TaskRepository) getTask(ctx context.Context, ext sqlx.ExtContext, op string, taskID int64, suffix string) (*domain.Task, error) {
	qb := r.sq.Select(taskColumns...).
		From("tasks").
		Where(sq.Eq{"id": taskID})

	if suffix != "" {
		qb = qb.Suffix(suffix)
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var task domain.Task
	if err := sqlx.GetContext(ctx, ext, &task, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: task %d", op, apperrors.ErrNotFound, taskID)
		}

		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return &task, nil
}

func (r *TaskRepository) ListProjectTasks(ctx context.Context, ext sqlx.ExtContext, projectID int64) ([]domain.Task, error) {
	const op = "internal.repository.postgres.tasks.ListProjectTasks"

	query, args, err := r.sq.Select(taskColumns...).
		From("tasks").
		Where(sq.Eq{"project_id": projectID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	tasks := []domain.Task{}
	if err := sqlx.SelectContext(ctx, ext, &tasks, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return tasks, nil
}

func (r *TaskRepository) UpdateProgress(ctx context.Context, tx *sqlx.Tx, task *domain.Task) error {
	const op = "internal.repository.postgres.tasks.UpdateProgress"

	query, args, err := r.sq.Update("tasks").
		Set("completed_assignments", task.CompletedAssignments).
		Set("completed", task.Completed).
		Where(sq.Eq{"id": task.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w: task %d", op, apperrors.ErrNotFound, task.ID)
	}

	return nil
}

func (r *TaskRepository) ListResponses(ctx context.Context, ext sqlx.ExtContext, taskID int64) ([]domain.ResponseDetail, error) {
	const op = "internal.repository.postgres.tasks.ListResponses"

	query, args, err := r.sq.Select(
		"r.id", "r.task_id", "r.user_id", "r.start_time", "r.end_time", "r.payload", "u.username",
	).
		From("responses r").
		Join("users u ON u.id = r.user_id").
		Where(sq.Eq{"r.task_id": taskID}).
		OrderBy("r.end_time", "r.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	responses := []domain.ResponseDetail{}
	if err := sqlx.SelectContext(ctx, ext, &responses, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return responses, nil
}

func (r *TaskRepository) GetResponseByUser(ctx context.Context, ext sqlx.ExtContext, taskID int64, userID string) (*domain.Response, error) {
	const op = "internal.repository.postgres.tasks.GetResponseByUser"

	query, args, err := r.sq.Select("id", "task_id", "user_id", "start_time", "end_time", "payload").
		From("responses").
		Where(sq.Eq{"task_id": taskID, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var resp domain.Response
	if err := sqlx.GetContext(ctx, ext, &resp, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: response by '%s' on task %d", op, apperrors.ErrNotFound, userID, taskID)
		}

		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return &resp, nil
}

func (r *TaskRepository) CreateResponse(ctx context.Context, tx *sqlx.Tx, resp *domain.Response) error {
	const op = "internal.repository.postgres.tasks.CreateResponse"

	query, args, err := r.sq.Insert("responses").
		Columns("task_id", "user_id", "start_time", "end_time", "payload").
		Values(resp.TaskID, resp.UserID, resp.StartTime, resp.EndTime, string(resp.Payload)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if err := tx.QueryRowxContext(ctx, query, args...).Scan(&resp.ID); err != nil {
		switch pqCode(err) {
		case uniqueViolation:
			return fmt.Errorf("%s: %w: response by '%s' on task %d", op, apperrors.ErrAlreadyExists, resp.UserID, resp.TaskID)
		case checkViolation:
			return apperrors.NewValidationError("work cannot end before it begins")
		}

		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return nil
}

func (r *TaskRepository) GetResult(ctx context.Context, ext sqlx.ExtContext, taskID int64) (*domain.Result, error) {
	const op = "internal.repository.postgres.tasks.GetResult"

	query, args, err := r.sq.Select("id", "task_id", "user_id", "start_time", "end_time", "payload").
		From("results").
		Where(sq.Eq{"task_id": taskID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var result domain.Result
	if err := sqlx.GetContext(ctx, ext, &result, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: result for task %d", op, apperrors.ErrNotFound, taskID)
		}

		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return &result, nil
}

func (r *TaskRepository) CreateResult(ctx context.Context, tx *sqlx.Tx, result *domain.Result) error {
	const op = "internal.repository.postgres.tasks.CreateResult"

	query, args, err := r.sq.Insert("results").
		Columns("task_id", "user_id", "start_time", "end_time", "payload").
		Values(result.TaskID, result.UserID, result.StartTime, result.EndTime, string(result.Payload)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if err := tx.QueryRowxContext(ctx, query, args...).Scan(&result.ID); err != nil {
		switch pqCode(err) {
		case uniqueViolation:
			return fmt.Errorf("%s: %w: result for task %d", op, apperrors.ErrAlreadyExists, result.TaskID)
		case checkViolation:
			return apperrors.NewValidationError("work cannot end before it begins")
		}

		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return nil
}

func (r *TaskRepository) DeleteResult(ctx context.Context, tx *sqlx.Tx, taskID int64) (bool, error) {
	const op = "internal.repository.postgres.tasks.DeleteResult"

	query, args, err := r.sq.Delete("results").
		Where(sq.Eq{"task_id": taskID}).
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

func (r *TaskRepository) GetExpectedResponse(ctx context.Context, ext sqlx.ExtContext, taskID int64) (*domain.ExpectedResponse, error) {
	const op = "internal.repository.postgres.tasks.GetExpectedResponse"

	query, args, err := r.sq.Select("task_id", "payload").
		From("expected_responses").
		Where(sq.Eq{"task_id": taskID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var expected domain.ExpectedResponse
	if err := sqlx.GetContext(ctx, ext, &expected, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: expected response for task %d", op, apperrors.ErrNotFound, taskID)
		}

		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return &expected, nil
}
