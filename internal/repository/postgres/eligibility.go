package postgres

import (
	"context"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/clickwork/clickwork/internal/domain"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// EligibilityRepository computes a worker's candidate tasks with set
// subtraction in SQL. Nothing is cached between calls.
type EligibilityRepository struct {
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewEligibilityRepository(log *slog.Logger) *EligibilityRepository {
	return &EligibilityRepository{log: log, sq: builder()}
}

var candidateColumns = []string{
	"t.id AS task_id", "t.project_id", "p.priority", "t.completed_assignments",
}

const (
	inAnnotatorGroup = `EXISTS (SELECT 1 FROM project_annotators pa
		JOIN group_members gm ON gm.group_id = pa.group_id
		WHERE pa.project_id = p.id AND gm.user_id = ?)`
	inMergerGroup = `EXISTS (SELECT 1 FROM project_mergers pm
		JOIN group_members gm ON gm.group_id = pm.group_id
		WHERE pm.project_id = p.id AND gm.user_id = ?)`
	noResponseByAny = `NOT EXISTS (SELECT 1 FROM responses r
		WHERE r.task_id = t.id AND r.user_id = ANY(?))`
	noClaimByAny = `NOT EXISTS (SELECT 1 FROM work_in_progress w
		WHERE w.task_id = t.id AND w.user_id = ANY(?))`
	hasCapacity = `(SELECT COUNT(*) FROM work_in_progress w WHERE w.task_id = t.id)
		+ t.completed_assignments < p.annotator_count`
	notMerged = `NOT EXISTS (SELECT 1 FROM results res WHERE res.task_id = t.id)`
	unclaimed = `NOT EXISTS (SELECT 1 FROM work_in_progress w WHERE w.task_id = t.id)`
	freshEyes = `(NOT p.needs_fresh_eyes OR NOT EXISTS (SELECT 1 FROM responses r
		WHERE r.task_id = t.id AND r.user_id = ?))`
)

func (r *EligibilityRepository) base(columns ...string) sq.SelectBuilder {
	return r.sq.Select(columns...).
		From("tasks t").
		Join("projects p ON p.id = t.project_id").
		Where(sq.GtOrEq{"p.priority": 0}).
		Where("NOT p.auto_review")
}

func (r *EligibilityRepository) annotatable(userID string, excluded []string, columns ...string) sq.SelectBuilder {
	return r.base(columns...).
		Where("NOT t.completed").
		Where(sq.Expr(inAnnotatorGroup, userID)).
		Where(sq.Expr(noResponseByAny, pq.Array(append([]string{userID}, excluded...)))).
		Where(sq.Expr(noClaimByAny, pq.Array(excluded))).
		Where(hasCapacity)
}

func (r *EligibilityRepository) mergeable(userID string, excluded []string, columns ...string) sq.SelectBuilder {
	return r.base(columns...).
		Where("t.completed").
		Where(sq.Expr(inMergerGroup, userID)).
		Where(notMerged).
		Where(unclaimed).
		Where(sq.Expr(freshEyes, userID)).
		Where(sq.Expr(noResponseByAny, pq.Array(excluded)))
}

func ranked(qb sq.SelectBuilder, salt string, limit int) sq.SelectBuilder {
	return qb.OrderBy("p.priority DESC", "p.id ASC", "t.completed_assignments DESC").
		OrderByClause("md5(t.id::text || ?)", salt).
		Limit(uint64(limit))
}

func (r *EligibilityRepository) AnnotatableCandidates(ctx context.Context, ext sqlx.ExtContext, userID string, excluded []string, salt string, limit int) ([]domain.Candidate, error) {
	const op = "internal.repository.postgres.eligibility.AnnotatableCandidates"

	return r.candidates(ctx, ext, op, ranked(r.annotatable(userID, excluded, candidateColumns...), salt, limit))
}

func (r *EligibilityRepository) MergeableCandidates(ctx context.Context, ext sqlx.ExtContext, userID string, excluded []string, salt string, limit int) ([]domain.Candidate, error) {
	const op = "internal.repository.postgres.eligibility.MergeableCandidates"

	return r.candidates(ctx, ext, op, ranked(r.mergeable(userID, excluded, candidateColumns...), salt, limit))
}

func (r *EligibilityRepository) CountAnnotatable(ctx context.Context, ext sqlx.ExtContext, userID string, excluded []string) (int, error) {
	const op = "internal.repository.postgres.eligibility.CountAnnotatable"

	return r.count(ctx, ext, op, r.annotatable(userID, excluded, "COUNT(*)"))
}

func (r *EligibilityRepository) CountMergeable(ctx context.Context, ext sqlx.ExtContext, userID string, excluded []string) (int, error) {
	const op = "internal.repository.postgres.eligibility.CountMergeable"

	return r.count(ctx, ext, op, r.mergeable(userID, excluded, "COUNT(*)"))
}

func (r *EligibilityRepository) candidates(ctx context.Context, ext sqlx.ExtContext, op string, qb sq.SelectBuilder) ([]domain.Candidate, error) {
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	candidates := []domain.Candidate{}
	if err := sqlx.SelectContext(ctx, ext, &candidates, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return candidates, nil
}

func (r *EligibilityRepository) count(ctx context.Context, ext sqlx.ExtContext, op string, qb sq.SelectBuilder) (int, error) {
	query, args, err := qb.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var n int
	if err := sqlx.GetContext(ctx, ext, &n, query, args...); err != nil {
		return 0, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return n, nil
}
