package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/clickwork/clickwork/internal/domain"
	"github.com/jmoiron/sqlx"
)

// selectTask returns the best task the worker may claim and whether it is a
// merge or an annotation, or a zero id when nothing is eligible. Merges win
// over annotations. Each ranked candidate is re-checked under a row lock so
// that concurrent claims cannot overshoot capacity or break exclusion.
func (s *AssignmentServiceImpl) selectTask(ctx context.Context, tx *sqlx.Tx, userID string) (int64, string, error) {
	excluded := s.resolver.Excluded(userID)
	salt := s.ranker.Salt()

	mergeable, err := s.repos.Eligibility.MergeableCandidates(ctx, tx, userID, excluded, salt, s.window)
	if err != nil {
		return 0, "", err
	}

	for _, c := range s.ranker.Rank(mergeable) {
		ok, err := s.confirmMergeable(ctx, tx, c.TaskID)
		if err != nil {
			return 0, "", err
		}

		if ok {
			return c.TaskID, claimMerge, nil
		}
	}

	annotatable, err := s.repos.Eligibility.AnnotatableCandidates(ctx, tx, userID, excluded, salt, s.window)
	if err != nil {
		return 0, "", err
	}

	for _, c := range s.ranker.Rank(annotatable) {
		ok, err := s.confirmAnnotatable(ctx, tx, c.TaskID, excluded)
		if err != nil {
			return 0, "", err
		}

		if ok {
			return c.TaskID, claimAnnotate, nil
		}
	}

	return 0, "", nil
}

func (s *AssignmentServiceImpl) confirmMergeable(ctx context.Context, tx *sqlx.Tx, taskID int64) (bool, error) {
	const op = "internal.service.eligibility.confirmMergeable"

	task, err := s.repos.TaskCmd.GetTaskWithLock(ctx, tx, taskID)
	if err != nil {
		return false, fmt.Errorf("%s: failed to lock task: %w", op, err)
	}

	claimants, err := s.repos.Claims.ListClaimants(ctx, tx, taskID)
	if err != nil {
		return false, fmt.Errorf("%s: failed to list claimants: %w", op, err)
	}

	result, err := optional(s.repos.TaskQuery.GetResult(ctx, tx, taskID))
	if err != nil {
		return false, fmt.Errorf("%s: failed to look up result: %w", op, err)
	}

	return domain.CanMerge(*task, len(claimants), result != nil), nil
}

func (s *AssignmentServiceImpl) confirmAnnotatable(ctx context.Context, tx *sqlx.Tx, taskID int64, excluded []string) (bool, error) {
	const op = "internal.service.eligibility.confirmAnnotatable"

	task, err := s.repos.TaskCmd.GetTaskWithLock(ctx, tx, taskID)
	if err != nil {
		return false, fmt.Errorf("%s: failed to lock task: %w", op, err)
	}

	project, err := s.repos.Projects.GetProject(ctx, tx, task.ProjectID)
	if err != nil {
		return false, fmt.Errorf("%s: failed to get project: %w", op, err)
	}

	if domain.ValidateClaim(*project) != nil {
		return false, nil
	}

	claimants, err := s.repos.Claims.ListClaimants(ctx, tx, taskID)
	if err != nil {
		return false, fmt.Errorf("%s: failed to list claimants: %w", op, err)
	}

	for _, c := range claimants {
		if slices.Contains(excluded, c) {
			return false, nil
		}
	}

	return domain.HasCapacity(*task, len(claimants), *project), nil
}
