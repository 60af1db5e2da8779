package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/clickwork/clickwork/internal/apperrors"
	"github.com/clickwork/clickwork/internal/domain"
	"github.com/clickwork/clickwork/internal/tasktype"
	"github.com/clickwork/clickwork/pkg/api"
	"github.com/jmoiron/sqlx"
)

type SubmissionService interface {
	// Submit finalizes the worker's answer on a claimed task and returns the
	// next route. Without a live claim on the task it fails with
	// apperrors.ErrNotClaimed; malformed answers leave all state untouched.
	Submit(ctx context.Context, userID string, taskID int64, sub domain.Submission) (api.Route, error)
	// Unmerge deletes a task's result and hands the superuser a claim to
	// redo the merge.
	Unmerge(ctx context.Context, userID string, taskID int64) (api.Route, error)
}

type Router interface {
	NextTask(ctx context.Context, userID string) (api.Route, error)
}

type SubmissionServiceImpl struct {
	BaseService
	types  TaskTypes
	router Router
}

func NewSubmissionService(base BaseService, types TaskTypes, router Router) *SubmissionServiceImpl {
	return &SubmissionServiceImpl{
		BaseService: base,
		types:       types,
		router:      router,
	}
}

// submitOutcome says where the worker goes once the transaction commits.
type submitOutcome int

const (
	outcomeNext submitOutcome = iota
	outcomeStay
)

func (s *SubmissionServiceImpl) Submit(ctx context.Context, userID string, taskID int64, sub domain.Submission) (api.Route, error) {
	const op = "internal.service.submission.Submit"
	log := s.log.With(slog.String("op", op), slog.String("user_id", userID), slog.Int64("task_id", taskID))

	var (
		outcome submitOutcome
		kind    string
	)

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		if _, err := s.worker(ctx, tx, userID, true); err != nil {
			return err
		}

		task, err := s.repos.TaskCmd.GetTaskWithLock(ctx, tx, taskID)
		if err != nil {
			return fmt.Errorf("%s: failed to lock task: %w", op, err)
		}

		project, err := s.repos.Projects.GetProject(ctx, tx, task.ProjectID)
		if err != nil {
			return fmt.Errorf("%s: failed to get project: %w", op, err)
		}

		tt, err := s.types.Lookup(project.Type)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		if project.AutoReview {
			kind = submitAutoReview
			outcome, err = s.submitAutoReview(ctx, tx, userID, task, tt, sub)

			return err
		}

		claim, err := optional(s.repos.Claims.GetClaimByUser(ctx, tx, userID))
		if err != nil {
			return fmt.Errorf("%s: failed to look up claim: %w", op, err)
		}

		if claim == nil || claim.TaskID != taskID {
			return fmt.Errorf("%s: %w: task %d", op, apperrors.ErrNotClaimed, taskID)
		}

		payload, err := tt.HandleResponse(*task, sub.Answer)
		if err != nil {
			return err
		}

		if task.Completed {
			kind = submitResult
			err = s.merge(ctx, tx, userID, claim, task, project, payload, sub.Reviews)
		} else {
			kind = submitResponse
			err = s.annotate(ctx, tx, userID, claim, task, project, payload)
		}

		if err != nil {
			return err
		}

		if err := s.repos.Claims.DeleteClaim(ctx, tx, claim.ID); err != nil {
			return fmt.Errorf("%s: failed to release claim: %w", op, err)
		}

		return nil
	})
	if err != nil {
		return api.Route{}, err
	}

	submissionsTotal.WithLabelValues(kind).Inc()
	log.Info("submission finalized", slog.String("kind", kind), slog.Bool("stop_working", sub.StopWorking))

	switch {
	case outcome == outcomeStay:
		return api.TaskRoute(taskID), nil
	case sub.StopWorking:
		return api.HomeRoute(), nil
	default:
		return s.router.NextTask(ctx, userID)
	}
}

func (s *SubmissionServiceImpl) annotate(
	ctx context.Context,
	tx *sqlx.Tx,
	userID string,
	claim *domain.WorkInProgress,
	task *domain.Task,
	project *domain.Project,
	payload []byte,
) error {
	const op = "internal.service.submission.annotate"

	now := s.now()
	if err := domain.ValidateWorkTimes(claim.StartTime, now); err != nil {
		return err
	}

	resp := &domain.Response{
		TaskID:    task.ID,
		UserID:    userID,
		StartTime: claim.StartTime,
		EndTime:   now,
		Payload:   payload,
	}

	if err := s.repos.TaskCmd.CreateResponse(ctx, tx, resp); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			return apperrors.NewValidationError(fmt.Sprintf("you already answered task %d", task.ID))
		}

		return fmt.Errorf("%s: failed to create response: %w", op, err)
	}

	if err := task.RecordAssignment(*project); err != nil {
		return err
	}

	if err := s.repos.TaskCmd.UpdateProgress(ctx, tx, task); err != nil {
		return fmt.Errorf("%s: failed to update progress: %w", op, err)
	}

	return nil
}

func (s *SubmissionServiceImpl) merge(
	ctx context.Context,
	tx *sqlx.Tx,
	userID string,
	claim *domain.WorkInProgress,
	task *domain.Task,
	project *domain.Project,
	payload []byte,
	flags []domain.ReviewFlag,
) error {
	const op = "internal.service.submission.merge"

	existing, err := optional(s.repos.TaskQuery.GetResult(ctx, tx, task.ID))
	if err != nil {
		return fmt.Errorf("%s: failed to look up result: %w", op, err)
	}

	if existing != nil {
		return apperrors.NewValidationError(fmt.Sprintf("task %d is already merged", task.ID))
	}

	now := s.now()
	if err := domain.ValidateResult(*task, *project, claim.StartTime, now); err != nil {
		return err
	}

	flagged, err := s.flaggedResponses(ctx, tx, task.ID, flags)
	if err != nil {
		return err
	}

	result := &domain.Result{
		TaskID:    task.ID,
		UserID:    userID,
		StartTime: claim.StartTime,
		EndTime:   now,
		Payload:   payload,
	}

	if err := s.repos.TaskCmd.CreateResult(ctx, tx, result); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			return apperrors.NewValidationError(fmt.Sprintf("task %d is already merged", task.ID))
		}

		return fmt.Errorf("%s: failed to create result: %w", op, err)
	}

	for i, responseID := range flagged {
		if _, err := s.repos.Reviews.CreateReview(ctx, tx, responseID, flags[i].Comment); err != nil {
			return fmt.Errorf("%s: failed to create review: %w", op, err)
		}
	}

	return nil
}

// flaggedResponses maps each review flag to the response it targets.
func (s *SubmissionServiceImpl) flaggedResponses(ctx context.Context, tx *sqlx.Tx, taskID int64, flags []domain.ReviewFlag) ([]int64, error) {
	const op = "internal.service.submission.flaggedResponses"

	if len(flags) == 0 {
		return nil, nil
	}

	responses, err := s.repos.TaskQuery.ListResponses(ctx, tx, taskID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list responses: %w", op, err)
	}

	byUser := make(map[string]int64, len(responses))
	for _, r := range responses {
		byUser[r.UserID] = r.ID
	}

	ids := make([]int64, len(flags))
	seen := make(map[string]struct{}, len(flags))

	var verr *apperrors.ValidationError

	reject := func(i int, msg string) {
		if verr == nil {
			verr = apperrors.NewValidationError("review flags must name distinct workers who answered this task")
		}

		verr.WithField(fmt.Sprintf("reviews[%d].user_id", i), msg)
	}

	for i, f := range flags {
		id, ok := byUser[f.UserID]
		if !ok {
			reject(i, fmt.Sprintf("'%s' has no response on task %d", f.UserID, taskID))
			continue
		}

		if _, dup := seen[f.UserID]; dup {
			reject(i, fmt.Sprintf("'%s' is flagged more than once", f.UserID))
			continue
		}

		seen[f.UserID] = struct{}{}
		ids[i] = id
	}

	if verr != nil {
		return nil, verr
	}

	return ids, nil
}

// submitAutoReview handles both steps of an auto-review: the first
// submission records the worker's answer and keeps them on the task to see
// the comparison; the next one acknowledges it.
func (s *SubmissionServiceImpl) submitAutoReview(
	ctx context.Context,
	tx *sqlx.Tx,
	userID string,
	task *domain.Task,
	tt tasktype.TaskType,
	sub domain.Submission,
) (submitOutcome, error) {
	const op = "internal.service.submission.submitAutoReview"

	ar, err := optional(s.repos.AutoReviews.GetForUser(ctx, tx, task.ID, userID))
	if err != nil {
		return outcomeNext, fmt.Errorf("%s: failed to get auto-review: %w", op, err)
	}

	if ar == nil || ar.State() == domain.AutoReviewUnseen {
		return outcomeNext, fmt.Errorf("%s: %w: auto-review task %d", op, apperrors.ErrNotClaimed, task.ID)
	}

	if ar.State() == domain.AutoReviewAcknowledged {
		return outcomeNext, apperrors.NewValidationError(fmt.Sprintf("auto-review of task %d is already acknowledged", task.ID))
	}

	own, err := optional(s.repos.TaskQuery.GetResponseByUser(ctx, tx, task.ID, userID))
	if err != nil {
		return outcomeNext, fmt.Errorf("%s: failed to look up response: %w", op, err)
	}

	now := s.now()

	if own == nil {
		payload, err := tt.HandleResponse(*task, sub.Answer)
		if err != nil {
			return outcomeNext, err
		}

		resp := &domain.Response{
			TaskID:    task.ID,
			UserID:    userID,
			StartTime: *ar.StartTime,
			EndTime:   now,
			Payload:   payload,
		}

		if err := s.repos.TaskCmd.CreateResponse(ctx, tx, resp); err != nil {
			return outcomeNext, fmt.Errorf("%s: failed to create response: %w", op, err)
		}

		return outcomeStay, nil
	}

	if err := ar.Acknowledge(now); err != nil {
		return outcomeNext, err
	}

	if err := s.repos.AutoReviews.Save(ctx, tx, ar); err != nil {
		return outcomeNext, fmt.Errorf("%s: failed to acknowledge auto-review: %w", op, err)
	}

	return outcomeNext, nil
}

func (s *SubmissionServiceImpl) Unmerge(ctx context.Context, userID string, taskID int64) (api.Route, error) {
	const op = "internal.service.submission.Unmerge"
	log := s.log.With(slog.String("op", op), slog.String("user_id", userID), slog.Int64("task_id", taskID))

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		user, err := s.worker(ctx, tx, userID, true)
		if err != nil {
			return err
		}

		if !user.IsSuperuser {
			return fmt.Errorf("%s: %w", op, &apperrors.ForbiddenError{Reason: "only superusers may unmerge tasks"})
		}

		task, err := s.repos.TaskCmd.GetTaskWithLock(ctx, tx, taskID)
		if err != nil {
			return fmt.Errorf("%s: failed to lock task: %w", op, err)
		}

		project, err := s.repos.Projects.GetProject(ctx, tx, task.ProjectID)
		if err != nil {
			return fmt.Errorf("%s: failed to get project: %w", op, err)
		}

		if err := domain.ValidateClaim(*project); err != nil {
			return err
		}

		claim, err := optional(s.repos.Claims.GetClaimByUser(ctx, tx, userID))
		if err != nil {
			return fmt.Errorf("%s: failed to look up claim: %w", op, err)
		}

		if claim != nil && claim.TaskID != taskID {
			return fmt.Errorf("%s: %w: task %d", op, apperrors.ErrClaimHeld, claim.TaskID)
		}

		deleted, err := s.repos.TaskCmd.DeleteResult(ctx, tx, taskID)
		if err != nil {
			return fmt.Errorf("%s: failed to delete result: %w", op, err)
		}

		if !deleted {
			return apperrors.NewValidationError(fmt.Sprintf("task %d is not merged", taskID))
		}

		if claim != nil {
			if err := s.repos.Claims.RefreshClaim(ctx, tx, claim.ID, s.now()); err != nil {
				return fmt.Errorf("%s: failed to refresh claim: %w", op, err)
			}

			return nil
		}

		if _, err := s.repos.Claims.CreateClaim(ctx, tx, taskID, userID, s.now()); err != nil {
			return fmt.Errorf("%s: failed to create claim: %w", op, err)
		}

		return nil
	})
	if err != nil {
		return api.Route{}, err
	}

	claimsCreatedTotal.WithLabelValues(claimUnmerge).Inc()
	log.Info("task unmerged")

	return api.TaskRoute(taskID), nil
}
