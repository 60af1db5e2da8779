package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/clickwork/clickwork/internal/apperrors"
	"github.com/clickwork/clickwork/internal/domain"
	"github.com/clickwork/clickwork/internal/tasktype"
	"github.com/clickwork/clickwork/pkg/api"
	"github.com/jmoiron/sqlx"
)

type ReviewService interface {
	NextReview(ctx context.Context, userID string) (api.Route, error)
	ViewReview(ctx context.Context, userID string, reviewID int64) (*api.ReviewView, error)
	// AcknowledgeReview closes the review and routes to the worker's next
	// open review, or home.
	AcknowledgeReview(ctx context.Context, userID string, reviewID int64) (api.Route, error)
	// ViewTask renders the task for a worker allowed to see it: a superuser,
	// the claim holder, the merger of its result or the owner of an
	// auto-review on it.
	ViewTask(ctx context.Context, userID string, taskID int64) (*api.TaskView, error)
}

type ReviewServiceImpl struct {
	BaseService
	types TaskTypes
}

func NewReviewService(base BaseService, types TaskTypes) *ReviewServiceImpl {
	return &ReviewServiceImpl{
		BaseService: base,
		types:       types,
	}
}

func (s *ReviewServiceImpl) NextReview(ctx context.Context, userID string) (api.Route, error) {
	const op = "internal.service.review.NextReview"

	route := api.HomeRoute()

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		if _, err := s.worker(ctx, tx, userID, false); err != nil {
			return err
		}

		review, err := optional(s.repos.Reviews.NextOpenReview(ctx, tx, userID))
		if err != nil {
			return fmt.Errorf("%s: failed to look up open reviews: %w", op, err)
		}

		if review != nil {
			route = api.ReviewRoute(review.ID)
		}

		return nil
	})
	if err != nil {
		return api.Route{}, err
	}

	return route, nil
}

func (s *ReviewServiceImpl) ViewReview(ctx context.Context, userID string, reviewID int64) (*api.ReviewView, error) {
	const op = "internal.service.review.ViewReview"

	var view *api.ReviewView

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		user, err := s.worker(ctx, tx, userID, false)
		if err != nil {
			return err
		}

		review, err := s.repos.Reviews.GetReview(ctx, tx, reviewID)
		if err != nil {
			return fmt.Errorf("%s: failed to get review: %w", op, err)
		}

		task, err := s.repos.TaskQuery.GetTask(ctx, tx, review.TaskID)
		if err != nil {
			return fmt.Errorf("%s: failed to get task: %w", op, err)
		}

		material, err := s.material(ctx, tx, task.ID)
		if err != nil {
			return err
		}

		merger := material.Result != nil && material.Result.UserID == userID
		if !user.IsSuperuser && review.ResponseUserID != userID && !merger {
			return fmt.Errorf("%s: %w", op, &apperrors.ForbiddenError{Reason: fmt.Sprintf("review %d belongs to another worker", reviewID)})
		}

		input, err := s.reviewInput(ctx, tx, task, material)
		if err != nil {
			return err
		}

		view = &api.ReviewView{
			ReviewID:   review.ID,
			TaskID:     review.TaskID,
			ResponseID: review.ResponseID,
			Comment:    review.Comment,
			CreatedAt:  review.CreatedAt,
			Complete:   review.Complete,
			Input:      input,
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return view, nil
}

func (s *ReviewServiceImpl) AcknowledgeReview(ctx context.Context, userID string, reviewID int64) (api.Route, error) {
	const op = "internal.service.review.AcknowledgeReview"
	log := s.log.With(slog.String("op", op), slog.String("user_id", userID), slog.Int64("review_id", reviewID))

	route := api.HomeRoute()

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		user, err := s.worker(ctx, tx, userID, true)
		if err != nil {
			return err
		}

		review, err := s.repos.Reviews.GetReview(ctx, tx, reviewID)
		if err != nil {
			return fmt.Errorf("%s: failed to get review: %w", op, err)
		}

		if !user.IsSuperuser && review.ResponseUserID != userID {
			return fmt.Errorf("%s: %w", op, &apperrors.ForbiddenError{Reason: "only the author of the response may acknowledge its review"})
		}

		if !review.Complete {
			if err := s.repos.Reviews.CompleteReview(ctx, tx, reviewID); err != nil {
				return fmt.Errorf("%s: failed to complete review: %w", op, err)
			}
		}

		next, err := optional(s.repos.Reviews.NextOpenReview(ctx, tx, userID))
		if err != nil {
			return fmt.Errorf("%s: failed to look up open reviews: %w", op, err)
		}

		if next != nil {
			route = api.ReviewRoute(next.ID)
		}

		return nil
	})
	if err != nil {
		return api.Route{}, err
	}

	log.Info("review acknowledged")

	return route, nil
}

func (s *ReviewServiceImpl) ViewTask(ctx context.Context, userID string, taskID int64) (*api.TaskView, error) {
	const op = "internal.service.review.ViewTask"

	var view *api.TaskView

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		user, err := s.worker(ctx, tx, userID, false)
		if err != nil {
			return err
		}

		task, err := s.repos.TaskQuery.GetTask(ctx, tx, taskID)
		if err != nil {
			return fmt.Errorf("%s: failed to get task: %w", op, err)
		}

		project, err := s.repos.Projects.GetProject(ctx, tx, task.ProjectID)
		if err != nil {
			return fmt.Errorf("%s: failed to get project: %w", op, err)
		}

		tt, err := s.types.Lookup(project.Type)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		owners, err := s.repos.Claims.ListClaimOwners(ctx, tx, taskID)
		if err != nil {
			return fmt.Errorf("%s: failed to list claim owners: %w", op, err)
		}

		view = &api.TaskView{
			TaskID:      task.ID,
			ProjectID:   project.ID,
			Type:        project.Type,
			ClaimOwners: owners,
		}

		if project.AutoReview {
			return s.viewAutoReview(ctx, tx, user, task, tt, view)
		}

		claim, err := optional(s.repos.Claims.GetClaimByUser(ctx, tx, userID))
		if err != nil {
			return fmt.Errorf("%s: failed to look up claim: %w", op, err)
		}

		material, err := s.material(ctx, tx, taskID)
		if err != nil {
			return err
		}

		holder := claim != nil && claim.TaskID == taskID
		merger := material.Result != nil && material.Result.UserID == userID

		if !user.IsSuperuser && !holder && !merger {
			return fmt.Errorf("%s: %w", op, &apperrors.ForbiddenError{Reason: fmt.Sprintf("task %d is not assigned to you", taskID)})
		}

		switch {
		case material.Result != nil:
			view.Mode = api.ModeMerged
			view.Review = true
			view.Input, err = tt.ReviewInput(*task, material)
		case task.Completed:
			view.Mode = api.ModeMerge
			view.Input, err = tt.ReviewInput(*task, tasktype.ReviewMaterial{Responses: material.Responses})
		default:
			view.Mode = api.ModeAnnotate
			view.Input, err = tt.RenderInput(*task)
		}

		return err
	})
	if err != nil {
		return nil, err
	}

	return view, nil
}

// viewAutoReview shows the input form until the worker answers, then the
// comparison with the expected answer.
func (s *ReviewServiceImpl) viewAutoReview(
	ctx context.Context,
	tx *sqlx.Tx,
	user *domain.User,
	task *domain.Task,
	tt tasktype.TaskType,
	view *api.TaskView,
) error {
	const op = "internal.service.review.viewAutoReview"

	view.Mode = api.ModeAutoReview

	ar, err := optional(s.repos.AutoReviews.GetForUser(ctx, tx, task.ID, user.ID))
	if err != nil {
		return fmt.Errorf("%s: failed to get auto-review: %w", op, err)
	}

	own := ar != nil && ar.State() != domain.AutoReviewUnseen
	if !own && !user.IsSuperuser {
		return fmt.Errorf("%s: %w", op, &apperrors.ForbiddenError{Reason: fmt.Sprintf("task %d is not assigned to you", task.ID)})
	}

	responses, err := s.repos.TaskQuery.ListResponses(ctx, tx, task.ID)
	if err != nil {
		return fmt.Errorf("%s: failed to list responses: %w", op, err)
	}

	var mine []domain.ResponseDetail

	for _, r := range responses {
		if r.UserID == user.ID {
			mine = append(mine, r)
		}
	}

	if len(mine) == 0 {
		view.Input, err = tt.RenderInput(*task)

		return err
	}

	expected, err := optional(s.repos.TaskQuery.GetExpectedResponse(ctx, tx, task.ID))
	if err != nil {
		return fmt.Errorf("%s: failed to get expected response: %w", op, err)
	}

	view.Review = true
	view.Input, err = tt.ReviewInput(*task, tasktype.ReviewMaterial{Responses: mine, Expected: expected})

	return err
}

// material gathers the responses and result of a task for a review display.
func (s *ReviewServiceImpl) material(ctx context.Context, tx *sqlx.Tx, taskID int64) (tasktype.ReviewMaterial, error) {
	const op = "internal.service.review.material"

	responses, err := s.repos.TaskQuery.ListResponses(ctx, tx, taskID)
	if err != nil {
		return tasktype.ReviewMaterial{}, fmt.Errorf("%s: failed to list responses: %w", op, err)
	}

	result, err := optional(s.repos.TaskQuery.GetResult(ctx, tx, taskID))
	if err != nil {
		return tasktype.ReviewMaterial{}, fmt.Errorf("%s: failed to get result: %w", op, err)
	}

	return tasktype.ReviewMaterial{Responses: responses, Result: result}, nil
}

func (s *ReviewServiceImpl) reviewInput(ctx context.Context, tx *sqlx.Tx, task *domain.Task, material tasktype.ReviewMaterial) (json.RawMessage, error) {
	const op = "internal.service.review.reviewInput"

	project, err := s.repos.Projects.GetProject(ctx, tx, task.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get project: %w", op, err)
	}

	tt, err := s.types.Lookup(project.Type)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return tt.ReviewInput(*task, material)
}
