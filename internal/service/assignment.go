package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/clickwork/clickwork/internal/apperrors"
	"github.com/clickwork/clickwork/internal/domain"
	"github.com/clickwork/clickwork/pkg/api"
	"github.com/clickwork/clickwork/pkg/logger/sl"
	"github.com/jmoiron/sqlx"
)

type AssignmentService interface {
	// NextTask routes the worker to an open review, an auto-review, their
	// current claim or a newly claimed task, in that order. A worker with
	// nothing to do is routed home.
	NextTask(ctx context.Context, userID string) (api.Route, error)
	// Abandon drops the worker's claim, if any.
	Abandon(ctx context.Context, userID string) (bool, error)
	Home(ctx context.Context, userID string) (*api.HomeSummary, error)
}

type ExclusionResolver interface {
	Excluded(workerID string) []string
}

type TaskRanker interface {
	Rank(candidates []domain.Candidate) []domain.Candidate
	Salt() string
}

type AssignmentServiceImpl struct {
	BaseService
	resolver ExclusionResolver
	ranker   TaskRanker
	window   int
}

func NewAssignmentService(
	base BaseService,
	resolver ExclusionResolver,
	ranker TaskRanker,
	window int,
) *AssignmentServiceImpl {
	return &AssignmentServiceImpl{
		BaseService: base,
		resolver:    resolver,
		ranker:      ranker,
		window:      window,
	}
}

func (s *AssignmentServiceImpl) NextTask(ctx context.Context, userID string) (api.Route, error) {
	const op = "internal.service.assignment.NextTask"
	log := s.log.With(slog.String("op", op), slog.String("user_id", userID))

	route, err := s.nextTask(ctx, userID)
	if errors.Is(err, apperrors.ErrConcurrencyConflict) {
		claimConflictsTotal.Inc()
		log.Warn("claim conflict, retrying selection", sl.Err(err))

		route, err = s.nextTask(ctx, userID)
		if errors.Is(err, apperrors.ErrConcurrencyConflict) {
			claimConflictsTotal.Inc()
			log.Warn("claim conflict persisted, routing home", sl.Err(err))

			route, err = api.HomeRoute(), nil
		}
	}

	if err != nil {
		return api.Route{}, err
	}

	routesTotal.WithLabelValues(string(route.Kind)).Inc()
	log.Info("worker routed",
		slog.String("kind", string(route.Kind)),
		slog.Int64("task_id", route.TaskID),
		slog.Int64("review_id", route.ReviewID),
	)

	return route, nil
}

func (s *AssignmentServiceImpl) nextTask(ctx context.Context, userID string) (api.Route, error) {
	const op = "internal.service.assignment.nextTask"

	var route api.Route

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		if _, err := s.worker(ctx, tx, userID, true); err != nil {
			return err
		}

		var err error
		route, err = s.route(ctx, tx, userID)

		return err
	})

	return route, err
}

func (s *AssignmentServiceImpl) route(ctx context.Context, tx *sqlx.Tx, userID string) (api.Route, error) {
	const op = "internal.service.assignment.route"

	review, err := optional(s.repos.Reviews.NextOpenReview(ctx, tx, userID))
	if err != nil {
		return api.Route{}, fmt.Errorf("%s: failed to look up open reviews: %w", op, err)
	}

	if review != nil {
		return api.ReviewRoute(review.ID), nil
	}

	shown, err := optional(s.repos.AutoReviews.GetShown(ctx, tx, userID))
	if err != nil {
		return api.Route{}, fmt.Errorf("%s: failed to look up shown auto-reviews: %w", op, err)
	}

	if shown != nil {
		return api.TaskRoute(shown.TaskID), nil
	}

	unseen, err := optional(s.repos.AutoReviews.NextUnseen(ctx, tx, userID))
	if err != nil {
		return api.Route{}, fmt.Errorf("%s: failed to look up unseen auto-reviews: %w", op, err)
	}

	if unseen != nil {
		if err := unseen.Show(s.now()); err != nil {
			return api.Route{}, err
		}

		if err := s.repos.AutoReviews.Save(ctx, tx, unseen); err != nil {
			return api.Route{}, fmt.Errorf("%s: failed to mark auto-review shown: %w", op, err)
		}

		return api.TaskRoute(unseen.TaskID), nil
	}

	claim, err := optional(s.repos.Claims.GetClaimByUser(ctx, tx, userID))
	if err != nil {
		return api.Route{}, fmt.Errorf("%s: failed to look up claim: %w", op, err)
	}

	if claim != nil {
		if err := s.repos.Claims.RefreshClaim(ctx, tx, claim.ID, s.now()); err != nil {
			return api.Route{}, fmt.Errorf("%s: failed to refresh claim: %w", op, err)
		}

		return api.TaskRoute(claim.TaskID), nil
	}

	return s.assign(ctx, tx, userID)
}

func (s *AssignmentServiceImpl) assign(ctx context.Context, tx *sqlx.Tx, userID string) (api.Route, error) {
	const op = "internal.service.assignment.assign"

	taskID, mode, err := s.selectTask(ctx, tx, userID)
	if err != nil {
		return api.Route{}, fmt.Errorf("%s: failed to select task: %w", op, err)
	}

	if taskID == 0 {
		return api.HomeRoute(), nil
	}

	if _, err := s.repos.Claims.CreateClaim(ctx, tx, taskID, userID, s.now()); err != nil {
		return api.Route{}, err
	}

	claimsCreatedTotal.WithLabelValues(mode).Inc()

	return api.TaskRoute(taskID), nil
}

func (s *AssignmentServiceImpl) Abandon(ctx context.Context, userID string) (bool, error) {
	const op = "internal.service.assignment.Abandon"
	log := s.log.With(slog.String("op", op), slog.String("user_id", userID))

	var abandoned bool

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		var err error

		abandoned, err = s.repos.Claims.DeleteClaimByUser(ctx, tx, userID)
		if err != nil {
			return fmt.Errorf("%s: failed to delete claim: %w", op, err)
		}

		return nil
	})
	if err != nil {
		return false, err
	}

	log.Info("claim abandoned", slog.Bool("had_claim", abandoned))

	return abandoned, nil
}

func (s *AssignmentServiceImpl) Home(ctx context.Context, userID string) (*api.HomeSummary, error) {
	const op = "internal.service.assignment.Home"

	summary := &api.HomeSummary{}

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		if _, err := s.worker(ctx, tx, userID, false); err != nil {
			return err
		}

		excluded := s.resolver.Excluded(userID)

		var err error

		if summary.Annotatable, err = s.repos.Eligibility.CountAnnotatable(ctx, tx, userID, excluded); err != nil {
			return fmt.Errorf("%s: failed to count annotatable tasks: %w", op, err)
		}

		if summary.Mergeable, err = s.repos.Eligibility.CountMergeable(ctx, tx, userID, excluded); err != nil {
			return fmt.Errorf("%s: failed to count mergeable tasks: %w", op, err)
		}

		if summary.OpenReviews, err = s.repos.Reviews.CountOpenReviews(ctx, tx, userID); err != nil {
			return fmt.Errorf("%s: failed to count open reviews: %w", op, err)
		}

		claim, err := optional(s.repos.Claims.GetClaimByUser(ctx, tx, userID))
		if err != nil {
			return fmt.Errorf("%s: failed to look up claim: %w", op, err)
		}

		if claim != nil {
			summary.CurrentClaim = &api.Claim{
				ID:        claim.ID,
				TaskID:    claim.TaskID,
				UserID:    claim.UserID,
				StartTime: claim.StartTime,
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return summary, nil
}
