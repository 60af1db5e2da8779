// Package repository defines the persistence contracts used by the service layer.
// Query methods take an sqlx.ExtContext so they run inside the caller's
// transaction or directly on the pool; command methods require a *sqlx.Tx.
package repository

import (
	"context"
	"time"

	"github.com/clickwork/clickwork/internal/domain"
	"github.com/jmoiron/sqlx"
)

type UserRepository interface {
	// GetUser returns apperrors.ErrNotFound for unknown ids.
	GetUser(ctx context.Context, ext sqlx.ExtContext, userID string) (*domain.User, error)

	// LockUser reads the user row FOR UPDATE, serializing that worker's
	// assignment requests for the rest of the transaction.
	LockUser(ctx context.Context, tx *sqlx.Tx, userID string) (*domain.User, error)
}

type ProjectRepository interface {
	GetProject(ctx context.Context, ext sqlx.ExtContext, projectID int64) (*domain.Project, error)

	// CountAdministered returns how many projects list userID as admin.
	CountAdministered(ctx context.Context, ext sqlx.ExtContext, userID string) (int, error)

	// GetProgress returns the histogram of unmerged tasks by completed
	// assignments together with the needs-merging and finished totals.
	GetProgress(ctx context.Context, ext sqlx.ExtContext, projectID int64) (*domain.ProjectProgress, error)
}

type TaskQueryRepository interface {
	GetTask(ctx context.Context, ext sqlx.ExtContext, taskID int64) (*domain.Task, error)
	ListProjectTasks(ctx context.Context, ext sqlx.ExtContext, projectID int64) ([]domain.Task, error)

	// ListResponses returns every response on the task, oldest first.
	ListResponses(ctx context.Context, ext sqlx.ExtContext, taskID int64) ([]domain.ResponseDetail, error)
	GetResponseByUser(ctx context.Context, ext sqlx.ExtContext, taskID int64, userID string) (*domain.Response, error)
	GetResult(ctx context.Context, ext sqlx.ExtContext, taskID int64) (*domain.Result, error)
	GetExpectedResponse(ctx context.Context, ext sqlx.ExtContext, taskID int64) (*domain.ExpectedResponse, error)
}

type TaskCommandRepository interface {
	// GetTaskWithLock reads the task row FOR UPDATE.
	GetTaskWithLock(ctx context.Context, tx *sqlx.Tx, taskID int64) (*domain.Task, error)

	// UpdateProgress stores completed_assignments and completed.
	UpdateProgress(ctx context.Context, tx *sqlx.Tx, task *domain.Task) error

	// CreateResponse fills in the generated id. A second response by the same
	// worker yields apperrors.ErrAlreadyExists.
	CreateResponse(ctx context.Context, tx *sqlx.Tx, resp *domain.Response) error

	// CreateResult fills in the generated id. A second result yields
	// apperrors.ErrAlreadyExists.
	CreateResult(ctx context.Context, tx *sqlx.Tx, result *domain.Result) error

	// DeleteResult reports whether a result existed.
	DeleteResult(ctx context.Context, tx *sqlx.Tx, taskID int64) (bool, error)
}

// EligibilityRepository answers which tasks a worker may annotate or merge.
// Candidate queries return at most limit rows, best ranked first by the
// deterministic keys. Equally ranked tasks are ordered by a hash keyed with
// salt, so a fresh salt draws a different sample of a tie that overflows the
// window. excluded lists the worker's keep-apart partners.
type EligibilityRepository interface {
	AnnotatableCandidates(ctx context.Context, ext sqlx.ExtContext, userID string, excluded []string, salt string, limit int) ([]domain.Candidate, error)
	MergeableCandidates(ctx context.Context, ext sqlx.ExtContext, userID string, excluded []string, salt string, limit int) ([]domain.Candidate, error)
	CountAnnotatable(ctx context.Context, ext sqlx.ExtContext, userID string, excluded []string) (int, error)
	CountMergeable(ctx context.Context, ext sqlx.ExtContext, userID string, excluded []string) (int, error)
}

type ClaimRepository interface {
	// GetClaimByUser returns apperrors.ErrNotFound when the worker holds no claim.
	GetClaimByUser(ctx context.Context, ext sqlx.ExtContext, userID string) (*domain.WorkInProgress, error)

	// CreateClaim maps a unique violation to apperrors.ErrConcurrencyConflict.
	CreateClaim(ctx context.Context, tx *sqlx.Tx, taskID int64, userID string, start time.Time) (*domain.WorkInProgress, error)
	RefreshClaim(ctx context.Context, tx *sqlx.Tx, claimID int64, start time.Time) error
	DeleteClaim(ctx context.Context, tx *sqlx.Tx, claimID int64) error

	// DeleteClaimByUser reports whether a claim existed.
	DeleteClaimByUser(ctx context.Context, tx *sqlx.Tx, userID string) (bool, error)

	// ListClaimants returns the ids of the workers holding claims on the task.
	ListClaimants(ctx context.Context, ext sqlx.ExtContext, taskID int64) ([]string, error)

	// ListClaimOwners returns the usernames holding claims on the task, oldest claim first.
	ListClaimOwners(ctx context.Context, ext sqlx.ExtContext, taskID int64) ([]string, error)

	// ListClaims returns live claims newest first. A non-empty adminID limits
	// the listing to projects that user administers.
	ListClaims(ctx context.Context, ext sqlx.ExtContext, adminID string) ([]domain.ClaimInfo, error)

	// DeleteClaims removes the given claims, honouring the same adminID scope,
	// and returns how many were deleted.
	DeleteClaims(ctx context.Context, tx *sqlx.Tx, claimIDs []int64, adminID string) (int, error)
}

type ReviewRepository interface {
	// NextOpenReview returns the oldest incomplete review on a response by
	// userID, or apperrors.ErrNotFound.
	NextOpenReview(ctx context.Context, ext sqlx.ExtContext, userID string) (*domain.Review, error)
	CountOpenReviews(ctx context.Context, ext sqlx.ExtContext, userID string) (int, error)
	GetReview(ctx context.Context, ext sqlx.ExtContext, reviewID int64) (*domain.ReviewDetail, error)
	// CreateReview flags a response. A response owns at most one review, so
	// flagging it again reopens that review with the new comment.
	CreateReview(ctx context.Context, tx *sqlx.Tx, responseID int64, comment string) (*domain.Review, error)
	CompleteReview(ctx context.Context, tx *sqlx.Tx, reviewID int64) error
}

type AutoReviewRepository interface {
	GetForUser(ctx context.Context, ext sqlx.ExtContext, taskID int64, userID string) (*domain.AutoReview, error)

	// GetShown returns the worker's auto-review that was shown but not yet
	// acknowledged, or apperrors.ErrNotFound.
	GetShown(ctx context.Context, ext sqlx.ExtContext, userID string) (*domain.AutoReview, error)

	// NextUnseen locks and returns the worker's unseen auto-review on the
	// highest-priority enabled project, or apperrors.ErrNotFound.
	NextUnseen(ctx context.Context, tx *sqlx.Tx, userID string) (*domain.AutoReview, error)

	// Save stores start_time and end_time.
	Save(ctx context.Context, tx *sqlx.Tx, ar *domain.AutoReview) error

	// EnsureAll inserts the missing auto-review rows for every task of every
	// enabled auto-review project and each member of its annotator groups.
	// It returns the number of rows inserted.
	EnsureAll(ctx context.Context, tx *sqlx.Tx) (int64, error)
}
