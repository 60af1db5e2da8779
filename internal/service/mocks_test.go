package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/clickwork/clickwork/internal/domain"
	"github.com/clickwork/clickwork/internal/repository"
	"github.com/clickwork/clickwork/pkg/api"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"
)

type UserRepositoryMock struct {
	mock.Mock
}

var _ repository.UserRepository = (*UserRepositoryMock)(nil)

func (m *UserRepositoryMock) GetUser(ctx context.Context, ext sqlx.ExtContext, userID string) (*domain.User, error) {
	args := m.Called(ctx, ext, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepositoryMock) LockUser(ctx context.Context, tx *sqlx.Tx, userID string) (*domain.User, error) {
	args := m.Called(ctx, tx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.User), args.Error(1)
}

type ProjectRepositoryMock struct {
	mock.Mock
}

var _ repository.ProjectRepository = (*ProjectRepositoryMock)(nil)

func (m *ProjectRepositoryMock) GetProject(ctx context.Context, ext sqlx.ExtContext, projectID int64) (*domain.Project, error) {
	args := m.Called(ctx, ext, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *ProjectRepositoryMock) CountAdministered(ctx context.Context, ext sqlx.ExtContext, userID string) (int, error) {
	args := m.Called(ctx, ext, userID)
	return args.Int(0), args.Error(1)
}

func (m *ProjectRepositoryMock) GetProgress(ctx context.Context, ext sqlx.ExtContext, projectID int64) (*domain.ProjectProgress, error) {
	args := m.Called(ctx, ext, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.ProjectProgress), args.Error(1)
}

type TaskQueryRepositoryMock struct {
	mock.Mock
}

var _ repository.TaskQueryRepository = (*TaskQueryRepositoryMock)(nil)

func (m *TaskQueryRepositoryMock) GetTask(ctx context.Context, ext sqlx.ExtContext, taskID int64) (*domain.Task, error) {
	args := m.Called(ctx, ext, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *TaskQueryRepositoryMock) ListProjectTasks(ctx context.Context, ext sqlx.ExtContext, projectID int64) ([]domain.Task, error) {
	args := m.Called(ctx, ext, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Task), args.Error(1)
}

func (m *TaskQueryRepositoryMock) ListResponses(ctx context.Context, ext sqlx.ExtContext, taskID int64) ([]domain.ResponseDetail, error) {
	args := m.Called(ctx, ext, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.ResponseDetail), args.Error(1)
}

func (m *TaskQueryRepositoryMock) GetResponseByUser(ctx context.Context, ext sqlx.ExtContext, taskID int64, userID string) (*domain.Response, error) {
	args := m.Called(ctx, ext, taskID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Response), args.Error(1)
}

func (m *TaskQueryRepositoryMock) GetResult(ctx context.Context, ext sqlx.ExtContext, taskID int64) (*domain.Result, error) {
	args := m.Called(ctx, ext, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Result), args.Error(1)
}

func (m *TaskQueryRepositoryMock) GetExpectedResponse(ctx context.Context, ext sqlx.ExtContext, taskID int64) (*domain.ExpectedResponse, error) {
	args := m.Called(ctx, ext, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.ExpectedResponse), args.Error(1)
}

type TaskCommandRepositoryMock struct {
	mock.Mock
}

var _ repository.TaskCommandRepository = (*TaskCommandRepositoryMock)(nil)

func (m *TaskCommandRepositoryMock) GetTaskWithLock(ctx context.Context, tx *sqlx.Tx, taskID int64) (*domain.Task, error) {
	args := m.Called(ctx, tx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *TaskCommandRepositoryMock) UpdateProgress(ctx context.Context, tx *sqlx.Tx, task *domain.Task) error {
	args := m.Called(ctx, tx, task)
	return args.Error(0)
}

func (m *TaskCommandRepositoryMock) CreateResponse(ctx context.Context, tx *sqlx.Tx, resp *domain.Response) error {
	args := m.Called(ctx, tx, resp)
	return args.Error(0)
}

func (m *TaskCommandRepositoryMock) CreateResult(ctx context.Context, tx *sqlx.Tx, result *domain.Result) error {
	args := m.Called(ctx, tx, result)
	return args.Error(0)
}

func (m *TaskCommandRepositoryMock) DeleteResult(ctx context.Context, tx *sqlx.Tx, taskID int64) (bool, error) {
	args := m.Called(ctx, tx, taskID)
	return args.Bool(0), args.Error(1)
}

type EligibilityRepositoryMock struct {
	mock.Mock
}

var _ repository.EligibilityRepository = (*EligibilityRepositoryMock)(nil)

func (m *EligibilityRepositoryMock) AnnotatableCandidates(ctx context.Context, ext sqlx.ExtContext, userID string, excluded []string, salt string, limit int) ([]domain.Candidate, error) {
	args := m.Called(ctx, ext, userID, excluded, salt, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Candidate), args.Error(1)
}

func (m *EligibilityRepositoryMock) MergeableCandidates(ctx context.Context, ext sqlx.ExtContext, userID string, excluded []string, salt string, limit int) ([]domain.Candidate, error) {
	args := m.Called(ctx, ext, userID, excluded, salt, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Candidate), args.Error(1)
}

func (m *EligibilityRepositoryMock) CountAnnotatable(ctx context.Context, ext sqlx.ExtContext, userID string, excluded []string) (int, error) {
	args := m.Called(ctx, ext, userID, excluded)
	return args.Int(0), args.Error(1)
}

func (m *EligibilityRepositoryMock) CountMergeable(ctx context.Context, ext sqlx.ExtContext, userID string, excluded []string) (int, error) {
	args := m.Called(ctx, ext, userID, excluded)
	return args.Int(0), args.Error(1)
}

type ClaimRepositoryMock struct {
	mock.Mock
}

var _ repository.ClaimRepository = (*ClaimRepositoryMock)(nil)

func (m *ClaimRepositoryMock) GetClaimByUser(ctx context.Context, ext sqlx.ExtContext, userID string) (*domain.WorkInProgress, error) {
	args := m.Called(ctx, ext, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.WorkInProgress), args.Error(1)
}

func (m *ClaimRepositoryMock) CreateClaim(ctx context.Context, tx *sqlx.Tx, taskID int64, userID string, start time.Time) (*domain.WorkInProgress, error) {
	args := m.Called(ctx, tx, taskID, userID, start)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.WorkInProgress), args.Error(1)
}

func (m *ClaimRepositoryMock) RefreshClaim(ctx context.Context, tx *sqlx.Tx, claimID int64, start time.Time) error {
	args := m.Called(ctx, tx, claimID, start)
	return args.Error(0)
}

func (m *ClaimRepositoryMock) DeleteClaim(ctx context.Context, tx *sqlx.Tx, claimID int64) error {
	args := m.Called(ctx, tx, claimID)
	return args.Error(0)
}

func (m *ClaimRepositoryMock) DeleteClaimByUser(ctx context.Context, tx *sqlx.Tx, userID string) (bool, error) {
	args := m.Called(ctx, tx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *ClaimRepositoryMock) ListClaimants(ctx context.Context, ext sqlx.ExtContext, taskID int64) ([]string, error) {
	args := m.Called(ctx, ext, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]string), args.Error(1)
}

func (m *ClaimRepositoryMock) ListClaimOwners(ctx context.Context, ext sqlx.ExtContext, taskID int64) ([]string, error) {
	args := m.Called(ctx, ext, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]string), args.Error(1)
}

func (m *ClaimRepositoryMock) ListClaims(ctx context.Context, ext sqlx.ExtContext, adminID string) ([]domain.ClaimInfo, error) {
	args := m.Called(ctx, ext, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.ClaimInfo), args.Error(1)
}

func (m *ClaimRepositoryMock) DeleteClaims(ctx context.Context, tx *sqlx.Tx, claimIDs []int64, adminID string) (int, error) {
	args := m.Called(ctx, tx, claimIDs, adminID)
	return args.Int(0), args.Error(1)
}

type ReviewRepositoryMock struct {
	mock.Mock
}

var _ repository.ReviewRepository = (*ReviewRepositoryMock)(nil)

func (m *ReviewRepositoryMock) NextOpenReview(ctx context.Context, ext sqlx.ExtContext, userID string) (*domain.Review, error) {
	args := m.Called(ctx, ext, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *ReviewRepositoryMock) CountOpenReviews(ctx context.Context, ext sqlx.ExtContext, userID string) (int, error) {
	args := m.Called(ctx, ext, userID)
	return args.Int(0), args.Error(1)
}

func (m *ReviewRepositoryMock) GetReview(ctx context.Context, ext sqlx.ExtContext, reviewID int64) (*domain.ReviewDetail, error) {
	args := m.Called(ctx, ext, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.ReviewDetail), args.Error(1)
}

func (m *ReviewRepositoryMock) CreateReview(ctx context.Context, tx *sqlx.Tx, responseID int64, comment string) (*domain.Review, error) {
	args := m.Called(ctx, tx, responseID, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *ReviewRepositoryMock) CompleteReview(ctx context.Context, tx *sqlx.Tx, reviewID int64) error {
	args := m.Called(ctx, tx, reviewID)
	return args.Error(0)
}

type AutoReviewRepositoryMock struct {
	mock.Mock
}

var _ repository.AutoReviewRepository = (*AutoReviewRepositoryMock)(nil)

func (m *AutoReviewRepositoryMock) GetForUser(ctx context.Context, ext sqlx.ExtContext, taskID int64, userID string) (*domain.AutoReview, error) {
	args := m.Called(ctx, ext, taskID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.AutoReview), args.Error(1)
}

func (m *AutoReviewRepositoryMock) GetShown(ctx context.Context, ext sqlx.ExtContext, userID string) (*domain.AutoReview, error) {
	args := m.Called(ctx, ext, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.AutoReview), args.Error(1)
}

func (m *AutoReviewRepositoryMock) NextUnseen(ctx context.Context, tx *sqlx.Tx, userID string) (*domain.AutoReview, error) {
	args := m.Called(ctx, tx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.AutoReview), args.Error(1)
}

func (m *AutoReviewRepositoryMock) Save(ctx context.Context, tx *sqlx.Tx, ar *domain.AutoReview) error {
	args := m.Called(ctx, tx, ar)
	return args.Error(0)
}

func (m *AutoReviewRepositoryMock) EnsureAll(ctx context.Context, tx *sqlx.Tx) (int64, error) {
	args := m.Called(ctx, tx)
	return args.Get(0).(int64), args.Error(1)
}

type TransactorMock struct {
	mock.Mock
}

func (m *TransactorMock) BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	var tx *sqlx.Tx

	args := m.Called(ctx, opts)
	if args.Get(0) != nil {
		tx = args.Get(0).(*sqlx.Tx)
	}

	return tx, args.Error(1)
}

type RouterMock struct {
	mock.Mock
}

var _ Router = (*RouterMock)(nil)

func (m *RouterMock) NextTask(ctx context.Context, userID string) (api.Route, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(api.Route), args.Error(1)
}
