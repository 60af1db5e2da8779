package http

import (
	"context"

	"github.com/clickwork/clickwork/internal/domain"
	"github.com/clickwork/clickwork/internal/service"
	"github.com/clickwork/clickwork/pkg/api"
	"github.com/stretchr/testify/mock"
)

type AssignmentServiceMock struct {
	mock.Mock
}

var _ service.AssignmentService = (*AssignmentServiceMock)(nil)

func (m *AssignmentServiceMock) NextTask(ctx context.Context, userID string) (api.Route, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(api.Route), args.Error(1)
}

func (m *AssignmentServiceMock) Abandon(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *AssignmentServiceMock) Home(ctx context.Context, userID string) (*api.HomeSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*api.HomeSummary), args.Error(1)
}

type SubmissionServiceMock struct {
	mock.Mock
}

var _ service.SubmissionService = (*SubmissionServiceMock)(nil)

func (m *SubmissionServiceMock) Submit(ctx context.Context, userID string, taskID int64, sub domain.Submission) (api.Route, error) {
	args := m.Called(ctx, userID, taskID, sub)
	return args.Get(0).(api.Route), args.Error(1)
}

func (m *SubmissionServiceMock) Unmerge(ctx context.Context, userID string, taskID int64) (api.Route, error) {
	args := m.Called(ctx, userID, taskID)
	return args.Get(0).(api.Route), args.Error(1)
}

type ReviewServiceMock struct {
	mock.Mock
}

var _ service.ReviewService = (*ReviewServiceMock)(nil)

func (m *ReviewServiceMock) NextReview(ctx context.Context, userID string) (api.Route, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(api.Route), args.Error(1)
}

func (m *ReviewServiceMock) ViewReview(ctx context.Context, userID string, reviewID int64) (*api.ReviewView, error) {
	args := m.Called(ctx, userID, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*api.ReviewView), args.Error(1)
}

func (m *ReviewServiceMock) AcknowledgeReview(ctx context.Context, userID string, reviewID int64) (api.Route, error) {
	args := m.Called(ctx, userID, reviewID)
	return args.Get(0).(api.Route), args.Error(1)
}

func (m *ReviewServiceMock) ViewTask(ctx context.Context, userID string, taskID int64) (*api.TaskView, error) {
	args := m.Called(ctx, userID, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*api.TaskView), args.Error(1)
}

type AdminServiceMock struct {
	mock.Mock
}

var _ service.AdminService = (*AdminServiceMock)(nil)

func (m *AdminServiceMock) ListClaims(ctx context.Context, userID string) ([]api.Claim, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]api.Claim), args.Error(1)
}

func (m *AdminServiceMock) DeleteClaims(ctx context.Context, userID string, claimIDs []int64) (int, error) {
	args := m.Called(ctx, userID, claimIDs)
	return args.Int(0), args.Error(1)
}

func (m *AdminServiceMock) ProjectOverview(ctx context.Context, userID string, projectID int64) (*api.ProjectOverview, error) {
	args := m.Called(ctx, userID, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*api.ProjectOverview), args.Error(1)
}

func (m *AdminServiceMock) SyncAutoReviews(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *AdminServiceMock) ExportProject(ctx context.Context, projectID int64, write func(name string, data []byte) error) (int, error) {
	args := m.Called(ctx, projectID, write)
	return args.Int(0), args.Error(1)
}
