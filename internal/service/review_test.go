package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/clickwork/clickwork/internal/apperrors"
	"github.com/clickwork/clickwork/internal/domain"
	"github.com/clickwork/clickwork/internal/tasktype"
	"github.com/clickwork/clickwork/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newReview(m *repoMocks) *ReviewServiceImpl {
	return NewReviewService(m.base(), tasktype.DefaultRegistry())
}

func simplePayload(text string) json.RawMessage {
	return json.RawMessage(`{"answer":"` + text + `","comment":""}`)
}

func TestReviewServiceImpl_NextReview(t *testing.T) {
	ctx := context.Background()

	t.Run("open review", func(t *testing.T) {
		m := newRepoMocks()
		tx := expectTx(t, m.transactor, true)
		m.users.On("GetUser", ctx, tx, "w2").Return(activeUser("w2"), nil).Once()
		m.reviews.On("NextOpenReview", ctx, tx, "w2").Return(&domain.Review{ID: 9}, nil).Once()

		route, err := newReview(m).NextReview(ctx, "w2")
		require.NoError(t, err)
		assert.Equal(t, api.ReviewRoute(9), route)
		m.assertExpectations(t)
	})

	t.Run("nothing open", func(t *testing.T) {
		m := newRepoMocks()
		tx := expectTx(t, m.transactor, true)
		m.users.On("GetUser", ctx, tx, "w2").Return(activeUser("w2"), nil).Once()
		m.reviews.On("NextOpenReview", ctx, tx, "w2").Return(nil, notFound()).Once()

		route, err := newReview(m).NextReview(ctx, "w2")
		require.NoError(t, err)
		assert.Equal(t, api.HomeRoute(), route)
		m.assertExpectations(t)
	})
}

func TestReviewServiceImpl_ViewReview(t *testing.T) {
	ctx := context.Background()
	review := &domain.ReviewDetail{
		Review:         domain.Review{ID: 9, ResponseID: 101, Comment: "check the tail", CreatedAt: testNow},
		TaskID:         20,
		ResponseUserID: "w2",
	}
	responses := []domain.ResponseDetail{
		{Response: domain.Response{ID: 100, TaskID: 20, UserID: "w1", Payload: simplePayload("yes")}, Username: "w1-name"},
		{Response: domain.Response{ID: 101, TaskID: 20, UserID: "w2", Payload: simplePayload("no")}, Username: "w2-name"},
	}
	result := &domain.Result{ID: 3, TaskID: 20, UserID: "m1", Payload: simplePayload("yes")}

	testCases := []struct {
		name      string
		user      *domain.User
		forbidden bool
	}{
		{name: "response author", user: activeUser("w2")},
		{name: "merger", user: activeUser("m1")},
		{name: "superuser", user: &domain.User{ID: "root", IsSuperuser: true, IsActive: true}},
		{name: "bystander", user: activeUser("w1"), forbidden: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := newRepoMocks()
			tx := expectTx(t, m.transactor, !tc.forbidden)

			m.users.On("GetUser", ctx, tx, tc.user.ID).Return(tc.user, nil).Once()
			m.reviews.On("GetReview", ctx, tx, int64(9)).Return(review, nil).Once()
			m.taskQuery.On("GetTask", ctx, tx, int64(20)).Return(&domain.Task{ID: 20, ProjectID: 1, Completed: true, Payload: question}, nil).Once()
			m.taskQuery.On("ListResponses", ctx, tx, int64(20)).Return(responses, nil).Once()
			m.taskQuery.On("GetResult", ctx, tx, int64(20)).Return(result, nil).Once()

			if !tc.forbidden {
				m.projects.On("GetProject", ctx, tx, int64(1)).Return(&domain.Project{ID: 1, Type: tasktype.SimpleName}, nil).Once()
			}

			view, err := newReview(m).ViewReview(ctx, tc.user.ID, 9)
			if tc.forbidden {
				assert.ErrorIs(t, err, apperrors.ErrForbidden)
				m.assertExpectations(t)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, int64(101), view.ResponseID)
			assert.Equal(t, "check the tail", view.Comment)
			assert.Contains(t, string(view.Input), `"user":"w2-name"`)
			assert.Contains(t, string(view.Input), `"result":{"answer":"yes"`)
			m.assertExpectations(t)
		})
	}
}

func TestReviewServiceImpl_AcknowledgeReview(t *testing.T) {
	ctx := context.Background()
	open := &domain.ReviewDetail{Review: domain.Review{ID: 9, ResponseID: 101}, TaskID: 20, ResponseUserID: "w2"}

	t.Run("routes to the next open review", func(t *testing.T) {
		m := newRepoMocks()
		tx := expectTx(t, m.transactor, true)

		m.users.On("LockUser", ctx, tx, "w2").Return(activeUser("w2"), nil).Once()
		m.reviews.On("GetReview", ctx, tx, int64(9)).Return(open, nil).Once()
		m.reviews.On("CompleteReview", ctx, tx, int64(9)).Return(nil).Once()
		m.reviews.On("NextOpenReview", ctx, tx, "w2").Return(&domain.Review{ID: 10}, nil).Once()

		route, err := newReview(m).AcknowledgeReview(ctx, "w2", 9)
		require.NoError(t, err)
		assert.Equal(t, api.ReviewRoute(10), route)
		m.assertExpectations(t)
	})

	t.Run("last review routes home", func(t *testing.T) {
		m := newRepoMocks()
		tx := expectTx(t, m.transactor, true)

		m.users.On("LockUser", ctx, tx, "w2").Return(activeUser("w2"), nil).Once()
		m.reviews.On("GetReview", ctx, tx, int64(9)).Return(open, nil).Once()
		m.reviews.On("CompleteReview", ctx, tx, int64(9)).Return(nil).Once()
		m.reviews.On("NextOpenReview", ctx, tx, "w2").Return(nil, notFound()).Once()

		route, err := newReview(m).AcknowledgeReview(ctx, "w2", 9)
		require.NoError(t, err)
		assert.Equal(t, api.HomeRoute(), route)
		m.assertExpectations(t)
	})

	t.Run("already complete", func(t *testing.T) {
		m := newRepoMocks()
		tx := expectTx(t, m.transactor, true)
		done := &domain.ReviewDetail{Review: domain.Review{ID: 9, Complete: true}, TaskID: 20, ResponseUserID: "w2"}

		m.users.On("LockUser", ctx, tx, "w2").Return(activeUser("w2"), nil).Once()
		m.reviews.On("GetReview", ctx, tx, int64(9)).Return(done, nil).Once()
		m.reviews.On("NextOpenReview", ctx, tx, "w2").Return(nil, notFound()).Once()

		_, err := newReview(m).AcknowledgeReview(ctx, "w2", 9)
		require.NoError(t, err)
		m.reviews.AssertNotCalled(t, "CompleteReview", mock.Anything, mock.Anything, mock.Anything)
		m.assertExpectations(t)
	})

	t.Run("another worker", func(t *testing.T) {
		m := newRepoMocks()
		tx := expectTx(t, m.transactor, false)

		m.users.On("LockUser", ctx, tx, "m1").Return(activeUser("m1"), nil).Once()
		m.reviews.On("GetReview", ctx, tx, int64(9)).Return(open, nil).Once()

		_, err := newReview(m).AcknowledgeReview(ctx, "m1", 9)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		m.assertExpectations(t)
	})
}

func TestReviewServiceImpl_ViewTask(t *testing.T) {
	ctx := context.Background()
	project := &domain.Project{ID: 1, Type: tasktype.SimpleName, Priority: 2, AnnotatorCount: 2}
	responses := []domain.ResponseDetail{
		{Response: domain.Response{ID: 100, TaskID: 20, UserID: "w1", Payload: simplePayload("yes")}, Username: "w1-name"},
	}

	testCases := []struct {
		name      string
		user      *domain.User
		task      *domain.Task
		claim     *domain.WorkInProgress
		result    *domain.Result
		mode      api.TaskMode
		review    bool
		forbidden bool
	}{
		{
			name:  "claim holder annotates",
			user:  activeUser("w2"),
			task:  &domain.Task{ID: 20, ProjectID: 1, CompletedAssignments: 1, Payload: question},
			claim: &domain.WorkInProgress{ID: 1, TaskID: 20, UserID: "w2"},
			mode:  api.ModeAnnotate,
		},
		{
			name:  "claim holder merges",
			user:  activeUser("m1"),
			task:  &domain.Task{ID: 20, ProjectID: 1, CompletedAssignments: 2, Completed: true, Payload: question},
			claim: &domain.WorkInProgress{ID: 2, TaskID: 20, UserID: "m1"},
			mode:  api.ModeMerge,
		},
		{
			name:   "merger sees the merged task",
			user:   activeUser("m1"),
			task:   &domain.Task{ID: 20, ProjectID: 1, CompletedAssignments: 2, Completed: true, Payload: question},
			result: &domain.Result{ID: 3, TaskID: 20, UserID: "m1", Payload: simplePayload("yes")},
			mode:   api.ModeMerged,
			review: true,
		},
		{
			name: "superuser without a claim",
			user: &domain.User{ID: "root", IsSuperuser: true, IsActive: true},
			task: &domain.Task{ID: 20, ProjectID: 1, Payload: question},
			mode: api.ModeAnnotate,
		},
		{
			name:      "claim on another task",
			user:      activeUser("w3"),
			task:      &domain.Task{ID: 20, ProjectID: 1, Payload: question},
			claim:     &domain.WorkInProgress{ID: 4, TaskID: 21, UserID: "w3"},
			forbidden: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := newRepoMocks()
			tx := expectTx(t, m.transactor, !tc.forbidden)

			m.users.On("GetUser", ctx, tx, tc.user.ID).Return(tc.user, nil).Once()
			m.taskQuery.On("GetTask", ctx, tx, int64(20)).Return(tc.task, nil).Once()
			m.projects.On("GetProject", ctx, tx, int64(1)).Return(project, nil).Once()
			m.claims.On("ListClaimOwners", ctx, tx, int64(20)).Return([]string{"w2-name"}, nil).Once()

			if tc.claim != nil {
				m.claims.On("GetClaimByUser", ctx, tx, tc.user.ID).Return(tc.claim, nil).Once()
			} else {
				m.claims.On("GetClaimByUser", ctx, tx, tc.user.ID).Return(nil, notFound()).Once()
			}

			m.taskQuery.On("ListResponses", ctx, tx, int64(20)).Return(responses, nil).Once()

			if tc.result != nil {
				m.taskQuery.On("GetResult", ctx, tx, int64(20)).Return(tc.result, nil).Once()
			} else {
				m.taskQuery.On("GetResult", ctx, tx, int64(20)).Return(nil, notFound()).Once()
			}

			view, err := newReview(m).ViewTask(ctx, tc.user.ID, 20)
			if tc.forbidden {
				assert.ErrorIs(t, err, apperrors.ErrForbidden)
				m.assertExpectations(t)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.mode, view.Mode)
			assert.Equal(t, tc.review, view.Review)
			assert.Equal(t, []string{"w2-name"}, view.ClaimOwners)
			assert.Contains(t, string(view.Input), "Is this a cat?")
			m.assertExpectations(t)
		})
	}
}

func TestReviewServiceImpl_ViewTask_AutoReview(t *testing.T) {
	ctx := context.Background()
	shownAt := testNow.Add(-time.Minute)
	project := &domain.Project{ID: 7, Type: tasktype.SimpleName, Priority: 1, AnnotatorCount: 1, AutoReview: true}
	task := &domain.Task{ID: 80, ProjectID: 7, Payload: question}
	ar := &domain.AutoReview{ID: 1, TaskID: 80, UserID: "w1", StartTime: &shownAt}

	expectAutoReviewView := func(m *repoMocks, commit bool, ar *domain.AutoReview) any {
		tx := expectTx(t, m.transactor, commit)

		m.users.On("GetUser", ctx, tx, "w1").Return(activeUser("w1"), nil).Once()
		m.taskQuery.On("GetTask", ctx, tx, int64(80)).Return(task, nil).Once()
		m.projects.On("GetProject", ctx, tx, int64(7)).Return(project, nil).Once()
		m.claims.On("ListClaimOwners", ctx, tx, int64(80)).Return([]string{}, nil).Once()

		if ar == nil {
			m.autoReviews.On("GetForUser", ctx, tx, int64(80), "w1").Return(nil, notFound()).Once()
		} else {
			m.autoReviews.On("GetForUser", ctx, tx, int64(80), "w1").Return(ar, nil).Once()
		}

		return tx
	}

	t.Run("before answering", func(t *testing.T) {
		m := newRepoMocks()
		tx := expectAutoReviewView(m, true, ar)
		m.taskQuery.On("ListResponses", ctx, tx, int64(80)).Return([]domain.ResponseDetail{}, nil).Once()

		view, err := newReview(m).ViewTask(ctx, "w1", 80)
		require.NoError(t, err)
		assert.Equal(t, api.ModeAutoReview, view.Mode)
		assert.False(t, view.Review)
		assert.JSONEq(t, `{"question":"Is this a cat?"}`, string(view.Input))
		m.assertExpectations(t)
	})

	t.Run("comparison after answering", func(t *testing.T) {
		m := newRepoMocks()
		tx := expectAutoReviewView(m, true, ar)
		m.taskQuery.On("ListResponses", ctx, tx, int64(80)).Return([]domain.ResponseDetail{
			{Response: domain.Response{ID: 7, TaskID: 80, UserID: "other", Payload: simplePayload("no")}, Username: "other-name"},
			{Response: domain.Response{ID: 8, TaskID: 80, UserID: "w1", Payload: simplePayload("Yes")}, Username: "w1-name"},
		}, nil).Once()
		m.taskQuery.On("GetExpectedResponse", ctx, tx, int64(80)).
			Return(&domain.ExpectedResponse{TaskID: 80, Payload: simplePayload("yes")}, nil).Once()

		view, err := newReview(m).ViewTask(ctx, "w1", 80)
		require.NoError(t, err)
		assert.True(t, view.Review)
		assert.Contains(t, string(view.Input), `"correct":true`)
		assert.NotContains(t, string(view.Input), "other-name")
		m.assertExpectations(t)
	})

	t.Run("no auto-review", func(t *testing.T) {
		m := newRepoMocks()
		expectAutoReviewView(m, false, nil)

		_, err := newReview(m).ViewTask(ctx, "w1", 80)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		m.assertExpectations(t)
	})
}
