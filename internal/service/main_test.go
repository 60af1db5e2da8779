package service

import (
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

func newMockDBAndTx(t *testing.T) (*sqlx.DB, *sqlx.Tx, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, smock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")

	smock.ExpectBegin()

	tx, err := sqlxDB.Beginx()
	require.NoError(t, err)

	return sqlxDB, tx, smock
}

// expectTx registers one BeginTxx call on transactor and returns the
// transaction it hands out, expected to commit or roll back.
func expectTx(t *testing.T, transactor *TransactorMock, commit bool) *sqlx.Tx {
	t.Helper()

	_, tx, smock := newMockDBAndTx(t)
	if commit {
		smock.ExpectCommit()
	} else {
		smock.ExpectRollback()
	}

	transactor.On("BeginTxx", mock.Anything, (*sql.TxOptions)(nil)).Return(tx, nil).Once()

	t.Cleanup(func() {
		assert.NoError(t, smock.ExpectationsWereMet())
	})

	return tx
}

type repoMocks struct {
	transactor  *TransactorMock
	users       *UserRepositoryMock
	projects    *ProjectRepositoryMock
	taskQuery   *TaskQueryRepositoryMock
	taskCmd     *TaskCommandRepositoryMock
	eligibility *EligibilityRepositoryMock
	claims      *ClaimRepositoryMock
	reviews     *ReviewRepositoryMock
	autoReviews *AutoReviewRepositoryMock
}

func newRepoMocks() *repoMocks {
	return &repoMocks{
		transactor:  new(TransactorMock),
		users:       new(UserRepositoryMock),
		projects:    new(ProjectRepositoryMock),
		taskQuery:   new(TaskQueryRepositoryMock),
		taskCmd:     new(TaskCommandRepositoryMock),
		eligibility: new(EligibilityRepositoryMock),
		claims:      new(ClaimRepositoryMock),
		reviews:     new(ReviewRepositoryMock),
		autoReviews: new(AutoReviewRepositoryMock),
	}
}

// base builds a BaseService over the mocks with the clock frozen at testNow.
func (m *repoMocks) base() BaseService {
	b := NewBaseService(m.transactor, slog.New(slog.NewTextHandler(io.Discard, nil)), Repositories{
		Users:       m.users,
		Projects:    m.projects,
		TaskQuery:   m.taskQuery,
		TaskCmd:     m.taskCmd,
		Eligibility: m.eligibility,
		Claims:      m.claims,
		Reviews:     m.reviews,
		AutoReviews: m.autoReviews,
	})
	b.now = func() time.Time { return testNow }

	return b
}

func (m *repoMocks) assertExpectations(t *testing.T) {
	t.Helper()

	m.transactor.AssertExpectations(t)
	m.users.AssertExpectations(t)
	m.projects.AssertExpectations(t)
	m.taskQuery.AssertExpectations(t)
	m.taskCmd.AssertExpectations(t)
	m.eligibility.AssertExpectations(t)
	m.claims.AssertExpectations(t)
	m.reviews.AssertExpectations(t)
	m.autoReviews.AssertExpectations(t)
}
