package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/clickwork/clickwork/internal/apperrors"
	"github.com/clickwork/clickwork/internal/domain"
	"github.com/clickwork/clickwork/internal/repository"
	"github.com/clickwork/clickwork/internal/tasktype"
	"github.com/clickwork/clickwork/pkg/logger/sl"
	"github.com/jmoiron/sqlx"
)

type Transactor interface {
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

// Repositories bundles the stores the services read and write.
type Repositories struct {
	Users       repository.UserRepository
	Projects    repository.ProjectRepository
	TaskQuery   repository.TaskQueryRepository
	TaskCmd     repository.TaskCommandRepository
	Eligibility repository.EligibilityRepository
	Claims      repository.ClaimRepository
	Reviews     repository.ReviewRepository
	AutoReviews repository.AutoReviewRepository
}

type TaskTypes interface {
	Lookup(name string) (tasktype.TaskType, error)
}

type BaseService struct {
	db    Transactor
	log   *slog.Logger
	repos Repositories
	now   func() time.Time
}

func NewBaseService(db Transactor, log *slog.Logger, repos Repositories) BaseService {
	return BaseService{
		db:    db,
		log:   log,
		repos: repos,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *BaseService) transaction(ctx context.Context, op string, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			s.log.Error("failed to rollback transaction", slog.String("op", op), sl.Err(err))
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	return nil
}

// worker loads the caller, optionally locking the row.
func (s *BaseService) worker(ctx context.Context, tx *sqlx.Tx, userID string, lock bool) (*domain.User, error) {
	var (
		user *domain.User
		err  error
	)

	if lock {
		user, err = s.repos.Users.LockUser(ctx, tx, userID)
	} else {
		user, err = s.repos.Users.GetUser(ctx, tx, userID)
	}

	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown worker '%s'", apperrors.ErrUnauthorized, userID)
		}

		return nil, err
	}

	if !user.IsActive {
		return nil, &apperrors.ForbiddenError{Reason: "account is inactive"}
	}

	return user, nil
}

// optional turns apperrors.ErrNotFound into a nil result.
func optional[T any](v *T, err error) (*T, error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil
	}

	return v, err
}
