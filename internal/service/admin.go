package service

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"path"
	"slices"
	"strconv"

	"github.com/clickwork/clickwork/internal/apperrors"
	"github.com/clickwork/clickwork/pkg/api"
	"github.com/jmoiron/sqlx"
)

type AdminService interface {
	// ListClaims lists live claims visible to the user: every claim for a
	// superuser, claims on administered projects for a project admin.
	ListClaims(ctx context.Context, userID string) ([]api.Claim, error)
	DeleteClaims(ctx context.Context, userID string, claimIDs []int64) (int, error)
	ProjectOverview(ctx context.Context, userID string, projectID int64) (*api.ProjectOverview, error)
	SyncAutoReviews(ctx context.Context) (int64, error)
	// ExportProject hands every task's exported files to write, named
	// task-<id>/<file>, and returns the number of tasks exported.
	ExportProject(ctx context.Context, projectID int64, write func(name string, data []byte) error) (int, error)
}

type AdminServiceImpl struct {
	BaseService
	types TaskTypes
}

func NewAdminService(base BaseService, types TaskTypes) *AdminServiceImpl {
	return &AdminServiceImpl{
		BaseService: base,
		types:       types,
	}
}

// claimScope returns the admin filter for claim listings: empty for
// superusers, the user id for project admins.
func (s *AdminServiceImpl) claimScope(ctx context.Context, tx *sqlx.Tx, userID string) (string, error) {
	const op = "internal.service.admin.claimScope"

	user, err := s.worker(ctx, tx, userID, false)
	if err != nil {
		return "", err
	}

	if user.IsSuperuser {
		return "", nil
	}

	administered, err := s.repos.Projects.CountAdministered(ctx, tx, userID)
	if err != nil {
		return "", fmt.Errorf("%s: failed to count administered projects: %w", op, err)
	}

	if administered == 0 {
		return "", fmt.Errorf("%s: %w", op, &apperrors.ForbiddenError{Reason: "claim review requires a superuser or project admin"})
	}

	return userID, nil
}

func (s *AdminServiceImpl) ListClaims(ctx context.Context, userID string) ([]api.Claim, error) {
	const op = "internal.service.admin.ListClaims"

	var claims []api.Claim

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		adminID, err := s.claimScope(ctx, tx, userID)
		if err != nil {
			return err
		}

		infos, err := s.repos.Claims.ListClaims(ctx, tx, adminID)
		if err != nil {
			return fmt.Errorf("%s: failed to list claims: %w", op, err)
		}

		claims = make([]api.Claim, 0, len(infos))
		for _, c := range infos {
			claims = append(claims, api.Claim{
				ID:           c.ID,
				TaskID:       c.TaskID,
				UserID:       c.UserID,
				Username:     c.Username,
				ProjectID:    c.ProjectID,
				ProjectTitle: c.ProjectTitle,
				StartTime:    c.StartTime,
			})
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return claims, nil
}

func (s *AdminServiceImpl) DeleteClaims(ctx context.Context, userID string, claimIDs []int64) (int, error) {
	const op = "internal.service.admin.DeleteClaims"
	log := s.log.With(slog.String("op", op), slog.String("user_id", userID))

	var deleted int

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		adminID, err := s.claimScope(ctx, tx, userID)
		if err != nil {
			return err
		}

		if len(claimIDs) == 0 {
			return nil
		}

		deleted, err = s.repos.Claims.DeleteClaims(ctx, tx, claimIDs, adminID)
		if err != nil {
			return fmt.Errorf("%s: failed to delete claims: %w", op, err)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	log.Info("claims deleted", slog.Int("requested", len(claimIDs)), slog.Int("deleted", deleted))

	return deleted, nil
}

func (s *AdminServiceImpl) ProjectOverview(ctx context.Context, userID string, projectID int64) (*api.ProjectOverview, error) {
	const op = "internal.service.admin.ProjectOverview"

	var overview *api.ProjectOverview

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		user, err := s.worker(ctx, tx, userID, false)
		if err != nil {
			return err
		}

		project, err := s.repos.Projects.GetProject(ctx, tx, projectID)
		if err != nil {
			return fmt.Errorf("%s: failed to get project: %w", op, err)
		}

		if !user.IsSuperuser && project.AdminID != userID {
			return fmt.Errorf("%s: %w", op, &apperrors.ForbiddenError{Reason: fmt.Sprintf("you do not administer project %d", projectID)})
		}

		progress, err := s.repos.Projects.GetProgress(ctx, tx, projectID)
		if err != nil {
			return fmt.Errorf("%s: failed to get progress: %w", op, err)
		}

		overview = &api.ProjectOverview{
			ProjectID:    project.ID,
			Title:        project.Title,
			Buckets:      make([]api.AssignmentBucket, 0, len(progress.Buckets)),
			NeedsMerging: progress.NeedsMerging,
			Finished:     progress.Finished,
		}

		for _, b := range progress.Buckets {
			overview.Buckets = append(overview.Buckets, api.AssignmentBucket{
				CompletedAssignments: b.CompletedAssignments,
				Count:                b.Count,
			})
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return overview, nil
}

func (s *AdminServiceImpl) SyncAutoReviews(ctx context.Context) (int64, error) {
	const op = "internal.service.admin.SyncAutoReviews"
	log := s.log.With(slog.String("op", op))

	var created int64

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		var err error

		created, err = s.repos.AutoReviews.EnsureAll(ctx, tx)
		if err != nil {
			return fmt.Errorf("%s: failed to create auto-reviews: %w", op, err)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	autoReviewsCreatedTotal.Add(float64(created))
	log.Info("auto-reviews synced", slog.Int64("created", created))

	return created, nil
}

func (s *AdminServiceImpl) ExportProject(ctx context.Context, projectID int64, write func(name string, data []byte) error) (int, error) {
	const op = "internal.service.admin.ExportProject"
	log := s.log.With(slog.String("op", op), slog.Int64("project_id", projectID))

	var exported int

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		project, err := s.repos.Projects.GetProject(ctx, tx, projectID)
		if err != nil {
			return fmt.Errorf("%s: failed to get project: %w", op, err)
		}

		tt, err := s.types.Lookup(project.Type)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		tasks, err := s.repos.TaskQuery.ListProjectTasks(ctx, tx, projectID)
		if err != nil {
			return fmt.Errorf("%s: failed to list tasks: %w", op, err)
		}

		for _, task := range tasks {
			responses, err := s.repos.TaskQuery.ListResponses(ctx, tx, task.ID)
			if err != nil {
				return fmt.Errorf("%s: failed to list responses: %w", op, err)
			}

			files, err := tt.Export(task, responses)
			if err != nil {
				return fmt.Errorf("%s: failed to export task %d: %w", op, task.ID, err)
			}

			dir := "task-" + strconv.FormatInt(task.ID, 10)
			for _, name := range slices.Sorted(maps.Keys(files)) {
				if err := write(path.Join(dir, name), files[name]); err != nil {
					return fmt.Errorf("%s: failed to write %s: %w", op, name, err)
				}
			}

			exported++
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	log.Info("project exported", slog.Int("tasks", exported))

	return exported, nil
}
