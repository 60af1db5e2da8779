// Package app wires repositories, services and task types from config.
package app

import (
	"fmt"
	"log/slog"

	"github.com/clickwork/clickwork/internal/config"
	"github.com/clickwork/clickwork/internal/exclusion"
	"github.com/clickwork/clickwork/internal/repository/postgres"
	"github.com/clickwork/clickwork/internal/schedule"
	"github.com/clickwork/clickwork/internal/service"
	"github.com/clickwork/clickwork/internal/tasktype"
)

type Services struct {
	Assignment *service.AssignmentServiceImpl
	Submission *service.SubmissionServiceImpl
	Review     *service.ReviewServiceImpl
	Admin      *service.AdminServiceImpl
}

func NewServices(log *slog.Logger, db service.Transactor, cfg *config.Config) (*Services, error) {
	groups, err := exclusion.Load(cfg.Exclusion.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load exclusion groups: %w", err)
	}

	tasks := postgres.NewTaskRepository(log)

	base := service.NewBaseService(db, log, service.Repositories{
		Users:       postgres.NewUserRepository(log),
		Projects:    postgres.NewProjectRepository(log),
		TaskQuery:   tasks,
		TaskCmd:     tasks,
		Eligibility: postgres.NewEligibilityRepository(log),
		Claims:      postgres.NewClaimRepository(log),
		Reviews:     postgres.NewReviewRepository(log),
		AutoReviews: postgres.NewAutoReviewRepository(log),
	})

	types := tasktype.DefaultRegistry()

	assignment := service.NewAssignmentService(
		base,
		exclusion.NewResolver(groups),
		schedule.NewRanker(cfg.Scheduler.Seed),
		cfg.Scheduler.CandidateWindow,
	)

	log.Debug("services wired",
		slog.Int("keep_apart_groups", len(groups)),
		slog.Any("task_types", types.Names()),
	)

	return &Services{
		Assignment: assignment,
		Submission: service.NewSubmissionService(base, types, assignment),
		Review:     service.NewReviewService(base, types),
		Admin:      service.NewAdminService(base, types),
	}, nil
}
