// Package jobs runs clickwork's periodic background work.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/clickwork/clickwork/pkg/logger/sl"
	"github.com/robfig/cron/v3"
)

// cronParser accepts standard 5-field expressions (minute, hour, dom, month, dow).
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

type AutoReviewSyncer interface {
	SyncAutoReviews(ctx context.Context) (int64, error)
}

// AutoReviewSync creates missing auto-reviews on a cron schedule.
type AutoReviewSync struct {
	log      *slog.Logger
	syncer   AutoReviewSyncer
	schedule cron.Schedule
}

func NewAutoReviewSync(log *slog.Logger, syncer AutoReviewSyncer, expr string) (*AutoReviewSync, error) {
	schedule, err := cronParser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid auto-review sync schedule %q: %w", expr, err)
	}

	return &AutoReviewSync{
		log:      log.With(slog.String("job", "auto_review_sync")),
		syncer:   syncer,
		schedule: schedule,
	}, nil
}

// Next returns the first fire time after from.
func (j *AutoReviewSync) Next(from time.Time) time.Time {
	return j.schedule.Next(from)
}

// Run syncs once immediately and then on every scheduled tick until ctx is
// done. Failed runs are logged and retried at the next tick.
func (j *AutoReviewSync) Run(ctx context.Context) {
	j.log.Info("auto-review sync started")

	if err := j.RunOnce(ctx); err != nil {
		j.log.Error("auto-review sync failed", sl.Err(err))
	}

	timer := time.NewTimer(time.Until(j.Next(time.Now())))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			j.log.Info("auto-review sync stopped")
			return
		case <-timer.C:
			if err := j.RunOnce(ctx); err != nil {
				j.log.Error("auto-review sync failed", sl.Err(err))
			}

			timer.Reset(time.Until(j.Next(time.Now())))
		}
	}
}

func (j *AutoReviewSync) RunOnce(ctx context.Context) error {
	created, err := j.syncer.SyncAutoReviews(ctx)
	if err != nil {
		return err
	}

	if created > 0 {
		j.log.Info("auto-reviews created", slog.Int64("count", created))
	}

	return nil
}
