package domain

import (
	"fmt"
	"time"

	"github.com/clickwork/clickwork/internal/apperrors"
)

// ValidateClaim rejects claims on tasks of auto-review projects; those are
// tracked through AutoReview records instead.
func ValidateClaim(p Project) error {
	if p.AutoReview {
		return apperrors.NewValidationError(fmt.Sprintf("project %d is an auto-review project and cannot be claimed", p.ID))
	}

	return nil
}

// HasCapacity reports whether one more annotation claim fits under the
// project's annotator count.
func HasCapacity(t Task, liveClaims int, p Project) bool {
	return !t.Completed && liveClaims+t.CompletedAssignments < p.AnnotatorCount
}

// CanMerge reports whether a completed task is free to be claimed for merging.
func CanMerge(t Task, liveClaims int, merged bool) bool {
	return t.Completed && !merged && liveClaims == 0
}

// RecordAssignment counts one finalized annotation. completed never reverts.
func (t *Task) RecordAssignment(p Project) error {
	if t.Completed {
		return apperrors.NewValidationError(fmt.Sprintf("task %d already has all of its annotations", t.ID))
	}

	t.CompletedAssignments++

	if t.CompletedAssignments == p.AnnotatorCount {
		t.Completed = true
	}

	return nil
}

func ValidateWorkTimes(start, end time.Time) error {
	if start.After(end) {
		return apperrors.NewValidationError("work cannot end before it begins").
			WithField("start_time", start.Format(time.RFC3339))
	}

	return nil
}

// ValidateResult checks that a merge may be recorded for t.
func ValidateResult(t Task, p Project, start, end time.Time) error {
	if p.AutoReview {
		return apperrors.NewValidationError(fmt.Sprintf("task %d belongs to an auto-review project and cannot be merged", t.ID))
	}

	if !t.Completed {
		return apperrors.NewValidationError(fmt.Sprintf("task %d cannot be merged before it is annotated", t.ID))
	}

	return ValidateWorkTimes(start, end)
}

type AutoReviewState string

const (
	AutoReviewUnseen       AutoReviewState = "unseen"
	AutoReviewShown        AutoReviewState = "shown"
	AutoReviewAcknowledged AutoReviewState = "acknowledged"
)

func (a AutoReview) State() AutoReviewState {
	switch {
	case a.StartTime == nil:
		return AutoReviewUnseen
	case a.EndTime == nil:
		return AutoReviewShown
	default:
		return AutoReviewAcknowledged
	}
}

func (a *AutoReview) Show(now time.Time) error {
	if a.State() != AutoReviewUnseen {
		return apperrors.NewValidationError(fmt.Sprintf("auto-review %d was already shown", a.ID))
	}

	a.StartTime = &now

	return nil
}

func (a *AutoReview) Acknowledge(now time.Time) error {
	if a.State() != AutoReviewShown {
		return apperrors.NewValidationError(fmt.Sprintf("auto-review %d is %s, not shown", a.ID, a.State()))
	}

	if err := ValidateWorkTimes(*a.StartTime, now); err != nil {
		return err
	}

	a.EndTime = &now

	return nil
}
