package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	claimAnnotate = "annotate"
	claimMerge    = "merge"
	claimUnmerge  = "unmerge"

	submitResponse   = "response"
	submitResult     = "result"
	submitAutoReview = "auto_review"
)

var (
	routesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clickwork_routes_total",
			Help: "Next-work routing decisions by target kind",
		},
		[]string{"kind"},
	)

	claimsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clickwork_claims_created_total",
			Help: "Claims handed out, by purpose",
		},
		[]string{"mode"},
	)

	claimConflictsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "clickwork_claim_conflicts_total",
			Help: "Claim inserts that lost a race on a unique constraint",
		},
	)

	submissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clickwork_submissions_total",
			Help: "Finalized submissions by kind",
		},
		[]string{"kind"},
	)

	autoReviewsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "clickwork_auto_reviews_created_total",
			Help: "Auto-review records instantiated by the sync",
		},
	)
)
