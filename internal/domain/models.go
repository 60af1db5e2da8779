package domain

import (
	"encoding/json"
	"time"
)

const (
	PriorityDisabled = -1
	PriorityMax      = 4
)

type User struct {
	ID          string `db:"id"`
	Username    string `db:"username"`
	IsSuperuser bool   `db:"is_superuser"`
	IsActive    bool   `db:"is_active"`
}

type Project struct {
	ID             int64  `db:"id"`
	Title          string `db:"title"`
	Type           string `db:"type"`
	AdminID        string `db:"admin_id"`
	Priority       int    `db:"priority"`
	AnnotatorCount int    `db:"annotator_count"`
	NeedsFreshEyes bool   `db:"needs_fresh_eyes"`
	AutoReview     bool   `db:"auto_review"`
}

func (p Project) Enabled() bool {
	return p.Priority > PriorityDisabled
}

type Task struct {
	ID                   int64           `db:"id"`
	ProjectID            int64           `db:"project_id"`
	CompletedAssignments int             `db:"completed_assignments"`
	Completed            bool            `db:"completed"`
	Payload              json.RawMessage `db:"payload"`
}

// WorkInProgress is a worker's exclusive claim on a task.
type WorkInProgress struct {
	ID        int64     `db:"id"`
	TaskID    int64     `db:"task_id"`
	UserID    string    `db:"user_id"`
	StartTime time.Time `db:"start_time"`
}

// ClaimInfo is a claim joined with its task's project, for the WIP review listing.
type ClaimInfo struct {
	ID           int64     `db:"id"`
	TaskID       int64     `db:"task_id"`
	UserID       string    `db:"user_id"`
	Username     string    `db:"username"`
	ProjectID    int64     `db:"project_id"`
	ProjectTitle string    `db:"project_title"`
	StartTime    time.Time `db:"start_time"`
}

type Response struct {
	ID        int64           `db:"id"`
	TaskID    int64           `db:"task_id"`
	UserID    string          `db:"user_id"`
	StartTime time.Time       `db:"start_time"`
	EndTime   time.Time       `db:"end_time"`
	Payload   json.RawMessage `db:"payload"`
}

// ResponseDetail is a response joined with its author's username.
type ResponseDetail struct {
	Response
	Username string `db:"username"`
}

type Result struct {
	ID        int64           `db:"id"`
	TaskID    int64           `db:"task_id"`
	UserID    string          `db:"user_id"`
	StartTime time.Time       `db:"start_time"`
	EndTime   time.Time       `db:"end_time"`
	Payload   json.RawMessage `db:"payload"`
}

type Review struct {
	ID         int64     `db:"id"`
	ResponseID int64     `db:"response_id"`
	Comment    string    `db:"comment"`
	CreatedAt  time.Time `db:"created_at"`
	Complete   bool      `db:"complete"`
}

// ReviewDetail is a review joined with the response it flags.
type ReviewDetail struct {
	Review
	TaskID         int64  `db:"task_id"`
	ResponseUserID string `db:"response_user_id"`
}

type AutoReview struct {
	ID        int64      `db:"id"`
	TaskID    int64      `db:"task_id"`
	UserID    string     `db:"user_id"`
	StartTime *time.Time `db:"start_time"`
	EndTime   *time.Time `db:"end_time"`
}

type ExpectedResponse struct {
	TaskID  int64           `db:"task_id"`
	Payload json.RawMessage `db:"payload"`
}

// Candidate is one task the eligibility filter admits for a worker, with the
// keys the scheduler orders by.
type Candidate struct {
	TaskID               int64 `db:"task_id"`
	ProjectID            int64 `db:"project_id"`
	Priority             int   `db:"priority"`
	CompletedAssignments int   `db:"completed_assignments"`
}

type AssignmentBucket struct {
	CompletedAssignments int `db:"completed_assignments"`
	Count                int `db:"howmany"`
}

type ProjectProgress struct {
	Buckets      []AssignmentBucket
	NeedsMerging int
	Finished     int
}

// ReviewFlag asks for the response of UserID to be reviewed by its author.
type ReviewFlag struct {
	UserID  string
	Comment string
}

type Submission struct {
	Answer      json.RawMessage
	Reviews     []ReviewFlag
	StopWorking bool
}
