//go:build integration

package postgres

import (
	"strconv"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

type projectFixture struct {
	priority       int
	annotatorCount int
	freshEyes      bool
	autoReview     bool
	annotators     []string
	mergers        []string
}

func seedUser(t *testing.T, db *sqlx.DB, id string, superuser bool) {
	t.Helper()

	_, err := db.Exec(`INSERT INTO users (id, username, is_superuser) VALUES ($1, $2, $3)`, id, id+"-name", superuser)
	require.NoError(t, err)
}

func seedGroup(t *testing.T, db *sqlx.DB, name string, members []string) int64 {
	t.Helper()

	var id int64
	require.NoError(t, db.Get(&id, `INSERT INTO groups (name) VALUES ($1) RETURNING id`, name))

	for _, m := range members {
		_, err := db.Exec(`INSERT INTO group_members (group_id, user_id) VALUES ($1, $2)`, id, m)
		require.NoError(t, err)
	}

	return id
}

// seedProject creates a project administered by admin with one annotator
// group and one merger group built from the fixture's member lists.
func seedProject(t *testing.T, db *sqlx.DB, admin string, f projectFixture) int64 {
	t.Helper()

	var id int64
	require.NoError(t, db.Get(&id, `INSERT INTO projects
		(title, type, admin_id, priority, annotator_count, needs_fresh_eyes, auto_review)
		VALUES ('project', 'simple', $1, $2, $3, $4, $5) RETURNING id`,
		admin, f.priority, f.annotatorCount, f.freshEyes, f.autoReview))

	annotators := seedGroup(t, db, "annotators-"+strconv.FormatInt(id, 10), f.annotators)
	mergers := seedGroup(t, db, "mergers-"+strconv.FormatInt(id, 10), f.mergers)

	_, err := db.Exec(`INSERT INTO project_annotators (project_id, group_id) VALUES ($1, $2)`, id, annotators)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO project_mergers (project_id, group_id) VALUES ($1, $2)`, id, mergers)
	require.NoError(t, err)

	return id
}

func seedTask(t *testing.T, db *sqlx.DB, projectID int64, completedAssignments int, completed bool) int64 {
	t.Helper()

	var id int64
	require.NoError(t, db.Get(&id, `INSERT INTO tasks (project_id, completed_assignments, completed, payload)
		VALUES ($1, $2, $3, '{"question":"q"}') RETURNING id`, projectID, completedAssignments, completed))

	return id
}

func seedResponse(t *testing.T, db *sqlx.DB, taskID int64, userID string) int64 {
	t.Helper()

	var id int64
	require.NoError(t, db.Get(&id, `INSERT INTO responses (task_id, user_id, start_time, end_time, payload)
		VALUES ($1, $2, NOW() - INTERVAL '1 minute', NOW(), '{"answer":"a"}') RETURNING id`, taskID, userID))

	return id
}

func seedClaim(t *testing.T, db *sqlx.DB, taskID int64, userID string) {
	t.Helper()

	_, err := db.Exec(`INSERT INTO work_in_progress (task_id, user_id) VALUES ($1, $2)`, taskID, userID)
	require.NoError(t, err)
}

func seedResult(t *testing.T, db *sqlx.DB, taskID int64, userID string) {
	t.Helper()

	_, err := db.Exec(`INSERT INTO results (task_id, user_id, start_time, end_time, payload)
		VALUES ($1, $2, NOW(), NOW(), '{"answer":"a"}')`, taskID, userID)
	require.NoError(t, err)
}
