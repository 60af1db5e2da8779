// Package schedule orders eligible tasks for assignment.
package schedule

import (
	"math/rand"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/clickwork/clickwork/internal/domain"
)

// Ranker orders candidates by project priority (high first), project id,
// completed assignments (high first) and finally a seeded random tie-break.
// It is safe for concurrent use.
type Ranker struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRanker returns a Ranker seeded with seed; 0 seeds from the clock.
func NewRanker(seed int64) *Ranker {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Ranker{rnd: rand.New(rand.NewSource(seed))}
}

// Rank returns a sorted copy of candidates.
func (r *Ranker) Rank(candidates []domain.Candidate) []domain.Candidate {
	ranked := make([]domain.Candidate, len(candidates))
	copy(ranked, candidates)

	r.mu.Lock()
	r.rnd.Shuffle(len(ranked), func(i, j int) {
		ranked[i], ranked[j] = ranked[j], ranked[i]
	})
	r.mu.Unlock()

	sort.SliceStable(ranked, func(i, j int) bool {
		return Less(ranked[i], ranked[j])
	})

	return ranked
}

// Salt returns a fresh key the store uses to sample equally ranked tasks, so
// a candidate window is not always filled with the oldest ones.
func (r *Ranker) Salt() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return strconv.FormatUint(r.rnd.Uint64(), 36)
}

// Less reports whether a should be handed out before b, ignoring the tie-break.
func Less(a, b domain.Candidate) bool {
	if a.Priority != b.Priority {
		return a.Priority > b.Priority
	}

	if a.ProjectID != b.ProjectID {
		return a.ProjectID < b.ProjectID
	}

	return a.CompletedAssignments > b.CompletedAssignments
}
