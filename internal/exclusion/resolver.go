// Package exclusion resolves which workers must never share a task.
package exclusion

import "sort"

// Groups lists sets of worker ids that must not annotate or merge the same
// task together.
type Groups [][]string

type Resolver struct {
	groups Groups
}

func NewResolver(groups Groups) *Resolver {
	return &Resolver{groups: groups}
}

// Excluded returns every worker sharing a group with workerID, without
// workerID itself, sorted. It returns an empty slice when workerID is in no
// group.
func (r *Resolver) Excluded(workerID string) []string {
	seen := make(map[string]struct{})

	for _, group := range r.groups {
		if !contains(group, workerID) {
			continue
		}

		for _, member := range group {
			if member != workerID {
				seen[member] = struct{}{}
			}
		}
	}

	excluded := make([]string, 0, len(seen))
	for id := range seen {
		excluded = append(excluded, id)
	}

	sort.Strings(excluded)

	return excluded
}

func contains(group []string, id string) bool {
	for _, member := range group {
		if member == id {
			return true
		}
	}

	return false
}
