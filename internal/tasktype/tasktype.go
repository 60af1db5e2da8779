// Package tasktype holds the per-project-type behaviour the assignment core
// needs: what a worker is shown, how an answer is turned into a stored
// payload, and how a task is exported.
package tasktype

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/clickwork/clickwork/internal/apperrors"
	"github.com/clickwork/clickwork/internal/domain"
)

// ReviewMaterial is everything recorded about a task that a merge, review or
// auto-review comparison can show.
type ReviewMaterial struct {
	Responses []domain.ResponseDetail
	Result    *domain.Result
	Expected  *domain.ExpectedResponse
}

type TaskType interface {
	Name() string
	// RenderInput returns what an annotator needs to answer task.
	RenderInput(task domain.Task) (json.RawMessage, error)
	// HandleResponse validates a submitted answer and returns the payload to
	// store on the Response or Result. Invalid answers yield a
	// *apperrors.ValidationError.
	HandleResponse(task domain.Task, answer json.RawMessage) (json.RawMessage, error)
	// ReviewInput returns what a merger, a reviewed worker or an auto-review
	// worker is shown.
	ReviewInput(task domain.Task, material ReviewMaterial) (json.RawMessage, error)
	// Export returns file name to contents for one task.
	Export(task domain.Task, responses []domain.ResponseDetail) (map[string][]byte, error)
}

type Registry struct {
	types map[string]TaskType
}

func NewRegistry(types ...TaskType) *Registry {
	r := &Registry{types: make(map[string]TaskType, len(types))}
	for _, t := range types {
		r.types[t.Name()] = t
	}

	return r
}

// DefaultRegistry returns a registry with every built-in type.
func DefaultRegistry() *Registry {
	return NewRegistry(Simple{})
}

func (r *Registry) Lookup(name string) (TaskType, error) {
	t, ok := r.types[name]
	if !ok {
		return nil, fmt.Errorf("task type %q: %w", name, apperrors.ErrNotFound)
	}

	return t, nil
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
