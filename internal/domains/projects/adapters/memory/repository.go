package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/solcrm/pipeline-api/internal/domains/projects/domain"
	"github.com/solcrm/pipeline-api/internal/domains/projects/ports"
	"github.com/solcrm/pipeline-api/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory implementation used for development and tests.
type Repository struct {
	mu       sync.RWMutex
	projects map[string]*storedProject
	order    []string
	now      func() time.Time
}

type storedProject struct {
	project  *domain.Project
	metadata projection.Metadata
}

// NewRepository constructs an empty in-memory store.
func NewRepository() *Repository {
	return &Repository{
		projects: map[string]*storedProject{},
		now:      time.Now,
	}
}

// WithClock overrides the timestamp source, used by tests.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

// Save inserts or replaces a project while maintaining metadata.
func (r *Repository) Save(_ context.Context, p *domain.Project) (*projection.Projection[*domain.Project], error) {
	if p == nil {
		return nil, errors.New("cannot save nil project")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.projects[p.ID]
	timestamp := r.now()
	metadata := projection.Metadata{CreatedAt: timestamp, UpdatedAt: timestamp}
	if ok {
		metadata.CreatedAt = entry.metadata.CreatedAt
	} else {
		r.order = append(r.order, p.ID)
	}

	stored := &storedProject{
		project:  p.Clone(),
		metadata: metadata,
	}
	r.projects[p.ID] = stored
	return projectionCopy(stored), nil
}

// GetByID fetches a project if present.
func (r *Repository) GetByID(_ context.Context, id string) (*projection.Projection[*domain.Project], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.projects[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return projectionCopy(entry), nil
}

// Delete removes a project.
func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.projects[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.projects, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// FindByStages returns projects whose stage matches any of the given values.
func (r *Repository) FindByStages(_ context.Context, stages []domain.Stage) ([]*projection.Projection[*domain.Project], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(stages) == 0 {
		return nil, nil
	}
	set := map[domain.Stage]struct{}{}
	for _, s := range stages {
		set[s] = struct{}{}
	}
	var list []*projection.Projection[*domain.Project]
	for _, id := range r.order {
		entry := r.projects[id]
		if _, ok := set[entry.project.Stage]; ok {
			list = append(list, projectionCopy(entry))
		}
	}
	return list, nil
}

// List returns all projects in insertion order.
func (r *Repository) List(_ context.Context) ([]*projection.Projection[*domain.Project], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*projection.Projection[*domain.Project], 0, len(r.order))
	for _, id := range r.order {
		list = append(list, projectionCopy(r.projects[id]))
	}
	return list, nil
}

func projectionCopy(entry *storedProject) *projection.Projection[*domain.Project] {
	return &projection.Projection[*domain.Project]{
		Entity:   entry.project.Clone(),
		Metadata: entry.metadata,
	}
}
