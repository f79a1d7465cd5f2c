package application

import (
	"context"
	"fmt"
	"sort"

	"github.com/solcrm/pipeline-api/internal/domains/analytics/aggregate"
	"github.com/solcrm/pipeline-api/internal/domains/analytics/application/types"
	"github.com/solcrm/pipeline-api/internal/domains/analytics/ports"
	projecttypes "github.com/solcrm/pipeline-api/internal/domains/projects/application/types"
	projectports "github.com/solcrm/pipeline-api/internal/domains/projects/ports"
)

var _ ports.Service = (*Service)(nil)

// Service assembles the dashboard read model from the projects repository.
type Service struct {
	projects projectports.Repository
	palette  []string
}

// Option customizes the analytics service.
type Option func(*Service)

// WithPalette overrides the client color palette.
func WithPalette(palette []string) Option {
	return func(s *Service) {
		if len(palette) > 0 {
			s.palette = palette
		}
	}
}

// NewService builds the analytics service on top of the projects repository.
func NewService(projects projectports.Repository, opts ...Option) *Service {
	s := &Service{
		projects: projects,
		palette:  aggregate.DefaultClientPalette,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dashboard lists the current projects and derives every dashboard series
// from that single snapshot.
func (s *Service) Dashboard(ctx context.Context) (*types.DashboardView, error) {
	snapshot, err := s.projects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects for dashboard: %w", err)
	}

	records := make([]aggregate.Record, 0, len(snapshot))
	kept := make([]*projecttypes.ProjectProjection, 0, len(snapshot))
	for _, p := range snapshot {
		if p == nil || p.Entity == nil {
			continue
		}
		records = append(records, toRecord(p))
		kept = append(kept, p)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return aggregate.DisplayLess(toRecord(kept[i]), toRecord(kept[j]))
	})

	return &types.DashboardView{
		Stats:        aggregate.Summarize(records),
		StageSlices:  aggregate.StageSlices(records),
		ClientSlices: aggregate.ClientSlices(records, s.palette),
		Timeline:     aggregate.MonthlyCumulative(records),
		StageColumns: aggregate.StageColumns(records),
		Projects:     kept,
	}, nil
}

func toRecord(p *projecttypes.ProjectProjection) aggregate.Record {
	entity := p.Entity
	return aggregate.Record{
		Client:      entity.Client,
		Amount:      entity.Amount,
		Stage:       string(entity.Stage),
		Probability: entity.Probability,
		Deadline:    entity.Deadline,
		CreatedAt:   p.Metadata.CreatedAt,
	}
}
