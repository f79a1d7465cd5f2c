package application

import (
	"context"

	"github.com/google/uuid"

	types "github.com/solcrm/pipeline-api/internal/domains/projects/application/types"
	"github.com/solcrm/pipeline-api/internal/domains/projects/domain"
	"github.com/solcrm/pipeline-api/internal/domains/projects/ports"
)

// Service orchestrates the projects bounded context use cases.
type Service struct {
	repo  ports.Repository
	newID func() string
}

// NewService wires the projects service with its dependencies.
func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo, newID: func() string { return uuid.NewString() }}
}

// WithIDGenerator overrides identifier generation, used by tests.
func (s *Service) WithIDGenerator(gen func() string) *Service {
	if gen != nil {
		s.newID = gen
	}
	return s
}

// Create validates the payload, assigns an identifier, and persists a new
// project. Validation happens before any repository call so a rejected
// request leaves no side effects.
func (s *Service) Create(ctx context.Context, input types.CreateProjectInput) (*types.ProjectProjection, error) {
	project, err := buildProjectFromMutation(s.newID(), input.ProjectMutationInput)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, project)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// Update loads a project and applies a partial mutation.
func (s *Service) Update(ctx context.Context, input types.UpdateProjectInput) (*types.ProjectProjection, error) {
	existing, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	if err := applyPartialMutation(existing.Entity, input.ProjectMutationInput); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, existing.Entity)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// GetByID loads a single project aggregate.
func (s *Service) GetByID(ctx context.Context, input types.ProjectIdentifier) (*types.ProjectProjection, error) {
	result, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// Delete removes a project record.
func (s *Service) Delete(ctx context.Context, input types.ProjectIdentifier) error {
	if err := s.repo.Delete(ctx, input.ID); err != nil {
		return mapError(err)
	}
	return nil
}

// List returns the current snapshot, optionally narrowed to a stage subset.
// The full snapshot feeds both the record table and the aggregation engine.
func (s *Service) List(ctx context.Context, input types.ListProjectsInput) ([]*types.ProjectProjection, error) {
	if len(input.Stages) > 0 {
		stages := make([]domain.Stage, 0, len(input.Stages))
		for _, raw := range input.Stages {
			stage, ok := domain.NormalizeStage(raw)
			if !ok {
				return nil, mapError(domain.ErrInvalidStage)
			}
			stages = append(stages, stage)
		}
		result, err := s.repo.FindByStages(ctx, stages)
		if err != nil {
			return nil, mapError(err)
		}
		return result, nil
	}
	result, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

func buildProjectFromMutation(id string, input types.ProjectMutationInput) (*domain.Project, error) {
	if input.Name == nil {
		return nil, domain.ErrEmptyName
	}
	if input.Client == nil {
		return nil, domain.ErrEmptyClient
	}
	if input.Deadline == nil {
		return nil, domain.ErrMissingDeadline
	}
	var amount float64
	if input.Amount != nil {
		amount = *input.Amount
	}
	stage := string(domain.StageArrival)
	if input.Stage != nil {
		stage = *input.Stage
	}
	project, err := domain.NewProject(id, *input.Name, *input.Client, amount, *input.Deadline, stage)
	if err != nil {
		return nil, err
	}
	partial := input
	partial.Name = nil
	partial.Client = nil
	partial.Amount = nil
	partial.Deadline = nil
	partial.Stage = nil
	if err := applyPartialMutation(project, partial); err != nil {
		return nil, err
	}
	return project, nil
}

func applyPartialMutation(target *domain.Project, input types.ProjectMutationInput) error {
	if input.Name != nil {
		if err := target.Rename(*input.Name); err != nil {
			return err
		}
	}
	if input.Client != nil {
		if err := target.ReassignClient(*input.Client); err != nil {
			return err
		}
	}
	if input.Amount != nil {
		if err := target.UpdateAmount(*input.Amount); err != nil {
			return err
		}
	}
	if input.Deadline != nil {
		if err := target.Reschedule(*input.Deadline); err != nil {
			return err
		}
	}
	if input.Stage != nil {
		if err := target.UpdateStage(*input.Stage); err != nil {
			return err
		}
	}
	if input.Probability != nil {
		if err := target.UpdateProbability(*input.Probability); err != nil {
			return err
		}
	}
	if input.CurrentProgress != nil {
		if err := target.UpdateProgress(*input.CurrentProgress); err != nil {
			return err
		}
	}
	if input.Owner != nil {
		target.UpdateOwner(*input.Owner)
	}
	if input.QuoteNumber != nil {
		target.UpdateQuoteNumber(*input.QuoteNumber)
	}
	if input.Description != nil {
		target.UpdateDescription(*input.Description)
	}
	if input.ReceivedDate != nil {
		target.UpdateReceivedDate(input.ReceivedDate)
	}
	return nil
}

var _ ports.Service = (*Service)(nil)
