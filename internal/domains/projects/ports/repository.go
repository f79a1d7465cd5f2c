package ports

import (
	"context"
	"errors"

	"github.com/solcrm/pipeline-api/internal/domains/projects/domain"
	"github.com/solcrm/pipeline-api/internal/shared/projection"
)

var ErrNotFound = errors.New("project not found")

type Repository interface {
	Save(ctx context.Context, project *domain.Project) (*projection.Projection[*domain.Project], error)
	GetByID(ctx context.Context, id string) (*projection.Projection[*domain.Project], error)
	Delete(ctx context.Context, id string) error
	FindByStages(ctx context.Context, stages []domain.Stage) ([]*projection.Projection[*domain.Project], error)
	List(ctx context.Context) ([]*projection.Projection[*domain.Project], error)
}
