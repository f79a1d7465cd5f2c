package types

import (
	"time"

	"github.com/solcrm/pipeline-api/internal/domains/projects/domain"
	"github.com/solcrm/pipeline-api/internal/shared/projection"
)

// ProjectProjection transports a project aggregate with persistence metadata.
type ProjectProjection = projection.Projection[*domain.Project]

// ProjectIdentifier addresses a single project record.
type ProjectIdentifier struct {
	ID string
}

// ProjectMutationInput captures create/update payloads while preserving field
// presence: nil means "leave unchanged" on update.
type ProjectMutationInput struct {
	Name            *string
	Client          *string
	Owner           *string
	QuoteNumber     *string
	Description     *string
	Amount          *float64
	Deadline        *time.Time
	ReceivedDate    *time.Time
	Probability     *int
	CurrentProgress *int
	Stage           *string
}

// CreateProjectInput carries the payload for the create use case.
type CreateProjectInput struct {
	ProjectMutationInput
}

// UpdateProjectInput carries a partial mutation addressed to one project.
type UpdateProjectInput struct {
	ID string
	ProjectMutationInput
}

// ListProjectsInput optionally narrows the listing to a stage subset.
type ListProjectsInput struct {
	Stages []string
}
