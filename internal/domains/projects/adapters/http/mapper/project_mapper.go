package mapper

import (
	"fmt"
	"time"

	projecttypes "github.com/solcrm/pipeline-api/internal/domains/projects/application/types"
	"github.com/solcrm/pipeline-api/internal/domains/projects/domain"
)

// dateLayout is the wire format for calendar dates (deadline, received_date).
const dateLayout = "2006-01-02"

// MutationProject captures inbound payloads for create/update flows while
// preserving field presence: absent fields stay nil and leave the record unchanged.
type MutationProject struct {
	Name            *string  `json:"project_name,omitempty"`
	Client          *string  `json:"client,omitempty"`
	Owner           *string  `json:"project_owner,omitempty"`
	QuoteNumber     *string  `json:"quote_number,omitempty"`
	Description     *string  `json:"description,omitempty"`
	Amount          *float64 `json:"amount,omitempty"`
	Deadline        *string  `json:"deadline,omitempty"`
	ReceivedDate    *string  `json:"received_date,omitempty"`
	Probability     *int     `json:"probability,omitempty"`
	CurrentProgress *int     `json:"current_progress,omitempty"`
	Stage           *string  `json:"stage,omitempty"`
}

// Project is the HTTP representation of a persisted record.
type Project struct {
	ID              string    `json:"id"`
	Name            string    `json:"project_name"`
	Client          string    `json:"client"`
	Owner           string    `json:"project_owner,omitempty"`
	QuoteNumber     string    `json:"quote_number,omitempty"`
	Description     string    `json:"description,omitempty"`
	Amount          float64   `json:"amount"`
	Deadline        string    `json:"deadline"`
	ReceivedDate    string    `json:"received_date,omitempty"`
	Probability     int       `json:"probability"`
	CurrentProgress int       `json:"current_progress"`
	Stage           string    `json:"stage"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ToMutationInput converts a transport payload into an application mutation.
// Date strings must use the YYYY-MM-DD calendar format.
func ToMutationInput(payload MutationProject) (projecttypes.ProjectMutationInput, error) {
	input := projecttypes.ProjectMutationInput{
		Name:            payload.Name,
		Client:          payload.Client,
		Owner:           payload.Owner,
		QuoteNumber:     payload.QuoteNumber,
		Description:     payload.Description,
		Amount:          payload.Amount,
		Probability:     payload.Probability,
		CurrentProgress: payload.CurrentProgress,
		Stage:           payload.Stage,
	}
	if payload.Deadline != nil {
		deadline, err := parseDate(*payload.Deadline)
		if err != nil {
			return projecttypes.ProjectMutationInput{}, fmt.Errorf("deadline: %w", err)
		}
		input.Deadline = &deadline
	}
	if payload.ReceivedDate != nil {
		received, err := parseDate(*payload.ReceivedDate)
		if err != nil {
			return projecttypes.ProjectMutationInput{}, fmt.Errorf("received_date: %w", err)
		}
		input.ReceivedDate = &received
	}
	return input, nil
}

// FromProjection maps an application projection into the transport shape.
func FromProjection(p *projecttypes.ProjectProjection) Project {
	if p == nil || p.Entity == nil {
		return Project{}
	}
	return fromDomain(p.Entity, p.Metadata.CreatedAt, p.Metadata.UpdatedAt)
}

// FromProjectionList maps a projection slice into transport records.
func FromProjectionList(list []*projecttypes.ProjectProjection) []Project {
	result := make([]Project, 0, len(list))
	for _, item := range list {
		if item == nil || item.Entity == nil {
			continue
		}
		result = append(result, FromProjection(item))
	}
	return result
}

func fromDomain(p *domain.Project, createdAt, updatedAt time.Time) Project {
	out := Project{
		ID:              p.ID,
		Name:            p.Name,
		Client:          p.Client,
		Owner:           p.Owner,
		QuoteNumber:     p.QuoteNumber,
		Description:     p.Description,
		Amount:          p.Amount,
		Probability:     p.Probability,
		CurrentProgress: p.CurrentProgress,
		Stage:           string(p.Stage),
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
	}
	if !p.Deadline.IsZero() {
		out.Deadline = p.Deadline.Format(dateLayout)
	}
	if p.ReceivedDate != nil && !p.ReceivedDate.IsZero() {
		out.ReceivedDate = p.ReceivedDate.Format(dateLayout)
	}
	return out
}

func parseDate(value string) (time.Time, error) {
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected %s date, got %q", dateLayout, value)
	}
	return parsed, nil
}
