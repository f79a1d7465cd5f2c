package domain

import (
	"errors"
	"strings"
	"time"
)

// Stage is a normalized pipeline phase.
type Stage string

const (
	StageArrival Stage = "arrival"
	StageQuoted  Stage = "quoted"
	StageWon     Stage = "won"
)

// NormalizeStage resolves user-entered stage text to a canonical stage.
// Matching is case-insensitive and accepts common prefixes, so "Arr",
// "QUOTE", and "won " all resolve.
func NormalizeStage(raw string) (Stage, bool) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.HasPrefix(normalized, "arr"):
		return StageArrival, true
	case strings.HasPrefix(normalized, "quot"):
		return StageQuoted, true
	case strings.HasPrefix(normalized, "won"):
		return StageWon, true
	default:
		return "", false
	}
}

var (
	ErrEmptyName          = errors.New("project name must not be empty")
	ErrEmptyClient        = errors.New("client must not be empty")
	ErrNegativeAmount     = errors.New("amount must not be negative")
	ErrMissingDeadline    = errors.New("deadline is required")
	ErrInvalidStage       = errors.New("stage must be one of arrival, quoted, won")
	ErrInvalidProbability = errors.New("probability must be between 0 and 100")
	ErrInvalidProgress    = errors.New("current progress must be between 0 and 100")
)

// Project is the sales opportunity aggregate.
type Project struct {
	ID              string
	Name            string
	Client          string
	Owner           string
	QuoteNumber     string
	Description     string
	Amount          float64
	Deadline        time.Time
	ReceivedDate    *time.Time
	Probability     int
	CurrentProgress int
	Stage           Stage
}

// NewProject validates the required fields and builds a project aggregate.
// The stage is normalized from raw text.
func NewProject(id, name, client string, amount float64, deadline time.Time, stage string) (*Project, error) {
	p := &Project{ID: id}
	if err := p.Rename(name); err != nil {
		return nil, err
	}
	if err := p.ReassignClient(client); err != nil {
		return nil, err
	}
	if err := p.UpdateAmount(amount); err != nil {
		return nil, err
	}
	if err := p.Reschedule(deadline); err != nil {
		return nil, err
	}
	if err := p.UpdateStage(stage); err != nil {
		return nil, err
	}
	return p, nil
}

// Rename sets the project name.
func (p *Project) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	p.Name = name
	return nil
}

// ReassignClient sets the client name.
func (p *Project) ReassignClient(client string) error {
	client = strings.TrimSpace(client)
	if client == "" {
		return ErrEmptyClient
	}
	p.Client = client
	return nil
}

// UpdateAmount sets the deal value.
func (p *Project) UpdateAmount(amount float64) error {
	if amount < 0 {
		return ErrNegativeAmount
	}
	p.Amount = amount
	return nil
}

// Reschedule sets the deadline.
func (p *Project) Reschedule(deadline time.Time) error {
	if deadline.IsZero() {
		return ErrMissingDeadline
	}
	p.Deadline = deadline
	return nil
}

// UpdateStage normalizes raw stage text and applies it.
func (p *Project) UpdateStage(raw string) error {
	stage, ok := NormalizeStage(raw)
	if !ok {
		return ErrInvalidStage
	}
	p.Stage = stage
	return nil
}

// UpdateProbability sets the estimated win likelihood.
func (p *Project) UpdateProbability(probability int) error {
	if probability < 0 || probability > 100 {
		return ErrInvalidProbability
	}
	p.Probability = probability
	return nil
}

// UpdateProgress sets the completion percentage.
func (p *Project) UpdateProgress(progress int) error {
	if progress < 0 || progress > 100 {
		return ErrInvalidProgress
	}
	p.CurrentProgress = progress
	return nil
}

// UpdateOwner sets the responsible salesperson.
func (p *Project) UpdateOwner(owner string) {
	p.Owner = strings.TrimSpace(owner)
}

// UpdateQuoteNumber sets the quote reference.
func (p *Project) UpdateQuoteNumber(quoteNumber string) {
	p.QuoteNumber = strings.TrimSpace(quoteNumber)
}

// UpdateDescription sets the free-text description.
func (p *Project) UpdateDescription(description string) {
	p.Description = description
}

// UpdateReceivedDate sets or clears the request arrival date.
func (p *Project) UpdateReceivedDate(received *time.Time) {
	if received == nil {
		p.ReceivedDate = nil
		return
	}
	value := *received
	p.ReceivedDate = &value
}

// Clone returns a deep copy so repositories can hand out aggregates
// without sharing mutable state.
func (p *Project) Clone() *Project {
	if p == nil {
		return nil
	}
	clone := *p
	if p.ReceivedDate != nil {
		received := *p.ReceivedDate
		clone.ReceivedDate = &received
	}
	return &clone
}
