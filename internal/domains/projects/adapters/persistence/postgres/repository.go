package postgres

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/solcrm/pipeline-api/internal/domains/projects/domain"
	"github.com/solcrm/pipeline-api/internal/domains/projects/ports"
	"github.com/solcrm/pipeline-api/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists projects in PostgreSQL using GORM-mapped columns.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. The caller owns the DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		if err := db.AutoMigrate(&projectRecord{}); err != nil {
			log.Printf("postgres repository migration failed: %v", err)
		}
	}
	return repo
}

type projectRecord struct {
	ID              string     `gorm:"primaryKey;column:id;size:64"`
	Name            string     `gorm:"column:project_name"`
	Client          string     `gorm:"column:client;index"`
	Owner           string     `gorm:"column:project_owner"`
	QuoteNumber     string     `gorm:"column:quote_number"`
	Description     string     `gorm:"column:description"`
	Amount          float64    `gorm:"column:amount"`
	Deadline        time.Time  `gorm:"column:deadline;index"`
	ReceivedDate    *time.Time `gorm:"column:received_date"`
	Probability     int        `gorm:"column:probability"`
	CurrentProgress int        `gorm:"column:current_progress"`
	Stage           string     `gorm:"column:stage;type:varchar(32);index"`
	CreatedAt       time.Time  `gorm:"column:created_at;index"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
}

func (projectRecord) TableName() string { return "projects" }

func newProjectRecord(p *domain.Project) projectRecord {
	rec := projectRecord{
		ID:              p.ID,
		Name:            p.Name,
		Client:          p.Client,
		Owner:           p.Owner,
		QuoteNumber:     p.QuoteNumber,
		Description:     p.Description,
		Amount:          p.Amount,
		Deadline:        p.Deadline,
		Probability:     p.Probability,
		CurrentProgress: p.CurrentProgress,
		Stage:           string(p.Stage),
	}
	if p.ReceivedDate != nil {
		received := *p.ReceivedDate
		rec.ReceivedDate = &received
	}
	return rec
}

// Save inserts or updates a project aggregate.
func (r *Repository) Save(ctx context.Context, project *domain.Project) (*projection.Projection[*domain.Project], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if project == nil {
		return nil, errors.New("cannot save nil project")
	}
	record := newProjectRecord(project)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"project_name":     record.Name,
				"client":           record.Client,
				"project_owner":    record.Owner,
				"quote_number":     record.QuoteNumber,
				"description":      record.Description,
				"amount":           record.Amount,
				"deadline":         record.Deadline,
				"received_date":    record.ReceivedDate,
				"probability":      record.Probability,
				"current_progress": record.CurrentProgress,
				"stage":            record.Stage,
				"updated_at":       gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, project.ID)
}

// GetByID fetches a project by identifier.
func (r *Repository) GetByID(ctx context.Context, id string) (*projection.Projection[*domain.Project], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record projectRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return toProjection(&record), nil
}

// Delete removes a project by identifier.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&projectRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// FindByStages returns projects matching any provided stage.
func (r *Repository) FindByStages(ctx context.Context, stages []domain.Stage) ([]*projection.Projection[*domain.Project], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if len(stages) == 0 {
		return nil, nil
	}
	args := make([]string, 0, len(stages))
	for _, s := range stages {
		args = append(args, string(s))
	}
	var records []projectRecord
	if err := r.db.WithContext(ctx).
		Where("stage = ANY(?)", pq.Array(args)).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return recordsToProjections(records), nil
}

// List returns every persisted project, newest first.
func (r *Repository) List(ctx context.Context) ([]*projection.Projection[*domain.Project], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []projectRecord
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return recordsToProjections(records), nil
}

func recordsToProjections(records []projectRecord) []*projection.Projection[*domain.Project] {
	list := make([]*projection.Projection[*domain.Project], 0, len(records))
	for i := range records {
		list = append(list, toProjection(&records[i]))
	}
	return list
}

func toProjection(record *projectRecord) *projection.Projection[*domain.Project] {
	if record == nil {
		return nil
	}
	return &projection.Projection[*domain.Project]{
		Entity:   record.toDomain(),
		Metadata: projection.Metadata{CreatedAt: record.CreatedAt, UpdatedAt: record.UpdatedAt},
	}
}

func (r *projectRecord) toDomain() *domain.Project {
	if r == nil {
		return nil
	}
	project := &domain.Project{
		ID:              r.ID,
		Name:            r.Name,
		Client:          r.Client,
		Owner:           r.Owner,
		QuoteNumber:     r.QuoteNumber,
		Description:     r.Description,
		Amount:          r.Amount,
		Deadline:        r.Deadline,
		Probability:     r.Probability,
		CurrentProgress: r.CurrentProgress,
		Stage:           domain.Stage(r.Stage),
	}
	if r.ReceivedDate != nil {
		received := *r.ReceivedDate
		project.ReceivedDate = &received
	}
	return project
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres repository not configured")
	}
	return nil
}
