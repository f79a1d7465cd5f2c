package migrations

import (
	"time"

	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Intended to replace
// adapter-level automigrate in deployments that manage schema centrally.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&projectRecord{},
		&sessionRecord{},
	)
}

// Project schema mirrors the projects Postgres adapter.
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

// Session schema mirrors the admin session store.
type sessionRecord struct {
	Token     string    `gorm:"primaryKey;column:token;size:512"`
	Email     string    `gorm:"column:email;index"`
	IsAdmin   bool      `gorm:"column:is_admin"`
	IssuedAt  time.Time `gorm:"column:issued_at"`
	ExpiresAt time.Time `gorm:"column:expires_at;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (sessionRecord) TableName() string { return "admin_sessions" }
