package models

import (
	"time"

	"github.com/MGTheTrain/toypas/internal/domain/runs"
)

// RunModel is the GORM database model for recorded runs
type RunModel struct {
	ID              string    `gorm:"primaryKey;type:varchar(36)"`
	DateTimeCreated time.Time `gorm:"not null;index"`
	Kind            string    `gorm:"not null;index;type:varchar(16)"`
	Name            string    `gorm:"not null;type:varchar(255)"`
	Parameter       int64     `gorm:"not null"`
	// Duration in nanoseconds
	Duration     int64   `gorm:"not null"`
	Status       string  `gorm:"not null;index;type:varchar(16)"`
	Result       string  `gorm:"type:text"`
	ErrorMessage *string `gorm:"type:text"`
}

// TableName specifies the table name for GORM
func (RunModel) TableName() string {
	return "runs"
}

// ToDomain converts GORM model to domain entity
func (m *RunModel) ToDomain() *runs.RunMeta {
	return &runs.RunMeta{
		ID:              m.ID,
		DateTimeCreated: m.DateTimeCreated,
		Kind:            m.Kind,
		Name:            m.Name,
		Parameter:       m.Parameter,
		Duration:        time.Duration(m.Duration),
		Status:          m.Status,
		Result:          m.Result,
		ErrorMessage:    m.ErrorMessage,
	}
}

// FromDomain converts domain entity to GORM model
func (m *RunModel) FromDomain(r *runs.RunMeta) {
	m.ID = r.ID
	m.DateTimeCreated = r.DateTimeCreated
	m.Kind = r.Kind
	m.Name = r.Name
	m.Parameter = r.Parameter
	m.Duration = int64(r.Duration)
	m.Status = r.Status
	m.Result = r.Result
	m.ErrorMessage = r.ErrorMessage
}
