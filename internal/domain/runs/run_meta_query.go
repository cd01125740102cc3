package runs

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// RunMetaQuery filters and pages the run history
type RunMetaQuery struct {
	Kind            string    `validate:"omitempty,oneof=pi procgen program stress"`
	Status          string    `validate:"omitempty,oneof=succeeded failed"`
	Name            string    `validate:"omitempty,max=255"`
	DateTimeCreated time.Time `validate:"omitempty"`

	// Pagination
	Limit  int `validate:"omitempty,gte=0"`
	Offset int `validate:"omitempty,gte=0"`

	// Sorting
	SortBy    string `validate:"omitempty,oneof=date_time_created duration kind name"`
	SortOrder string `validate:"omitempty,oneof=asc desc"`
}

// NewRunMetaQuery returns a query listing the newest runs first
func NewRunMetaQuery() *RunMetaQuery {
	return &RunMetaQuery{
		SortBy:    "date_time_created",
		SortOrder: "desc",
	}
}

// Validate for validating RunMetaQuery struct
func (q *RunMetaQuery) Validate() error {
	validate := validator.New()

	if err := validate.Struct(q); err != nil {
		return fmt.Errorf("validation failed for RunMetaQuery: %w", err)
	}
	return nil
}
