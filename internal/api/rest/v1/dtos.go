package v1

import (
	"fmt"
	"time"

	"github.com/MGTheTrain/toypas/internal/domain/runs"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse is returned for every failed request
type ErrorResponse struct {
	Message string `json:"message"`
	// RunID is set when the failure was recorded as a run
	RunID string `json:"runId,omitempty"`
}

// RunMetaResponse represents a recorded run
type RunMetaResponse struct {
	ID              string    `json:"id"`
	DateTimeCreated time.Time `json:"dateTimeCreated"`
	Kind            string    `json:"kind"`
	Name            string    `json:"name"`
	Parameter       int64     `json:"parameter"`
	DurationMS      float64   `json:"durationMs"`
	Status          string    `json:"status"`
	Result          string    `json:"result"`
	ErrorMessage    *string   `json:"errorMessage,omitempty"`
}

// NewRunMetaResponse maps a domain run to its response representation
func NewRunMetaResponse(run *runs.RunMeta) RunMetaResponse {
	return RunMetaResponse{
		ID:              run.ID,
		DateTimeCreated: run.DateTimeCreated,
		Kind:            run.Kind,
		Name:            run.Name,
		Parameter:       run.Parameter,
		DurationMS:      float64(run.Duration) / float64(time.Millisecond),
		Status:          run.Status,
		Result:          run.Result,
		ErrorMessage:    run.ErrorMessage,
	}
}

// PiResponse carries a pi approximation
type PiResponse struct {
	Iterations int     `json:"iterations"`
	Value      float64 `json:"value"`
	// Text is the value in shortest round-trip formatting
	Text string          `json:"text"`
	Run  RunMetaResponse `json:"run"`
}

// RunProgramRequest is the body of a program run
type RunProgramRequest struct {
	Name               string `json:"name" validate:"omitempty,max=255"`
	Source             string `json:"source" validate:"required"`
	StaticTypeChecking bool   `json:"staticTypeChecking"`
	MaxCallDepth       int    `json:"maxCallDepth" validate:"omitempty,gte=1"`
}

// Validate for validating RunProgramRequest struct
func (r *RunProgramRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("validation failed for RunProgramRequest: %w", err)
	}
	return nil
}

// StressTestRequest is the optional body of a stress test
type StressTestRequest struct {
	UpperBound         int  `json:"upperBound" validate:"omitempty,gte=1"`
	StaticTypeChecking bool `json:"staticTypeChecking"`
	MaxCallDepth       int  `json:"maxCallDepth" validate:"omitempty,gte=1"`
}

// Validate for validating StressTestRequest struct
func (r *StressTestRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("validation failed for StressTestRequest: %w", err)
	}
	return nil
}

// ProgramRunResponse carries the output of an interpreted program
type ProgramRunResponse struct {
	Output string `json:"output"`
	// OutputTruncated is set when the program printed more than MaxResponseOutputBytes
	OutputTruncated bool            `json:"outputTruncated"`
	Run             RunMetaResponse `json:"run"`
}
