package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Defaults of the bundled tools
const (
	DefaultPiIterations       = 1000000
	DefaultProcGenUpperBound  = 10000
	DefaultMaxCallDepth       = 50000
	DefaultExecutionTimeoutMS = 30000
)

// ExecutionSettings bounds the work a single request may ask for
type ExecutionSettings struct {
	MaxPiIterations    int `mapstructure:"max_pi_iterations" validate:"required,min=1"`
	MaxUpperBound      int `mapstructure:"max_upper_bound" validate:"required,min=1"`
	MaxCallDepth       int `mapstructure:"max_call_depth" validate:"required,min=1"`
	MaxSourceBytes     int `mapstructure:"max_source_bytes" validate:"required,min=1"`
	ExecutionTimeoutMS int `mapstructure:"execution_timeout_ms" validate:"required,min=1"`
}

// NewDefaultExecutionSettings returns limits suitable for local use
func NewDefaultExecutionSettings() ExecutionSettings {
	return ExecutionSettings{
		MaxPiIterations:    100 * DefaultPiIterations,
		MaxUpperBound:      10 * DefaultProcGenUpperBound,
		MaxCallDepth:       DefaultMaxCallDepth,
		MaxSourceBytes:     8 << 20,
		ExecutionTimeoutMS: DefaultExecutionTimeoutMS,
	}
}

// Validate checks that all fields in ExecutionSettings are valid
func (s *ExecutionSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for ExecutionSettings: %w", err)
	}
	return nil
}
