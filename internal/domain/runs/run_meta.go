package runs

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/MGTheTrain/toypas/internal/pkg/validators"
	"github.com/go-playground/validator/v10"
)

// RunMeta entity
type RunMeta struct {
	ID              string        `json:"id" yaml:"id" validate:"required,uuid4"`
	DateTimeCreated time.Time     `json:"dateTimeCreated" yaml:"dateTimeCreated" validate:"required"`
	Kind            string        `json:"kind" yaml:"kind" validate:"required,oneof=pi procgen program stress"`
	Name            string        `json:"name" yaml:"name" validate:"required,min=1,max=255"`
	Parameter       int64         `json:"parameter" yaml:"parameter" validate:"runParameter"`
	Duration        time.Duration `json:"duration" yaml:"duration" validate:"min=0"`
	Status          string        `json:"status" yaml:"status" validate:"required,oneof=succeeded failed"`
	Result          string        `json:"result" yaml:"result" validate:"max=4096"`
	ErrorMessage    *string       `json:"errorMessage,omitempty" yaml:"errorMessage,omitempty" validate:"omitempty,min=1"`
}

// Validate for validating RunMeta struct
func (r *RunMeta) Validate() error {
	validate := validator.New()

	if err := validate.RegisterValidation("runParameter", validators.RunParameterValidation); err != nil {
		return fmt.Errorf("failed to register custom validator: %w", err)
	}

	err := validate.Struct(r)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}

	return nil
}

// Finish sets status, duration and result of the run from the outcome of the operation.
func (r *RunMeta) Finish(duration time.Duration, result string, err error) {
	r.Duration = duration
	r.Result = TruncateResult(result)
	if err != nil {
		r.Status = StatusFailed
		msg := err.Error()
		r.ErrorMessage = &msg
		return
	}
	r.Status = StatusSucceeded
	r.ErrorMessage = nil
}

// TruncateResult cuts s to at most MaxResultBytes without splitting a UTF-8 sequence
func TruncateResult(s string) string {
	if len(s) <= MaxResultBytes {
		return s
	}
	cut := MaxResultBytes
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
