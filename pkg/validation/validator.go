package validation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// Request limits
	MaxSimulateNodes = 10000
	MaxTrials        = 100000
	MaxTopN          = 1000
)

func init() {
	validate = validator.New()
}

// SimulateNodesRequest asks for one simultaneous removal of several nodes
type SimulateNodesRequest struct {
	Nodes []uint64 `json:"nodes" validate:"required,min=1,max=10000"`
}

// AnalyzeRequest overrides analysis options for one run. Nil fields keep the
// server defaults.
type AnalyzeRequest struct {
	Trials     *int    `json:"trials" validate:"omitempty,min=0,max=100000"`
	SampleSize *int    `json:"sample_size" validate:"omitempty,min=0"`
	Seed       *uint64 `json:"seed"`
	Top        *int    `json:"top" validate:"omitempty,min=0,max=1000"`
}

// Struct validates any value carrying validate tags
func Struct(v any) error {
	if v == nil {
		return errors.New("value cannot be nil")
	}
	if err := validate.Struct(v); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// ValidateSimulateNodesRequest validates a multi-node simulation request
func ValidateSimulateNodesRequest(req *SimulateNodesRequest) error {
	if req == nil {
		return errors.New("simulate request cannot be nil")
	}
	return Struct(req)
}

// ValidateAnalyzeRequest validates an analysis request
func ValidateAnalyzeRequest(req *AnalyzeRequest) error {
	if req == nil {
		return errors.New("analyze request cannot be nil")
	}
	return Struct(req)
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	// Return the first validation error in a user-friendly format
	for _, e := range validationErrs {
		field := e.Field()
		tag := e.Tag()
		param := e.Param()

		switch tag {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		case "oneof":
			return fmt.Errorf("%s: must be one of [%s]", field, param)
		case "hostname_port":
			return fmt.Errorf("%s: must be host:port", field)
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, tag)
		}
	}

	return err
}
