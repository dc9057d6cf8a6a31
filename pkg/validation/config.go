package validation

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

// FieldError is one rule broken by one config field
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Reason
}

// ConfigValidator collects rule violations across a config struct so a bad
// file reports all of its problems in one pass. Checks chain.
type ConfigValidator struct {
	prefix string
	errs   []error
}

// NewConfigValidator starts a validator whose field names are qualified
// with prefix
func NewConfigValidator(prefix string) *ConfigValidator {
	return &ConfigValidator{prefix: prefix}
}

func (cv *ConfigValidator) fail(field, format string, args ...any) *ConfigValidator {
	cv.errs = append(cv.errs, &FieldError{
		Field:  cv.prefix + "." + field,
		Reason: fmt.Sprintf(format, args...),
	})
	return cv
}

// OneOf requires value to be one of allowed
func (cv *ConfigValidator) OneOf(field, value string, allowed ...string) *ConfigValidator {
	if slices.Contains(allowed, value) {
		return cv
	}
	return cv.fail(field, "%q is not one of %s", value, strings.Join(allowed, ", "))
}

// MinDuration rejects durations shorter than floor
func (cv *ConfigValidator) MinDuration(field string, value, floor time.Duration) *ConfigValidator {
	if value < floor {
		return cv.fail(field, "%v is shorter than %v", value, floor)
	}
	return cv
}

// AtMost rejects values above limit
func (cv *ConfigValidator) AtMost(field string, value, limit int) *ConfigValidator {
	if value > limit {
		return cv.fail(field, "%d exceeds %d", value, limit)
	}
	return cv
}

// Distinct rejects lists that repeat an entry
func (cv *ConfigValidator) Distinct(field string, values []string) *ConfigValidator {
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		if seen[v] {
			return cv.fail(field, "%q appears more than once", v)
		}
		seen[v] = true
	}
	return cv
}

// Custom records the error fn returns against field
func (cv *ConfigValidator) Custom(field string, fn func() error) *ConfigValidator {
	if err := fn(); err != nil {
		return cv.fail(field, "%s", err)
	}
	return cv
}

// When runs checks only if cond holds
func (cv *ConfigValidator) When(cond bool, checks func(*ConfigValidator)) *ConfigValidator {
	if cond {
		checks(cv)
	}
	return cv
}

// Errors returns the violations collected so far
func (cv *ConfigValidator) Errors() []error {
	return cv.errs
}

// Validate returns nil, the single violation, or all of them joined
func (cv *ConfigValidator) Validate() error {
	switch len(cv.errs) {
	case 0:
		return nil
	case 1:
		return cv.errs[0]
	}
	return fmt.Errorf("%s: %d invalid fields: %w", cv.prefix, len(cv.errs), errors.Join(cv.errs...))
}
