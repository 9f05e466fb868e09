package model

import (
	"regexp"
	"strings"
)

// ValidationError holds a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation failure on a named field.
type FieldError struct {
	Field   string
	Message string
}

// Error formats the validation error as a semicolon-separated list of field messages.
func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// HasErrors reports whether the validation error contains any field errors.
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

var harvestDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidateProduct checks a Product for constraint violations.
// It returns a *ValidationError if any rules fail, or nil if the product is valid.
func ValidateProduct(p *Product) error {
	var ve ValidationError

	if strings.TrimSpace(p.Name) == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "name", Message: "is required"})
	}
	if strings.TrimSpace(p.Type) == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "type", Message: "is required"})
	}
	if strings.TrimSpace(p.BatchID) == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "batchId", Message: "is required"})
	}
	if strings.TrimSpace(p.HarvestDate) == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "harvestDate", Message: "is required"})
	} else if !harvestDateRe.MatchString(p.HarvestDate) {
		ve.Errors = append(ve.Errors, FieldError{Field: "harvestDate", Message: "must be in YYYY-MM-DD format"})
	}
	if strings.TrimSpace(p.OriginFarmID) == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "originFarmId", Message: "is required"})
	}

	if ve.HasErrors() {
		return &ve
	}
	return nil
}

// ValidateFarm checks a Farm for constraint violations.
func ValidateFarm(f *Farm) error {
	var ve ValidationError

	if strings.TrimSpace(f.Name) == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "name", Message: "is required"})
	}
	if strings.TrimSpace(f.Location) == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "location", Message: "is required"})
	}
	if strings.TrimSpace(f.Owner) == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "owner", Message: "is required"})
	}

	if ve.HasErrors() {
		return &ve
	}
	return nil
}
