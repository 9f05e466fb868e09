// Package tracking applies stage transitions to a product aggregate.
//
// AddStage is the only mutation in the core. It validates the stage,
// checks the actor's authorization, and returns an updated product
// snapshot. The input product is never modified; a rejected call is
// observably a no-op. Persistence is the caller's job.
package tracking

import (
	"fmt"
	"strings"
	"time"

	"github.com/agritrace/supplytrace/internal/model"
	"github.com/agritrace/supplytrace/internal/policy"
)

// ValidationError rejects a stage whose required fields are blank or
// whose timestamp could not be parsed.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid tracking stage: %s %s", e.Field, e.Message)
}

// AuthorizationError rejects a stage the actor's role may not append.
type AuthorizationError struct {
	Role  string
	Stage string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("role %q is not authorized to add stage %q", e.Role, e.Stage)
}

// AddStage validates and applies a stage transition.
//
// Authorization is checked strictly before any field mutation; on any
// rejection the input product is untouched and no partial append occurs.
// A zero stage timestamp is replaced with the current time. On success
// the returned snapshot has the stage appended to its history and
// Status/CurrentLocation updated to match.
func AddStage(p *model.Product, stage model.TrackingStage, role string) (*model.Product, error) {
	if err := validateStage(stage); err != nil {
		return nil, err
	}
	if !policy.Allows(role, stage.Stage) {
		return nil, &AuthorizationError{Role: role, Stage: stage.Stage}
	}

	if stage.Timestamp.IsZero() {
		stage.Timestamp = time.Now().UTC()
	}

	updated := p.Clone()
	updated.TrackingHistory = append(updated.TrackingHistory, stage)
	updated.Status = stage.Stage
	updated.CurrentLocation = stage.Location
	updated.UpdatedAt = time.Now().UTC()
	return updated, nil
}

// ParseTimestamp parses an optional RFC 3339 timestamp from a stage-append
// request. An empty string maps to the zero time (AddStage fills in "now");
// anything unparseable is a ValidationError so the whole append aborts.
func ParseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, &ValidationError{Field: "timestamp", Message: "must be an RFC 3339 timestamp"}
	}
	return ts, nil
}

func validateStage(stage model.TrackingStage) error {
	switch {
	case strings.TrimSpace(stage.Stage) == "":
		return &ValidationError{Field: "stage", Message: "is required"}
	case strings.TrimSpace(stage.Location) == "":
		return &ValidationError{Field: "location", Message: "is required"}
	case strings.TrimSpace(stage.Handler) == "":
		return &ValidationError{Field: "handler", Message: "is required"}
	}
	return nil
}
