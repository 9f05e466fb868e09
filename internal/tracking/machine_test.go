package tracking

import (
	"errors"
	"testing"
	"time"

	"github.com/agritrace/supplytrace/internal/model"
)

func newProduct() *model.Product {
	return &model.Product{
		ID:           "pr-test1",
		Name:         "Mango",
		Type:         "Fruit",
		BatchID:      "BATCH-001",
		HarvestDate:  "2026-08-01",
		OriginFarmID: "fm-test1",
	}
}

func TestAddStage_Authorized(t *testing.T) {
	p := newProduct()

	updated, err := AddStage(p, model.TrackingStage{
		Stage:    "Farm",
		Location: "FieldA",
		Handler:  "Alice",
	}, "farmer")
	if err != nil {
		t.Fatalf("AddStage: %v", err)
	}

	if len(updated.TrackingHistory) != 1 {
		t.Fatalf("history length = %d, want 1", len(updated.TrackingHistory))
	}
	got := updated.TrackingHistory[0]
	if got.Stage != "Farm" || got.Location != "FieldA" || got.Handler != "Alice" {
		t.Errorf("unexpected stage: %+v", got)
	}
	if got.Timestamp.IsZero() {
		t.Error("timestamp was not defaulted")
	}
	if updated.Status != "Farm" {
		t.Errorf("status = %q, want %q", updated.Status, "Farm")
	}
	if updated.CurrentLocation != "FieldA" {
		t.Errorf("currentLocation = %q, want %q", updated.CurrentLocation, "FieldA")
	}

	// Input snapshot is untouched.
	if len(p.TrackingHistory) != 0 || p.Status != "" {
		t.Errorf("input product was mutated: %+v", p)
	}
}

func TestAddStage_PreservesHistory(t *testing.T) {
	p := newProduct()

	p1, err := AddStage(p, model.TrackingStage{Stage: "Farm", Location: "FieldA", Handler: "Alice"}, "farmer")
	if err != nil {
		t.Fatalf("first AddStage: %v", err)
	}
	p2, err := AddStage(p1, model.TrackingStage{Stage: "Processing", Location: "Plant 7", Handler: "AgriCo"}, "processor")
	if err != nil {
		t.Fatalf("second AddStage: %v", err)
	}

	if len(p2.TrackingHistory) != 2 {
		t.Fatalf("history length = %d, want 2", len(p2.TrackingHistory))
	}
	if p2.TrackingHistory[0].Stage != "Farm" || p2.TrackingHistory[1].Stage != "Processing" {
		t.Errorf("history out of order: %+v", p2.TrackingHistory)
	}
	if p2.Status != "Processing" || p2.CurrentLocation != "Plant 7" {
		t.Errorf("status/location = %q/%q", p2.Status, p2.CurrentLocation)
	}
}

func TestAddStage_Unauthorized(t *testing.T) {
	p := newProduct()
	p1, err := AddStage(p, model.TrackingStage{Stage: "Farm", Location: "FieldA", Handler: "Alice"}, "farmer")
	if err != nil {
		t.Fatalf("setup AddStage: %v", err)
	}

	// A processor may not append a Warehouse stage, twice in a row the
	// rejection is identical and nothing moves.
	for i := 0; i < 2; i++ {
		_, err := AddStage(p1, model.TrackingStage{Stage: "Warehouse", Location: "Depot 3", Handler: "Bob"}, "processor")
		var authErr *AuthorizationError
		if !errors.As(err, &authErr) {
			t.Fatalf("attempt %d: got %v, want AuthorizationError", i+1, err)
		}
		if authErr.Role != "processor" || authErr.Stage != "Warehouse" {
			t.Errorf("attempt %d: unexpected error detail: %+v", i+1, authErr)
		}
	}

	if len(p1.TrackingHistory) != 1 {
		t.Errorf("history length = %d, want 1", len(p1.TrackingHistory))
	}
	if p1.Status != "Farm" || p1.CurrentLocation != "FieldA" {
		t.Errorf("status/location mutated: %q/%q", p1.Status, p1.CurrentLocation)
	}
}

func TestAddStage_UnknownRole(t *testing.T) {
	_, err := AddStage(newProduct(), model.TrackingStage{Stage: "Farm", Location: "FieldA", Handler: "Alice"}, "auditor")
	var authErr *AuthorizationError
	if !errors.As(err, &authErr) {
		t.Fatalf("got %v, want AuthorizationError", err)
	}
}

func TestAddStage_Validation(t *testing.T) {
	for _, tc := range []struct {
		name  string
		stage model.TrackingStage
		field string
	}{
		{"blank stage", model.TrackingStage{Location: "FieldA", Handler: "Alice"}, "stage"},
		{"whitespace stage", model.TrackingStage{Stage: "  ", Location: "FieldA", Handler: "Alice"}, "stage"},
		{"blank location", model.TrackingStage{Stage: "Farm", Handler: "Alice"}, "location"},
		{"blank handler", model.TrackingStage{Stage: "Farm", Location: "FieldA"}, "handler"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			p := newProduct()
			_, err := AddStage(p, tc.stage, "admin")
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("got %v, want ValidationError", err)
			}
			if ve.Field != tc.field {
				t.Errorf("field = %q, want %q", ve.Field, tc.field)
			}
			if len(p.TrackingHistory) != 0 {
				t.Error("rejected call mutated the product")
			}
		})
	}
}

func TestAddStage_ValidationBeforeAuthorization(t *testing.T) {
	// A blank stage from an unauthorized role is reported as a
	// validation failure, not an authorization one.
	_, err := AddStage(newProduct(), model.TrackingStage{Location: "FieldA", Handler: "Alice"}, "auditor")
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("got %v, want ValidationError", err)
	}
}

func TestAddStage_ExplicitTimestamp(t *testing.T) {
	ts := time.Date(2026, 8, 15, 9, 30, 0, 0, time.UTC)
	updated, err := AddStage(newProduct(), model.TrackingStage{
		Stage:     "Farm",
		Location:  "FieldA",
		Handler:   "Alice",
		Timestamp: ts,
	}, "farmer")
	if err != nil {
		t.Fatalf("AddStage: %v", err)
	}
	if !updated.TrackingHistory[0].Timestamp.Equal(ts) {
		t.Errorf("timestamp = %v, want %v", updated.TrackingHistory[0].Timestamp, ts)
	}
}

func TestParseTimestamp(t *testing.T) {
	if ts, err := ParseTimestamp(""); err != nil || !ts.IsZero() {
		t.Errorf("ParseTimestamp(\"\") = %v, %v", ts, err)
	}

	if _, err := ParseTimestamp("2026-08-15T09:30:00Z"); err != nil {
		t.Errorf("valid timestamp rejected: %v", err)
	}

	_, err := ParseTimestamp("yesterday")
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Errorf("got %v, want ValidationError", err)
	}
}
