package model

import (
	"errors"
	"strings"
	"testing"
)

// validProduct returns a Product that passes all validation rules.
func validProduct() Product {
	return Product{
		Name:         "Mango",
		Type:         "Fruit",
		BatchID:      "B-100",
		HarvestDate:  "2026-08-01",
		OriginFarmID: "fm-1",
	}
}

func TestValidateProduct_Valid(t *testing.T) {
	p := validProduct()
	if err := ValidateProduct(&p); err != nil {
		t.Errorf("valid product rejected: %v", err)
	}
}

func TestValidateProduct_RequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Product)
		field  string
	}{
		{"blank name", func(p *Product) { p.Name = "" }, "name"},
		{"whitespace name", func(p *Product) { p.Name = "   " }, "name"},
		{"blank type", func(p *Product) { p.Type = "" }, "type"},
		{"blank batch", func(p *Product) { p.BatchID = "" }, "batchId"},
		{"blank harvest date", func(p *Product) { p.HarvestDate = "" }, "harvestDate"},
		{"blank farm", func(p *Product) { p.OriginFarmID = "" }, "originFarmId"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProduct()
			tt.mutate(&p)
			err := ValidateProduct(&p)
			if err == nil {
				t.Fatal("expected validation error")
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("error type %T, want *ValidationError", err)
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error %q does not mention field %q", err, tt.field)
			}
		})
	}
}

func TestValidateProduct_HarvestDateFormat(t *testing.T) {
	for _, bad := range []string{"08-01-2026", "2026/08/01", "20260801", "august 1"} {
		p := validProduct()
		p.HarvestDate = bad
		if ValidateProduct(&p) == nil {
			t.Errorf("harvest date %q accepted", bad)
		}
	}
}

func TestValidateProduct_CollectsAllErrors(t *testing.T) {
	var ve *ValidationError
	err := ValidateProduct(&Product{})
	if !errors.As(err, &ve) {
		t.Fatalf("error type %T", err)
	}
	if len(ve.Errors) != 5 {
		t.Errorf("got %d field errors, want 5: %v", len(ve.Errors), ve.Errors)
	}
}

func TestValidateFarm(t *testing.T) {
	f := Farm{Name: "Green Acres", Location: "Valley Rd", Owner: "Alice"}
	if err := ValidateFarm(&f); err != nil {
		t.Errorf("valid farm rejected: %v", err)
	}

	if ValidateFarm(&Farm{Name: "No Owner", Location: "Valley Rd"}) == nil {
		t.Error("farm without owner accepted")
	}
	if ValidateFarm(&Farm{}) == nil {
		t.Error("empty farm accepted")
	}
}
