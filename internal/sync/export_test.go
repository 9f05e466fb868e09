package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/agritrace/supplytrace/internal/model"
)

func TestExportJSONL(t *testing.T) {
	s := newMockStore()
	now := time.Now().UTC()

	s.farms["fm-1"] = &model.Farm{ID: "fm-1", Name: "Green Acres", Location: "Valley Rd", Owner: "Alice"}
	s.products["pr-2"] = &model.Product{ID: "pr-2", Name: "Tomato", Type: "Vegetable", BatchID: "B2", HarvestDate: "2026-08-02", OriginFarmID: "fm-1"}
	s.products["pr-1"] = &model.Product{
		ID: "pr-1", Name: "Mango", Type: "Fruit", BatchID: "B1", HarvestDate: "2026-08-01", OriginFarmID: "fm-1",
		Status: "Farm", CurrentLocation: "FieldA",
		TrackingHistory: []model.TrackingStage{
			{Stage: "Farm", Location: "FieldA", Handler: "Alice", Timestamp: now},
		},
	}

	var buf bytes.Buffer
	if err := ExportJSONL(context.Background(), s, &buf); err != nil {
		t.Fatalf("ExportJSONL: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4 (header + 1 farm + 2 products)", len(lines))
	}

	var hdr header
	if err := json.Unmarshal([]byte(lines[0]), &hdr); err != nil {
		t.Fatalf("unmarshal header: %v", err)
	}
	if hdr.Type != "header" || hdr.ProductCount != 2 || hdr.FarmCount != 1 {
		t.Errorf("unexpected header: %+v", hdr)
	}

	// Farms come first, then products sorted by ID.
	var rec struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal([]byte(lines[1]), &rec); err != nil {
		t.Fatalf("unmarshal farm line: %v", err)
	}
	if rec.Type != "farm" {
		t.Errorf("line 1 type = %q, want farm", rec.Type)
	}

	if err := json.Unmarshal([]byte(lines[2]), &rec); err != nil {
		t.Fatalf("unmarshal product line: %v", err)
	}
	if rec.Type != "product" {
		t.Errorf("line 2 type = %q, want product", rec.Type)
	}
	var p model.Product
	if err := json.Unmarshal(rec.Data, &p); err != nil {
		t.Fatalf("unmarshal product: %v", err)
	}
	if p.ID != "pr-1" || len(p.TrackingHistory) != 1 {
		t.Errorf("unexpected product: %+v", p)
	}
}

func TestExportJSONL_EmptyStore(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportJSONL(context.Background(), newMockStore(), &buf); err != nil {
		t.Fatalf("ExportJSONL: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1 (header only)", len(lines))
	}
}
