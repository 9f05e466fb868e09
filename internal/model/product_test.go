package model

import (
	"testing"
	"time"
)

func TestProductClone(t *testing.T) {
	now := time.Now().UTC()
	p := &Product{
		ID:     "pr-1",
		Name:   "Mango",
		Status: "Farm",
		TrackingHistory: []TrackingStage{
			{Stage: "Farm", Location: "FieldA", Handler: "Alice", Timestamp: now},
		},
	}

	cp := p.Clone()
	cp.Status = "Processing"
	cp.TrackingHistory = append(cp.TrackingHistory, TrackingStage{Stage: "Processing", Location: "Plant 7", Handler: "Bob"})
	cp.TrackingHistory[0].Location = "elsewhere"

	if p.Status != "Farm" {
		t.Errorf("original status mutated: %q", p.Status)
	}
	if len(p.TrackingHistory) != 1 {
		t.Errorf("original history length = %d, want 1", len(p.TrackingHistory))
	}
	if p.TrackingHistory[0].Location != "FieldA" {
		t.Errorf("original history entry mutated: %q", p.TrackingHistory[0].Location)
	}
}

func TestLastStage(t *testing.T) {
	p := &Product{}
	if p.LastStage() != nil {
		t.Error("empty history should have nil last stage")
	}

	p.TrackingHistory = []TrackingStage{
		{Stage: "Farm"},
		{Stage: "Processing"},
	}
	last := p.LastStage()
	if last == nil || last.Stage != "Processing" {
		t.Errorf("LastStage = %+v", last)
	}
}
