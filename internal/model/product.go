package model

import (
	"time"
)

// Stage names a product passes through. The set is open-ended; these
// constants cover the standard custody chain.
const (
	StageFarm         = "Farm"
	StageProcessing   = "Processing"
	StageQualityCheck = "Quality Check"
	StageWarehouse    = "Warehouse"
	StageDistribution = "Distribution"
	StageRetail       = "Retail"
)

// Product is the tracked good moving through the supply chain.
// TrackingHistory is append-only; Status and CurrentLocation always mirror
// the last history entry (or are empty when the history is empty).
type Product struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Type            string          `json:"type"`
	BatchID         string          `json:"batchId"`
	HarvestDate     string          `json:"harvestDate"` // YYYY-MM-DD
	OriginFarmID    string          `json:"originFarmId"`
	OriginFarmName  string          `json:"originFarmName,omitempty"`
	CurrentLocation string          `json:"currentLocation,omitempty"`
	Destination     string          `json:"destination,omitempty"`
	Status          string          `json:"status,omitempty"`
	TrackingHistory []TrackingStage `json:"trackingHistory"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// TrackingStage is a single custody step in a product's history.
// Immutable once appended.
type TrackingStage struct {
	Stage     string    `json:"stage"`
	Location  string    `json:"location"`
	Handler   string    `json:"handler"`
	Timestamp time.Time `json:"timestamp"`
	Notes     string    `json:"notes,omitempty"`
}

// Clone returns a deep copy of the product. Mutation paths operate on
// clones so a rejected operation leaves the caller's snapshot untouched.
func (p *Product) Clone() *Product {
	cp := *p
	cp.TrackingHistory = make([]TrackingStage, len(p.TrackingHistory))
	copy(cp.TrackingHistory, p.TrackingHistory)
	return &cp
}

// LastStage returns the most recent history entry, or nil if the history
// is empty.
func (p *Product) LastStage() *TrackingStage {
	if len(p.TrackingHistory) == 0 {
		return nil
	}
	return &p.TrackingHistory[len(p.TrackingHistory)-1]
}

// ProductFilter narrows ListProducts results. Zero values mean "no filter".
type ProductFilter struct {
	Name         string // case-insensitive substring match
	Type         string
	BatchID      string
	OriginFarmID string
	Status       string

	Sort     string // column name; empty = name
	SortDesc bool
	Limit    int // 0 = no limit
	Offset   int
}
