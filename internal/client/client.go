// Package client provides a transport-agnostic interface for the
// supplytrace service and an HTTP/JSON implementation talking to the
// REST API.
package client

import (
	"context"
	"encoding/json"

	"github.com/agritrace/supplytrace/internal/model"
)

// TrackerClient is the interface all trackctl commands use to talk to the
// server.
type TrackerClient interface {
	// Products
	CreateProduct(ctx context.Context, req *CreateProductRequest) (*model.Product, error)
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	ListProducts(ctx context.Context, req *ListProductsRequest) (*ListProductsResponse, error)
	DeleteProduct(ctx context.Context, id string) error
	UpdateStatus(ctx context.Context, id, status, location string) (*model.Product, error)

	// Tracking
	AddStage(ctx context.Context, id string, req *AddStageRequest) (*model.Product, error)
	GetTracking(ctx context.Context, id string) (*TrackingResponse, error)

	// Farms
	CreateFarm(ctx context.Context, req *CreateFarmRequest) (*model.Farm, error)
	GetFarm(ctx context.Context, id string) (*model.Farm, error)
	ListFarms(ctx context.Context) ([]*model.Farm, error)

	// Streams
	StreamProducts(ctx context.Context, topics []string) (<-chan json.RawMessage, error)
	StreamStatus(ctx context.Context, productID string) (<-chan json.RawMessage, error)

	// Health
	Health(ctx context.Context) (string, error)

	// Lifecycle
	Close() error
}

// CreateProductRequest mirrors the POST /v1/products body.
type CreateProductRequest struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	BatchID      string `json:"batchId"`
	HarvestDate  string `json:"harvestDate"`
	OriginFarmID string `json:"originFarmId"`
	Destination  string `json:"destination,omitempty"`
}

// ListProductsRequest mirrors the GET /v1/products query params.
type ListProductsRequest struct {
	Name         string
	Type         string
	BatchID      string
	OriginFarmID string
	Status       string
	Sort         string
	Desc         bool
	Limit        int
	Offset       int
}

// ListProductsResponse is the list endpoint's envelope.
type ListProductsResponse struct {
	Products []*model.Product `json:"products"`
	Total    int              `json:"total"`
}

// AddStageRequest mirrors the POST /v1/products/{id}/tracking body. Role
// travels in the X-Actor-Role header, set from the client's actor config.
type AddStageRequest struct {
	Stage     string `json:"stage"`
	Location  string `json:"location"`
	Handler   string `json:"handler"`
	Timestamp string `json:"timestamp,omitempty"`
	Notes     string `json:"notes,omitempty"`
	Role      string `json:"-"`
}

// TrackingResponse is the tracking history envelope.
type TrackingResponse struct {
	ProductID string                `json:"productId"`
	History   []model.TrackingStage `json:"history"`
}

// CreateFarmRequest mirrors the POST /v1/farms body.
type CreateFarmRequest struct {
	Name        string `json:"name"`
	Location    string `json:"location"`
	Owner       string `json:"owner"`
	ContactInfo string `json:"contactInfo,omitempty"`
	Description string `json:"description,omitempty"`
}
