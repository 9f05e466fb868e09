package store

import (
	"context"
	"errors"

	"github.com/agritrace/supplytrace/internal/model"
)

// ErrNotFound is returned when a record does not exist. Callers branch on
// it with errors.Is.
var ErrNotFound = errors.New("not found")

// Store defines the persistence interface for products and farms.
// The tracking core only needs GetProduct and UpdateProduct; the rest
// serves the CRUD surface around it.
type Store interface {
	// Product CRUD
	CreateProduct(ctx context.Context, p *model.Product) error
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	ListProducts(ctx context.Context, filter model.ProductFilter) ([]*model.Product, int, error) // returns products, total count, error
	UpdateProduct(ctx context.Context, p *model.Product) error
	DeleteProduct(ctx context.Context, id string) error

	// Farm CRUD
	CreateFarm(ctx context.Context, f *model.Farm) error
	GetFarm(ctx context.Context, id string) (*model.Farm, error)
	ListFarms(ctx context.Context) ([]*model.Farm, error)
	UpdateFarm(ctx context.Context, f *model.Farm) error
	DeleteFarm(ctx context.Context, id string) error

	// Lifecycle
	Close() error
}
