package events

import (
	"context"

	"github.com/agritrace/supplytrace/internal/model"
)

// Event topic constants
const (
	TopicProductCreated       = "supplytrace.product.created"
	TopicProductUpdated       = "supplytrace.product.updated"
	TopicProductDeleted       = "supplytrace.product.deleted"
	TopicProductStatusChanged = "supplytrace.product.status_changed"

	TopicFarmCreated = "supplytrace.farm.created"
	TopicFarmUpdated = "supplytrace.farm.updated"
	TopicFarmDeleted = "supplytrace.farm.deleted"
)

// Event types

type ProductCreated struct {
	Product *model.Product `json:"product"`
}

type ProductUpdated struct {
	Product *model.Product `json:"product"`
}

type ProductDeleted struct {
	ProductID string `json:"productId"`
}

// StatusChange is emitted on explicit status updates. It feeds the
// reactive status-change subscriptions and is never stored.
type StatusChange struct {
	ProductID string `json:"productId"`
	OldStatus string `json:"oldStatus"`
	NewStatus string `json:"newStatus"`
	Location  string `json:"location,omitempty"`
	Timestamp string `json:"timestamp"` // RFC 3339
}

type FarmCreated struct {
	Farm *model.Farm `json:"farm"`
}

type FarmUpdated struct {
	Farm *model.Farm `json:"farm"`
}

type FarmDeleted struct {
	FarmID string `json:"farmId"`
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}
