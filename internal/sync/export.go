package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/agritrace/supplytrace/internal/model"
	"github.com/agritrace/supplytrace/internal/store"
)

// header is the first JSONL record written by ExportJSONL.
type header struct {
	Version      string    `json:"version"`
	Type         string    `json:"type"`
	Timestamp    time.Time `json:"timestamp"`
	ProductCount int       `json:"product_count"`
	FarmCount    int       `json:"farm_count"`
}

// record wraps a single JSONL line with a type discriminator.
type record struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// ExportJSONL writes all farms and products from the store as JSONL to w.
// Products embed their full tracking history; both sections are sorted by ID.
func ExportJSONL(ctx context.Context, s store.Store, w io.Writer) error {
	products, _, err := s.ListProducts(ctx, model.ProductFilter{Sort: "created_at"})
	if err != nil {
		return fmt.Errorf("list products: %w", err)
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].ID < products[j].ID
	})

	farms, err := s.ListFarms(ctx)
	if err != nil {
		return fmt.Errorf("list farms: %w", err)
	}
	sort.Slice(farms, func(i, j int) bool {
		return farms[i].ID < farms[j].ID
	})

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(header{
		Version:      "1",
		Type:         "header",
		Timestamp:    time.Now().UTC(),
		ProductCount: len(products),
		FarmCount:    len(farms),
	}); err != nil {
		return fmt.Errorf("encode header: %w", err)
	}

	for _, f := range farms {
		if err := enc.Encode(record{Type: "farm", Data: f}); err != nil {
			return fmt.Errorf("encode farm %s: %w", f.ID, err)
		}
	}
	for _, p := range products {
		if err := enc.Encode(record{Type: "product", Data: p}); err != nil {
			return fmt.Errorf("encode product %s: %w", p.ID, err)
		}
	}

	return nil
}
