package server

import (
	"context"
	"sort"
	"strings"

	"github.com/agritrace/supplytrace/internal/model"
	"github.com/agritrace/supplytrace/internal/store"
)

// mockStore is an in-memory store for handler tests.
type mockStore struct {
	products map[string]*model.Product
	farms    map[string]*model.Farm
}

var _ store.Store = (*mockStore)(nil)

func newMockStore() *mockStore {
	return &mockStore{
		products: make(map[string]*model.Product),
		farms:    make(map[string]*model.Farm),
	}
}

func (m *mockStore) CreateProduct(_ context.Context, p *model.Product) error {
	m.products[p.ID] = p.Clone()
	return nil
}

func (m *mockStore) GetProduct(_ context.Context, id string) (*model.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return p.Clone(), nil
}

func (m *mockStore) ListProducts(_ context.Context, f model.ProductFilter) ([]*model.Product, int, error) {
	var result []*model.Product
	for _, p := range m.products {
		if f.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Name)) {
			continue
		}
		if f.Type != "" && !strings.EqualFold(p.Type, f.Type) {
			continue
		}
		if f.BatchID != "" && !strings.EqualFold(p.BatchID, f.BatchID) {
			continue
		}
		if f.OriginFarmID != "" && p.OriginFarmID != f.OriginFarmID {
			continue
		}
		if f.Status != "" && !strings.EqualFold(p.Status, f.Status) {
			continue
		}
		result = append(result, p.Clone())
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	total := len(result)
	if f.Offset > 0 {
		if f.Offset >= len(result) {
			result = nil
		} else {
			result = result[f.Offset:]
		}
	}
	if f.Limit > 0 && len(result) > f.Limit {
		result = result[:f.Limit]
	}
	return result, total, nil
}

func (m *mockStore) UpdateProduct(_ context.Context, p *model.Product) error {
	if _, ok := m.products[p.ID]; !ok {
		return store.ErrNotFound
	}
	m.products[p.ID] = p.Clone()
	return nil
}

func (m *mockStore) DeleteProduct(_ context.Context, id string) error {
	if _, ok := m.products[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *mockStore) CreateFarm(_ context.Context, f *model.Farm) error {
	m.farms[f.ID] = f
	return nil
}

func (m *mockStore) GetFarm(_ context.Context, id string) (*model.Farm, error) {
	f, ok := m.farms[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return f, nil
}

func (m *mockStore) ListFarms(_ context.Context) ([]*model.Farm, error) {
	var result []*model.Farm
	for _, f := range m.farms {
		result = append(result, f)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (m *mockStore) UpdateFarm(_ context.Context, f *model.Farm) error {
	if _, ok := m.farms[f.ID]; !ok {
		return store.ErrNotFound
	}
	m.farms[f.ID] = f
	return nil
}

func (m *mockStore) DeleteFarm(_ context.Context, id string) error {
	if _, ok := m.farms[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.farms, id)
	return nil
}

func (m *mockStore) Close() error { return nil }
