package sync

import (
	"context"
	"sort"

	"github.com/agritrace/supplytrace/internal/model"
	"github.com/agritrace/supplytrace/internal/store"
)

// mockStore is a minimal in-memory store for sync tests.
type mockStore struct {
	products map[string]*model.Product
	farms    map[string]*model.Farm
}

func newMockStore() *mockStore {
	return &mockStore{
		products: make(map[string]*model.Product),
		farms:    make(map[string]*model.Farm),
	}
}

func (m *mockStore) CreateProduct(_ context.Context, p *model.Product) error {
	m.products[p.ID] = p
	return nil
}

func (m *mockStore) GetProduct(_ context.Context, id string) (*model.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return p, nil
}

func (m *mockStore) ListProducts(_ context.Context, _ model.ProductFilter) ([]*model.Product, int, error) {
	var result []*model.Product
	for _, p := range m.products {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, len(result), nil
}

func (m *mockStore) UpdateProduct(_ context.Context, p *model.Product) error {
	m.products[p.ID] = p
	return nil
}

func (m *mockStore) DeleteProduct(_ context.Context, id string) error {
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
	m.farms[f.ID] = f
	return nil
}

func (m *mockStore) DeleteFarm(_ context.Context, id string) error {
	delete(m.farms, id)
	return nil
}

func (m *mockStore) Close() error { return nil }

// Compile-time check that mockStore implements store.Store.
var _ store.Store = (*mockStore)(nil)
