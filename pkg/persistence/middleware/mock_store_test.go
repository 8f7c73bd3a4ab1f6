package middleware_test

import (
	"context"
	"slices"

	"github.com/aretw0/shadenet/pkg/domain"
	"github.com/aretw0/shadenet/pkg/ports"
)

// MockStore is a simple map-based store for testing middleware.
// It keeps the pointers it is given so tests can inspect what reached it.
type MockStore struct {
	data map[string]*domain.Layer
}

func NewMockStore() *MockStore {
	return &MockStore{
		data: make(map[string]*domain.Layer),
	}
}

func (s *MockStore) Save(ctx context.Context, id string, layer *domain.Layer) error {
	s.data[id] = layer
	return nil
}

func (s *MockStore) Load(ctx context.Context, id string) (*domain.Layer, error) {
	layer, ok := s.data[id]
	if !ok {
		return nil, domain.ErrLayerNotFound
	}
	return layer, nil
}

func (s *MockStore) Delete(ctx context.Context, id string) error {
	delete(s.data, id)
	return nil
}

func (s *MockStore) List(ctx context.Context) ([]string, error) {
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, nil
}

var _ ports.LayerStore = (*MockStore)(nil)
