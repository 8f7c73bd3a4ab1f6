package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/aretw0/shadenet/pkg/domain"
	"github.com/mitchellh/copystructure"
)

// Store implements ports.LayerStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Layer
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Layer),
	}
}

func cloneLayer(layer *domain.Layer) (*domain.Layer, error) {
	copied, err := copystructure.Copy(layer)
	if err != nil {
		return nil, fmt.Errorf("failed to copy layer: %w", err)
	}
	return copied.(*domain.Layer), nil
}

// Save persists the layer in memory.
func (s *Store) Save(ctx context.Context, id string, layer *domain.Layer) error {
	if id == "" {
		return fmt.Errorf("layer id cannot be empty")
	}
	// Deep copy to ensure isolation, similar to serialization
	copied, err := cloneLayer(layer)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[id] = copied
	return nil
}

// Load retrieves the layer from memory.
func (s *Store) Load(ctx context.Context, id string) (*domain.Layer, error) {
	s.mu.RLock()
	layer, ok := s.data[id]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrLayerNotFound
	}

	// Create a copy on read so caller can't mutate store state directly by pointer
	return cloneLayer(layer)
}

// Delete removes the layer.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns stored layer IDs, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}
