package ports

import (
	"context"

	"github.com/aretw0/shadenet/pkg/domain"
)

// LayerStore defines the interface for persisting layers.
// A layer is the full set of opinions of one stage, addressed by an ID.
type LayerStore interface {
	// Save persists the layer under the given ID, replacing any previous version.
	Save(ctx context.Context, id string, layer *domain.Layer) error

	// Load retrieves the layer for a given ID.
	// Returns domain.ErrLayerNotFound if the layer does not exist.
	Load(ctx context.Context, id string) (*domain.Layer, error)

	// Delete removes the layer for a given ID.
	// Deleting a missing layer is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of all stored layers, sorted.
	List(ctx context.Context) ([]string, error)
}
