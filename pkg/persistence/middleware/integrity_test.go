package middleware_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/shadenet/pkg/adapters/memory"
	"github.com/aretw0/shadenet/pkg/domain"
	"github.com/aretw0/shadenet/pkg/persistence/middleware"
	"github.com/aretw0/shadenet/pkg/ports"
	"github.com/aretw0/shadenet/pkg/schema"
)

func TestIntegrityMiddleware_Contract(t *testing.T) {
	ports.RunLayerStoreContract(t, middleware.Chain(memory.NewStore(), middleware.NewIntegrityMiddleware()))
}

func TestIntegrityMiddleware_RejectsMalformedLayers(t *testing.T) {
	underlying := NewMockStore()
	store := middleware.NewIntegrityMiddleware()(underlying)
	ctx := context.Background()

	bad := []domain.PropertyPath{{Prim: "Texture", Name: "outputs:rgb"}}
	layer := &domain.Layer{
		Prims: []domain.PrimSpec{
			{Path: "/Pale", Specifier: domain.SpecifierDef, Inherits: []domain.Path{"classPale"}},
			{Path: "/Pale", Specifier: "undef"},
			{
				Path:      "/Texture",
				Specifier: domain.SpecifierDef,
				Attributes: []domain.AttributeSpec{
					{Name: "inputs:file", TypeName: "asset"},
					{Name: "inputs:file", TypeName: "asset"},
					{Name: "inputs:scale", TypeName: "matrix9d"},
					{Name: "inputs:st", TypeName: "float2", Connections: &bad},
				},
			},
		},
	}

	err := store.Save(ctx, "broken", layer)
	if err == nil {
		t.Fatal("Save should reject the layer")
	}
	if got := len(schema.ValidationErrors(errors.Unwrap(err))); got != 6 {
		t.Errorf("expected 6 problems, got %d: %v", got, err)
	}
	if _, err := underlying.Load(ctx, "broken"); !errors.Is(err, domain.ErrLayerNotFound) {
		t.Error("a rejected layer must not reach the underlying store")
	}

	// Layers written behind the middleware's back are caught on load.
	_ = underlying.Save(ctx, "broken", layer)
	if _, err := store.Load(ctx, "broken"); err == nil {
		t.Error("Load should report a corrupt layer")
	}
}

func TestIntegrityMiddleware_PassesNotFound(t *testing.T) {
	store := middleware.NewIntegrityMiddleware()(NewMockStore())
	_, err := store.Load(context.Background(), "missing")
	if !errors.Is(err, domain.ErrLayerNotFound) {
		t.Errorf("expected ErrLayerNotFound, got %v", err)
	}
}

func TestCheckLayer_Nil(t *testing.T) {
	if err := middleware.CheckLayer(nil); !errors.Is(err, domain.ErrInvalidValue) {
		t.Errorf("expected ErrInvalidValue, got %v", err)
	}
}
