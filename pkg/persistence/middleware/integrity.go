package middleware

import (
	"context"
	"fmt"

	"github.com/aretw0/shadenet/pkg/domain"
	"github.com/aretw0/shadenet/pkg/ports"
	"github.com/aretw0/shadenet/pkg/schema"
)

type integrityMiddleware struct {
	next ports.LayerStore
}

// NewIntegrityMiddleware creates a middleware that refuses to save or load
// malformed layers: invalid paths or names, unknown specifiers or value
// types, and duplicated prims or attributes.
func NewIntegrityMiddleware() Middleware {
	return func(next ports.LayerStore) ports.LayerStore {
		return &integrityMiddleware{next: next}
	}
}

func (m *integrityMiddleware) Save(ctx context.Context, id string, layer *domain.Layer) error {
	if err := CheckLayer(layer); err != nil {
		return fmt.Errorf("refusing to save layer %s: %w", id, err)
	}
	return m.next.Save(ctx, id, layer)
}

func (m *integrityMiddleware) Load(ctx context.Context, id string) (*domain.Layer, error) {
	layer, err := m.next.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := CheckLayer(layer); err != nil {
		return nil, fmt.Errorf("layer %s is corrupt: %w", id, err)
	}
	return layer, nil
}

func (m *integrityMiddleware) Delete(ctx context.Context, id string) error {
	return m.next.Delete(ctx, id)
}

func (m *integrityMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

// CheckLayer reports every structural problem of layer as a *schema.AggregateError.
func CheckLayer(layer *domain.Layer) error {
	if layer == nil {
		return fmt.Errorf("%w: nil layer", domain.ErrInvalidValue)
	}

	var errs []error
	add := func(key, reason string, value any) {
		errs = append(errs, &schema.ValidationError{Key: key, Reason: reason, Value: value})
	}

	prims := make(map[domain.Path]bool, len(layer.Prims))
	for _, p := range layer.Prims {
		key := p.Path.String()
		if !p.Path.IsValid() {
			add(key, "invalid prim path", nil)
		}
		if prims[p.Path] {
			add(key, "duplicate prim", nil)
		}
		prims[p.Path] = true

		switch p.Specifier {
		case domain.SpecifierDef, domain.SpecifierClass, domain.SpecifierOver:
		default:
			add(key, fmt.Sprintf("unknown specifier %q", p.Specifier), nil)
		}

		for _, target := range p.Inherits {
			if !target.IsValid() {
				add(key, fmt.Sprintf("invalid inherit target %q", target), nil)
			}
		}

		attrs := make(map[string]bool, len(p.Attributes))
		for _, a := range p.Attributes {
			akey := key + "." + a.Name
			if !domain.IsValidPropertyName(a.Name) {
				add(akey, "invalid attribute name", nil)
			}
			if attrs[a.Name] {
				add(akey, "duplicate attribute", nil)
			}
			attrs[a.Name] = true

			if _, err := schema.ParseType(a.TypeName); err != nil {
				add(akey, err.Error(), nil)
			}
			if a.Connections != nil {
				for _, c := range *a.Connections {
					if !c.IsValid() {
						add(akey, fmt.Sprintf("invalid connection %q", c), nil)
					}
				}
			}
		}
	}

	if len(errs) > 0 {
		return &schema.AggregateError{Errors: errs}
	}
	return nil
}
