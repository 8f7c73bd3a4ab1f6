package dsl

import (
	"errors"
	"fmt"

	"github.com/aretw0/shadenet/pkg/domain"
	"github.com/aretw0/shadenet/pkg/stage"
)

// Builder manages the layer construction.
type Builder struct {
	doc   string
	order []domain.Path
	prims map[domain.Path]*PrimBuilder
	errs  []error
}

// New creates a new layer builder.
func New() *Builder {
	return &Builder{
		prims: make(map[domain.Path]*PrimBuilder),
	}
}

// Doc sets the layer documentation.
func (b *Builder) Doc(doc string) *Builder {
	b.doc = doc
	return b
}

// Prim declares a concrete prim of the given type.
// If the prim already exists, it returns the existing builder.
func (b *Builder) Prim(path domain.Path, typeName string) *PrimBuilder {
	pb := b.add(path, domain.SpecifierDef)
	pb.spec.TypeName = typeName
	return pb
}

// Shader declares a concrete Shader prim.
func (b *Builder) Shader(path domain.Path) *PrimBuilder {
	return b.Prim(path, domain.ShaderTypeName)
}

// Class declares an abstract prim other prims inherit from.
func (b *Builder) Class(path domain.Path) *PrimBuilder {
	return b.add(path, domain.SpecifierClass)
}

// Over declares opinions on a prim defined elsewhere.
func (b *Builder) Over(path domain.Path) *PrimBuilder {
	return b.add(path, domain.SpecifierOver)
}

func (b *Builder) add(path domain.Path, spec domain.Specifier) *PrimBuilder {
	if pb, ok := b.prims[path]; ok {
		pb.spec.Specifier = spec
		return pb
	}
	pb := &PrimBuilder{
		spec:    domain.PrimSpec{Path: path, Specifier: spec},
		builder: b,
		attrs:   make(map[string]int),
	}
	b.prims[path] = pb
	b.order = append(b.order, path)
	return pb
}

// Layer returns the layer described so far, along with any error recorded
// by the fluent calls.
func (b *Builder) Layer() (*domain.Layer, error) {
	if err := errors.Join(b.errs...); err != nil {
		return nil, err
	}
	layer := &domain.Layer{Doc: b.doc, Prims: make([]domain.PrimSpec, 0, len(b.order))}
	for _, path := range b.order {
		layer.Prims = append(layer.Prims, b.prims[path].Spec())
	}
	return layer, nil
}

// Build compiles the layer into a Stage.
func (b *Builder) Build(opts ...stage.Option) (*stage.Stage, error) {
	layer, err := b.Layer()
	if err != nil {
		return nil, fmt.Errorf("invalid layer: %w", err)
	}

	st, err := stage.FromLayer(layer, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build stage: %w", err)
	}
	return st, nil
}
