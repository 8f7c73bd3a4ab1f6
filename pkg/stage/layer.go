package stage

import (
	"fmt"
	"maps"
	"slices"

	"github.com/aretw0/shadenet/pkg/domain"
	"github.com/aretw0/shadenet/pkg/schema"
)

// Export captures every local opinion on the stage as a layer.
// Prims keep definition order; attributes are sorted by name.
func (s *Stage) Export() *domain.Layer {
	layer := &domain.Layer{Doc: s.doc, Prims: make([]domain.PrimSpec, 0, len(s.order))}
	for _, prim := range s.Prims() {
		spec := domain.PrimSpec{
			Path:      prim.path,
			Specifier: prim.specifier,
			TypeName:  prim.typeName,
			Inherits:  slices.Clone(prim.inherits),
		}
		for _, name := range prim.AttributeNames() {
			spec.Attributes = append(spec.Attributes, exportAttribute(prim.attrs[name]))
		}
		if len(prim.dicts) > 0 {
			spec.Dictionaries = make(map[string]map[string]string, len(prim.dicts))
			for field, entries := range prim.dicts {
				spec.Dictionaries[field] = maps.Clone(entries)
			}
		}
		layer.Prims = append(layer.Prims, spec)
	}
	return layer
}

func exportAttribute(a *Attribute) domain.AttributeSpec {
	spec := domain.AttributeSpec{
		Name:     a.name,
		TypeName: a.typ.Name(),
		Metadata: a.metadataCopy(),
	}
	if a.hasValue {
		spec.Value = exportValue(a.value)
	}
	if a.connAuthored {
		conns := slices.Clone(a.connections)
		if conns == nil {
			conns = []domain.PropertyPath{}
		}
		spec.Connections = &conns
	}
	return spec
}

// exportValue lowers canonical values to plain types encoders understand.
func exportValue(v any) any {
	switch tv := v.(type) {
	case domain.AssetPath:
		return string(tv)
	case []float64:
		return slices.Clone(tv)
	case []any:
		out := make([]any, len(tv))
		for i, elem := range tv {
			out[i] = exportValue(elem)
		}
		return out
	default:
		return v
	}
}

// FromLayer builds a stage from a layer. Values are coerced to their
// declared types; the first failing opinion aborts the load.
func FromLayer(layer *domain.Layer, opts ...Option) (*Stage, error) {
	s := New(opts...)
	if layer == nil {
		return s, nil
	}
	s.doc = layer.Doc

	for _, spec := range layer.Prims {
		if err := s.applyPrimSpec(spec); err != nil {
			return nil, fmt.Errorf("prim %s: %w", spec.Path, err)
		}
	}
	return s, nil
}

func (s *Stage) applyPrimSpec(spec domain.PrimSpec) error {
	var (
		prim *Prim
		err  error
	)
	switch spec.Specifier {
	case domain.SpecifierDef, "":
		prim, err = s.DefinePrim(spec.Path, spec.TypeName)
	case domain.SpecifierClass:
		prim, err = s.CreateClassPrim(spec.Path)
		if err == nil {
			prim.typeName = spec.TypeName
		}
	case domain.SpecifierOver:
		prim, err = s.OverridePrim(spec.Path)
		if err == nil && spec.TypeName != "" {
			prim.typeName = spec.TypeName
		}
	default:
		return fmt.Errorf("%w: unknown specifier %q", domain.ErrInvalidValue, spec.Specifier)
	}
	if err != nil {
		return err
	}

	// Local attributes go in before the arcs: a local type always beats the
	// type a class contributes, so the arcs must not veto what Export wrote.
	for _, as := range spec.Attributes {
		if err := applyAttributeSpec(prim, as); err != nil {
			return fmt.Errorf("attribute %s: %w", as.Name, err)
		}
	}

	for _, target := range spec.Inherits {
		if err := prim.AddInherit(target); err != nil {
			return err
		}
	}

	for field, entries := range spec.Dictionaries {
		prim.SetDictionary(field, entries)
	}
	return nil
}

func applyAttributeSpec(prim *Prim, spec domain.AttributeSpec) error {
	typ, err := schema.ParseType(spec.TypeName)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidValue, err)
	}
	attr, err := prim.CreateAttribute(spec.Name, typ)
	if err != nil {
		return err
	}
	if spec.Value != nil {
		if err := attr.Set(spec.Value); err != nil {
			return err
		}
	}
	if spec.Connections != nil {
		if err := attr.SetConnections(*spec.Connections...); err != nil {
			return err
		}
	}
	for key, value := range spec.Metadata {
		attr.SetMetadata(key, value)
	}
	return nil
}
