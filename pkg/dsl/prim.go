package dsl

import (
	"fmt"
	"maps"
	"slices"

	"github.com/aretw0/shadenet/pkg/domain"
)

// PrimBuilder provides a fluent API for configuring a prim.
// Errors are recorded on the Builder and reported by Build.
type PrimBuilder struct {
	spec    domain.PrimSpec
	builder *Builder
	attrs   map[string]int
}

func (p *PrimBuilder) fail(format string, args ...any) *PrimBuilder {
	p.builder.errs = append(p.builder.errs,
		fmt.Errorf("%s: "+format, append([]any{p.spec.Path}, args...)...))
	return p
}

// attribute returns the spec of the named attribute, declaring it if needed.
func (p *PrimBuilder) attribute(name, typeName string) *domain.AttributeSpec {
	if i, ok := p.attrs[name]; ok {
		if typeName != "" && p.spec.Attributes[i].TypeName != typeName {
			p.fail("%s declared as %s and %s", name, p.spec.Attributes[i].TypeName, typeName)
		}
		return &p.spec.Attributes[i]
	}
	p.attrs[name] = len(p.spec.Attributes)
	p.spec.Attributes = append(p.spec.Attributes, domain.AttributeSpec{Name: name, TypeName: typeName})
	return &p.spec.Attributes[len(p.spec.Attributes)-1]
}

// Inherits appends inheritance arcs, nearest first.
func (p *PrimBuilder) Inherits(targets ...domain.Path) *PrimBuilder {
	p.spec.Inherits = append(p.spec.Inherits, targets...)
	return p
}

// Attribute declares a raw attribute with an optional default value.
func (p *PrimBuilder) Attribute(name, typeName string, value ...any) *PrimBuilder {
	a := p.attribute(name, typeName)
	if len(value) > 0 {
		a.Value = value[0]
	}
	return p
}

// Input declares an input port with an optional default value.
func (p *PrimBuilder) Input(name, typeName string, value ...any) *PrimBuilder {
	return p.Attribute(domain.InputsPrefix+name, typeName, value...)
}

// Output declares an output port.
func (p *PrimBuilder) Output(name, typeName string) *PrimBuilder {
	return p.Attribute(domain.OutputsPrefix+name, typeName)
}

// Connect appends a property path such as "/Texture.outputs:rgb" to the
// connections of a declared input.
func (p *PrimBuilder) Connect(input, target string) *PrimBuilder {
	i, ok := p.attrs[domain.InputsPrefix+input]
	if !ok {
		return p.fail("connect: input %s is not declared", input)
	}
	pp, err := domain.ParsePropertyPath(target)
	if err != nil {
		return p.fail("connect %s: %w", input, err)
	}
	a := &p.spec.Attributes[i]
	var conns []domain.PropertyPath
	if a.Connections != nil {
		conns = *a.Connections
	}
	conns = append(conns, pp)
	a.Connections = &conns
	return p
}

// Disconnect blocks connections inherited by a declared input.
func (p *PrimBuilder) Disconnect(input string) *PrimBuilder {
	i, ok := p.attrs[domain.InputsPrefix+input]
	if !ok {
		return p.fail("disconnect: input %s is not declared", input)
	}
	p.spec.Attributes[i].Connections = &[]domain.PropertyPath{}
	return p
}

// Meta sets an attribute metadata field (documentation, displayGroup, renderType).
func (p *PrimBuilder) Meta(name, key, value string) *PrimBuilder {
	i, ok := p.attrs[name]
	if !ok {
		return p.fail("meta: attribute %s is not declared", name)
	}
	a := &p.spec.Attributes[i]
	if a.Metadata == nil {
		a.Metadata = make(map[string]string)
	}
	a.Metadata[key] = value
	return p
}

// ID selects the "id" implementation source with the given identifier.
func (p *PrimBuilder) ID(id string) *PrimBuilder {
	p.attribute(domain.InfoImplementationSource, "token").Value = string(domain.ImplementationID)
	p.attribute(domain.InfoID, "token").Value = id
	return p
}

func sourceName(base, sourceType string) string {
	sourceType = domain.NormalizeSourceType(sourceType)
	if sourceType == domain.UniversalSourceType {
		return base
	}
	return base + domain.NamespaceDelimiter + sourceType
}

// SourceAsset selects the "sourceAsset" implementation source and registers
// asset for sourceType, with an optional sub-identifier.
func (p *PrimBuilder) SourceAsset(sourceType string, asset domain.AssetPath, subID ...string) *PrimBuilder {
	if sourceType == domain.SubIdentifierKey {
		return p.fail("%w: %q", domain.ErrReservedSourceType, sourceType)
	}
	p.attribute(domain.InfoImplementationSource, "token").Value = string(domain.ImplementationSourceAsset)
	p.attribute(sourceName(domain.InfoSourceAsset, sourceType), "asset").Value = string(asset)
	if len(subID) > 0 {
		p.attribute(sourceName(domain.InfoSourceAssetSubID, sourceType), "token").Value = subID[0]
	}
	return p
}

// SourceCode selects the "sourceCode" implementation source and registers
// code for sourceType.
func (p *PrimBuilder) SourceCode(sourceType, code string) *PrimBuilder {
	if sourceType == domain.SubIdentifierKey {
		return p.fail("%w: %q", domain.ErrReservedSourceType, sourceType)
	}
	p.attribute(domain.InfoImplementationSource, "token").Value = string(domain.ImplementationSourceCode)
	p.attribute(sourceName(domain.InfoSourceCode, sourceType), "string").Value = code
	return p
}

// SdrMetadata sets one sdrMetadata entry.
func (p *PrimBuilder) SdrMetadata(key, value string) *PrimBuilder {
	if p.spec.Dictionaries == nil {
		p.spec.Dictionaries = make(map[string]map[string]string)
	}
	d, ok := p.spec.Dictionaries[domain.SdrMetadata]
	if !ok {
		d = make(map[string]string)
		p.spec.Dictionaries[domain.SdrMetadata] = d
	}
	d[key] = value
	return p
}

// Spec returns a copy of the underlying domain.PrimSpec.
// This is primarily used by the Builder, but exposed for advanced usage.
func (p *PrimBuilder) Spec() domain.PrimSpec {
	out := p.spec
	out.Inherits = slices.Clone(p.spec.Inherits)
	out.Attributes = slices.Clone(p.spec.Attributes)
	if p.spec.Dictionaries != nil {
		out.Dictionaries = make(map[string]map[string]string, len(p.spec.Dictionaries))
		for k, v := range p.spec.Dictionaries {
			out.Dictionaries[k] = maps.Clone(v)
		}
	}
	return out
}
