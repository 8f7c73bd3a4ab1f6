package stage

import (
	"fmt"
	"maps"
	"slices"

	"github.com/aretw0/shadenet/pkg/domain"
	"github.com/aretw0/shadenet/pkg/schema"
)

// Prim holds the opinions authored directly on one path.
type Prim struct {
	stage     *Stage
	path      domain.Path
	specifier domain.Specifier
	typeName  string
	inherits  []domain.Path
	attrs     map[string]*Attribute
	dicts     map[string]map[string]string
}

func (p *Prim) Stage() *Stage               { return p.stage }
func (p *Prim) Path() domain.Path           { return p.path }
func (p *Prim) Specifier() domain.Specifier { return p.specifier }
func (p *Prim) TypeName() string            { return p.typeName }
func (p *Prim) IsAbstract() bool            { return p.specifier == domain.SpecifierClass }

// Inherits returns the authored inheritance arcs, strongest first.
func (p *Prim) Inherits() []domain.Path { return slices.Clone(p.inherits) }

// AddInherit appends an inheritance arc. Arcs added later are weaker.
// Adding an arc that is already present is a no-op.
func (p *Prim) AddInherit(target domain.Path) error {
	if !target.IsValid() {
		return fmt.Errorf("%w: inherit target %q", domain.ErrInvalidPath, target)
	}
	if target == p.path || slices.Contains(p.inherits, target) {
		return nil
	}
	p.inherits = append(p.inherits, target)
	p.stage.logger.Debug("inherit added", "path", p.path, "target", target)
	p.stage.emitPrim(domain.EventInheritChange, p)
	return nil
}

// RemoveInherit drops an inheritance arc. It reports whether the arc existed.
func (p *Prim) RemoveInherit(target domain.Path) bool {
	i := slices.Index(p.inherits, target)
	if i < 0 {
		return false
	}
	p.inherits = slices.Delete(p.inherits, i, i+1)
	p.stage.emitPrim(domain.EventInheritChange, p)
	return true
}

// CreateAttribute authors an attribute of the given type on this prim.
// Re-creating with the same type returns the existing attribute. A different
// type, either authored here or on a contributor, fails with
// domain.ErrSchemaMismatch and leaves the existing definition intact.
func (p *Prim) CreateAttribute(name string, typ schema.Type) (*Attribute, error) {
	if !domain.IsValidPropertyName(name) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidName, name)
	}
	if typ == nil {
		return nil, fmt.Errorf("%w: attribute %q has no type", domain.ErrInvalidValue, name)
	}

	if existing, ok := p.stage.ResolveTypeName(p.path, name); ok && existing != typ.Name() {
		return nil, fmt.Errorf("%w: %s.%s is %s, not %s",
			domain.ErrSchemaMismatch, p.path, name, existing, typ.Name())
	}

	if attr, ok := p.attrs[name]; ok {
		return attr, nil
	}

	attr := &Attribute{prim: p, name: name, typ: typ}
	p.attrs[name] = attr
	p.stage.emitProperty(domain.EventPropertyCreate, p.path, name, typ.Name(), false)
	return attr, nil
}

// Attribute returns the attribute authored on this prim, ignoring contributors.
func (p *Prim) Attribute(name string) (*Attribute, bool) {
	a, ok := p.attrs[name]
	return a, ok
}

// RemoveAttribute deletes the local attribute and all of its opinions.
func (p *Prim) RemoveAttribute(name string) bool {
	if _, ok := p.attrs[name]; !ok {
		return false
	}
	delete(p.attrs, name)
	p.stage.emitProperty(domain.EventPropertyCreate, p.path, name, "", true)
	return true
}

// AttributeNames returns the sorted names of locally authored attributes.
func (p *Prim) AttributeNames() []string {
	return slices.Sorted(maps.Keys(p.attrs))
}

// Dictionary returns a copy of the local entries of a dictionary field.
func (p *Prim) Dictionary(field string) map[string]string {
	return maps.Clone(p.dicts[field])
}

// HasDictionary reports whether the dictionary field has local entries.
func (p *Prim) HasDictionary(field string) bool {
	return len(p.dicts[field]) > 0
}

// SetDictionaryKey authors a single entry without disturbing other keys.
func (p *Prim) SetDictionaryKey(field, key, value string) {
	d, ok := p.dicts[field]
	if !ok {
		d = make(map[string]string)
		p.dicts[field] = d
	}
	d[key] = value
	p.stage.emitProperty(domain.EventDictionaryChange, p.path, field, key, false)
}

// SetDictionary replaces the local entries of a dictionary field.
func (p *Prim) SetDictionary(field string, entries map[string]string) {
	if len(entries) == 0 {
		p.ClearDictionary(field)
		return
	}
	p.dicts[field] = maps.Clone(entries)
	p.stage.emitProperty(domain.EventDictionaryChange, p.path, field, "", false)
}

// ClearDictionaryKey removes one local entry. Contributors are untouched.
func (p *Prim) ClearDictionaryKey(field, key string) {
	d, ok := p.dicts[field]
	if !ok {
		return
	}
	if _, ok := d[key]; !ok {
		return
	}
	delete(d, key)
	if len(d) == 0 {
		delete(p.dicts, field)
	}
	p.stage.emitProperty(domain.EventDictionaryChange, p.path, field, key, true)
}

// ClearDictionary removes every local entry of a dictionary field.
func (p *Prim) ClearDictionary(field string) {
	if _, ok := p.dicts[field]; !ok {
		return
	}
	delete(p.dicts, field)
	p.stage.emitProperty(domain.EventDictionaryChange, p.path, field, "", true)
}
