package stage

import (
	"maps"
	"slices"

	"github.com/aretw0/shadenet/pkg/domain"
	"github.com/aretw0/shadenet/pkg/schema"
)

// Contributors returns the prims that contribute opinions to path, strongest
// first: the prim itself, then each inherited prim depth first. A prim
// reached twice contributes once, at its strongest position. Arcs to
// missing prims are skipped.
func (s *Stage) Contributors(path domain.Path) []*Prim {
	var out []*Prim
	seen := make(map[domain.Path]bool)

	var walk func(p domain.Path)
	walk = func(p domain.Path) {
		if seen[p] {
			return
		}
		seen[p] = true

		prim, ok := s.prims[p]
		if !ok {
			return
		}
		out = append(out, prim)
		for _, target := range prim.inherits {
			walk(target)
		}
	}
	walk(path)
	return out
}

// strongestAttribute returns the first contributor-authored attribute named
// name for which has reports an opinion.
func (s *Stage) strongestAttribute(path domain.Path, name string, has func(*Attribute) bool) (*Attribute, bool) {
	for _, prim := range s.Contributors(path) {
		if attr, ok := prim.attrs[name]; ok && has(attr) {
			return attr, true
		}
	}
	return nil, false
}

func anyOpinion(*Attribute) bool { return true }

// HasAttribute reports whether any contributor defines the attribute.
func (s *Stage) HasAttribute(path domain.Path, name string) bool {
	_, ok := s.strongestAttribute(path, name, anyOpinion)
	return ok
}

// ResolveType returns the type of the strongest definition of the attribute.
func (s *Stage) ResolveType(path domain.Path, name string) (schema.Type, bool) {
	attr, ok := s.strongestAttribute(path, name, anyOpinion)
	if !ok {
		return nil, false
	}
	return attr.typ, true
}

// ResolveTypeName is ResolveType reduced to the type name.
func (s *Stage) ResolveTypeName(path domain.Path, name string) (string, bool) {
	t, ok := s.ResolveType(path, name)
	if !ok {
		return "", false
	}
	return t.Name(), true
}

// ResolveValue returns the strongest authored default value.
func (s *Stage) ResolveValue(path domain.Path, name string) (any, bool) {
	attr, ok := s.strongestAttribute(path, name, func(a *Attribute) bool { return a.hasValue })
	if !ok {
		return nil, false
	}
	return attr.value, true
}

// ResolveConnections returns the strongest authored connection list.
// The boolean is false when no contributor authored connections; an authored
// empty list yields (empty, true).
func (s *Stage) ResolveConnections(path domain.Path, name string) ([]domain.PropertyPath, bool) {
	attr, ok := s.strongestAttribute(path, name, func(a *Attribute) bool { return a.connAuthored })
	if !ok {
		return nil, false
	}
	return slices.Clone(attr.connections), true
}

// ResolveAttributeMetadata returns the strongest authored metadata field.
func (s *Stage) ResolveAttributeMetadata(path domain.Path, name, key string) (string, bool) {
	attr, ok := s.strongestAttribute(path, name, func(a *Attribute) bool {
		_, has := a.metadata[key]
		return has
	})
	if !ok {
		return "", false
	}
	return attr.metadata[key], true
}

// ResolveDictionary composes a dictionary field key by key. Each key takes
// the value of the nearest contributor defining it. The result is never nil.
func (s *Stage) ResolveDictionary(path domain.Path, field string) map[string]string {
	out := make(map[string]string)
	for _, prim := range s.Contributors(path) {
		for k, v := range prim.dicts[field] {
			if _, ok := out[k]; !ok {
				out[k] = v
			}
		}
	}
	return out
}

// ResolveDictionaryKey resolves a single dictionary entry.
func (s *Stage) ResolveDictionaryKey(path domain.Path, field, key string) (string, bool) {
	for _, prim := range s.Contributors(path) {
		if v, ok := prim.dicts[field][key]; ok {
			return v, true
		}
	}
	return "", false
}

// AttributeNames returns the sorted names of every attribute defined by any
// contributor to path.
func (s *Stage) AttributeNames(path domain.Path) []string {
	names := make(map[string]struct{})
	for _, prim := range s.Contributors(path) {
		for name := range prim.attrs {
			names[name] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(names))
}
