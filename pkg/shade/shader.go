package shade

import (
	"fmt"

	"github.com/aretw0/shadenet/pkg/domain"
	"github.com/aretw0/shadenet/pkg/schema"
	"github.com/aretw0/shadenet/pkg/stage"
)

// Shader is a handle on the prim at a path. The prim is looked up on every
// call, so a handle stays usable across prim removal and re-definition.
type Shader struct {
	stage *stage.Stage
	path  domain.Path
}

// Define creates (or turns into) a concrete Shader prim at path.
func Define(st *stage.Stage, path domain.Path) (Shader, error) {
	if _, err := st.DefinePrim(path, domain.ShaderTypeName); err != nil {
		return Shader{}, err
	}
	return Shader{stage: st, path: path}, nil
}

// Get returns a handle on the prim at path, whatever its type.
// Class prims are returned too: they can be authored on but are not valid.
func Get(st *stage.Stage, path domain.Path) (Shader, bool) {
	if _, ok := st.Prim(path); !ok {
		return Shader{}, false
	}
	return Shader{stage: st, path: path}, true
}

// Shaders returns handles on every valid shader of the stage, in definition order.
func Shaders(st *stage.Stage) []Shader {
	var out []Shader
	for _, p := range st.Prims() {
		s := Shader{stage: st, path: p.Path()}
		if s.IsValid() {
			out = append(out, s)
		}
	}
	return out
}

func (s Shader) Stage() *stage.Stage { return s.stage }
func (s Shader) Path() domain.Path   { return s.path }

// Prim returns the backing prim.
func (s Shader) Prim() (*stage.Prim, bool) {
	if s.stage == nil {
		return nil, false
	}
	return s.stage.Prim(s.path)
}

// IsValid reports whether the handle names a concrete Shader prim.
func (s Shader) IsValid() bool {
	p, ok := s.Prim()
	return ok && p.Specifier() == domain.SpecifierDef && p.TypeName() == domain.ShaderTypeName
}

func (s Shader) String() string { return s.path.String() }

func (s Shader) prim() (*stage.Prim, error) {
	p, ok := s.Prim()
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrPrimNotFound, s.path)
	}
	return p, nil
}

// localAttribute returns the attribute authored on this prim, creating it
// with the given type (or the composed type when typ is nil) if needed.
func (s Shader) localAttribute(name string, typ schema.Type) (*stage.Attribute, error) {
	p, err := s.prim()
	if err != nil {
		return nil, err
	}
	if typ == nil {
		resolved, ok := s.stage.ResolveType(s.path, name)
		if !ok {
			return nil, fmt.Errorf("%w: %s has no attribute %s", domain.ErrInvalidName, s.path, name)
		}
		typ = resolved
	}
	return p.CreateAttribute(name, typ)
}

// author creates the attribute if needed and sets its value.
func (s Shader) author(name string, typ schema.Type, value any) error {
	attr, err := s.localAttribute(name, typ)
	if err != nil {
		return err
	}
	return attr.Set(value)
}

func (s Shader) resolveString(name string) (string, bool) {
	if s.stage == nil {
		return "", false
	}
	v, ok := s.stage.ResolveValue(s.path, name)
	if !ok {
		return "", false
	}
	switch tv := v.(type) {
	case string:
		return tv, true
	case domain.AssetPath:
		return string(tv), true
	default:
		return "", false
	}
}
