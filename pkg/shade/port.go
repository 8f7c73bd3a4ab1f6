package shade

import (
	"fmt"
	"strings"

	"github.com/aretw0/shadenet/pkg/domain"
	"github.com/aretw0/shadenet/pkg/schema"
)

// Direction tells inputs from outputs.
type Direction int

const (
	Input Direction = iota
	Output
)

// Prefix returns the property namespace of the direction, e.g. "inputs:".
func (d Direction) Prefix() string {
	if d == Output {
		return domain.OutputsPrefix
	}
	return domain.InputsPrefix
}

func (d Direction) String() string {
	if d == Output {
		return "output"
	}
	return "input"
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(text []byte) error {
	switch string(text) {
	case "input":
		*d = Input
	case "output":
		*d = Output
	default:
		return fmt.Errorf("%w: direction %q", domain.ErrInvalidValue, text)
	}
	return nil
}

// SplitPortName splits a property name such as "outputs:rgb" into its
// direction and base name. It reports false for non-port properties.
func SplitPortName(property string) (Direction, string, bool) {
	if base, ok := strings.CutPrefix(property, domain.InputsPrefix); ok && base != "" {
		return Input, base, true
	}
	if base, ok := strings.CutPrefix(property, domain.OutputsPrefix); ok && base != "" {
		return Output, base, true
	}
	return Input, "", false
}

// Port is a named, typed, directional attachment point on a shader.
type Port struct {
	shader    Shader
	direction Direction
	name      string
}

func (p Port) Shader() Shader       { return p.shader }
func (p Port) Direction() Direction { return p.direction }

// BaseName returns the name without its namespace, e.g. "diffuseColor".
func (p Port) BaseName() string { return p.name }

// FullName returns the backing property name, e.g. "inputs:diffuseColor".
func (p Port) FullName() string { return p.direction.Prefix() + p.name }

// PropertyPath returns the path other ports connect to.
func (p Port) PropertyPath() domain.PropertyPath {
	return p.shader.path.AppendProperty(p.FullName())
}

// Type returns the composed type of the port.
func (p Port) Type() schema.Type {
	if p.shader.stage == nil {
		return nil
	}
	t, _ := p.shader.stage.ResolveType(p.shader.path, p.FullName())
	return t
}

// TypeName returns the composed type name of the port.
func (p Port) TypeName() string {
	if p.shader.stage == nil {
		return ""
	}
	name, _ := p.shader.stage.ResolveTypeName(p.shader.path, p.FullName())
	return name
}

// Set authors the default value on this shader's prim.
func (p Port) Set(value any) error {
	return p.shader.author(p.FullName(), nil, value)
}

// Get returns the composed default value.
func (p Port) Get() (any, bool) {
	if p.shader.stage == nil {
		return nil, false
	}
	return p.shader.stage.ResolveValue(p.shader.path, p.FullName())
}

func (p Port) setMetadata(key, value string) error {
	attr, err := p.shader.localAttribute(p.FullName(), nil)
	if err != nil {
		return err
	}
	attr.SetMetadata(key, value)
	return nil
}

func (p Port) metadata(key string) (string, bool) {
	if p.shader.stage == nil {
		return "", false
	}
	return p.shader.stage.ResolveAttributeMetadata(p.shader.path, p.FullName(), key)
}

// SetRenderType sets the renderer-specific type tag of the port.
func (p Port) SetRenderType(renderType string) error {
	return p.setMetadata(domain.MetaRenderType, renderType)
}

// GetRenderType returns the render type, or "" when none is authored.
func (p Port) GetRenderType() string {
	v, _ := p.metadata(domain.MetaRenderType)
	return v
}

// HasRenderType reports whether a render type is authored, even an empty one.
func (p Port) HasRenderType() bool {
	_, ok := p.metadata(domain.MetaRenderType)
	return ok
}

// SetDocumentation sets the human-readable description of the port.
func (p Port) SetDocumentation(doc string) error {
	return p.setMetadata(domain.MetaDocumentation, doc)
}

// GetDocumentation returns the composed description, or "".
func (p Port) GetDocumentation() string {
	v, _ := p.metadata(domain.MetaDocumentation)
	return v
}

// SetDisplayGroup sets the UI group the port is listed under.
func (p Port) SetDisplayGroup(group string) error {
	return p.setMetadata(domain.MetaDisplayGroup, group)
}

// GetDisplayGroup returns the composed display group, or "".
func (p Port) GetDisplayGroup() string {
	v, _ := p.metadata(domain.MetaDisplayGroup)
	return v
}

// CreatePort creates the port or returns the existing one. It fails with
// domain.ErrSchemaMismatch when the port already exists with another type.
func (s Shader) CreatePort(dir Direction, name string, typ schema.Type) (Port, error) {
	p, err := s.prim()
	if err != nil {
		return Port{}, err
	}
	if strings.HasPrefix(name, domain.InputsPrefix) || strings.HasPrefix(name, domain.OutputsPrefix) {
		return Port{}, fmt.Errorf("%w: port name %q must not carry a direction namespace", domain.ErrInvalidName, name)
	}
	if _, err := p.CreateAttribute(dir.Prefix()+name, typ); err != nil {
		return Port{}, err
	}
	return Port{shader: s, direction: dir, name: name}, nil
}

// CreateInput is CreatePort for an "inputs:" port.
func (s Shader) CreateInput(name string, typ schema.Type) (Port, error) {
	return s.CreatePort(Input, name, typ)
}

// CreateOutput is CreatePort for an "outputs:" port.
func (s Shader) CreateOutput(name string, typ schema.Type) (Port, error) {
	return s.CreatePort(Output, name, typ)
}

// GetPort returns the port if any contributor defines it.
func (s Shader) GetPort(dir Direction, name string) (Port, bool) {
	if s.stage == nil || name == "" {
		return Port{}, false
	}
	if !s.stage.HasAttribute(s.path, dir.Prefix()+name) {
		return Port{}, false
	}
	return Port{shader: s, direction: dir, name: name}, true
}

func (s Shader) GetInput(name string) (Port, bool)  { return s.GetPort(Input, name) }
func (s Shader) GetOutput(name string) (Port, bool) { return s.GetPort(Output, name) }

// Ports returns the ports of one direction sorted by name. The slice is a
// snapshot owned by the caller; ports created later do not appear in it.
func (s Shader) Ports(dir Direction) []Port {
	if s.stage == nil {
		return nil
	}
	var out []Port
	for _, name := range s.stage.AttributeNames(s.path) {
		d, base, ok := SplitPortName(name)
		if ok && d == dir {
			out = append(out, Port{shader: s, direction: d, name: base})
		}
	}
	return out
}

func (s Shader) Inputs() []Port  { return s.Ports(Input) }
func (s Shader) Outputs() []Port { return s.Ports(Output) }
