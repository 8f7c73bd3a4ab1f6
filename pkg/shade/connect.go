package shade

import (
	"fmt"

	"github.com/aretw0/shadenet/pkg/domain"
	"github.com/aretw0/shadenet/pkg/schema"
)

// ConnectionSourceInfo names the port a connection points at.
type ConnectionSourceInfo struct {
	Source     Shader
	SourceName string
	SourceType Direction
	// TypeName is the type of the source port. When connecting, an empty
	// TypeName means "same as the consumer".
	TypeName string
}

// PropertyPath returns the path of the source port.
func (i ConnectionSourceInfo) PropertyPath() domain.PropertyPath {
	return i.Source.path.AppendProperty(i.SourceType.Prefix() + i.SourceName)
}

// IsValid reports whether the source prim exists and defines the source port.
func (i ConnectionSourceInfo) IsValid() bool {
	_, ok := i.Source.GetPort(i.SourceType, i.SourceName)
	return ok
}

// ConnectToSource makes info the only local connection of the port.
// The source is not required to exist. When the source prim exists but lacks
// the source port, the port is created with info.TypeName, or with this
// port's type. Mismatched types are accepted.
func (p Port) ConnectToSource(info ConnectionSourceInfo) error {
	if info.SourceName == "" {
		return fmt.Errorf("%w: empty source name", domain.ErrInvalidName)
	}
	target := info.PropertyPath()
	if !target.IsValid() {
		return fmt.Errorf("%w: connection target %q", domain.ErrInvalidPath, target)
	}

	if err := p.ensureSource(info); err != nil {
		return err
	}

	attr, err := p.shader.localAttribute(p.FullName(), nil)
	if err != nil {
		return err
	}
	return attr.SetConnections(target)
}

func (p Port) ensureSource(info ConnectionSourceInfo) error {
	if info.Source.stage == nil {
		return nil
	}
	if _, ok := info.Source.Prim(); !ok {
		return nil
	}
	if _, ok := info.Source.GetPort(info.SourceType, info.SourceName); ok {
		return nil
	}

	typ := p.Type()
	if info.TypeName != "" {
		parsed, err := schema.ParseType(info.TypeName)
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInvalidValue, err)
		}
		typ = parsed
	}
	if typ == nil {
		return nil
	}
	_, err := info.Source.CreatePort(info.SourceType, info.SourceName, typ)
	return err
}

// ConnectToSourcePath connects the port to an arbitrary property path.
func (p Port) ConnectToSourcePath(target domain.PropertyPath) error {
	attr, err := p.shader.localAttribute(p.FullName(), nil)
	if err != nil {
		return err
	}
	return attr.SetConnections(target)
}

// HasConnectedSource reports whether the composed connection list is non-empty.
// The far end is not required to exist.
func (p Port) HasConnectedSource() bool {
	return len(p.GetRawConnectedSourcePaths()) > 0
}

// GetRawConnectedSourcePaths returns the composed connection targets as authored.
func (p Port) GetRawConnectedSourcePaths() []domain.PropertyPath {
	if p.shader.stage == nil {
		return nil
	}
	conns, _ := p.shader.stage.ResolveConnections(p.shader.path, p.FullName())
	return conns
}

// GetConnectedSources resolves the composed connection list. Targets that do
// not name an input or output are returned separately as invalid paths.
func (p Port) GetConnectedSources() (sources []ConnectionSourceInfo, invalid []domain.PropertyPath) {
	sources = []ConnectionSourceInfo{}
	for _, target := range p.GetRawConnectedSourcePaths() {
		dir, base, ok := SplitPortName(target.Name)
		if !ok {
			invalid = append(invalid, target)
			continue
		}
		src := Shader{stage: p.shader.stage, path: target.Prim}
		typeName, _ := p.shader.stage.ResolveTypeName(target.Prim, target.Name)
		sources = append(sources, ConnectionSourceInfo{
			Source:     src,
			SourceName: base,
			SourceType: dir,
			TypeName:   typeName,
		})
	}
	return sources, invalid
}

// ClearSources removes the local connection opinion. Connections authored on
// inherited prims become visible again.
func (p Port) ClearSources() error {
	prim, err := p.shader.prim()
	if err != nil {
		return err
	}
	if attr, ok := prim.Attribute(p.FullName()); ok {
		attr.ClearConnections()
	}
	return nil
}

// DisconnectSource authors an empty local connection list, hiding any
// connection authored on inherited prims.
func (p Port) DisconnectSource() error {
	attr, err := p.shader.localAttribute(p.FullName(), nil)
	if err != nil {
		return err
	}
	attr.BlockConnections()
	return nil
}
