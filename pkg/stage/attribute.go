package stage

import (
	"fmt"
	"maps"
	"slices"

	"github.com/aretw0/shadenet/pkg/domain"
	"github.com/aretw0/shadenet/pkg/schema"
)

// Attribute holds the opinions authored on one property of one prim.
type Attribute struct {
	prim *Prim
	name string
	typ  schema.Type

	value    any
	hasValue bool

	// connections is meaningful only when connAuthored is set; an authored
	// empty list blocks weaker opinions.
	connections  []domain.PropertyPath
	connAuthored bool

	metadata map[string]string
}

func (a *Attribute) Prim() *Prim       { return a.prim }
func (a *Attribute) Name() string      { return a.name }
func (a *Attribute) Type() schema.Type { return a.typ }

// PropertyPath returns the full path of the attribute.
func (a *Attribute) PropertyPath() domain.PropertyPath {
	return a.prim.path.AppendProperty(a.name)
}

// Set authors the default value after coercing it to the attribute type.
func (a *Attribute) Set(value any) error {
	v, err := a.typ.Coerce(value)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidValue, a.PropertyPath(), err)
	}
	a.value = v
	a.hasValue = true
	a.prim.stage.emitProperty(domain.EventValueChange, a.prim.path, a.name, "value", false)
	return nil
}

// Get returns the locally authored value.
func (a *Attribute) Get() (any, bool) {
	return a.value, a.hasValue
}

// ClearValue removes the locally authored value.
func (a *Attribute) ClearValue() {
	if !a.hasValue {
		return
	}
	a.value, a.hasValue = nil, false
	a.prim.stage.emitProperty(domain.EventValueChange, a.prim.path, a.name, "value", true)
}

// SetConnections authors the connection list, replacing any local opinion.
// Targets are not required to exist.
func (a *Attribute) SetConnections(targets ...domain.PropertyPath) error {
	for _, t := range targets {
		if !t.IsValid() {
			return fmt.Errorf("%w: connection target %q", domain.ErrInvalidPath, t)
		}
	}
	a.connections = slices.Clone(targets)
	if a.connections == nil {
		a.connections = []domain.PropertyPath{}
	}
	a.connAuthored = true
	a.prim.stage.emitProperty(domain.EventConnectionChange, a.prim.path, a.name, "connections", false)
	return nil
}

// ClearConnections removes the local connection opinion so weaker
// contributors show through again.
func (a *Attribute) ClearConnections() {
	if !a.connAuthored {
		return
	}
	a.connections, a.connAuthored = nil, false
	a.prim.stage.emitProperty(domain.EventConnectionChange, a.prim.path, a.name, "connections", true)
}

// BlockConnections authors an explicitly empty connection list.
func (a *Attribute) BlockConnections() {
	a.connections = []domain.PropertyPath{}
	a.connAuthored = true
	a.prim.stage.emitProperty(domain.EventConnectionChange, a.prim.path, a.name, "connections", false)
}

// Connections returns the local connection opinion and whether one is authored.
func (a *Attribute) Connections() ([]domain.PropertyPath, bool) {
	return slices.Clone(a.connections), a.connAuthored
}

// SetMetadata authors a string metadata field.
func (a *Attribute) SetMetadata(key, value string) {
	if a.metadata == nil {
		a.metadata = make(map[string]string)
	}
	a.metadata[key] = value
	a.prim.stage.emitProperty(domain.EventMetadataChange, a.prim.path, a.name, key, false)
}

// Metadata returns a locally authored metadata field.
func (a *Attribute) Metadata(key string) (string, bool) {
	v, ok := a.metadata[key]
	return v, ok
}

// ClearMetadata removes a locally authored metadata field.
func (a *Attribute) ClearMetadata(key string) {
	if _, ok := a.metadata[key]; !ok {
		return
	}
	delete(a.metadata, key)
	a.prim.stage.emitProperty(domain.EventMetadataChange, a.prim.path, a.name, key, true)
}

func (a *Attribute) metadataCopy() map[string]string {
	return maps.Clone(a.metadata)
}
