package domain

// Specifier describes how a prim participates in composition.
type Specifier string

const (
	// SpecifierDef is a concrete prim.
	SpecifierDef Specifier = "def"
	// SpecifierClass is an abstract prim that only exists to be inherited from.
	SpecifierClass Specifier = "class"
	// SpecifierOver only carries opinions for a prim defined elsewhere.
	SpecifierOver Specifier = "over"
)

// Layer is the persisted form of a stage.
type Layer struct {
	Doc   string     `json:"doc,omitempty" yaml:"doc,omitempty"`
	Prims []PrimSpec `json:"prims" yaml:"prims"`
}

// PrimSpec holds the opinions a layer authors on a single prim.
type PrimSpec struct {
	Path      Path      `json:"path" yaml:"path"`
	Specifier Specifier `json:"specifier" yaml:"specifier"`
	TypeName  string    `json:"type,omitempty" yaml:"type,omitempty"`

	// Inherits lists inheritance arcs, nearest first.
	Inherits []Path `json:"inherits,omitempty" yaml:"inherits,omitempty"`

	Attributes []AttributeSpec `json:"attributes,omitempty" yaml:"attributes,omitempty"`

	// Dictionaries holds dictionary-valued fields such as SdrMetadata.
	Dictionaries map[string]map[string]string `json:"dictionaries,omitempty" yaml:"dictionaries,omitempty"`
}

// AttributeSpec holds the opinions a layer authors on a single attribute.
type AttributeSpec struct {
	Name     string `json:"name" yaml:"name"`
	TypeName string `json:"type" yaml:"type"`

	// Value is the default value, nil when unauthored.
	Value any `json:"value,omitempty" yaml:"value,omitempty"`

	// Connections is nil when unauthored. A non-nil empty list is an
	// explicit block of weaker opinions.
	Connections *[]PropertyPath `json:"connections,omitempty" yaml:"connections,omitempty"`

	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}
