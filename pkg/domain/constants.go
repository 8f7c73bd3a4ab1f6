package domain

// NamespaceDelimiter separates the namespaces of a property name.
const NamespaceDelimiter = ":"

// Property namespaces and names backing ports and implementation sources.
// These names are part of the persisted layer format.
const (
	InputsPrefix  = "inputs:"
	OutputsPrefix = "outputs:"

	InfoID                   = "info:id"
	InfoImplementationSource = "info:implementationSource"
	InfoSourceAsset          = "info:sourceAsset"
	InfoSourceCode           = "info:sourceCode"
	InfoSourceAssetSubID     = "info:sourceAsset:subIdentifier"
)

// SubIdentifierKey is the name reserved for sub-identifiers under InfoSourceAsset.
const SubIdentifierKey = "subIdentifier"

// SdrMetadata is the dictionary field holding shader registry metadata.
const SdrMetadata = "sdrMetadata"

// Attribute metadata keys used by ports.
const (
	MetaDocumentation = "documentation"
	MetaDisplayGroup  = "displayGroup"
	MetaRenderType    = "renderType"
)

// ShaderTypeName is the prim type name of shader prims.
const ShaderTypeName = "Shader"

// UniversalSourceType is the type-agnostic source type. Its records use the
// unqualified property names.
const UniversalSourceType = ""

// UniversalSourceTypeName is the spelled-out alias of UniversalSourceType.
const UniversalSourceTypeName = "universal"

// NormalizeSourceType maps the "universal" alias onto UniversalSourceType.
// Other source types are returned unchanged.
func NormalizeSourceType(sourceType string) string {
	if sourceType == UniversalSourceTypeName {
		return UniversalSourceType
	}
	return sourceType
}

// ImplementationSource selects which companion record backs a shader.
type ImplementationSource string

const (
	ImplementationID          ImplementationSource = "id"
	ImplementationSourceAsset ImplementationSource = "sourceAsset"
	ImplementationSourceCode  ImplementationSource = "sourceCode"
)

// IsValid reports whether s is one of the three implementation source tokens.
func (s ImplementationSource) IsValid() bool {
	switch s {
	case ImplementationID, ImplementationSourceAsset, ImplementationSourceCode:
		return true
	}
	return false
}

// Common keys of the SdrMetadata dictionary.
const (
	SdrKeyCategory    = "category"
	SdrKeyRole        = "role"
	SdrKeyDepartments = "departments"
	SdrKeyHelp        = "help"
	SdrKeyLabel       = "label"
	SdrKeyPages       = "pages"
	SdrKeyPrimvars    = "primvars"
)

// AssetPath is an opaque reference to an external asset, such as a shader file.
type AssetPath string

func (a AssetPath) String() string { return string(a) }
