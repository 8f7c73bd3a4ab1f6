package dto

// Network is the compact authoring form of a shading network.
// It uses "mapstructure" tags so YAML and JSON documents decode the same way.
type Network struct {
	Doc     string                `json:"doc" mapstructure:"doc"`
	Classes map[string]ShaderSpec `json:"classes" mapstructure:"classes"`
	Shaders map[string]ShaderSpec `json:"shaders" mapstructure:"shaders"`
}

// ShaderSpec describes one prim of the network.
type ShaderSpec struct {
	Inherits []string `json:"inherits" mapstructure:"inherits"`

	// Implementation. At most one of ID, SourceAsset and SourceCode is set.
	ID          string               `json:"id" mapstructure:"id"`
	SourceAsset map[string]AssetSpec `json:"source_asset" mapstructure:"source_asset"`
	SourceCode  map[string]string    `json:"source_code" mapstructure:"source_code"`

	Inputs  map[string]PortSpec `json:"inputs" mapstructure:"inputs"`
	Outputs map[string]PortSpec `json:"outputs" mapstructure:"outputs"`

	SdrMetadata map[string]string `json:"sdr_metadata" mapstructure:"sdr_metadata"`
}

// AssetSpec is one per-source-type asset record.
type AssetSpec struct {
	Asset         string `json:"asset" mapstructure:"asset"`
	SubIdentifier string `json:"sub_identifier" mapstructure:"sub_identifier"`
}

// PortSpec declares a port. Connect and Disconnect only apply to inputs.
type PortSpec struct {
	Type          string   `json:"type" mapstructure:"type"`
	Value         any      `json:"value" mapstructure:"value"`
	Connect       []string `json:"connect" mapstructure:"connect"`
	Disconnect    bool     `json:"disconnect" mapstructure:"disconnect"`
	Documentation string   `json:"documentation" mapstructure:"documentation"`
	DisplayGroup  string   `json:"display_group" mapstructure:"display_group"`
	RenderType    string   `json:"render_type" mapstructure:"render_type"`
}
