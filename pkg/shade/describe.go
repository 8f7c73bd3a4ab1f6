package shade

import (
	"github.com/aretw0/shadenet/pkg/domain"
	"github.com/aretw0/shadenet/pkg/stage"
)

// Summary is the resolved view of a shader, as reported by inspection tools.
type Summary struct {
	Path      domain.Path      `json:"path" yaml:"path"`
	Specifier domain.Specifier `json:"specifier" yaml:"specifier"`
	TypeName  string           `json:"type,omitempty" yaml:"type,omitempty"`
	Valid     bool             `json:"valid" yaml:"valid"`
	Inherits  []domain.Path    `json:"inherits,omitempty" yaml:"inherits,omitempty"`

	ImplementationSource domain.ImplementationSource `json:"implementationSource" yaml:"implementationSource"`
	Implementation       Implementation              `json:"implementation" yaml:"implementation"`
	SourceTypes          []string                    `json:"sourceTypes,omitempty" yaml:"sourceTypes,omitempty"`

	Inputs      []PortSummary     `json:"inputs,omitempty" yaml:"inputs,omitempty"`
	Outputs     []PortSummary     `json:"outputs,omitempty" yaml:"outputs,omitempty"`
	SdrMetadata map[string]string `json:"sdrMetadata,omitempty" yaml:"sdrMetadata,omitempty"`
}

// PortSummary is the resolved view of a port.
type PortSummary struct {
	Name          string `json:"name" yaml:"name"`
	Type          string `json:"type" yaml:"type"`
	Value         any    `json:"value,omitempty" yaml:"value,omitempty"`
	RenderType    string `json:"renderType,omitempty" yaml:"renderType,omitempty"`
	Documentation string `json:"documentation,omitempty" yaml:"documentation,omitempty"`
	DisplayGroup  string `json:"displayGroup,omitempty" yaml:"displayGroup,omitempty"`

	// Sources lists resolved connection targets. Blocked is set when a
	// connection opinion exists but is empty.
	Sources []string `json:"sources,omitempty" yaml:"sources,omitempty"`
	Blocked bool     `json:"blocked,omitempty" yaml:"blocked,omitempty"`
}

// Describe resolves everything known about a shader.
func Describe(s Shader) Summary {
	p, ok := s.Prim()
	if !ok {
		return Summary{Path: s.path}
	}

	sum := Summary{
		Path:                 s.path,
		Specifier:            p.Specifier(),
		TypeName:             p.TypeName(),
		Valid:                s.IsValid(),
		Inherits:             p.Inherits(),
		ImplementationSource: s.GetImplementationSource(),
		Implementation:       s.Implementation(),
		SourceTypes:          s.GetSourceTypes(),
		SdrMetadata:          s.GetSdrMetadata(),
	}
	for _, port := range s.Inputs() {
		sum.Inputs = append(sum.Inputs, describePort(port))
	}
	for _, port := range s.Outputs() {
		sum.Outputs = append(sum.Outputs, describePort(port))
	}
	return sum
}

// DescribeStage describes every prim of the stage in definition order.
func DescribeStage(st *stage.Stage) []Summary {
	prims := st.Prims()
	out := make([]Summary, 0, len(prims))
	for _, p := range prims {
		out = append(out, Describe(Shader{stage: st, path: p.Path()}))
	}
	return out
}

func describePort(p Port) PortSummary {
	ps := PortSummary{
		Name:          p.BaseName(),
		Type:          p.TypeName(),
		RenderType:    p.GetRenderType(),
		Documentation: p.GetDocumentation(),
		DisplayGroup:  p.GetDisplayGroup(),
	}
	if v, ok := p.Get(); ok {
		ps.Value = v
	}
	conns, authored := p.shader.stage.ResolveConnections(p.shader.path, p.FullName())
	for _, c := range conns {
		ps.Sources = append(ps.Sources, c.String())
	}
	ps.Blocked = authored && len(conns) == 0
	return ps
}
