package compiler

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/aretw0/shadenet/internal/dto"
	"github.com/aretw0/shadenet/pkg/domain"
	"github.com/aretw0/shadenet/pkg/dsl"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Parser is responsible for converting raw bytes into a layer.
type Parser struct{}

// NewParser creates a new parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes YAML or JSON content. A document with a "prims" list is a
// layer document; anything else is read as a compact network.
func (p *Parser) Parse(data []byte) (*domain.Layer, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("empty document")
	}

	if _, ok := raw["prims"].([]any); ok {
		var layer domain.Layer
		if err := yaml.Unmarshal(data, &layer); err != nil {
			return nil, fmt.Errorf("failed to parse layer: %w", err)
		}
		return &layer, nil
	}

	var network dto.Network
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &network,
		ErrorUnused:      true, // Catch misspelled keys
		WeaklyTypedInput: true, // A single connect target may be a scalar
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode network: %w", err)
	}
	return Compile(network)
}

// Compile lowers a network into a layer document. Classes are emitted
// before shaders, each group sorted by path.
func Compile(network dto.Network) (*domain.Layer, error) {
	b := dsl.New().Doc(network.Doc)
	var errs []error

	for _, path := range slices.Sorted(maps.Keys(network.Classes)) {
		compilePrim(b.Class(domain.Path(path)), network.Classes[path], &errs)
	}
	for _, path := range slices.Sorted(maps.Keys(network.Shaders)) {
		compilePrim(b.Shader(domain.Path(path)), network.Shaders[path], &errs)
	}

	layer, err := b.Layer()
	if err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return layer, nil
}

func compilePrim(pb *dsl.PrimBuilder, spec dto.ShaderSpec, errs *[]error) {
	for _, target := range spec.Inherits {
		pb.Inherits(domain.Path(target))
	}

	sources := 0
	if spec.ID != "" {
		sources++
		pb.ID(spec.ID)
	}
	if len(spec.SourceAsset) > 0 {
		sources++
		for _, key := range slices.Sorted(maps.Keys(spec.SourceAsset)) {
			rec := spec.SourceAsset[key]
			var sub []string
			if rec.SubIdentifier != "" {
				sub = append(sub, rec.SubIdentifier)
			}
			pb.SourceAsset(sourceType(key), domain.AssetPath(rec.Asset), sub...)
		}
	}
	if len(spec.SourceCode) > 0 {
		sources++
		for _, key := range slices.Sorted(maps.Keys(spec.SourceCode)) {
			pb.SourceCode(sourceType(key), spec.SourceCode[key])
		}
	}
	if sources > 1 {
		*errs = append(*errs, fmt.Errorf("%s: id, source_asset and source_code are mutually exclusive", pb.Spec().Path))
	}

	for _, name := range slices.Sorted(maps.Keys(spec.Inputs)) {
		port := spec.Inputs[name]
		if port.Value != nil {
			pb.Input(name, port.Type, port.Value)
		} else {
			pb.Input(name, port.Type)
		}
		for _, target := range port.Connect {
			pb.Connect(name, target)
		}
		if port.Disconnect {
			pb.Disconnect(name)
		}
		portMeta(pb, domain.InputsPrefix+name, port)
	}
	for _, name := range slices.Sorted(maps.Keys(spec.Outputs)) {
		port := spec.Outputs[name]
		if len(port.Connect) > 0 || port.Disconnect {
			*errs = append(*errs, fmt.Errorf("%s: output %s cannot be connected", pb.Spec().Path, name))
		}
		pb.Output(name, port.Type)
		portMeta(pb, domain.OutputsPrefix+name, port)
	}

	for _, key := range slices.Sorted(maps.Keys(spec.SdrMetadata)) {
		pb.SdrMetadata(key, spec.SdrMetadata[key])
	}
}

func portMeta(pb *dsl.PrimBuilder, property string, port dto.PortSpec) {
	for key, value := range map[string]string{
		domain.MetaDocumentation: port.Documentation,
		domain.MetaDisplayGroup:  port.DisplayGroup,
		domain.MetaRenderType:    port.RenderType,
	} {
		if value != "" {
			pb.Meta(property, key, value)
		}
	}
}

func sourceType(key string) string {
	return domain.NormalizeSourceType(key)
}
