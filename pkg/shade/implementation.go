package shade

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/aretw0/shadenet/pkg/domain"
	"github.com/aretw0/shadenet/pkg/schema"
)

// Implementation is the resolved backing of a shader, one variant per
// implementation source. Records of the inactive modes never appear in it.
type Implementation interface {
	Source() domain.ImplementationSource
}

// IDImplementation backs a shader with a registry identifier.
type IDImplementation struct {
	ID string `json:"id,omitempty" yaml:"id,omitempty"`
}

// AssetRecord is the source asset registered for one source type.
type AssetRecord struct {
	Asset         domain.AssetPath `json:"asset,omitempty" yaml:"asset,omitempty"`
	SubIdentifier string           `json:"subIdentifier,omitempty" yaml:"subIdentifier,omitempty"`
}

// AssetImplementation backs a shader with external source files, keyed by
// source type. The universal record has the empty key.
type AssetImplementation struct {
	Assets map[string]AssetRecord `json:"assets" yaml:"assets"`
}

// CodeImplementation backs a shader with inline source, keyed by source type.
type CodeImplementation struct {
	Code map[string]string `json:"code" yaml:"code"`
}

func (IDImplementation) Source() domain.ImplementationSource { return domain.ImplementationID }
func (AssetImplementation) Source() domain.ImplementationSource {
	return domain.ImplementationSourceAsset
}
func (CodeImplementation) Source() domain.ImplementationSource {
	return domain.ImplementationSourceCode
}

func sourceProperty(base, sourceType string) string {
	if sourceType == domain.UniversalSourceType {
		return base
	}
	return base + domain.NamespaceDelimiter + sourceType
}

// sourceTypeKey validates sourceType and returns the key its records are
// stored under. "universal" names the universal record.
func sourceTypeKey(sourceType string) (string, error) {
	sourceType = domain.NormalizeSourceType(sourceType)
	if sourceType == domain.UniversalSourceType {
		return sourceType, nil
	}
	if sourceType == domain.SubIdentifierKey {
		return "", fmt.Errorf("%w: %q", domain.ErrReservedSourceType, sourceType)
	}
	if strings.Contains(sourceType, domain.NamespaceDelimiter) || !domain.IsValidPropertyName(sourceType) {
		return "", fmt.Errorf("%w: source type %q", domain.ErrInvalidName, sourceType)
	}
	return sourceType, nil
}

// GetImplementationSource returns the active implementation source.
// Unauthored or unknown tokens resolve to domain.ImplementationID.
func (s Shader) GetImplementationSource() domain.ImplementationSource {
	v, ok := s.resolveString(domain.InfoImplementationSource)
	if !ok {
		return domain.ImplementationID
	}
	src := domain.ImplementationSource(v)
	if !src.IsValid() {
		s.stage.Logger().Warn("invalid implementation source, defaulting to id",
			"path", s.path, "value", v)
		return domain.ImplementationID
	}
	return src
}

// SetImplementationSource switches the active implementation source.
// Records of other modes are left in place but stop being reported.
func (s Shader) SetImplementationSource(src domain.ImplementationSource) error {
	if !src.IsValid() {
		return fmt.Errorf("%w: implementation source %q", domain.ErrInvalidValue, src)
	}
	return s.author(domain.InfoImplementationSource, schema.Token(), string(src))
}

// SetShaderId authors the identifier. It does not switch the implementation
// source; the identifier is only reported while the source is "id".
func (s Shader) SetShaderId(id string) error {
	return s.author(domain.InfoID, schema.Token(), id)
}

// GetShaderId returns the identifier when the implementation source is "id".
func (s Shader) GetShaderId() (string, bool) {
	if s.GetImplementationSource() != domain.ImplementationID {
		return "", false
	}
	return s.resolveString(domain.InfoID)
}

// SetSourceCode authors inline source for sourceType and switches the
// implementation source to "sourceCode".
func (s Shader) SetSourceCode(code, sourceType string) error {
	sourceType, err := sourceTypeKey(sourceType)
	if err != nil {
		return err
	}
	if err := s.author(sourceProperty(domain.InfoSourceCode, sourceType), schema.String(), code); err != nil {
		return err
	}
	return s.SetImplementationSource(domain.ImplementationSourceCode)
}

// GetSourceCode returns the inline source registered for exactly sourceType.
// There is no fallback to the universal record.
func (s Shader) GetSourceCode(sourceType string) (string, bool) {
	if s.GetImplementationSource() != domain.ImplementationSourceCode {
		return "", false
	}
	sourceType, err := sourceTypeKey(sourceType)
	if err != nil {
		return "", false
	}
	return s.resolveString(sourceProperty(domain.InfoSourceCode, sourceType))
}

// SetSourceAsset authors the asset for sourceType and switches the
// implementation source to "sourceAsset".
func (s Shader) SetSourceAsset(asset domain.AssetPath, sourceType string) error {
	sourceType, err := sourceTypeKey(sourceType)
	if err != nil {
		return err
	}
	if err := s.author(sourceProperty(domain.InfoSourceAsset, sourceType), schema.Asset(), asset); err != nil {
		return err
	}
	return s.SetImplementationSource(domain.ImplementationSourceAsset)
}

// GetSourceAsset returns the asset registered for sourceType, falling back
// to the universal record.
func (s Shader) GetSourceAsset(sourceType string) (domain.AssetPath, bool) {
	v, ok := s.assetField(domain.InfoSourceAsset, sourceType)
	return domain.AssetPath(v), ok
}

// SetSourceAssetSubIdentifier authors the sub-identifier selecting a
// definition inside the asset for sourceType and switches the implementation
// source to "sourceAsset".
func (s Shader) SetSourceAssetSubIdentifier(subID, sourceType string) error {
	sourceType, err := sourceTypeKey(sourceType)
	if err != nil {
		return err
	}
	if err := s.author(sourceProperty(domain.InfoSourceAssetSubID, sourceType), schema.Token(), subID); err != nil {
		return err
	}
	return s.SetImplementationSource(domain.ImplementationSourceAsset)
}

// GetSourceAssetSubIdentifier returns the sub-identifier for sourceType,
// falling back to the universal record.
func (s Shader) GetSourceAssetSubIdentifier(sourceType string) (string, bool) {
	return s.assetField(domain.InfoSourceAssetSubID, sourceType)
}

func (s Shader) assetField(base, sourceType string) (string, bool) {
	if s.GetImplementationSource() != domain.ImplementationSourceAsset {
		return "", false
	}
	sourceType, err := sourceTypeKey(sourceType)
	if err != nil {
		return "", false
	}
	if v, ok := s.resolveString(sourceProperty(base, sourceType)); ok {
		return v, true
	}
	if sourceType == domain.UniversalSourceType {
		return "", false
	}
	return s.resolveString(base)
}

// GetSourceTypes returns the sorted source types with a record in the active
// mode, leaving out the universal one. It is empty in "id" mode.
func (s Shader) GetSourceTypes() []string {
	var base string
	switch s.GetImplementationSource() {
	case domain.ImplementationSourceCode:
		base = domain.InfoSourceCode
	case domain.ImplementationSourceAsset:
		base = domain.InfoSourceAsset
	default:
		return []string{}
	}

	types := []string{}
	for _, sourceType := range s.recordTypes(base) {
		if sourceType != domain.UniversalSourceType {
			types = append(types, sourceType)
		}
	}
	return types
}

// recordTypes lists the sorted source types, universal included, that have a
// resolved value under base.
func (s Shader) recordTypes(base string) []string {
	if s.stage == nil {
		return nil
	}
	var out []string
	for _, name := range s.stage.AttributeNames(s.path) {
		var sourceType string
		if name != base {
			rest, ok := strings.CutPrefix(name, base+domain.NamespaceDelimiter)
			if !ok || strings.Contains(rest, domain.NamespaceDelimiter) {
				continue
			}
			if base == domain.InfoSourceAsset && rest == domain.SubIdentifierKey {
				continue
			}
			sourceType = rest
		}
		if _, ok := s.stage.ResolveValue(s.path, name); ok {
			out = append(out, sourceType)
		}
	}
	slices.Sort(out)
	return out
}

// Implementation returns the resolved backing of the shader.
func (s Shader) Implementation() Implementation {
	switch s.GetImplementationSource() {
	case domain.ImplementationSourceCode:
		code := make(map[string]string)
		for _, t := range s.recordTypes(domain.InfoSourceCode) {
			code[t], _ = s.resolveString(sourceProperty(domain.InfoSourceCode, t))
		}
		return CodeImplementation{Code: code}
	case domain.ImplementationSourceAsset:
		assets := make(map[string]AssetRecord)
		for _, t := range s.recordTypes(domain.InfoSourceAsset) {
			asset, _ := s.resolveString(sourceProperty(domain.InfoSourceAsset, t))
			rec := assets[t]
			rec.Asset = domain.AssetPath(asset)
			assets[t] = rec
		}
		for _, t := range s.recordTypes(domain.InfoSourceAssetSubID) {
			sub, _ := s.resolveString(sourceProperty(domain.InfoSourceAssetSubID, t))
			rec := assets[t]
			rec.SubIdentifier = sub
			assets[t] = rec
		}
		return AssetImplementation{Assets: assets}
	default:
		id, _ := s.GetShaderId()
		return IDImplementation{ID: id}
	}
}

// SourceTypes returns the sorted keys of the records, universal included.
func (a AssetImplementation) SourceTypes() []string {
	return slices.Sorted(maps.Keys(a.Assets))
}

// SourceTypes returns the sorted keys of the records, universal included.
func (c CodeImplementation) SourceTypes() []string {
	return slices.Sorted(maps.Keys(c.Code))
}
