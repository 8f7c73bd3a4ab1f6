package shade

import "github.com/aretw0/shadenet/pkg/domain"

// GetSdrMetadata returns the composed sdrMetadata. Each key takes its value
// from the nearest prim defining it. The result is never nil.
func (s Shader) GetSdrMetadata() map[string]string {
	if s.stage == nil {
		return map[string]string{}
	}
	return s.stage.ResolveDictionary(s.path, domain.SdrMetadata)
}

// GetSdrMetadataByKey returns a single composed sdrMetadata entry.
func (s Shader) GetSdrMetadataByKey(key string) (string, bool) {
	if s.stage == nil {
		return "", false
	}
	return s.stage.ResolveDictionaryKey(s.path, domain.SdrMetadata, key)
}

// HasSdrMetadata reports whether any prim contributes sdrMetadata.
func (s Shader) HasSdrMetadata() bool {
	return len(s.GetSdrMetadata()) > 0
}

// HasSdrMetadataByKey reports whether any prim contributes the key.
func (s Shader) HasSdrMetadataByKey(key string) bool {
	_, ok := s.GetSdrMetadataByKey(key)
	return ok
}

// SetSdrMetadata replaces the entries authored on this prim.
func (s Shader) SetSdrMetadata(metadata map[string]string) error {
	p, err := s.prim()
	if err != nil {
		return err
	}
	p.SetDictionary(domain.SdrMetadata, metadata)
	return nil
}

// SetSdrMetadataByKey authors one entry, leaving the others untouched.
func (s Shader) SetSdrMetadataByKey(key, value string) error {
	p, err := s.prim()
	if err != nil {
		return err
	}
	p.SetDictionaryKey(domain.SdrMetadata, key, value)
	return nil
}

// ClearSdrMetadataByKey removes the entry authored on this prim. A value
// inherited for the same key stays visible.
func (s Shader) ClearSdrMetadataByKey(key string) error {
	p, err := s.prim()
	if err != nil {
		return err
	}
	p.ClearDictionaryKey(domain.SdrMetadata, key)
	return nil
}

// ClearSdrMetadata removes every entry authored on this prim.
func (s Shader) ClearSdrMetadata() error {
	p, err := s.prim()
	if err != nil {
		return err
	}
	p.ClearDictionary(domain.SdrMetadata)
	return nil
}
