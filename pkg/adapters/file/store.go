package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aretw0/shadenet/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Format selects the on-disk encoding of layers.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

func (f Format) ext() string {
	if f == FormatJSON {
		return ".json"
	}
	return ".yaml"
}

// Store implements ports.LayerStore using the local filesystem.
// It stores one layer per file in a configured directory.
type Store struct {
	BasePath string
	Format   Format
}

// Option configures a Store.
type Option func(*Store)

// WithFormat sets the encoding used for new and existing layers.
func WithFormat(format Format) Option {
	return func(s *Store) {
		s.Format = format
	}
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".shadenet/layers".
func New(basePath string, opts ...Option) *Store {
	if basePath == "" {
		basePath = filepath.Join(".shadenet", "layers")
	}
	s := &Store{BasePath: basePath, Format: FormatYAML}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) path(id string) (string, error) {
	if id == "" {
		return "", fmt.Errorf("layer id cannot be empty")
	}
	if strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return "", fmt.Errorf("layer id %q must not contain path separators", id)
	}
	return filepath.Join(s.BasePath, id+s.Format.ext()), nil
}

func (s *Store) encode(layer *domain.Layer) ([]byte, error) {
	if s.Format == FormatJSON {
		return json.MarshalIndent(layer, "", "  ")
	}
	return yaml.Marshal(layer)
}

func (s *Store) decode(data []byte, layer *domain.Layer) error {
	if s.Format == FormatJSON {
		return json.Unmarshal(data, layer)
	}
	return yaml.Unmarshal(data, layer)
}

// Save persists the layer to a file atomically.
// It writes to a temporary file first, syncs via fsync, and then renames it to the destination.
func (s *Store) Save(ctx context.Context, id string, layer *domain.Layer) error {
	destPath, err := s.path(id)
	if err != nil {
		return err
	}

	// Ensure directory exists
	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure layer directory: %w", err)
	}

	data, err := s.encode(layer)
	if err != nil {
		return fmt.Errorf("failed to marshal layer: %w", err)
	}

	// 1. Create Temp File
	// we use the same directory to ensure we are on the same filesystem (required for atomic rename)
	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-"+id+"-*"+s.Format.ext())
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	// Cleanup temp file in case of failure
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	// 2. Write Data
	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}

	// 3. Fsync to ensure durability
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}

	// 4. Close File (cannot rename open file on Windows)
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// 5. Atomic Rename
	// On Windows, os.Rename fails if dest exists. We must remove it first.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing layer file for overwrite: %w", err)
		}
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file to layer file: %w", err)
	}
	return nil
}

// Load retrieves the layer from its file.
func (s *Store) Load(ctx context.Context, id string) (*domain.Layer, error) {
	filePath, err := s.path(id)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrLayerNotFound
		}
		return nil, fmt.Errorf("failed to read layer file: %w", err)
	}

	var layer domain.Layer
	if err := s.decode(data, &layer); err != nil {
		return nil, fmt.Errorf("failed to unmarshal layer %s: %w", id, err)
	}
	return &layer, nil
}

// Delete removes the layer file.
func (s *Store) Delete(ctx context.Context, id string) error {
	filePath, err := s.path(id)
	if err != nil {
		return err
	}

	err = os.Remove(filePath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete layer file: %w", err)
	}
	return nil
}

// List returns all stored layer IDs, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list layers: %w", err)
	}

	ext := s.Format.ext()
	ids := []string{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, "tmp-") {
			continue
		}
		if id, ok := strings.CutSuffix(name, ext); ok {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids, nil
}
