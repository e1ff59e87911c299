package schema

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/librelogin/envoverlay"
)

// ErrInvalidKeyPath is returned when a schema file entry carries a path
// that IsValidKeyPath rejects.
var ErrInvalidKeyPath = errors.New("invalid key path")

// schemaFile is the on-disk document shape.
type schemaFile struct {
	Keys []schemaEntry `yaml:"keys" validate:"required,min=1,dive"`
}

type schemaEntry struct {
	Path    string `yaml:"path" validate:"required"`
	Comment string `yaml:"comment,omitempty"`
	Default any    `yaml:"default,omitempty"`
}

// LoadFile reads a YAML schema file into keys. The document must declare at
// least one key and every path must be well-formed; the first malformed
// entry fails the whole load.
func LoadFile(path string) ([]Key, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path comes from configuration
	if err != nil {
		return nil, fmt.Errorf("read schema file: %w", err)
	}

	var doc schemaFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse schema file: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(&doc); err != nil {
		return nil, fmt.Errorf("validate schema file: %w", err)
	}

	keys := make([]Key, 0, len(doc.Keys))
	for _, e := range doc.Keys {
		if !IsValidKeyPath(e.Path) {
			return nil, fmt.Errorf("validate schema file: %w: %q", ErrInvalidKeyPath, e.Path)
		}
		keys = append(keys, NewKey(e.Path, e.Default, e.Comment))
	}
	return keys, nil
}

// SaveFile writes keys as a YAML schema file, creating parent directories
// as needed. An existing file is overwritten.
func SaveFile(path string, keys []Key) error {
	doc := schemaFile{Keys: make([]schemaEntry, len(keys))}
	for i, k := range keys {
		doc.Keys[i] = schemaEntry{Path: k.Path(), Comment: k.Comment(), Default: k.Default()}
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create schema directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write schema file: %w", err)
	}
	return nil
}

// FileSource is an envoverlay.KeySource backed by a schema file. Keys
// re-reads the file on every call, so edits show up on the next pass.
type FileSource string

// Keys loads the schema file and returns its keys.
func (f FileSource) Keys() ([]envoverlay.Key, error) {
	keys, err := LoadFile(string(f))
	if err != nil {
		return nil, err
	}
	return Known(keys...), nil
}
