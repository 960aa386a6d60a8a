package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"docblog/internal/models"
)

// Store errors.
var (
	ErrInvalidManifest = errors.New("invalid manifest")
	ErrLegacySchema    = errors.New("manifest uses the legacy single 'date' schema; rebuild it")
)

// Encode serializes a manifest as a JSON array. A nil manifest encodes as [].
func Encode(m models.Manifest, pretty bool) ([]byte, error) {
	if m == nil {
		m = models.Manifest{}
	}

	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if pretty {
		enc.SetIndent("", "  ")
	}

	if err := enc.Encode(m); err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}

	return buf.Bytes(), nil
}

// Write stores the manifest at path. The file is written to a temporary
// sibling and renamed into place, so readers never see a partial manifest.
func Write(path string, m models.Manifest, pretty bool) error {
	data, err := Encode(m, pretty)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".manifest-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)

		return fmt.Errorf("failed to write manifest: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)

		return fmt.Errorf("failed to close manifest: %w", err)
	}

	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)

		return fmt.Errorf("failed to set manifest permissions: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)

		return fmt.Errorf("failed to move manifest into place: %w", err)
	}

	return nil
}

// Load reads and decodes the manifest at path.
func Load(path string) (models.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	return Decode(data)
}

// Decode parses a manifest strictly: unknown fields are rejected, records
// carrying the legacy "date" field return ErrLegacySchema and every record
// must pass Validate.
func Decode(data []byte) (models.Manifest, error) {
	var raw []map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}

	for i, rec := range raw {
		if _, ok := rec["date"]; ok {
			return nil, fmt.Errorf("%w (record %d)", ErrLegacySchema, i)
		}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	m := models.Manifest{}
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}

	if m == nil {
		m = models.Manifest{}
	}

	for i, a := range m {
		if err := Validate(a); err != nil {
			return nil, fmt.Errorf("%w: record %d (%s): %w", ErrInvalidManifest, i, a.Filename, err)
		}
	}

	return m, nil
}
