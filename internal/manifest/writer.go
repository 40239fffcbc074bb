package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/jakoblorz/drupal-init/internal/filesystem"
	"github.com/jakoblorz/drupal-init/internal/models"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/tidwall/jsonc"
)

// FileName is the conventional manifest file name
const FileName = "composer.json"

const tempIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// Writer persists manifest documents
type Writer struct {
	fs filesystem.FileSystem
}

// NewWriter creates a new Writer
func NewWriter(fs filesystem.FileSystem) *Writer {
	return &Writer{fs: fs}
}

// Encode renders doc the way Composer formats composer.json: four space
// indentation, unescaped slashes and a trailing newline
func Encode(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")

	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}

	return buf.Bytes(), nil
}

// Write writes doc to composer.json in dir, replacing any existing file.
// The content goes to a temporary sibling first and is renamed into place,
// so a failed write leaves the previous file untouched.
func (w *Writer) Write(dir string, doc *Document) (string, error) {
	data, err := Encode(doc)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, FileName)

	id, err := gonanoid.Generate(tempIDAlphabet, 8)
	if err != nil {
		return "", fmt.Errorf("%w: failed to generate temporary file name: %v", models.ErrWrite, err)
	}
	tmpPath := filepath.Join(dir, "."+FileName+"."+id+".tmp")

	if err := w.fs.WriteFile(tmpPath, data, 0644); err != nil {
		_ = w.fs.Remove(tmpPath)
		return "", fmt.Errorf("%w: %s: %w", models.ErrWrite, path, err)
	}

	if err := w.fs.Rename(tmpPath, path); err != nil {
		_ = w.fs.Remove(tmpPath)
		return "", fmt.Errorf("%w: %s: %w", models.ErrWrite, path, err)
	}

	return path, nil
}

// Read loads a manifest. Comments and trailing commas are tolerated.
func Read(fs filesystem.FileSystem, path string) (*Document, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var doc Document
	if err := json.Unmarshal(jsonc.ToJSON(data), &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return &doc, nil
}
