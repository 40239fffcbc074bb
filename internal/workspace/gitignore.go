package workspace

import (
	"bytes"
	"fmt"
	"path/filepath"

	gitignore "github.com/denormal/go-gitignore"
)

// VendorIgnoreEntry is appended to .gitignore to exclude installed packages.
const VendorIgnoreEntry = "/vendor/"

// GitIgnorePath returns the .gitignore path at the workspace root.
func (w *Workspace) GitIgnorePath() string {
	return filepath.Join(w.RootPath, ".gitignore")
}

// HasVendorIgnore reports whether the root .gitignore already ignores the
// vendor directory.
func (w *Workspace) HasVendorIgnore() (bool, error) {
	ignorePath := w.GitIgnorePath()
	if !w.fs.Exists(ignorePath) {
		return false, nil
	}

	data, err := w.fs.ReadFile(ignorePath)
	if err != nil {
		return false, fmt.Errorf("failed to read .gitignore: %w", err)
	}

	ignore := gitignore.New(bytes.NewReader(data), w.RootPath, nil)
	match := ignore.Relative("vendor", true)
	return match != nil && match.Ignore(), nil
}

// AddVendorIgnore appends the vendor entry, creating .gitignore if needed.
func (w *Workspace) AddVendorIgnore() error {
	ignorePath := w.GitIgnorePath()

	var content []byte
	if w.fs.Exists(ignorePath) {
		data, err := w.fs.ReadFile(ignorePath)
		if err != nil {
			return fmt.Errorf("failed to read .gitignore: %w", err)
		}
		content = append(content, data...)
	}

	if len(content) > 0 && !bytes.HasSuffix(content, []byte("\n")) {
		content = append(content, '\n')
	}
	content = append(content, VendorIgnoreEntry+"\n"...)

	if err := w.fs.WriteFile(ignorePath, content, 0644); err != nil {
		return fmt.Errorf("failed to write .gitignore: %w", err)
	}

	return nil
}
