package workspace

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jakoblorz/drupal-init/internal/filesystem"
)

// Workspace is the directory a project manifest is generated in.
type Workspace struct {
	fs       filesystem.FileSystem
	RootPath string
}

// New creates a new Workspace instance.
func New(fs filesystem.FileSystem) *Workspace {
	return &Workspace{fs: fs}
}

// Detect uses the current directory as the workspace root.
func (w *Workspace) Detect() error {
	return w.DetectAt("")
}

// DetectAt uses dir as the workspace root. A relative dir is resolved
// against the current directory and an empty dir selects it.
func (w *Workspace) DetectAt(dir string) error {
	cwd, err := w.fs.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	root := cwd
	if dir != "" {
		root = dir
		if !filepath.IsAbs(root) {
			root = filepath.Join(cwd, root)
		}
	}

	if !w.fs.IsDir(root) {
		return fmt.Errorf("working directory %s does not exist", root)
	}

	w.RootPath = filepath.Clean(root)
	return nil
}

// ManifestExists reports whether composer.json is already present.
func (w *Workspace) ManifestExists(fileName string) bool {
	return w.fs.Exists(filepath.Join(w.RootPath, fileName))
}

var (
	camelBoundary = regexp.MustCompile(`([a-z])([A-Z])|([A-Z])([A-Z][a-z])`)
	invalidChars  = regexp.MustCompile(`[^a-z0-9_.-]+`)
)

// DefaultProjectName derives a package name part from the root directory.
// Examples:
//   - "MySite" -> "my-site"
//   - "HTMLSite" -> "html-site"
//   - "my site" -> "my-site"
func (w *Workspace) DefaultProjectName() string {
	return Slug(filepath.Base(w.RootPath))
}

// Slug lowercases s, splits camel case words with dashes and replaces
// characters not allowed in package names.
func Slug(s string) string {
	s = camelBoundary.ReplaceAllString(strings.TrimSpace(s), "$1$3-$2$4")
	s = invalidChars.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(s, "-")
}

// PackageName joins vendor and project into a vendor/project name. The
// vendor is lowercased as is, without splitting camel case.
func PackageName(vendor, project string) string {
	vendor = invalidChars.ReplaceAllString(strings.ToLower(strings.TrimSpace(vendor)), "-")
	return strings.Trim(vendor, "-") + "/" + project
}
