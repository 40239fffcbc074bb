package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const defaultMetadataURL = "/p2/%package%.json"

// ComposerRepository reads package metadata from a Composer v2 repository
// (packages.json with a metadata-url template)
type ComposerRepository struct {
	baseURL     string
	fetcher     *Fetcher
	metadataURL string
}

// NewComposerRepository creates a repository for baseURL
func NewComposerRepository(baseURL string, fetcher *Fetcher) *ComposerRepository {
	return &ComposerRepository{
		baseURL: strings.TrimRight(baseURL, "/"),
		fetcher: fetcher,
	}
}

func (r *ComposerRepository) Name() string {
	return r.baseURL
}

type rootDocument struct {
	MetadataURL string `json:"metadata-url"`
}

type metadataDocument struct {
	Packages map[string][]PackageVersion `json:"packages"`
}

// FindPackage returns all tagged versions of name; dev branches are only
// consulted when no tagged version exists
func (r *ComposerRepository) FindPackage(ctx context.Context, name string) ([]PackageVersion, error) {
	name = strings.ToLower(name)

	versions, err := r.loadMetadata(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(versions) > 0 {
		return versions, nil
	}

	return r.loadMetadata(ctx, name+"~dev")
}

func (r *ComposerRepository) loadMetadata(ctx context.Context, key string) ([]PackageVersion, error) {
	template, err := r.metadataTemplate(ctx)
	if err != nil {
		return nil, err
	}

	metadataURL, err := r.resolve(strings.ReplaceAll(template, "%package%", key))
	if err != nil {
		return nil, err
	}

	body, err := r.fetcher.Get(ctx, metadataURL)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return []PackageVersion{}, nil
		}
		return nil, err
	}

	var doc metadataDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse metadata from %s: %w", metadataURL, err)
	}

	name := strings.TrimSuffix(key, "~dev")
	versions := make([]PackageVersion, 0, len(doc.Packages[name]))
	for _, v := range doc.Packages[name] {
		if v.Version == "" {
			continue
		}
		v.Name = name
		versions = append(versions, v)
	}

	return versions, nil
}

// metadataTemplate reads metadata-url from packages.json once
func (r *ComposerRepository) metadataTemplate(ctx context.Context) (string, error) {
	if r.metadataURL != "" {
		return r.metadataURL, nil
	}

	body, err := r.fetcher.Get(ctx, r.baseURL+"/packages.json")
	if err != nil {
		return "", fmt.Errorf("failed to load repository %s: %w", r.baseURL, err)
	}

	var root rootDocument
	if err := json.Unmarshal(body, &root); err != nil {
		return "", fmt.Errorf("failed to parse packages.json from %s: %w", r.baseURL, err)
	}

	r.metadataURL = root.MetadataURL
	if r.metadataURL == "" {
		r.metadataURL = defaultMetadataURL
	}

	return r.metadataURL, nil
}

// resolve turns a metadata path into an absolute URL. Absolute paths such as
// "/files/packages/8/p2/..." are relative to the repository host.
func (r *ComposerRepository) resolve(ref string) (string, error) {
	base, err := url.Parse(r.baseURL + "/")
	if err != nil {
		return "", fmt.Errorf("invalid repository URL %s: %w", r.baseURL, err)
	}

	target, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("invalid metadata URL %s: %w", ref, err)
	}

	return base.ResolveReference(target).String(), nil
}
