package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// RepositoryTypeComposer is the type of a Composer package index
const RepositoryTypeComposer = "composer"

// RepositorySpec is a Composer repository definition.
// Fields beyond type and url are kept verbatim so inline definitions such as
// {"type": "package", "package": {...}} survive into the manifest.
type RepositorySpec struct {
	Type  string
	URL   string
	Extra map[string]json.RawMessage
}

// NewComposerRepository returns a composer-type repository for url
func NewComposerRepository(url string) RepositorySpec {
	return RepositorySpec{Type: RepositoryTypeComposer, URL: url}
}

// ParseRepositorySpec accepts either a URL or an inline JSON object
func ParseRepositorySpec(s string) (RepositorySpec, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return RepositorySpec{}, fmt.Errorf("%w: empty repository", ErrInvalidInput)
	}

	if !strings.HasPrefix(s, "{") {
		return NewComposerRepository(s), nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return RepositorySpec{}, fmt.Errorf("%w: invalid repository JSON %q: %v", ErrInvalidInput, s, err)
	}

	spec := RepositorySpec{Extra: map[string]json.RawMessage{}}
	for key, value := range raw {
		switch key {
		case "type":
			if err := json.Unmarshal(value, &spec.Type); err != nil {
				return RepositorySpec{}, fmt.Errorf("%w: repository type must be a string", ErrInvalidInput)
			}
		case "url":
			if err := json.Unmarshal(value, &spec.URL); err != nil {
				return RepositorySpec{}, fmt.Errorf("%w: repository url must be a string", ErrInvalidInput)
			}
		default:
			var compact bytes.Buffer
			if err := json.Compact(&compact, value); err != nil {
				return RepositorySpec{}, fmt.Errorf("%w: invalid repository JSON %q: %v", ErrInvalidInput, s, err)
			}
			spec.Extra[key] = json.RawMessage(compact.Bytes())
		}
	}

	if spec.Type == "" {
		return RepositorySpec{}, fmt.Errorf("%w: repository %q has no type", ErrInvalidInput, s)
	}
	if len(spec.Extra) == 0 {
		spec.Extra = nil
	}

	return spec, nil
}

// MarshalJSON writes the repository as a single JSON object
func (r RepositorySpec) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(r.Extra)+2)
	for key, value := range r.Extra {
		out[key] = value
	}

	typ, err := marshalUnescaped(r.Type)
	if err != nil {
		return nil, err
	}
	out["type"] = typ

	if r.URL != "" {
		url, err := marshalUnescaped(r.URL)
		if err != nil {
			return nil, err
		}
		out["url"] = url
	}

	return marshalUnescaped(out)
}

// marshalUnescaped encodes v without HTML escaping so URLs keep their "&"
func marshalUnescaped(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// UnmarshalJSON accepts the object form written by MarshalJSON
func (r *RepositorySpec) UnmarshalJSON(data []byte) error {
	spec, err := ParseRepositorySpec(string(data))
	if err != nil {
		return err
	}
	*r = spec
	return nil
}
